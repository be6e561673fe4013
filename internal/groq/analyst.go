package groq

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/TheGrowthIntern/boxing-analyst/internal/domain"
	"github.com/rs/zerolog/log"
)

// Profile bundles the result of AI profile synthesis: the fighter, recent
// fights, and optional insights.
type Profile struct {
	Fighter  domain.Fighter   `json:"fighter"`
	Fights   []domain.Fight   `json:"fights"`
	Insights *domain.Analysis `json:"insights,omitempty"`
}

// Answer is the result of a Q&A completion.
type Answer struct {
	Answer  string                  `json:"answer"`
	Sources []domain.SourceCitation `json:"sources,omitempty"`
}

// SearchFighters asks the fast model for boxers matching query. Malformed
// completions degrade to an empty result, never an error, so the caller can
// fall through to other sources.
func (c *Client) SearchFighters(ctx context.Context, query string) ([]domain.Fighter, error) {
	prompt := fmt.Sprintf(
		`List of professional and legendary boxers matching (men and women) %q. `+
			`Return JSON: {"fighters":[{"id":"slug","name":"Full Name","nationality":"Country","record":"W-L-D","division":{"name":"Weight Class"},"alias":"Nickname","stance":"Orthodox/Southpaw"}]}. `+
			`Max 5 results, real boxers only, lowercase-hyphenated ids.`, query)

	content, err := c.complete(ctx, completionOpts{
		model:       c.fastModel,
		system:      "You are a boxing expert. Return valid JSON only.",
		user:        prompt,
		temperature: 0.2,
		maxTokens:   800,
		jsonObject:  true,
		timeout:     c.searchTimeout,
		label:       "AI fighter search",
	})
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Fighters []domain.Fighter `json:"fighters"`
		Results  []domain.Fighter `json:"results"`
	}
	if uerr := json.Unmarshal([]byte(extractJSON(content)), &parsed); uerr != nil {
		// Maybe a bare array.
		var arr []domain.Fighter
		if aerr := json.Unmarshal([]byte(extractJSON(content)), &arr); aerr != nil {
			log.Warn().Err(uerr).Msg("unparseable AI search results")
			return nil, nil
		}
		parsed.Fighters = arr
	}

	fighters := parsed.Fighters
	if len(fighters) == 0 {
		fighters = parsed.Results
	}
	for i := range fighters {
		if fighters[i].ID == "" {
			fighters[i].ID = domain.FlexString(slugify(fighters[i].Name))
		}
		if fighters[i].Name == "" {
			fighters[i].Name = "Unknown"
		}
	}
	return fighters, nil
}

// FighterProfile synthesizes a complete profile (fighter, recent fights,
// insights) for a fighter known only by name. Used when the fighter-data API
// has no record to hang a question on.
func (c *Client) FighterProfile(ctx context.Context, name, id string) (*Profile, error) {
	prompt := fmt.Sprintf(
		`Boxing profile for %s. JSON: {fighter:{id,name,nationality,birthplace,age,record,wins,losses,draws,knockouts,ko_percentage,height,reach,stance,division:{name},alias,debut,status,titles[]},recentFights:[{id,date,opponent,result,method,round,location,title_fight}],analysis:{style,strengths[],weaknesses[],recentForm,matchups,summary}}. `+
			`6-8 fights max. Factual data.`, name)

	fallback := &Profile{Fighter: domain.Fighter{ID: domain.FlexString(firstNonEmpty(id, slugify(name))), Name: name}}

	content, err := c.complete(ctx, completionOpts{
		model:       c.fastModel,
		system:      "Boxing database expert. Return valid JSON only.",
		user:        prompt,
		temperature: 0.3,
		maxTokens:   2000,
		jsonObject:  true,
		timeout:     c.profileTimeout,
		label:       "AI profile synthesis",
	})
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Fighter      domain.Fighter   `json:"fighter"`
		RecentFights []domain.Fight   `json:"recentFights"`
		Fights       []domain.Fight   `json:"fights"`
		Analysis     *domain.Analysis `json:"analysis"`
	}
	if uerr := json.Unmarshal([]byte(extractJSON(content)), &parsed); uerr != nil {
		log.Warn().Err(uerr).Str("fighter", name).Msg("unparseable AI profile, using bare fallback")
		return fallback, nil
	}

	p := &Profile{Fighter: parsed.Fighter, Insights: parsed.Analysis}
	if p.Fighter.ID == "" {
		p.Fighter.ID = fallback.Fighter.ID
	}
	if p.Fighter.Name == "" {
		p.Fighter.Name = name
	}
	domain.ReconcileRecord(&p.Fighter)
	domain.DeriveAge(&p.Fighter, time.Now())

	p.Fights = parsed.RecentFights
	if len(p.Fights) == 0 {
		p.Fights = parsed.Fights
	}
	for i := range p.Fights {
		if p.Fights[i].ID == "" {
			p.Fights[i].ID = domain.FlexString(fmt.Sprintf("fight-%d", i))
		}
		if p.Fights[i].Opponent.Name == "" {
			p.Fights[i].Opponent.Name = "Unknown"
		}
	}
	domain.SortFightsByDateDesc(p.Fights)
	return p, nil
}

// Analyze asks the full model for tactical insights on a fighter given their
// stats and recent fights. Malformed completions degrade to an Analysis built
// from the raw text with marked fallback fields; only transport failures
// return an error.
func (c *Client) Analyze(ctx context.Context, fighter domain.Fighter, fights []domain.Fight) (*domain.Analysis, error) {
	prompt := fmt.Sprintf(`Analyze the professional boxer %s.

%s

Recent Fights:
%s

Provide a detailed analysis in JSON format with the following exact structure:
{
  "style": "Brief description of fighting style (1-2 sentences)",
  "strengths": ["strength 1", "strength 2", "strength 3"],
  "weaknesses": ["weakness 1", "weakness 2", "weakness 3"],
  "recentForm": "Assessment of recent performance (2-3 sentences)",
  "matchups": "Suggested matchups or strategy notes (2-3 sentences)",
  "summary": "A concise overall summary (2-3 sentences)"
}

CRITICAL REQUIREMENTS:
- "strengths" must be an array of 3-5 short strings (each 5-10 words max)
- "weaknesses" must be an array of 3-5 short strings (each 5-10 words max)
- Do NOT use prose paragraphs for strengths/weaknesses
- Ensure the tone is professional, analytical, and factual like a boxing commentator
- Return ONLY valid JSON with no additional text`,
		fighter.Name, buildBaseStats(fighter), buildFightsText(fights))

	content, err := c.complete(ctx, completionOpts{
		model:       c.model,
		system:      "You are an expert boxing analyst providing insights for a web application. Output JSON only.",
		user:        prompt,
		temperature: 0.7,
		jsonObject:  true,
		timeout:     c.answerTimeout,
		label:       "fighter analysis",
	})
	if err != nil {
		return nil, err
	}

	var raw struct {
		Style      string `json:"style"`
		Strengths  any    `json:"strengths"`
		Weaknesses any    `json:"weaknesses"`
		RecentForm string `json:"recentForm"`
		Matchups   string `json:"matchups"`
		Summary    string `json:"summary"`
	}
	if uerr := json.Unmarshal([]byte(extractJSON(content)), &raw); uerr != nil {
		log.Warn().Err(uerr).Str("fighter", fighter.Name).Msg("unparseable analysis, degrading to raw text")
		readable := truncate(content, 500)
		return &domain.Analysis{
			Style:      "Style analysis unavailable",
			Strengths:  []string{"Analysis data unavailable"},
			Weaknesses: []string{"Analysis data unavailable"},
			RecentForm: readable,
			Matchups:   "Matchup analysis unavailable",
			Summary:    readable,
		}, nil
	}

	return &domain.Analysis{
		Style:      stringOr(raw.Style, "Style analysis not available"),
		Strengths:  stringsOr(raw.Strengths, []string{"Not available"}),
		Weaknesses: stringsOr(raw.Weaknesses, []string{"Not available"}),
		RecentForm: stringOr(raw.RecentForm, "Recent form analysis not available"),
		Matchups:   stringOr(raw.Matchups, "Matchup analysis not available"),
		Summary:    stringOr(raw.Summary, truncate(content, 200)),
	}, nil
}

// AskFighter answers a question grounded in one fighter's stats and recent
// fights.
func (c *Client) AskFighter(ctx context.Context, fighter domain.Fighter, fights []domain.Fight, question string) (*Answer, error) {
	prompt := fmt.Sprintf(`You are an expert boxing analyst.
Use the fighter context and recent fights below to answer the question succinctly and professionally.

Fighter: %s
%s

Recent Fights:
%s

Question: %s

Response guidelines:
- Always answer the question explicitly and directly.
- Use the fighter's stats (height, reach, stance, record, style, etc.) to support reasoning.
- Keep the tone analytical and grounded in data, not speculative or opinionated.
- Return ONLY valid JSON with the following structure:
{
  "answer": "natural language answer grounded in the data",
  "sources": [
    { "label": "Source Name", "url": "https://..." }
  ]
}`,
		fighter.Name, buildBaseStats(fighter), buildFightsText(fights), question)

	return c.ask(ctx, prompt,
		"You are a boxing analyst. Stay on topic and answer using the provided context.",
		0.65, "fighter question")
}

// AskGeneral answers a question not tied to any fighter (events, rules, news).
func (c *Client) AskGeneral(ctx context.Context, question string) (*Answer, error) {
	prompt := fmt.Sprintf(`You are an expert boxing analyst with strong general sports knowledge.
Answer the question concisely and factually.

Question: %s

Response guidelines:
- Answer directly and succinctly.
- If relevant, include notable upcoming fights or recent news.
- If citing sources, provide short labels and URLs.
- Return ONLY valid JSON with the following structure:
{
  "answer": "direct, concise answer",
  "sources": [
    { "label": "Source Name", "url": "https://..." }
  ]
}`, question)

	return c.ask(ctx, prompt,
		"You are a concise, factual boxing and sports analyst.",
		0.6, "general question")
}

// ask runs a Q&A completion and parses the {answer, sources} shape, falling
// back to the raw text when the completion is not JSON.
func (c *Client) ask(ctx context.Context, prompt, system string, temperature float64, label string) (*Answer, error) {
	content, err := c.complete(ctx, completionOpts{
		model:       c.model,
		system:      system,
		user:        prompt,
		temperature: temperature,
		maxTokens:   400,
		timeout:     c.answerTimeout,
		label:       label,
	})
	if err != nil {
		return nil, err
	}

	var parsed Answer
	if uerr := json.Unmarshal([]byte(extractJSON(content)), &parsed); uerr != nil || strings.TrimSpace(parsed.Answer) == "" {
		return &Answer{Answer: strings.TrimSpace(content)}, nil
	}
	parsed.Answer = strings.TrimSpace(parsed.Answer)
	return &parsed, nil
}

// buildFightsText renders up to five recent fights as prompt context lines.
func buildFightsText(fights []domain.Fight) string {
	if len(fights) == 0 {
		return "No recent fight data available."
	}
	if len(fights) > 5 {
		fights = fights[:5]
	}
	lines := make([]string, 0, len(fights))
	for _, f := range fights {
		lines = append(lines, fmt.Sprintf("%s: %s vs %s (%s)", f.Date, f.Result, f.Opponent.Name, f.Method))
	}
	return strings.Join(lines, "\n")
}

// buildBaseStats renders the fighter's headline stats as prompt context.
func buildBaseStats(f domain.Fighter) string {
	return fmt.Sprintf("Stats:\nRecord: %s\nHeight: %s\nReach: %s\nStance: %s",
		orNA(f.Record), orNA(string(f.Height)), orNA(string(f.Reach)), orNA(f.Stance))
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// slugify lowercases and hyphenates a fighter name into a stable id.
func slugify(name string) string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(name)))
	if len(fields) == 0 {
		return "unknown"
	}
	return strings.Join(fields, "-")
}
