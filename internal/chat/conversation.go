package chat

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/TheGrowthIntern/boxing-analyst/internal/domain"
	"github.com/TheGrowthIntern/boxing-analyst/internal/groq"
)

// State is the conversation's activity state. Exactly one flow runs at a time.
type State string

const (
	StateIdle      State = "idle"
	StateSearching State = "searching"
	StateAnalyzing State = "analyzing"
	StateAnswering State = "answering"
)

// ErrBusy is returned when input arrives while another flow is in flight.
var ErrBusy = errors.New("chat: a request is already in flight")

const welcomeText = "Welcome to Groq Analyst. Ask about any fighter or storyline and I'll respond with Groq × The Ring insight."

// Searcher resolves a query to fighter candidates.
type Searcher interface {
	Search(ctx context.Context, query string) ([]domain.Fighter, error)
}

// ProfileFetcher produces a full profile (fighter, fights, insights).
type ProfileFetcher interface {
	Analyze(ctx context.Context, id, name string) (*groq.Profile, error)
}

// QA answers fighter-scoped and general questions.
type QA interface {
	AskFighter(ctx context.Context, fighter domain.Fighter, fights []domain.Fight, question string) (*groq.Answer, error)
	AskGeneral(ctx context.Context, question string) (*groq.Answer, error)
}

// Conversation is the single-user chat state machine. It owns the append-only
// transcript, the selected/context fighter pair, and the activity state.
//
// Flow errors never escape: they are recorded on the error string and
// reflected as apologetic assistant messages, and the state always returns to
// idle when a flow ends.
type Conversation struct {
	mu sync.Mutex

	state    State
	messages []domain.ChatMessage
	selected *domain.Fighter
	context  *domain.Fighter
	profile  *groq.Profile
	errMsg   string

	search   Searcher
	profiles ProfileFetcher
	qa       QA

	// pick selects a roster index. Seam for deterministic tests.
	pick func(n int) int
}

// NewConversation builds a Conversation in the initial state: idle, a single
// welcome message, no fighter context.
func NewConversation(search Searcher, profiles ProfileFetcher, qa QA) *Conversation {
	c := &Conversation{
		search:   search,
		profiles: profiles,
		qa:       qa,
		pick:     rand.Intn,
	}
	c.resetLocked()
	return c
}

// State reports the current activity state.
func (c *Conversation) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Err returns the current user-facing error string, empty when none.
func (c *Conversation) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

// Messages returns a copy of the transcript.
func (c *Conversation) Messages() []domain.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.ChatMessage, len(c.messages))
	copy(out, c.messages)
	return out
}

// SelectedFighter returns a copy of the currently selected fighter, or nil.
func (c *Conversation) SelectedFighter() *domain.Fighter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyFighter(c.selected)
}

// ContextFighter returns a copy of the fighter follow-up questions refer to,
// or nil.
func (c *Conversation) ContextFighter() *domain.Fighter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyFighter(c.context)
}

// Reset returns the conversation to the initial state. Idempotent.
func (c *Conversation) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
}

func (c *Conversation) resetLocked() {
	c.state = StateIdle
	c.selected = nil
	c.context = nil
	c.profile = nil
	c.errMsg = ""
	c.messages = []domain.ChatMessage{{
		ID:      "welcome",
		Role:    domain.RoleAssistant,
		Content: welcomeText,
	}}
}

// Submit routes one piece of user input. Whitespace-only input is a silent
// no-op; input during an in-flight flow returns ErrBusy without touching the
// transcript.
func (c *Conversation) Submit(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()
		return ErrBusy
	}
	hasContext := c.selected != nil || c.context != nil
	intent := Classify(text, hasContext)

	var next State
	switch intent {
	case IntentFighterQA, IntentGeneralQA:
		next = StateAnswering
	default:
		next = StateSearching
	}
	c.state = next
	c.appendLocked(domain.ChatMessage{
		ID:      uuid.NewString(),
		Role:    domain.RoleUser,
		Content: text,
	})
	c.mu.Unlock()

	switch intent {
	case IntentFighterQA:
		c.askFighter(ctx, text)
	case IntentGeneralQA:
		c.askGeneral(ctx, text)
	default:
		c.performSearch(ctx, text)
	}
	return nil
}

// SelectFighter loads the full profile for f and appends it to the
// transcript. The selection is echoed as a user message first.
func (c *Conversation) SelectFighter(ctx context.Context, f domain.Fighter) error {
	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()
		return ErrBusy
	}
	c.state = StateAnalyzing
	c.appendLocked(domain.ChatMessage{
		ID:      uuid.NewString(),
		Role:    domain.RoleUser,
		Content: f.Name,
	})
	c.mu.Unlock()

	c.analyze(ctx, f)
	return nil
}

// PickRandom picks a roster fighter uniformly at random, announces the pick,
// and searches for it.
func (c *Conversation) PickRandom(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()
		return ErrBusy
	}
	name := famousBoxers[c.pick(len(famousBoxers))]
	c.state = StateSearching
	c.appendLocked(domain.ChatMessage{
		ID:      uuid.NewString(),
		Role:    domain.RoleUser,
		Content: "Surprise me",
	})
	c.appendLocked(domain.ChatMessage{
		ID:      uuid.NewString(),
		Role:    domain.RoleAssistant,
		Content: fmt.Sprintf("Let's explore **%s**...", name),
	})
	c.mu.Unlock()

	c.performSearch(ctx, name)
	return nil
}

// performSearch runs a fighter search and appends the outcome. A successful
// search with at least one match advances straight into profile analysis of
// the top result, so the user lands on a profile instead of a picker.
func (c *Conversation) performSearch(ctx context.Context, term string) {
	c.mu.Lock()
	c.errMsg = ""
	c.selected = nil
	c.mu.Unlock()

	fighters, err := c.search.Search(ctx, term)
	if err != nil {
		log.Error().Err(err).Str("term", term).Msg("fighter search failed")
		c.finish("Failed to search fighters.", domain.ChatMessage{
			ID:      uuid.NewString(),
			Role:    domain.RoleAssistant,
			Content: "Something went wrong. Please try again.",
		})
		return
	}

	content := fmt.Sprintf("No results for %q. Try another name.", term)
	errMsg := "No fighters found."
	if n := len(fighters); n > 0 {
		plural := "es"
		if n == 1 {
			plural = ""
		}
		content = fmt.Sprintf("Found %d match%s for %q.", n, plural, term)
		errMsg = ""
	}
	c.finish(errMsg, domain.ChatMessage{
		ID:      uuid.NewString(),
		Role:    domain.RoleAssistant,
		Content: content,
		Meta:    &domain.MessageMeta{SearchResults: fighters},
	})

	if len(fighters) > 0 {
		if err := c.SelectFighter(ctx, fighters[0]); err != nil {
			log.Warn().Err(err).Msg("auto-advance to top match skipped")
		}
	}
}

// analyze fetches the profile for f and appends it, replacing the fighter
// context with the enriched record on success.
func (c *Conversation) analyze(ctx context.Context, f domain.Fighter) {
	c.mu.Lock()
	c.errMsg = ""
	prevSelected := c.selected
	prevContext := c.context
	c.selected = &f
	c.context = &f
	c.mu.Unlock()

	p, err := c.profiles.Analyze(ctx, string(f.ID), f.Name)
	if err != nil {
		log.Error().Err(err).Str("fighter", f.Name).Msg("fighter analysis failed")
		c.mu.Lock()
		// Without a loaded profile the clicked fighter is no use as context,
		// so roll back to the pre-fetch values. With one, the click stands.
		if c.profile == nil {
			c.selected = prevSelected
			c.context = prevContext
		}
		c.mu.Unlock()
		c.finish("Failed to analyze fighter.", domain.ChatMessage{
			ID:      uuid.NewString(),
			Role:    domain.RoleAssistant,
			Content: "Could not load fighter profile. Try another selection.",
		})
		return
	}

	c.mu.Lock()
	enriched := p.Fighter
	c.selected = &enriched
	c.context = &enriched
	c.profile = p
	c.mu.Unlock()

	c.finish("", domain.ChatMessage{
		ID:      uuid.NewString(),
		Role:    domain.RoleAssistant,
		Content: fmt.Sprintf("Here's the complete profile for %s.", p.Fighter.Name),
		Meta: &domain.MessageMeta{
			Fighter:  &enriched,
			Fights:   p.Fights,
			Insights: p.Insights,
		},
	})
}

// askFighter answers a follow-up question about the fighter in context.
func (c *Conversation) askFighter(ctx context.Context, question string) {
	c.mu.Lock()
	target := c.selected
	if target == nil {
		target = c.context
	}
	fighter := *target
	var fights []domain.Fight
	if c.profile != nil {
		fights = c.profile.Fights
	}
	c.mu.Unlock()

	a, err := c.qa.AskFighter(ctx, fighter, fights, question)
	if err != nil {
		log.Error().Err(err).Str("fighter", fighter.Name).Msg("fighter question failed")
		c.finish(c.Err(), domain.ChatMessage{
			ID:      uuid.NewString(),
			Role:    domain.RoleAssistant,
			Content: "Could not process your question. Try again.",
		})
		return
	}
	c.finish("", answerMessage(a))
}

// askGeneral answers a question not tied to any fighter.
func (c *Conversation) askGeneral(ctx context.Context, question string) {
	a, err := c.qa.AskGeneral(ctx, question)
	if err != nil {
		log.Error().Err(err).Msg("general question failed")
		c.finish(c.Err(), domain.ChatMessage{
			ID:      uuid.NewString(),
			Role:    domain.RoleAssistant,
			Content: "Could not process your question. Try again.",
		})
		return
	}
	c.finish("", answerMessage(a))
}

// finish appends the flow's closing message, records the error string, and
// returns the machine to idle.
func (c *Conversation) finish(errMsg string, msg domain.ChatMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errMsg = errMsg
	c.appendLocked(msg)
	c.state = StateIdle
}

func (c *Conversation) appendLocked(msg domain.ChatMessage) {
	c.messages = append(c.messages, msg)
}

func answerMessage(a *groq.Answer) domain.ChatMessage {
	content := ""
	if a != nil {
		content = a.Answer
	}
	if strings.TrimSpace(content) == "" {
		content = "Could not generate an answer."
	}
	msg := domain.ChatMessage{
		ID:      uuid.NewString(),
		Role:    domain.RoleAssistant,
		Content: content,
	}
	if a != nil && len(a.Sources) > 0 {
		msg.Meta = &domain.MessageMeta{Sources: a.Sources}
	}
	return msg
}

func copyFighter(f *domain.Fighter) *domain.Fighter {
	if f == nil {
		return nil
	}
	cp := *f
	return &cp
}
