// Package domain defines the core entities of the boxing analyst: fighters,
// fights, AI-generated analysis, and the chat transcript. These types form
// the contract between the remote data clients, the conversation state
// machine, and the HTTP layer.
package domain

import (
	"encoding/json"
	"strings"
)

// FlexString decodes a JSON value that upstream sources emit as either a
// string or a number (ids, heights, reaches). It always marshals back as a
// string.
type FlexString string

// UnmarshalJSON accepts a JSON string, number, or null.
func (s *FlexString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = FlexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = FlexString(n.String())
	return nil
}

// Division is the weight class a fighter competes in. Upstream records are
// inconsistent about shape, so both fields are optional.
type Division struct {
	Name string     `json:"name,omitempty"`
	ID   FlexString `json:"id,omitempty"`
}

// Fighter represents a boxer as assembled from search or profile responses.
//
// Identity is carried by ID (a slug or upstream numeric id rendered as a
// string) and Name. Everything else is descriptive and optional; upstream
// sources routinely omit fields.
//
// Record invariant: when both the Record string and the numeric Wins/Losses/
// Draws are present they must agree. Numbers are authoritative; see
// ReconcileRecord.
//
// Fighters are value types. A ChatMessage stores its own copy, so a fresher
// fetch never mutates a fighter already rendered into the transcript.
type Fighter struct {
	ID          FlexString `json:"id"`
	Name        string     `json:"name"`
	Nationality string     `json:"nationality,omitempty"`
	Record      string     `json:"record,omitempty"`
	Height      FlexString `json:"height,omitempty"`
	Reach       FlexString `json:"reach,omitempty"`
	Stance      string     `json:"stance,omitempty"`
	Division    Division   `json:"division,omitempty"`
	Birthdate   string     `json:"birthdate,omitempty"`
	Birthplace  string     `json:"birthplace,omitempty"`
	Residence   string     `json:"residence,omitempty"`
	Age         int        `json:"age,omitempty"`
	Wins        *int       `json:"wins,omitempty"`
	Losses      *int       `json:"losses,omitempty"`
	Draws       *int       `json:"draws,omitempty"`
	Knockouts   *int       `json:"knockouts,omitempty"`
	KOPercent   *float64   `json:"ko_percentage,omitempty"`
	Debut       string     `json:"debut,omitempty"`
	Alias       string     `json:"alias,omitempty"`
	Status      string     `json:"status,omitempty"`
	Titles      []string   `json:"titles,omitempty"`
	Ranking     int        `json:"ranking,omitempty"`
	Sex         string     `json:"sex,omitempty"`
	ImageURL    string     `json:"imageUrl,omitempty"`
}

// Key returns the cache/identity key for the fighter: the id when present,
// otherwise the lowercased name.
func (f Fighter) Key() string {
	if f.ID != "" {
		return string(f.ID)
	}
	return strings.ToLower(strings.TrimSpace(f.Name))
}

// Result is the canonical outcome of a fight from the perspective of the
// searched fighter.
type Result string

const (
	ResultWin       Result = "win"
	ResultLoss      Result = "loss"
	ResultDraw      Result = "draw"
	ResultNoContest Result = "nc"

	// ResultUnknown is the neutral fallback for unrecognized outcomes.
	ResultUnknown Result = "unknown"
)

// Opponent is the other side of a fight. Upstream payloads carry either a
// bare name string or a full fighter object; the two variants are kept
// explicit so consumers must handle both.
type Opponent struct {
	// Name is always populated (from the string variant, or the profile's name).
	Name string
	// Profile is non-nil only when the upstream payload carried a full object.
	Profile *Fighter
}

// UnmarshalJSON accepts either a JSON string or a Fighter-shaped object.
func (o *Opponent) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		o.Name = s
		o.Profile = nil
		return nil
	}
	var f Fighter
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	o.Name = f.Name
	o.Profile = &f
	return nil
}

// MarshalJSON emits the object variant when a profile is attached, otherwise
// the plain name string.
func (o Opponent) MarshalJSON() ([]byte, error) {
	if o.Profile != nil {
		return json.Marshal(o.Profile)
	}
	return json.Marshal(o.Name)
}

// Fight is a single bout belonging to a fighter's history.
type Fight struct {
	ID              FlexString `json:"id"`
	Date            string     `json:"date,omitempty"`
	Division        Division   `json:"division,omitempty"`
	Opponent        Opponent   `json:"opponent"`
	Result          string     `json:"result,omitempty"`
	Method          string     `json:"method,omitempty"`
	Round           int        `json:"round,omitempty"`
	ScheduledRounds int        `json:"scheduled_rounds,omitempty"`
	Time            string     `json:"time,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	Venue           string     `json:"venue,omitempty"`
	Location        string     `json:"location,omitempty"`
	TitleFight      bool       `json:"title_fight,omitempty"`
	WeightClass     string     `json:"weight_class,omitempty"`
}

// Analysis holds AI-generated commentary tied to one fighter snapshot.
// It is derived and non-authoritative; a nil *Analysis means "not yet
// generated", never an error.
type Analysis struct {
	Style      string   `json:"style,omitempty"`
	Strengths  []string `json:"strengths,omitempty"`
	Weaknesses []string `json:"weaknesses,omitempty"`
	RecentForm string   `json:"recentForm,omitempty"`
	Matchups   string   `json:"matchups,omitempty"`
	Summary    string   `json:"summary"`
}

// SourceCitation is a short label/URL pair attached to AI answers.
type SourceCitation struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// MessageMeta is the optional payload bag attached to assistant messages:
// search results, a fighter profile with its fights and insights, or answer
// citations.
type MessageMeta struct {
	SearchResults []Fighter        `json:"searchResults,omitempty"`
	Fighter       *Fighter         `json:"fighter,omitempty"`
	Fights        []Fight          `json:"fights,omitempty"`
	Insights      *Analysis        `json:"insights,omitempty"`
	Sources       []SourceCitation `json:"sources,omitempty"`
}

// ChatMessage is one append-only entry in the conversation transcript.
// Entities referenced by Meta are snapshots owned by the message; corrections
// are appended as new messages, never edited in place.
type ChatMessage struct {
	ID      string       `json:"id"`
	Role    string       `json:"role"`
	Content string       `json:"content"`
	Meta    *MessageMeta `json:"meta,omitempty"`
}
