// Package chat implements the conversation layer: a single-transcript state
// machine that routes user input to fighter search, fighter Q&A, or general
// Q&A, plus the fixed roster backing the "Surprise me" action.
package chat

import (
	"regexp"
	"strings"
)

// Intent is the routing decision for one piece of user input.
type Intent string

const (
	// IntentFighterQA routes to a question about the fighter in context.
	IntentFighterQA Intent = "fighter_qa"
	// IntentGeneralQA routes to a question not tied to any fighter.
	IntentGeneralQA Intent = "general_qa"
	// IntentSearch routes to a fighter name search.
	IntentSearch Intent = "search"
)

// generalQuestionRE matches input that opens like a question or a request,
// including boxing-schedule phrasing. Prefix match, not word-boundary match.
var generalQuestionRE = regexp.MustCompile(`(?i)^(what|when|who|why|how|where|which|tell me|list|show|give|upcoming|next|schedule|groq|fight|fights)`)

// Classify decides how to route trimmed user input. Rules in order: an active
// fighter context always wins; otherwise question-shaped input goes to general
// Q&A; everything else is treated as a fighter name to search.
func Classify(text string, hasContext bool) Intent {
	if hasContext {
		return IntentFighterQA
	}
	lower := strings.ToLower(text)
	if generalQuestionRE.MatchString(text) ||
		strings.Contains(lower, "groq") ||
		strings.Contains(lower, "fight") {
		return IntentGeneralQA
	}
	return IntentSearch
}
