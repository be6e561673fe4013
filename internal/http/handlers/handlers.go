// Handler wiring.
//
// Handlers carries the service dependencies behind small interfaces so tests
// can substitute fakes without touching real upstreams.
package handlers

import (
	"context"

	"github.com/TheGrowthIntern/boxing-analyst/internal/domain"
	"github.com/TheGrowthIntern/boxing-analyst/internal/groq"
)

// SearchService resolves a query to fighter candidates.
type SearchService interface {
	Search(ctx context.Context, query string) ([]domain.Fighter, error)
}

// ProfileService assembles fighter profiles with insights.
type ProfileService interface {
	Analyze(ctx context.Context, id, name string) (*groq.Profile, error)
	Resolve(ctx context.Context, id, name string) (*groq.Profile, error)
}

// AnswerService answers fighter-scoped and general questions.
type AnswerService interface {
	AskFighter(ctx context.Context, fighter domain.Fighter, fights []domain.Fight, question string) (*groq.Answer, error)
	AskGeneral(ctx context.Context, question string) (*groq.Answer, error)
}

// Handlers aggregates the HTTP handlers and their service dependencies.
type Handlers struct {
	searchSvc  SearchService
	profileSvc ProfileService
	answerSvc  AnswerService
}

// New constructs the Handlers aggregate.
func New(search SearchService, profiles ProfileService, answers AnswerService) *Handlers {
	return &Handlers{searchSvc: search, profileSvc: profiles, answerSvc: answers}
}
