// Package services – AnswerService
//
// This file implements AnswerService, which answers questions either in the
// context of one fighter or about boxing in general. Answers are cached with a
// short TTL keyed by fighter and normalized question text, so repeating a
// question within the window performs no upstream call.
//
// Observability: public methods are OpenTelemetry-instrumented.
package services

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/TheGrowthIntern/boxing-analyst/internal/cache"
	"github.com/TheGrowthIntern/boxing-analyst/internal/domain"
	"github.com/TheGrowthIntern/boxing-analyst/internal/groq"
)

// Answerer is the AI Q&A contract required by AnswerService.
type Answerer interface {
	AskFighter(ctx context.Context, fighter domain.Fighter, fights []domain.Fight, question string) (*groq.Answer, error)
	AskGeneral(ctx context.Context, question string) (*groq.Answer, error)
}

// AnswerService answers fighter-scoped and general boxing questions.
type AnswerService struct {
	// AI is the Q&A backend.
	AI Answerer
	// Cache holds successful answers for the configured TTL.
	Cache *cache.TTLCache[*groq.Answer]
}

// NewAnswerService constructs an AnswerService around the given cache.
func NewAnswerService(ai Answerer, c *cache.TTLCache[*groq.Answer]) *AnswerService {
	return &AnswerService{AI: ai, Cache: c}
}

// AskFighter answers a question about one fighter, grounded in the fighter's
// stats and recent fights.
func (s *AnswerService) AskFighter(ctx context.Context, fighter domain.Fighter, fights []domain.Fight, question string) (*groq.Answer, error) {
	tr := otel.Tracer("services/AnswerService")
	ctx, span := tr.Start(ctx, "AskFighter",
		trace.WithAttributes(attribute.String("fighter.key", fighter.Key())),
	)
	defer span.End()

	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}

	key := cache.AnswerKey(fighter.Key(), question)
	if a, ok := s.Cache.Get(key); ok {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return a, nil
	}

	a, err := s.AI.AskFighter(ctx, fighter, fights, question)
	if err != nil {
		return nil, err
	}
	if a == nil || strings.TrimSpace(a.Answer) == "" {
		return nil, ErrNoAnswer
	}
	s.Cache.Set(key, a)
	return a, nil
}

// AskGeneral answers a question not tied to any fighter.
func (s *AnswerService) AskGeneral(ctx context.Context, question string) (*groq.Answer, error) {
	tr := otel.Tracer("services/AnswerService")
	ctx, span := tr.Start(ctx, "AskGeneral")
	defer span.End()

	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}

	key := cache.GeneralKey(question)
	if a, ok := s.Cache.Get(key); ok {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return a, nil
	}

	a, err := s.AI.AskGeneral(ctx, question)
	if err != nil {
		return nil, err
	}
	if a == nil || strings.TrimSpace(a.Answer) == "" {
		return nil, ErrNoAnswer
	}
	s.Cache.Set(key, a)
	return a, nil
}
