// Package services – ProfileService
//
// This file implements ProfileService, which assembles a fighter profile
// (fighter record, recent fights, AI insights) from the fighter-data API with
// an AI-synthesis fallback. Successful profiles are cached with a TTL, and
// concurrent requests for the same fighter are collapsed with singleflight so
// only one upstream fetch is in flight per key.
//
// Observability: public methods are OpenTelemetry-instrumented.
package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"github.com/TheGrowthIntern/boxing-analyst/internal/cache"
	"github.com/TheGrowthIntern/boxing-analyst/internal/domain"
	"github.com/TheGrowthIntern/boxing-analyst/internal/groq"
)

// BoxingAPI is the fighter-data contract required by ProfileService.
type BoxingAPI interface {
	SearchFighters(ctx context.Context, name string) ([]domain.Fighter, error)
	GetFighter(ctx context.Context, id string) (*domain.Fighter, error)
	RecentFights(ctx context.Context, fighterID string) ([]domain.Fight, error)
}

// Analyst is the AI contract required by ProfileService.
type Analyst interface {
	FighterProfile(ctx context.Context, name, id string) (*groq.Profile, error)
	Analyze(ctx context.Context, fighter domain.Fighter, fights []domain.Fight) (*domain.Analysis, error)
}

// ProfileService resolves fighters to full profiles with tactical insights.
type ProfileService struct {
	// Boxing is the fighter-data API.
	Boxing BoxingAPI
	// AI is the analysis backend, also used as a profile-synthesis fallback.
	AI Analyst
	// Cache holds successful profiles for the configured TTL.
	Cache *cache.TTLCache[*groq.Profile]

	group singleflight.Group
}

// NewProfileService constructs a ProfileService around the given cache.
func NewProfileService(boxing BoxingAPI, ai Analyst, c *cache.TTLCache[*groq.Profile]) *ProfileService {
	return &ProfileService{Boxing: boxing, AI: ai, Cache: c}
}

// Analyze produces the full profile for the fighter identified by id or name.
// Cached profiles are returned as-is; otherwise the data is resolved, insights
// are generated, and the result is cached only on success.
func (s *ProfileService) Analyze(ctx context.Context, id, name string) (*groq.Profile, error) {
	tr := otel.Tracer("services/ProfileService")
	ctx, span := tr.Start(ctx, "Analyze",
		trace.WithAttributes(
			attribute.String("fighter.id", id),
			attribute.String("fighter.name", name),
		),
	)
	defer span.End()

	id = strings.TrimSpace(id)
	name = strings.TrimSpace(name)
	if id == "" && name == "" {
		return nil, ErrMissingFighter
	}

	key := profileKey(id, name)
	if p, ok := s.Cache.Get(key); ok {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return p, nil
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		// Re-check under the flight: a concurrent caller may have filled
		// the cache between our miss and this closure running.
		if p, ok := s.Cache.Get(key); ok {
			return p, nil
		}
		p, err := s.analyze(ctx, id, name)
		if err != nil {
			return nil, err
		}
		s.Cache.Set(key, p)
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*groq.Profile), nil
}

func (s *ProfileService) analyze(ctx context.Context, id, name string) (*groq.Profile, error) {
	p, err := s.Resolve(ctx, id, name)
	if err != nil {
		return nil, err
	}
	if p.Insights == nil {
		insights, err := s.AI.Analyze(ctx, p.Fighter, p.Fights)
		if err != nil {
			return nil, err
		}
		p.Insights = insights
	}
	return p, nil
}

// Resolve fetches the fighter and recent fights without generating insights.
// The fighter-data API is tried first; if it cannot produce the fighter, the
// AI backend synthesizes a profile instead.
func (s *ProfileService) Resolve(ctx context.Context, id, name string) (*groq.Profile, error) {
	id = strings.TrimSpace(id)
	name = strings.TrimSpace(name)
	if id == "" && name == "" {
		return nil, ErrMissingFighter
	}

	fighter, err := s.resolveFighter(ctx, id, name)
	if err == nil && fighter != nil {
		fights, ferr := s.Boxing.RecentFights(ctx, string(fighter.ID))
		if ferr != nil {
			// Fights are enrichment. A profile without them is still usable.
			log.Warn().Err(ferr).Str("fighter", fighter.Name).Msg("fight history fetch failed")
			fights = nil
		}
		return &groq.Profile{Fighter: *fighter, Fights: fights}, nil
	}
	if err != nil {
		log.Warn().Err(err).Str("id", id).Str("name", name).
			Msg("fighter-data lookup failed, synthesizing profile via AI")
	}

	if name == "" {
		name = id
	}
	p, aerr := s.AI.FighterProfile(ctx, name, id)
	if aerr != nil {
		return nil, aerr
	}
	if p == nil || p.Fighter.Name == "" {
		return nil, ErrFighterNotFound
	}
	return p, nil
}

// resolveFighter fetches by id when one is given, otherwise searches by name
// and takes the top match.
func (s *ProfileService) resolveFighter(ctx context.Context, id, name string) (*domain.Fighter, error) {
	if id != "" {
		return s.Boxing.GetFighter(ctx, id)
	}
	fighters, err := s.Boxing.SearchFighters(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(fighters) == 0 {
		return nil, ErrFighterNotFound
	}
	return &fighters[0], nil
}

// profileKey is the cache key for a fighter: id when known, otherwise the
// lowercased name.
func profileKey(id, name string) string {
	if id != "" {
		return id
	}
	return strings.ToLower(name)
}
