// Package services – SearchService
//
// This file implements SearchService, which resolves a free-text query to a
// list of fighters. The fighter-data API is the primary source; when it fails
// or knows nothing, the AI backend synthesizes candidates so the conversation
// can continue. Results are cosmetically normalized (display-cased names)
// before they reach the transcript.
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
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/TheGrowthIntern/boxing-analyst/internal/domain"
)

// FighterSearcher resolves a name query to fighter candidates.
// Both the fighter-data client and the AI client satisfy it.
type FighterSearcher interface {
	SearchFighters(ctx context.Context, query string) ([]domain.Fighter, error)
}

// SearchService answers fighter search queries, preferring real data over
// AI synthesis.
type SearchService struct {
	// Primary is the fighter-data API.
	Primary FighterSearcher
	// Fallback is the AI backend, consulted when Primary errors or is empty.
	Fallback FighterSearcher
}

// NewSearchService constructs a SearchService.
func NewSearchService(primary, fallback FighterSearcher) *SearchService {
	return &SearchService{Primary: primary, Fallback: fallback}
}

var titleCaser = cases.Title(language.English)

// Search resolves query to fighter candidates. The empty query is rejected;
// zero results is a valid outcome, not an error.
func (s *SearchService) Search(ctx context.Context, query string) ([]domain.Fighter, error) {
	tr := otel.Tracer("services/SearchService")
	ctx, span := tr.Start(ctx, "Search",
		trace.WithAttributes(attribute.String("search.query", query)),
	)
	defer span.End()

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	fighters, err := s.Primary.SearchFighters(ctx, query)
	if err != nil {
		log.Warn().Err(err).Str("query", query).Msg("fighter-data search failed, trying AI fallback")
		fighters = nil
	}
	if len(fighters) == 0 && s.Fallback != nil {
		fighters, err = s.Fallback.SearchFighters(ctx, query)
		if err != nil {
			return nil, err
		}
	}

	span.SetAttributes(attribute.Int("search.results", len(fighters)))
	for i := range fighters {
		normalizeDisplayName(&fighters[i])
	}
	return fighters, nil
}

// normalizeDisplayName title-cases names that arrived fully lowercased, which
// AI-synthesized records sometimes do. Mixed-case names pass through untouched.
func normalizeDisplayName(f *domain.Fighter) {
	name := strings.TrimSpace(f.Name)
	if name != "" && name == strings.ToLower(name) {
		f.Name = titleCaser.String(name)
	} else {
		f.Name = name
	}
}
