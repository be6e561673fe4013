package services

import (
	"context"
	"errors"
	"testing"

	"github.com/TheGrowthIntern/boxing-analyst/internal/domain"
)

// ----- Fakes -----

type fakeSearcher struct {
	calls    int
	lastTerm string
	fighters []domain.Fighter
	err      error
}

func (f *fakeSearcher) SearchFighters(ctx context.Context, query string) ([]domain.Fighter, error) {
	f.calls++
	f.lastTerm = query
	return f.fighters, f.err
}

// ----- Tests -----

func TestSearch_EmptyQueryRejected(t *testing.T) {
	s := NewSearchService(&fakeSearcher{}, &fakeSearcher{})
	if _, err := s.Search(context.Background(), "   "); !errors.Is(err, ErrEmptyQuery) {
		t.Fatalf("err = %v; want ErrEmptyQuery", err)
	}
}

func TestSearch_PrimaryWins(t *testing.T) {
	primary := &fakeSearcher{fighters: []domain.Fighter{{ID: "1", Name: "Tyson Fury"}}}
	fallback := &fakeSearcher{}
	s := NewSearchService(primary, fallback)

	got, err := s.Search(context.Background(), "Tyson Fury")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Tyson Fury" {
		t.Fatalf("got %+v", got)
	}
	if primary.lastTerm != "Tyson Fury" {
		t.Fatalf("primary term = %q", primary.lastTerm)
	}
	if fallback.calls != 0 {
		t.Fatalf("fallback must not run when primary has results")
	}
}

func TestSearch_FallbackOnPrimaryError(t *testing.T) {
	primary := &fakeSearcher{err: errors.New("upstream down")}
	fallback := &fakeSearcher{fighters: []domain.Fighter{{ID: "ai-1", Name: "Canelo Alvarez"}}}
	s := NewSearchService(primary, fallback)

	got, err := s.Search(context.Background(), "canelo")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 || got[0].ID != "ai-1" {
		t.Fatalf("got %+v", got)
	}
}

func TestSearch_FallbackOnZeroResults(t *testing.T) {
	primary := &fakeSearcher{}
	fallback := &fakeSearcher{fighters: []domain.Fighter{{ID: "x", Name: "X"}}}
	s := NewSearchService(primary, fallback)

	got, err := s.Search(context.Background(), "x")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if fallback.calls != 1 || len(got) != 1 {
		t.Fatalf("fallback calls = %d, got %+v", fallback.calls, got)
	}
}

func TestSearch_BothEmptyIsNotAnError(t *testing.T) {
	s := NewSearchService(&fakeSearcher{}, &fakeSearcher{})
	got, err := s.Search(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("zero matches must not error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %+v", got)
	}
}

func TestSearch_FallbackErrorPropagates(t *testing.T) {
	wantErr := errors.New("llm down")
	s := NewSearchService(&fakeSearcher{}, &fakeSearcher{err: wantErr})
	if _, err := s.Search(context.Background(), "x"); !errors.Is(err, wantErr) {
		t.Fatalf("err = %v; want %v", err, wantErr)
	}
}

func TestNormalizeDisplayName(t *testing.T) {
	cases := map[string]string{
		"canelo alvarez":  "Canelo Alvarez",
		"Oscar De La Hoya": "Oscar De La Hoya",
		" GGG ":           "GGG",
		"":                "",
	}
	for in, want := range cases {
		f := domain.Fighter{Name: in}
		normalizeDisplayName(&f)
		if f.Name != want {
			t.Errorf("normalizeDisplayName(%q) = %q; want %q", in, f.Name, want)
		}
	}
}
