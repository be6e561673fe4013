package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/TheGrowthIntern/boxing-analyst/internal/cache"
	"github.com/TheGrowthIntern/boxing-analyst/internal/domain"
	"github.com/TheGrowthIntern/boxing-analyst/internal/groq"
)

// ----- Fakes -----

type fakeAnswerer struct {
	fighterCalls int
	generalCalls int

	answer *groq.Answer
	err    error
}

func (f *fakeAnswerer) AskFighter(ctx context.Context, fighter domain.Fighter, fights []domain.Fight, question string) (*groq.Answer, error) {
	f.fighterCalls++
	return f.answer, f.err
}

func (f *fakeAnswerer) AskGeneral(ctx context.Context, question string) (*groq.Answer, error) {
	f.generalCalls++
	return f.answer, f.err
}

func newAnswerService(ai *fakeAnswerer) *AnswerService {
	return NewAnswerService(ai, cache.New[*groq.Answer](3*time.Minute))
}

// ----- Tests -----

func TestAskFighter_EmptyQuestion(t *testing.T) {
	s := newAnswerService(&fakeAnswerer{})
	if _, err := s.AskFighter(context.Background(), domain.Fighter{ID: "1"}, nil, " "); !errors.Is(err, ErrEmptyQuestion) {
		t.Fatalf("err = %v; want ErrEmptyQuestion", err)
	}
}

func TestAskFighter_CachedAnswerSkipsUpstream(t *testing.T) {
	ai := &fakeAnswerer{answer: &groq.Answer{Answer: "Eleven rounds."}}
	s := newAnswerService(ai)
	f := domain.Fighter{ID: "fury", Name: "Tyson Fury"}

	a1, err := s.AskFighter(context.Background(), f, nil, "How long did the Wilder fight last?")
	if err != nil {
		t.Fatalf("first ask: %v", err)
	}
	// Same question with different case and padding must hit the cache.
	a2, err := s.AskFighter(context.Background(), f, nil, "  HOW long did the wilder fight LAST?  ")
	if err != nil {
		t.Fatalf("second ask: %v", err)
	}
	if ai.fighterCalls != 1 {
		t.Fatalf("upstream calls = %d; want 1", ai.fighterCalls)
	}
	if a1.Answer != a2.Answer {
		t.Fatalf("answers diverged: %q vs %q", a1.Answer, a2.Answer)
	}
}

func TestAskFighter_CacheIsPerFighter(t *testing.T) {
	ai := &fakeAnswerer{answer: &groq.Answer{Answer: "yes"}}
	s := newAnswerService(ai)

	if _, err := s.AskFighter(context.Background(), domain.Fighter{ID: "a"}, nil, "southpaw?"); err != nil {
		t.Fatalf("ask: %v", err)
	}
	if _, err := s.AskFighter(context.Background(), domain.Fighter{ID: "b"}, nil, "southpaw?"); err != nil {
		t.Fatalf("ask: %v", err)
	}
	if ai.fighterCalls != 2 {
		t.Fatalf("upstream calls = %d; same question on another fighter must miss", ai.fighterCalls)
	}
}

func TestAskFighter_EmptyAnswerIsError(t *testing.T) {
	ai := &fakeAnswerer{answer: &groq.Answer{Answer: "   "}}
	s := newAnswerService(ai)
	if _, err := s.AskFighter(context.Background(), domain.Fighter{ID: "1"}, nil, "q"); !errors.Is(err, ErrNoAnswer) {
		t.Fatalf("err = %v; want ErrNoAnswer", err)
	}
}

func TestAskFighter_FailureNotCached(t *testing.T) {
	ai := &fakeAnswerer{err: groq.ErrNoContent}
	s := newAnswerService(ai)
	f := domain.Fighter{ID: "1"}

	if _, err := s.AskFighter(context.Background(), f, nil, "q"); err == nil {
		t.Fatalf("expected error")
	}
	ai.err = nil
	ai.answer = &groq.Answer{Answer: "recovered"}
	a, err := s.AskFighter(context.Background(), f, nil, "q")
	if err != nil || a.Answer != "recovered" {
		t.Fatalf("retry = (%+v, %v)", a, err)
	}
	if ai.fighterCalls != 2 {
		t.Fatalf("upstream calls = %d", ai.fighterCalls)
	}
}

func TestAskGeneral_CachedByQuestion(t *testing.T) {
	ai := &fakeAnswerer{answer: &groq.Answer{Answer: "Saturday."}}
	s := newAnswerService(ai)

	if _, err := s.AskGeneral(context.Background(), "When is the next fight?"); err != nil {
		t.Fatalf("ask: %v", err)
	}
	if _, err := s.AskGeneral(context.Background(), "when is the NEXT fight?"); err != nil {
		t.Fatalf("ask: %v", err)
	}
	if ai.generalCalls != 1 {
		t.Fatalf("upstream calls = %d; want 1", ai.generalCalls)
	}
}

func TestAskGeneral_EmptyQuestion(t *testing.T) {
	s := newAnswerService(&fakeAnswerer{})
	if _, err := s.AskGeneral(context.Background(), ""); !errors.Is(err, ErrEmptyQuestion) {
		t.Fatalf("err = %v; want ErrEmptyQuestion", err)
	}
}
