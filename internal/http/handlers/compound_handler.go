// Q&A HTTP handlers.
//
// POST /compound answers a question about one fighter. The client may supply
// the fighter and fights inline (skipping any upstream fetch), or just an
// identifier, in which case the profile is resolved server-side with AI
// synthesis as a fallback. POST /compound/general answers questions not tied
// to any fighter.
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/TheGrowthIntern/boxing-analyst/internal/domain"
	"github.com/TheGrowthIntern/boxing-analyst/internal/groq"
	"github.com/TheGrowthIntern/boxing-analyst/internal/services"
)

// CompoundRequest is the JSON payload for a fighter-scoped question.
type CompoundRequest struct {
	FighterID   string          `json:"fighterId"`
	FighterName string          `json:"fighterName"`
	Fighter     *domain.Fighter `json:"fighter"`
	Fights      []domain.Fight  `json:"fights"`
	Question    string          `json:"question"`
}

// GeneralRequest is the JSON payload for a general question.
type GeneralRequest struct {
	Question string `json:"question"`
}

// AnswerResponse is the JSON envelope for Q&A answers.
type AnswerResponse struct {
	Answer  string                  `json:"answer"`
	Sources []domain.SourceCitation `json:"sources"`
}

// Compound handles POST /compound.
func (h *Handlers) Compound(c *gin.Context) {
	ctx := c.Request.Context()

	var req CompoundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "Missing question text")
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "Missing question text")
		return
	}

	var (
		fighter domain.Fighter
		fights  []domain.Fight
	)
	if req.Fighter != nil {
		fighter = *req.Fighter
		fights = req.Fights
	} else {
		if req.FighterID == "" && req.FighterName == "" {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "Missing fighter identifier")
			return
		}
		p, err := h.profileSvc.Resolve(ctx, req.FighterID, req.FighterName)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrFighterNotFound):
				fail(c, http.StatusNotFound, ErrCodeNotFound, "Fighter not found")
			case errors.Is(err, groq.ErrNoContent):
				fail(c, http.StatusBadGateway, ErrCodeUpstreamNoReply, "AI backend did not return a response")
			default:
				fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
			}
			return
		}
		fighter = p.Fighter
		fights = p.Fights
	}

	a, err := h.answerSvc.AskFighter(ctx, fighter, fights, req.Question)
	if err != nil {
		failAnswer(c, err)
		return
	}
	ok(c, http.StatusOK, answerResponse(a))
}

// CompoundGeneral handles POST /compound/general.
func (h *Handlers) CompoundGeneral(c *gin.Context) {
	ctx := c.Request.Context()

	var req GeneralRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "Missing question text")
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "Missing question text")
		return
	}

	a, err := h.answerSvc.AskGeneral(ctx, req.Question)
	if err != nil {
		failAnswer(c, err)
		return
	}
	ok(c, http.StatusOK, answerResponse(a))
}

// failAnswer maps Q&A service errors to HTTP results.
func failAnswer(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEmptyQuestion):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "Missing question text")
	case errors.Is(err, services.ErrNoAnswer), errors.Is(err, groq.ErrNoContent):
		fail(c, http.StatusBadGateway, ErrCodeUpstreamNoReply, "AI backend did not return a response")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeAnswerFailed, err.Error())
	}
}

func answerResponse(a *groq.Answer) AnswerResponse {
	sources := a.Sources
	if sources == nil {
		sources = []domain.SourceCitation{}
	}
	return AnswerResponse{Answer: a.Answer, Sources: sources}
}
