// Fighter analysis HTTP handler.
//
// POST /analyze resolves the identified fighter, fetches their recent fights,
// and generates tactical insights. The response carries all three so the
// client renders a complete profile from one call.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TheGrowthIntern/boxing-analyst/internal/domain"
	"github.com/TheGrowthIntern/boxing-analyst/internal/groq"
	"github.com/TheGrowthIntern/boxing-analyst/internal/services"
)

// AnalyzeRequest identifies the fighter to analyze. FighterID is the upstream
// id or slug; FighterName is accepted as a fallback identifier.
type AnalyzeRequest struct {
	FighterID   string `json:"fighterId"`
	FighterName string `json:"fighterName"`
}

// AnalyzeResponse is the JSON envelope for a full fighter profile.
type AnalyzeResponse struct {
	Fighter  domain.Fighter   `json:"fighter"`
	Fights   []domain.Fight   `json:"fights"`
	Insights *domain.Analysis `json:"insights"`
}

// Analyze handles POST /analyze.
func (h *Handlers) Analyze(c *gin.Context) {
	ctx := c.Request.Context()

	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "Missing fighterId")
		return
	}
	if req.FighterID == "" && req.FighterName == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "Missing fighterId")
		return
	}

	p, err := h.profileSvc.Analyze(ctx, req.FighterID, req.FighterName)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingFighter):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "Missing fighterId")
		case errors.Is(err, services.ErrFighterNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "Fighter not found")
		case errors.Is(err, groq.ErrNoContent), errors.Is(err, services.ErrNoAnswer):
			fail(c, http.StatusBadGateway, ErrCodeUpstreamNoReply, "AI backend did not return a response")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeAnalyzeFailed, err.Error())
		}
		return
	}

	fights := p.Fights
	if fights == nil {
		fights = []domain.Fight{}
	}
	ok(c, http.StatusOK, AnalyzeResponse{
		Fighter:  p.Fighter,
		Fights:   fights,
		Insights: p.Insights,
	})
}
