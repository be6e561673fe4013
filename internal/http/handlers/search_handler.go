// Fighter search HTTP handler.
//
// GET /search?q=<name> resolves a free-text query against the fighter-data
// API, with AI-backed fallback handled inside the service. Zero matches is a
// successful response with an empty list, not an error.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TheGrowthIntern/boxing-analyst/internal/domain"
	"github.com/TheGrowthIntern/boxing-analyst/internal/services"
)

// SearchResponse is the JSON envelope for fighter search results.
type SearchResponse struct {
	Fighters []domain.Fighter `json:"fighters"`
}

// Search handles GET /search.
func (h *Handlers) Search(c *gin.Context) {
	ctx := c.Request.Context()

	query := c.Query("q")
	if query == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "Missing search query")
		return
	}

	fighters, err := h.searchSvc.Search(ctx, query)
	if err != nil {
		if errors.Is(err, services.ErrEmptyQuery) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "Missing search query")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeSearchFailed, err.Error())
		return
	}
	if fighters == nil {
		fighters = []domain.Fighter{}
	}
	ok(c, http.StatusOK, SearchResponse{Fighters: fighters})
}
