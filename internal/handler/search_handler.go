package handler

import (
	"net/http"
	"strconv"

	"github.com/freeeve/geoindex/internal/service"
)

// SearchHandler serves GET /api/v1/search.
type SearchHandler struct {
	svc *service.SearchService
}

// NewSearchHandler creates a SearchHandler.
func NewSearchHandler(svc *service.SearchService) *SearchHandler {
	return &SearchHandler{svc: svc}
}

// Search handles GET /api/v1/search?q=<string>&limit=<int>. An empty q
// returns {} without consulting the engine.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusOK, map[string]any{})
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			writeError(w, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		limit = parsed
	}

	result := h.svc.Search(r.Context(), q, limit)
	writeJSON(w, http.StatusOK, result)
}
