package handlers

import (
	"net/http"

	"github.com/Dosada05/match-predictor/services"
)

type FixtureHandler struct {
	fixtureService services.FixtureService
}

func NewFixtureHandler(fixtureService services.FixtureService) *FixtureHandler {
	return &FixtureHandler{fixtureService: fixtureService}
}

// ListByDateRangeHandler serves GET /matches?from=YYYY-MM-DD&to=YYYY-MM-DD.
// The window is widened to whole UTC days.
func (h *FixtureHandler) ListByDateRangeHandler(w http.ResponseWriter, r *http.Request) {
	from, err := getDateParam(r, "from")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	to, err := getDateParam(r, "to")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	start, end := services.DayBounds(from, to)
	matches, err := h.fixtureService.EnrichedByDateRange(r.Context(), start, end)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
