package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/match-predictor/services"
	"github.com/go-chi/chi/v5"
)

type CatalogHandler struct {
	catalogService services.CatalogService
}

func NewCatalogHandler(catalogService services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func (h *CatalogHandler) ListCountriesHandler(w http.ResponseWriter, r *http.Request) {
	countries, err := h.catalogService.ListCountries(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"countries": countries}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *CatalogHandler) ListLeaguesHandler(w http.ResponseWriter, r *http.Request) {
	countryID, err := getIDFromURL(r, "countryID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	leagues, err := h.catalogService.ListLeaguesByCountry(r.Context(), countryID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"leagues": leagues}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *CatalogHandler) ListRoundsHandler(w http.ResponseWriter, r *http.Request) {
	leagueID, err := getIDFromURL(r, "leagueID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	season := r.URL.Query().Get("season")
	if season == "" {
		badRequestResponse(w, r, errors.New("missing season query parameter"))
		return
	}

	rounds, err := h.catalogService.ListRounds(r.Context(), leagueID, season)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"rounds": rounds}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *CatalogHandler) ListRoundMatchesHandler(w http.ResponseWriter, r *http.Request) {
	leagueID, err := getIDFromURL(r, "leagueID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	season := r.URL.Query().Get("season")
	if season == "" {
		badRequestResponse(w, r, errors.New("missing season query parameter"))
		return
	}
	round := chi.URLParam(r, "round")
	if round == "" {
		badRequestResponse(w, r, errors.New("missing round parameter"))
		return
	}

	matches, err := h.catalogService.EnrichedByRound(r.Context(), leagueID, season, round)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
