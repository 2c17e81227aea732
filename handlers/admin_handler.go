package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quiniela26/prediction-system/services"
)

// AdminHandler exposes roster management, result entry and the scoring
// triggers. Every route behind it requires the admin role.
type AdminHandler struct {
	teamService      services.TeamService
	matchService     services.MatchService
	scoringService   services.ScoringService
	aggregateService services.AggregateService
}

func NewAdminHandler(
	teamService services.TeamService,
	matchService services.MatchService,
	scoringService services.ScoringService,
	aggregateService services.AggregateService,
) *AdminHandler {
	return &AdminHandler{
		teamService:      teamService,
		matchService:     matchService,
		scoringService:   scoringService,
		aggregateService: aggregateService,
	}
}

func (h *AdminHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var input services.CreateTeamInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	team, err := h.teamService.CreateTeam(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, team, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AdminHandler) UploadTeamFlag(w http.ResponseWriter, r *http.Request) {
	teamID, err := idParam(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	team, err := h.teamService.UploadTeamFlag(r.Context(), teamID, r.Header.Get("Content-Type"), r.Body)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, team, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AdminHandler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	var input services.CreatePlayerInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := h.teamService.CreatePlayer(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, player, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AdminHandler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	var input services.CreateMatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.CreateMatch(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, match, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RecordResult stores the final score and immediately scores every
// prediction referencing the match.
func (h *AdminHandler) RecordResult(w http.ResponseWriter, r *http.Request) {
	matchID, err := idParam(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.RecordResultInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	summary, err := h.matchService.RecordResult(r.Context(), matchID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, summary, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// FinalizeMatch rescores an already-final match, e.g. after a correction.
func (h *AdminHandler) FinalizeMatch(w http.ResponseWriter, r *http.Request) {
	matchID, err := idParam(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	summary, err := h.scoringService.FinalizeMatch(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, summary, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AdminHandler) RecordGroupStanding(w http.ResponseWriter, r *http.Request) {
	groupCode := chi.URLParam(r, "groupCode")

	var input services.GroupStandingInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	standing, err := h.matchService.RecordGroupStanding(r.Context(), groupCode, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, standing, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AdminHandler) FinalizeGroup(w http.ResponseWriter, r *http.Request) {
	groupCode := chi.URLParam(r, "groupCode")

	summary, err := h.scoringService.FinalizeGroup(r.Context(), groupCode)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, summary, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AdminHandler) RecordTournamentResult(w http.ResponseWriter, r *http.Request) {
	var input services.TournamentResultInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.matchService.RecordTournamentResult(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, result, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AdminHandler) FinalizeTournament(w http.ResponseWriter, r *http.Request) {
	summary, err := h.scoringService.FinalizeTournament(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, summary, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RecomputeAllUsers rebuilds every user's aggregate from their stored
// prediction scores.
func (h *AdminHandler) RecomputeAllUsers(w http.ResponseWriter, r *http.Request) {
	summary, err := h.aggregateService.RecomputeAllUsers(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, summary, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AdminHandler) RecomputeUser(w http.ResponseWriter, r *http.Request) {
	userID, err := idParam(r, "userID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	aggregate, err := h.aggregateService.RecomputeUser(r.Context(), userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, aggregate, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
