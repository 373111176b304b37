package handlers

import (
	"net/http"

	"github.com/Dosada05/swiss-tournament/services"
)

// AdminHandler exposes the bulk clear operations.
type AdminHandler struct {
	registration services.RegistrationService
}

func NewAdminHandler(registration services.RegistrationService) *AdminHandler {
	return &AdminHandler{registration: registration}
}

// ClearMatches godoc
// @Summary Удалить матчи (всех турниров или одного)
// @Tags admin
// @Param tournament_id query int false "Tournament ID"
// @Success 204
// @Security BearerAuth
// @Router /admin/matches [delete]
func (h *AdminHandler) ClearMatches(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := optionalIDQuery(r, "tournament_id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := h.registration.ClearMatches(r.Context(), tournamentID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ClearEnrollments godoc
// @Summary Удалить записи в турниры вместе с их матчами
// @Tags admin
// @Param tournament_id query int false "Tournament ID"
// @Success 204
// @Security BearerAuth
// @Router /admin/enrollments [delete]
func (h *AdminHandler) ClearEnrollments(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := optionalIDQuery(r, "tournament_id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := h.registration.ClearEnrollments(r.Context(), tournamentID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ClearPlayers godoc
// @Summary Удалить всех игроков
// @Tags admin
// @Success 204
// @Security BearerAuth
// @Router /admin/players [delete]
func (h *AdminHandler) ClearPlayers(w http.ResponseWriter, r *http.Request) {
	if err := h.registration.ClearPlayers(r.Context()); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ClearTournaments godoc
// @Summary Удалить все турниры
// @Tags admin
// @Success 204
// @Security BearerAuth
// @Router /admin/tournaments [delete]
func (h *AdminHandler) ClearTournaments(w http.ResponseWriter, r *http.Request) {
	if err := h.registration.ClearTournaments(r.Context()); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
