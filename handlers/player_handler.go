package handlers

import (
	"net/http"

	"github.com/Dosada05/swiss-tournament/services"
)

type PlayerHandler struct {
	registration services.RegistrationService
}

func NewPlayerHandler(registration services.RegistrationService) *PlayerHandler {
	return &PlayerHandler{registration: registration}
}

// Create godoc
// @Summary Создать игрока
// @Description Создает игрока и, если переданы tournament_ids, сразу записывает его в эти турниры.
// @Tags players
// @Accept json
// @Produce json
// @Param input body services.CreatePlayerInput true "Игрок"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string "Турнир не найден"
// @Security BearerAuth
// @Router /players [post]
func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CreatePlayerInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := h.registration.CreatePlayer(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// List godoc
// @Summary Список игроков
// @Tags players
// @Produce json
// @Success 200 {object} map[string]interface{} "players и count"
// @Router /players [get]
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	players, err := h.registration.ListPlayers(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	count, err := h.registration.CountPlayers(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"players": players, "count": count}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
