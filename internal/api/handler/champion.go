package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/champguess/internal/api/response"
	"github.com/mcoot/champguess/internal/services/champion"
)

// ChampionHandler handles champion lookups that are independent of a game
type ChampionHandler struct {
	service *champion.Service
}

// NewChampionHandler creates a new champion handler
func NewChampionHandler(service *champion.Service) *ChampionHandler {
	return &ChampionHandler{service: service}
}

// Build handles GET /api/v1/champions/{champion}/build?role=
func (h *ChampionHandler) Build(w http.ResponseWriter, r *http.Request) {
	build, err := h.service.Build(r.Context(), mux.Vars(r)["champion"], r.URL.Query().Get("role"))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, build)
}
