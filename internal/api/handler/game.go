package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/mcoot/champguess/internal/api/request"
	"github.com/mcoot/champguess/internal/api/response"
	"github.com/mcoot/champguess/internal/model"
	"github.com/mcoot/champguess/internal/services/game"
)

// GameHandler handles game-related endpoints
type GameHandler struct {
	gameController *game.Controller
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameController *game.Controller) *GameHandler {
	return &GameHandler{gameController: gameController}
}

// Start handles POST /api/v1/channels/{channel}/game
func (h *GameHandler) Start(w http.ResponseWriter, r *http.Request) {
	channel := mux.Vars(r)["channel"]

	var req request.StartGameRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	session, err := h.gameController.StartGame(r.Context(), req.UserID, channel)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.SessionFromModel(session))
}

// Get handles GET /api/v1/channels/{channel}/game
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, err := h.gameController.GetSession(r.Context(), mux.Vars(r)["channel"])
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(session))
}

// End handles DELETE /api/v1/channels/{channel}/game
func (h *GameHandler) End(w http.ResponseWriter, r *http.Request) {
	existed, err := h.gameController.EndSession(r.Context(), mux.Vars(r)["channel"])
	if err != nil {
		WriteError(w, err)
		return
	}
	if !existed {
		WriteError(w, model.ErrSessionNotFound)
		return
	}

	response.NoContent(w)
}

// Guess handles POST /api/v1/channels/{channel}/game/guess
func (h *GameHandler) Guess(w http.ResponseWriter, r *http.Request) {
	var req request.GuessRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	result, err := h.gameController.MakeGuess(r.Context(), mux.Vars(r)["channel"], req.Text)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GuessFromResult(result))
}

// Hint handles POST /api/v1/channels/{channel}/game/hint
func (h *GameHandler) Hint(w http.ResponseWriter, r *http.Request) {
	result, err := h.gameController.GetHint(r.Context(), mux.Vars(r)["channel"])
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.HintFromResult(result))
}

// GiveUp handles POST /api/v1/channels/{channel}/game/giveup
func (h *GameHandler) GiveUp(w http.ResponseWriter, r *http.Request) {
	result, err := h.gameController.GiveUp(r.Context(), mux.Vars(r)["channel"])
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GiveUpFromResult(result))
}

// Stats handles GET /api/v1/channels/{channel}/game/stats
func (h *GameHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.gameController.SessionStats(r.Context(), mux.Vars(r)["channel"])
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionStatsFromModel(stats))
}

// List handles GET /api/v1/sessions
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.gameController.ListSessions(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	resp := response.SessionList{Sessions: make([]response.Session, 0, len(sessions))}
	for _, s := range sessions {
		resp.Sessions = append(resp.Sessions, response.SessionFromModel(s))
	}
	response.JSON(w, http.StatusOK, resp)
}

// GlobalStats handles GET /api/v1/stats
func (h *GameHandler) GlobalStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.gameController.GlobalStats(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GlobalStatsFromModel(stats))
}

// Suggestions handles GET /api/v1/champions/suggestions?q=&locale=&max=
func (h *GameHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	partial := query.Get("q")

	maxResults := 0
	if raw := query.Get("max"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			WriteError(w, NewInvalidRequestError("max must be a positive integer"))
			return
		}
		maxResults = n
	}

	locale, ok := parseLocale(query.Get("locale"))
	if !ok {
		WriteError(w, NewInvalidRequestError("unsupported locale"))
		return
	}

	names, err := h.gameController.Suggest(r.Context(), locale, partial, maxResults)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Suggestions{Query: partial, Suggestions: names})
}

// parseLocale accepts a catalog locale or a language code; empty means the default
func parseLocale(raw string) (model.Locale, bool) {
	if raw == "" {
		return model.DefaultLanguage.Locale(), true
	}
	if lang, ok := model.ParseLanguage(strings.ToLower(raw)); ok {
		return lang.Locale(), true
	}
	loc := model.Locale(raw)
	if model.LanguageForLocale(loc).Locale() != loc {
		return "", false
	}
	return loc, true
}
