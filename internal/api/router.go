package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/champguess/internal/api/apierr"
	"github.com/mcoot/champguess/internal/api/handler"
	"github.com/mcoot/champguess/internal/api/response"
	"github.com/mcoot/champguess/internal/middleware"
	"github.com/mcoot/champguess/internal/preference"
	"github.com/mcoot/champguess/internal/services/champion"
	"github.com/mcoot/champguess/internal/services/game"
	"github.com/mcoot/champguess/internal/sse"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	GameController  *game.Controller
	PreferenceStore *preference.Store
	HubManager      *sse.HubManager   // Optional; nil disables the events stream
	ChampionService *champion.Service // Optional; nil disables build lookups
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(notFoundHandler)

	gameHandler := handler.NewGameHandler(cfg.GameController)
	prefHandler := handler.NewPreferenceHandler(cfg.PreferenceStore)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger, apiPanicHandler))
	api.Use(middleware.Logging(cfg.Logger))

	// Game routes, one session per channel
	channels := api.PathPrefix("/channels/{channel}").Subrouter()
	channels.HandleFunc("/game", gameHandler.Start).Methods(http.MethodPost)
	channels.HandleFunc("/game", gameHandler.Get).Methods(http.MethodGet)
	channels.HandleFunc("/game", gameHandler.End).Methods(http.MethodDelete)
	channels.HandleFunc("/game/guess", gameHandler.Guess).Methods(http.MethodPost)
	channels.HandleFunc("/game/hint", gameHandler.Hint).Methods(http.MethodPost)
	channels.HandleFunc("/game/giveup", gameHandler.GiveUp).Methods(http.MethodPost)
	channels.HandleFunc("/game/stats", gameHandler.Stats).Methods(http.MethodGet)
	if cfg.HubManager != nil {
		channels.HandleFunc("/events", handler.NewEventsHandler(cfg.HubManager).Stream).Methods(http.MethodGet)
	}

	api.HandleFunc("/sessions", gameHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/stats", gameHandler.GlobalStats).Methods(http.MethodGet)
	api.HandleFunc("/champions/suggestions", gameHandler.Suggestions).Methods(http.MethodGet)
	if cfg.ChampionService != nil {
		api.HandleFunc("/champions/{champion}/build", handler.NewChampionHandler(cfg.ChampionService).Build).Methods(http.MethodGet)
	}

	// Preference routes
	api.HandleFunc("/users/{user}/preferences", prefHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/users/{user}/preferences", prefHandler.Update).Methods(http.MethodPatch)
	api.HandleFunc("/preferences/stats", prefHandler.Stats).Methods(http.MethodGet)
	api.HandleFunc("/preferences/users", prefHandler.Users).Methods(http.MethodGet)
	api.HandleFunc("/preferences/export", prefHandler.Export).Methods(http.MethodGet)
	api.HandleFunc("/preferences/import", prefHandler.Import).Methods(http.MethodPost)

	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, response.Health{Status: "ok"})
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	apierr.WriteError(w, apierr.NewNotFoundError())
}

func apiPanicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	apierr.WriteError(w, apierr.NewInternalError())
}
