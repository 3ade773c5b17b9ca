package handler

import (
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/gorilla/mux"

	"github.com/mcoot/champguess/internal/api/request"
	"github.com/mcoot/champguess/internal/api/response"
	"github.com/mcoot/champguess/internal/model"
	"github.com/mcoot/champguess/internal/preference"
)

// PreferenceHandler handles user preference endpoints
type PreferenceHandler struct {
	store *preference.Store
}

// NewPreferenceHandler creates a new preference handler
func NewPreferenceHandler(store *preference.Store) *PreferenceHandler {
	return &PreferenceHandler{store: store}
}

// Get handles GET /api/v1/users/{user}/preferences
func (h *PreferenceHandler) Get(w http.ResponseWriter, r *http.Request) {
	pref := h.store.Get(mux.Vars(r)["user"])
	response.JSON(w, http.StatusOK, response.PreferenceFromModel(pref))
}

// Update handles PATCH /api/v1/users/{user}/preferences
func (h *PreferenceHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req request.UpdatePreferenceRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	if req.Language != nil {
		if _, ok := model.ParseLanguage(*req.Language); !ok {
			WriteError(w, mustBeOneOf("language", model.ValidLanguages()))
			return
		}
	}
	if req.Difficulty != nil {
		if _, ok := model.ParseDifficulty(*req.Difficulty); !ok {
			WriteError(w, mustBeOneOf("difficulty", model.ValidDifficulties()))
			return
		}
	}

	pref := h.store.Update(mux.Vars(r)["user"], preference.Update{
		Language:   req.Language,
		Difficulty: req.Difficulty,
		AutoHints:  req.AutoHints,
	})
	response.JSON(w, http.StatusOK, response.PreferenceFromModel(pref))
}

// Stats handles GET /api/v1/preferences/stats
func (h *PreferenceHandler) Stats(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, response.PreferenceStatsFromStore(h.store.Stats()))
}

// Users handles GET /api/v1/preferences/users?language=|difficulty=
func (h *PreferenceHandler) Users(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rawLang, rawDiff := q.Get("language"), q.Get("difficulty")

	var users []string
	switch {
	case rawLang != "" && rawDiff != "":
		WriteError(w, NewInvalidRequestError("filter by language or difficulty, not both"))
		return
	case rawLang != "":
		lang, ok := model.ParseLanguage(rawLang)
		if !ok {
			WriteError(w, mustBeOneOf("language", model.ValidLanguages()))
			return
		}
		users = h.store.UsersByLanguage(lang)
	case rawDiff != "":
		diff, ok := model.ParseDifficulty(rawDiff)
		if !ok {
			WriteError(w, mustBeOneOf("difficulty", model.ValidDifficulties()))
			return
		}
		users = h.store.UsersByDifficulty(diff)
	default:
		WriteError(w, NewInvalidRequestError("language or difficulty query parameter is required"))
		return
	}

	sort.Strings(users)
	response.JSON(w, http.StatusOK, response.UserList{Users: users})
}

// Export handles GET /api/v1/preferences/export
func (h *PreferenceHandler) Export(w http.ResponseWriter, _ *http.Request) {
	snapshot := h.store.ExportAll()
	response.Encoded(w, http.StatusOK, func(out io.Writer) error {
		return preference.WriteSnapshot(out, snapshot)
	})
}

// Import handles POST /api/v1/preferences/import
func (h *PreferenceHandler) Import(w http.ResponseWriter, r *http.Request) {
	snapshot, err := preference.ReadSnapshot(r.Body)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, h.store.ImportAll(snapshot))
}

func mustBeOneOf[T ~string](field string, values []T) error {
	names := make([]string, len(values))
	for i, v := range values {
		names[i] = string(v)
	}
	return NewInvalidRequestError(fmt.Sprintf("%s must be one of %s", field, strings.Join(names, ", ")))
}
