package api_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/champguess/internal/api"
	"github.com/mcoot/champguess/internal/api/apierr"
	"github.com/mcoot/champguess/internal/api/response"
	"github.com/mcoot/champguess/internal/factory"
	"github.com/mcoot/champguess/internal/model"
	"github.com/mcoot/champguess/internal/preference"
	"github.com/mcoot/champguess/internal/testutil"
)

// testServer wraps the router built over a TestApp
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	app := factory.NewTestApp()
	router := api.NewRouter(api.RouterConfig{
		Logger:          testutil.NopLogger(),
		GameController:  app.GameController,
		PreferenceStore: app.Preferences,
		HubManager:      app.HubManager,
		ChampionService: app.Champions,
	})

	return &testServer{handler: router, app: app}
}

func (ts *testServer) request(method, path string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	switch b := body.(type) {
	case nil:
		reqBody = bytes.NewBuffer(nil)
	case string:
		reqBody = bytes.NewBufferString(b)
	default:
		raw, _ := json.Marshal(b)
		reqBody = bytes.NewBuffer(raw)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func (ts *testServer) startGame(t *testing.T, channel, user string) response.Session {
	t.Helper()

	rr := ts.request(http.MethodPost, "/api/v1/channels/"+channel+"/game", map[string]string{"user_id": user})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decode[response.Session](t, rr)
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v))
	return v
}

func errorCode(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[apierr.ErrorResponse](t, rr).Error.Code
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestUnknownRoute(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/nope", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeNotFound, errorCode(t, rr))
}

func TestStartGame(t *testing.T) {
	ts := newTestServer(t)

	session := ts.startGame(t, "general", "alice")

	assert.Equal(t, "general", session.ChannelID)
	assert.Equal(t, "alice", session.UserID)
	assert.True(t, session.Active)
	assert.Equal(t, "normal", session.Difficulty)
	assert.Equal(t, "Normal", session.DifficultyName)
	assert.False(t, session.AutoHints)
	assert.Equal(t, 5, session.AttemptsLeft)
	assert.Empty(t, session.Champion, "champion must stay hidden while the game runs")
}

func TestStartGameValidation(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/channels/general/game", map[string]string{"user_id": " "})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidRequest, errorCode(t, rr))

	rr = ts.request(http.MethodPost, "/api/v1/channels/general/game", `{"user_id":"a","extra":1}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/channels/general/game", "not json")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetGame(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/channels/general/game", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeSessionNotFound, errorCode(t, rr))

	ts.startGame(t, "general", "alice")
	rr = ts.request(http.MethodGet, "/api/v1/channels/general/game", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestGuessFlow(t *testing.T) {
	ts := newTestServer(t)
	ts.startGame(t, "general", "alice")

	rr := ts.request(http.MethodPost, "/api/v1/channels/general/game/guess", map[string]string{"text": "Garen"})
	require.Equal(t, http.StatusOK, rr.Code)
	wrong := decode[response.Guess](t, rr)
	assert.False(t, wrong.IsCorrect)
	assert.Equal(t, 4, wrong.Session.AttemptsLeft)
	assert.NotContains(t, wrong.Suggestions, "Darius")

	rr = ts.request(http.MethodPost, "/api/v1/channels/general/game/guess", map[string]string{"text": "garen"})
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeAlreadyGuessed, errorCode(t, rr))

	ts.app.MockClock.Advance(10 * time.Second)
	rr = ts.request(http.MethodPost, "/api/v1/channels/general/game/guess", map[string]string{"text": "darius"})
	require.Equal(t, http.StatusOK, rr.Code)
	right := decode[response.Guess](t, rr)
	assert.True(t, right.IsCorrect)
	assert.True(t, right.IsWon)
	assert.True(t, right.IsGameOver)
	assert.Positive(t, right.Score)
	assert.Equal(t, "Darius", right.Session.Champion)

	rr = ts.request(http.MethodPost, "/api/v1/channels/general/game/guess", map[string]string{"text": "lux"})
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeSessionNotActive, errorCode(t, rr))
}

func TestEmptyGuessRejected(t *testing.T) {
	ts := newTestServer(t)
	ts.startGame(t, "general", "alice")

	rr := ts.request(http.MethodPost, "/api/v1/channels/general/game/guess", map[string]string{"text": "  "})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHintsUntilExhausted(t *testing.T) {
	ts := newTestServer(t)
	ts.app.Preferences.Update("alice", preference.Update{Difficulty: ptr("expert"), Language: ptr("en")})
	ts.startGame(t, "general", "alice")

	var last response.Hint
	for i := 0; i < 3; i++ {
		rr := ts.request(http.MethodPost, "/api/v1/channels/general/game/hint", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		last = decode[response.Hint](t, rr)
	}
	assert.False(t, last.CanGetMore)
	assert.Equal(t, "title", last.HintType)
	assert.Equal(t, 3, last.Session.HintsUsed)

	rr := ts.request(http.MethodPost, "/api/v1/channels/general/game/hint", nil)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeNoHintsLeft, errorCode(t, rr))
}

func TestGiveUpRevealsChampion(t *testing.T) {
	ts := newTestServer(t)
	ts.app.MockRandom.QueueIntn(3)
	ts.startGame(t, "general", "alice")

	rr := ts.request(http.MethodPost, "/api/v1/channels/general/game/giveup", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	resp := decode[response.GiveUp](t, rr)
	assert.Equal(t, "Lux", resp.Champion)
	assert.Equal(t, "given_up", resp.Session.Outcome)
	assert.Zero(t, resp.Session.Score)
}

func TestEndGame(t *testing.T) {
	ts := newTestServer(t)
	ts.startGame(t, "general", "alice")

	rr := ts.request(http.MethodDelete, "/api/v1/channels/general/game", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodDelete, "/api/v1/channels/general/game", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestSessionStats(t *testing.T) {
	ts := newTestServer(t)
	ts.startGame(t, "general", "alice")
	ts.request(http.MethodPost, "/api/v1/channels/general/game/guess", map[string]string{"text": "lux"})
	ts.app.MockClock.Advance(42 * time.Second)

	rr := ts.request(http.MethodGet, "/api/v1/channels/general/game/stats", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	stats := decode[response.SessionStats](t, rr)
	assert.Equal(t, 1, stats.Attempts)
	assert.Equal(t, 42, stats.DurationSeconds)
}

func TestListSessionsAndGlobalStats(t *testing.T) {
	ts := newTestServer(t)
	ts.startGame(t, "beta", "alice")
	ts.startGame(t, "alpha", "bob")

	rr := ts.request(http.MethodGet, "/api/v1/sessions", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[response.SessionList](t, rr).Sessions, 2)

	rr = ts.request(http.MethodGet, "/api/v1/stats", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	stats := decode[response.GlobalStats](t, rr)
	assert.Equal(t, 2, stats.Sessions)
	assert.Equal(t, []string{"alpha", "beta"}, stats.ChannelIDs)
	require.NotNil(t, stats.OldestStart)
}

func TestChampionSuggestions(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/champions/suggestions?q=ar&locale=en", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	resp := decode[response.Suggestions](t, rr)
	assert.Equal(t, "ar", resp.Query)
	assert.Equal(t, []string{"Darius", "Garen"}, resp.Suggestions)

	rr = ts.request(http.MethodGet, "/api/v1/champions/suggestions?q=ar&max=1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[response.Suggestions](t, rr).Suggestions, 1)

	rr = ts.request(http.MethodGet, "/api/v1/champions/suggestions?q=ar&max=zero", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/champions/suggestions?q=ar&locale=es_MX", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/champions/suggestions?q=ar&locale=fr_FR", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestChampionBuild(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/champions/Darius/build", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	build := decode[model.ChampionBuild](t, rr)
	assert.Equal(t, "Darius", build.ChampionID)
	assert.Equal(t, "14.21.1", build.Patch)
	require.Len(t, build.Roles, 2)
	assert.Equal(t, model.RoleTop, build.Roles[0].Role)
	assert.Equal(t, "Precision", build.Roles[0].RunePage.Primary.Name)

	rr = ts.request(http.MethodGet, "/api/v1/champions/mf/build?role=adc", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	build = decode[model.ChampionBuild](t, rr)
	assert.Equal(t, "MissFortune", build.ChampionID)
	require.Len(t, build.Roles, 1)
	assert.Equal(t, "Heal", build.Roles[0].SummonerSpells.Second)

	rr = ts.request(http.MethodGet, "/api/v1/champions/Darius/build?role=support", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeBuildNotFound, errorCode(t, rr))

	rr = ts.request(http.MethodGet, "/api/v1/champions/Darius/build?role=bot", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/champions/teemo/build", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeChampionNotFound, errorCode(t, rr))
}

func TestPreferences(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/users/alice/preferences", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	pref := decode[response.Preference](t, rr)
	assert.Equal(t, "es", pref.Language)
	assert.Equal(t, "normal", pref.Difficulty)

	rr = ts.request(http.MethodPatch, "/api/v1/users/alice/preferences", map[string]any{"language": "mx", "auto_hints": true})
	require.Equal(t, http.StatusOK, rr.Code)
	pref = decode[response.Preference](t, rr)
	assert.Equal(t, "mx", pref.Language)
	assert.Equal(t, "es_MX", pref.Locale)
	assert.True(t, pref.AutoHints)
	assert.Equal(t, "normal", pref.Difficulty)

	assert.Equal(t, "Normal", pref.DifficultyName)

	rr = ts.request(http.MethodPatch, "/api/v1/users/alice/preferences", map[string]any{"difficulty": "impossible"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "difficulty must be one of easy, normal, hard, expert")

	rr = ts.request(http.MethodPatch, "/api/v1/users/alice/preferences", map[string]any{"language": "fr"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPreferenceStats(t *testing.T) {
	ts := newTestServer(t)
	ts.request(http.MethodPatch, "/api/v1/users/alice/preferences", map[string]any{"language": "en"})
	ts.request(http.MethodGet, "/api/v1/users/bob/preferences", nil)

	rr := ts.request(http.MethodGet, "/api/v1/preferences/stats", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	stats := decode[response.PreferenceStats](t, rr)
	assert.Equal(t, 2, stats.TotalUsers)
	assert.Equal(t, 1, stats.Languages["en"])
	assert.Equal(t, 1, stats.Languages["es"])
	assert.Equal(t, 2, stats.Difficulties["normal"])
}

func TestPreferenceExportImport(t *testing.T) {
	source := newTestServer(t)
	source.request(http.MethodPatch, "/api/v1/users/alice/preferences", map[string]any{"difficulty": "hard"})

	rr := source.request(http.MethodGet, "/api/v1/preferences/export", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	exported := rr.Body.String()
	assert.Contains(t, exported, "alice")
	assert.Contains(t, exported, "\n  \"alice\": {", "snapshot is written indented")
	assert.Equal(t, strconv.Itoa(len(exported)), rr.Header().Get("Content-Length"))

	target := newTestServer(t)
	rr = target.request(http.MethodPost, "/api/v1/preferences/import", exported)
	require.Equal(t, http.StatusOK, rr.Code)
	report := decode[preference.ImportReport](t, rr)
	assert.Equal(t, 1, report.Imported)

	imported, ok := target.app.Preferences.Peek("alice")
	require.True(t, ok)
	assert.Equal(t, "hard", string(imported.Difficulty))

	rr = target.request(http.MethodPost, "/api/v1/preferences/import", strings.Repeat("{", 3))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPreferenceUsersFilter(t *testing.T) {
	ts := newTestServer(t)
	ts.request(http.MethodPatch, "/api/v1/users/carol/preferences", map[string]any{"language": "en"})
	ts.request(http.MethodPatch, "/api/v1/users/alice/preferences", map[string]any{"language": "en", "difficulty": "hard"})
	ts.request(http.MethodGet, "/api/v1/users/bob/preferences", nil)

	rr := ts.request(http.MethodGet, "/api/v1/preferences/users?language=en", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []string{"alice", "carol"}, decode[response.UserList](t, rr).Users)

	rr = ts.request(http.MethodGet, "/api/v1/preferences/users?difficulty=normal", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []string{"bob", "carol"}, decode[response.UserList](t, rr).Users)

	rr = ts.request(http.MethodGet, "/api/v1/preferences/users?difficulty=expert", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, decode[response.UserList](t, rr).Users)

	rr = ts.request(http.MethodGet, "/api/v1/preferences/users?language=fr", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "language must be one of es, en, mx")

	rr = ts.request(http.MethodGet, "/api/v1/preferences/users", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/preferences/users?language=en&difficulty=hard", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

// readEvent reads one SSE frame and returns its event name and data
func readEvent(t *testing.T, r *bufio.Reader) (string, string) {
	t.Helper()

	var name, data string
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimSuffix(line, "\n")
		switch {
		case line == "":
			return name, data
		case strings.HasPrefix(line, "event: "):
			name = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data += strings.TrimPrefix(line, "data: ")
		}
	}
}

func TestChannelEventStream(t *testing.T) {
	ts := newTestServer(t)
	srv := httptest.NewServer(ts.handler)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/v1/channels/general/events?user=watcher", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	name, _ := readEvent(t, reader)
	require.Equal(t, "connected", name)

	hub := ts.app.HubManager.GetHub("general")
	require.NotNil(t, hub)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	ts.startGame(t, "general", "alice")
	rr := ts.request(http.MethodPost, "/api/v1/channels/general/game/giveup", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	name, data := readEvent(t, reader)
	assert.Equal(t, string(model.EventGameStarted), name)
	var started model.Event
	require.NoError(t, json.Unmarshal([]byte(data), &started))
	assert.Equal(t, "alice", started.UserID)
	assert.Empty(t, started.Champion)

	name, data = readEvent(t, reader)
	assert.Equal(t, string(model.EventGameGivenUp), name)
	var givenUp model.Event
	require.NoError(t, json.Unmarshal([]byte(data), &givenUp))
	assert.Equal(t, "Darius", givenUp.Champion)
	assert.Equal(t, 0, givenUp.Score)
}

func ptr[T any](v T) *T {
	return &v
}
