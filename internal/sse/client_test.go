package sse

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/champguess/internal/testutil"
)

func readEvent(t *testing.T, r *bufio.Reader) string {
	t.Helper()
	var b strings.Builder
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		if line == "\n" {
			return b.String()
		}
		b.WriteString(line)
	}
}

func TestServeSSE(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	hub := manager.GetOrCreateHub("c1")
	defer manager.RemoveHub("c1")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ServeSSE(w, r, hub, "alice")
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	assert.Equal(t, "event: connected\ndata: {\"status\":\"connected\"}\n", readEvent(t, reader))

	waitForClients(t, hub, 1)
	hub.BroadcastEvent("game_started", `{"channel_id":"c1"}`)
	assert.Equal(t, "event: game_started\ndata: {\"channel_id\":\"c1\"}\n", readEvent(t, reader))

	cancel()
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 5*time.Millisecond)
}

func TestServeSSE_ClosedHub(t *testing.T) {
	hub := NewHub("c1", testutil.NopLogger())
	hub.Close()

	rec := httptest.NewRecorder()
	ServeSSE(rec, httptest.NewRequest(http.MethodGet, "/", nil), hub, "alice")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
