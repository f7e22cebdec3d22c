package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cbodonnell/snake/pkg/game/types"
	"github.com/cbodonnell/snake/pkg/scores"
	"github.com/cbodonnell/snake/pkg/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*httptest.Server, *state.InMemoryStateManager) {
	t.Helper()
	stateManager := state.NewInMemoryStateManager()
	require.NoError(t, stateManager.Set(context.Background(), "s1", types.Snapshot{
		GameID:   "g1",
		Tick:     3,
		Snake:    []types.Cell{{X: 13, Y: 10}},
		Food:     types.Cell{X: 2, Y: 2},
		GridSize: 20,
		Phase:    types.PhaseRunning,
	}))
	server := httptest.NewServer(NewRouter(NewAPIServerOptions{
		BestScore:    scores.NewTracker(12),
		StateManager: stateManager,
	}))
	t.Cleanup(server.Close)
	return server, stateManager
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	res, err := http.Get(url)
	require.NoError(t, err)
	defer res.Body.Close()
	var body json.RawMessage
	if res.Header.Get("Content-Type") == "application/json" {
		require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	}
	return res, body
}

func TestAPI(t *testing.T) {
	server, _ := newTestServer(t)

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "best score",
			path:       "/best-score",
			wantStatus: http.StatusOK,
			wantBody:   `{"bestScore":12}`,
		},
		{
			name:       "version",
			path:       "/version",
			wantStatus: http.StatusOK,
			wantBody:   `{"version":"dev"}`,
		},
		{
			name:       "list sessions",
			path:       "/sessions",
			wantStatus: http.StatusOK,
			wantBody:   `[{"sessionId":"s1","gameId":"g1","phase":"running","score":0,"length":1,"tick":3}]`,
		},
		{
			name:       "get session",
			path:       "/sessions/s1",
			wantStatus: http.StatusOK,
			wantBody:   `{"gameId":"g1","tick":3,"snake":[{"x":13,"y":10}],"food":{"x":2,"y":2},"gridSize":20,"score":0,"phase":"running"}`,
		},
		{
			name:       "unknown session",
			path:       "/sessions/nope",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "healthz",
			path:       "/healthz",
			wantStatus: http.StatusOK,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, body := get(t, server.URL+tt.path)
			assert.Equal(t, tt.wantStatus, res.StatusCode)
			assert.Equal(t, "*", res.Header.Get("Access-Control-Allow-Origin"))
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, string(body))
			}
		})
	}
}

func TestAPI_methodNotAllowed(t *testing.T) {
	server, _ := newTestServer(t)

	res, err := http.Post(server.URL+"/best-score", "application/json", nil)
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
}

func TestAPI_preflight(t *testing.T) {
	server, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, server.URL+"/sessions", nil)
	require.NoError(t, err)
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusNoContent, res.StatusCode)
	assert.Equal(t, "*", res.Header.Get("Access-Control-Allow-Origin"))
}
