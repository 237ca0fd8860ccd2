package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type wsFrame struct {
	Type      string `json:"type"`
	Processed uint64 `json:"processed"`
	Total     uint64 `json:"total"`
	Status    string `json:"status"`
	// matches is a running count in progress frames and a match array in
	// result frames, so decode it per frame type.
	Matches json.RawMessage `json:"matches"`
	Error   string          `json:"error"`
}

func dialSolveWS(t *testing.T) *websocket.Conn {
	t.Helper()
	srv := testServer()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws/solve", srv.handleSolveWS)
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	url := strings.Replace(ts.URL, "http", "ws", 1) + "/ws/solve"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestSolveWSStreamsProgressThenResult(t *testing.T) {
	conn := dialSolveWS(t)
	require.NoError(t, conn.WriteJSON(solveRequest{
		Letters: "ptriaol", Required: "t", MinLength: 4, MaxLength: 7,
	}))

	progressFrames := 0
	var result *wsFrame
	for result == nil {
		_, msg, err := conn.ReadMessage()
		require.NoError(t, err)
		var f wsFrame
		require.NoError(t, json.Unmarshal(msg, &f))
		switch f.Type {
		case "progress":
			progressFrames++
			assert.Equal(t, uint64(960400), f.Total)
			assert.LessOrEqual(t, f.Processed, f.Total)
		case "result":
			result = &f
		default:
			t.Fatalf("unexpected frame type %q (error: %s)", f.Type, f.Error)
		}
	}

	// The reporter's guaranteed final snapshot means at least one progress
	// frame arrives even for runs faster than the throttle interval.
	assert.GreaterOrEqual(t, progressFrames, 1)
	assert.Equal(t, "complete", result.Status)
	var matches []struct {
		Word   string `json:"word"`
		Length int    `json:"length"`
	}
	require.NoError(t, json.Unmarshal(result.Matches, &matches))
	got := []string{}
	for _, m := range matches {
		got = append(got, m.Word)
	}
	assert.Equal(t, []string{"tail", "trio", "pilot"}, got)
}

func TestSolveWSRejectsBadRequest(t *testing.T) {
	conn := dialSolveWS(t)
	require.NoError(t, conn.WriteJSON(solveRequest{
		Letters: "ptriaol", Required: "z", MaxLength: 7,
	}))

	var f wsFrame
	require.NoError(t, conn.ReadJSON(&f))
	assert.Equal(t, "error", f.Type)
	assert.NotEmpty(t, f.Error)
}
