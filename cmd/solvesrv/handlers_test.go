package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthomasfournet/nytspellingbeesolver-sub001/config"
	"github.com/pthomasfournet/nytspellingbeesolver-sub001/internal/dictionary"
)

func testServer() *server {
	dict := dictionary.NewSet([]string{"pilot", "trio", "train", "polar", "tail"})
	return newServer(&config.Config{SolverWorkers: 2}, dict, nil)
}

func postSolve(t *testing.T, srv *server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/solve", strings.NewReader(body))
	w := httptest.NewRecorder()
	srv.handleSolve(w, req)
	return w
}

func TestHandleSolve(t *testing.T) {
	w := postSolve(t, testServer(),
		`{"letters":"ptriaol","required":"t","min_length":4,"max_length":7}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp solveResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "complete", resp.Status)
	got := []string{}
	for _, m := range resp.Matches {
		got = append(got, m.Word)
	}
	assert.Equal(t, []string{"tail", "trio", "pilot"}, got)
	assert.Equal(t, uint64(960400), resp.Stats.Evaluated)
}

func TestHandleSolveDefaultsMinLength(t *testing.T) {
	w := postSolve(t, testServer(), `{"letters":"ptriaol","required":"t","max_length":4}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp solveResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	// min defaults to 4, so only the 4-letter bucket runs.
	assert.Equal(t, uint64(2401), resp.Stats.Evaluated)
}

// Run records must carry the min length the engine actually used, not the
// zero value a defaulted request arrived with.
func TestNewEngineNormalizesMinLength(t *testing.T) {
	srv := testServer()

	req := solveRequest{Letters: "ptriaol", Required: "t", MaxLength: 7}
	_, err := srv.newEngine(&req)
	require.NoError(t, err)
	assert.Equal(t, 4, req.MinLength)

	req = solveRequest{Letters: "ptriaol", Required: "t", MinLength: 5, MaxLength: 7}
	_, err = srv.newEngine(&req)
	require.NoError(t, err)
	assert.Equal(t, 5, req.MinLength)
}

func TestHandleSolveRejectsBadSpecs(t *testing.T) {
	cases := []string{
		`{"letters":"ptriaol","required":"z","max_length":7}`,  // required not in alphabet
		`{"letters":"ptriaolp","required":"t","max_length":7}`, // duplicate letter
		`{"letters":"ptriaol","required":"tt","max_length":7}`, // multi-char required
		`not json`,
	}
	for _, body := range cases {
		w := postSolve(t, testServer(), body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body: %s", body)
	}
}

func TestRequireToken(t *testing.T) {
	secret := []byte("test-secret")
	handler := requireToken(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// No token.
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/runs", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Garbage token.
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/runs", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Valid token.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "42",
		"usn": "tester",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(secret)
	require.NoError(t, err)
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/runs", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPlainTextSolve(t *testing.T) {
	srv := testServer()
	h := plainTextHandler(srv)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/txt?method=solve&letters=ptriaol&required=t&max=7", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "3 words found")
	assert.Contains(t, body, "pilot")
	assert.NotContains(t, body, "train")

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/txt?method=frobnicate", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
