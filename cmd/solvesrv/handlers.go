package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/pthomasfournet/nytspellingbeesolver-sub001/config"
	"github.com/pthomasfournet/nytspellingbeesolver-sub001/internal/auth"
	"github.com/pthomasfournet/nytspellingbeesolver-sub001/internal/dictionary"
	"github.com/pthomasfournet/nytspellingbeesolver-sub001/internal/puzzle"
	"github.com/pthomasfournet/nytspellingbeesolver-sub001/internal/solver"
	"github.com/pthomasfournet/nytspellingbeesolver-sub001/internal/solvestore"
)

type server struct {
	cfg   *config.Config
	dict  dictionary.Dictionary
	store *solvestore.Store // nil when persistence is disabled
}

func newServer(cfg *config.Config, dict dictionary.Dictionary, store *solvestore.Store) *server {
	return &server{cfg: cfg, dict: dict, store: store}
}

type solveRequest struct {
	Letters   string `json:"letters"`
	Required  string `json:"required"`
	MinLength int    `json:"min_length"`
	MaxLength int    `json:"max_length"`
}

type solveResponse struct {
	Status  string          `json:"status"`
	Matches []solver.Match  `json:"matches"`
	Stats   solver.RunStats `json:"stats"`
	RunID   string          `json:"run_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Err(err).Msg("writing response")
	}
}

func writeJSONError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// newEngine validates a request and builds an engine for it. The request is
// normalized in place so that whatever gets persisted or echoed back reflects
// the values the engine actually ran with.
func (s *server) newEngine(req *solveRequest) (*solver.Engine, error) {
	if len(req.Required) != 1 {
		return nil, fmt.Errorf("%w: required must be a single letter", puzzle.ErrInvalidSpec)
	}
	if req.MinLength == 0 {
		req.MinLength = puzzle.DefaultMinLength
	}
	alpha, err := puzzle.NewAlphabet(req.Letters, rune(req.Required[0]), req.MaxLength, req.MinLength)
	if err != nil {
		return nil, err
	}
	opts := []solver.Option{}
	if s.cfg.SolverWorkers > 0 {
		opts = append(opts, solver.WithWorkers(s.cfg.SolverWorkers))
	}
	if s.cfg.SolverBatchSize > 0 {
		opts = append(opts, solver.WithBatchSize(s.cfg.SolverBatchSize))
	}
	return solver.New(alpha, opts...), nil
}

// handleSolve runs one puzzle to completion. The request context doubles as
// the cancellation token: a client hanging up stops the run between batches.
func (s *server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "could not parse request")
		return
	}
	eng, err := s.newEngine(&req)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := eng.GenerateAll(r.Context(), s.dict, nil)
	if err != nil {
		log.Err(err).Msg("solve failed")
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := solveResponse{
		Status:  res.Status.String(),
		Matches: res.Matches,
		Stats:   res.Stats,
	}
	if s.store != nil && res.Status == solver.StatusComplete {
		resp.RunID = s.persistRun(r.Context(), req, res)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *server) persistRun(ctx context.Context, req solveRequest, res *solver.Result) string {
	run := &solvestore.Run{
		Letters:   req.Letters,
		Required:  req.Required,
		MinLength: req.MinLength,
		MaxLength: req.MaxLength,
		Status:    res.Status.String(),
		Evaluated: int64(res.Stats.Evaluated),
		Elapsed:   res.Stats.Elapsed,
		Matches:   res.Matches,
	}
	if err := s.store.SaveRun(ctx, run); err != nil {
		// History is best-effort; the solve itself succeeded.
		log.Err(err).Msg("could not save run")
		return ""
	}
	return run.ID.String()
}

func (s *server) handleRecentRuns(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	if user == nil {
		writeJSONError(w, http.StatusUnauthorized, "user not authenticated")
		return
	}
	if s.store == nil {
		writeJSONError(w, http.StatusNotFound, "run history disabled")
		return
	}
	log.Debug().Str("username", user.Username).Msg("listing runs")
	runs, err := s.store.RecentRuns(r.Context(), 20)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	if user == nil {
		writeJSONError(w, http.StatusUnauthorized, "user not authenticated")
		return
	}
	if s.store == nil {
		writeJSONError(w, http.StatusNotFound, "run history disabled")
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "bad run id")
		return
	}
	run, err := s.store.GetRun(r.Context(), id)
	if errors.Is(err, solvestore.ErrRunNotFound) {
		writeJSONError(w, http.StatusNotFound, "run not found")
		return
	}
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, run)
}
