package main

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/pthomasfournet/nytspellingbeesolver-sub001/internal/solver"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

type wsProgressFrame struct {
	Type      string `json:"type"` // "progress"
	Processed uint64 `json:"processed"`
	Total     uint64 `json:"total"`
	Matches   uint64 `json:"matches"`
}

type wsResultFrame struct {
	Type string `json:"type"` // "result" or "error"
	solveResponse
	Error string `json:"error,omitempty"`
}

// handleSolveWS accepts one solve request over a websocket and streams
// throttled progress frames followed by the final result. Progress deltas
// arrive from the solver's reporter goroutine; they are funneled through a
// buffered channel to keep a single websocket writer, and dropped when the
// client cannot keep up.
func (s *server) handleSolveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Err(err).Msg("ws upgrade failed")
		return
	}
	defer conn.Close()

	var req solveRequest
	if err := conn.ReadJSON(&req); err != nil {
		conn.WriteJSON(wsResultFrame{Type: "error", Error: "could not parse request"})
		return
	}
	eng, err := s.newEngine(&req)
	if err != nil {
		conn.WriteJSON(wsResultFrame{Type: "error", Error: err.Error()})
		return
	}

	frames := make(chan wsProgressFrame, 8)
	progress := func(processed, total, matches uint64) {
		select {
		case frames <- wsProgressFrame{Type: "progress", Processed: processed, Total: total, Matches: matches}:
		default:
		}
	}

	type outcome struct {
		res *solver.Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := eng.GenerateAll(r.Context(), s.dict, progress)
		close(frames)
		done <- outcome{res, err}
	}()

	for f := range frames {
		if err := conn.WriteJSON(f); err != nil {
			// Client went away; stop writing but let the run finish.
			log.Debug().Err(err).Msg("ws write failed")
			break
		}
	}
	o := <-done
	if o.err != nil {
		conn.WriteJSON(wsResultFrame{Type: "error", Error: o.err.Error()})
		return
	}
	conn.WriteJSON(wsResultFrame{
		Type: "result",
		solveResponse: solveResponse{
			Status:  o.res.Status.String(),
			Matches: o.res.Matches,
			Stats:   o.res.Stats,
		},
	})
}
