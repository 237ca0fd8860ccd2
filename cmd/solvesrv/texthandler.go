package main

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/pthomasfournet/nytspellingbeesolver-sub001/internal/solver"
)

// Useful for chat bots.

const (
	txtLimit = 375
)

func writeError(w http.ResponseWriter, err string) {
	w.WriteHeader(400)
	w.Write([]byte(err))
}

func plainTextHandler(srv *server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, ok := r.URL.Query()["method"]
		if !ok || len(method[0]) < 1 {
			writeError(w, "method required")
			return
		}
		switch method[0] {
		case "solve":
			solveText(srv, w, r)
		default:
			writeError(w, "method not found")
		}
	})
}

func writeMatches(w http.ResponseWriter, matches []solver.Match) {
	var s strings.Builder

	if len(matches) == 0 {
		w.Write([]byte("no words found"))
		return
	}
	plural := ""
	if len(matches) > 1 {
		plural = "s"
	}

	s.WriteString(fmt.Sprintf("%d word%s found: ", len(matches), plural))
	for _, m := range matches {
		s.WriteString(m.Word)
		s.WriteString(" ")
		if s.Len() > txtLimit {
			s.WriteString(" (...truncated)")
			break
		}
	}
	w.Write([]byte(s.String()))
}

func solveText(srv *server, w http.ResponseWriter, r *http.Request) {
	letters, ok := r.URL.Query()["letters"]
	if !ok || len(letters[0]) < 1 {
		writeError(w, "letters required")
		return
	}
	required, ok := r.URL.Query()["required"]
	if !ok || len(required[0]) < 1 {
		// Puzzle convention: the first letter is the center one.
		required = []string{string(letters[0][0])}
	}
	maxLength := len(letters[0]) + 1
	if ml, ok := r.URL.Query()["max"]; ok {
		if n, err := strconv.Atoi(ml[0]); err == nil {
			maxLength = n
		}
	}

	eng, err := srv.newEngine(&solveRequest{
		Letters:   letters[0],
		Required:  required[0],
		MaxLength: maxLength,
	})
	if err != nil {
		writeError(w, err.Error())
		return
	}
	res, err := eng.GenerateAll(r.Context(), srv.dict, nil)
	if err != nil {
		writeError(w, err.Error())
		return
	}
	writeMatches(w, res.Matches)
}
