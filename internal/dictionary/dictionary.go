// Package dictionary provides the word sets the solver tests candidates
// against. The solver only needs membership; providers that build the set
// (word list files, sqlite lexicon databases) live here too.
package dictionary

import "strings"

// Dictionary is an O(1)-amortized membership test. Contains takes a byte
// slice so the solver's hot loop can look up a reused decode buffer without
// allocating. A non-nil error means the dictionary can no longer be queried
// and aborts the run.
type Dictionary interface {
	Contains(word []byte) (bool, error)
	Len() int
}

// Set is the standard in-memory dictionary. Words are lowercased once at
// construction, never per lookup.
type Set map[string]struct{}

// NewSet builds a Set from words, case-folding each one.
func NewSet(words []string) Set {
	s := make(Set, len(words))
	for _, w := range words {
		s.Add(w)
	}
	return s
}

// Add inserts a single word, case-folded.
func (s Set) Add(word string) {
	s[strings.ToLower(word)] = struct{}{}
}

// Contains implements Dictionary. The string conversion on a map index does
// not allocate.
func (s Set) Contains(word []byte) (bool, error) {
	_, ok := s[string(word)]
	return ok, nil
}

// Len implements Dictionary.
func (s Set) Len() int { return len(s) }
