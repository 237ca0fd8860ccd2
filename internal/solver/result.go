package solver

import (
	"sort"
	"time"
)

// Status is the terminal state of a run.
type Status int

const (
	// StatusComplete - every index in the space was visited.
	StatusComplete Status = iota
	// StatusCancelled - the caller's context was cancelled between batches;
	// the result carries whatever matched before that.
	StatusCancelled
)

func (s Status) String() string {
	if s == StatusCancelled {
		return "cancelled"
	}
	return "complete"
}

// Match is a dictionary word confirmed by the run, tagged with the length
// bucket that produced it. Any further scoring is the caller's business.
type Match struct {
	Word   string `json:"word"`
	Length int    `json:"length"`
}

// RunStats are aggregate statistics for one completed or cancelled run.
type RunStats struct {
	Evaluated      uint64        `json:"evaluated"`
	Elapsed        time.Duration `json:"elapsed"`
	PermsPerSecond float64       `json:"perms_per_second"`
}

// Result is what GenerateAll hands back on success or cancellation.
type Result struct {
	Matches []Match  `json:"matches"`
	Status  Status   `json:"-"`
	Stats   RunStats `json:"stats"`
}

// dedupeAndSort collapses duplicate words (a safety net; distinct indices
// within a length cannot collide) and fixes the emitted order so results
// depend only on the alphabet and dictionary, never on scheduling.
func dedupeAndSort(matches []Match) []Match {
	seen := make(map[string]struct{}, len(matches))
	out := matches[:0]
	for _, m := range matches {
		if _, dup := seen[m.Word]; dup {
			continue
		}
		seen[m.Word] = struct{}{}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Length != out[j].Length {
			return out[i].Length < out[j].Length
		}
		return out[i].Word < out[j].Word
	})
	return out
}
