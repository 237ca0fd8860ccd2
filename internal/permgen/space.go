// Package permgen maps a dense integer index space onto every possible
// letter sequence over a puzzle alphabet, with repetition, one bucket per
// sequence length. Decoding is a stable bijection per length, which is what
// lets the solver partition the space into batches and visit each candidate
// exactly once regardless of scheduling.
package permgen

import (
	"github.com/pthomasfournet/nytspellingbeesolver-sub001/internal/puzzle"
)

// Space is a read-only enumeration view over an alphabet. For each length L
// in range there are exactly |alphabet|^L candidates, indexed densely in a
// fixed radix. Total work is precomputed once and never changes for the
// lifetime of a run.
type Space struct {
	letters []byte
	radix   uint64
	minLen  int
	maxLen  int
	counts  []uint64 // candidates per bucket, minLen first
	offsets []uint64 // starting global index per bucket
	total   uint64
}

// NewSpace derives the enumeration space for an alphabet. The alphabet has
// already proven at construction that the total fits in a uint64.
func NewSpace(a *puzzle.Alphabet) *Space {
	s := &Space{
		letters: []byte(a.Letters()),
		radix:   uint64(a.Size()),
		minLen:  a.MinLength(),
		maxLen:  a.MaxLength(),
	}
	nbuckets := s.maxLen - s.minLen + 1
	s.counts = make([]uint64, nbuckets)
	s.offsets = make([]uint64, nbuckets)
	pow := uint64(1)
	for l := 1; l < s.minLen; l++ {
		pow *= s.radix
	}
	for i := 0; i < nbuckets; i++ {
		pow *= s.radix
		s.counts[i] = pow
		s.offsets[i] = s.total
		s.total += pow
	}
	return s
}

// Total returns the number of candidates across all length buckets.
func (s *Space) Total() uint64 { return s.total }

// MinLength returns the shortest bucket length.
func (s *Space) MinLength() int { return s.minLen }

// MaxLength returns the longest bucket length; callers size decode buffers
// with it.
func (s *Space) MaxLength() int { return s.maxLen }

// Count returns the number of candidates in one length bucket.
func (s *Space) Count(length int) uint64 {
	return s.counts[length-s.minLen]
}

// Bucket resolves a global index to its (length, local index) pair. Panics
// if global is out of range, as would any slice misuse.
func (s *Space) Bucket(global uint64) (int, uint64) {
	for i := len(s.offsets) - 1; i >= 0; i-- {
		if global >= s.offsets[i] {
			return s.minLen + i, global - s.offsets[i]
		}
	}
	panic("permgen: global index out of range")
}

// DecodeAt writes the candidate for a global index into buf and returns its
// length. buf must be at least MaxLength() bytes. Decoding is standard
// mixed-radix decomposition: digits are produced right to left so that
// position k from the left holds alphabet[(local / radix^(L-1-k)) % radix].
// Allocation-free; this runs once per candidate.
func (s *Space) DecodeAt(buf []byte, global uint64) int {
	length, local := s.Bucket(global)
	return s.DecodeLocal(buf, length, local)
}

// DecodeLocal decodes a bucket-local index into buf and returns length.
func (s *Space) DecodeLocal(buf []byte, length int, local uint64) int {
	for k := length - 1; k >= 0; k-- {
		buf[k] = s.letters[local%s.radix]
		local /= s.radix
	}
	return length
}
