// Package puzzle models a spelling-bee style puzzle definition: a small
// alphabet of unique letters, one required letter, and a word length range.
package puzzle

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSpec is returned (wrapped) for any malformed puzzle definition.
var ErrInvalidSpec = errors.New("invalid puzzle spec")

const (
	// MaxAlphabetSize - we only handle lowercase ascii letters.
	MaxAlphabetSize = 26
	// MinAlphabetSize - a one-letter puzzle is degenerate.
	MinAlphabetSize = 2
	// DefaultMinLength matches the usual puzzle rule of 4-letter minimums.
	DefaultMinLength = 4
)

// Alphabet is an immutable, normalized puzzle definition. Letters are
// case-folded and deduplicated at construction; the zero value is not usable.
type Alphabet struct {
	letters   []byte
	required  byte
	mask      uint32
	minLength int
	maxLength int
	total     uint64
}

// NewAlphabet validates and normalizes a puzzle definition. Letters keep
// their input order after folding so that sequence decoding is stable for a
// given input string.
func NewAlphabet(letters string, required rune, maxLength, minLength int) (*Alphabet, error) {
	folded := strings.ToLower(letters)
	norm := make([]byte, 0, len(folded))
	var mask uint32
	for _, r := range folded {
		if r < 'a' || r > 'z' {
			return nil, fmt.Errorf("%w: letter %q is not an ascii letter", ErrInvalidSpec, r)
		}
		bit := uint32(1) << (r - 'a')
		if mask&bit != 0 {
			return nil, fmt.Errorf("%w: duplicate letter %q", ErrInvalidSpec, r)
		}
		mask |= bit
		norm = append(norm, byte(r))
	}
	if len(norm) < MinAlphabetSize || len(norm) > MaxAlphabetSize {
		return nil, fmt.Errorf("%w: need between %d and %d unique letters, got %d",
			ErrInvalidSpec, MinAlphabetSize, MaxAlphabetSize, len(norm))
	}
	req := strings.ToLower(string(required))
	if len(req) != 1 || req[0] < 'a' || req[0] > 'z' {
		return nil, fmt.Errorf("%w: required letter %q is not an ascii letter", ErrInvalidSpec, required)
	}
	if mask&(uint32(1)<<(req[0]-'a')) == 0 {
		return nil, fmt.Errorf("%w: required letter %q not in alphabet %q", ErrInvalidSpec, required, string(norm))
	}
	if minLength < 1 {
		return nil, fmt.Errorf("%w: min length %d must be at least 1", ErrInvalidSpec, minLength)
	}
	if minLength > maxLength {
		return nil, fmt.Errorf("%w: min length %d exceeds max length %d", ErrInvalidSpec, minLength, maxLength)
	}
	total, ok := totalSequences(uint64(len(norm)), minLength, maxLength)
	if !ok {
		return nil, fmt.Errorf("%w: enumeration space for %d letters, lengths %d-%d overflows",
			ErrInvalidSpec, len(norm), minLength, maxLength)
	}
	return &Alphabet{
		letters:   norm,
		required:  req[0],
		mask:      mask,
		minLength: minLength,
		maxLength: maxLength,
		total:     total,
	}, nil
}

// totalSequences computes Σ radix^L for L in [minLength, maxLength] with
// overflow checking.
func totalSequences(radix uint64, minLength, maxLength int) (uint64, bool) {
	var total uint64
	pow := uint64(1)
	for l := 1; l <= maxLength; l++ {
		if pow > 0 && radix > ^uint64(0)/pow {
			return 0, false
		}
		pow *= radix
		if l < minLength {
			continue
		}
		if total > ^uint64(0)-pow {
			return 0, false
		}
		total += pow
	}
	return total, true
}

// Letters returns the normalized letters in decoding order.
func (a *Alphabet) Letters() string { return string(a.letters) }

// LetterAt returns the letter for an alphabet position.
func (a *Alphabet) LetterAt(i int) byte { return a.letters[i] }

// Size returns the number of unique letters.
func (a *Alphabet) Size() int { return len(a.letters) }

// Required returns the letter every match must contain.
func (a *Alphabet) Required() byte { return a.required }

// MinLength returns the shortest candidate length.
func (a *Alphabet) MinLength() int { return a.minLength }

// MaxLength returns the longest candidate length.
func (a *Alphabet) MaxLength() int { return a.maxLength }

// TotalSequences returns Σ |alphabet|^L over the length range. Guaranteed
// not to overflow; NewAlphabet rejects specs whose space does.
func (a *Alphabet) TotalSequences() uint64 { return a.total }

// CanForm reports whether word can be spelled with alphabet letters only
// (repetition allowed). Non-ascii-letter bytes make it unformable.
func (a *Alphabet) CanForm(word string) bool {
	for i := 0; i < len(word); i++ {
		c := word[i]
		if c < 'a' || c > 'z' {
			return false
		}
		if a.mask&(uint32(1)<<(c-'a')) == 0 {
			return false
		}
	}
	return len(word) > 0
}

func (a *Alphabet) String() string {
	return fmt.Sprintf("%s (required %c, lengths %d-%d)",
		string(a.letters), a.required, a.minLength, a.maxLength)
}
