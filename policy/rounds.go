package policy

import (
	"errors"

	"github.com/MrEthical07/goDigest/internal"
)

const (
	// DefaultMinRounds is the lower bound used when no range is configured.
	DefaultMinRounds = 5000
	// DefaultMaxRounds is the upper bound used when no range is configured.
	DefaultMaxRounds = 9000
	// MaxVerifyRounds is the largest round count recomputed when verifying a
	// stored hash. It matches the glibc upper bound.
	MaxVerifyRounds = 999_999_999
)

var (
	// ErrInvalidRoundRange is returned when a round range is empty or inverted.
	ErrInvalidRoundRange = errors.New("invalid round range")
	// ErrInvalidDefaultRounds is returned when the default round count is not positive.
	ErrInvalidDefaultRounds = errors.New("default rounds must be >= 1")
	// ErrInvalidVerifyLimit is returned when a verify limit is below the
	// generation range, which would reject freshly generated hashes.
	ErrInvalidVerifyLimit = errors.New("verify round limit below round range")
)

// Rounds clamps and draws iteration counts for one algorithm.
//
// Rounds values are immutable and safe for concurrent use.
type Rounds struct {
	min int
	max int
	def int
}

// NewRounds validates and returns a round policy with the inclusive range
// [min, max] and the algorithm's default count def.
func NewRounds(min, max, def int) (Rounds, error) {
	if min < 1 || max < min {
		return Rounds{}, ErrInvalidRoundRange
	}
	if def < 1 {
		return Rounds{}, ErrInvalidDefaultRounds
	}
	return Rounds{min: min, max: max, def: def}, nil
}

// Min returns the lower bound of the range.
func (r Rounds) Min() int { return r.min }

// Max returns the upper bound of the range.
func (r Rounds) Max() int { return r.max }

// Default returns the algorithm's default round count.
func (r Rounds) Default() int { return r.def }

// Effective maps a requested round count onto the policy.
//
// requested <= 0 selects the default count, values below the range return the
// minimum, values above it return the maximum, anything else is returned as is.
func (r Rounds) Effective(requested int) int {
	switch {
	case requested <= 0:
		return r.def
	case requested < r.min:
		return r.min
	case requested > r.max:
		return r.max
	default:
		return requested
	}
}

// Random draws a round count uniformly from [min, max) using crypto/rand.
// A degenerate range (min == max) always yields min.
func (r Rounds) Random() (int, error) {
	return internal.RandomIntRange(nil, r.min, r.max)
}

// CheckVerifyLimit validates a verify limit against the generation range.
func (r Rounds) CheckVerifyLimit(limit int) error {
	if limit < r.max {
		return ErrInvalidVerifyLimit
	}
	return nil
}
