package policy

import (
	"errors"
	"unicode/utf8"

	"github.com/MrEthical07/goDigest/internal"
)

const (
	// DefaultSaltLength is the maximum salt length and the length of generated salts.
	DefaultSaltLength = 16
	// DefaultMinSaltLength is the smallest salt length the policy accepts as configuration.
	DefaultMinSaltLength = 8
	// DefaultSaltAlphabet is the character set random salts are drawn from.
	DefaultSaltAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ1234567890"
)

var (
	// ErrInvalidSaltLength is returned for non-positive or inverted salt bounds.
	ErrInvalidSaltLength = errors.New("invalid salt length bounds")
	// ErrInvalidSaltAlphabet is returned when the alphabet is empty or contains '$'.
	ErrInvalidSaltAlphabet = errors.New("invalid salt alphabet")
)

// Salt validates supplied salts and generates fresh ones.
//
// Salt values are immutable and safe for concurrent use.
type Salt struct {
	minLength int
	length    int
	alphabet  string
}

// NewSalt returns a salt policy. Generated salts are exactly length characters
// drawn from alphabet; an empty alphabet selects [DefaultSaltAlphabet].
func NewSalt(minLength, length int, alphabet string) (Salt, error) {
	if minLength < 1 || length < minLength {
		return Salt{}, ErrInvalidSaltLength
	}
	if alphabet == "" {
		alphabet = DefaultSaltAlphabet
	}
	for i := 0; i < len(alphabet); i++ {
		if alphabet[i] == '$' || alphabet[i] >= utf8.RuneSelf {
			return Salt{}, ErrInvalidSaltAlphabet
		}
	}
	return Salt{minLength: minLength, length: length, alphabet: alphabet}, nil
}

// DefaultSalt returns the policy used when nothing is configured.
func DefaultSalt() Salt {
	return Salt{
		minLength: DefaultMinSaltLength,
		length:    DefaultSaltLength,
		alphabet:  DefaultSaltAlphabet,
	}
}

// Length returns the maximum (and generated) salt length.
func (s Salt) Length() int { return s.length }

// MinLength returns the configured minimum salt length.
func (s Salt) MinLength() int { return s.minLength }

// Effective returns the salt to hash with.
//
// An empty candidate generates a random salt of exactly Length characters.
// A candidate longer than Length characters is truncated to its first Length
// characters. Shorter candidates are returned unchanged, even below MinLength.
func (s Salt) Effective(candidate string) (string, error) {
	if candidate == "" {
		return s.Generate()
	}
	if utf8.RuneCountInString(candidate) <= s.length {
		return candidate, nil
	}

	n := 0
	for i := range candidate {
		if n == s.length {
			return candidate[:i], nil
		}
		n++
	}
	return candidate, nil
}

// Generate draws a random salt of exactly Length characters.
func (s Salt) Generate() (string, error) {
	return internal.RandomString(nil, s.alphabet, s.length)
}
