package codec

import (
	"errors"
	"strconv"
	"strings"
)

const roundsPrefix = "rounds="

var (
	// ErrMalformed is returned when an encoded hash does not follow the grammar.
	ErrMalformed = errors.New("malformed encoded hash")
	// ErrInvalidSalt is returned when a salt cannot be serialized unambiguously.
	ErrInvalidSalt = errors.New("salt must not contain '$'")
)

// Encoded is the parsed form of a self-describing hash string.
//
// Rounds is zero when the rounds clause is absent from the textual form.
type Encoded struct {
	Identifier string
	Rounds     int
	Salt       string
	Digest     string
}

// Prefix returns the magic prefix for an identifier, e.g. "$6$".
func Prefix(identifier string) string {
	return "$" + identifier + "$"
}

// Identifier extracts the identifier of an encoded hash without validating the
// remainder. It fails only when the string does not open with "$id$".
func Identifier(encoded string) (string, error) {
	if len(encoded) < 3 || encoded[0] != '$' {
		return "", ErrMalformed
	}
	end := strings.IndexByte(encoded[1:], '$')
	if end <= 0 {
		return "", ErrMalformed
	}
	return encoded[1 : end+1], nil
}

// Parse decodes
//
//	"$" identifier "$" ["rounds=" rounds "$"] salt "$" digest
//
// Identifier, salt and digest must be non-empty; rounds must be a positive
// decimal without sign.
func Parse(encoded string) (Encoded, error) {
	if !strings.HasPrefix(encoded, "$") {
		return Encoded{}, ErrMalformed
	}

	parts := strings.Split(encoded[1:], "$")

	var out Encoded
	switch len(parts) {
	case 3:
		out = Encoded{Identifier: parts[0], Salt: parts[1], Digest: parts[2]}
	case 4:
		rounds, err := parseRounds(parts[1])
		if err != nil {
			return Encoded{}, err
		}
		out = Encoded{Identifier: parts[0], Rounds: rounds, Salt: parts[2], Digest: parts[3]}
	default:
		return Encoded{}, ErrMalformed
	}

	if out.Identifier == "" || out.Salt == "" || out.Digest == "" {
		return Encoded{}, ErrMalformed
	}
	return out, nil
}

// Format serializes e. The rounds clause is written only when e.Rounds is
// positive and differs from defaultRounds.
func Format(e Encoded, defaultRounds int) (string, error) {
	if strings.IndexByte(e.Salt, '$') >= 0 {
		return "", ErrInvalidSalt
	}

	var b strings.Builder
	b.Grow(len(e.Identifier) + len(e.Salt) + len(e.Digest) + 20)

	b.WriteString(Prefix(e.Identifier))
	if e.Rounds > 0 && e.Rounds != defaultRounds {
		b.WriteString(roundsPrefix)
		b.WriteString(strconv.Itoa(e.Rounds))
		b.WriteByte('$')
	}
	b.WriteString(e.Salt)
	b.WriteByte('$')
	b.WriteString(e.Digest)
	return b.String(), nil
}

// RoundsOr returns e.Rounds, or def when the clause was absent.
func (e Encoded) RoundsOr(def int) int {
	if e.Rounds > 0 {
		return e.Rounds
	}
	return def
}

func parseRounds(part string) (int, error) {
	if !strings.HasPrefix(part, roundsPrefix) {
		return 0, ErrMalformed
	}
	digits := strings.TrimPrefix(part, roundsPrefix)
	if digits == "" || digits[0] == '+' {
		return 0, ErrMalformed
	}

	v, err := strconv.ParseUint(digits, 10, 31)
	if err != nil || v == 0 {
		return 0, ErrMalformed
	}
	return int(v), nil
}
