package internal

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"
)

var (
	errEmptyAlphabet = errors.New("random alphabet cannot be empty")
	errInvalidRange  = errors.New("random range upper bound must not be below lower bound")
)

// RandomString draws n characters uniformly from alphabet using a
// cryptographically secure source. A nil source selects crypto/rand.
func RandomString(source io.Reader, alphabet string, n int) (string, error) {
	if alphabet == "" {
		return "", errEmptyAlphabet
	}
	if n <= 0 {
		return "", nil
	}
	if source == nil {
		source = rand.Reader
	}

	var b strings.Builder
	b.Grow(n)

	max := big.NewInt(int64(len(alphabet)))
	for i := 0; i < n; i++ {
		idx, err := rand.Int(source, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(alphabet[idx.Int64()])
	}

	out := b.String()
	if len(out) != n {
		return "", fmt.Errorf("invalid random string length")
	}
	return out, nil
}

// RandomIntRange returns a uniformly drawn integer in [lo, hi). When lo == hi
// the range is degenerate and lo is returned.
func RandomIntRange(source io.Reader, lo, hi int) (int, error) {
	if hi < lo {
		return 0, errInvalidRange
	}
	if hi == lo {
		return lo, nil
	}
	if source == nil {
		source = rand.Reader
	}

	n, err := rand.Int(source, big.NewInt(int64(hi-lo)))
	if err != nil {
		return 0, err
	}
	return lo + int(n.Int64()), nil
}
