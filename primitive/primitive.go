package primitive

import (
	"crypto"
	"errors"
	"fmt"
	"hash"

	// Registers the digests reachable through the default source.
	_ "crypto/md5"
	_ "crypto/sha256"
	_ "crypto/sha512"
)

// Name identifies a digest primitive.
type Name string

const (
	MD5    Name = "MD5"
	SHA256 Name = "SHA-256"
	SHA512 Name = "SHA-512"
)

// ErrUnavailable is returned when a source cannot supply the requested digest.
var ErrUnavailable = errors.New("digest primitive unavailable")

// Source hands out digest contexts. Every call must return a fresh context
// owned exclusively by the caller.
type Source interface {
	New(name Name) (hash.Hash, error)
}

// SourceFunc adapts a function to [Source].
type SourceFunc func(name Name) (hash.Hash, error)

// New calls f(name).
func (f SourceFunc) New(name Name) (hash.Hash, error) { return f(name) }

var cryptoHashes = map[Name]crypto.Hash{
	MD5:    crypto.MD5,
	SHA256: crypto.SHA256,
	SHA512: crypto.SHA512,
}

type registrySource struct{}

// Default returns the source backed by the crypto.Hash registry.
func Default() Source { return registrySource{} }

func (registrySource) New(name Name) (hash.Hash, error) {
	h, ok := cryptoHashes[name]
	if !ok || !h.Available() {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, name)
	}
	return h.New(), nil
}

// Size returns the output length of name in bytes, or 0 for unknown names.
func Size(name Name) int {
	h, ok := cryptoHashes[name]
	if !ok {
		return 0
	}
	return h.Size()
}

// Restrict returns a source that serves only the listed names from base and
// reports everything else as unavailable.
func Restrict(base Source, names ...Name) Source {
	allowed := make(map[Name]struct{}, len(names))
	for _, n := range names {
		allowed[n] = struct{}{}
	}
	return SourceFunc(func(name Name) (hash.Hash, error) {
		if _, ok := allowed[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnavailable, name)
		}
		return base.New(name)
	})
}
