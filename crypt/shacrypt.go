package crypt

import (
	"crypto/subtle"
	"hash"

	"github.com/MrEthical07/goDigest/codec"
	"github.com/MrEthical07/goDigest/internal"
	"github.com/MrEthical07/goDigest/policy"
	"github.com/MrEthical07/goDigest/primitive"
)

const (
	// IdentifierSHA256 tags SHA-256-crypt hashes ("$5$").
	IdentifierSHA256 = "5"
	// IdentifierSHA512 tags SHA-512-crypt hashes ("$6$").
	IdentifierSHA512 = "6"
	// DefaultRounds is the round count implied when the rounds clause is absent.
	DefaultRounds = 5000
)

type variant struct {
	id     string
	prim   primitive.Name
	groups []group
}

var (
	sha256Variant = variant{id: IdentifierSHA256, prim: primitive.SHA256, groups: sha256Groups}
	sha512Variant = variant{id: IdentifierSHA512, prim: primitive.SHA512, groups: sha512Groups}
)

// Option configures an Engine.
type Option func(*options)

type options struct {
	minRounds   int
	maxRounds   int
	verifyLimit int
	salt        policy.Salt
	source      primitive.Source
}

// WithRoundRange sets the inclusive round range. Requested counts outside it
// are clamped.
func WithRoundRange(min, max int) Option {
	return func(o *options) {
		o.minRounds = min
		o.maxRounds = max
	}
}

// WithVerifyRoundLimit sets the largest round count Verify recomputes.
// Stored hashes are verified at their own round count, not the clamped one,
// so narrowing the round range keeps existing hashes valid. The default is
// [policy.MaxVerifyRounds].
func WithVerifyRoundLimit(limit int) Option {
	return func(o *options) { o.verifyLimit = limit }
}

// WithSaltPolicy replaces the default salt policy.
func WithSaltPolicy(s policy.Salt) Option {
	return func(o *options) { o.salt = s }
}

// WithSource sets where digest contexts come from.
func WithSource(src primitive.Source) Option {
	return func(o *options) {
		if src != nil {
			o.source = src
		}
	}
}

// Engine computes and verifies SHA-crypt hashes of one digest width.
//
// Engine holds only immutable configuration; each call obtains its own digest
// context, so one Engine may be shared by any number of goroutines.
type Engine struct {
	v           variant
	rounds      policy.Rounds
	verifyLimit int
	salt        policy.Salt
	source      primitive.Source
}

// NewSHA256 returns the "$5$" engine.
func NewSHA256(opts ...Option) (*Engine, error) { return newEngine(sha256Variant, opts) }

// NewSHA512 returns the "$6$" engine.
func NewSHA512(opts ...Option) (*Engine, error) { return newEngine(sha512Variant, opts) }

func newEngine(v variant, opts []Option) (*Engine, error) {
	o := options{
		minRounds:   policy.DefaultMinRounds,
		maxRounds:   policy.DefaultMaxRounds,
		verifyLimit: policy.MaxVerifyRounds,
		salt:        policy.DefaultSalt(),
		source:      primitive.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	rounds, err := policy.NewRounds(o.minRounds, o.maxRounds, DefaultRounds)
	if err != nil {
		return nil, err
	}
	if err := rounds.CheckVerifyLimit(o.verifyLimit); err != nil {
		return nil, err
	}

	return &Engine{v: v, rounds: rounds, verifyLimit: o.verifyLimit, salt: o.salt, source: o.source}, nil
}

// Identifier returns "5" or "6".
func (e *Engine) Identifier() string { return e.v.id }

// DefaultRounds returns the round count omitted from serialized hashes.
func (e *Engine) DefaultRounds() int { return DefaultRounds }

// Generate hashes plain with a fresh salt and a random round count.
func (e *Engine) Generate(plain []byte) (string, error) {
	if plain == nil {
		return "", internal.ErrNilPlaintext
	}
	rounds, err := e.rounds.Random()
	if err != nil {
		return "", err
	}
	return e.Hash(plain, "", rounds)
}

// Hash computes the encoded hash of plain.
//
// An empty salt is generated, a longer salt is truncated by the salt policy,
// and rounds <= 0 selects DefaultRounds. Out-of-range counts are clamped and
// the clamped value is what gets serialized.
func (e *Engine) Hash(plain []byte, salt string, rounds int) (string, error) {
	if plain == nil {
		return "", internal.ErrNilPlaintext
	}

	salt, err := e.salt.Effective(salt)
	if err != nil {
		return "", err
	}
	return e.hash(plain, salt, e.rounds.Effective(rounds))
}

func (e *Engine) hash(plain []byte, salt string, rounds int) (string, error) {
	sum, err := e.sum(plain, []byte(salt), rounds)
	if err != nil {
		return "", err
	}

	return codec.Format(codec.Encoded{
		Identifier: e.v.id,
		Rounds:     rounds,
		Salt:       salt,
		Digest:     encode(sum, e.v.groups),
	}, DefaultRounds)
}

// Verify reports whether encoded was produced from plain by this engine.
// The hash is recomputed at its own round count, which may lie outside the
// generation range but not above the verify limit. Malformed input, foreign
// identifiers and primitive failures all yield false.
func (e *Engine) Verify(plain []byte, encoded string) bool {
	if plain == nil {
		return false
	}
	parsed, err := codec.Parse(encoded)
	if err != nil || parsed.Identifier != e.v.id {
		return false
	}
	rounds := parsed.RoundsOr(DefaultRounds)
	if rounds > e.verifyLimit {
		return false
	}
	salt, err := e.salt.Effective(parsed.Salt)
	if err != nil {
		return false
	}

	got, err := e.hash(plain, salt, rounds)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(encoded)) == 1
}

// sum runs the SHA-crypt construction and returns the raw final digest.
func (e *Engine) sum(plain, salt []byte, rounds int) ([]byte, error) {
	h, err := e.source.New(e.v.prim)
	if err != nil {
		return nil, err
	}

	// B = H(plain | salt | plain)
	write(h, plain, salt, plain)
	b := h.Sum(nil)

	// A = H(plain | salt | B stretched to len(plain) | bit walk of len(plain))
	h.Reset()
	write(h, plain, salt, stretch(b, len(plain)))
	for n := len(plain); n > 0; n >>= 1 {
		if n&1 != 0 {
			write(h, b)
		} else {
			write(h, plain)
		}
	}
	a := h.Sum(nil)

	h.Reset()
	for i := 0; i < len(plain); i++ {
		write(h, plain)
	}
	p := stretch(h.Sum(nil), len(plain))

	h.Reset()
	for i := 0; i < 16+int(a[0]); i++ {
		write(h, salt)
	}
	s := stretch(h.Sum(nil), len(salt))

	result := a
	for i := 0; i < rounds; i++ {
		h.Reset()
		if i%2 != 0 {
			write(h, p)
		} else {
			write(h, result)
		}
		if i%3 != 0 {
			write(h, s)
		}
		if i%7 != 0 {
			write(h, p)
		}
		if i%2 != 0 {
			write(h, result)
		} else {
			write(h, p)
		}
		result = h.Sum(result[:0])
	}
	return result, nil
}

// stretch repeats src cyclically into a new slice of length n.
func stretch(src []byte, n int) []byte {
	out := make([]byte, n)
	for off := 0; off < n; off += len(src) {
		copy(out[off:], src)
	}
	return out
}

func write(h hash.Hash, parts ...[]byte) {
	for _, p := range parts {
		_, _ = h.Write(p)
	}
}

// Recognizes reports whether encoded follows the SHA-crypt grammar and carries
// this engine's identifier.
func (e *Engine) Recognizes(encoded string) bool {
	parsed, err := codec.Parse(encoded)
	return err == nil && parsed.Identifier == e.v.id
}
