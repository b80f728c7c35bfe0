package iterated

import (
	"crypto/subtle"
	"encoding/base64"

	"golang.org/x/text/unicode/norm"

	"github.com/MrEthical07/goDigest/internal"
	"github.com/MrEthical07/goDigest/policy"
	"github.com/MrEthical07/goDigest/primitive"
)

const (
	// IdentifierMD5 tags iterated MD5 hashes ("$1$").
	IdentifierMD5 = "1"
	// IdentifierSHA256 tags iterated SHA-256 hashes ("$3$").
	IdentifierSHA256 = "3"
	// IdentifierSHA512 tags iterated SHA-512 hashes ("$4$").
	IdentifierSHA512 = "4"

	// DefaultRounds is a single digest pass.
	DefaultRounds = 1
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

// WithRoundRange sets the inclusive range explicit round counts are clamped to.
func WithRoundRange(min, max int) Option {
	return func(o *options) {
		o.minRounds = min
		o.maxRounds = max
	}
}

// WithVerifyRoundLimit sets the largest iteration count Verify recomputes.
// The default is [policy.MaxVerifyRounds].
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

// Engine hashes H(salt || plain) and re-digests the result rounds-1 times.
// Hashes are serialized as "$id$iterations$salt$digest" with the iteration
// count always written.
type Engine struct {
	id          string
	prim        primitive.Name
	rounds      policy.Rounds
	verifyLimit int
	salt        policy.Salt
	source      primitive.Source
}

// NewMD5 returns the "$1$" engine. Its output is not MD5-crypt compatible.
func NewMD5(opts ...Option) (*Engine, error) {
	return newEngine(IdentifierMD5, primitive.MD5, opts)
}

// NewSHA256 returns the "$3$" engine.
func NewSHA256(opts ...Option) (*Engine, error) {
	return newEngine(IdentifierSHA256, primitive.SHA256, opts)
}

// NewSHA512 returns the "$4$" engine.
func NewSHA512(opts ...Option) (*Engine, error) {
	return newEngine(IdentifierSHA512, primitive.SHA512, opts)
}

func newEngine(id string, prim primitive.Name, opts []Option) (*Engine, error) {
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
	return &Engine{id: id, prim: prim, rounds: rounds, verifyLimit: o.verifyLimit, salt: o.salt, source: o.source}, nil
}

// Identifier returns "1", "3" or "4".
func (e *Engine) Identifier() string { return e.id }

// DefaultRounds returns the iteration count used when none is requested.
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

// Hash normalizes plain to NFC and returns the encoded digest. Salt and
// rounds follow the same rules as the crypt engines, except that rounds <= 0
// means a single pass.
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
	h, err := e.source.New(e.prim)
	if err != nil {
		return "", err
	}
	_, _ = h.Write([]byte(salt))
	_, _ = h.Write(norm.NFC.Bytes(plain))
	sum := h.Sum(nil)
	for i := 1; i < rounds; i++ {
		h.Reset()
		_, _ = h.Write(sum)
		sum = h.Sum(sum[:0])
	}

	return format(fields{
		id:     e.id,
		rounds: rounds,
		salt:   salt,
		digest: base64.StdEncoding.EncodeToString(sum),
	}), nil
}

// Verify reports whether encoded was produced from plain by this engine. The
// digest is recomputed at the stored iteration count when it is between 1 and
// the verify limit.
func (e *Engine) Verify(plain []byte, encoded string) bool {
	if plain == nil {
		return false
	}
	parsed, err := parse(encoded)
	if err != nil || parsed.id != e.id {
		return false
	}
	if parsed.rounds < 1 || parsed.rounds > e.verifyLimit {
		return false
	}
	salt, err := e.salt.Effective(parsed.salt)
	if err != nil {
		return false
	}

	got, err := e.hash(plain, salt, parsed.rounds)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(encoded)) == 1
}

// Recognizes reports whether encoded is an iterated hash of this engine's
// identifier.
func (e *Engine) Recognizes(encoded string) bool {
	parsed, err := parse(encoded)
	return err == nil && parsed.id == e.id
}
