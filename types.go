package goDigest

import (
	"context"
	"io"

	internalaudit "github.com/MrEthical07/goDigest/internal/audit"
)

// Engine is the capability every hashing algorithm implements to be
// registered with a [Registry].
//
// A nil plain is the absent-plaintext case: Hash and Generate return
// [ErrNilPlaintext] and Verify returns false. An empty salt asks the engine
// to generate one; rounds <= 0 selects the algorithm's default count.
//
//	Implementations: crypt.Engine, iterated.Engine, password.Argon2, password.Bcrypt
type Engine interface {
	Identifier() string
	Generate(plain []byte) (string, error)
	Hash(plain []byte, salt string, rounds int) (string, error)
	Verify(plain []byte, encoded string) bool
}

// ParameterUpgrader is implemented by engines that can tell when a hash of
// their own algorithm was produced with weaker parameters than they use now.
type ParameterUpgrader interface {
	NeedsUpgrade(encoded string) (bool, error)
}

// Recognizer is implemented by engines that can tell a well-formed hash of
// their own format from a malformed one. A registered identifier followed by
// garbage is then treated as an unrecognized format instead of a mismatch.
type Recognizer interface {
	Recognizes(encoded string) bool
}

type roundsDefaulter interface {
	DefaultRounds() int
}

// aliaser is implemented by engines that also verify hashes tagged with other
// identifiers, such as bcrypt's "2b" and "2y".
type aliaser interface {
	Aliases() []string
}

// MatchResult is returned by [Digester.MatchesPassword].
//
// UpgradedHash is set only when Matches is true and the stored hash should be
// replaced; callers persist it in place of the hash they verified.
type MatchResult struct {
	Matches      bool
	UpgradedHash string
}

// Upgraded reports whether r carries a replacement hash.
func (r MatchResult) Upgraded() bool {
	return r.Matches && r.UpgradedHash != ""
}

// CredentialStore persists encoded hashes keyed by user.
//
// CompareAndSwap replaces the hash only while it still equals old and
// reports whether the swap happened. Get returns [ErrCredentialNotFound]
// (possibly wrapped) when no hash exists.
//
//	Implementation: credstore.RedisStore
type CredentialStore interface {
	Get(ctx context.Context, userID string) (string, error)
	CompareAndSwap(ctx context.Context, userID, old, new string) (bool, error)
}

// AuditEvent is a structured audit record emitted by the digester.
type AuditEvent = internalaudit.Event

// AuditSink receives [AuditEvent] values from the digester's audit dispatcher.
type AuditSink = internalaudit.Sink

// NoOpSink is an [AuditSink] that silently discards all events.
type NoOpSink = internalaudit.NoOpSink

// ChannelSink is a buffered channel-based [AuditSink].
type ChannelSink = internalaudit.ChannelSink

// JSONWriterSink is an [AuditSink] that writes JSON-encoded events to an
// [io.Writer].
type JSONWriterSink = internalaudit.JSONWriterSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return internalaudit.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return internalaudit.NewJSONWriterSink(w)
}

const (
	auditEventHashCreated          = "hash_created"
	auditEventVerifyMatch          = "verify_match"
	auditEventVerifyMismatch       = "verify_mismatch"
	auditEventHashUnrecognized     = "hash_unrecognized"
	auditEventHashUpgraded         = "hash_upgraded"
	auditEventHashUpgradePersisted = "hash_upgrade_persisted"
)
