package goDigest

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/MrEthical07/goDigest/codec"
	internalaudit "github.com/MrEthical07/goDigest/internal/audit"
	"github.com/MrEthical07/goDigest/primitive"
)

// Digester hashes new passwords with the best registered algorithm and
// verifies stored hashes of any registered algorithm.
//
// A Digester is immutable after [Builder.Build] and safe for concurrent use.
type Digester struct {
	config   Config
	registry *Registry
	logger   *zap.Logger
	metrics  *Metrics
	audit    *internalaudit.Dispatcher
}

// Close flushes pending audit events and stops the dispatcher.
func (d *Digester) Close() {
	if d == nil {
		return
	}
	d.audit.Close()
}

// AuditDropped returns the number of audit events dropped because the buffer was full.
func (d *Digester) AuditDropped() uint64 {
	if d == nil {
		return 0
	}
	return d.audit.Dropped()
}

// MetricsSnapshot returns a point-in-time copy of the digester's metrics.
func (d *Digester) MetricsSnapshot() MetricsSnapshot {
	if d == nil || d.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return d.metrics.Snapshot()
}

// Registry returns the immutable algorithm registry.
func (d *Digester) Registry() *Registry {
	return d.registry
}

// Config returns a copy of the configuration the digester was built with.
func (d *Digester) Config() Config {
	return d.config
}

// HashPassword hashes plain with the best algorithm, a random salt and a
// random round count.
//
// A nil plain returns [ErrNilPlaintext]. When the digest primitive is
// unavailable the error wraps [primitive.ErrUnavailable]. No partial hash is
// ever returned with an error.
func (d *Digester) HashPassword(plain []byte) (string, error) {
	return d.hashWith(context.Background(), d.registry.Best(), plain)
}

func (d *Digester) hashWith(ctx context.Context, best Descriptor, plain []byte) (string, error) {
	start := time.Now()
	encoded, err := best.Engine.Generate(plain)
	d.metrics.Observe(MetricHashLatency, time.Since(start))

	if err != nil {
		d.metrics.Inc(MetricHashFailure)
		if errors.Is(err, primitive.ErrUnavailable) {
			d.logger.Error("digest primitive unavailable",
				zap.String("algorithm", best.Identifier),
				zap.Error(err),
			)
		}
		d.emitAudit(ctx, auditEventHashCreated, false, "", best.Identifier, err, nil)
		return "", err
	}

	d.metrics.Inc(MetricHashSuccess)
	d.emitAudit(ctx, auditEventHashCreated, true, "", best.Identifier, nil, nil)
	return encoded, nil
}

// MatchesPassword verifies plain against formatted.
//
// A hash whose identifier is not registered, or that does not parse, yields
// a non-matching result and a warning log; it is never an error. When the
// password matches a hash of an algorithm other than the best one, and
// upgrades are enabled, the result carries a fresh hash from the best
// algorithm.
func (d *Digester) MatchesPassword(plain []byte, formatted string) MatchResult {
	return d.matches(context.Background(), "", plain, formatted)
}

func (d *Digester) matches(ctx context.Context, userID string, plain []byte, formatted string) MatchResult {
	desc, ok := d.resolve(formatted)
	if !ok {
		d.metrics.Inc(MetricUnrecognizedFormat)
		d.logger.Warn("unrecognized hash format",
			zap.Int("length", len(formatted)),
		)
		d.emitAudit(ctx, auditEventHashUnrecognized, false, userID, "", nil, nil)
		return MatchResult{}
	}

	if !desc.Engine.Verify(plain, formatted) {
		d.metrics.Inc(MetricVerifyMismatch)
		d.emitAudit(ctx, auditEventVerifyMismatch, false, userID, desc.Identifier, nil, nil)
		return MatchResult{}
	}

	d.metrics.Inc(MetricVerifyMatch)
	d.emitAudit(ctx, auditEventVerifyMatch, true, userID, desc.Identifier, nil, nil)

	result := MatchResult{Matches: true}
	if !d.config.Upgrade.Enabled || !d.outdated(desc, formatted) {
		return result
	}

	best := d.registry.Best()
	upgraded, err := d.hashWith(ctx, best, plain)
	if err != nil {
		d.metrics.Inc(MetricUpgradeFailed)
		d.logger.Error("hash upgrade failed",
			zap.String("from", desc.Identifier),
			zap.String("to", best.Identifier),
			zap.Error(err),
		)
		return result
	}

	d.metrics.Inc(MetricUpgradeIssued)
	d.logger.Info("outdated hash upgraded",
		zap.String("from", desc.Identifier),
		zap.String("to", best.Identifier),
	)
	d.emitAudit(ctx, auditEventHashUpgraded, true, userID, best.Identifier, nil, func() map[string]string {
		return map[string]string{"from": desc.Identifier}
	})

	result.UpgradedHash = upgraded
	return result
}

// NeedsUpgrade reports whether formatted was produced by a registered
// algorithm other than the best one. Unrecognized hashes report false.
func (d *Digester) NeedsUpgrade(formatted string) bool {
	desc, ok := d.resolve(formatted)
	if !ok {
		return false
	}
	return d.outdated(desc, formatted)
}

// resolve finds the descriptor for formatted. A registered identifier whose
// engine does not recognize the rest of the string does not resolve.
func (d *Digester) resolve(formatted string) (Descriptor, bool) {
	id, err := codec.Identifier(formatted)
	if err != nil {
		return Descriptor{}, false
	}
	desc, ok := d.registry.Resolve(id)
	if !ok {
		return Descriptor{}, false
	}
	if rec, ok := desc.Engine.(Recognizer); ok && !rec.Recognizes(formatted) {
		return Descriptor{}, false
	}
	return desc, true
}

func (d *Digester) outdated(desc Descriptor, formatted string) bool {
	if desc.Identifier != d.registry.Best().Identifier {
		return true
	}
	if !d.config.Upgrade.RehashWeakerParameters {
		return false
	}
	pu, ok := desc.Engine.(ParameterUpgrader)
	if !ok {
		return false
	}
	weaker, err := pu.NeedsUpgrade(formatted)
	return err == nil && weaker
}

func (d *Digester) emitAudit(
	ctx context.Context,
	eventType string,
	success bool,
	userID string,
	algorithm string,
	err error,
	metadataBuilder func() map[string]string,
) {
	if d == nil || d.audit == nil {
		return
	}

	var metadata map[string]string
	if metadataBuilder != nil {
		metadata = metadataBuilder()
	}

	event := AuditEvent{
		EventType: eventType,
		UserID:    userID,
		Algorithm: algorithm,
		Success:   success,
		Metadata:  metadata,
	}
	if err != nil {
		event.Error = auditErrorCode(err)
	}

	d.audit.Emit(ctx, event)
}

func auditErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrNilPlaintext):
		return "nil_plaintext"
	case errors.Is(err, primitive.ErrUnavailable):
		return "primitive_unavailable"
	case errors.Is(err, ErrCredentialNotFound):
		return "credential_not_found"
	case errors.Is(err, ErrCredentialStoreUnavailable):
		return "store_unavailable"
	default:
		return "internal_error"
	}
}
