package goDigest

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Authenticate loads userID's stored hash from store and verifies plain
// against it.
//
// When the match produces an upgraded hash and Upgrade.PersistOnAuthenticate
// is set, the new hash replaces the stored one with a compare-and-swap. The
// write is best effort: a failed or lost swap is logged and counted, and the
// returned result still reports the match.
//
// Authenticate returns [ErrCredentialNotFound] when the store has no hash for
// userID and wraps [ErrCredentialStoreUnavailable] when the store fails.
func (d *Digester) Authenticate(ctx context.Context, store CredentialStore, userID string, plain []byte) (MatchResult, error) {
	if store == nil {
		return MatchResult{}, ErrCredentialStoreUnavailable
	}

	stored, err := store.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrCredentialNotFound) {
			return MatchResult{}, ErrCredentialNotFound
		}
		if !errors.Is(err, ErrCredentialStoreUnavailable) {
			err = fmt.Errorf("%w: %v", ErrCredentialStoreUnavailable, err)
		}
		return MatchResult{}, err
	}

	result := d.matches(ctx, userID, plain, stored)
	if !result.Upgraded() || !d.config.Upgrade.PersistOnAuthenticate {
		return result, nil
	}

	swapped, err := store.CompareAndSwap(ctx, userID, stored, result.UpgradedHash)
	switch {
	case err != nil:
		d.metrics.Inc(MetricUpgradeFailed)
		d.logger.Warn("hash upgrade write failed",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		d.emitAudit(ctx, auditEventHashUpgradePersisted, false, userID, d.registry.Best().Identifier, ErrCredentialStoreUnavailable, nil)
	case !swapped:
		d.metrics.Inc(MetricUpgradeFailed)
		d.logger.Warn("hash upgrade skipped, stored hash changed concurrently",
			zap.String("user_id", userID),
		)
	default:
		d.metrics.Inc(MetricUpgradePersisted)
		d.emitAudit(ctx, auditEventHashUpgradePersisted, true, userID, d.registry.Best().Identifier, nil, nil)
	}

	return result, nil
}
