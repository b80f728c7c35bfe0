package goDigest

import "github.com/MrEthical07/goDigest/iterated"

// SecurityReport summarizes the hashing posture of a [Digester].
type SecurityReport struct {
	BestAlgorithm          string
	Algorithms             []string
	FastDigestAlgorithms   []string
	RoundsMin              int
	RoundsMax              int
	SaltLength             int
	SaltMinLength          int
	UpgradeEnabled         bool
	PersistOnAuthenticate  bool
	RehashWeakerParameters bool
	MetricsEnabled         bool
	AuditEnabled           bool
	Lint                   LintResult
}

// SecurityReport returns the effective configuration of d. FastDigestAlgorithms
// lists registered algorithms that apply the bare digest once per round
// without key stretching; hashes in those formats should be upgraded.
func (d *Digester) SecurityReport() SecurityReport {
	if d == nil {
		return SecurityReport{}
	}

	var all, fast []string
	for _, desc := range d.registry.Descriptors() {
		all = append(all, desc.Identifier)
		if _, ok := desc.Engine.(*iterated.Engine); ok {
			fast = append(fast, desc.Identifier)
		}
	}

	return SecurityReport{
		BestAlgorithm:          d.registry.Best().Identifier,
		Algorithms:             all,
		FastDigestAlgorithms:   fast,
		RoundsMin:              d.config.Rounds.Min,
		RoundsMax:              d.config.Rounds.Max,
		SaltLength:             d.config.Salt.Length,
		SaltMinLength:          d.config.Salt.MinLength,
		UpgradeEnabled:         d.config.Upgrade.Enabled,
		PersistOnAuthenticate:  d.config.Upgrade.PersistOnAuthenticate,
		RehashWeakerParameters: d.config.Upgrade.RehashWeakerParameters,
		MetricsEnabled:         d.config.Metrics.Enabled,
		AuditEnabled:           d.config.Audit.Enabled,
		Lint:                   d.config.Lint(),
	}
}
