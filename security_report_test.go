package goDigest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrEthical07/goDigest/password"
)

func TestSecurityReportDefaults(t *testing.T) {
	d, _ := newTestDigester(t, nil)

	r := d.SecurityReport()
	assert.Equal(t, "6", r.BestAlgorithm)
	assert.Equal(t, []string{"6", "5", "4", "3", "1"}, r.Algorithms)
	assert.Equal(t, []string{"4", "3", "1"}, r.FastDigestAlgorithms)
	assert.Equal(t, d.Config().Rounds.Min, r.RoundsMin)
	assert.Equal(t, d.Config().Rounds.Max, r.RoundsMax)
	assert.True(t, r.UpgradeEnabled)
	assert.True(t, r.MetricsEnabled)
	assert.False(t, r.AuditEnabled)
	assert.Empty(t, r.Lint.BySeverity(LintWarn))
}

func TestSecurityReportPluggedEngine(t *testing.T) {
	bc, err := password.NewBcrypt(4)
	assert.NoError(t, err)

	d, _ := newTestDigester(t, func(b *Builder) {
		b.WithAlgorithm(10, bc)
	})

	r := d.SecurityReport()
	assert.Equal(t, password.IdentifierBcrypt, r.BestAlgorithm)
	assert.Len(t, r.Algorithms, 6)
	assert.NotContains(t, r.FastDigestAlgorithms, password.IdentifierBcrypt)
}

func TestSecurityReportNilDigester(t *testing.T) {
	var d *Digester
	assert.Equal(t, SecurityReport{}, d.SecurityReport())
}
