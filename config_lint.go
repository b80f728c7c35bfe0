package goDigest

import (
	"fmt"
	"strings"

	"github.com/MrEthical07/goDigest/policy"
)

// LintSeverity ranks a [LintWarning].
type LintSeverity int

const (
	// LintInfo marks settings worth knowing about.
	LintInfo LintSeverity = iota
	// LintWarn marks settings that weaken stored hashes.
	LintWarn
	// LintHigh marks settings that make stored hashes cheap to attack.
	LintHigh
)

// String returns INFO, WARN, HIGH or UNKNOWN.
func (s LintSeverity) String() string {
	switch s {
	case LintInfo:
		return "INFO"
	case LintWarn:
		return "WARN"
	case LintHigh:
		return "HIGH"
	default:
		return "UNKNOWN"
	}
}

// LintWarning is one finding from [Config.Lint].
type LintWarning struct {
	Code     string
	Severity LintSeverity
	Message  string
}

// LintResult is the list of findings from [Config.Lint].
type LintResult []LintWarning

// Codes returns the warning codes in order.
func (r LintResult) Codes() []string {
	out := make([]string, 0, len(r))
	for _, w := range r {
		out = append(out, w.Code)
	}
	return out
}

// BySeverity returns the warnings at or above min.
func (r LintResult) BySeverity(min LintSeverity) LintResult {
	var out LintResult
	for _, w := range r {
		if w.Severity >= min {
			out = append(out, w)
		}
	}
	return out
}

// AsError returns an error listing every warning at or above min, or nil.
func (r LintResult) AsError(min LintSeverity) error {
	hits := r.BySeverity(min)
	if len(hits) == 0 {
		return nil
	}
	parts := make([]string, 0, len(hits))
	for _, w := range hits {
		parts = append(parts, fmt.Sprintf("[%s] %s: %s", w.Severity, w.Code, w.Message))
	}
	return fmt.Errorf("config lint: %s", strings.Join(parts, "; "))
}

// Lint reports settings that are valid but weaken the hashes the digester
// produces. Unlike Validate it never rejects a configuration.
func (c *Config) Lint() LintResult {
	var ws LintResult
	add := func(code string, sev LintSeverity, format string, args ...any) {
		ws = append(ws, LintWarning{Code: code, Severity: sev, Message: fmt.Sprintf(format, args...)})
	}

	switch {
	case c.Rounds.Min < 1000:
		add("rounds_min_low", LintHigh, "minimum rounds %d is below 1000", c.Rounds.Min)
	case c.Rounds.Min < policy.DefaultMinRounds:
		add("rounds_min_low", LintWarn, "minimum rounds %d is below %d", c.Rounds.Min, policy.DefaultMinRounds)
	}
	if c.Rounds.Min == c.Rounds.Max {
		add("rounds_fixed", LintInfo, "every generated hash uses %d rounds", c.Rounds.Min)
	}

	switch {
	case c.Salt.Length < policy.DefaultMinSaltLength:
		add("salt_short", LintHigh, "salt length %d is below %d", c.Salt.Length, policy.DefaultMinSaltLength)
	case c.Salt.Length < policy.DefaultSaltLength:
		add("salt_short", LintWarn, "salt length %d is below %d", c.Salt.Length, policy.DefaultSaltLength)
	}
	if c.Salt.Alphabet != "" && len(c.Salt.Alphabet) < 16 {
		add("salt_alphabet_small", LintWarn, "salt alphabet has only %d characters", len(c.Salt.Alphabet))
	}

	if !c.Upgrade.Enabled {
		add("upgrade_disabled", LintWarn, "hashes of outdated algorithms are never replaced")
	} else if !c.Upgrade.PersistOnAuthenticate {
		add("upgrade_not_persisted", LintInfo, "Authenticate returns upgraded hashes without storing them")
	}

	if !c.Audit.Enabled {
		add("audit_disabled", LintInfo, "no audit events are emitted")
	} else if c.Audit.DropIfFull {
		add("audit_may_drop", LintInfo, "audit events are dropped when the buffer is full")
	}

	return ws
}
