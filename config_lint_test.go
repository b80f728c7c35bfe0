package goDigest

import (
	"testing"
)

func TestLint_DefaultConfigHasNoWarnings(t *testing.T) {
	cfg := DefaultConfig()
	ws := cfg.Lint()

	if high := ws.BySeverity(LintWarn); len(high) != 0 {
		t.Fatalf("default config should only produce info findings, got %+v", high)
	}
	if !containsCode(ws.Codes(), "audit_disabled") {
		t.Error("expected audit_disabled info for default config")
	}
}

func TestLint_LowRounds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rounds.Min = 2000
	ws := cfg.Lint()
	if !containsCode(ws.Codes(), "rounds_min_low") {
		t.Fatal("expected rounds_min_low warning")
	}
	if ws.BySeverity(LintHigh) != nil {
		t.Fatal("2000 rounds should warn, not be HIGH")
	}

	cfg.Rounds.Min = 10
	if err := cfg.Lint().AsError(LintHigh); err == nil {
		t.Fatal("expected AsError(LintHigh) for 10 rounds")
	}
}

func TestLint_FixedRounds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rounds.Max = cfg.Rounds.Min
	if !containsCode(cfg.Lint().Codes(), "rounds_fixed") {
		t.Error("expected rounds_fixed info")
	}
}

func TestLint_ShortSalt(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Salt.Length = 12
	ws := cfg.Lint()
	if !containsCode(ws.Codes(), "salt_short") {
		t.Fatal("expected salt_short warning")
	}
	for _, w := range ws {
		if w.Code == "salt_short" && w.Severity != LintWarn {
			t.Errorf("salt_short at 12 should be WARN, got %s", w.Severity)
		}
	}

	cfg.Salt.MinLength = 4
	cfg.Salt.Length = 4
	if err := cfg.Lint().AsError(LintHigh); err == nil {
		t.Fatal("expected HIGH for 4-character salts")
	}
}

func TestLint_SmallAlphabet(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Salt.Alphabet = "abc"
	if !containsCode(cfg.Lint().Codes(), "salt_alphabet_small") {
		t.Error("expected salt_alphabet_small warning")
	}
}

func TestLint_UpgradeSettings(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Upgrade.PersistOnAuthenticate = false
	if !containsCode(cfg.Lint().Codes(), "upgrade_not_persisted") {
		t.Error("expected upgrade_not_persisted info")
	}

	cfg.Upgrade.Enabled = false
	codes := cfg.Lint().Codes()
	if !containsCode(codes, "upgrade_disabled") {
		t.Error("expected upgrade_disabled warning")
	}
	if containsCode(codes, "upgrade_not_persisted") {
		t.Error("upgrade_not_persisted is moot when upgrades are disabled")
	}
}

func TestLint_AuditDropping(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Audit.Enabled = true
	codes := cfg.Lint().Codes()
	if !containsCode(codes, "audit_may_drop") {
		t.Error("expected audit_may_drop info")
	}
	if containsCode(codes, "audit_disabled") {
		t.Error("audit_disabled should not fire when audit is on")
	}
}

func TestLint_SeverityString(t *testing.T) {
	for sev, want := range map[LintSeverity]string{
		LintInfo:         "INFO",
		LintWarn:         "WARN",
		LintHigh:         "HIGH",
		LintSeverity(42): "UNKNOWN",
	} {
		if got := sev.String(); got != want {
			t.Errorf("%d: expected %s, got %s", sev, want, got)
		}
	}
}

// helpers

func containsCode(codes []string, code string) bool {
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}
