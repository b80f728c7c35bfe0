package goDigest

import (
	"errors"
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/MrEthical07/goDigest/policy"
)

// Config holds everything a [Digester] needs besides its collaborators.
//
// Config instances are intended to be configured during initialization and then treated as immutable.
type Config struct {
	Rounds  RoundsConfig  `yaml:"rounds" json:"rounds" toml:"rounds"`
	Salt    SaltConfig    `yaml:"salt" json:"salt" toml:"salt"`
	Upgrade UpgradeConfig `yaml:"upgrade" json:"upgrade" toml:"upgrade"`
	Metrics MetricsConfig `yaml:"metrics" json:"metrics" toml:"metrics"`
	Audit   AuditConfig   `yaml:"audit" json:"audit" toml:"audit"`
}

/*
====================================
HASHING PARAMETERS
====================================
*/

// RoundsConfig is the inclusive range explicit round counts are clamped to.
// Generated hashes draw their count from [Min, Max).
type RoundsConfig struct {
	Min int `yaml:"min" json:"min" toml:"min" env:"GODIGEST_ROUNDS_MIN"`
	Max int `yaml:"max" json:"max" toml:"max" env:"GODIGEST_ROUNDS_MAX"`
}

// SaltConfig controls generated salts. Alphabet may be empty to use the
// default set.
type SaltConfig struct {
	Length    int    `yaml:"length" json:"length" toml:"length" env:"GODIGEST_SALT_LENGTH"`
	MinLength int    `yaml:"min_length" json:"min_length" toml:"min_length" env:"GODIGEST_SALT_MIN_LENGTH"`
	Alphabet  string `yaml:"alphabet" json:"alphabet" toml:"alphabet" env:"GODIGEST_SALT_ALPHABET"`
}

// UpgradeConfig controls transparent re-hashing after successful verification.
type UpgradeConfig struct {
	// Enabled issues an upgraded hash when the matched algorithm is not the best.
	Enabled bool `yaml:"enabled" json:"enabled" toml:"enabled" env:"GODIGEST_UPGRADE_ENABLED"`
	// PersistOnAuthenticate makes Authenticate write upgraded hashes back to the store.
	PersistOnAuthenticate bool `yaml:"persist_on_authenticate" json:"persist_on_authenticate" toml:"persist_on_authenticate" env:"GODIGEST_UPGRADE_PERSIST"`
	// RehashWeakerParameters also upgrades hashes of the best algorithm when
	// its engine reports weaker parameters (see ParameterUpgrader).
	RehashWeakerParameters bool `yaml:"rehash_weaker_parameters" json:"rehash_weaker_parameters" toml:"rehash_weaker_parameters" env:"GODIGEST_UPGRADE_REHASH_PARAMS"`
}

/*
====================================
OBSERVABILITY
====================================
*/

// MetricsConfig toggles in-process counters and the hash latency histogram.
type MetricsConfig struct {
	Enabled                 bool `yaml:"enabled" json:"enabled" toml:"enabled" env:"GODIGEST_METRICS_ENABLED"`
	EnableLatencyHistograms bool `yaml:"latency_histograms" json:"latency_histograms" toml:"latency_histograms" env:"GODIGEST_METRICS_LATENCY"`
}

// AuditConfig controls the async audit dispatcher.
type AuditConfig struct {
	Enabled    bool `yaml:"enabled" json:"enabled" toml:"enabled" env:"GODIGEST_AUDIT_ENABLED"`
	BufferSize int  `yaml:"buffer_size" json:"buffer_size" toml:"buffer_size" env:"GODIGEST_AUDIT_BUFFER_SIZE"`
	DropIfFull bool `yaml:"drop_if_full" json:"drop_if_full" toml:"drop_if_full" env:"GODIGEST_AUDIT_DROP_IF_FULL"`
}

/*
====================================
DEFAULT CONFIG
====================================
*/

// DefaultConfig returns the configuration used by [New].
func DefaultConfig() Config {
	return Config{
		Rounds: RoundsConfig{
			Min: policy.DefaultMinRounds,
			Max: policy.DefaultMaxRounds,
		},
		Salt: SaltConfig{
			Length:    policy.DefaultSaltLength,
			MinLength: policy.DefaultMinSaltLength,
			Alphabet:  policy.DefaultSaltAlphabet,
		},
		Upgrade: UpgradeConfig{
			Enabled:                true,
			PersistOnAuthenticate:  true,
			RehashWeakerParameters: false,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
	}
}

/*
====================================
LOADING
====================================
*/

// LoadConfig reads path (YAML, JSON, TOML or .env by extension) over
// [DefaultConfig], applies GODIGEST_* environment overrides and validates the
// result.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfigFromEnv applies GODIGEST_* environment variables over
// [DefaultConfig] and validates the result.
func LoadConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read config from env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

/*
====================================
VALIDATION
====================================
*/

// Validate checks the configuration for values no engine could honour.
func (c *Config) Validate() error {
	if _, err := policy.NewRounds(c.Rounds.Min, c.Rounds.Max, 1); err != nil {
		return fmt.Errorf("Rounds: %w", err)
	}
	if _, err := policy.NewSalt(c.Salt.MinLength, c.Salt.Length, c.Salt.Alphabet); err != nil {
		return fmt.Errorf("Salt: %w", err)
	}

	if c.Audit.Enabled && c.Audit.BufferSize <= 0 {
		return errors.New("Audit BufferSize must be > 0 when Audit is enabled")
	}

	return nil
}
