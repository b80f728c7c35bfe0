package goDigest

import (
	"go.uber.org/zap"

	internalaudit "github.com/MrEthical07/goDigest/internal/audit"
	"github.com/MrEthical07/goDigest/primitive"
)

// Builder assembles a [Digester]. A Builder is single-use.
type Builder struct {
	config    Config
	logger    *zap.Logger
	auditSink AuditSink
	source    primitive.Source
	extra     []Descriptor

	built bool
}

// New returns a Builder seeded with [DefaultConfig].
func New() *Builder {
	return &Builder{
		config: DefaultConfig(),
	}
}

// WithConfig replaces the whole configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithLogger sets the logger. The default discards everything.
func (b *Builder) WithLogger(logger *zap.Logger) *Builder {
	b.logger = logger
	return b
}

// WithAuditSink sets where audit events go when Config.Audit is enabled.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithPrimitives sets the digest source handed to the built-in engines.
func (b *Builder) WithPrimitives(src primitive.Source) *Builder {
	b.source = src
	return b
}

// WithAlgorithm registers engine at priority. An engine whose identifier
// matches a built-in algorithm replaces it.
func (b *Builder) WithAlgorithm(priority int, engine Engine) *Builder {
	d := Descriptor{Priority: priority, Engine: engine}
	if engine != nil {
		d.Identifier = engine.Identifier()
	}
	b.extra = append(b.extra, d)
	return b
}

// WithMetricsEnabled toggles the in-process counters.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms toggles the hash latency histogram. It has no effect
// unless metrics are enabled.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build validates the configuration, constructs the registry and starts the
// audit dispatcher when enabled.
func (b *Builder) Build() (*Digester, error) {
	if b.built {
		return nil, ErrBuilderUsed
	}

	cfg := b.config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	defaults, err := DefaultDescriptors(cfg, b.source)
	if err != nil {
		return nil, err
	}

	// -------- REGISTRY --------
	overridden := make(map[string]bool, len(b.extra))
	for _, d := range b.extra {
		overridden[d.Identifier] = true
	}
	descs := make([]Descriptor, 0, len(defaults)+len(b.extra))
	for _, d := range defaults {
		if !overridden[d.Identifier] {
			descs = append(descs, d)
		}
	}
	descs = append(descs, b.extra...)

	registry, err := NewRegistry(descs...)
	if err != nil {
		return nil, err
	}

	logger := b.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	d := &Digester{
		config:   cfg,
		registry: registry,
		logger:   logger.Named("godigest"),
		metrics:  NewMetrics(cfg.Metrics),
		audit: internalaudit.NewDispatcher(internalaudit.Config{
			Enabled:    cfg.Audit.Enabled,
			BufferSize: cfg.Audit.BufferSize,
			DropIfFull: cfg.Audit.DropIfFull,
		}, b.auditSink),
	}

	b.built = true

	return d, nil
}
