package regexplain

import (
	"log/slog"

	"github.com/regexplainer/regexplain/internal/parser"
	"github.com/regexplainer/regexplain/internal/types"
)

// LevelTrace is a custom log level more verbose than Debug.
// Use for per-item iteration logging (tokens, explanation nodes).
// Enable with: &slog.HandlerOptions{Level: slog.Level(-8)}
const LevelTrace = types.LevelTrace

// DefaultMaxDepth is the group nesting limit used when WithMaxDepth is
// not given.
const DefaultMaxDepth = parser.DefaultMaxDepth

// Option configures Parse, Explain and the ExplainX helpers.
type Option func(*config)

type config struct {
	logger     *slog.Logger
	diagConfig DiagnosticConfig
	ecma       bool
	maxDepth   int
	workers    int
}

func newConfig(opts []Option) config {
	cfg := config{
		diagConfig: types.DefaultConfig(),
		maxDepth:   DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithLogger sets the logger for debug/trace output.
// If not set, no logging occurs (zero overhead).
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithDiagnosticConfig sets the diagnostic configuration used to filter
// and re-grade diagnostics.
//
// Example:
//
//	regexplain.ExplainPattern(p, 0, regexplain.WithDiagnosticConfig(regexplain.StrictConfig()))
func WithDiagnosticConfig(cfg DiagnosticConfig) Option {
	return func(c *config) { c.diagConfig = cfg }
}

// WithECMAValidation enables the cross-check against an independent
// ECMAScript engine. Patterns it rejects gain an ecma-rejected warning.
// Patterns using the u or v flag are not checked.
func WithECMAValidation(enabled bool) Option {
	return func(c *config) { c.ecma = enabled }
}

// WithMaxDepth sets the group nesting limit. Deeper patterns fail with
// a *MalformedPatternError.
func WithMaxDepth(depth int) Option {
	return func(c *config) { c.maxDepth = depth }
}

// WithWorkers bounds the parallelism of ExplainAll. Values below 1 use
// runtime.NumCPU.
func WithWorkers(n int) Option {
	return func(c *config) { c.workers = n }
}

func componentLogger(logger *slog.Logger, component string) *slog.Logger {
	return types.ComponentLogger(logger, component)
}
