package types

import (
	"fmt"
	"slices"
	"strings"
)

// Severity levels for diagnostics. Lower values are more severe.
type Severity int

const (
	SeverityFatal   Severity = 0 // Pattern cannot be explained
	SeveritySevere  Severity = 1 // Explanation changed to continue, must correct
	SeverityError   Severity = 2 // An ECMAScript engine would reject the pattern
	SeverityMinor   Severity = 3 // Likely a mistake in the pattern
	SeverityStyle   Severity = 4 // Style recommendation
	SeverityWarning Severity = 5 // Explanation may be inaccurate
	SeverityInfo    Severity = 6 // Informational notice
)

func (s Severity) String() string {
	switch s {
	case SeverityFatal:
		return "fatal"
	case SeveritySevere:
		return "severe"
	case SeverityError:
		return "error"
	case SeverityMinor:
		return "minor"
	case SeverityStyle:
		return "style"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return fmt.Sprintf("Severity(%d)", s)
	}
}

// AtLeast reports whether s is at least as severe as other.
func (s Severity) AtLeast(other Severity) bool {
	return s <= other
}

// ParseSeverity converts a severity name back to its value.
func ParseSeverity(name string) (Severity, bool) {
	for sev := SeverityFatal; sev <= SeverityInfo; sev++ {
		if sev.String() == strings.ToLower(name) {
			return sev, true
		}
	}
	return 0, false
}

// MarshalText encodes the severity by name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a severity name.
func (s *Severity) UnmarshalText(text []byte) error {
	sev, ok := ParseSeverity(string(text))
	if !ok {
		return fmt.Errorf("unknown severity %q", text)
	}
	*s = sev
	return nil
}

// StrictnessLevel defines preset reporting thresholds.
type StrictnessLevel int

const (
	StrictnessStrict StrictnessLevel = 0 // Report everything, including info
	StrictnessQuiet  StrictnessLevel = 3 // Report only likely mistakes
	StrictnessNormal StrictnessLevel = 5 // Default, report warnings and above
	StrictnessSilent StrictnessLevel = 6 // Report nothing
)

func (l StrictnessLevel) String() string {
	switch l {
	case StrictnessStrict:
		return "strict"
	case StrictnessQuiet:
		return "quiet"
	case StrictnessNormal:
		return "normal"
	case StrictnessSilent:
		return "silent"
	default:
		return fmt.Sprintf("StrictnessLevel(%d)", l)
	}
}

// ParseStrictness converts a strictness name to its level.
func ParseStrictness(name string) (StrictnessLevel, bool) {
	for _, l := range []StrictnessLevel{StrictnessStrict, StrictnessQuiet, StrictnessNormal, StrictnessSilent} {
		if l.String() == strings.ToLower(name) {
			return l, true
		}
	}
	return 0, false
}

// MarshalText encodes the level by name.
func (l StrictnessLevel) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText decodes a strictness name.
func (l *StrictnessLevel) UnmarshalText(text []byte) error {
	level, ok := ParseStrictness(string(text))
	if !ok {
		return fmt.Errorf("unknown strictness %q", text)
	}
	*l = level
	return nil
}

// SpanDiagnostic is a message from the lexer, parser or generator,
// located by a byte span in the pattern source.
type SpanDiagnostic struct {
	Severity Severity
	Code     string // e.g., "brace-literal", "lookbehind-alternation"
	Span     Span
	Message  string
}

// String returns "[severity] start-end: message (code)".
func (d SpanDiagnostic) String() string {
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(d.Severity.String())
	b.WriteString("] ")
	fmt.Fprintf(&b, "%d-%d: ", d.Span.Start, d.Span.End)
	b.WriteString(d.Message)
	if d.Code != "" {
		b.WriteString(" (")
		b.WriteString(d.Code)
		b.WriteByte(')')
	}
	return b.String()
}

// DiagnosticConfig controls strictness and diagnostic filtering.
type DiagnosticConfig struct {
	// Level sets the base strictness level.
	// Diagnostics with severity > Level are suppressed.
	Level StrictnessLevel

	// FailAt sets the severity threshold for failure.
	// Callers treat any reported diagnostic with severity <= FailAt as failure.
	// Default (0) means fail on Fatal only.
	FailAt Severity

	// Overrides change severity for specific diagnostic codes.
	Overrides map[string]Severity

	// Ignore lists diagnostic codes to suppress entirely.
	// Supports glob patterns (e.g., "lookbehind-*").
	Ignore []string
}

// DefaultConfig returns the default diagnostic configuration (Normal strictness).
func DefaultConfig() DiagnosticConfig {
	return DiagnosticConfig{
		Level:  StrictnessNormal,
		FailAt: SeverityFatal,
	}
}

// StrictConfig reports everything and fails on anything an ECMAScript
// engine would reject.
func StrictConfig() DiagnosticConfig {
	return DiagnosticConfig{
		Level:  StrictnessStrict,
		FailAt: SeverityError,
	}
}

// QuietConfig reports only likely mistakes. Brace reclassification
// and unknown identity escapes are ignored entirely.
//
// Ignored codes:
//   - brace-literal: Annex B allows literal braces, common in path globs
//   - identity-escape: needless escapes are harmless
func QuietConfig() DiagnosticConfig {
	return DiagnosticConfig{
		Level:  StrictnessQuiet,
		FailAt: SeverityFatal,
		Ignore: []string{
			DiagBraceLiteral,
			DiagIdentityEscape,
		},
	}
}

// ShouldReport returns true if a diagnostic with the given code and severity
// should be reported under this configuration.
//
// The Level controls reporting threshold:
//   - Level 0 (Strict): Report all diagnostics (Info and above)
//   - Level 3 (Quiet): Report Minor and above (0-3)
//   - Level 5 (Normal): Report Warning and above (0-5)
//   - Level 6 (Silent): Report nothing
func (c DiagnosticConfig) ShouldReport(code string, sev Severity) bool {
	if slices.ContainsFunc(c.Ignore, func(pattern string) bool {
		return MatchGlob(pattern, code)
	}) {
		return false
	}
	if override, ok := c.Overrides[code]; ok {
		sev = override
	}
	if c.Level >= StrictnessSilent {
		return false
	}
	if c.Level == StrictnessStrict {
		return true
	}
	return int(sev) <= int(c.Level)
}

// Effective returns the severity after applying overrides.
func (c DiagnosticConfig) Effective(code string, sev Severity) Severity {
	if override, ok := c.Overrides[code]; ok {
		return override
	}
	return sev
}

// ShouldFail returns true if a diagnostic with the given severity should
// be treated as a failure.
func (c DiagnosticConfig) ShouldFail(sev Severity) bool {
	return sev <= c.FailAt
}

// MatchGlob performs simple glob matching with * wildcard.
func MatchGlob(pattern, s string) bool {
	if pattern == "*" {
		return true
	}
	if prefix, ok := strings.CutSuffix(pattern, "*"); ok {
		return strings.HasPrefix(s, prefix)
	}
	if suffix, ok := strings.CutPrefix(pattern, "*"); ok {
		return strings.HasSuffix(s, suffix)
	}
	return pattern == s
}

// Collector accumulates diagnostics filtered through a DiagnosticConfig.
type Collector struct {
	Config      DiagnosticConfig
	diagnostics []SpanDiagnostic
}

// Emit records a diagnostic if the config reports it.
func (c *Collector) Emit(code string, sev Severity, span Span, message string) {
	if !c.Config.ShouldReport(code, sev) {
		return
	}
	c.diagnostics = append(c.diagnostics, SpanDiagnostic{
		Severity: c.Config.Effective(code, sev),
		Code:     code,
		Span:     span,
		Message:  message,
	})
}

// Diagnostics returns a copy of the collected diagnostics.
func (c *Collector) Diagnostics() []SpanDiagnostic {
	return slices.Clone(c.diagnostics)
}

// Len returns the number of collected diagnostics.
func (c *Collector) Len() int {
	return len(c.diagnostics)
}
