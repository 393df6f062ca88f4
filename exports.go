package regexplain

import (
	"github.com/regexplainer/regexplain/explain"
	"github.com/regexplainer/regexplain/internal/ast"
	"github.com/regexplainer/regexplain/internal/parser"
	"github.com/regexplainer/regexplain/internal/types"
)

// Type aliases for the public API. Output types live in the explain
// subpackage.

// Pattern is a parsed pattern: its syntax tree, capture groups and
// diagnostics.
type Pattern = ast.Pattern

// Node is one line of an explanation.
type Node = explain.Node

// NodeKind identifies what an explanation node describes.
type NodeKind = explain.NodeKind

// Explanation bundles a pattern with its explanation tree.
type Explanation = explain.Explanation

// Diagnostic is a non-fatal finding about a pattern.
type Diagnostic = explain.Diagnostic

// Flags is the set of flags written after a regex literal.
type Flags = explain.Flags

// Span is a byte range in the pattern body.
type Span = explain.Span

// Severity ranks a diagnostic.
type Severity = explain.Severity

// Severity values.
const (
	SeverityFatal   = explain.SeverityFatal
	SeveritySevere  = explain.SeveritySevere
	SeverityError   = explain.SeverityError
	SeverityMinor   = explain.SeverityMinor
	SeverityStyle   = explain.SeverityStyle
	SeverityWarning = explain.SeverityWarning
	SeverityInfo    = explain.SeverityInfo
)

// RenderOptions controls text and markdown rendering.
type RenderOptions = explain.RenderOptions

// MalformedPatternError reports a pattern that cannot be explained.
type MalformedPatternError = parser.MalformedPatternError

// DiagnosticConfig controls strictness and diagnostic filtering.
type DiagnosticConfig = types.DiagnosticConfig

// StrictnessLevel sets the reporting threshold of a DiagnosticConfig.
type StrictnessLevel = types.StrictnessLevel

// Strictness levels.
const (
	StrictnessStrict = types.StrictnessStrict
	StrictnessNormal = types.StrictnessNormal
	StrictnessQuiet  = types.StrictnessQuiet
	StrictnessSilent = types.StrictnessSilent
)

// Flag values.
const (
	FlagHasIndices  = explain.FlagHasIndices
	FlagGlobal      = explain.FlagGlobal
	FlagIgnoreCase  = explain.FlagIgnoreCase
	FlagMultiline   = explain.FlagMultiline
	FlagDotAll      = explain.FlagDotAll
	FlagUnicode     = explain.FlagUnicode
	FlagUnicodeSets = explain.FlagUnicodeSets
	FlagSticky      = explain.FlagSticky
)

// ErrInvalidFlag is returned for unknown or repeated flag letters.
var ErrInvalidFlag = explain.ErrInvalidFlag

// DefaultConfig reports warnings and above and fails only on fatal
// problems.
func DefaultConfig() DiagnosticConfig { return types.DefaultConfig() }

// StrictConfig reports everything and fails on errors.
func StrictConfig() DiagnosticConfig { return types.StrictConfig() }

// QuietConfig reports only likely mistakes.
func QuietConfig() DiagnosticConfig { return types.QuietConfig() }

// ParseSeverity converts a severity name such as "warning" to its value.
func ParseSeverity(name string) (Severity, bool) { return types.ParseSeverity(name) }

// ParseStrictness converts a strictness name such as "quiet" to its level.
func ParseStrictness(name string) (StrictnessLevel, bool) { return types.ParseStrictness(name) }
