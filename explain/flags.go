package explain

import "github.com/regexplainer/regexplain/internal/types"

// Flags is the set of flags written after a regex literal's closing slash.
type Flags = types.Flags

// Flag values.
const (
	FlagHasIndices  = types.FlagHasIndices
	FlagGlobal      = types.FlagGlobal
	FlagIgnoreCase  = types.FlagIgnoreCase
	FlagMultiline   = types.FlagMultiline
	FlagDotAll      = types.FlagDotAll
	FlagUnicode     = types.FlagUnicode
	FlagUnicodeSets = types.FlagUnicodeSets
	FlagSticky      = types.FlagSticky
)

// ErrInvalidFlag is returned for unknown, repeated or conflicting flags.
var ErrInvalidFlag = types.ErrInvalidFlag

// ParseFlags parses flag letters such as "gim".
func ParseFlags(s string) (Flags, error) {
	return types.ParseFlags(s)
}

// Span is a byte range in the pattern body.
type Span = types.Span

// Severity ranks a diagnostic. Lower values are more severe.
type Severity = types.Severity

// Severity values.
const (
	SeverityFatal   = types.SeverityFatal
	SeveritySevere  = types.SeveritySevere
	SeverityError   = types.SeverityError
	SeverityMinor   = types.SeverityMinor
	SeverityStyle   = types.SeverityStyle
	SeverityWarning = types.SeverityWarning
	SeverityInfo    = types.SeverityInfo
)
