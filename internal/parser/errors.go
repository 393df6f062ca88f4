package parser

import (
	"errors"
	"fmt"

	"github.com/regexplainer/regexplain/internal/types"
)

// ErrMalformedPattern matches every *MalformedPatternError with errors.Is.
var ErrMalformedPattern = errors.New("malformed pattern")

// MalformedPatternError reports a pattern that cannot be explained:
// unbalanced delimiters, lexical errors or nesting past the limit.
type MalformedPatternError struct {
	Offset  int // byte offset into the pattern body
	Span    types.Span
	Code    string
	Message string

	// Diagnostics holds the non-fatal diagnostics collected before the
	// failure.
	Diagnostics []types.SpanDiagnostic
}

func (e *MalformedPatternError) Error() string {
	return fmt.Sprintf("malformed pattern at offset %d: %s", e.Offset, e.Message)
}

// Is reports whether target is ErrMalformedPattern.
func (e *MalformedPatternError) Is(target error) bool {
	return target == ErrMalformedPattern
}
