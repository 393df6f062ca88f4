// Package ecma cross-checks patterns against independent regular
// expression engines: regexp2 in ECMAScript mode for acceptance, and
// quasilyte's syntax parser for a neutral s-expression dump.
package ecma

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/dlclark/regexp2"
	"github.com/quasilyte/regex/syntax"

	"github.com/regexplainer/regexplain/internal/types"
)

// ErrSkipped is returned by Validate when the pattern uses a mode the
// reference engine does not implement.
var ErrSkipped = errors.New("ecma check skipped")

// Result is the outcome of compiling a pattern with regexp2.
type Result struct {
	// Captures is the number of capturing groups regexp2 found.
	Captures int
	// Names lists named groups in regexp2's order.
	Names []string
}

// options maps literal flags onto regexp2 options. regexp2 rejects
// ECMAScript combined with anything but IgnoreCase and Multiline, so
// s, u, v and y are left out.
func options(flags types.Flags) regexp2.RegexOptions {
	opts := regexp2.RegexOptions(regexp2.ECMAScript)
	if flags.Has(types.FlagIgnoreCase) {
		opts |= regexp2.IgnoreCase
	}
	if flags.Has(types.FlagMultiline) {
		opts |= regexp2.Multiline
	}
	return opts
}

// Compile compiles pattern with regexp2 in ECMAScript mode. Patterns in
// u or v mode return ErrSkipped since regexp2 has no equivalent.
func Compile(pattern string, flags types.Flags) (*Result, error) {
	if flags.EitherUnicode() {
		return nil, ErrSkipped
	}
	re, err := regexp2.Compile(pattern, options(flags))
	if err != nil {
		return nil, err
	}
	res := &Result{Captures: len(re.GetGroupNumbers()) - 1}
	for _, name := range re.GetGroupNames() {
		// Unnamed groups are reported by their number.
		if !isDigits(name) {
			res.Names = append(res.Names, name)
		}
	}
	return res, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Validate reports whether the reference engine accepts the pattern. A
// rejection becomes an ecma-rejected diagnostic spanning the pattern.
// When the engine accepts it but finds other capture groups than want
// lists, the result is an ecma-capture-mismatch warning. Skipped
// patterns produce no diagnostic.
func Validate(pattern string, flags types.Flags, want Result, logger *slog.Logger) *types.SpanDiagnostic {
	log := types.Logger{L: logger}
	res, err := Compile(pattern, flags)
	if errors.Is(err, ErrSkipped) {
		log.Log(slog.LevelDebug, "ecma check skipped")
		return nil
	}
	if err != nil {
		log.Log(slog.LevelDebug, "ecma check rejected pattern", slog.String("error", err.Error()))
		return &types.SpanDiagnostic{
			Severity: types.SeverityWarning,
			Code:     types.DiagECMARejected,
			Span:     types.SpanOf(0, len(pattern)),
			Message:  fmt.Sprintf("an ECMAScript engine rejects this pattern: %v", err),
		}
	}
	log.Log(slog.LevelDebug, "ecma check accepted pattern",
		slog.Int("captures", res.Captures),
		slog.Int("want", want.Captures))
	if res.Captures == want.Captures && slices.Equal(res.Names, want.Names) {
		return nil
	}
	return &types.SpanDiagnostic{
		Severity: types.SeverityWarning,
		Code:     types.DiagECMACaptureMismatch,
		Span:     types.SpanOf(0, len(pattern)),
		Message: fmt.Sprintf("an ECMAScript engine finds %d capture groups %v, the explanation numbers %d %v",
			res.Captures, res.Names, want.Captures, want.Names),
	}
}

// Dump returns quasilyte's s-expression form of the pattern syntax.
func Dump(pattern string) (string, error) {
	p := syntax.NewParser(&syntax.ParserOptions{})
	re, err := p.Parse(pattern)
	if err != nil {
		return "", fmt.Errorf("syntax dump: %w", err)
	}
	return syntax.FormatSyntax(re), nil
}
