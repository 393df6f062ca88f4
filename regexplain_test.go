package regexplain

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/regexplainer/regexplain/internal/testutil"
	"github.com/regexplainer/regexplain/internal/types"
)

func TestExplainPattern(t *testing.T) {
	exp, err := ExplainPattern(`(?<year>\d{4})-(\d{2})?`, FlagGlobal)
	testutil.NoError(t, err, "explain")
	testutil.True(t, exp.IsValid, "valid")
	testutil.Equal(t, "/(?<year>\\d{4})-(\\d{2})?/g", exp.Literal(), "literal")
	testutil.SliceEqual(t, []string{
		"named capture group 1 `year`:",
		"  **0-9** (_4x_)",
		"`-`",
		"capture group 2 (_optional_):",
		"  **0-9** (_2x_)",
	}, exp.Root.Lines(), "lines")
}

func TestParseAndExplain(t *testing.T) {
	p, err := Parse(`(a)|(b)`, 0)
	testutil.NoError(t, err, "parse")
	testutil.Equal(t, 2, p.CaptureCount(), "captures shared across branches")

	root := Explain(p)
	testutil.SliceEqual(t, []string{
		"Either capture group 1 or capture group 2:",
		"  `a`",
		"  `b`",
	}, root.Lines(), "lines")
}

func TestExplainLiteral(t *testing.T) {
	exp, err := ExplainLiteral(`/^a.b$/ms`)
	testutil.NoError(t, err, "explain")
	testutil.Equal(t, FlagMultiline|FlagDotAll, exp.Flags, "flags")
	testutil.Equal(t, FlagMultiline|FlagDotAll, exp.Root.Flags, "flags on root")
	testutil.SliceEqual(t, []string{"**START**", "`a`", "**ANY**", "`b`", "**END**"}, exp.Root.Lines(), "lines")
}

func TestExplainLiteralInvalid(t *testing.T) {
	_, err := ExplainLiteral(`a+b`)
	testutil.True(t, errors.Is(err, ErrInvalidLiteral), "no slashes: %v", err)

	_, err = ExplainLiteral(`/a/gg`)
	testutil.True(t, errors.Is(err, ErrInvalidLiteral), "repeated flag: %v", err)
	testutil.True(t, errors.Is(err, ErrInvalidFlag), "wraps flag error: %v", err)
}

func TestParseLiteral(t *testing.T) {
	pattern, flags, err := ParseLiteral(`/[/]\//iy`)
	testutil.NoError(t, err, "parse")
	testutil.Equal(t, `[/]\/`, pattern, "pattern")
	testutil.Equal(t, FlagIgnoreCase|FlagSticky, flags, "flags")
}

func TestMalformedPattern(t *testing.T) {
	for _, pattern := range []string{`(a`, `a)`, `[a`, `a\`, `(?x)`} {
		t.Run(pattern, func(t *testing.T) {
			exp, err := ExplainPattern(pattern, 0)
			var mpe *MalformedPatternError
			testutil.ErrorAs(t, err, &mpe, "error type")
			testutil.True(t, errors.Is(err, ErrMalformedPattern), "sentinel")
			testutil.NotNil(t, exp, "explanation still returned")
			testutil.False(t, exp.IsValid, "invalid")
			testutil.Equal(t, err.Error(), exp.Error, "error text")
			testutil.Nil(t, exp.Root, "no tree")
			testutil.True(t, Failed(exp, DefaultConfig()), "failed")
		})
	}
}

func TestMaxDepth(t *testing.T) {
	deep := strings.Repeat("(", 5) + "a" + strings.Repeat(")", 5)
	_, err := Parse(deep, 0, WithMaxDepth(3))
	var mpe *MalformedPatternError
	testutil.ErrorAs(t, err, &mpe, "too deep")
	testutil.Equal(t, types.DiagNestingTooDeep, mpe.Code, "code")

	_, err = Parse(deep, 0)
	testutil.NoError(t, err, "default depth")
}

func TestUnsupportedConstructWarnings(t *testing.T) {
	exp, err := ExplainPattern(`x(?<=a|b)y`, 0)
	testutil.NoError(t, err, "explain")
	warnings := exp.Warnings()
	testutil.Len(t, warnings, 1, "warnings")
	testutil.Equal(t, types.DiagLookbehindAlternation, warnings[0].Code, "code")
	testutil.True(t, exp.Root.HasCaveats(), "caveat on tree")
}

func TestDiagnosticConfig(t *testing.T) {
	exp, err := ExplainPattern(`x(?<=a|b)y`, 0, WithDiagnosticConfig(DiagnosticConfig{
		Level:  StrictnessNormal,
		Ignore: []string{"lookbehind-*"},
	}))
	testutil.NoError(t, err, "explain")
	testutil.Len(t, exp.Diagnostics, 0, "ignored by glob")

	exp, err = ExplainPattern(`a{x}`, 0)
	testutil.NoError(t, err, "explain")
	testutil.Len(t, exp.Diagnostics, 0, "info hidden by default")

	exp, err = ExplainPattern(`a{x}`, 0, WithDiagnosticConfig(StrictConfig()))
	testutil.NoError(t, err, "explain")
	testutil.Len(t, exp.Diagnostics, 1, "info reported under strict")
	testutil.Equal(t, types.DiagBraceLiteral, exp.Diagnostics[0].Code, "code")
	testutil.False(t, Failed(exp, StrictConfig()), "info never fails")
}

func TestECMAValidation(t *testing.T) {
	exp, err := ExplainPattern(`*a`, 0, WithECMAValidation(true))
	testutil.NoError(t, err, "degraded, not fatal")
	var codes []string
	for _, d := range exp.Diagnostics {
		codes = append(codes, d.Code)
	}
	testutil.SliceEqual(t, []string{types.DiagNothingToRepeat, types.DiagECMARejected}, codes, "codes")

	exp, err = ExplainPattern(`*a`, 0)
	testutil.NoError(t, err, "explain")
	testutil.Len(t, exp.Diagnostics, 1, "no cross-check by default")

	exp, err = ExplainPattern(`\p{L}+`, FlagUnicode, WithECMAValidation(true))
	testutil.NoError(t, err, "explain")
	testutil.Len(t, exp.Diagnostics, 0, "unicode mode not cross-checked")

	exp, err = ExplainPattern(`(a)(?:x)(?<b>b)c`, 0,
		WithECMAValidation(true), WithDiagnosticConfig(StrictConfig()))
	testutil.NoError(t, err, "explain")
	testutil.Len(t, exp.Diagnostics, 0, "engine agrees on capture groups")
}

func TestFlagsDoNotChangeTree(t *testing.T) {
	plain, err := ExplainPattern(`^a|b$`, 0)
	testutil.NoError(t, err, "plain")
	flagged, err := ExplainPattern(`^a|b$`, FlagGlobal|FlagMultiline|FlagIgnoreCase)
	testutil.NoError(t, err, "flagged")
	testutil.SliceEqual(t, plain.Root.Lines(), flagged.Root.Lines(), "same shape")
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: LevelTrace}))
	_, err := ExplainPattern(`a(b)`, 0, WithLogger(logger))
	testutil.NoError(t, err, "explain")
	out := buf.String()
	testutil.Contains(t, out, "component=lexer", "lexer logs")
	testutil.Contains(t, out, "component=parser", "parser logs")
	testutil.Contains(t, out, "component=narrative", "narrative logs")
}

func TestParseFlags(t *testing.T) {
	flags, err := ParseFlags("gimsuy")
	testutil.NoError(t, err, "parse")
	testutil.Equal(t, "gimsuy", flags.String(), "canonical")

	_, err = ParseFlags("x")
	testutil.True(t, errors.Is(err, ErrInvalidFlag), "unknown letter")
}

func TestRenderRailroad(t *testing.T) {
	p, err := Parse(`(?<word>\w+)`, 0)
	testutil.NoError(t, err, "parse")
	var buf strings.Builder
	testutil.NoError(t, RenderRailroad(&buf, p), "render")
	testutil.Contains(t, buf.String(), "+-word-", "group label")
	testutil.Contains(t, buf.String(), "| \\w |", "shorthand terminal")
	testutil.Contains(t, buf.String(), "+-<-", "loop")
}
