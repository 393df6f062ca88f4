// Package regexplain explains ECMAScript regular expressions.
//
// A pattern is parsed into a syntax tree and then walked to produce a
// nested, human-readable explanation: one node per literal run, class,
// group, alternation or assertion, with quantifiers phrased as "optional",
// ">= 1x" or "2-5x" and capture groups numbered the way an engine
// numbers them.
//
//	exp, err := regexplain.ExplainLiteral(`/(?<year>\d{4})-\d{2}/g`)
//	if err != nil {
//	    return err
//	}
//	exp.RenderText(os.Stdout, explain.RenderOptions{})
package regexplain

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/regexplainer/regexplain/explain"
	"github.com/regexplainer/regexplain/internal/ast"
	"github.com/regexplainer/regexplain/internal/ecma"
	"github.com/regexplainer/regexplain/internal/fixture"
	"github.com/regexplainer/regexplain/internal/narrative"
	"github.com/regexplainer/regexplain/internal/parser"
	"github.com/regexplainer/regexplain/internal/railroad"
	"github.com/regexplainer/regexplain/internal/types"
)

// ErrInvalidLiteral is returned by ParseLiteral and ExplainLiteral for
// text that is not a /body/flags literal.
var ErrInvalidLiteral = fixture.ErrInvalidLiteral

// ErrMalformedPattern matches every *MalformedPatternError with errors.Is.
var ErrMalformedPattern = parser.ErrMalformedPattern

// ParseFlags parses flag letters such as "gim".
func ParseFlags(s string) (Flags, error) {
	return types.ParseFlags(s)
}

// ParseLiteral splits a regex literal such as /a+b/gi into its pattern
// body and flags.
func ParseLiteral(literal string) (string, Flags, error) {
	pattern, letters, err := fixture.ParseLiteral(literal)
	if err != nil {
		return "", 0, err
	}
	flags, err := types.ParseFlags(letters)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %w", ErrInvalidLiteral, err)
	}
	return pattern, flags, nil
}

// Parse parses a pattern body into its syntax tree. Malformed patterns
// return a *MalformedPatternError; everything else parses, with
// questionable constructs reported in Pattern.Diagnostics.
func Parse(pattern string, flags Flags, opts ...Option) (*Pattern, error) {
	cfg := newConfig(opts)
	return parse(pattern, flags, cfg)
}

func parse(pattern string, flags Flags, cfg config) (*Pattern, error) {
	p := parser.New(pattern, flags, componentLogger(cfg.logger, "parser"), cfg.diagConfig)
	p.SetMaxDepth(cfg.maxDepth)
	tree, err := p.Parse()
	if err != nil {
		return nil, err
	}
	if cfg.ecma {
		want := ecma.Result{Captures: tree.CaptureCount(), Names: tree.GroupNames()}
		d := ecma.Validate(pattern, flags, want, componentLogger(cfg.logger, "ecma"))
		if d != nil && cfg.diagConfig.ShouldReport(d.Code, d.Severity) {
			d.Severity = cfg.diagConfig.Effective(d.Code, d.Severity)
			tree.Diagnostics = append(tree.Diagnostics, *d)
		}
	}
	return tree, nil
}

// Explain builds the explanation tree of a parsed pattern. The root
// node's label is the pattern literal; its children are the top-level
// lines of the explanation.
func Explain(p *Pattern, opts ...Option) *Node {
	cfg := newConfig(opts)
	return narrative.Explain(p, componentLogger(cfg.logger, "narrative"))
}

// ExplainPattern parses and explains a pattern body.
//
// A malformed pattern returns both the error and an Explanation with
// IsValid false, Error set and no tree, so callers that only display
// results can ignore the error.
func ExplainPattern(pattern string, flags Flags, opts ...Option) (*Explanation, error) {
	cfg := newConfig(opts)
	return explainPattern(pattern, flags, cfg)
}

func explainPattern(pattern string, flags Flags, cfg config) (*Explanation, error) {
	exp := &Explanation{Pattern: pattern, Flags: flags}

	tree, err := parse(pattern, flags, cfg)
	if err != nil {
		exp.Error = err.Error()
		var mpe *MalformedPatternError
		if errors.As(err, &mpe) {
			exp.Diagnostics = convert(mpe.Diagnostics)
		}
		if cfg.logger != nil {
			cfg.logger.Debug("pattern rejected", slog.String("error", exp.Error))
		}
		return exp, err
	}

	exp.IsValid = true
	exp.Root = narrative.Explain(tree, componentLogger(cfg.logger, "narrative"))
	exp.Diagnostics = convert(tree.Diagnostics)
	return exp, nil
}

// ExplainLiteral explains a /body/flags regex literal.
func ExplainLiteral(literal string, opts ...Option) (*Explanation, error) {
	pattern, flags, err := ParseLiteral(literal)
	if err != nil {
		return nil, err
	}
	return ExplainPattern(pattern, flags, opts...)
}

// Failed reports whether any diagnostic of exp is at or above the
// failure threshold of cfg.
func Failed(exp *Explanation, cfg DiagnosticConfig) bool {
	if !exp.IsValid {
		return true
	}
	for _, d := range exp.Diagnostics {
		if cfg.ShouldFail(d.Severity) {
			return true
		}
	}
	return false
}

func convert(diags []types.SpanDiagnostic) []explain.Diagnostic {
	if len(diags) == 0 {
		return nil
	}
	out := make([]explain.Diagnostic, len(diags))
	for i, d := range diags {
		out[i] = explain.NewDiagnostic(d)
	}
	return out
}

// Syntax returns an s-expression dump of the pattern produced by an
// independent regex syntax parser. It is meant for debugging explanations
// and does not follow every ECMAScript rule.
func Syntax(pattern string) (string, error) {
	return ecma.Dump(pattern)
}

// RenderRailroad writes p as a text railroad diagram: the main line runs
// left to right, alternatives and optional parts branch below it and
// repetitions loop back underneath.
func RenderRailroad(w io.Writer, p *Pattern) error {
	return railroad.Render(w, railroad.Build(p))
}

// Dump returns the parsed syntax tree of p as an s-expression.
//
//	(seq "a" (q 1,inf (group 1 (alt "b" "c"))))
func Dump(p *Pattern) string {
	return ast.Dump(p.Body)
}
