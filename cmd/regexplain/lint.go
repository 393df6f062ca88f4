package main

import (
	"cmp"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"slices"
	"strconv"

	"github.com/regexplainer/regexplain"
)

const lintUsage = `regexplain lint - Report diagnostics for regex literals

Usage:
  regexplain lint [options] /PATTERN/FLAGS...

Options:
  --level L       Report diagnostics at severity L or more severe
                  (name or 0-6, default: from config, normally warning)
  --fail-on L     Exit non-zero if any diagnostic at severity L or more
                  severe (default: error)
  --ignore CODE   Ignore diagnostic codes (repeatable, supports globs like "lookbehind-*")
  --ecma          Cross-check with an ECMAScript engine
  --format FMT    Output format: text, json (default: text)
  --quiet         No output, exit code only
  -h, --help      Show help

Severity Levels:
  0 = fatal       Cannot be explained
  1 = severe      Explanation changes meaning
  2 = error       An ECMAScript engine rejects this
  3 = minor       Minor issue
  4 = style       Style recommendation
  5 = warning     Explained on a best-effort basis
  6 = info        Informational

Examples:
  regexplain lint '/x(?<=a|b)y/'
  regexplain lint --level info '/a{x}/'
  regexplain lint --ignore "lookbehind-*" --format json '/x(?<![^a])y/'
`

type lintConfig struct {
	level  regexplain.Severity
	failOn regexplain.Severity
	ignore []string
	ecma   bool
	format string
	quiet  bool
}

type lintResult struct {
	Diagnostics []lintDiagnostic `json:"diagnostics,omitempty"`
	Summary     lintSummary      `json:"summary"`
	ExitCode    int              `json:"-"`
}

type lintDiagnostic struct {
	Literal     string `json:"literal"`
	Severity    string `json:"severity"`
	SeverityNum int    `json:"severity_num"`
	Code        string `json:"code"`
	Category    string `json:"category"`
	Message     string `json:"message"`
	Start       int    `json:"start"`
	End         int    `json:"end"`
}

type lintSummary struct {
	Total      int            `json:"total"`
	BySeverity map[string]int `json:"by_severity"`
	ByCode     map[string]int `json:"by_code,omitempty"`
	Patterns   int            `json:"patterns"`
}

// severityFlag accepts a severity name or its number.
type severityFlag struct{ sev *regexplain.Severity }

func (f severityFlag) String() string {
	if f.sev == nil {
		return ""
	}
	return f.sev.String()
}

func (f severityFlag) Set(s string) error {
	if n, err := strconv.Atoi(s); err == nil {
		if n < int(regexplain.SeverityFatal) || n > int(regexplain.SeverityInfo) {
			return fmt.Errorf("severity %d out of range", n)
		}
		*f.sev = regexplain.Severity(n)
		return nil
	}
	sev, ok := regexplain.ParseSeverity(s)
	if !ok {
		return fmt.Errorf("unknown severity %q", s)
	}
	*f.sev = sev
	return nil
}

func (c *cli) cmdLint(args []string) int {
	fs := flag.NewFlagSet("lint", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	fs.Usage = func() { fmt.Fprint(c.stderr, lintUsage) }

	cfg := lintConfig{
		level:  reportThreshold(c.cfg.Strictness),
		failOn: regexplain.SeverityError,
		ignore: slices.Clone(c.cfg.Ignore),
		format: "text",
	}

	fs.Var(severityFlag{&cfg.level}, "level", "report threshold")
	fs.Var(severityFlag{&cfg.failOn}, "fail-on", "failure threshold")
	fs.Func("ignore", "ignore codes", func(s string) error {
		cfg.ignore = append(cfg.ignore, s)
		return nil
	})
	fs.BoolVar(&cfg.ecma, "ecma", c.cfg.ECMA, "ECMAScript cross-check")
	fs.StringVar(&cfg.format, "format", cfg.format, "output format")
	fs.BoolVar(&cfg.quiet, "quiet", false, "no output")
	help := fs.Bool("h", false, "show help")
	fs.BoolVar(help, "help", false, "show help")

	if err := fs.Parse(args); err != nil {
		return exitError
	}
	if *help {
		_, _ = fmt.Fprint(c.stdout, lintUsage)
		return exitOK
	}

	literals := fs.Args()
	if len(literals) == 0 {
		c.printError("no patterns specified")
		_, _ = fmt.Fprint(c.stderr, lintUsage)
		return exitError
	}
	switch cfg.format {
	case "text", "json":
		// ok
	default:
		c.printError("unknown format: %s", cfg.format)
		return exitError
	}

	result := c.runLint(literals, cfg)

	if !cfg.quiet {
		if cfg.format == "json" {
			enc := json.NewEncoder(c.stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(result); err != nil {
				c.printError("output encoding failed: %v", err)
				return exitError
			}
		} else {
			c.printLintText(result)
		}
	}
	return result.ExitCode
}

// reportThreshold maps a strictness level onto the least severe
// severity it reports. Silent reports nothing.
func reportThreshold(level regexplain.StrictnessLevel) regexplain.Severity {
	switch {
	case level == regexplain.StrictnessStrict:
		return regexplain.SeverityInfo
	case level >= regexplain.StrictnessSilent:
		return regexplain.SeverityFatal - 1
	default:
		return regexplain.Severity(level)
	}
}

func (c *cli) runLint(literals []string, cfg lintConfig) *lintResult {
	// Everything is collected; the report threshold is applied below.
	diagCfg := regexplain.DiagnosticConfig{
		Level:     regexplain.StrictnessStrict,
		FailAt:    regexplain.SeverityFatal,
		Ignore:    cfg.ignore,
		Overrides: c.cfg.Overrides,
	}

	result := &lintResult{
		Summary: lintSummary{
			BySeverity: make(map[string]int),
			ByCode:     make(map[string]int),
			Patterns:   len(literals),
		},
	}
	add := func(d lintDiagnostic) {
		result.Diagnostics = append(result.Diagnostics, d)
		result.Summary.Total++
		result.Summary.BySeverity[d.Severity]++
		result.Summary.ByCode[d.Code]++
	}

	opts := c.options(cfg.ecma)
	opts = append(opts, regexplain.WithDiagnosticConfig(diagCfg))

	for _, lit := range literals {
		exp, err := regexplain.ExplainLiteral(lit, opts...)
		if err != nil {
			add(lintDiagnostic{
				Literal:     lit,
				Severity:    regexplain.SeverityFatal.String(),
				SeverityNum: int(regexplain.SeverityFatal),
				Code:        "parse-error",
				Category:    "syntax",
				Message:     err.Error(),
			})
			if errors.Is(err, regexplain.ErrMalformedPattern) {
				result.ExitCode = exitMismatch
			} else if result.ExitCode == exitOK {
				result.ExitCode = exitError
			}
			continue
		}
		for _, d := range exp.Diagnostics {
			if d.Severity > cfg.level {
				continue
			}
			add(lintDiagnostic{
				Literal:     lit,
				Severity:    d.Severity.String(),
				SeverityNum: int(d.Severity),
				Code:        d.Code,
				Category:    d.Category,
				Message:     d.Message,
				Start:       int(d.Span.Start),
				End:         int(d.Span.End),
			})
			if d.Severity <= cfg.failOn && result.ExitCode == exitOK {
				result.ExitCode = exitError
			}
		}
	}

	slices.SortStableFunc(result.Diagnostics, func(a, b lintDiagnostic) int {
		return cmp.Compare(a.SeverityNum, b.SeverityNum)
	})
	return result
}

func (c *cli) printLintText(result *lintResult) {
	for _, d := range result.Diagnostics {
		_, _ = fmt.Fprintf(c.stdout, "%s:%d-%d: [%s] %s (%s)\n",
			d.Literal, d.Start, d.End, d.Severity, d.Message, d.Code)
	}
	if result.Summary.Total == 0 {
		_, _ = fmt.Fprintf(c.stdout, "No issues found in %d patterns\n", result.Summary.Patterns)
		return
	}

	_, _ = fmt.Fprintf(c.stdout, "\nSummary: %d issues in %d patterns\n",
		result.Summary.Total, result.Summary.Patterns)
	for sev := regexplain.SeverityFatal; sev <= regexplain.SeverityInfo; sev++ {
		if n := result.Summary.BySeverity[sev.String()]; n > 0 {
			_, _ = fmt.Fprintf(c.stdout, "  %-8s %d\n", sev.String()+":", n)
		}
	}
}
