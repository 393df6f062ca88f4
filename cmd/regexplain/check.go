package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/regexplainer/regexplain"
	"github.com/regexplainer/regexplain/internal/fixture"
)

const checkUsage = `regexplain check - Verify fixture files against the explainer

Usage:
  regexplain check [options] FILE...

Each FILE is a JavaScript source in which regex literals are preceded by
a /** */ comment holding the expected explanation, one line per node.
Literals listed under a "// UNSUPPORTED" line comment must still explain
and must carry an unsupported-construct warning.

Options:
  --verbose-pass  Also list passing cases
  -h, --help      Show help

Exit status is 2 when any case does not match.
`

type checkStats struct {
	passed, failed, skipped int
}

func (c *cli) cmdCheck(args []string) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	fs.Usage = func() { fmt.Fprint(c.stderr, checkUsage) }
	showPass := fs.Bool("verbose-pass", false, "list passing cases")
	help := fs.Bool("h", false, "show help")
	fs.BoolVar(help, "help", false, "show help")

	if err := fs.Parse(args); err != nil {
		return exitError
	}
	if *help {
		_, _ = fmt.Fprint(c.stdout, checkUsage)
		return exitOK
	}
	if fs.NArg() == 0 {
		c.printError("no fixture files specified")
		_, _ = fmt.Fprint(c.stderr, checkUsage)
		return exitError
	}

	var cases []fixture.Case
	for _, path := range fs.Args() {
		fc, err := fixture.ParseFile(path)
		if err != nil {
			c.printError("%v", err)
			return exitError
		}
		cases = append(cases, fc...)
	}

	inputs := make([]regexplain.Input, len(cases))
	for i, fc := range cases {
		flags, err := fc.ParseFlags()
		if err != nil {
			c.printError("%s: %v", fc.Name(), err)
			return exitError
		}
		inputs[i] = regexplain.Input{Pattern: fc.Pattern, Flags: flags}
	}

	results, err := regexplain.ExplainAll(context.Background(), inputs, c.options(false)...)
	if err != nil {
		c.printError("%v", err)
		return exitError
	}

	var stats checkStats
	for i, fc := range cases {
		msg := checkCase(fc, results[i])
		switch {
		case msg == "" && len(fc.Expected) == 0 && !fc.Unsupported:
			stats.skipped++
		case msg == "":
			stats.passed++
			if *showPass {
				_, _ = fmt.Fprintf(c.stdout, "ok   %s\n", fc.Name())
			}
		default:
			stats.failed++
			_, _ = fmt.Fprintf(c.stdout, "FAIL %s\n%s", fc.Name(), msg)
		}
	}

	_, _ = fmt.Fprintf(c.stdout, "%d passed, %d failed, %d without expectation\n",
		stats.passed, stats.failed, stats.skipped)
	if stats.failed > 0 {
		return exitMismatch
	}
	return exitOK
}

// checkCase returns a description of how r differs from the case's
// expectation, or "" when it matches.
func checkCase(fc fixture.Case, r regexplain.Result) string {
	if r.Err != nil {
		return "  " + r.Err.Error() + "\n"
	}
	if fc.Unsupported {
		if len(r.Exp.Warnings()) == 0 {
			return "  expected an unsupported-construct warning\n"
		}
		return ""
	}
	if len(fc.Expected) == 0 {
		return ""
	}
	return diffLines(fc.Expected, r.Exp.Root.Lines())
}

// diffLines lists expected and actual lines where they differ.
func diffLines(want, got []string) string {
	var b strings.Builder
	for i := range max(len(want), len(got)) {
		var w, g string
		if i < len(want) {
			w = want[i]
		}
		if i < len(got) {
			g = got[i]
		}
		if w == g && i < len(want) && i < len(got) {
			continue
		}
		fmt.Fprintf(&b, "  line %d\n    want: %s\n    got:  %s\n", i+1, w, g)
	}
	return b.String()
}
