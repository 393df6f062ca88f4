package main

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/regexplainer/regexplain"
)

const explainUsage = `regexplain explain - Explain a regular expression

Usage:
  regexplain explain [options] /PATTERN/FLAGS
  regexplain explain [options] PATTERN [FLAGS]

A single argument starting with '/' is read as a regex literal. Otherwise
the first argument is the pattern body and the optional second argument
holds the flag letters. Use -- before patterns that start with '-'.

Options:
  -format FMT   Output format: text, markdown, json, yaml, railroad
                (default: text)
  -caveats      Show lookbehind caveats under their nodes
  -header       Start with the literal and its active flags
  -ecma         Cross-check the pattern with an ECMAScript engine
  -h, --help    Show help

Examples:
  regexplain explain '/^(?<user>\w+)@example\.com$/i'
  regexplain explain -format markdown -caveats '(?<=\$)\d+'
  regexplain explain -format json 'a|b' g
  regexplain explain -format railroad '/(Mr|Ms)\.? \w+/'
`

func (c *cli) cmdExplain(args []string) int {
	fs := flag.NewFlagSet("explain", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	fs.Usage = func() { fmt.Fprint(c.stderr, explainUsage) }

	format := fs.String("format", c.cfg.Format, "output format")
	caveats := fs.Bool("caveats", c.cfg.Caveats, "show caveats")
	header := fs.Bool("header", c.cfg.Header, "show header")
	ecma := fs.Bool("ecma", false, "ECMAScript cross-check")
	help := fs.Bool("h", false, "show help")
	fs.BoolVar(help, "help", false, "show help")

	if err := fs.Parse(args); err != nil {
		return exitError
	}
	if *help {
		_, _ = fmt.Fprint(c.stdout, explainUsage)
		return exitOK
	}
	if !validFormat(*format) {
		c.printError("unknown format: %s", *format)
		return exitError
	}

	pattern, flags, err := patternArgs(fs.Args())
	if err != nil {
		c.printError("%v", err)
		_, _ = fmt.Fprint(c.stderr, explainUsage)
		return exitError
	}

	exp, err := regexplain.ExplainPattern(pattern, flags, c.options(*ecma)...)
	code := exitOK
	if err != nil {
		var mpe *regexplain.MalformedPatternError
		if !errors.As(err, &mpe) {
			c.printError("%v", err)
			return exitError
		}
		code = exitMismatch
	}

	opts := regexplain.RenderOptions{Caveats: *caveats, Header: *header}
	if err := c.writeExplanation(exp, *format, opts); err != nil {
		c.printError("output encoding failed: %v", err)
		return exitError
	}
	if code == exitOK && regexplain.Failed(exp, c.cfg.diagnosticConfig()) {
		code = exitError
	}
	return code
}

// patternArgs reads either a single literal or a pattern and optional
// flag letters.
func patternArgs(args []string) (string, regexplain.Flags, error) {
	switch len(args) {
	case 1:
		if strings.HasPrefix(args[0], "/") {
			return regexplain.ParseLiteral(args[0])
		}
		return args[0], 0, nil
	case 2:
		flags, err := regexplain.ParseFlags(args[1])
		if err != nil {
			return "", 0, err
		}
		return args[0], flags, nil
	case 0:
		return "", 0, errors.New("no pattern specified")
	default:
		return "", 0, fmt.Errorf("expected a pattern and optional flags, got %d arguments", len(args))
	}
}

func (c *cli) writeExplanation(exp *regexplain.Explanation, format string, opts regexplain.RenderOptions) error {
	switch format {
	case "json":
		data, err := exp.JSON()
		if err != nil {
			return err
		}
		_, err = c.stdout.Write(data)
		return err
	case "yaml":
		data, err := exp.YAML()
		if err != nil {
			return err
		}
		_, err = c.stdout.Write(data)
		return err
	case "markdown":
		if err := exp.RenderMarkdown(c.stdout, opts); err != nil {
			return err
		}
	case "railroad":
		if !exp.IsValid {
			return exp.RenderText(c.stdout, opts)
		}
		tree, err := regexplain.Parse(exp.Pattern, exp.Flags)
		if err != nil {
			return err
		}
		if opts.Header {
			_, _ = fmt.Fprintln(c.stdout, exp.Literal())
		}
		if err := regexplain.RenderRailroad(c.stdout, tree); err != nil {
			return err
		}
	default:
		if err := exp.RenderText(c.stdout, opts); err != nil {
			return err
		}
	}
	for _, d := range exp.Diagnostics {
		_, _ = fmt.Fprintf(c.stderr, "%s\n", d)
	}
	return nil
}
