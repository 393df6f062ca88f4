package main

import (
	"flag"
	"fmt"

	"github.com/regexplainer/regexplain"
)

const syntaxUsage = `regexplain syntax - Dump the pattern syntax as an s-expression

Usage:
  regexplain syntax [options] PATTERN|/PATTERN/FLAGS

Options:
  -ast        Print the explainer's own syntax tree instead
  -h, --help  Show help
`

func (c *cli) cmdSyntax(args []string) int {
	fs := flag.NewFlagSet("syntax", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	fs.Usage = func() { fmt.Fprint(c.stderr, syntaxUsage) }
	own := fs.Bool("ast", false, "print the explainer's syntax tree")
	help := fs.Bool("h", false, "show help")
	fs.BoolVar(help, "help", false, "show help")

	if err := fs.Parse(args); err != nil {
		return exitError
	}
	if *help {
		_, _ = fmt.Fprint(c.stdout, syntaxUsage)
		return exitOK
	}

	pattern, flags, err := patternArgs(fs.Args())
	if err != nil {
		c.printError("%v", err)
		return exitError
	}

	if *own {
		p, err := regexplain.Parse(pattern, flags, c.options(false)...)
		if err != nil {
			c.printError("%v", err)
			return exitMismatch
		}
		_, _ = fmt.Fprintln(c.stdout, regexplain.Dump(p))
		return exitOK
	}

	dump, err := regexplain.Syntax(pattern)
	if err != nil {
		c.printError("%v", err)
		return exitMismatch
	}
	_, _ = fmt.Fprintln(c.stdout, dump)
	return exitOK
}
