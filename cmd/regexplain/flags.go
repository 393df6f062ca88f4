package main

import (
	"flag"
	"fmt"

	"github.com/regexplainer/regexplain"
)

const flagsUsage = `regexplain flags - Describe flag letters

Usage:
  regexplain flags LETTERS

Example:
  regexplain flags gimsuy
`

var flagDescriptions = []struct {
	flag regexplain.Flags
	desc string
}{
	{regexplain.FlagHasIndices, "match results carry start and end indices"},
	{regexplain.FlagGlobal, "find all matches rather than stopping at the first"},
	{regexplain.FlagIgnoreCase, "letters match regardless of case"},
	{regexplain.FlagMultiline, "^ and $ match at line boundaries"},
	{regexplain.FlagDotAll, ". also matches line terminators"},
	{regexplain.FlagUnicode, "pattern is read as code points; strict escapes"},
	{regexplain.FlagUnicodeSets, "unicode mode with class set operations"},
	{regexplain.FlagSticky, "match only at lastIndex"},
}

func (c *cli) cmdFlags(args []string) int {
	fs := flag.NewFlagSet("flags", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	fs.Usage = func() { fmt.Fprint(c.stderr, flagsUsage) }
	help := fs.Bool("h", false, "show help")
	fs.BoolVar(help, "help", false, "show help")

	if err := fs.Parse(args); err != nil {
		return exitError
	}
	if *help {
		_, _ = fmt.Fprint(c.stdout, flagsUsage)
		return exitOK
	}
	if fs.NArg() != 1 {
		c.printError("expected one argument with flag letters")
		return exitError
	}

	flags, err := regexplain.ParseFlags(fs.Arg(0))
	if err != nil {
		c.printError("%v", err)
		return exitError
	}
	for _, d := range flagDescriptions {
		if flags&d.flag == 0 {
			continue
		}
		name := (flags & d.flag).Names()[0]
		_, _ = fmt.Fprintf(c.stdout, "%s  %-12s %s\n", d.flag, name, d.desc)
	}
	return exitOK
}
