// Command regexplain explains ECMAScript regular expressions from the
// command line and checks fixture files against the explainer.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/regexplainer/regexplain"
	"github.com/regexplainer/regexplain/cmd/internal/cliutil"
)

// Exit codes.
const (
	exitOK       = 0 // success
	exitError    = 1 // user error or failing diagnostics
	exitMismatch = 2 // malformed pattern or fixture mismatch
)

const usage = `regexplain - ECMAScript regular expression explainer

Usage:
  regexplain <command> [options] [arguments]

Commands:
  explain  Explain a regex literal or pattern
  lint     Report diagnostics for regex literals
  check    Verify fixture files against the explainer
  syntax   Dump the pattern syntax as an s-expression
  flags    Describe flag letters
  version  Show version

Common options:
  --config FILE     Read settings from a YAML file
  -o, --output FILE Write output to FILE instead of stdout
  -v, --verbose     Enable debug logging
  -vv               Enable trace logging (implies -v)
  -h, --help        Show help

Examples:
  regexplain explain '/(?<year>\d{4})-\d{2}/g'
  regexplain explain -format json 'a+b' gi
  regexplain lint '/x(?<=a|b)y/'
  regexplain check testdata/narrative/*.js
  regexplain syntax '(a|b)+'
  regexplain flags gimsuy
`

type cli struct {
	verbose int
	cfg     fileConfig
	stdout  io.Writer
	stderr  io.Writer
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags, cmd, cmdArgs := cliutil.ParseArgs(args)

	if flags.HelpFlag && cmd == "" {
		_, _ = fmt.Fprint(stdout, usage)
		return exitOK
	}
	if cmd == "" {
		_, _ = fmt.Fprint(stderr, usage)
		return exitError
	}

	c := &cli{verbose: flags.Verbose, cfg: defaultFileConfig(), stderr: stderr}
	if flags.ConfigFile != "" {
		cfg, err := loadFileConfig(flags.ConfigFile)
		if err != nil {
			c.printError("%v", err)
			return exitError
		}
		c.cfg = cfg
	}

	out, done, err := outputFor(flags.OutputFile, stdout)
	if err != nil {
		c.printError("cannot open output: %v", err)
		return exitError
	}
	defer done()
	c.stdout = out

	if flags.HelpFlag {
		cmdArgs = append(cmdArgs, "-h")
	}

	switch cmd {
	case "explain":
		return c.cmdExplain(cmdArgs)
	case "lint":
		return c.cmdLint(cmdArgs)
	case "check":
		return c.cmdCheck(cmdArgs)
	case "syntax":
		return c.cmdSyntax(cmdArgs)
	case "flags":
		return c.cmdFlags(cmdArgs)
	case "version":
		c.printVersion()
		return exitOK
	case "help":
		_, _ = fmt.Fprint(stdout, usage)
		return exitOK
	default:
		_, _ = fmt.Fprintf(stderr, "unknown command: %s\n\n", cmd)
		_, _ = fmt.Fprint(stderr, usage)
		return exitError
	}
}

// outputFor returns stdout unless an output file was requested.
func outputFor(path string, stdout io.Writer) (io.Writer, func(), error) {
	if path == "" {
		return stdout, func() {}, nil
	}
	return cliutil.GetOutput(path)
}

func (c *cli) setupLogger() *slog.Logger {
	if c.verbose == 0 {
		return nil
	}
	level := slog.LevelDebug
	if c.verbose >= 2 {
		level = regexplain.LevelTrace
	}
	return slog.New(slog.NewTextHandler(c.stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// options builds the library options from the config file and logging
// flags. ecma forces the cross-check on when set.
func (c *cli) options(ecma bool) []regexplain.Option {
	opts := []regexplain.Option{
		regexplain.WithDiagnosticConfig(c.cfg.diagnosticConfig()),
		regexplain.WithECMAValidation(ecma || c.cfg.ECMA),
	}
	if c.cfg.MaxDepth > 0 {
		opts = append(opts, regexplain.WithMaxDepth(c.cfg.MaxDepth))
	}
	if logger := c.setupLogger(); logger != nil {
		opts = append(opts, regexplain.WithLogger(logger))
	}
	return opts
}

func (c *cli) printVersion() {
	version := "(devel)"
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		version = info.Main.Version
	}
	_, _ = fmt.Fprintf(c.stdout, "regexplain %s\n", version)
}

func (c *cli) printError(format string, args ...any) {
	cliutil.PrintError(c.stderr, format, args...)
}
