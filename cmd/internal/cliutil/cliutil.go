// Package cliutil provides shared CLI utilities for regexplain commands.
package cliutil

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// GlobalFlags holds the flags accepted before or after any subcommand.
type GlobalFlags struct {
	Verbose    int
	ConfigFile string
	OutputFile string
	HelpFlag   bool
}

// ParseArgs parses global flags and extracts the subcommand from args.
// Flags handled: -v/--verbose, -vv, --config, -o/--output, -h/--help.
// Unrecognized flags are passed through to the subcommand. Everything
// after "--" is passed through verbatim, so patterns starting with '-'
// can be given.
func ParseArgs(args []string) (flags GlobalFlags, cmd string, cmdArgs []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			if cmd == "" && i+1 < len(args) {
				i++
				cmd = args[i]
			}
			cmdArgs = append(cmdArgs, "--")
			cmdArgs = append(cmdArgs, args[i+1:]...)
			return
		case arg == "-h" || arg == "--help":
			flags.HelpFlag = true
		case arg == "-v" || arg == "--verbose":
			if flags.Verbose < 1 {
				flags.Verbose = 1
			}
		case arg == "-vv":
			flags.Verbose = 2
		case arg == "--config":
			if i+1 < len(args) {
				i++
				flags.ConfigFile = args[i]
			}
		case strings.HasPrefix(arg, "--config="):
			flags.ConfigFile = arg[len("--config="):]
		case arg == "-o" || arg == "--output":
			if i+1 < len(args) {
				i++
				flags.OutputFile = args[i]
			}
		case strings.HasPrefix(arg, "--output="):
			flags.OutputFile = arg[len("--output="):]
		case len(arg) > 0 && arg[0] == '-':
			cmdArgs = append(cmdArgs, arg)
		default:
			if cmd == "" {
				cmd = arg
			} else {
				cmdArgs = append(cmdArgs, arg)
			}
		}
	}
	return
}

// GetOutput opens the output file or returns stdout.
func GetOutput(outputFile string) (io.Writer, func(), error) {
	if outputFile == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(outputFile)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

// PrintError writes a formatted error message to w, normally stderr.
func PrintError(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, "error: "+format+"\n", args...)
}
