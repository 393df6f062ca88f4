package cliutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/regexplainer/regexplain/internal/testutil"
)

func TestParseArgs(t *testing.T) {
	flags, cmd, rest := ParseArgs([]string{"-v", "explain", "-format", "json", "--config=cfg.yaml", "a+", "-o", "out.txt", "g"})
	testutil.Equal(t, 1, flags.Verbose, "verbose")
	testutil.Equal(t, "cfg.yaml", flags.ConfigFile, "config")
	testutil.Equal(t, "out.txt", flags.OutputFile, "output")
	testutil.Equal(t, "explain", cmd, "command")
	testutil.SliceEqual(t, []string{"-format", "json", "a+", "g"}, rest, "command args")
}

func TestParseArgsTrace(t *testing.T) {
	flags, cmd, _ := ParseArgs([]string{"-vv", "-v", "--help"})
	testutil.Equal(t, 2, flags.Verbose, "-v does not lower -vv")
	testutil.True(t, flags.HelpFlag, "help")
	testutil.Equal(t, "", cmd, "no command")
}

func TestParseArgsDoubleDash(t *testing.T) {
	_, cmd, rest := ParseArgs([]string{"explain", "--", "-a|-b", "-v"})
	testutil.Equal(t, "explain", cmd, "command")
	testutil.SliceEqual(t, []string{"--", "-a|-b", "-v"}, rest, "passed through")
}

func TestGetOutput(t *testing.T) {
	w, done, err := GetOutput("")
	testutil.NoError(t, err, "stdout")
	testutil.True(t, w == os.Stdout, "stdout writer")
	done()

	path := filepath.Join(t.TempDir(), "out.txt")
	w, done, err = GetOutput(path)
	testutil.NoError(t, err, "file")
	_, err = w.Write([]byte("ok\n"))
	testutil.NoError(t, err, "write")
	done()
	data, err := os.ReadFile(path)
	testutil.NoError(t, err, "read back")
	testutil.Equal(t, "ok\n", string(data), "content")
}

func TestPrintError(t *testing.T) {
	var buf strings.Builder
	PrintError(&buf, "bad %s", "thing")
	testutil.Equal(t, "error: bad thing\n", buf.String(), "message")
}
