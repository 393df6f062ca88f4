package fixture_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/regexplainer/regexplain/internal/fixture"
	"github.com/regexplainer/regexplain/internal/testutil"
	"github.com/regexplainer/regexplain/internal/types"
)

const sample = `/**
 * ` + "`@`" + ` **followed by**:
 *   ` + "`u`" + `
 * ` + "`@`" + `
 */
/@(?=u)@/;

/** simple */
/hello/;
/hello!?/g;

// UNSUPPORTED
// /x(?<=a|b)y/;
// not a literal

/**
 * **START**
 */
/^[/\]]$/m;
`

func TestParse(t *testing.T) {
	cases, err := fixture.Parse("sample.js", sample)
	testutil.NoError(t, err, "parse")
	testutil.Len(t, cases, 5, "cases")

	c := cases[0]
	testutil.Equal(t, "/@(?=u)@/", c.Literal, "literal")
	testutil.Equal(t, "@(?=u)@", c.Pattern, "pattern")
	testutil.Equal(t, "", c.Flags, "flags")
	testutil.Equal(t, 6, c.Line, "line")
	testutil.SliceEqual(t, []string{"`@` **followed by**:", "  `u`", "`@`"}, c.Expected, "expected")

	testutil.SliceEqual(t, []string{"simple"}, cases[1].Expected, "single line doc")
	testutil.Equal(t, "hello!?", cases[2].Pattern, "second literal under one doc")
	testutil.Equal(t, "g", cases[2].Flags, "flags")
	testutil.Len(t, cases[2].Expected, 0, "doc applies to the first literal only")

	u := cases[3]
	testutil.True(t, u.Unsupported, "unsupported")
	testutil.Equal(t, "x(?<=a|b)y", u.Pattern, "unsupported pattern")
	testutil.Equal(t, 13, u.Line, "unsupported line")

	last := cases[4]
	testutil.False(t, last.Unsupported, "marker ends at doc comment")
	testutil.Equal(t, `^[/\]]$`, last.Pattern, "slash inside class")
	flags, err := last.ParseFlags()
	testutil.NoError(t, err, "flags")
	testutil.Equal(t, types.FlagMultiline, flags, "multiline")
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := fixture.Parse("bad.js", "var x = 1;")
	testutil.Error(t, err, "not a fixture")
}

func TestParseLiteral(t *testing.T) {
	tests := []struct {
		in      string
		pattern string
		flags   string
	}{
		{"/a/", "a", ""},
		{"/a+b/gi", "a+b", "gi"},
		{`/\//`, `\/`, ""},
		{"/[/]/y", "[/]", "y"},
		{"  /x/m  ", "x", "m"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			pattern, flags, err := fixture.ParseLiteral(tt.in)
			testutil.NoError(t, err, "parse %q", tt.in)
			testutil.Equal(t, tt.pattern, pattern, "pattern")
			testutil.Equal(t, tt.flags, flags, "flags")
		})
	}
}

func TestParseLiteralInvalid(t *testing.T) {
	for _, in := range []string{"", "a", "/a", "//", "/a/ /b/", "/a/G"} {
		_, _, err := fixture.ParseLiteral(in)
		testutil.True(t, errors.Is(err, fixture.ErrInvalidLiteral), "%q: got %v", in, err)
	}
}

func TestGlob(t *testing.T) {
	dir := t.TempDir()
	write := func(name, src string) {
		t.Helper()
		testutil.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644), "write %s", name)
	}
	write("02 b.js", "/** `b` */\n/b/;\n")
	write("01 a.js", "/** `a` */\n/a/;\n")
	write("notes.txt", "ignored")

	cases, err := fixture.Glob(dir)
	testutil.NoError(t, err, "glob")
	testutil.Len(t, cases, 2, "cases")
	testutil.Equal(t, "a", cases[0].Pattern, "file order")
	testutil.Contains(t, cases[1].Name(), "02 b.js:2 /b/", "name")
}
