// Package fixture reads narrative fixture files: JavaScript sources in
// which each regex literal is preceded by a doc comment holding its
// expected explanation, one line per node.
//
//	/**
//	 * `@` **followed by**:
//	 *   `u`
//	 * `@`
//	 */
//	/@(?=u)@/;
//
// Literals listed as line comments after a "// UNSUPPORTED" marker are
// collected separately; they document constructs that are explained on
// a best-effort basis only.
package fixture

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/regexplainer/regexplain/internal/types"
)

// ErrInvalidLiteral is returned for text that is not a /body/flags
// regex literal.
var ErrInvalidLiteral = errors.New("invalid regex literal")

// UnsupportedMarker opens a block of unsupported literals.
const UnsupportedMarker = "UNSUPPORTED"

var jsLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `/\*\*?(?:[^*]|\*+[^*/])*\*+/`},
	{Name: "LineComment", Pattern: `//[^\n]*`},
	{Name: "Regex", Pattern: `/(?:\\.|\[(?:\\.|[^\]\\\n])*\]|[^/\\\[\n])+/[a-z]*`},
	{Name: "Semi", Pattern: `;`},
	{Name: "Whitespace", Pattern: `\s+`},
})

type file struct {
	Items []*item `parser:"@@*"`
}

type item struct {
	Pos lexer.Position

	Doc   string `parser:"  @Comment"`
	Line  string `parser:"| @LineComment"`
	Regex string `parser:"| @Regex"`
	Semi  bool   `parser:"| @Semi"`
}

type literal struct {
	Regex string `parser:"@Regex"`
}

var (
	fileParser    = participle.MustBuild[file](participle.Lexer(jsLexer), participle.Elide("Whitespace"))
	literalParser = participle.MustBuild[literal](participle.Lexer(jsLexer), participle.Elide("Whitespace"))
)

// Case is one documented regex literal.
type Case struct {
	File    string
	Line    int
	Literal string
	Pattern string
	Flags   string

	// Expected holds the documented explanation lines, with their
	// indentation preserved. Empty for unsupported cases.
	Expected []string

	// Unsupported marks literals listed under an UNSUPPORTED marker.
	Unsupported bool
}

// Name identifies the case in test output.
func (c Case) Name() string {
	return fmt.Sprintf("%s:%d %s", filepath.Base(c.File), c.Line, c.Literal)
}

// ParseFlags parses the case flags.
func (c Case) ParseFlags() (types.Flags, error) {
	return types.ParseFlags(c.Flags)
}

// ParseLiteral splits a /body/flags literal into its pattern and flag
// letters. The flag letters are not validated here.
func ParseLiteral(text string) (pattern, flags string, err error) {
	lit, err := literalParser.ParseString("", strings.TrimSpace(text))
	if err != nil {
		return "", "", fmt.Errorf("%w: %q: %v", ErrInvalidLiteral, text, err)
	}
	return splitLiteral(lit.Regex)
}

func splitLiteral(raw string) (pattern, flags string, err error) {
	end := strings.LastIndexByte(raw, '/')
	if len(raw) < 2 || raw[0] != '/' || end <= 0 {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidLiteral, raw)
	}
	return raw[1:end], raw[end+1:], nil
}

// Parse reads fixture cases from src. name labels positions.
//
// A doc comment applies to every regex that follows it until the next
// doc comment; only the first of those receives its expected lines, the
// others are recorded with no expectation.
func Parse(name, src string) ([]Case, error) {
	f, err := fileParser.ParseString(name, src)
	if err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", name, err)
	}

	var cases []Case
	var doc []string
	unsupported := false
	for _, it := range f.Items {
		switch {
		case it.Doc != "":
			doc = docLines(it.Doc)
			unsupported = false
		case it.Line != "":
			text := strings.TrimSpace(strings.TrimPrefix(it.Line, "//"))
			if text == UnsupportedMarker {
				unsupported = true
				continue
			}
			if !unsupported || !strings.HasPrefix(text, "/") {
				continue
			}
			pattern, flags, err := ParseLiteral(strings.TrimSuffix(text, ";"))
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %w", name, it.Pos.Line, err)
			}
			cases = append(cases, Case{
				File:        name,
				Line:        it.Pos.Line,
				Literal:     strings.TrimSuffix(text, ";"),
				Pattern:     pattern,
				Flags:       flags,
				Unsupported: true,
			})
		case it.Regex != "":
			pattern, flags, err := splitLiteral(it.Regex)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %w", name, it.Pos.Line, err)
			}
			cases = append(cases, Case{
				File:     name,
				Line:     it.Pos.Line,
				Literal:  it.Regex,
				Pattern:  pattern,
				Flags:    flags,
				Expected: doc,
			})
			doc = nil
			unsupported = false
		}
	}
	return cases, nil
}

// ParseFile reads fixture cases from a file.
func ParseFile(path string) ([]Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(path, string(data))
}

// Glob reads every *.js fixture under dir, in file name order.
func Glob(dir string) ([]Case, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.js"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	var all []Case
	for _, p := range paths {
		cases, err := ParseFile(p)
		if err != nil {
			return nil, err
		}
		all = append(all, cases...)
	}
	return all, nil
}

// docLines strips the comment delimiters and the leading " * " of each
// line, keeping indentation after it.
func docLines(comment string) []string {
	body := strings.TrimPrefix(comment, "/**")
	body = strings.TrimPrefix(body, "/*")
	body = strings.TrimSuffix(body, "*/")

	var out []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimLeft(line, " \t")
		line = strings.TrimPrefix(line, "*")
		line = strings.TrimPrefix(line, " ")
		line = strings.TrimRight(line, " \t\r")
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}
