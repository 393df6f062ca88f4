package lexer

import (
	"testing"
	"unicode/utf8"

	"github.com/regexplainer/regexplain/internal/charclass"
	"github.com/regexplainer/regexplain/internal/testutil"
	"github.com/regexplainer/regexplain/internal/types"
)

func tokenize(source string, flags types.Flags) ([]Token, []types.SpanDiagnostic) {
	return New(source, flags, nil).Tokenize()
}

func tokenKinds(source string) []TokenKind {
	tokens, _ := tokenize(source, 0)
	kinds := make([]TokenKind, len(tokens))
	for i, t := range tokens {
		kinds[i] = t.Kind
	}
	return kinds
}

func tokenTexts(source string) []string {
	tokens, _ := tokenize(source, 0)
	var texts []string
	for _, t := range tokens {
		if t.Kind != TokEOF {
			texts = append(texts, t.Text(source))
		}
	}
	return texts
}

func diagCodes(diags []types.SpanDiagnostic) []string {
	codes := make([]string, len(diags))
	for i, d := range diags {
		codes[i] = d.Code
	}
	return codes
}

func TestEmptyInput(t *testing.T) {
	kinds := tokenKinds("")
	testutil.SliceEqual(t, []TokenKind{TokEOF}, kinds, "empty input")
}

func TestAtoms(t *testing.T) {
	kinds := tokenKinds(`a.^$|\b\B`)
	expected := []TokenKind{
		TokChar, TokDot, TokAnchorStart, TokAnchorEnd, TokPipe,
		TokWordBoundary, TokNotWordBoundary, TokEOF,
	}
	testutil.SliceEqual(t, expected, kinds, "token kinds")
}

func TestGroupOpeners(t *testing.T) {
	kinds := tokenKinds(`()(?:)(?<n>)(?=)(?!)(?<=)(?<!)`)
	expected := []TokenKind{
		TokGroupOpen, TokGroupClose,
		TokNonCaptureOpen, TokGroupClose,
		TokNamedGroupOpen, TokGroupClose,
		TokLookaheadOpen, TokGroupClose,
		TokNegLookaheadOpen, TokGroupClose,
		TokLookbehindOpen, TokGroupClose,
		TokNegLookbehindOpen, TokGroupClose,
		TokEOF,
	}
	testutil.SliceEqual(t, expected, kinds, "token kinds")
}

func TestNamedGroupName(t *testing.T) {
	tokens, diags := tokenize(`(?<extension>x)`, 0)
	testutil.Len(t, diags, 0, "diagnostics")
	testutil.Equal(t, TokNamedGroupOpen, tokens[0].Kind, "kind")
	testutil.Equal(t, "extension", tokens[0].Name, "name")
	testutil.Equal(t, "(?<extension>", tokens[0].Text(`(?<extension>x)`), "text")
}

func TestQuantifiers(t *testing.T) {
	tests := []struct {
		source   string
		min, max int
		lazy     bool
	}{
		{"a?", 0, 1, false},
		{"a*", 0, -1, false},
		{"a+", 1, -1, false},
		{"a+?", 1, -1, true},
		{"a{3}", 3, 3, false},
		{"a{2,}", 2, -1, false},
		{"a{2,5}", 2, 5, false},
		{"a{2,5}?", 2, 5, true},
		{"a{5,2}", 5, 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			tokens, _ := tokenize(tt.source, 0)
			testutil.Len(t, tokens, 3, "a, quantifier, EOF")
			q := tokens[1]
			testutil.Equal(t, TokQuantifier, q.Kind, "kind")
			testutil.Equal(t, tt.min, q.Min, "min")
			testutil.Equal(t, tt.max, q.Max, "max")
			testutil.Equal(t, tt.lazy, q.Lazy, "lazy")
		})
	}
}

func TestMalformedBraceIsFallback(t *testing.T) {
	tests := []struct {
		source string
		texts  []string
	}{
		{`.{graphql,js,ts,css}`, []string{".", "{graphql,js,ts,css}"}},
		{`a{,5}`, []string{"a", "{,5}"}},
		{`a{x`, []string{"a", "{", "x"}},
		{`{(a)}`, []string{"{", "(", "a", ")", "}"}},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			testutil.SliceEqual(t, tt.texts, tokenTexts(tt.source), "texts")
			_, diags := tokenize(tt.source, 0)
			testutil.NotEmpty(t, diags, "brace diagnostic")
			testutil.Equal(t, types.DiagBraceLiteral, diags[0].Code, "code")
			testutil.Equal(t, types.SeverityInfo, diags[0].Severity, "severity")
		})
	}
}

func TestBraceLiteralIsErrorInUnicodeMode(t *testing.T) {
	_, diags := tokenize(`a{x}`, types.FlagUnicode)
	testutil.Len(t, diags, 1, "diagnostics")
	testutil.Equal(t, types.SeverityError, diags[0].Severity, "severity")
}

func TestShorthands(t *testing.T) {
	tokens, diags := tokenize(`\w\W\d\D\s\S\t\n\r`, 0)
	testutil.Len(t, diags, 0, "diagnostics")
	want := []charclass.Kind{
		charclass.KindWord, charclass.KindNotWord,
		charclass.KindDigit, charclass.KindNotDigit,
		charclass.KindWhitespace, charclass.KindNotWhitespace,
		charclass.KindTab, charclass.KindLF, charclass.KindCR,
	}
	for i, k := range want {
		testutil.Equal(t, TokShorthand, tokens[i].Kind, "token %d kind", i)
		testutil.Equal(t, k, tokens[i].Class, "token %d class", i)
	}
	testutil.Equal(t, '\t', tokens[6].Rune, "TAB carries its rune")
}

func TestEscapedCharacters(t *testing.T) {
	tests := []struct {
		source string
		want   rune
	}{
		{`\/`, '/'},
		{`\.`, '.'},
		{`\f`, '\f'},
		{`\v`, '\v'},
		{`\0`, 0},
		{`\x41`, 'A'},
		{`é`, 'é'},
		{`😀`, '😀'},
		{`\cJ`, '\n'},
		{`\$`, '$'},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			tokens, diags := tokenize(tt.source, 0)
			testutil.Len(t, tokens, 2, "char, EOF")
			testutil.Len(t, diags, 0, "diagnostics")
			testutil.Equal(t, TokChar, tokens[0].Kind, "kind")
			testutil.Equal(t, tt.want, tokens[0].Rune, "rune")
		})
	}
}

func TestUnicodeBraceEscape(t *testing.T) {
	tokens, _ := tokenize(`\u{1F600}`, types.FlagUnicode)
	testutil.Equal(t, TokChar, tokens[0].Kind, "kind")
	testutil.Equal(t, '😀', tokens[0].Rune, "rune")

	// Without u the braces are a quantifier on a literal 'u'.
	tokens, _ = tokenize(`\u{2}`, 0)
	testutil.Equal(t, 'u', tokens[0].Rune, "identity u")
	testutil.Equal(t, TokQuantifier, tokens[1].Kind, "counted quantifier")
}

func TestUnicodeBraceEscapeRejectsNonASCII(t *testing.T) {
	// U+0141 truncated to a byte is 'A', which must not count as a digit.
	tokens, diags := tokenize(`\u{Ł}`, types.FlagUnicode)
	testutil.Equal(t, TokChar, tokens[0].Kind, "kind")
	testutil.Equal(t, 'u', tokens[0].Rune, "escape falls back to 'u'")
	testutil.NotEmpty(t, diags, "diagnostics")
	testutil.Equal(t, types.DiagBadEscape, diags[0].Code, "code")
}

func TestInvalidUTF8(t *testing.T) {
	tokens, diags := tokenize("a\xffb", 0)
	testutil.Equal(t, utf8.RuneError, tokens[1].Rune, "shown as U+FFFD")
	testutil.SliceEqual(t, []string{types.DiagInvalidUTF8}, diagCodes(diags), "codes")
	testutil.Equal(t, types.SeverityInfo, diags[0].Severity, "severity")
	testutil.Equal(t, types.SpanOf(1, 2), diags[0].Span, "span of the byte")
	testutil.Contains(t, diags[0].Message, "0xFF", "byte in message")

	_, diags = tokenize("[\xfe]", 0)
	testutil.SliceEqual(t, []string{types.DiagInvalidUTF8}, diagCodes(diags), "inside a class")

	for _, source := range []string{`\uFFFD`, "\uFFFD", `\u{FFFD}`} {
		tokens, diags := tokenize(source, types.FlagUnicode)
		testutil.Equal(t, utf8.RuneError, tokens[0].Rune, "%q rune", source)
		testutil.Len(t, diags, 0, "%q is a real U+FFFD", source)
	}
}

func TestIdentityEscape(t *testing.T) {
	tokens, diags := tokenize(`\q`, 0)
	testutil.Equal(t, 'q', tokens[0].Rune, "rune")
	testutil.SliceEqual(t, []string{types.DiagIdentityEscape}, diagCodes(diags), "codes")
	testutil.Equal(t, types.SeverityStyle, diags[0].Severity, "severity")

	_, diags = tokenize(`\q`, types.FlagUnicode)
	testutil.Equal(t, types.SeverityError, diags[0].Severity, "severity under u")
}

func TestBackreferences(t *testing.T) {
	tokens, _ := tokenize(`\1\12\k<name>`, 0)
	testutil.Equal(t, TokBackref, tokens[0].Kind, "kind")
	testutil.Equal(t, 1, tokens[0].Index, "index")
	testutil.Equal(t, TokBackref, tokens[1].Kind, "kind")
	testutil.Equal(t, 12, tokens[1].Index, "multi-digit index")
	testutil.Equal(t, TokNamedBackref, tokens[2].Kind, "kind")
	testutil.Equal(t, "name", tokens[2].Name, "name")
}

func TestPropertyEscape(t *testing.T) {
	tokens, diags := tokenize(`\p{L}\P{Script=Greek}`, types.FlagUnicode)
	testutil.Len(t, diags, 0, "diagnostics")
	testutil.Equal(t, charclass.KindProperty, tokens[0].Class, "class")
	testutil.Equal(t, "L", tokens[0].Name, "name")
	testutil.Equal(t, charclass.KindNotProperty, tokens[1].Class, "class")
	testutil.Equal(t, "Script=Greek", tokens[1].Name, "name")

	tokens, _ = tokenize(`\p{L}`, 0)
	testutil.Equal(t, TokChar, tokens[0].Kind, "identity p without u")
}

func TestCharacterClass(t *testing.T) {
	kinds := tokenKinds(`[^a-z\d\b.]x`)
	expected := []TokenKind{
		TokNegClassOpen, TokClassChar, TokClassDash, TokClassChar,
		TokClassShorthand, TokClassChar, TokClassChar, TokClassClose,
		TokChar, TokEOF,
	}
	testutil.SliceEqual(t, expected, kinds, "token kinds")

	tokens, _ := tokenize(`[\b]`, 0)
	testutil.Equal(t, '\b', tokens[1].Rune, "backspace inside class")
}

func TestClassMetacharactersAreLiteral(t *testing.T) {
	kinds := tokenKinds(`[(|)*{]`)
	expected := []TokenKind{
		TokClassOpen, TokClassChar, TokClassChar, TokClassChar,
		TokClassChar, TokClassChar, TokClassClose, TokEOF,
	}
	testutil.SliceEqual(t, expected, kinds, "token kinds")
}

func TestEmptyClass(t *testing.T) {
	testutil.SliceEqual(t, []TokenKind{TokClassOpen, TokClassClose, TokEOF}, tokenKinds(`[]`), "[]")
	testutil.SliceEqual(t, []TokenKind{TokNegClassOpen, TokClassClose, TokEOF}, tokenKinds(`[^]`), "[^]")
}

func TestUnterminatedClassEndsWithEOF(t *testing.T) {
	kinds := tokenKinds(`[ab`)
	testutil.SliceEqual(t, []TokenKind{TokClassOpen, TokClassChar, TokClassChar, TokEOF}, kinds, "kinds")
}

func TestLexicalErrors(t *testing.T) {
	tests := []struct {
		source string
		code   string
	}{
		{`ab\`, types.DiagTrailingBackslash},
		{`(?x)`, types.DiagBadGroupPrefix},
		{`(?`, types.DiagBadGroupPrefix},
		{`(?<name`, types.DiagBadGroupName},
		{`(?<1a>x)`, types.DiagBadGroupName},
		{`\k<name`, types.DiagBadGroupName},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			tokens, diags := tokenize(tt.source, 0)
			found := false
			for _, tok := range tokens {
				if tok.Kind == TokError {
					found = true
				}
			}
			testutil.True(t, found, "expected TokError")
			testutil.NotEmpty(t, diags, "diagnostics")
			testutil.Equal(t, tt.code, diags[0].Code, "code")
			testutil.Equal(t, types.SeverityFatal, diags[0].Severity, "severity")
		})
	}
}

func TestSpansCoverSource(t *testing.T) {
	source := `^@scope\/(.*)\.js";?$`
	tokens, _ := tokenize(source, 0)
	var rebuilt string
	for _, tok := range tokens {
		rebuilt += tok.Text(source)
	}
	testutil.Equal(t, source, rebuilt, "token spans tile the source")
}

func TestMultibyteSpans(t *testing.T) {
	source := "é+"
	tokens, _ := tokenize(source, 0)
	testutil.Equal(t, 'é', tokens[0].Rune, "rune")
	testutil.Equal(t, types.ByteOffset(2), tokens[0].Span.End, "byte span")
	testutil.Equal(t, TokQuantifier, tokens[1].Kind, "quantifier")
}

func TestTokenKindString(t *testing.T) {
	testutil.Equal(t, "Quantifier", TokQuantifier.String(), "name")
	testutil.Equal(t, "TokenKind(999)", TokenKind(999).String(), "unknown")
	testutil.True(t, TokLookbehindOpen.IsLookaround(), "lookbehind")
	testutil.False(t, TokGroupOpen.IsLookaround(), "plain group")
	testutil.True(t, TokNamedGroupOpen.IsGroupOpen(), "named group")
	testutil.True(t, TokWordBoundary.IsAssertion(), "boundary")
}
