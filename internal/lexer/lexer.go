package lexer

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/regexplainer/regexplain/internal/charclass"
	"github.com/regexplainer/regexplain/internal/types"
)

type lexerState int

const (
	stateNormal lexerState = iota
	stateInClass
)

// syntaxChars may be escaped anywhere without an identity-escape notice.
const syntaxChars = `^$\.*+?()[]{}|/`

// braceStops end a candidate literal brace run. A '{' whose body
// contains any of these is kept as a lone literal brace.
const braceStops = `()[]|\{^$.*+?`

// Lexer tokenizes ECMAScript regular expression pattern text.
type Lexer struct {
	source string
	pos    int
	state  lexerState
	flags  types.Flags
	diags  types.Collector
	types.Logger
}

// New returns a Lexer that tokenizes the given pattern body. The flags
// select between Annex B and unicode-mode escape rules.
func New(source string, flags types.Flags, logger *slog.Logger) *Lexer {
	l := &Lexer{
		source: source,
		pos:    0,
		state:  stateNormal,
		flags:  flags,
		// The lexer keeps everything; the parser filters.
		diags:  types.Collector{Config: types.DiagnosticConfig{Level: types.StrictnessStrict}},
		Logger: types.Logger{L: logger},
	}
	l.Log(slog.LevelDebug, "lexer initialized",
		slog.Int("bytes", len(source)),
		slog.String("flags", flags.String()))
	return l
}

// Diagnostics returns a copy of all collected diagnostics.
func (l *Lexer) Diagnostics() []types.SpanDiagnostic {
	return l.diags.Diagnostics()
}

func (l *Lexer) traceToken(tok Token) {
	if l.TraceEnabled() {
		l.Trace("token",
			slog.String("kind", tok.Kind.String()),
			slog.Int("start", int(tok.Span.Start)),
			slog.Int("end", int(tok.Span.End)))
	}
}

// Tokenize consumes all source text and returns the token stream
// along with any diagnostics generated during lexing. Diagnostics are
// unfiltered; the parser applies its DiagnosticConfig.
func (l *Lexer) Tokenize() ([]Token, []types.SpanDiagnostic) {
	tokens := make([]Token, 0, len(l.source)+1)
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind == TokEOF {
			break
		}
	}
	l.Log(slog.LevelDebug, "tokenization complete",
		slog.Int("tokens", len(tokens)),
		slog.Int("diagnostics", l.diags.Len()))
	return tokens, l.diags.Diagnostics()
}

// NextToken advances the lexer and returns the next token.
// Returns TokEOF when all input is consumed.
func (l *Lexer) NextToken() Token {
	if l.state == stateInClass {
		return l.nextClassToken()
	}
	return l.nextNormalToken()
}

func (l *Lexer) isEOF() bool {
	return l.pos >= len(l.source)
}

func (l *Lexer) peek() (rune, bool) {
	if l.pos >= len(l.source) {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(l.source[l.pos:])
	return r, true
}

func (l *Lexer) peekIs(r rune) bool {
	c, ok := l.peek()
	return ok && c == r
}

func (l *Lexer) advance() (rune, bool) {
	if l.pos >= len(l.source) {
		return 0, false
	}
	r, size := utf8.DecodeRuneInString(l.source[l.pos:])
	l.pos += size
	return r, true
}

func (l *Lexer) emit(code string, sev types.Severity, span types.Span, message string) {
	l.diags.Emit(code, sev, span, message)
}

// error records a fatal diagnostic and returns a TokError covering the
// text consumed since start.
func (l *Lexer) error(code string, start int, message string) Token {
	span := l.spanFrom(start)
	l.emit(code, types.SeverityFatal, span, message)
	return l.token(TokError, start)
}

// annexB returns sev in Annex B mode and SeverityError under u or v,
// where the construct is a syntax error.
func (l *Lexer) annexB(sev types.Severity) types.Severity {
	if l.flags.EitherUnicode() {
		return types.SeverityError
	}
	return sev
}

func (l *Lexer) spanFrom(start int) types.Span {
	return types.SpanOf(start, l.pos)
}

func (l *Lexer) token(kind TokenKind, start int) Token {
	tok := Token{
		Kind: kind,
		Span: l.spanFrom(start),
	}
	l.traceToken(tok)
	return tok
}

func (l *Lexer) charToken(kind TokenKind, r rune, start int) Token {
	tok := Token{Kind: kind, Span: l.spanFrom(start), Rune: r}
	if r == utf8.RuneError {
		// \uFFFD is a real U+FFFD; a lone invalid byte decodes to it too.
		if last, size := utf8.DecodeLastRuneInString(l.source[start:l.pos]); last == utf8.RuneError && size == 1 {
			l.emit(types.DiagInvalidUTF8, types.SeverityInfo, tok.Span,
				fmt.Sprintf("invalid UTF-8 byte 0x%02X is shown as U+FFFD", l.source[l.pos-1]))
		}
	}
	l.traceToken(tok)
	return tok
}

func (l *Lexer) classToken(kind TokenKind, class charclass.Kind, start int) Token {
	tok := Token{Kind: kind, Span: l.spanFrom(start), Class: class}
	if r, ok := class.ControlRune(); ok {
		tok.Rune = r
	}
	l.traceToken(tok)
	return tok
}

func (l *Lexer) nextNormalToken() Token {
	start := l.pos

	r, ok := l.advance()
	if !ok {
		return l.token(TokEOF, start)
	}

	switch r {
	case '\\':
		return l.scanEscape(start, false)
	case '(':
		return l.scanGroupOpen(start)
	case ')':
		return l.token(TokGroupClose, start)
	case '[':
		l.state = stateInClass
		if l.peekIs('^') {
			l.advance()
			return l.token(TokNegClassOpen, start)
		}
		return l.token(TokClassOpen, start)
	case '|':
		return l.token(TokPipe, start)
	case '^':
		return l.token(TokAnchorStart, start)
	case '$':
		return l.token(TokAnchorEnd, start)
	case '.':
		return l.classToken(TokDot, charclass.KindAny, start)
	case '?':
		return l.quantifier(start, 0, 1)
	case '*':
		return l.quantifier(start, 0, -1)
	case '+':
		return l.quantifier(start, 1, -1)
	case '{':
		return l.scanBrace(start)
	default:
		return l.charToken(TokChar, r, start)
	}
}

func (l *Lexer) quantifier(start, minCount, maxCount int) Token {
	lazy := false
	if l.peekIs('?') {
		l.advance()
		lazy = true
	}
	tok := Token{
		Kind: TokQuantifier,
		Span: l.spanFrom(start),
		Min:  minCount,
		Max:  maxCount,
		Lazy: lazy,
	}
	l.traceToken(tok)
	return tok
}

// scanBrace handles '{' after it has been consumed: either a counted
// quantifier or literal text.
func (l *Lexer) scanBrace(start int) Token {
	if minCount, maxCount, end, ok := parseBraceQuantifier(l.source, l.pos); ok {
		l.pos = end
		return l.quantifier(start, minCount, maxCount)
	}

	// Literal brace. Swallow the whole {...} run when it is plain text so
	// {graphql,js} reads as one fragment.
	if rest := l.source[l.pos:]; rest != "" {
		if end := strings.IndexByte(rest, '}'); end >= 0 && !strings.ContainsAny(rest[:end], braceStops) {
			l.pos += end + 1
		}
	}
	span := l.spanFrom(start)
	l.emit(types.DiagBraceLiteral, l.annexB(types.SeverityInfo), span,
		"'{' does not start a quantifier and is read as literal text")
	return l.token(TokFallback, start)
}

// parseBraceQuantifier matches {n}, {n,} or {n,m} with pos just after
// the '{'. Returns the bounds and the offset after the closing '}'.
func parseBraceQuantifier(s string, pos int) (minCount, maxCount, end int, ok bool) {
	minCount, pos, ok = scanDecimal(s, pos)
	if !ok {
		return 0, 0, 0, false
	}
	maxCount = minCount
	if pos < len(s) && s[pos] == ',' {
		pos++
		maxCount = -1
		if pos < len(s) && isDigit(s[pos]) {
			maxCount, pos, _ = scanDecimal(s, pos)
		}
	}
	if pos >= len(s) || s[pos] != '}' {
		return 0, 0, 0, false
	}
	return minCount, maxCount, pos + 1, true
}

// scanDecimal reads a run of ASCII digits, saturating at MaxInt32.
func scanDecimal(s string, pos int) (int, int, bool) {
	begin := pos
	n := 0
	for pos < len(s) && isDigit(s[pos]) {
		if n < math.MaxInt32/10 {
			n = n*10 + int(s[pos]-'0')
		} else {
			n = math.MaxInt32
		}
		pos++
	}
	return n, pos, pos > begin
}

// scanGroupOpen classifies '(' and its optional '?' prefix.
func (l *Lexer) scanGroupOpen(start int) Token {
	if !l.peekIs('?') {
		return l.token(TokGroupOpen, start)
	}
	l.advance()

	r, ok := l.advance()
	if !ok {
		return l.error(types.DiagBadGroupPrefix, start, "incomplete group prefix '(?'")
	}
	switch r {
	case ':':
		return l.token(TokNonCaptureOpen, start)
	case '=':
		return l.token(TokLookaheadOpen, start)
	case '!':
		return l.token(TokNegLookaheadOpen, start)
	case '<':
		if l.peekIs('=') {
			l.advance()
			return l.token(TokLookbehindOpen, start)
		}
		if l.peekIs('!') {
			l.advance()
			return l.token(TokNegLookbehindOpen, start)
		}
		name, ok := l.scanGroupName()
		if !ok {
			return l.error(types.DiagBadGroupName, start, "invalid or unterminated group name")
		}
		tok := Token{Kind: TokNamedGroupOpen, Span: l.spanFrom(start), Name: name}
		l.traceToken(tok)
		return tok
	default:
		return l.error(types.DiagBadGroupPrefix, start, "invalid group prefix '(?"+string(r)+"'")
	}
}

// scanGroupName reads an identifier terminated by '>', with pos just
// after the '<'. The '>' is consumed.
func (l *Lexer) scanGroupName() (string, bool) {
	begin := l.pos
	for {
		r, ok := l.advance()
		if !ok {
			return "", false
		}
		if r == '>' {
			name := l.source[begin : l.pos-1]
			return name, isIdentifier(name)
		}
	}
}

func (l *Lexer) nextClassToken() Token {
	start := l.pos

	r, ok := l.advance()
	if !ok {
		return l.token(TokEOF, start)
	}

	switch r {
	case ']':
		l.state = stateNormal
		return l.token(TokClassClose, start)
	case '\\':
		return l.scanEscape(start, true)
	case '-':
		return l.token(TokClassDash, start)
	default:
		return l.charToken(TokClassChar, r, start)
	}
}

// scanEscape handles a backslash sequence after the '\' is consumed.
func (l *Lexer) scanEscape(start int, inClass bool) Token {
	charKind := TokChar
	shortKind := TokShorthand
	if inClass {
		charKind = TokClassChar
		shortKind = TokClassShorthand
	}

	r, ok := l.advance()
	if !ok {
		return l.error(types.DiagTrailingBackslash, start, "pattern ends with a lone backslash")
	}

	switch r {
	case 'b':
		if inClass {
			return l.charToken(charKind, '\b', start)
		}
		return l.classToken(TokWordBoundary, charclass.KindWordBoundary, start)
	case 'B':
		if inClass {
			return l.identity(charKind, r, start)
		}
		return l.classToken(TokNotWordBoundary, charclass.KindNotWordBoundary, start)
	case 'd', 'D', 'w', 'W', 's', 'S', 't', 'n', 'r':
		kind, _ := charclass.ForEscape(r)
		return l.classToken(shortKind, kind, start)
	case 'f':
		return l.charToken(charKind, '\f', start)
	case 'v':
		return l.charToken(charKind, '\v', start)
	case '0':
		if !l.isEOF() && isDigit(l.source[l.pos]) {
			l.emit(types.DiagBadEscape, l.annexB(types.SeverityMinor), l.spanFrom(start),
				"legacy octal escape is read as NUL followed by digits")
		}
		return l.charToken(charKind, 0, start)
	case '1', '2', '3', '4', '5', '6', '7', '8', '9':
		if inClass {
			return l.identity(charKind, r, start)
		}
		n, end, _ := scanDecimal(l.source, l.pos-1)
		l.pos = end
		tok := Token{Kind: TokBackref, Span: l.spanFrom(start), Index: n}
		l.traceToken(tok)
		return tok
	case 'k':
		if inClass || !l.peekIs('<') {
			return l.identity(charKind, r, start)
		}
		l.advance()
		name, ok := l.scanGroupName()
		if !ok {
			return l.error(types.DiagBadGroupName, start, "invalid or unterminated backreference name")
		}
		tok := Token{Kind: TokNamedBackref, Span: l.spanFrom(start), Name: name}
		l.traceToken(tok)
		return tok
	case 'x':
		if v, ok := l.scanHex(2); ok {
			return l.charToken(charKind, v, start)
		}
		return l.badEscape(charKind, r, start)
	case 'u':
		if v, ok := l.scanUnicodeEscape(); ok {
			return l.charToken(charKind, v, start)
		}
		return l.badEscape(charKind, r, start)
	case 'c':
		if c, ok := l.peek(); ok && isASCIILetter(c) {
			l.advance()
			return l.charToken(charKind, c%32, start)
		}
		return l.badEscape(charKind, r, start)
	case 'p', 'P':
		if !l.flags.EitherUnicode() {
			return l.identity(charKind, r, start)
		}
		return l.scanProperty(shortKind, r == 'P', start)
	}

	if strings.ContainsRune(syntaxChars, r) || (inClass && r == '-') {
		return l.charToken(charKind, r, start)
	}
	return l.identity(charKind, r, start)
}

// identity returns an escaped character that stands for itself.
func (l *Lexer) identity(kind TokenKind, r rune, start int) Token {
	tok := l.charToken(kind, r, start)
	l.emit(types.DiagIdentityEscape, l.annexB(types.SeverityStyle), tok.Span,
		"needless escape of '"+string(r)+"'")
	return tok
}

func (l *Lexer) badEscape(kind TokenKind, r rune, start int) Token {
	tok := l.charToken(kind, r, start)
	l.emit(types.DiagBadEscape, l.annexB(types.SeverityMinor), tok.Span,
		"incomplete '\\"+string(r)+"' escape is read as '"+string(r)+"'")
	return tok
}

// scanHex reads exactly n hex digits. On failure pos is unchanged.
func (l *Lexer) scanHex(n int) (rune, bool) {
	if l.pos+n > len(l.source) {
		return 0, false
	}
	var v rune
	for i := range n {
		d, ok := hexValue(l.source[l.pos+i])
		if !ok {
			return 0, false
		}
		v = v*16 + d
	}
	l.pos += n
	return v, true
}

// scanUnicodeEscape reads the part after \u: four hex digits, a
// surrogate pair written as two escapes, or {hex} under u or v.
func (l *Lexer) scanUnicodeEscape() (rune, bool) {
	if l.flags.EitherUnicode() && l.peekIs('{') {
		save := l.pos
		l.advance()
		var v rune
		digits := 0
		for {
			c, ok := l.advance()
			if !ok {
				l.pos = save
				return 0, false
			}
			if c == '}' {
				break
			}
			if c > 0x7F {
				l.pos = save
				return 0, false
			}
			d, ok := hexValue(byte(c))
			if !ok {
				l.pos = save
				return 0, false
			}
			v = v*16 + d
			digits++
			if v > utf8.MaxRune {
				l.pos = save
				return 0, false
			}
		}
		if digits == 0 {
			l.pos = save
			return 0, false
		}
		return v, true
	}

	hi, ok := l.scanHex(4)
	if !ok {
		return 0, false
	}
	if hi >= 0xD800 && hi <= 0xDBFF && strings.HasPrefix(l.source[l.pos:], `\u`) {
		save := l.pos
		l.pos += 2
		if lo, ok := l.scanHex(4); ok && lo >= 0xDC00 && lo <= 0xDFFF {
			return (hi-0xD800)<<10 + (lo - 0xDC00) + 0x10000, true
		}
		l.pos = save
	}
	return hi, true
}

// scanProperty reads {Name} or {Name=Value} after \p or \P.
func (l *Lexer) scanProperty(kind TokenKind, negated bool, start int) Token {
	if !l.peekIs('{') {
		return l.error(types.DiagBadEscape, start, "property escape requires braces")
	}
	l.advance()
	begin := l.pos
	end := strings.IndexByte(l.source[begin:], '}')
	if end <= 0 {
		l.pos = len(l.source)
		return l.error(types.DiagBadEscape, start, "invalid or unterminated property escape")
	}
	name := l.source[begin : begin+end]
	l.pos = begin + end + 1

	class := charclass.KindProperty
	if negated {
		class = charclass.KindNotProperty
	}
	tok := Token{Kind: kind, Span: l.spanFrom(start), Class: class, Name: name}
	l.traceToken(tok)
	return tok
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func hexValue(b byte) (rune, bool) {
	switch {
	case b >= '0' && b <= '9':
		return rune(b - '0'), true
	case b >= 'a' && b <= 'f':
		return rune(b-'a') + 10, true
	case b >= 'A' && b <= 'F':
		return rune(b-'A') + 10, true
	}
	return 0, false
}

// isIdentifier reports whether name is a valid group name: a letter,
// '$' or '_' followed by letters, digits, '$' or '_'.
func isIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '$' || r == '_':
		case r >= utf8.RuneSelf:
		case isASCIILetter(r):
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
