// Package lexer provides tokenization for ECMAScript regular expression
// pattern text.
package lexer

import (
	"fmt"

	"github.com/regexplainer/regexplain/internal/charclass"
	"github.com/regexplainer/regexplain/internal/types"
)

// Token is a token with kind, source span and decoded payload.
type Token struct {
	Kind TokenKind
	Span types.Span

	// Rune is the decoded character for TokChar and TokClassChar, and
	// for control shorthands (TAB, LF, CR).
	Rune rune
	// Class is the named class for shorthands and word boundaries.
	Class charclass.Kind
	// Name is the group name, named backreference or property name.
	Name string
	// Index is the group number of a numeric backreference.
	Index int
	// Min and Max are quantifier bounds. Max is -1 when unbounded.
	Min, Max int
	// Lazy is set for quantifiers followed by '?'.
	Lazy bool
}

// NewToken creates a new token.
func NewToken(kind TokenKind, span types.Span) Token {
	return Token{Kind: kind, Span: span}
}

// Text returns the source text covered by the token.
func (t Token) Text(source string) string {
	return t.Span.Text(source)
}

// TokenKind identifies a token type.
type TokenKind int

const (
	// === Special ===

	// TokError is a lexical error.
	TokError TokenKind = iota
	// TokEOF is end of input.
	TokEOF

	// === Atoms ===

	// TokChar is a literal character, escaped or not.
	TokChar
	// TokFallback is text that looked like syntax but is kept literally
	// (a malformed quantifier brace).
	TokFallback
	// TokShorthand is a class escape outside brackets (\w, \d, \s, \t, \p{..}).
	TokShorthand
	// TokDot is '.'.
	TokDot
	// TokWordBoundary is \b.
	TokWordBoundary
	// TokNotWordBoundary is \B.
	TokNotWordBoundary
	// TokAnchorStart is '^'.
	TokAnchorStart
	// TokAnchorEnd is '$'.
	TokAnchorEnd
	// TokBackref is \1 through \N.
	TokBackref
	// TokNamedBackref is \k<name>.
	TokNamedBackref

	// === Groups ===

	// TokGroupOpen is '('.
	TokGroupOpen
	// TokNonCaptureOpen is '(?:'.
	TokNonCaptureOpen
	// TokNamedGroupOpen is '(?<name>'.
	TokNamedGroupOpen
	// TokLookaheadOpen is '(?='.
	TokLookaheadOpen
	// TokNegLookaheadOpen is '(?!'.
	TokNegLookaheadOpen
	// TokLookbehindOpen is '(?<='.
	TokLookbehindOpen
	// TokNegLookbehindOpen is '(?<!'.
	TokNegLookbehindOpen
	// TokGroupClose is ')'.
	TokGroupClose

	// === Operators ===

	// TokQuantifier is ?, *, +, {m}, {m,} or {m,n}, optionally lazy.
	TokQuantifier
	// TokPipe is '|'.
	TokPipe

	// === Character classes ===

	// TokClassOpen is '['.
	TokClassOpen
	// TokNegClassOpen is '[^'.
	TokNegClassOpen
	// TokClassClose is ']' ending a class.
	TokClassClose
	// TokClassChar is a character inside brackets.
	TokClassChar
	// TokClassShorthand is a class escape inside brackets.
	TokClassShorthand
	// TokClassDash is '-' inside brackets.
	TokClassDash
)

var tokenKindNames = [...]string{
	TokError:             "Error",
	TokEOF:               "EOF",
	TokChar:              "Char",
	TokFallback:          "Fallback",
	TokShorthand:         "Shorthand",
	TokDot:               "Dot",
	TokWordBoundary:      "WordBoundary",
	TokNotWordBoundary:   "NotWordBoundary",
	TokAnchorStart:       "AnchorStart",
	TokAnchorEnd:         "AnchorEnd",
	TokBackref:           "Backref",
	TokNamedBackref:      "NamedBackref",
	TokGroupOpen:         "GroupOpen",
	TokNonCaptureOpen:    "NonCaptureOpen",
	TokNamedGroupOpen:    "NamedGroupOpen",
	TokLookaheadOpen:     "LookaheadOpen",
	TokNegLookaheadOpen:  "NegLookaheadOpen",
	TokLookbehindOpen:    "LookbehindOpen",
	TokNegLookbehindOpen: "NegLookbehindOpen",
	TokGroupClose:        "GroupClose",
	TokQuantifier:        "Quantifier",
	TokPipe:              "Pipe",
	TokClassOpen:         "ClassOpen",
	TokNegClassOpen:      "NegClassOpen",
	TokClassClose:        "ClassClose",
	TokClassChar:         "ClassChar",
	TokClassShorthand:    "ClassShorthand",
	TokClassDash:         "ClassDash",
}

func (k TokenKind) String() string {
	if k >= 0 && int(k) < len(tokenKindNames) && tokenKindNames[k] != "" {
		return tokenKindNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// IsGroupOpen reports whether k opens any kind of group or lookaround.
func (k TokenKind) IsGroupOpen() bool {
	return k >= TokGroupOpen && k <= TokNegLookbehindOpen
}

// IsLookaround reports whether k opens a lookahead or lookbehind.
func (k TokenKind) IsLookaround() bool {
	return k >= TokLookaheadOpen && k <= TokNegLookbehindOpen
}

// IsAssertion reports whether k is a zero-width assertion that cannot
// be quantified (anchors and word boundaries).
func (k TokenKind) IsAssertion() bool {
	switch k {
	case TokAnchorStart, TokAnchorEnd, TokWordBoundary, TokNotWordBoundary:
		return true
	}
	return false
}
