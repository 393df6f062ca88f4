// Package parser turns ECMAScript regular expression source into an AST.
//
// The parser is recursive descent:
//
//	disjunction := alternative ('|' alternative)*
//	alternative := term*
//	term        := atom quantifier?
//
// Quantifiers bind tightest, then concatenation, then alternation.
// Problems an ECMAScript engine tolerates under Annex B (stray braces,
// quantifiers with nothing to repeat) degrade to Fallback nodes plus a
// diagnostic. Only unbalanced delimiters, lexical errors and excessive
// nesting abort parsing with a *MalformedPatternError.
package parser

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"
	"unicode/utf8"

	"github.com/regexplainer/regexplain/internal/ast"
	"github.com/regexplainer/regexplain/internal/charclass"
	"github.com/regexplainer/regexplain/internal/lexer"
	"github.com/regexplainer/regexplain/internal/types"
)

// DefaultMaxDepth bounds group nesting.
const DefaultMaxDepth = 256

// Parser converts a token stream into a Pattern with diagnostics.
type Parser struct {
	source   string
	flags    types.Flags
	lex      *lexer.Lexer
	buf      [3]lexer.Token // lookahead buffer: buf[0]=current, buf[1]=peek(1), buf[2]=peek(2)
	diags    types.Collector
	maxDepth int

	// groupCount is shared by every capturing group in the pattern,
	// including those inside alternation branches and lookarounds.
	groupCount int
	groups     []ast.GroupInfo
	backrefs   []*ast.Backreference

	types.Logger
}

// New returns a Parser that lexes the source and prepares for parsing.
// Pass nil for logger to disable logging. The diagConfig controls which
// diagnostics are reported.
func New(source string, flags types.Flags, logger *slog.Logger, diagConfig types.DiagnosticConfig) *Parser {
	lex := lexer.New(source, flags, types.ComponentLogger(logger, "lexer"))
	p := &Parser{
		source:   source,
		flags:    flags,
		lex:      lex,
		diags:    types.Collector{Config: diagConfig},
		maxDepth: DefaultMaxDepth,
		Logger:   types.Logger{L: logger},
	}
	p.buf[0] = lex.NextToken()
	p.buf[1] = lex.NextToken()
	p.buf[2] = lex.NextToken()
	p.Log(slog.LevelDebug, "parser initialized")
	return p
}

// SetMaxDepth overrides the group nesting limit. Values below 1 restore
// the default.
func (p *Parser) SetMaxDepth(depth int) {
	if depth < 1 {
		depth = DefaultMaxDepth
	}
	p.maxDepth = depth
}

// emitDiagnostic records a diagnostic if the current config reports it.
func (p *Parser) emitDiagnostic(code string, severity types.Severity, span types.Span, message string) {
	p.diags.Emit(code, severity, span, message)
}

// Parse parses the whole pattern. On failure the returned error is a
// *MalformedPatternError and the Pattern is nil.
func (p *Parser) Parse() (*ast.Pattern, error) {
	p.Log(slog.LevelDebug, "parsing pattern", slog.Int("bytes", len(p.source)))

	body, err := p.parseDisjunction(0)
	if err != nil {
		return nil, p.fail(err)
	}
	if tok := p.peek(); tok.Kind != lexer.TokEOF {
		if tok.Kind == lexer.TokError {
			return nil, p.fail(p.lexError(tok))
		}
		return nil, p.fail(p.makeError(types.DiagUnbalancedParen, tok.Span, "unmatched ')'"))
	}

	p.resolveBackreferences()

	pattern := &ast.Pattern{
		Source:      p.source,
		Flags:       p.flags,
		Body:        body,
		Groups:      p.groups,
		Diagnostics: p.collectDiagnostics(),
	}

	p.Log(slog.LevelDebug, "parsing complete",
		slog.Int("groups", len(p.groups)),
		slog.Int("diagnostics", len(pattern.Diagnostics)))

	return pattern, nil
}

// collectDiagnostics merges filtered lexer diagnostics with the parser's
// own and orders them by position.
func (p *Parser) collectDiagnostics() []types.SpanDiagnostic {
	for _, d := range p.lex.Diagnostics() {
		if d.Severity == types.SeverityFatal {
			continue
		}
		p.emitDiagnostic(d.Code, d.Severity, d.Span, d.Message)
	}
	diags := p.diags.Diagnostics()
	slices.SortStableFunc(diags, func(a, b types.SpanDiagnostic) int {
		return cmp.Compare(a.Span.Start, b.Span.Start)
	})
	return diags
}

func (p *Parser) fail(err *MalformedPatternError) error {
	err.Diagnostics = p.collectDiagnostics()
	p.Log(slog.LevelDebug, "parse failed",
		slog.String("code", err.Code),
		slog.Int("offset", err.Offset))
	return err
}

func (p *Parser) makeError(code string, span types.Span, message string) *MalformedPatternError {
	return &MalformedPatternError{
		Offset:  int(span.Start),
		Span:    span,
		Code:    code,
		Message: message,
	}
}

// lexError converts a TokError into the error the lexer described.
func (p *Parser) lexError(tok lexer.Token) *MalformedPatternError {
	for _, d := range p.lex.Diagnostics() {
		if d.Severity == types.SeverityFatal && d.Span == tok.Span {
			return p.makeError(d.Code, d.Span, d.Message)
		}
	}
	return p.makeError(types.DiagBadEscape, tok.Span,
		fmt.Sprintf("invalid syntax %q", tok.Text(p.source)))
}

func (p *Parser) peek() lexer.Token {
	return p.buf[0]
}

func (p *Parser) peekNth(n int) lexer.Token {
	return p.buf[n]
}

func (p *Parser) advance() lexer.Token {
	tok := p.buf[0]
	p.buf[0] = p.buf[1]
	p.buf[1] = p.buf[2]
	p.buf[2] = p.lex.NextToken()
	return tok
}

func (p *Parser) check(kind lexer.TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) parseDisjunction(depth int) (ast.Node, *MalformedPatternError) {
	first, err := p.parseAlternative(depth)
	if err != nil {
		return nil, err
	}
	if !p.check(lexer.TokPipe) {
		return first, nil
	}

	branches := []*ast.Sequence{first}
	for p.check(lexer.TokPipe) {
		p.advance()
		branch, err := p.parseAlternative(depth)
		if err != nil {
			return nil, err
		}
		branches = append(branches, branch)
	}

	span := first.Span.Cover(branches[len(branches)-1].Span)
	if p.TraceEnabled() {
		p.Trace("alternation", slog.Int("branches", len(branches)))
	}
	return &ast.Alternation{NodeBase: ast.NodeBase{Span: span}, Branches: branches}, nil
}

func (p *Parser) parseAlternative(depth int) (*ast.Sequence, *MalformedPatternError) {
	start := p.peek().Span.Start
	seq := &ast.Sequence{}
	for {
		switch p.peek().Kind {
		case lexer.TokEOF, lexer.TokPipe, lexer.TokGroupClose:
			end := start
			if n := len(seq.Children); n > 0 {
				end = seq.Children[n-1].NodeSpan().End
			}
			seq.Span = types.NewSpan(start, end)
			return seq, nil
		}
		if err := p.parseTerm(seq, depth); err != nil {
			return nil, err
		}
	}
}

// parseTerm parses one atom with its optional quantifier and appends
// the result to seq, merging adjacent unquantified literals.
func (p *Parser) parseTerm(seq *ast.Sequence, depth int) *MalformedPatternError {
	if p.check(lexer.TokQuantifier) {
		p.nothingToRepeat(seq, p.advance())
		return nil
	}

	atom, err := p.parseAtom(depth)
	if err != nil {
		return err
	}

	if !p.check(lexer.TokQuantifier) {
		appendTerm(seq, atom)
		return nil
	}

	if isAssertion(atom) {
		appendTerm(seq, atom)
		p.nothingToRepeat(seq, p.advance())
		return nil
	}

	q := p.advance()
	if q.Max != ast.Unbounded && q.Min > q.Max {
		appendTerm(seq, atom)
		text := q.Text(p.source)
		p.emitDiagnostic(types.DiagQuantifierOrder, types.SeverityWarning, q.Span,
			fmt.Sprintf("quantifier %s has its bounds out of order and is read as literal text", text))
		seq.Children = append(seq.Children, &ast.Fallback{
			NodeBase: ast.NodeBase{Span: q.Span},
			Text:     text,
			Code:     types.DiagQuantifierOrder,
		})
		return nil
	}

	// A quantifier after a multi-character fallback repeats only its
	// last character.
	if fb, ok := atom.(*ast.Fallback); ok && utf8.RuneCountInString(fb.Text) > 1 {
		head, last := splitLastRune(fb)
		seq.Children = append(seq.Children, head)
		atom = last
	}

	if la, ok := atom.(*ast.Lookaround); ok && la.Direction == ast.Behind {
		p.emitDiagnostic(types.DiagLookbehindQuantified, types.SeverityWarning, q.Span,
			"quantified lookbehind is a syntax error in ECMAScript; explained as written")
	}

	quantified := &ast.Quantified{
		NodeBase: ast.NodeBase{Span: atom.NodeSpan().Cover(q.Span)},
		Min:      q.Min,
		Max:      q.Max,
		Greedy:   !q.Lazy,
		Child:    atom,
	}
	if p.TraceEnabled() {
		p.Trace("quantified",
			slog.Int("min", q.Min),
			slog.Int("max", q.Max),
			slog.Bool("lazy", q.Lazy))
	}
	seq.Children = append(seq.Children, quantified)
	return nil
}

// nothingToRepeat keeps a quantifier with no operand as literal text.
func (p *Parser) nothingToRepeat(seq *ast.Sequence, q lexer.Token) {
	text := q.Text(p.source)
	p.emitDiagnostic(types.DiagNothingToRepeat, types.SeverityWarning, q.Span,
		fmt.Sprintf("nothing to repeat before %q; read as literal text", text))
	seq.Children = append(seq.Children, &ast.Fallback{
		NodeBase: ast.NodeBase{Span: q.Span},
		Text:     text,
		Code:     types.DiagNothingToRepeat,
	})
}

// appendTerm appends n to seq, merging an unquantified literal into a
// directly preceding literal.
func appendTerm(seq *ast.Sequence, n ast.Node) {
	if lit, ok := n.(*ast.Literal); ok {
		if k := len(seq.Children); k > 0 {
			if prev, ok := seq.Children[k-1].(*ast.Literal); ok {
				prev.Text += lit.Text
				prev.Span = prev.Span.Cover(lit.Span)
				return
			}
		}
	}
	seq.Children = append(seq.Children, n)
}

func splitLastRune(fb *ast.Fallback) (*ast.Fallback, *ast.Fallback) {
	_, size := utf8.DecodeLastRuneInString(fb.Text)
	cut := len(fb.Text) - size
	mid := fb.Span.Start + types.ByteOffset(cut)
	head := &ast.Fallback{
		NodeBase: ast.NodeBase{Span: types.NewSpan(fb.Span.Start, mid)},
		Text:     fb.Text[:cut],
		Code:     fb.Code,
	}
	last := &ast.Fallback{
		NodeBase: ast.NodeBase{Span: types.NewSpan(mid, fb.Span.End)},
		Text:     fb.Text[cut:],
		Code:     fb.Code,
	}
	return head, last
}

func isAssertion(n ast.Node) bool {
	switch n := n.(type) {
	case *ast.Anchor:
		return true
	case *ast.Shorthand:
		return n.Kind == charclass.KindWordBoundary || n.Kind == charclass.KindNotWordBoundary
	}
	return false
}

func (p *Parser) parseAtom(depth int) (ast.Node, *MalformedPatternError) {
	tok := p.advance()
	base := ast.NodeBase{Span: tok.Span}

	switch tok.Kind {
	case lexer.TokChar:
		return &ast.Literal{NodeBase: base, Text: charclass.DisplayText(tok.Rune)}, nil
	case lexer.TokFallback:
		return &ast.Fallback{NodeBase: base, Text: tok.Text(p.source), Code: types.DiagBraceLiteral}, nil
	case lexer.TokShorthand, lexer.TokDot, lexer.TokWordBoundary, lexer.TokNotWordBoundary:
		return &ast.Shorthand{NodeBase: base, Kind: tok.Class, Property: tok.Name}, nil
	case lexer.TokAnchorStart:
		return &ast.Anchor{NodeBase: base, Kind: ast.AnchorStart}, nil
	case lexer.TokAnchorEnd:
		return &ast.Anchor{NodeBase: base, Kind: ast.AnchorEnd}, nil
	case lexer.TokBackref:
		ref := &ast.Backreference{NodeBase: base, Index: tok.Index}
		p.backrefs = append(p.backrefs, ref)
		return ref, nil
	case lexer.TokNamedBackref:
		ref := &ast.Backreference{NodeBase: base, Name: tok.Name}
		p.backrefs = append(p.backrefs, ref)
		return ref, nil
	case lexer.TokGroupOpen, lexer.TokNonCaptureOpen, lexer.TokNamedGroupOpen:
		return p.parseGroup(tok, depth)
	case lexer.TokLookaheadOpen, lexer.TokNegLookaheadOpen,
		lexer.TokLookbehindOpen, lexer.TokNegLookbehindOpen:
		return p.parseLookaround(tok, depth)
	case lexer.TokClassOpen, lexer.TokNegClassOpen:
		return p.parseClass(tok)
	case lexer.TokError:
		return nil, p.lexError(tok)
	default:
		return nil, p.makeError(types.DiagBadEscape, tok.Span,
			fmt.Sprintf("unexpected %s", tok.Kind))
	}
}

// parseGroupBody parses the inside of any parenthesized construct up to
// and including its ')'.
func (p *Parser) parseGroupBody(open lexer.Token, depth int) (ast.Node, types.Span, *MalformedPatternError) {
	if depth+1 > p.maxDepth {
		return nil, open.Span, p.makeError(types.DiagNestingTooDeep, open.Span,
			fmt.Sprintf("groups nested deeper than %d levels", p.maxDepth))
	}
	body, err := p.parseDisjunction(depth + 1)
	if err != nil {
		return nil, open.Span, err
	}
	if !p.check(lexer.TokGroupClose) {
		if tok := p.peek(); tok.Kind == lexer.TokError {
			return nil, open.Span, p.lexError(tok)
		}
		return nil, open.Span, p.makeError(types.DiagUnterminatedGroup, open.Span,
			fmt.Sprintf("unterminated group %q", open.Text(p.source)))
	}
	closeTok := p.advance()
	return body, open.Span.Cover(closeTok.Span), nil
}

func (p *Parser) parseGroup(open lexer.Token, depth int) (ast.Node, *MalformedPatternError) {
	group := &ast.Group{}
	switch open.Kind {
	case lexer.TokNonCaptureOpen:
		group.Kind = ast.GroupNonCapturing
	case lexer.TokNamedGroupOpen:
		group.Kind = ast.GroupNamedCapturing
		group.Name = open.Name
	default:
		group.Kind = ast.GroupCapturing
	}

	// The index is taken at the opening parenthesis so outer groups
	// number before the groups they contain.
	if group.Captures() {
		p.groupCount++
		group.Index = p.groupCount
		if group.Name != "" {
			if prev, ok := p.groupNamed(group.Name); ok {
				p.emitDiagnostic(types.DiagDuplicateGroupName, types.SeverityWarning, open.Span,
					fmt.Sprintf("group name %q is already used by group %d", group.Name, prev.Index))
			}
		}
		p.groups = append(p.groups, ast.GroupInfo{Index: group.Index, Name: group.Name, Span: open.Span})
		if p.TraceEnabled() {
			p.Trace("capture group",
				slog.Int("index", group.Index),
				slog.String("name", group.Name))
		}
	}

	body, span, err := p.parseGroupBody(open, depth)
	if err != nil {
		return nil, err
	}
	group.Body = body
	group.Span = span
	// Record the full span once the group is closed.
	if group.Captures() {
		p.groups[group.Index-1].Span = span
	}
	return group, nil
}

func (p *Parser) groupNamed(name string) (ast.GroupInfo, bool) {
	for _, g := range p.groups {
		if g.Name == name {
			return g, true
		}
	}
	return ast.GroupInfo{}, false
}

func (p *Parser) parseLookaround(open lexer.Token, depth int) (ast.Node, *MalformedPatternError) {
	look := &ast.Lookaround{}
	switch open.Kind {
	case lexer.TokNegLookaheadOpen:
		look.Negated = true
	case lexer.TokLookbehindOpen:
		look.Direction = ast.Behind
	case lexer.TokNegLookbehindOpen:
		look.Direction = ast.Behind
		look.Negated = true
	}

	body, span, err := p.parseGroupBody(open, depth)
	if err != nil {
		return nil, err
	}
	look.Assertion = body
	look.Span = span

	if look.Direction == ast.Behind {
		p.checkLookbehind(look)
	}
	return look, nil
}

// checkLookbehind reports constructs whose explanation inside a
// lookbehind is known to be approximate.
func (p *Parser) checkLookbehind(look *ast.Lookaround) {
	var sawAlternation, sawNegated bool
	ast.Walk(look.Assertion, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.Alternation:
			if !sawAlternation {
				sawAlternation = true
				p.emitDiagnostic(types.DiagLookbehindAlternation, types.SeverityWarning, n.Span,
					"alternation inside lookbehind is explained on a best-effort basis")
			}
		case *ast.CharClass:
			// A class in a negative lookbehind is negated as well.
			if (n.Negated || look.Negated) && !sawNegated {
				sawNegated = true
				p.emitDiagnostic(types.DiagLookbehindNegatedClass, types.SeverityWarning, n.Span,
					"negated class inside lookbehind is explained on a best-effort basis")
			}
		case *ast.Lookaround:
			return n == look
		}
		return true
	})
}

// parseClass parses a bracketed class after its opening token.
func (p *Parser) parseClass(open lexer.Token) (ast.Node, *MalformedPatternError) {
	class := &ast.CharClass{Negated: open.Kind == lexer.TokNegClassOpen}

	for {
		tok := p.peek()
		switch tok.Kind {
		case lexer.TokClassClose:
			closeTok := p.advance()
			class.Span = open.Span.Cover(closeTok.Span)
			p.checkClassOverlap(class)
			if p.TraceEnabled() {
				p.Trace("character class",
					slog.Bool("negated", class.Negated),
					slog.Int("members", len(class.Members)))
			}
			return class, nil
		case lexer.TokEOF:
			return nil, p.makeError(types.DiagUnterminatedClass, open.Span,
				"unterminated character class")
		case lexer.TokError:
			return nil, p.lexError(tok)
		}

		p.advance()
		if tok.Kind == lexer.TokClassShorthand {
			if tok.Name != "" {
				class.Members = append(class.Members, charclass.PropertyClass(tok.Class, tok.Name, tok.Span))
			} else {
				class.Members = append(class.Members, charclass.Class(tok.Class, tok.Span))
			}
			continue
		}

		from := classRune(tok)
		if p.startsRange() {
			p.advance() // '-'
			toTok := p.advance()
			to := classRune(toTok)
			span := tok.Span.Cover(toTok.Span)
			if from > to {
				p.emitDiagnostic(types.DiagClassRangeOrder, types.SeverityError, span,
					fmt.Sprintf("range %s-%s is out of order", charclass.DisplayText(from), charclass.DisplayText(to)))
			}
			class.Members = append(class.Members, charclass.Range(from, to, span))
			continue
		}
		class.Members = append(class.Members, charclass.Char(from, tok.Span))
	}
}

// checkClassOverlap notes a character or range already matched by an
// earlier member of the same class, as in [a-za-z] or [\dx5]. The class
// itself is left as written.
func (p *Parser) checkClassOverlap(class *ast.CharClass) {
	var seen []charclass.RuneRange
	for i, m := range class.Members {
		own := charclass.Normalize(false, class.Members[i:i+1]).Ranges()
		if (m.Kind == charclass.MemberChar || m.Kind == charclass.MemberRange) && own[0].Lo <= own[0].Hi {
			for _, rr := range seen {
				if rr.Contains(own[0].Lo) && rr.Contains(own[0].Hi) {
					p.emitDiagnostic(types.DiagClassOverlap, types.SeverityInfo, m.Span,
						fmt.Sprintf("%s is already matched by an earlier class member", m.Label()))
					break
				}
			}
		}
		seen = append(seen, own...)
	}
}

// startsRange reports whether the next tokens are '-' followed by a
// character that can end a range.
func (p *Parser) startsRange() bool {
	if !p.check(lexer.TokClassDash) {
		return false
	}
	switch p.peekNth(1).Kind {
	case lexer.TokClassChar, lexer.TokClassDash:
		return true
	}
	return false
}

func classRune(tok lexer.Token) rune {
	if tok.Kind == lexer.TokClassDash {
		return '-'
	}
	return tok.Rune
}

// resolveBackreferences fills in named reference indices and reports
// references to groups that do not exist.
func (p *Parser) resolveBackreferences() {
	for _, ref := range p.backrefs {
		if ref.Name != "" {
			if g, ok := p.groupNamed(ref.Name); ok {
				ref.Index = g.Index
				continue
			}
			p.emitDiagnostic(types.DiagBackreferenceUnknown, types.SeverityInfo, ref.Span,
				fmt.Sprintf("no group named %q", ref.Name))
			continue
		}
		if ref.Index > p.groupCount {
			p.emitDiagnostic(types.DiagBackreferenceUnknown, types.SeverityInfo, ref.Span,
				fmt.Sprintf("reference to group %d but the pattern has %d", ref.Index, p.groupCount))
		}
	}
}
