// Package narrative walks a parsed pattern and builds its explanation
// tree.
//
// Layout rules follow the established fixture format:
//
//   - adjacent literal text, backreferences and fallback text merge into
//     one code span
//   - shorthands, the dot and anchors are bold labels, one node each
//   - groups and lookarounds are containers whose body becomes children
//   - an alternation reads "Either A, B, or C", inlining each branch
//     up to and including its first container
//   - a lookaround absorbs the leaf directly before it into its label
package narrative

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/regexplainer/regexplain/explain"
	"github.com/regexplainer/regexplain/internal/ast"
	"github.com/regexplainer/regexplain/internal/charclass"
	"github.com/regexplainer/regexplain/internal/types"
)

// LookbehindCaveat is attached to every lookbehind node.
const LookbehindCaveat = "lookbehind is explained on a best-effort basis; " +
	"alternation and negated classes inside it may not be described exactly"

// emptyBranch labels an alternation branch with no content.
const emptyBranch = "nothing"

// Generator builds explanation trees.
type Generator struct {
	types.Logger
}

// New returns a Generator. Pass nil for logger to disable logging.
func New(logger *slog.Logger) *Generator {
	return &Generator{Logger: types.Logger{L: logger}}
}

// Explain builds the explanation tree for a parsed pattern. The returned
// root node carries the pattern literal and flags; its children are the
// top-level lines. Explain never fails on a tree produced by the parser.
func Explain(p *ast.Pattern, logger *slog.Logger) *explain.Node {
	return New(logger).Explain(p)
}

// Explain builds the explanation tree for p.
func (g *Generator) Explain(p *ast.Pattern) *explain.Node {
	root := &explain.Node{
		Kind:     explain.KindRoot,
		Label:    explain.Literal(p.Source, p.Flags),
		Emphasis: explain.EmphasisPlain,
		Flags:    p.Flags,
		Span:     types.SpanOf(0, len(p.Source)),
		Children: g.nodes(p.Body),
	}
	g.Log(slog.LevelDebug, "explanation built",
		slog.Int("top_level", len(root.Children)),
		slog.Int("groups", len(p.Groups)))
	return root
}

func (g *Generator) trace(n *explain.Node) *explain.Node {
	if g.TraceEnabled() {
		g.Trace("node",
			slog.String("kind", string(n.Kind)),
			slog.String("label", n.Label),
			slog.Int("children", len(n.Children)))
	}
	return n
}

// nodes explains one AST node. Sequences and alternations may expand
// to several sibling lines.
func (g *Generator) nodes(n ast.Node) []*explain.Node {
	switch n := n.(type) {
	case nil:
		return nil
	case *ast.Sequence:
		return g.sequence(n.Children)
	case *ast.Alternation:
		return g.alternation(n)
	case *ast.Quantified:
		items := g.nodes(n.Child)
		if len(items) > 0 {
			last := items[len(items)-1]
			last.Quantifier = n.Bounds().Phrase()
			last.Span = last.Span.Cover(n.Span)
		}
		return items
	case *ast.Lookaround:
		return []*explain.Node{g.lookaround(n, nil)}
	case *ast.Group:
		return []*explain.Node{g.group(n)}
	case *ast.Literal, *ast.Backreference, *ast.Fallback:
		var run codeRun
		run.add(n)
		return []*explain.Node{g.trace(run.node())}
	case *ast.Shorthand:
		return []*explain.Node{g.trace(&explain.Node{
			Kind:     explain.KindShorthand,
			Label:    charclass.ForShorthand(n.Kind, n.Property).Label(),
			Emphasis: explain.EmphasisBold,
			Span:     n.Span,
		})}
	case *ast.Anchor:
		return []*explain.Node{g.trace(&explain.Node{
			Kind:     explain.KindAnchor,
			Label:    explain.Bold(charclass.FriendlyName(n.Kind.ClassKind())),
			Emphasis: explain.EmphasisBold,
			Span:     n.Span,
		})}
	case *ast.CharClass:
		desc := n.Description()
		emphasis := explain.EmphasisPlain
		if desc.IsShorthand() {
			emphasis = explain.EmphasisBold
		}
		return []*explain.Node{g.trace(&explain.Node{
			Kind:     explain.KindClass,
			Label:    desc.Label(),
			Emphasis: emphasis,
			Span:     n.Span,
		})}
	default:
		panic(fmt.Sprintf("narrative: unhandled node %T", n))
	}
}

// sequence explains the terms of a concatenation in order.
func (g *Generator) sequence(children []ast.Node) []*explain.Node {
	var out []*explain.Node
	var run codeRun
	flush := func() {
		if !run.empty() {
			out = append(out, g.trace(run.node()))
			run = codeRun{}
		}
	}

	for _, child := range children {
		if isCodeLeaf(child) {
			run.add(child)
			continue
		}
		flush()

		if look, q := asLookaround(child); look != nil {
			node := g.lookaround(look, q)
			if k := len(out); k > 0 && absorbable(out[k-1]) {
				prev := out[k-1]
				node.Label = prev.Label + " " + node.Label
				node.Span = prev.Span.Cover(node.Span)
				out = out[:k-1]
			}
			out = append(out, node)
			continue
		}

		out = append(out, g.nodes(child)...)
	}
	flush()
	return out
}

func (g *Generator) group(n *ast.Group) *explain.Node {
	node := &explain.Node{
		Kind:     explain.KindGroup,
		Emphasis: explain.EmphasisPlain,
		Span:     n.Span,
		Children: g.nodes(n.Body),
	}
	switch n.Kind {
	case ast.GroupCapturing:
		node.Label = "capture group " + strconv.Itoa(n.Index)
		node.Group = &explain.GroupAnnotation{Index: n.Index}
	case ast.GroupNamedCapturing:
		node.Label = "named capture group " + strconv.Itoa(n.Index) + " " + explain.Code(n.Name)
		node.Group = &explain.GroupAnnotation{Index: n.Index, Name: n.Name}
	default:
		node.Label = "non-capturing group"
	}
	return g.trace(node)
}

// lookaround explains an assertion. q is the quantifier wrapping it, if any.
func (g *Generator) lookaround(n *ast.Lookaround, q *ast.Quantified) *explain.Node {
	var label string
	switch {
	case n.Direction == ast.Ahead && n.Negated:
		label = "NOT followed by"
	case n.Direction == ast.Ahead:
		label = "followed by"
	case n.Negated:
		label = "NOT preceding"
	default:
		label = "preceding"
	}
	node := &explain.Node{
		Kind:     explain.KindLookaround,
		Label:    explain.Bold(label),
		Emphasis: explain.EmphasisPlain,
		Span:     n.Span,
		Children: g.nodes(n.Assertion),
	}
	if n.Direction == ast.Behind {
		node.Caveat = LookbehindCaveat
	}
	if q != nil {
		node.Quantifier = q.Bounds().Phrase()
		node.Span = q.Span
	}
	return g.trace(node)
}

// alternation builds the "Either ..." line. Each branch is inlined up to
// and including its first container; that container's children become
// the alternation's children. Anything after the container in the last
// branch follows the alternation as siblings; in other branches it is
// appended to the alternation's children.
func (g *Generator) alternation(n *ast.Alternation) []*explain.Node {
	node := &explain.Node{
		Kind:     explain.KindAlternation,
		Emphasis: explain.EmphasisPlain,
		Span:     n.Span,
	}
	var siblings []*explain.Node
	parts := make([]string, 0, len(n.Branches))

	for i, branch := range n.Branches {
		items := g.sequence(branch.Children)
		if len(items) == 0 {
			parts = append(parts, emptyBranch)
			continue
		}

		var inline []string
		rest := items[len(items):]
		for j, item := range items {
			if len(item.Children) == 0 {
				inline = append(inline, item.Line())
				continue
			}
			inline = append(inline, item.Label+quantifierSuffix(item))
			node.Children = append(node.Children, item.Children...)
			fold(node, item)
			rest = items[j+1:]
			break
		}
		parts = append(parts, strings.Join(inline, " "))

		if i == len(n.Branches)-1 {
			siblings = rest
		} else {
			node.Children = append(node.Children, rest...)
		}
	}

	node.Label = "Either " + explain.JoinList(parts, "or", false)
	g.trace(node)
	return append([]*explain.Node{node}, siblings...)
}

// fold keeps what the alternation node loses when a container's line is
// inlined into its label: the lookbehind caveat and the capture group.
func fold(alt, container *explain.Node) {
	if alt.Caveat == "" {
		alt.Caveat = container.Caveat
	}
	if container.Group == nil {
		return
	}
	if alt.Group == nil {
		alt.Group = container.Group
	}
	alt.Folded = append(alt.Folded, *container.Group)
}

func quantifierSuffix(n *explain.Node) string {
	if n.Quantifier == "" {
		return ""
	}
	return " (" + explain.Italic(n.Quantifier) + ")"
}

// asLookaround unwraps a possibly quantified lookaround.
func asLookaround(n ast.Node) (*ast.Lookaround, *ast.Quantified) {
	switch n := n.(type) {
	case *ast.Lookaround:
		return n, nil
	case *ast.Quantified:
		if look, ok := n.Child.(*ast.Lookaround); ok {
			return look, n
		}
	}
	return nil, nil
}

// isCodeLeaf reports whether n renders as plain code text that merges
// with its neighbours.
func isCodeLeaf(n ast.Node) bool {
	switch n.(type) {
	case *ast.Literal, *ast.Backreference, *ast.Fallback:
		return true
	}
	return false
}

// absorbable reports whether a lookaround may pull prev into its label.
func absorbable(prev *explain.Node) bool {
	if len(prev.Children) > 0 || prev.Quantifier != "" {
		return false
	}
	switch prev.Kind {
	case explain.KindLiteral, explain.KindBackreference, explain.KindFallback,
		explain.KindShorthand, explain.KindAnchor, explain.KindClass:
		return true
	}
	return false
}

// codeRun accumulates adjacent code leaves into one code span.
type codeRun struct {
	text string
	kind explain.NodeKind
	span types.Span
	n    int
}

func (r *codeRun) empty() bool {
	return r.n == 0
}

func (r *codeRun) add(n ast.Node) {
	var text string
	var kind explain.NodeKind
	switch n := n.(type) {
	case *ast.Literal:
		text, kind = n.Text, explain.KindLiteral
	case *ast.Backreference:
		text, kind = backreferenceText(n), explain.KindBackreference
	case *ast.Fallback:
		text, kind = n.Text, explain.KindFallback
	}
	if r.n == 0 {
		r.kind = kind
		r.span = n.NodeSpan()
	} else {
		if r.kind != kind {
			r.kind = explain.KindLiteral
		}
		r.span = r.span.Cover(n.NodeSpan())
	}
	r.text += text
	r.n++
}

func (r *codeRun) node() *explain.Node {
	return &explain.Node{
		Kind:     r.kind,
		Label:    explain.Code(r.text),
		Emphasis: explain.EmphasisCode,
		Span:     r.span,
	}
}

// backreferenceText names the referenced group without expanding it.
func backreferenceText(n *ast.Backreference) string {
	if n.Name != "" {
		return n.Name
	}
	return strconv.Itoa(n.Index)
}
