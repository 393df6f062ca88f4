// Package ast defines the syntax tree of a parsed regular expression.
package ast

import (
	"github.com/regexplainer/regexplain/internal/charclass"
	"github.com/regexplainer/regexplain/internal/quantifier"
	"github.com/regexplainer/regexplain/internal/types"
)

// Unbounded is the Max of a quantifier with no upper limit.
const Unbounded = quantifier.Unbounded

// Node is one syntactic unit of a pattern.
type Node interface {
	NodeSpan() types.Span
	node()
}

// NodeBase provides the Span field common to all nodes.
type NodeBase struct {
	Span types.Span
}

func (n *NodeBase) NodeSpan() types.Span { return n.Span }
func (*NodeBase) node()                  {}

// Sequence is a concatenation of terms.
type Sequence struct {
	NodeBase
	Children []Node
}

// Literal is a run of consecutive unquantified literal characters.
type Literal struct {
	NodeBase
	Text string
}

// CharClass is a bracketed character class.
type CharClass struct {
	NodeBase
	Negated bool
	Members []charclass.Member
}

// Description returns the normalized form of the class.
func (c *CharClass) Description() charclass.Description {
	return charclass.Normalize(c.Negated, c.Members)
}

// Shorthand is a bare class escape (\w, \d, \s, \t, \n, \r, \p{..}),
// the dot, or a word boundary.
type Shorthand struct {
	NodeBase
	Kind     charclass.Kind
	Property string
}

// AnchorKind distinguishes ^ from $.
type AnchorKind uint8

const (
	AnchorStart AnchorKind = iota
	AnchorEnd
)

// ClassKind returns the friendly-name kind of the anchor.
func (k AnchorKind) ClassKind() charclass.Kind {
	if k == AnchorEnd {
		return charclass.KindEnd
	}
	return charclass.KindStart
}

// Anchor is ^ or $.
type Anchor struct {
	NodeBase
	Kind AnchorKind
}

// GroupKind distinguishes the group forms.
type GroupKind uint8

const (
	GroupCapturing GroupKind = iota
	GroupNamedCapturing
	GroupNonCapturing
)

func (k GroupKind) String() string {
	switch k {
	case GroupCapturing:
		return "capturing"
	case GroupNamedCapturing:
		return "named-capturing"
	case GroupNonCapturing:
		return "non-capturing"
	default:
		return "unknown"
	}
}

// Group is a parenthesized subpattern. Index is the 1-based capture
// number and is 0 for non-capturing groups.
type Group struct {
	NodeBase
	Kind  GroupKind
	Index int
	Name  string
	Body  Node
}

// Captures reports whether the group consumes a capture index.
func (g *Group) Captures() bool {
	return g.Kind != GroupNonCapturing
}

// Alternation is two or more branches separated by '|'.
type Alternation struct {
	NodeBase
	Branches []*Sequence
}

// Quantified applies repetition bounds to a single preceding unit.
type Quantified struct {
	NodeBase
	Min    int
	Max    int
	Greedy bool
	Child  Node
}

// Bounds returns the repetition bounds.
func (q *Quantified) Bounds() quantifier.Bounds {
	return quantifier.Bounds{Min: q.Min, Max: q.Max}
}

// Direction distinguishes lookahead from lookbehind.
type Direction uint8

const (
	Ahead Direction = iota
	Behind
)

func (d Direction) String() string {
	if d == Behind {
		return "behind"
	}
	return "ahead"
}

// Lookaround is a zero-width assertion.
type Lookaround struct {
	NodeBase
	Direction Direction
	Negated   bool
	Assertion Node
}

// Backreference refers to an earlier capture by number or name.
// For named references Index is resolved after parsing and is 0 when
// no group has that name.
type Backreference struct {
	NodeBase
	Index int
	Name  string
}

// Fallback is text that could not be interpreted as the syntax it
// resembles and is explained literally. Code names the diagnostic that
// explains why.
type Fallback struct {
	NodeBase
	Text string
	Code string
}
