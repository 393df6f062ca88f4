package explain

import "strings"

// NodeKind identifies what an explanation node describes.
type NodeKind string

const (
	KindRoot          NodeKind = "root"
	KindLiteral       NodeKind = "literal"
	KindShorthand     NodeKind = "shorthand"
	KindAnchor        NodeKind = "anchor"
	KindClass         NodeKind = "class"
	KindGroup         NodeKind = "group"
	KindAlternation   NodeKind = "alternation"
	KindLookaround    NodeKind = "lookaround"
	KindBackreference NodeKind = "backreference"
	KindFallback      NodeKind = "fallback"
)

// Emphasis is the dominant markup of a node's label.
type Emphasis string

const (
	EmphasisPlain Emphasis = "plain"
	EmphasisCode  Emphasis = "code"
	EmphasisBold  Emphasis = "bold"
)

// GroupAnnotation identifies the capture group a node describes.
type GroupAnnotation struct {
	Index int    `json:"index" yaml:"index"`
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
}

// Node is one line of an explanation tree.
//
// The root node has Kind KindRoot, carries the pattern literal as its
// Label and the pattern flags, and is not itself rendered; its children
// are the top-level lines.
type Node struct {
	Kind       NodeKind         `json:"kind" yaml:"kind"`
	Label      string           `json:"label" yaml:"label"`
	Emphasis   Emphasis         `json:"emphasis" yaml:"emphasis"`
	Quantifier string           `json:"quantifier,omitempty" yaml:"quantifier,omitempty"`
	Group      *GroupAnnotation `json:"group,omitempty" yaml:"group,omitempty"`
	Caveat     string           `json:"caveat,omitempty" yaml:"caveat,omitempty"`
	Flags      Flags            `json:"flags,omitempty" yaml:"flags,omitempty"`
	Span       Span             `json:"span" yaml:"span"`
	Children   []*Node          `json:"children,omitempty" yaml:"children,omitempty"`

	// Folded lists the capture groups whose lines an alternation inlined
	// into its label, in source order. Group is the first of them.
	Folded []GroupAnnotation `json:"folded_groups,omitempty" yaml:"folded_groups,omitempty"`
}

// Line returns the node's text as it appears in the fixture layout:
// the label, then the italic quantifier phrase in parentheses, then a
// colon when the node has children.
func (n *Node) Line() string {
	var b strings.Builder
	b.WriteString(n.Label)
	if n.Quantifier != "" {
		b.WriteString(" (")
		b.WriteString(Italic(n.Quantifier))
		b.WriteByte(')')
	}
	if len(n.Children) > 0 {
		b.WriteByte(':')
	}
	return b.String()
}

// Walk visits n and its descendants depth-first. Depth 0 is n itself.
// Children are skipped when fn returns false.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int) bool, depth int) {
	if !fn(n, depth) {
		return
	}
	for _, c := range n.Children {
		c.walk(fn, depth+1)
	}
}

// Lines returns the indented fixture lines for the tree below n. When n
// is a root node its own line is omitted and its children start at
// depth 0.
func (n *Node) Lines() []string {
	var lines []string
	visit := func(node *Node, depth int) {
		lines = append(lines, strings.Repeat("  ", depth)+node.Line())
	}
	n.each(visit)
	return lines
}

// each calls visit for every rendered node with its display depth.
func (n *Node) each(visit func(*Node, int)) {
	offset := 0
	if n.Kind == KindRoot {
		offset = -1
	}
	n.Walk(func(node *Node, depth int) bool {
		if node.Kind == KindRoot && depth == 0 {
			return true
		}
		visit(node, depth+offset)
		return true
	})
}

// String returns the fixture layout joined by newlines.
func (n *Node) String() string {
	return strings.Join(n.Lines(), "\n")
}

// HasCaveats reports whether any node in the tree carries a caveat.
func (n *Node) HasCaveats() bool {
	found := false
	n.Walk(func(node *Node, _ int) bool {
		if node.Caveat != "" {
			found = true
		}
		return !found
	})
	return found
}

// Groups returns the capture groups annotated anywhere in the tree,
// including groups folded into alternation labels, in depth-first order.
func (n *Node) Groups() []GroupAnnotation {
	var out []GroupAnnotation
	n.Walk(func(node *Node, _ int) bool {
		switch {
		case len(node.Folded) > 0:
			out = append(out, node.Folded...)
		case node.Group != nil:
			out = append(out, *node.Group)
		}
		return true
	})
	return out
}

// Caveats returns every caveat in the tree in depth-first order.
func (n *Node) Caveats() []string {
	var out []string
	n.Walk(func(node *Node, _ int) bool {
		if node.Caveat != "" {
			out = append(out, node.Caveat)
		}
		return true
	})
	return out
}
