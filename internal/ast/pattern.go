package ast

import (
	"slices"

	"github.com/regexplainer/regexplain/internal/types"
)

// Pattern is a parsed regular expression. It is immutable once returned
// by the parser.
type Pattern struct {
	Source string
	Flags  types.Flags
	// Body is the root node. A root alternation is the Body itself, never
	// wrapped in a single-child sequence.
	Body        Node
	Groups      []GroupInfo
	Diagnostics []types.SpanDiagnostic
}

// GroupInfo records a capturing group in order of its opening parenthesis.
type GroupInfo struct {
	Index int
	Name  string
	Span  types.Span
}

// HasErrors reports whether any diagnostic is Error severity or worse.
func (p *Pattern) HasErrors() bool {
	return slices.ContainsFunc(p.Diagnostics, func(d types.SpanDiagnostic) bool {
		return d.Severity.AtLeast(types.SeverityError)
	})
}

// GroupByName returns the first capturing group with the given name.
func (p *Pattern) GroupByName(name string) (GroupInfo, bool) {
	for _, g := range p.Groups {
		if g.Name == name {
			return g, true
		}
	}
	return GroupInfo{}, false
}

// GroupNames returns the names of the named capturing groups in order.
func (p *Pattern) GroupNames() []string {
	var names []string
	for _, g := range p.Groups {
		if g.Name != "" {
			names = append(names, g.Name)
		}
	}
	return names
}

// CaptureCount returns the number of capturing groups.
func (p *Pattern) CaptureCount() int {
	return len(p.Groups)
}

// Walk visits n and its descendants depth-first in source order. The
// walk skips a node's children when fn returns false.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	switch n := n.(type) {
	case *Sequence:
		for _, c := range n.Children {
			Walk(c, fn)
		}
	case *Alternation:
		for _, b := range n.Branches {
			Walk(b, fn)
		}
	case *Group:
		Walk(n.Body, fn)
	case *Quantified:
		Walk(n.Child, fn)
	case *Lookaround:
		Walk(n.Assertion, fn)
	}
}
