package ast

import (
	"strconv"
	"strings"

	"github.com/regexplainer/regexplain/internal/charclass"
)

// Dump renders n as a compact s-expression, for debugging and tests.
//
//	a(b|c)+  =>  (seq "a" (q 1,inf (group 1 (alt "b" "c"))))
func Dump(n Node) string {
	var b strings.Builder
	dump(&b, n)
	return b.String()
}

func dump(b *strings.Builder, n Node) {
	switch n := n.(type) {
	case nil:
		b.WriteString("nil")
	case *Sequence:
		b.WriteString("(seq")
		for _, c := range n.Children {
			b.WriteByte(' ')
			dump(b, c)
		}
		b.WriteByte(')')
	case *Literal:
		b.WriteString(strconv.Quote(n.Text))
	case *CharClass:
		b.WriteByte('[')
		if n.Negated {
			b.WriteByte('^')
		}
		for i, m := range n.Members {
			if i > 0 {
				b.WriteByte(' ')
			}
			switch m.Kind {
			case charclass.MemberRange:
				b.WriteString(m.FromText + "-" + m.ToText)
			case charclass.MemberClass:
				b.WriteString(charclass.ShorthandName(m.Class, m.Property))
			default:
				b.WriteString(m.FromText)
			}
		}
		b.WriteByte(']')
	case *Shorthand:
		b.WriteString(charclass.ShorthandName(n.Kind, n.Property))
	case *Anchor:
		if n.Kind == AnchorEnd {
			b.WriteByte('$')
		} else {
			b.WriteByte('^')
		}
	case *Group:
		switch n.Kind {
		case GroupNamedCapturing:
			b.WriteString("(named " + strconv.Itoa(n.Index) + " " + n.Name + " ")
		case GroupNonCapturing:
			b.WriteString("(noncap ")
		default:
			b.WriteString("(group " + strconv.Itoa(n.Index) + " ")
		}
		dump(b, n.Body)
		b.WriteByte(')')
	case *Alternation:
		b.WriteString("(alt")
		for _, br := range n.Branches {
			b.WriteByte(' ')
			// Single-element branches print without their sequence wrapper.
			if len(br.Children) == 1 {
				dump(b, br.Children[0])
			} else {
				dump(b, br)
			}
		}
		b.WriteByte(')')
	case *Quantified:
		b.WriteString("(q")
		if !n.Greedy {
			b.WriteByte('?')
		}
		b.WriteString(" " + strconv.Itoa(n.Min) + ",")
		if n.Max == Unbounded {
			b.WriteString("inf")
		} else {
			b.WriteString(strconv.Itoa(n.Max))
		}
		b.WriteByte(' ')
		dump(b, n.Child)
		b.WriteByte(')')
	case *Lookaround:
		b.WriteByte('(')
		if n.Negated {
			b.WriteByte('!')
		}
		b.WriteString(n.Direction.String() + " ")
		dump(b, n.Assertion)
		b.WriteByte(')')
	case *Backreference:
		if n.Name != "" {
			b.WriteString(`\k<` + n.Name + ">")
		} else {
			b.WriteString(`\` + strconv.Itoa(n.Index))
		}
	case *Fallback:
		b.WriteString("(fallback " + strconv.Quote(n.Text) + ")")
	}
}
