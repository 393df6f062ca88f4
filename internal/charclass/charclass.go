// Package charclass normalizes bracketed character classes and bare
// shorthand escapes into canonical descriptions with display labels.
package charclass

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/regexplainer/regexplain/explain"
	"github.com/regexplainer/regexplain/internal/types"
)

// MemberKind discriminates class members.
type MemberKind uint8

const (
	MemberChar MemberKind = iota
	MemberRange
	MemberClass
)

func (k MemberKind) String() string {
	switch k {
	case MemberChar:
		return "char"
	case MemberRange:
		return "range"
	case MemberClass:
		return "class"
	default:
		return "unknown"
	}
}

// Member is one entry of a bracketed class, in source order.
//
// For MemberChar only From is set. For MemberRange From and To hold the
// endpoints. For MemberClass Class holds the shorthand kind and Property
// the \p{..} name when Class is KindProperty or KindNotProperty.
type Member struct {
	Kind     MemberKind
	From     rune
	To       rune
	FromText string // decoded display text of From
	ToText   string
	Class    Kind
	Property string
	Span     types.Span
}

// Char creates a single-character member.
func Char(r rune, span types.Span) Member {
	return Member{Kind: MemberChar, From: r, To: r, FromText: DisplayText(r), Span: span}
}

// Range creates a from-to member.
func Range(from, to rune, span types.Span) Member {
	return Member{
		Kind:     MemberRange,
		From:     from,
		To:       to,
		FromText: DisplayText(from),
		ToText:   DisplayText(to),
		Span:     span,
	}
}

// Class creates a shorthand member such as \w inside brackets.
func Class(kind Kind, span types.Span) Member {
	return Member{Kind: MemberClass, Class: kind, Span: span}
}

// PropertyClass creates a \p{name} or \P{name} member.
func PropertyClass(kind Kind, name string, span types.Span) Member {
	return Member{Kind: MemberClass, Class: kind, Property: name, Span: span}
}

// Label returns the display text of the member: a code span for
// characters and ranges, a bold friendly name for shorthands.
func (m Member) Label() string {
	switch m.Kind {
	case MemberRange:
		return explain.Code(m.FromText + "-" + m.ToText)
	case MemberClass:
		return explain.Bold(ShorthandName(m.Class, m.Property))
	default:
		return explain.Code(m.FromText)
	}
}

// ShorthandName returns the friendly name of kind, qualified by a
// property name for \p and \P.
func ShorthandName(kind Kind, property string) string {
	name := FriendlyName(kind)
	if property != "" {
		name += " " + property
	}
	return name
}

// RuneRange is an inclusive range of code points.
type RuneRange struct {
	Lo, Hi rune
}

// Description is the canonical form of a character class.
//
// When the whole class reduces to one named class, Shorthand is set and
// Members holds that single member. Negation of a shorthand with a
// complement (\w, \d, \s, \p) is folded into Shorthand; otherwise Negated
// is kept.
type Description struct {
	Negated   bool
	Shorthand Kind
	Property  string
	Members   []Member
}

// Normalize builds the canonical description of a bracketed class.
// Members keep their source order; ranges are never sorted, merged or
// deduplicated, so [a-za-z] lists a-z twice.
func Normalize(negated bool, members []Member) Description {
	if len(members) == 1 && members[0].Kind == MemberClass {
		m := members[0]
		kind := m.Class
		if negated {
			complement, ok := kind.Negate()
			if !ok {
				return Description{Negated: true, Members: []Member{m}}
			}
			kind = complement
		}
		return Description{Shorthand: kind, Property: m.Property, Members: []Member{m}}
	}
	out := make([]Member, len(members))
	copy(out, members)
	return Description{Negated: negated, Members: out}
}

// ForShorthand describes a bare shorthand escape or the dot. property is
// the \p{..} body and is empty for every other kind.
func ForShorthand(kind Kind, property string) Description {
	return Description{
		Shorthand: kind,
		Property:  property,
		Members:   []Member{{Kind: MemberClass, Class: kind, Property: property}},
	}
}

// IsShorthand reports whether the description collapsed to a named class.
func (d Description) IsShorthand() bool {
	return d.Shorthand != KindUnknown
}

// IsEmpty reports whether the class lists no members ([] or [^]).
func (d Description) IsEmpty() bool {
	return !d.IsShorthand() && len(d.Members) == 0
}

// MemberLabels returns the label of each member in source order.
func (d Description) MemberLabels() []string {
	labels := make([]string, len(d.Members))
	for i, m := range d.Members {
		labels[i] = m.Label()
	}
	return labels
}

// Label renders the description as narrative text.
//
//	[abc]    One of `a`, `b`, or `c`
//	[^0-9]   NOT one of `0-9`
//	[\w]     **WORD**
//	[]       nothing
//	[^]      anything
func (d Description) Label() string {
	if d.IsShorthand() {
		return explain.Bold(ShorthandName(d.Shorthand, d.Property))
	}
	if d.IsEmpty() {
		if d.Negated {
			return "anything"
		}
		return "nothing"
	}
	var b strings.Builder
	if d.Negated {
		b.WriteString("NOT one of ")
	} else {
		b.WriteString("One of ")
	}
	b.WriteString(explain.JoinList(d.MemberLabels(), "or", true))
	return b.String()
}

// Ranges returns the explicit code point ranges of the class in source
// order. Shorthand members contribute their ranges only when they denote
// a fixed set (digits, word characters, TAB, LF, CR); whitespace and
// property classes are omitted.
func (d Description) Ranges() []RuneRange {
	var out []RuneRange
	for _, m := range d.Members {
		switch m.Kind {
		case MemberChar:
			out = append(out, RuneRange{Lo: m.From, Hi: m.From})
		case MemberRange:
			out = append(out, RuneRange{Lo: m.From, Hi: m.To})
		case MemberClass:
			out = append(out, classRanges(m.Class)...)
		}
	}
	return out
}

func classRanges(k Kind) []RuneRange {
	if r, ok := k.ControlRune(); ok {
		return []RuneRange{{Lo: r, Hi: r}}
	}
	switch k {
	case KindDigit:
		return []RuneRange{{Lo: '0', Hi: '9'}}
	case KindWord:
		return []RuneRange{{Lo: '0', Hi: '9'}, {Lo: 'A', Hi: 'Z'}, {Lo: '_', Hi: '_'}, {Lo: 'a', Hi: 'z'}}
	}
	return nil
}

// Contains reports whether r falls inside one of the explicit ranges.
func (rr RuneRange) Contains(r rune) bool {
	return r >= rr.Lo && r <= rr.Hi
}

// DisplayText returns the text used to show r in a label. Printable
// characters are shown as themselves, controls by their escape.
func DisplayText(r rune) string {
	switch r {
	case 0:
		return `\0`
	case '\b':
		return `\b`
	case '\t':
		return `\t`
	case '\n':
		return `\n`
	case '\v':
		return `\v`
	case '\f':
		return `\f`
	case '\r':
		return `\r`
	}
	if unicode.IsPrint(r) || r == ' ' {
		return string(r)
	}
	if r <= 0xFF {
		return fmt.Sprintf(`\x%02X`, r)
	}
	if r <= 0xFFFF {
		return fmt.Sprintf(`\u%04X`, r)
	}
	return fmt.Sprintf(`\u{%X}`, r)
}
