// Package quantifier turns repetition bounds into short phrases.
package quantifier

import "strconv"

// Unbounded marks a quantifier with no upper limit.
const Unbounded = -1

// Bounds is a (min, max) repetition pair. Max is Unbounded for
// *, + and {m,}.
type Bounds struct {
	Min int
	Max int
}

// Common bounds for the single-character quantifiers.
var (
	Optional   = Bounds{Min: 0, Max: 1}
	ZeroOrMore = Bounds{Min: 0, Max: Unbounded}
	OneOrMore  = Bounds{Min: 1, Max: Unbounded}
	Once       = Bounds{Min: 1, Max: 1}
)

// IsUnbounded reports whether b has no upper limit.
func (b Bounds) IsUnbounded() bool {
	return b.Max == Unbounded
}

// Valid reports whether the bounds are well ordered.
func (b Bounds) Valid() bool {
	return b.Min >= 0 && (b.IsUnbounded() || b.Max >= b.Min)
}

// Describe returns the phrase for b, or "" for exactly-once.
//
//	{0,1}  optional
//	{0,}   >= 0x
//	{m,}   >= Mx
//	{m,n}  M-Nx
//	{m}    Mx
//
// Laziness does not change the phrase.
func Describe(b Bounds) string {
	switch {
	case b == Once:
		return ""
	case b == Optional:
		return "optional"
	case b.IsUnbounded():
		return ">= " + strconv.Itoa(b.Min) + "x"
	case b.Min == b.Max:
		return strconv.Itoa(b.Min) + "x"
	default:
		return strconv.Itoa(b.Min) + "-" + strconv.Itoa(b.Max) + "x"
	}
}

// Phrase returns Describe(b).
func (b Bounds) Phrase() string {
	return Describe(b)
}

// Phrase is a convenience wrapper around Describe.
func Phrase(min, max int) string {
	return Describe(Bounds{Min: min, Max: max})
}

// Syntax renders b the way it is usually written in a pattern.
func (b Bounds) Syntax() string {
	switch b {
	case Optional:
		return "?"
	case ZeroOrMore:
		return "*"
	case OneOrMore:
		return "+"
	}
	if b.IsUnbounded() {
		return "{" + strconv.Itoa(b.Min) + ",}"
	}
	if b.Min == b.Max {
		return "{" + strconv.Itoa(b.Min) + "}"
	}
	return "{" + strconv.Itoa(b.Min) + "," + strconv.Itoa(b.Max) + "}"
}

func (b Bounds) String() string {
	return b.Syntax()
}
