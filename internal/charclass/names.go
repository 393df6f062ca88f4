package charclass

import "fmt"

// Kind identifies a named character class, boundary or anchor.
type Kind int

const (
	KindUnknown Kind = iota
	KindWord
	KindNotWord
	KindDigit
	KindNotDigit
	KindWhitespace
	KindNotWhitespace
	KindTab
	KindLF
	KindCR
	KindAny
	KindWordBoundary
	KindNotWordBoundary
	KindStart
	KindEnd
	KindProperty
	KindNotProperty
)

// friendlyNames maps each kind to the label shown in explanations.
var friendlyNames = map[Kind]string{
	KindWord:            "WORD",
	KindNotWord:         "NOT WORD",
	KindDigit:           "0-9",
	KindNotDigit:        "NOT 0-9",
	KindWhitespace:      "WS",
	KindNotWhitespace:   "NOT WS",
	KindTab:             "TAB",
	KindLF:              "LF",
	KindCR:              "CR",
	KindAny:             "ANY",
	KindWordBoundary:    "WB",
	KindNotWordBoundary: "NOT WB",
	KindStart:           "START",
	KindEnd:             "END",
	KindProperty:        "PROPERTY",
	KindNotProperty:     "NOT PROPERTY",
}

// FriendlyName returns the display label for k.
func FriendlyName(k Kind) string {
	if name, ok := friendlyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) String() string {
	return FriendlyName(k)
}

// Negate returns the complementary kind for classes that have one.
func (k Kind) Negate() (Kind, bool) {
	switch k {
	case KindWord:
		return KindNotWord, true
	case KindNotWord:
		return KindWord, true
	case KindDigit:
		return KindNotDigit, true
	case KindNotDigit:
		return KindDigit, true
	case KindWhitespace:
		return KindNotWhitespace, true
	case KindNotWhitespace:
		return KindWhitespace, true
	case KindWordBoundary:
		return KindNotWordBoundary, true
	case KindNotWordBoundary:
		return KindWordBoundary, true
	case KindProperty:
		return KindNotProperty, true
	case KindNotProperty:
		return KindProperty, true
	}
	return k, false
}

// IsNegated reports whether k names the complement of another class.
func (k Kind) IsNegated() bool {
	switch k {
	case KindNotWord, KindNotDigit, KindNotWhitespace, KindNotWordBoundary, KindNotProperty:
		return true
	}
	return false
}

// ControlRune returns the character matched by TAB, LF and CR.
func (k Kind) ControlRune() (rune, bool) {
	switch k {
	case KindTab:
		return '\t', true
	case KindLF:
		return '\n', true
	case KindCR:
		return '\r', true
	}
	return 0, false
}

// ForEscape returns the kind for a single-letter class escape
// (\w \W \d \D \s \S \t \n \r \b \B).
func ForEscape(c rune) (Kind, bool) {
	switch c {
	case 'w':
		return KindWord, true
	case 'W':
		return KindNotWord, true
	case 'd':
		return KindDigit, true
	case 'D':
		return KindNotDigit, true
	case 's':
		return KindWhitespace, true
	case 'S':
		return KindNotWhitespace, true
	case 't':
		return KindTab, true
	case 'n':
		return KindLF, true
	case 'r':
		return KindCR, true
	case 'b':
		return KindWordBoundary, true
	case 'B':
		return KindNotWordBoundary, true
	}
	return KindUnknown, false
}
