package charclass

import (
	"testing"

	"github.com/regexplainer/regexplain/internal/testutil"
	"github.com/regexplainer/regexplain/internal/types"
)

var noSpan = types.Synthetic

func TestNormalizeKeepsSourceOrder(t *testing.T) {
	members := []Member{
		Range('a', 'z', noSpan),
		Range('a', 'z', noSpan),
	}
	d := Normalize(false, members)
	testutil.Len(t, d.Members, 2, "duplicate ranges are kept")
	testutil.Equal(t, "One of `a-z`, or `a-z`", d.Label(), "label")
	testutil.SliceEqual(t, []RuneRange{{'a', 'z'}, {'a', 'z'}}, d.Ranges(), "ranges")
}

func TestNormalizeCopiesMembers(t *testing.T) {
	members := []Member{Char('a', noSpan), Char('b', noSpan)}
	d := Normalize(false, members)
	members[0] = Char('x', noSpan)
	testutil.Equal(t, 'a', d.Members[0].From, "description must not alias input")
}

func TestDescriptionLabel(t *testing.T) {
	tests := []struct {
		name    string
		negated bool
		members []Member
		want    string
	}{
		{"single char", false, []Member{Char('a', noSpan)}, "One of `a`"},
		{"three chars", false, []Member{Char('a', noSpan), Char('b', noSpan), Char('c', noSpan)}, "One of `a`, `b`, or `c`"},
		{"negated range", true, []Member{Range('0', '9', noSpan)}, "NOT one of `0-9`"},
		{"shorthands", false, []Member{Class(KindWord, noSpan), Class(KindWhitespace, noSpan)}, "One of **WORD**, or **WS**"},
		{"empty", false, nil, "nothing"},
		{"negated empty", true, nil, "anything"},
		{"single shorthand", false, []Member{Class(KindDigit, noSpan)}, "**0-9**"},
		{"negated shorthand folds", true, []Member{Class(KindWord, noSpan)}, "**NOT WORD**"},
		{"double negation folds", true, []Member{Class(KindNotDigit, noSpan)}, "**0-9**"},
		{"negated control", true, []Member{Class(KindTab, noSpan)}, "NOT one of **TAB**"},
		{"escaped in code", false, []Member{Char('<', noSpan), Char('`', noSpan)}, "One of `\\<`, or `\\``"},
		{"property", false, []Member{PropertyClass(KindProperty, "L", noSpan), Char('_', noSpan)}, "One of **PROPERTY L**, or `_`"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.negated, tt.members).Label()
			testutil.Equal(t, tt.want, got, "label")
		})
	}
}

func TestForShorthand(t *testing.T) {
	d := ForShorthand(KindAny, "")
	testutil.True(t, d.IsShorthand(), "ANY is a shorthand")
	testutil.False(t, d.IsEmpty(), "shorthand is not empty")
	testutil.Equal(t, "**ANY**", d.Label(), "label")

	p := ForShorthand(KindProperty, "L")
	testutil.Equal(t, "L", p.Property, "property kept")
	testutil.Equal(t, "**"+ShorthandName(KindProperty, "L")+"**", p.Label(), "property label")
}

func TestRangesExpandFixedShorthands(t *testing.T) {
	d := Normalize(false, []Member{Class(KindDigit, noSpan), Class(KindLF, noSpan), Class(KindWhitespace, noSpan)})
	testutil.SliceEqual(t, []RuneRange{{'0', '9'}, {'\n', '\n'}}, d.Ranges(), "ranges")
	testutil.True(t, d.Ranges()[0].Contains('5'), "5 in 0-9")
	testutil.False(t, d.Ranges()[1].Contains('a'), "a not in LF")
}

func TestDisplayText(t *testing.T) {
	tests := []struct {
		in   rune
		want string
	}{
		{'a', "a"},
		{' ', " "},
		{0, `\0`},
		{'\b', `\b`},
		{'\t', `\t`},
		{0x01, `\x01`},
		{0x200B, `\u200B`},
		{0xE0001, `\u{E0001}`},
		{'é', "é"},
	}
	for _, tt := range tests {
		testutil.Equal(t, tt.want, DisplayText(tt.in), "DisplayText(%U)", tt.in)
	}
}
