package explain

import "strings"

// codeEscaper escapes characters that editors' markdown renderers
// would otherwise interpret inside a label.
var codeEscaper = strings.NewReplacer("`", "\\`", "<", "\\<", ">", "\\>")

// Code wraps literal pattern text in a backticked code span.
func Code(text string) string {
	return "`" + codeEscaper.Replace(text) + "`"
}

// Bold wraps a label in double-asterisk emphasis.
func Bold(text string) string {
	return "**" + text + "**"
}

// Italic wraps a label in underscore emphasis.
func Italic(text string) string {
	return "_" + text + "_"
}

// JoinList joins items with list grammar: "A or B", "A, B, or C".
// With serialComma set, two items are also separated by a comma ("A, or B").
func JoinList(items []string, conj string, serialComma bool) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		if serialComma {
			return items[0] + ", " + conj + " " + items[1]
		}
		return items[0] + " " + conj + " " + items[1]
	}
	last := len(items) - 1
	return strings.Join(items[:last], ", ") + ", " + conj + " " + items[last]
}
