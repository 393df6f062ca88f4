package testutil

import (
	"fmt"
	"strings"
)

// NormalizeLines drops blank lines and trailing whitespace so that
// explanation lines compare equal regardless of how they were written.
func NormalizeLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimRight(line, " \t\r")
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// DiffLines renders want and got side by side, marking differing lines.
// Returns "" when they are equal.
func DiffLines(want, got []string) string {
	n := max(len(want), len(got))
	var b strings.Builder
	differ := false
	for i := range n {
		var w, g string
		if i < len(want) {
			w = want[i]
		}
		if i < len(got) {
			g = got[i]
		}
		mark := " "
		if w != g || i >= len(want) || i >= len(got) {
			mark = "!"
			differ = true
		}
		fmt.Fprintf(&b, "%s want: %s\n%s  got: %s\n", mark, w, mark, g)
	}
	if !differ {
		return ""
	}
	return b.String()
}
