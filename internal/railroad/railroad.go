// Package railroad draws a parsed pattern as a text railroad diagram.
//
// The diagram is built from the syntax tree rather than the explanation
// tree, since alternation branches and quantified units keep their full
// structure there.
//
//	    +---+
//	o-+-| a |-+-o
//	  | +---+ |
//	  |       |
//	  | +---+ |
//	  +-| b |-+
//	    +---+
package railroad

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/regexplainer/regexplain/internal/ast"
	"github.com/regexplainer/regexplain/internal/quantifier"
)

// Element is one piece of a diagram.
type Element interface {
	layout() block
}

// Terminal is a boxed piece of pattern text.
type Terminal struct {
	Text string
}

// Sequence is a left-to-right run of elements.
type Sequence struct {
	Items []Element
}

// Choice stacks alternatives. The first branch is on the main line.
type Choice struct {
	Branches []Element
}

// Optional is an item with a bypass track below it.
type Optional struct {
	Item Element
}

// Repeat is an item with a return track below it. Label describes the
// bounds when they are not plain one-or-more.
type Repeat struct {
	Item  Element
	Label string
}

// Group frames an item under a label: a capture group or a lookaround.
type Group struct {
	Item  Element
	Label string
}

// Skip is an empty track.
type Skip struct{}

// Build converts a parsed pattern into a diagram element.
func Build(p *ast.Pattern) Element {
	b := builder{source: p.Source}
	return b.element(p.Body)
}

type builder struct {
	source string
}

func (b builder) text(n ast.Node) string {
	span := n.NodeSpan()
	return b.source[span.Start:span.End]
}

func (b builder) element(n ast.Node) Element {
	switch n := n.(type) {
	case nil:
		return Skip{}
	case *ast.Sequence:
		return b.sequence(n)
	case *ast.Alternation:
		choice := Choice{Branches: make([]Element, len(n.Branches))}
		for i, br := range n.Branches {
			choice.Branches[i] = b.sequence(br)
		}
		return choice
	case *ast.Group:
		body := b.element(n.Body)
		switch n.Kind {
		case ast.GroupNamedCapturing:
			return Group{Item: body, Label: n.Name}
		case ast.GroupCapturing:
			return Group{Item: body, Label: "group " + strconv.Itoa(n.Index)}
		}
		return body
	case *ast.Lookaround:
		return Group{Item: b.element(n.Assertion), Label: lookaroundLabel(n)}
	case *ast.Quantified:
		return quantified(b.element(n.Child), n)
	case *ast.Literal:
		return Terminal{Text: n.Text}
	case *ast.Fallback:
		return Terminal{Text: n.Text}
	default:
		return Terminal{Text: b.text(n)}
	}
}

func (b builder) sequence(s *ast.Sequence) Element {
	switch len(s.Children) {
	case 0:
		return Skip{}
	case 1:
		return b.element(s.Children[0])
	}
	seq := Sequence{Items: make([]Element, len(s.Children))}
	for i, c := range s.Children {
		seq.Items[i] = b.element(c)
	}
	return seq
}

func lookaroundLabel(n *ast.Lookaround) string {
	label := "?"
	if n.Direction == ast.Behind {
		label += "<"
	}
	if n.Negated {
		return label + "!"
	}
	return label + "="
}

// quantified maps bounds onto loops and bypasses: ? is a bypass, + a
// loop, * a bypassed loop. Counted bounds label the loop.
func quantified(item Element, q *ast.Quantified) Element {
	bounds := q.Bounds()
	if bounds == quantifier.Once {
		return item
	}
	if bounds == quantifier.Optional {
		return Optional{Item: item}
	}
	var label string
	if bounds.Min > 1 || !bounds.IsUnbounded() {
		label = quantifier.Describe(bounds)
	}
	if !q.Greedy {
		label = strings.TrimSpace(label + " lazy")
	}
	loop := Repeat{Item: item, Label: label}
	if bounds.Min == 0 {
		return Optional{Item: loop}
	}
	return loop
}

// Render writes the diagram with start and end markers on the main line.
func Render(w io.Writer, e Element) error {
	blk := e.layout()
	bw := bufio.NewWriter(w)
	for i, line := range blk.lines {
		if i == blk.row {
			line = "o-" + line + "-o"
		} else {
			line = "  " + line
		}
		bw.WriteString(strings.TrimRight(line, " "))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// String returns the rendered diagram.
func String(e Element) string {
	var b strings.Builder
	_ = Render(&b, e)
	return b.String()
}

// block is a laid-out element: lines of equal width with the track
// entering and leaving on lines[row].
type block struct {
	lines []string
	row   int
	width int
}

func width(s string) int {
	return utf8.RuneCountInString(s)
}

func newBlock(lines []string, row int) block {
	w := 0
	for _, l := range lines {
		w = max(w, width(l))
	}
	b := block{lines: lines, row: row, width: w}
	return b.widen(w)
}

// widen pads every line to w, extending the track with dashes.
func (b block) widen(w int) block {
	out := make([]string, len(b.lines))
	for i, l := range b.lines {
		fill := " "
		if i == b.row {
			fill = "-"
		}
		out[i] = l + strings.Repeat(fill, w-width(l))
	}
	return block{lines: out, row: b.row, width: w}
}

// pad adds blank lines above and below.
func (b block) pad(above, below int) block {
	blank := strings.Repeat(" ", b.width)
	lines := make([]string, 0, above+len(b.lines)+below)
	for range above {
		lines = append(lines, blank)
	}
	lines = append(lines, b.lines...)
	for range below {
		lines = append(lines, blank)
	}
	return block{lines: lines, row: b.row + above, width: b.width}
}

func (b block) below() int {
	return len(b.lines) - b.row - 1
}

func (t Terminal) layout() block {
	edge := "+" + strings.Repeat("-", width(t.Text)+2) + "+"
	return newBlock([]string{edge, "| " + t.Text + " |", edge}, 1)
}

func (Skip) layout() block {
	return newBlock([]string{"-"}, 0)
}

func (s Sequence) layout() block {
	if len(s.Items) == 0 {
		return Skip{}.layout()
	}
	blocks := make([]block, len(s.Items))
	above, below := 0, 0
	for i, item := range s.Items {
		blocks[i] = item.layout()
		above = max(above, blocks[i].row)
		below = max(below, blocks[i].below())
	}
	lines := make([]string, above+1+below)
	for i, blk := range blocks {
		blk = blk.pad(above-blk.row, below-blk.below())
		for j, l := range blk.lines {
			if i > 0 {
				if j == above {
					lines[j] += "--"
				} else {
					lines[j] += "  "
				}
			}
			lines[j] += l
		}
	}
	return newBlock(lines, above)
}

func (c Choice) layout() block {
	if len(c.Branches) == 0 {
		return Skip{}.layout()
	}
	blocks := make([]block, len(c.Branches))
	w := 0
	for i, br := range c.Branches {
		blocks[i] = br.layout()
		w = max(w, blocks[i].width)
	}

	var stacked []string
	var tracks []int
	for i, blk := range blocks {
		if i > 0 {
			stacked = append(stacked, strings.Repeat(" ", w))
		}
		tracks = append(tracks, len(stacked)+blk.row)
		stacked = append(stacked, blk.widen(w).lines...)
	}
	first, last := tracks[0], tracks[len(tracks)-1]

	lines := make([]string, len(stacked))
	next := 0
	for i, l := range stacked {
		switch {
		case next < len(tracks) && i == tracks[next]:
			lines[i] = "+-" + l + "-+"
			next++
		case i > first && i < last:
			lines[i] = "| " + l + " |"
		default:
			lines[i] = "  " + l + "  "
		}
	}
	return newBlock(lines, first)
}

func (o Optional) layout() block {
	return Choice{Branches: []Element{o.Item, Skip{}}}.layout()
}

func (r Repeat) layout() block {
	fill := "<"
	if r.Label != "" {
		fill += " " + r.Label + " "
	}
	inner := r.Item.layout()
	inner = inner.widen(max(inner.width, width(fill)))
	fill += strings.Repeat("-", inner.width-width(fill))

	lines := make([]string, 0, len(inner.lines)+1)
	for i, l := range inner.lines {
		switch {
		case i == inner.row:
			lines = append(lines, "+-"+l+"-+")
		case i > inner.row:
			lines = append(lines, "| "+l+" |")
		default:
			lines = append(lines, "  "+l+"  ")
		}
	}
	lines = append(lines, "+-"+fill+"-+")
	return newBlock(lines, inner.row)
}

func (g Group) layout() block {
	inner := g.Item.layout()
	inner = inner.widen(max(inner.width, width(g.Label)+1))

	lines := make([]string, 0, len(inner.lines)+2)
	lines = append(lines, "+-"+g.Label+strings.Repeat("-", inner.width-width(g.Label))+"-+")
	for i, l := range inner.lines {
		if i == inner.row {
			lines = append(lines, "--"+l+"--")
		} else {
			lines = append(lines, "| "+l+" |")
		}
	}
	lines = append(lines, "+"+strings.Repeat("-", inner.width+2)+"+")
	return newBlock(lines, inner.row+1)
}
