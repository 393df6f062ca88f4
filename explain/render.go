package explain

import (
	"bufio"
	"io"
	"strings"
)

// RenderOptions controls text and markdown rendering.
type RenderOptions struct {
	// Caveats adds each node's caveat as an indented italic line.
	Caveats bool
	// Header starts the output with the pattern literal and its flags.
	// It needs a root node.
	Header bool
}

// RenderText writes the tree in the fixture layout: one line per node,
// two spaces of indentation per level.
func RenderText(w io.Writer, root *Node, opts RenderOptions) error {
	return render(w, root, opts, "")
}

// RenderMarkdown writes the tree as nested markdown bullets.
func RenderMarkdown(w io.Writer, root *Node, opts RenderOptions) error {
	return render(w, root, opts, "- ")
}

func render(w io.Writer, root *Node, opts RenderOptions, bullet string) error {
	bw := bufio.NewWriter(w)
	if opts.Header && root.Kind == KindRoot {
		bw.WriteString(Header(root))
		bw.WriteString("\n")
		if bullet != "" {
			bw.WriteString("\n")
		}
	}
	root.each(func(n *Node, depth int) {
		indent := strings.Repeat("  ", depth)
		bw.WriteString(indent + bullet + n.Line() + "\n")
		if opts.Caveats && n.Caveat != "" {
			bw.WriteString(indent + "  " + bullet + Italic(n.Caveat) + "\n")
		}
	})
	return bw.Flush()
}

// Header describes the pattern literal held by a root node, with the
// long names of any active flags.
//
//	/a.b/gm (flags: global, multiline)
func Header(root *Node) string {
	names := root.Flags.Names()
	if len(names) == 0 {
		return root.Label
	}
	return root.Label + " (flags: " + strings.Join(names, ", ") + ")"
}

// RenderText writes the explanation tree. An invalid explanation
// renders its error instead.
func (e *Explanation) RenderText(w io.Writer, opts RenderOptions) error {
	if !e.IsValid || e.Root == nil {
		_, err := io.WriteString(w, e.Literal()+": "+e.Error+"\n")
		return err
	}
	return RenderText(w, e.Root, opts)
}

// RenderMarkdown writes the explanation tree as markdown bullets.
func (e *Explanation) RenderMarkdown(w io.Writer, opts RenderOptions) error {
	if !e.IsValid || e.Root == nil {
		_, err := io.WriteString(w, Code(e.Literal())+": "+e.Error+"\n")
		return err
	}
	return RenderMarkdown(w, e.Root, opts)
}
