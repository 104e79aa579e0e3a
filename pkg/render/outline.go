package render

import (
	"strings"

	"github.com/kraitsura/teal/pkg/tree"
)

// Outline renders a tree with box-drawing connectors, one task per line.
// Completed tasks get a check mark.
func Outline(lines []tree.Line) string {
	var sb strings.Builder
	for i, l := range lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		desc := l.Task.Description
		if l.IsRoot() {
			desc = rootStyle.Render(desc)
		}
		if l.Prefix != "" {
			sb.WriteString(prefixStyle.Render(l.Prefix))
			sb.WriteByte(' ')
		}
		sb.WriteString(desc)
		if l.Task.Complete {
			sb.WriteString(" " + checkStyle.Render("✓"))
		}
	}
	return sb.String()
}

// Outlines renders several trees separated by blank lines.
func Outlines(trees []*tree.Tree) string {
	parts := make([]string, 0, len(trees))
	for _, t := range trees {
		parts = append(parts, Outline(tree.Lines(t)))
	}
	return strings.Join(parts, "\n\n")
}
