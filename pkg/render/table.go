package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"

	"github.com/kraitsura/teal/pkg/tree"
)

// Column headers of the task table.
var Headers = []string{"Number", "Task", "Done?"}

// Row returns the table cells for one element.
func Row(e tree.Element) []string {
	return []string{e.Number(), e.Task.Description, string(e.Task.Status())}
}

// Table renders elements as a bordered table with a header row.
func Table(elems []tree.Element) string {
	rows := make([][]string, 0, len(elems))
	for _, e := range elems {
		rows = append(rows, Row(e))
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(Headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 2 && row >= 0 && row < len(elems):
				if elems[row].Task.Complete {
					return doneStyle
				}
				return notDoneStyle
			}
			return cellStyle
		})
	return t.String()
}

// Raw renders elements one per line with tab-separated cells, no header and
// no styling, for scripts.
func Raw(elems []tree.Element) string {
	lines := make([]string, 0, len(elems))
	for _, e := range elems {
		lines = append(lines, ansi.Strip(strings.Join(Row(e), "\t")))
	}
	return strings.Join(lines, "\n")
}

// Elements renders raw or pretty output.
func Elements(elems []tree.Element, raw bool) string {
	if raw {
		return Raw(elems)
	}
	return Table(elems)
}
