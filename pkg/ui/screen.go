package ui

import "github.com/kraitsura/teal/pkg/tree"

// screen is the closed set of things the UI can be showing. Only the types
// in this file implement it.
type screen interface {
	isScreen()
}

// listMode is the sub-mode of the list screen.
type listMode int

const (
	modeNormal listMode = iota
	modeCreate
	modeSearch
)

// listScreen shows root tasks, or every task ranked by the search term.
type listScreen struct {
	mode listMode
}

// subtreeScreen shows one task and everything below it.
type subtreeScreen struct {
	taskID int64
	lines  []tree.Line
	cursor int
}

// quitScreen ends the program.
type quitScreen struct{}

func (listScreen) isScreen()    {}
func (subtreeScreen) isScreen() {}
func (quitScreen) isScreen()    {}

// modeLabel is the text of the mode line for s.
func modeLabel(s screen, searching bool) string {
	switch s := s.(type) {
	case listScreen:
		switch s.mode {
		case modeCreate:
			return "Append"
		case modeSearch:
			return "Search"
		}
		if searching {
			return "List (searching)"
		}
		return "List"
	case subtreeScreen:
		return "Task"
	}
	return ""
}
