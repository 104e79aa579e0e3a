package ui

// Layout constraints (in characters).
const (
	// MinBoxWidth is the narrowest the task box is drawn.
	MinBoxWidth = 20

	// StatusLines is the height of the mode line plus the command palette.
	StatusLines = 2

	// InputWidth is the width of the new-task modal, border included.
	InputWidth = 42

	// rowIndent is the blank column before each list row.
	rowIndent = " "
)

// listHeight is the number of task rows that fit inside the task box.
func listHeight(screenHeight int) int {
	h := screenHeight - StatusLines - 2
	if h < 1 {
		return 1
	}
	return h
}

// scrollOffset keeps cursor inside a window of size rows starting at offset.
func scrollOffset(offset, cursor, size int) int {
	if cursor < 0 {
		return 0
	}
	if cursor < offset {
		return cursor
	}
	if cursor >= offset+size {
		return cursor - size + 1
	}
	return offset
}
