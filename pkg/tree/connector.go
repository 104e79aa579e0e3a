package tree

import "strings"

// Box-drawing pieces used for outline prefixes.
const (
	GlyphBranch = "├─"
	GlyphCorner = "└─"

	rootMargin = "   "
	railSlot   = "│    "
	blankSlot  = "     "
)

// Transition describes how a neighbouring row sits relative to the current one.
type Transition int

const (
	// EndOfList means there is no neighbouring row.
	EndOfList Transition = iota
	// Indented means the neighbour is deeper.
	Indented
	// Equal means the neighbour has the same depth.
	Equal
	// Dedented means the neighbour is shallower.
	Dedented
)

func (t Transition) String() string {
	switch t {
	case EndOfList:
		return "end-of-list"
	case Indented:
		return "indented"
	case Equal:
		return "equal"
	case Dedented:
		return "dedented"
	}
	return "unknown"
}

// Classify compares a row with its neighbour; a nil neighbour is EndOfList.
func Classify(row Element, neighbour *Element) Transition {
	switch {
	case neighbour == nil:
		return EndOfList
	case neighbour.Depth == row.Depth:
		return Equal
	case neighbour.Depth > row.Depth:
		return Indented
	default:
		return Dedented
	}
}

// Glyph picks the connector for a row from the rows around it.
func Glyph(above, below Transition, isLast bool) string {
	switch {
	case above == EndOfList:
		return ""
	case below == Indented && !isLast:
		return GlyphBranch
	case below == EndOfList, below == Indented, below == Dedented:
		return GlyphCorner
	default:
		return GlyphBranch
	}
}

// OpenDepths holds the depths that still have siblings further down, and so
// need a vertical rail on the rows in between.
type OpenDepths map[int]bool

// Advance returns the set that applies to row e.
func (o OpenDepths) Advance(e Element) OpenDepths {
	next := make(OpenDepths, len(o)+1)
	for d := range o {
		next[d] = true
	}
	if e.IsLastSibling {
		delete(next, e.Depth)
	} else {
		next[e.Depth] = true
	}
	return next
}

// Prefix renders the indentation and glyph for a row at the given depth.
func Prefix(depth int, glyph string, open OpenDepths) string {
	if depth == 0 {
		return glyph
	}
	var sb strings.Builder
	sb.WriteString(rootMargin)
	for level := 1; level < depth; level++ {
		if open[level] {
			sb.WriteString(railSlot)
		} else {
			sb.WriteString(blankSlot)
		}
	}
	sb.WriteString(glyph)
	return sb.String()
}

// Prefixes returns one connector prefix per element.
func Prefixes(elems []Element) []string {
	out := make([]string, len(elems))
	open := OpenDepths{}
	for i, e := range elems {
		open = open.Advance(e)

		var above, below *Element
		if i > 0 {
			above = &elems[i-1]
		}
		if i+1 < len(elems) {
			below = &elems[i+1]
		}
		out[i] = Prefix(e.Depth, Glyph(Classify(e, above), Classify(e, below), e.IsLastSibling), open)
	}
	return out
}

// Line is a flattened row paired with its connector prefix.
type Line struct {
	Element
	Prefix string
}

// Lines flattens a tree and attaches connector prefixes.
func Lines(t *Tree) []Line {
	elems := Flatten(t)
	prefixes := Prefixes(elems)
	out := make([]Line, len(elems))
	for i, e := range elems {
		out[i] = Line{Element: e, Prefix: prefixes[i]}
	}
	return out
}

// Text renders the line the way outlines show it: prefix, a space, then the
// description. Root rows carry no prefix.
func (l Line) Text() string {
	if l.Prefix == "" {
		return l.Task.Description
	}
	return l.Prefix + " " + l.Task.Description
}
