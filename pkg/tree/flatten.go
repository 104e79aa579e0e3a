package tree

import (
	"strconv"
	"strings"

	"github.com/kraitsura/teal/pkg/model"
)

// Element is one display row of a flattened tree.
type Element struct {
	Depth         int
	IsLastSibling bool
	// Task carries the record payload; Parent is always nil.
	Task model.Task
	// AncestorIDs runs from the root down to, but excluding, this row.
	AncestorIDs []int64
}

// Flatten linearizes the tree in pre-order. The root is always flagged as the
// last sibling.
func Flatten(t *Tree) []Element {
	if t == nil {
		return nil
	}
	out := make([]Element, 0, t.Len())
	return flattenNode(t, true, nil, out)
}

func flattenNode(node *Tree, isLast bool, ancestors []int64, out []Element) []Element {
	out = append(out, Element{
		Depth:         node.Depth,
		IsLastSibling: isLast,
		Task:          node.Task(),
		AncestorIDs:   ancestors,
	})

	// Copied so rows never share a backing array with their parent.
	childAncestors := make([]int64, len(ancestors), len(ancestors)+1)
	copy(childAncestors, ancestors)
	childAncestors = append(childAncestors, node.ID)

	for i, child := range node.Children {
		out = flattenNode(child, i+1 == len(node.Children), childAncestors, out)
	}
	return out
}

// FlattenTasks builds and flattens a record set in one step.
func FlattenTasks(records []model.Task) ([]Element, error) {
	t, err := Build(records)
	if err != nil {
		return nil, err
	}
	return Flatten(t), nil
}

// Number returns the breadcrumb numbering, e.g. "1.4.9".
func (e Element) Number() string {
	parts := make([]string, 0, len(e.AncestorIDs)+1)
	for _, id := range e.AncestorIDs {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	parts = append(parts, strconv.FormatInt(e.Task.ID, 10))
	return strings.Join(parts, ".")
}

// ParentID returns the id of the immediate parent row, if any.
func (e Element) ParentID() (int64, bool) {
	if len(e.AncestorIDs) == 0 {
		return 0, false
	}
	return e.AncestorIDs[len(e.AncestorIDs)-1], true
}

// IsRoot reports whether the element is the first row of its tree.
func (e Element) IsRoot() bool {
	return len(e.AncestorIDs) == 0
}
