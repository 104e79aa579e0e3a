// Package tree rebuilds task hierarchies from flat parent-pointer records and
// linearizes them for display.
//
// The pipeline is Build -> Flatten -> Prefixes. All three steps are pure:
// they perform no I/O, never mutate their input, and are rebuilt from scratch
// for every query.
package tree

import (
	"errors"

	"github.com/kraitsura/teal/pkg/model"
)

var (
	// ErrMultipleRoots is returned when more than one record has no parent.
	ErrMultipleRoots = errors.New("multiple root tasks found")
	// ErrNoRootFound is returned when no record can act as the root.
	ErrNoRootFound = errors.New("no root task found")
)

// Tree is a task node that owns its children. Children keep the order in
// which their records appeared in the input. There is no link back to the
// parent; ancestry is carried by the flattened elements instead.
type Tree struct {
	ID          int64
	Description string
	Complete    bool
	Depth       int
	Children    []*Tree
}

// Build turns a flat record set into a single rooted tree.
//
// Exactly one record without a parent becomes the root. When no record is
// parentless, the first record whose parent is not part of the input is
// promoted to root. Records that cannot be reached from the root (broken or
// cyclic parent chains) are left out of the result without an error.
func Build(records []model.Task) (*Tree, error) {
	ids := make(map[int64]bool, len(records))
	for _, r := range records {
		ids[r.ID] = true
	}

	childrenOf := make(map[int64][]model.Task)
	var root *model.Task
	for i := range records {
		r := records[i]
		parent, ok := r.ParentID()
		if !ok {
			if root != nil {
				return nil, ErrMultipleRoots
			}
			root = &records[i]
			continue
		}
		childrenOf[parent] = append(childrenOf[parent], r)
	}

	if root == nil {
		for i := range records {
			if parent, _ := records[i].ParentID(); !ids[parent] {
				root = &records[i]
				break
			}
		}
	}
	if root == nil {
		return nil, ErrNoRootFound
	}

	visited := make(map[int64]bool, len(records))
	return materialize(*root, 0, childrenOf, visited), nil
}

// materialize descends the parent->children index. The visited set keeps a
// duplicated id from being attached twice.
func materialize(r model.Task, depth int, childrenOf map[int64][]model.Task, visited map[int64]bool) *Tree {
	visited[r.ID] = true
	node := &Tree{
		ID:          r.ID,
		Description: r.Description,
		Complete:    r.Complete,
		Depth:       depth,
	}
	for _, child := range childrenOf[r.ID] {
		if visited[child.ID] {
			continue
		}
		node.Children = append(node.Children, materialize(child, depth+1, childrenOf, visited))
	}
	return node
}

// Task returns the node payload as a record with no parent reference.
func (t *Tree) Task() model.Task {
	return model.Task{ID: t.ID, Description: t.Description, Complete: t.Complete}
}

// Len returns the number of nodes in the tree, root included.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	n := 1
	for _, c := range t.Children {
		n += c.Len()
	}
	return n
}

// IDs returns every node id in pre-order.
func (t *Tree) IDs() []int64 {
	var out []int64
	t.Walk(func(n *Tree) bool {
		out = append(out, n.ID)
		return true
	})
	return out
}

// Walk visits nodes in pre-order until fn returns false.
func (t *Tree) Walk(fn func(*Tree) bool) {
	t.walk(fn)
}

func (t *Tree) walk(fn func(*Tree) bool) bool {
	if t == nil {
		return true
	}
	if !fn(t) {
		return false
	}
	for _, c := range t.Children {
		if !c.walk(fn) {
			return false
		}
	}
	return true
}
