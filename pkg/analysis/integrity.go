package analysis

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/graph/traverse"

	"github.com/kraitsura/teal/pkg/model"
)

// ============================================================================
// Hierarchy Integrity
// Explains which records a tree build would reject or leave out
// ============================================================================

// DanglingParent is a record whose parent id is not in the record set
type DanglingParent struct {
	TaskID   int64 `json:"task_id"`
	ParentID int64 `json:"parent_id"`
}

// IntegrityReport lists structural problems in a flat task set
type IntegrityReport struct {
	Total           int              `json:"total"`
	Roots           []int64          `json:"roots"`                      // Parentless records
	DanglingParents []DanglingParent `json:"dangling_parents,omitempty"` // Parent not present
	SelfParents     []int64          `json:"self_parents,omitempty"`     // parent == id
	DuplicateIDs    []int64          `json:"duplicate_ids,omitempty"`    // id used more than once
	Cycles          [][]int64        `json:"cycles,omitempty"`           // Parent loops, smallest id first
	Unreachable     []int64          `json:"unreachable,omitempty"`      // Not below any root or orphan
}

// OK reports whether every record hangs below a root. Several roots are fine
// for a whole store.
func (r IntegrityReport) OK() bool {
	return len(r.DanglingParents) == 0 &&
		len(r.SelfParents) == 0 &&
		len(r.DuplicateIDs) == 0 &&
		len(r.Cycles) == 0 &&
		len(r.Unreachable) == 0
}

// Problems renders one human-readable line per finding.
func (r IntegrityReport) Problems() []string {
	var out []string
	for _, d := range r.DanglingParents {
		out = append(out, fmt.Sprintf("task %d points at missing parent %d", d.TaskID, d.ParentID))
	}
	for _, id := range r.SelfParents {
		out = append(out, fmt.Sprintf("task %d is its own parent", id))
	}
	for _, id := range r.DuplicateIDs {
		out = append(out, fmt.Sprintf("task id %d is used more than once", id))
	}
	for _, c := range r.Cycles {
		out = append(out, fmt.Sprintf("tasks %v form a parent loop", c))
	}
	if len(r.Unreachable) > 0 {
		out = append(out, fmt.Sprintf("%d tasks are not reachable from any root: %v", len(r.Unreachable), r.Unreachable))
	}
	return out
}

// CheckIntegrity inspects parent links. Parent edges go parent -> child so a
// walk from the roots sees exactly what a tree build would.
func CheckIntegrity(tasks []model.Task) IntegrityReport {
	report := IntegrityReport{Total: len(tasks)}

	g := simple.NewDirectedGraph()
	seen := make(map[int64]bool, len(tasks))
	for _, t := range tasks {
		if seen[t.ID] {
			report.DuplicateIDs = append(report.DuplicateIDs, t.ID)
			continue
		}
		seen[t.ID] = true
		g.AddNode(simple.Node(t.ID))
	}

	var starts []int64
	for _, t := range tasks {
		parent, ok := t.ParentID()
		switch {
		case !ok:
			report.Roots = append(report.Roots, t.ID)
			starts = append(starts, t.ID)
		case parent == t.ID:
			report.SelfParents = append(report.SelfParents, t.ID)
		case !seen[parent]:
			report.DanglingParents = append(report.DanglingParents, DanglingParent{TaskID: t.ID, ParentID: parent})
			starts = append(starts, t.ID)
		default:
			g.SetEdge(simple.Edge{F: simple.Node(parent), T: simple.Node(t.ID)})
		}
	}

	report.Cycles = parentCycles(g)

	reached := make(map[int64]bool, len(seen))
	bf := traverse.BreadthFirst{
		Visit: func(n graph.Node) { reached[n.ID()] = true },
	}
	for _, id := range starts {
		bf.Walk(g, g.Node(id), nil)
	}
	for id := range seen {
		if !reached[id] {
			report.Unreachable = append(report.Unreachable, id)
		}
	}

	sortIDs(report.Unreachable)
	sortIDs(report.DuplicateIDs)
	return report
}

// parentCycles lists each elementary cycle rotated to start at its smallest id.
func parentCycles(g graph.Directed) [][]int64 {
	var cycles [][]int64
	for _, c := range topo.DirectedCyclesIn(g) {
		// gonum closes each cycle by repeating the first node.
		nodes := c[:len(c)-1]
		lo := 0
		for i, n := range nodes {
			if n.ID() < nodes[lo].ID() {
				lo = i
			}
		}
		ids := make([]int64, 0, len(nodes))
		for i := range nodes {
			ids = append(ids, nodes[(lo+i)%len(nodes)].ID())
		}
		cycles = append(cycles, ids)
	}
	sort.Slice(cycles, func(i, j int) bool { return cycles[i][0] < cycles[j][0] })
	return cycles
}

func sortIDs(ids []int64) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
