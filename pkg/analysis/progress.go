package analysis

import (
	"github.com/kraitsura/teal/pkg/tree"
)

// ============================================================================
// Subtree Progress
// ============================================================================

// Progress levels
const (
	ProgressNotStarted = "not started"
	ProgressUnderway   = "underway"
	ProgressFinished   = "finished"
)

// Progress summarises completion across a subtree
type Progress struct {
	Total   int     `json:"total"`   // Every node, root included
	Done    int     `json:"done"`    // Completed nodes
	Open    int     `json:"open"`    // Nodes still to do
	Percent float64 `json:"percent"` // Done / Total * 100
	Level   string  `json:"level"`
}

// SubtreeProgress counts completed nodes in t.
func SubtreeProgress(t *tree.Tree) Progress {
	var p Progress
	t.Walk(func(n *tree.Tree) bool {
		p.Total++
		if n.Complete {
			p.Done++
		}
		return true
	})
	p.Open = p.Total - p.Done
	if p.Total > 0 {
		p.Percent = float64(p.Done) * 100 / float64(p.Total)
	}
	p.Level = ProgressLevel(p)
	return p
}

// ProgressLevel returns the level string for p
func ProgressLevel(p Progress) string {
	switch {
	case p.Total > 0 && p.Done == p.Total:
		return ProgressFinished
	case p.Done > 0:
		return ProgressUnderway
	}
	return ProgressNotStarted
}
