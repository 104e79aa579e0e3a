// Package search ranks tasks against a fuzzy query.
package search

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/kraitsura/teal/pkg/model"
)

// Result is a task that matched a query.
type Result struct {
	Task           model.Task
	Score          int
	MatchedIndexes []int
}

// taskSource adapts a task slice to fuzzy.Source.
type taskSource []model.Task

func (s taskSource) String(i int) string { return s[i].Description }
func (s taskSource) Len() int            { return len(s) }

// Matches returns the tasks whose description fuzzy-matches term, best score
// first. Ties keep input order.
func Matches(term string, tasks []model.Task) []Result {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}
	found := fuzzy.FindFrom(term, taskSource(tasks))
	out := make([]Result, 0, len(found))
	for _, m := range found {
		out = append(out, Result{
			Task:           tasks[m.Index],
			Score:          m.Score,
			MatchedIndexes: m.MatchedIndexes,
		})
	}
	return out
}

// Search filters and orders tasks by how well they match term. An empty term
// returns the input unchanged.
func Search(term string, tasks []model.Task) []model.Task {
	if strings.TrimSpace(term) == "" {
		return tasks
	}
	results := Matches(term, tasks)
	out := make([]model.Task, 0, len(results))
	for _, r := range results {
		out = append(out, r.Task)
	}
	return out
}

// Alphabetical returns a copy of tasks sorted case-insensitively by description.
func Alphabetical(tasks []model.Task) []model.Task {
	out := make([]model.Task, len(tasks))
	copy(out, tasks)
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Description) < strings.ToLower(out[j].Description)
	})
	return out
}

// ByCompletion splits tasks into incomplete and complete, keeping order.
func ByCompletion(tasks []model.Task) (incomplete, complete []model.Task) {
	for _, t := range tasks {
		if t.Complete {
			complete = append(complete, t)
		} else {
			incomplete = append(incomplete, t)
		}
	}
	return incomplete, complete
}
