package search

import (
	"reflect"
	"testing"

	"github.com/kraitsura/teal/pkg/model"
)

func sampleTasks() []model.Task {
	return []model.Task{
		{ID: 1, Description: "buy milk"},
		{ID: 2, Description: "walk dog", Complete: true},
		{ID: 3, Description: "milk the cow"},
		{ID: 4, Description: "Answer email", Parent: model.Ref(1)},
	}
}

func TestMatchesFiltersAndRanks(t *testing.T) {
	results := Matches("milk", sampleTasks())
	if len(results) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(results))
	}
	got := map[int64]bool{}
	for i, r := range results {
		got[r.Task.ID] = true
		if i > 0 && r.Score > results[i-1].Score {
			t.Errorf("results not sorted by score: %d before %d", results[i-1].Score, r.Score)
		}
		if len(r.MatchedIndexes) != 4 {
			t.Errorf("task %d matched %d runes, want 4", r.Task.ID, len(r.MatchedIndexes))
		}
	}
	if !got[1] || !got[3] {
		t.Errorf("expected tasks 1 and 3, got %v", got)
	}
}

func TestSearch(t *testing.T) {
	tasks := sampleTasks()

	tests := []struct {
		name string
		term string
		want int
	}{
		{"empty term keeps everything", "", len(tasks)},
		{"blank term keeps everything", "   ", len(tasks)},
		{"no match", "zzzz", 0},
		{"subsequence", "wdg", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Search(tt.term, tasks); len(got) != tt.want {
				t.Errorf("Search(%q) returned %d tasks, want %d", tt.term, len(got), tt.want)
			}
		})
	}
}

func TestSearchKeepsParent(t *testing.T) {
	got := Search("email", sampleTasks())
	if len(got) != 1 || got[0].Parent == nil || *got[0].Parent != 1 {
		t.Errorf("unexpected result: %+v", got)
	}
}

func TestAlphabetical(t *testing.T) {
	tasks := sampleTasks()
	sorted := Alphabetical(tasks)

	var ids []int64
	for _, task := range sorted {
		ids = append(ids, task.ID)
	}
	if want := []int64{4, 1, 3, 2}; !reflect.DeepEqual(ids, want) {
		t.Errorf("order = %v, want %v", ids, want)
	}
	if tasks[0].ID != 1 {
		t.Error("Alphabetical modified its input")
	}
}

func TestByCompletion(t *testing.T) {
	incomplete, complete := ByCompletion(sampleTasks())
	if len(incomplete) != 3 || len(complete) != 1 || complete[0].ID != 2 {
		t.Errorf("incomplete=%v complete=%v", incomplete, complete)
	}
}
