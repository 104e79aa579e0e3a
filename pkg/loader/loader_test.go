package loader_test

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/kraitsura/teal/pkg/loader"
	"github.com/kraitsura/teal/pkg/model"
)

func TestParseTasksSkipsBadLines(t *testing.T) {
	input := strings.Join([]string{
		`{"id":1,"description":"root","complete":false}`,
		``,
		`{not json`,
		`{"id":2,"description":"child","complete":true,"parent":1}`,
		`{"id":3,"description":"self","parent":3}`,
		`{"id":0,"description":"zero id"}`,
	}, "\n")

	tasks, err := loader.ParseTasks(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseTasks failed: %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d: %+v", len(tasks), tasks)
	}
	if tasks[1].Parent == nil || *tasks[1].Parent != 1 || !tasks[1].Complete {
		t.Errorf("unexpected child task: %+v", tasks[1])
	}
	// Self-parented records are kept so integrity checks can report them.
	if tasks[2].ID != 3 || tasks[2].Parent == nil || *tasks[2].Parent != 3 {
		t.Errorf("unexpected self-parented task: %+v", tasks[2])
	}
}

func TestWriteThenParseEmptyDescription(t *testing.T) {
	tasks := []model.Task{
		{ID: 1, Description: ""},
		{ID: 2, Description: "child", Parent: model.Ref(1)},
	}

	var buf bytes.Buffer
	if err := loader.WriteTasks(&buf, tasks); err != nil {
		t.Fatalf("WriteTasks failed: %v", err)
	}
	got, err := loader.ParseTasks(&buf)
	if err != nil {
		t.Fatalf("ParseTasks failed: %v", err)
	}
	if !reflect.DeepEqual(got, tasks) {
		t.Errorf("got %+v, want %+v", got, tasks)
	}
}

func TestWriteThenParse(t *testing.T) {
	tasks := []model.Task{
		{ID: 1, Description: "root"},
		{ID: 2, Description: "child", Complete: true, Parent: model.Ref(1)},
	}

	var buf bytes.Buffer
	if err := loader.WriteTasks(&buf, tasks); err != nil {
		t.Fatalf("WriteTasks failed: %v", err)
	}
	if strings.Contains(strings.SplitN(buf.String(), "\n", 2)[0], "parent") {
		t.Errorf("root line should omit parent: %q", buf.String())
	}

	got, err := loader.ParseTasks(&buf)
	if err != nil {
		t.Fatalf("ParseTasks failed: %v", err)
	}
	if !reflect.DeepEqual(got, tasks) {
		t.Errorf("got %+v, want %+v", got, tasks)
	}
}

func TestSaveAndLoadTasks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "tasks.jsonl")
	tasks := []model.Task{{ID: 5, Description: "only"}}

	if err := loader.SaveTasks(path, tasks); err != nil {
		t.Fatalf("SaveTasks failed: %v", err)
	}
	got, err := loader.LoadTasks(path)
	if err != nil {
		t.Fatalf("LoadTasks failed: %v", err)
	}
	if !reflect.DeepEqual(got, tasks) {
		t.Errorf("got %+v, want %+v", got, tasks)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the output file, found %d entries", len(entries))
	}
}

func TestLoadTasksMissingFile(t *testing.T) {
	_, err := loader.LoadTasks(filepath.Join(t.TempDir(), "missing.jsonl"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
