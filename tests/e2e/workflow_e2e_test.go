package main_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ============================================================================
// E2E: multi-step workflows spanning several commands
// ============================================================================

// TestWorkflow_PlanAndFinish builds a small plan, works through it and checks
// every view of the hierarchy along the way.
func TestWorkflow_PlanAndFinish(t *testing.T) {
	p := newProject(t)

	// Step 1: an empty store lists nothing
	if out := p.mustTeal(t, "list", "--raw"); out != "" {
		t.Fatalf("expected empty raw list, got %q", out)
	}

	// Step 2: build the plan, addressing parents by breadcrumb
	p.mustTeal(t, "add", "move house")
	p.mustTeal(t, "add", "--parent", "1", "pack")
	p.mustTeal(t, "add", "--parent", "1.2", "books")
	p.mustTeal(t, "add", "--parent", "1.2", "kitchen")
	p.mustTeal(t, "add", "--parent", "1", "hire van")

	out := p.mustTeal(t, "list", "--raw")
	want := "1\tmove house\tNot done\n" +
		"1.2\tpack\tNot done\n" +
		"1.2.3\tbooks\tNot done\n" +
		"1.2.4\tkitchen\tNot done\n" +
		"1.5\thire van\tNot done\n"
	if out != want {
		t.Fatalf("raw list mismatch\ngot:\n%s\nwant:\n%s", out, want)
	}

	// Step 3: the outline draws the connectors
	out = p.mustTeal(t, "list", "--tree")
	for _, line := range []string{"move house", "   ├─ pack", "   │    ├─ books", "   │    └─ kitchen", "   └─ hire van"} {
		if !strings.Contains(out, line) {
			t.Errorf("outline missing %q:\n%s", line, out)
		}
	}

	// Step 4: finish some work and check progress
	p.mustTeal(t, "done", "1.2.3,1.2.4")
	out = p.mustTeal(t, "show", "1", "--json")
	var shown struct {
		Progress struct {
			Total int    `json:"total"`
			Done  int    `json:"done"`
			Level string `json:"level"`
		} `json:"progress"`
		Subtree []struct {
			Number string `json:"number"`
		} `json:"subtree"`
	}
	if err := json.Unmarshal([]byte(out), &shown); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if shown.Progress.Total != 5 || shown.Progress.Done != 2 || shown.Progress.Level != "underway" {
		t.Errorf("progress = %+v", shown.Progress)
	}
	if len(shown.Subtree) != 5 || shown.Subtree[4].Number != "1.5" {
		t.Errorf("subtree = %+v", shown.Subtree)
	}

	// Step 5: the van turns out to be its own project
	p.mustTeal(t, "move", "5", "--root")
	p.mustTeal(t, "rename", "5", "book a van")
	out = p.mustTeal(t, "list", "--raw")
	if !strings.HasSuffix(out, "5\tbook a van\tNot done\n") {
		t.Errorf("moved task should be its own root:\n%s", out)
	}

	// Step 6: removing the packing task takes its subtasks along
	out = p.mustTeal(t, "remove", "1.2")
	if !strings.Contains(out, "Deleted 3 tasks:") {
		t.Errorf("remove output = %s", out)
	}
	if got := p.mustTeal(t, "doctor"); !strings.Contains(got, "No problems found.") {
		t.Errorf("doctor after remove: %s", got)
	}
}

// TestWorkflow_BackupAndRestore exports every task to JSONL and imports it
// into a second store.
func TestWorkflow_BackupAndRestore(t *testing.T) {
	src := newProject(t)
	src.mustTeal(t, "add", "garden")
	src.mustTeal(t, "add", "-p", "1", "weed beds")
	src.mustTeal(t, "add", "-p", "2", "buy gloves")
	src.mustTeal(t, "done", "3")

	backup := filepath.Join(src.dir, "backup.jsonl")
	_, errOut, err := src.teal(t, "export", "--output", backup)
	if err != nil {
		t.Fatalf("export failed: %v\n%s", err, errOut)
	}
	if !strings.Contains(errOut, "Exported 3 tasks") {
		t.Errorf("export report = %q", errOut)
	}

	dst := newProject(t)
	dst.mustTeal(t, "add", "already here")
	dst.mustTeal(t, "import", backup)

	out := dst.mustTeal(t, "list", "--raw")
	want := "1\talready here\tNot done\n" +
		"2\tgarden\tNot done\n" +
		"2.3\tweed beds\tNot done\n" +
		"2.3.4\tbuy gloves\tDone\n"
	if out != want {
		t.Errorf("restored list mismatch\ngot:\n%s\nwant:\n%s", out, want)
	}
}

// TestWorkflow_OutlineExports writes every outline format for one subtree.
func TestWorkflow_OutlineExports(t *testing.T) {
	p := newProject(t)
	p.mustTeal(t, "add", "trip")
	p.mustTeal(t, "add", "-p", "1", "tickets")
	p.mustTeal(t, "add", "-p", "1", "passport")

	md := p.mustTeal(t, "export", "--format", "md", "--id", "1")
	if !strings.HasPrefix(md, "# trip\n") || !strings.Contains(md, "  - [ ] 1.3 passport\n") {
		t.Errorf("markdown =\n%s", md)
	}

	for _, name := range []string{"trip.svg", "trip.png", "trip.yaml"} {
		path := filepath.Join(p.dir, name)
		p.mustTeal(t, "export", "-o", path, "--id", "1")
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("%s not written: %v", name, err)
		}
		if len(data) == 0 {
			t.Errorf("%s is empty", name)
		}
	}

	svg, _ := os.ReadFile(filepath.Join(p.dir, "trip.svg"))
	if !strings.Contains(string(svg), "passport") {
		t.Error("svg should contain task descriptions")
	}
	yml, _ := os.ReadFile(filepath.Join(p.dir, "trip.yaml"))
	if !strings.Contains(string(yml), "children:") {
		t.Errorf("yaml should nest children:\n%s", yml)
	}
}
