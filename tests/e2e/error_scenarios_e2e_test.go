package main_test

import (
	"encoding/json"
	"strings"
	"testing"
)

// Error handling across commands: exit codes, messages and the --json form.

func TestError_UnknownTask(t *testing.T) {
	p := newProject(t)
	p.mustTeal(t, "add", "only task")

	for _, args := range [][]string{
		{"done", "7"},
		{"show", "7"},
		{"rename", "7", "x"},
		{"remove", "7"},
	} {
		out, errOut, err := p.teal(t, args...)
		if err == nil {
			t.Errorf("teal %v should fail, stdout=%s", args, out)
			continue
		}
		if !strings.Contains(errOut, "Error: no task found") {
			t.Errorf("teal %v stderr = %q", args, errOut)
		}
	}
}

func TestError_MissingParent(t *testing.T) {
	p := newProject(t)
	_, errOut, err := p.teal(t, "add", "--parent", "3", "orphan")
	if err == nil {
		t.Fatal("adding under a missing parent should fail")
	}
	if !strings.Contains(errOut, "the task you set as a parent task doesn't exist") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestError_JSONErrorsOnStdout(t *testing.T) {
	p := newProject(t)
	out, errOut, err := p.teal(t, "done", "9", "--json")
	if err != nil {
		t.Fatalf("--json errors should exit 0: %v", err)
	}
	if errOut != "" {
		t.Errorf("expected empty stderr; got:\n%s", errOut)
	}
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("json decode: %v\nout=%s", err, out)
	}
	if !strings.Contains(payload.Error, "no task found") {
		t.Errorf("error = %q", payload.Error)
	}
}

func TestError_MoveIntoOwnSubtree(t *testing.T) {
	p := newProject(t)
	p.mustTeal(t, "add", "a")
	p.mustTeal(t, "add", "-p", "1", "b")

	_, errOut, err := p.teal(t, "move", "1", "--parent", "2")
	if err == nil {
		t.Fatal("moving a task below its own child should fail")
	}
	if !strings.Contains(errOut, "its own subtree") {
		t.Errorf("stderr = %q", errOut)
	}
	if out := p.mustTeal(t, "list", "--raw"); out != "1\ta\tNot done\n1.2\tb\tNot done\n" {
		t.Errorf("hierarchy changed after failed move:\n%s", out)
	}
}

func TestError_ImportMalformedLines(t *testing.T) {
	p := newProject(t)
	path := p.writeFile(t, "mixed.jsonl",
		`{"id":1,"description":"kept","complete":false}`+"\n"+
			`{this is not json}`+"\n"+
			`{"id":0,"description":"zero id","complete":false}`+"\n"+
			`{"id":4,"description":"","complete":false,"parent":1}`+"\n")

	out, errOut, err := p.teal(t, "import", path)
	if err != nil {
		t.Fatalf("import failed: %v\n%s", err, errOut)
	}
	if !strings.Contains(out, "Imported 2 tasks") {
		t.Errorf("stdout = %q", out)
	}
	if !strings.Contains(errOut, "line 2") || !strings.Contains(errOut, "line 3") {
		t.Errorf("expected warnings for lines 2 and 3, stderr:\n%s", errOut)
	}
}

func TestError_ImportRefusesCycles(t *testing.T) {
	p := newProject(t)
	path := p.writeFile(t, "loop.jsonl",
		`{"id":1,"description":"a","complete":false,"parent":3}`+"\n"+
			`{"id":2,"description":"b","complete":false,"parent":1}`+"\n"+
			`{"id":3,"description":"c","complete":false,"parent":2}`+"\n")

	_, errOut, err := p.teal(t, "import", path)
	if err == nil {
		t.Fatal("importing a parent loop should fail")
	}
	if !strings.Contains(errOut, "refusing to import") {
		t.Errorf("stderr = %q", errOut)
	}
	if out := p.mustTeal(t, "list", "--raw"); out != "" {
		t.Errorf("nothing should have been imported:\n%s", out)
	}
}

func TestError_BadArguments(t *testing.T) {
	p := newProject(t)
	cases := [][]string{
		{"done"},
		{"done", "abc"},
		{"move", "1"},
		{"move", "1", "--root", "--parent", "2"},
		{"export"},
		{"list", "extra"},
	}
	for _, args := range cases {
		if _, _, err := p.teal(t, args...); err == nil {
			t.Errorf("teal %v should fail", args)
		}
	}
}
