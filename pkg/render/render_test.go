package render

import (
	"strings"
	"testing"

	"github.com/kraitsura/teal/pkg/model"
	"github.com/kraitsura/teal/pkg/tree"
)

func sampleTree(t *testing.T) *tree.Tree {
	t.Helper()
	root, err := tree.Build([]model.Task{
		{ID: 1, Description: "Plan trip"},
		{ID: 2, Description: "Book flights", Complete: true, Parent: model.Ref(1)},
		{ID: 3, Description: "Pack", Parent: model.Ref(1)},
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return root
}

func TestRaw(t *testing.T) {
	got := Raw(tree.Flatten(sampleTree(t)))
	want := strings.Join([]string{
		"1\tPlan trip\tNot done",
		"1.2\tBook flights\tDone",
		"1.3\tPack\tNot done",
	}, "\n")
	if got != want {
		t.Errorf("Raw =\n%q\nwant\n%q", got, want)
	}
}

func TestRawStripsEscapes(t *testing.T) {
	elems := []tree.Element{{Task: model.Task{ID: 4, Description: "\x1b[31mred\x1b[0m"}}}
	if got := Raw(elems); got != "4\tred\tNot done" {
		t.Errorf("Raw = %q", got)
	}
}

func TestTable(t *testing.T) {
	out := Table(tree.Flatten(sampleTree(t)))
	for _, want := range []string{"Number", "Task", "Done?", "1.2", "Book flights", "Not done"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if lines := strings.Split(out, "\n"); len(lines) < 6 {
		t.Errorf("expected borders, header and 3 rows, got %d lines:\n%s", len(lines), out)
	}
}

func TestElementsSwitch(t *testing.T) {
	elems := tree.Flatten(sampleTree(t))
	if Elements(elems, true) != Raw(elems) {
		t.Error("raw mode should match Raw")
	}
	if Elements(elems, false) != Table(elems) {
		t.Error("pretty mode should match Table")
	}
}

func TestOutline(t *testing.T) {
	out := Outline(tree.Lines(sampleTree(t)))
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "Plan trip") || strings.Contains(lines[0], "─") {
		t.Errorf("root line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "├─ Book flights") || !strings.Contains(lines[1], "✓") {
		t.Errorf("second line = %q", lines[1])
	}
	if !strings.Contains(lines[2], "└─ Pack") {
		t.Errorf("last line = %q", lines[2])
	}
}

func TestOutlines(t *testing.T) {
	root := sampleTree(t)
	out := Outlines([]*tree.Tree{root, root})
	if strings.Count(out, "Plan trip") != 2 || !strings.Contains(out, "\n\n") {
		t.Errorf("expected two outlines separated by a blank line:\n%s", out)
	}
}

func TestMarkdownPlain(t *testing.T) {
	out, err := Markdown("# Heading\n\nSome **bold** text", 40, false)
	if err != nil {
		t.Fatalf("Markdown failed: %v", err)
	}
	if !strings.Contains(out, "Heading") || !strings.Contains(out, "bold") {
		t.Errorf("unexpected markdown output: %q", out)
	}
}
