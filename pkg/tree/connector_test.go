package tree

import (
	"reflect"
	"testing"

	"github.com/kraitsura/teal/pkg/model"
)

func TestGlyph(t *testing.T) {
	tests := []struct {
		name   string
		above  Transition
		below  Transition
		isLast bool
		want   string
	}{
		{"root row", EndOfList, Indented, true, ""},
		{"single row", EndOfList, EndOfList, true, ""},
		{"parent with later siblings", Dedented, Indented, false, GlyphBranch},
		{"last parent", Equal, Indented, true, GlyphCorner},
		{"last in list", Equal, EndOfList, true, GlyphCorner},
		{"before dedent", Indented, Dedented, true, GlyphCorner},
		{"middle sibling", Equal, Equal, false, GlyphBranch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Glyph(tt.above, tt.below, tt.isLast); got != tt.want {
				t.Errorf("Glyph(%v, %v, %v) = %q, want %q", tt.above, tt.below, tt.isLast, got, tt.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	row := Element{Depth: 2}
	if got := Classify(row, nil); got != EndOfList {
		t.Errorf("nil neighbour = %v, want end-of-list", got)
	}
	if got := Classify(row, &Element{Depth: 3}); got != Indented {
		t.Errorf("deeper neighbour = %v, want indented", got)
	}
	if got := Classify(row, &Element{Depth: 2}); got != Equal {
		t.Errorf("same depth = %v, want equal", got)
	}
	if got := Classify(row, &Element{Depth: 0}); got != Dedented {
		t.Errorf("shallower neighbour = %v, want dedented", got)
	}
}

// TestPrefixesSingleChild covers a root with one child: the child gets a corner
func TestPrefixesSingleChild(t *testing.T) {
	elems := Flatten(mustBuild(t, []model.Task{task(1, 0), task(2, 1)}))
	got := Prefixes(elems)
	want := []string{"", "   └─"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Prefixes = %q, want %q", got, want)
	}
}

func TestPrefixesNested(t *testing.T) {
	elems := Flatten(mustBuild(t, []model.Task{task(1, 0), task(2, 1), task(3, 1), task(4, 2)}))
	got := Prefixes(elems)
	want := []string{
		"",
		"   ├─",
		"   │    └─",
		"   └─",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Prefixes =\n%q\nwant\n%q", got, want)
	}
}

// TestPrefixesClosedRail verifies a finished branch leaves blank padding, not a rail
func TestPrefixesClosedRail(t *testing.T) {
	// 1
	// ├─ 2
	// └─ 3
	//      └─ 4
	//           ├─ 5
	//           └─ 6
	elems := Flatten(mustBuild(t, []model.Task{
		task(1, 0), task(2, 1), task(3, 1), task(4, 3), task(5, 4), task(6, 4),
	}))
	got := Prefixes(elems)
	want := []string{
		"",
		"   ├─",
		"   └─",
		"        └─",
		"             ├─",
		"             └─",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Prefixes =\n%q\nwant\n%q", got, want)
	}
}

func TestPrefixesOpenRails(t *testing.T) {
	// 1
	// ├─ 2
	// │    ├─ 3
	// │    │    └─ 4
	// │    └─ 5
	// └─ 6
	elems := Flatten(mustBuild(t, []model.Task{
		task(1, 0), task(2, 1), task(3, 2), task(4, 3), task(5, 2), task(6, 1),
	}))
	got := Prefixes(elems)
	want := []string{
		"",
		"   ├─",
		"   │    ├─",
		"   │    │    └─",
		"   │    └─",
		"   └─",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Prefixes =\n%q\nwant\n%q", got, want)
	}
}

func TestOpenDepthsAdvanceDoesNotMutate(t *testing.T) {
	open := OpenDepths{1: true}
	next := open.Advance(Element{Depth: 2, IsLastSibling: false})
	if !next[2] || !next[1] {
		t.Errorf("next = %v, want depths 1 and 2 open", next)
	}
	if open[2] {
		t.Errorf("Advance mutated receiver: %v", open)
	}
	closed := next.Advance(Element{Depth: 1, IsLastSibling: true})
	if closed[1] {
		t.Errorf("depth 1 should be closed after its last sibling")
	}
}

func TestLinesText(t *testing.T) {
	lines := Lines(mustBuild(t, []model.Task{
		{ID: 1, Description: "home"},
		{ID: 2, Description: "laundry", Parent: model.Ref(1)},
	}))
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if got := lines[0].Text(); got != "home" {
		t.Errorf("root line = %q, want %q", got, "home")
	}
	if got := lines[1].Text(); got != "   └─ laundry" {
		t.Errorf("child line = %q, want %q", got, "   └─ laundry")
	}
}

func TestPrefixesEmpty(t *testing.T) {
	if got := Prefixes(nil); len(got) != 0 {
		t.Errorf("Prefixes(nil) = %v, want empty", got)
	}
}
