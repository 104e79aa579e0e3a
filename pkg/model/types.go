package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Task represents a single persisted task record
type Task struct {
	ID          int64  `json:"id" yaml:"id"`
	Description string `json:"description" yaml:"description"`
	Complete    bool   `json:"complete" yaml:"complete"`
	Parent      *int64 `json:"parent,omitempty" yaml:"parent,omitempty"`
}

// NewTask builds a task record; a nil parent makes it a root.
func NewTask(id int64, description string, complete bool, parent *int64) Task {
	t := Task{ID: id, Description: description, Complete: complete}
	if parent != nil {
		v := *parent
		t.Parent = &v
	}
	return t
}

// Ref returns a pointer to a copy of id, for use as a Parent value.
func Ref(id int64) *int64 {
	return &id
}

// Clone creates a deep copy of the task
func (t Task) Clone() Task {
	clone := t
	if t.Parent != nil {
		v := *t.Parent
		clone.Parent = &v
	}
	return clone
}

// ParentID returns the parent id and whether one is set.
func (t Task) ParentID() (int64, bool) {
	if t.Parent == nil {
		return 0, false
	}
	return *t.Parent, true
}

// IsRoot reports whether the task has no parent reference.
func (t Task) IsRoot() bool {
	return t.Parent == nil
}

// WithoutParent returns a copy with the parent reference stripped.
func (t Task) WithoutParent() Task {
	t.Parent = nil
	return t
}

// Validate checks that a record can be stored. Descriptions may be empty.
// Parent links are left to the hierarchy checks, which see the whole set.
func (t *Task) Validate() error {
	if t.ID <= 0 {
		return fmt.Errorf("task ID must be positive, got %d", t.ID)
	}
	if t.Parent != nil && *t.Parent <= 0 {
		return fmt.Errorf("task %d parent ID must be positive, got %d", t.ID, *t.Parent)
	}
	return nil
}

// Status is the human-readable completion state shown in listings
type Status string

const (
	StatusDone    Status = "Done"
	StatusNotDone Status = "Not done"
)

// Status returns the completion label for the task.
func (t Task) Status() Status {
	if t.Complete {
		return StatusDone
	}
	return StatusNotDone
}

// String renders the task as "#id description".
func (t Task) String() string {
	return fmt.Sprintf("#%d %s", t.ID, t.Description)
}

// ParseID parses a user-supplied task id.
func ParseID(s string) (int64, error) {
	s = strings.TrimSpace(s)
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", s)
	}
	if id <= 0 {
		return 0, fmt.Errorf("invalid task id %q: must be positive", s)
	}
	return id, nil
}
