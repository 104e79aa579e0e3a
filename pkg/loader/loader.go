// Package loader reads and writes task records as JSON Lines.
package loader

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/kraitsura/teal/pkg/model"
)

// LoadTasks reads task records from a JSONL file.
func LoadTasks(path string) ([]model.Task, error) {
	// Check if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("no task file found at %s", path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open task file: %w", err)
	}
	defer file.Close()

	tasks, err := ParseTasks(file)
	if err != nil {
		return nil, fmt.Errorf("error reading task file: %w", err)
	}
	return tasks, nil
}

// ParseTasks decodes one task per line. Blank lines are ignored and
// malformed or invalid lines are skipped with a warning.
func ParseTasks(r io.Reader) ([]model.Task, error) {
	var tasks []model.Task
	scanner := bufio.NewScanner(r)
	// Descriptions can be long; allow lines up to 10MB.
	const maxCapacity = 1024 * 1024 * 10
	buf := make([]byte, 64*1024)
	scanner.Buffer(buf, maxCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var task model.Task
		if err := json.Unmarshal(line, &task); err != nil {
			log.Printf("Warning: skipping malformed task on line %d: %v", lineNum, err)
			continue
		}
		if err := task.Validate(); err != nil {
			log.Printf("Warning: skipping invalid task on line %d: %v", lineNum, err)
			continue
		}
		tasks = append(tasks, task)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}

// WriteTasks encodes tasks as JSON Lines.
func WriteTasks(w io.Writer, tasks []model.Task) error {
	enc := json.NewEncoder(w)
	for _, t := range tasks {
		if err := enc.Encode(t); err != nil {
			return fmt.Errorf("encode task %d: %w", t.ID, err)
		}
	}
	return nil
}

// SaveTasks writes tasks to path atomically via a temp file in the same directory.
func SaveTasks(path string, tasks []model.Task) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".teal-*.jsonl")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	if err := WriteTasks(w, tasks); err != nil {
		tmp.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
