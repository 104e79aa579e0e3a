// Package store persists tasks in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"

	"github.com/kraitsura/teal/pkg/model"
	"github.com/kraitsura/teal/pkg/tree"
)

// Supported database/sql driver names.
const (
	// DriverCGO is github.com/mattn/go-sqlite3.
	DriverCGO = "sqlite3"
	// DriverPure is modernc.org/sqlite.
	DriverPure = "sqlite"

	// MemoryPath opens a private in-memory database.
	MemoryPath = ":memory:"
)

var (
	ErrTaskNotFound   = errors.New("task not found")
	ErrParentNotFound = errors.New("parent task not found")
	ErrSelfParent     = errors.New("task cannot be its own parent")
	ErrCycle          = errors.New("task cannot be moved under its own subtree")
)

// DB handles task persistence
type DB struct {
	db     *sql.DB
	path   string
	driver string
}

// Open opens or creates the task database at the given path. An empty driver
// selects DriverCGO.
func Open(dbPath, driver string) (*DB, error) {
	if driver == "" {
		driver = DriverCGO
	}
	if driver != DriverCGO && driver != DriverPure {
		return nil, fmt.Errorf("unsupported sqlite driver %q (want %q or %q)", driver, DriverCGO, DriverPure)
	}

	if dbPath != MemoryPath {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open(driver, dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection keeps the pragmas in force and the in-memory database alive.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	tdb := &DB{db: db, path: dbPath, driver: driver}
	if err := tdb.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return tdb, nil
}

// Close closes the database connection
func (d *DB) Close() error {
	return d.db.Close()
}

// Path returns the database file path.
func (d *DB) Path() string {
	return d.path
}

// Driver returns the database/sql driver in use.
func (d *DB) Driver() string {
	return d.driver
}

func (d *DB) initSchema() error {
	schema := `
	PRAGMA foreign_keys = ON;
	PRAGMA busy_timeout = 5000;

	CREATE TABLE IF NOT EXISTS tasks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		description TEXT NOT NULL,
		complete BOOLEAN NOT NULL DEFAULT 0,
		parent INTEGER REFERENCES tasks(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_tasks_parent ON tasks(parent);

	CREATE TRIGGER IF NOT EXISTS tasks_no_self_parent_insert
	AFTER INSERT ON tasks
	WHEN NEW.parent = NEW.id
	BEGIN
		SELECT RAISE(ABORT, 'task cannot be its own parent');
	END;

	CREATE TRIGGER IF NOT EXISTS tasks_no_self_parent_update
	BEFORE UPDATE OF parent ON tasks
	WHEN NEW.parent = NEW.id
	BEGIN
		SELECT RAISE(ABORT, 'task cannot be its own parent');
	END;
	`

	_, err := d.db.Exec(schema)
	return err
}

const subtreeCTE = `
	WITH RECURSIVE subtask_tree(id, description, complete, parent) AS (
		SELECT id, description, complete, parent
		FROM tasks
		WHERE id = ?
	UNION
		SELECT subtasks.id, subtasks.description, subtasks.complete, subtasks.parent
		FROM tasks subtasks
		INNER JOIN subtask_tree ON subtask_tree.id = subtasks.parent
	)
`

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (model.Task, error) {
	var t model.Task
	var parent sql.NullInt64
	if err := s.Scan(&t.ID, &t.Description, &t.Complete, &parent); err != nil {
		return model.Task{}, err
	}
	if parent.Valid {
		t.Parent = model.Ref(parent.Int64)
	}
	return t, nil
}

func collectTasks(rows *sql.Rows) ([]model.Task, error) {
	defer rows.Close()
	var tasks []model.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func nullParent(parent *int64) sql.NullInt64 {
	if parent == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *parent, Valid: true}
}

// translateError maps SQLite constraint failures onto the package errors.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return fmt.Errorf("%w: %v", ErrParentNotFound, err)
	case strings.Contains(msg, "own parent"):
		return fmt.Errorf("%w: %v", ErrSelfParent, err)
	}
	return err
}

// AddTask inserts a new task. A nil parent creates a root task.
func (d *DB) AddTask(ctx context.Context, description string, parent *int64) (model.Task, error) {
	result, err := d.db.ExecContext(ctx, `
		INSERT INTO tasks (description, complete, parent)
		VALUES (?, 0, ?)
	`, description, nullParent(parent))
	if err != nil {
		return model.Task{}, translateError(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return model.Task{}, err
	}
	return model.NewTask(id, description, false, parent), nil
}

// GetTask returns a single task by ID
func (d *DB) GetTask(ctx context.Context, id int64) (model.Task, error) {
	return getTask(ctx, d.db, id)
}

func getTask(ctx context.Context, q queryer, id int64) (model.Task, error) {
	t, err := scanTask(q.QueryRowContext(ctx, `
		SELECT id, description, complete, parent
		FROM tasks
		WHERE id = ?
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Task{}, fmt.Errorf("%w: %d", ErrTaskNotFound, id)
	}
	return t, err
}

// RemoveTask deletes a task together with its whole subtree and returns
// every removed record. Removing an unknown id returns no records.
func (d *DB) RemoveTask(ctx context.Context, id int64) ([]model.Task, error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, subtreeCTE+`SELECT id, description, complete, parent FROM subtask_tree`, id)
	if err != nil {
		return nil, err
	}
	removed, err := collectTasks(rows)
	if err != nil {
		return nil, err
	}
	if len(removed) == 0 {
		return nil, nil
	}

	if _, err := tx.ExecContext(ctx, subtreeCTE+`DELETE FROM tasks WHERE id IN (SELECT id FROM subtask_tree)`, id); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return removed, nil
}

// SetCompletion marks a task complete or incomplete.
func (d *DB) SetCompletion(ctx context.Context, id int64, complete bool) (model.Task, error) {
	return d.update(ctx, id, `UPDATE tasks SET complete = ? WHERE id = ?`, complete, id)
}

// Rename replaces a task description.
func (d *DB) Rename(ctx context.Context, id int64, description string) (model.Task, error) {
	return d.update(ctx, id, `UPDATE tasks SET description = ? WHERE id = ?`, description, id)
}

func (d *DB) update(ctx context.Context, id int64, query string, args ...any) (model.Task, error) {
	result, err := d.db.ExecContext(ctx, query, args...)
	if err != nil {
		return model.Task{}, translateError(err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return model.Task{}, err
	}
	if n == 0 {
		return model.Task{}, fmt.Errorf("%w: %d", ErrTaskNotFound, id)
	}
	return d.GetTask(ctx, id)
}

// Move re-parents a task. A nil parent turns it into a root task. Moving a
// task below itself or one of its descendants fails with ErrCycle.
func (d *DB) Move(ctx context.Context, id int64, parent *int64) (model.Task, error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Task{}, err
	}
	defer tx.Rollback()

	if _, err := getTask(ctx, tx, id); err != nil {
		return model.Task{}, err
	}

	if parent != nil {
		if *parent == id {
			return model.Task{}, fmt.Errorf("%w: %d", ErrSelfParent, id)
		}
		var inSubtree bool
		err := tx.QueryRowContext(ctx, subtreeCTE+`SELECT EXISTS (SELECT 1 FROM subtask_tree WHERE id = ?)`, id, *parent).Scan(&inSubtree)
		if err != nil {
			return model.Task{}, err
		}
		if inSubtree {
			return model.Task{}, fmt.Errorf("%w: %d is below %d", ErrCycle, *parent, id)
		}
	}

	if _, err := tx.ExecContext(ctx, `UPDATE tasks SET parent = ? WHERE id = ?`, nullParent(parent), id); err != nil {
		return model.Task{}, translateError(err)
	}
	moved, err := getTask(ctx, tx, id)
	if err != nil {
		return model.Task{}, err
	}
	return moved, tx.Commit()
}

// ListTasks returns every task, or only root tasks when includeChildren is false.
func (d *DB) ListTasks(ctx context.Context, includeChildren bool) ([]model.Task, error) {
	query := `SELECT id, description, complete, parent FROM tasks ORDER BY id`
	if !includeChildren {
		query = `SELECT id, description, complete, parent FROM tasks WHERE parent IS NULL ORDER BY id`
	}
	rows, err := d.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	return collectTasks(rows)
}

// ListSubtasks returns the task with the given id followed by all of its
// descendants.
func (d *DB) ListSubtasks(ctx context.Context, id int64) ([]model.Task, error) {
	rows, err := d.db.QueryContext(ctx, subtreeCTE+`SELECT id, description, complete, parent FROM subtask_tree`, id)
	if err != nil {
		return nil, err
	}
	return collectTasks(rows)
}

// Subtree fetches and builds the tree rooted at id.
func (d *DB) Subtree(ctx context.Context, id int64) (*tree.Tree, error) {
	tasks, err := d.ListSubtasks(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, fmt.Errorf("%w: %d", ErrTaskNotFound, id)
	}
	// The subtree root keeps its parent link, so detach it to make it the
	// single parentless record.
	tasks[0] = tasks[0].WithoutParent()
	return tree.Build(tasks)
}

// ImportTasks inserts a record set in one transaction. Every task gets a
// fresh id and parent references are rewritten to match. A parent outside
// the imported set fails with ErrParentNotFound.
func (d *DB) ImportTasks(ctx context.Context, tasks []model.Task) ([]model.Task, error) {
	known := make(map[int64]bool, len(tasks))
	for _, t := range tasks {
		known[t.ID] = true
	}
	for _, t := range tasks {
		if p, ok := t.ParentID(); ok && !known[p] {
			return nil, fmt.Errorf("%w: task %d references %d", ErrParentNotFound, t.ID, p)
		}
		if p, ok := t.ParentID(); ok && p == t.ID {
			return nil, fmt.Errorf("%w: %d", ErrSelfParent, t.ID)
		}
	}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO tasks (description, complete, parent) VALUES (?, ?, ?)`)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	remap := make(map[int64]int64, len(tasks))
	imported := make([]model.Task, 0, len(tasks))
	pending := tasks
	for len(pending) > 0 {
		var next []model.Task
		for _, t := range pending {
			var parent *int64
			if p, ok := t.ParentID(); ok {
				newParent, done := remap[p]
				if !done {
					next = append(next, t)
					continue
				}
				parent = model.Ref(newParent)
			}
			result, err := stmt.ExecContext(ctx, t.Description, t.Complete, nullParent(parent))
			if err != nil {
				return nil, translateError(err)
			}
			id, err := result.LastInsertId()
			if err != nil {
				return nil, err
			}
			remap[t.ID] = id
			imported = append(imported, model.NewTask(id, t.Description, t.Complete, parent))
		}
		if len(next) == len(pending) {
			return nil, fmt.Errorf("%w: %d tasks form a parent loop", ErrCycle, len(next))
		}
		pending = next
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return imported, nil
}

// Count returns the number of stored tasks.
func (d *DB) Count(ctx context.Context) (int, error) {
	var n int
	err := d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks`).Scan(&n)
	return n, err
}
