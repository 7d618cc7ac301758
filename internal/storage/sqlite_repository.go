package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

const sqliteTimeLayout = time.RFC3339Nano

var ErrOrphanTask = errors.New("storage: sub-task without parent")

type SQLiteRepository struct {
	db *sql.DB
}

var _ Repository = (*SQLiteRepository)(nil)

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

// OpenSQLite opens or creates the database at path and brings its schema up
// to date.
func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

// OpenSQLiteReadOnly opens an existing database without writing to it. The
// schema must already be at LatestVersion.
func OpenSQLiteReadOnly(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", readOnlyDSN(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := checkSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func checkSchema(db *sql.DB) error {
	want, err := LatestVersion()
	if err != nil {
		return err
	}
	got, err := SchemaVersion(db)
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("%w: have %d, want %d", ErrSchemaMismatch, got, want)
	}
	return nil
}

// readOnlyDSN builds a file: URI so characters that URIs reserve survive in
// the path.
func readOnlyDSN(path string) string {
	escaped := strings.NewReplacer("%", "%25", "?", "%3f", "#", "%23").Replace(path)
	return "file:" + escaped + "?mode=ro"
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) ReplaceAll(ctx context.Context, lists []ListRecord) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM task_lists`); err != nil {
		return fmt.Errorf("clear task lists: %w", err)
	}

	now := time.Now()
	for i, list := range lists {
		listID := orNewID(list.ID)
		savedAt := list.SavedAt
		if savedAt.IsZero() {
			savedAt = now
		}
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO task_lists (id, name, position, saved_at)
			VALUES (?, ?, ?, ?)`,
			listID, list.Name, i, mustTime(savedAt),
		); err != nil {
			return fmt.Errorf("insert list %q: %w", list.Name, err)
		}
		if err = insertTasks(ctx, tx, listID, "", list.Tasks); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func insertTasks(ctx context.Context, tx *sql.Tx, listID, parentID string, tasks []TaskRecord) error {
	for i, task := range tasks {
		id := orNewID(task.ID)
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO tasks (id, list_id, parent_id, position, name, status, duration_days, duration_hours, duration_minutes, due_date)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, listID, nullString(parentID), i, task.Name, task.Status,
			task.Days, task.Hours, task.Minutes, task.DueDate,
		); err != nil {
			return fmt.Errorf("insert task %q: %w", task.Name, err)
		}
		if err := insertTasks(ctx, tx, listID, id, task.SubTasks); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteRepository) LoadAll(ctx context.Context) ([]ListRecord, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, position, saved_at FROM task_lists ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ListRecord, 0)
	for rows.Next() {
		list, scanErr := scanList(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, list)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		tasks, err := r.listTasks(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Tasks = tasks
	}
	return out, nil
}

// listTasks rebuilds the task tree of one list. Every row hangs off its
// direct parent, at any depth.
func (r *SQLiteRepository) listTasks(ctx context.Context, listID string) ([]TaskRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, list_id, parent_id, position, name, status, duration_days, duration_hours, duration_minutes, due_date
		FROM tasks WHERE list_id = ?
		ORDER BY position ASC`, listID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	children := make(map[string][]TaskRecord)
	total := 0
	for rows.Next() {
		task, scanErr := scanTask(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		children[task.ParentID] = append(children[task.ParentID], task)
		total++
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	reached := 0
	out := attachSubTasks(children, "", &reached)
	if reached != total {
		return nil, fmt.Errorf("%w: %d of %d tasks unreachable in list %s", ErrOrphanTask, total-reached, total, listID)
	}
	if out == nil {
		out = make([]TaskRecord, 0)
	}
	return out, nil
}

func attachSubTasks(children map[string][]TaskRecord, parentID string, reached *int) []TaskRecord {
	level := children[parentID]
	if len(level) == 0 {
		return nil
	}
	out := make([]TaskRecord, len(level))
	for i, task := range level {
		*reached++
		task.SubTasks = attachSubTasks(children, task.ID, reached)
		out[i] = task
	}
	return out
}

func orNewID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}

func nullString(v string) any {
	if v == "" {
		return nil
	}
	return v
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanList(s scanner) (ListRecord, error) {
	var out ListRecord
	var saved string
	if err := s.Scan(&out.ID, &out.Name, &out.Position, &saved); err != nil {
		return ListRecord{}, err
	}
	savedAt, err := parseRequiredTime(saved)
	if err != nil {
		return ListRecord{}, err
	}
	out.SavedAt = savedAt
	return out, nil
}

func scanTask(s scanner) (TaskRecord, error) {
	var out TaskRecord
	var parent sql.NullString
	if err := s.Scan(&out.ID, &out.ListID, &parent, &out.Position, &out.Name, &out.Status,
		&out.Days, &out.Hours, &out.Minutes, &out.DueDate); err != nil {
		return TaskRecord{}, err
	}
	out.ParentID = parent.String
	return out, nil
}
