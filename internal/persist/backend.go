package persist

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/frogpad/frogpad/internal/model"
	"github.com/frogpad/frogpad/internal/storage"
)

// Backend reads and writes a whole store at a path.
type Backend interface {
	LoadLists(ctx context.Context, path string) ([]model.TaskList, error)
	SaveLists(ctx context.Context, path string, lists []model.TaskList) error
}

// BackendFor picks the SQLite backend for .db and .sqlite files and JSON for
// everything else.
func BackendFor(path string) Backend {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return SQLiteBackend{}
	default:
		return JSONBackend{}
	}
}

type JSONBackend struct{}

func (JSONBackend) LoadLists(_ context.Context, path string) ([]model.TaskList, error) {
	raw, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeLists(raw)
}

func (JSONBackend) SaveLists(_ context.Context, path string, lists []model.TaskList) error {
	payload, err := EncodeLists(lists)
	if err != nil {
		return err
	}
	return writeFileAtomic(path, payload, 0o644)
}

// SQLiteBackend keeps a snapshot of the store in a SQLite database.
type SQLiteBackend struct{}

func (SQLiteBackend) LoadLists(ctx context.Context, path string) ([]model.TaskList, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFilePath, err)
	}
	repo, err := storage.OpenSQLiteReadOnly(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFileFormat, err)
	}
	defer repo.Close()

	records, err := repo.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFileFormat, err)
	}
	return listsFromRecords(records)
}

// SaveLists builds the database beside path and renames it into place, so
// a failed save never leaves a half-written file behind.
func (SQLiteBackend) SaveLists(ctx context.Context, path string, lists []model.TaskList) error {
	if err := checkDir(path); err != nil {
		return err
	}
	tmp := path + ".tmp-" + uuid.NewString()
	defer func() { _ = os.Remove(tmp) }()

	repo, err := storage.OpenSQLite(tmp)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFilePath, err)
	}
	if err := repo.ReplaceAll(ctx, recordsFromLists(lists)); err != nil {
		_ = repo.Close()
		return err
	}
	if err := repo.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFilePath, err)
	}
	return nil
}

func recordsFromLists(lists []model.TaskList) []storage.ListRecord {
	out := make([]storage.ListRecord, len(lists))
	for i, list := range lists {
		out[i] = storage.ListRecord{Name: list.Name, Position: i, Tasks: recordsFromTasks(list.Tasks)}
	}
	return out
}

func recordsFromTasks(tasks []model.Task) []storage.TaskRecord {
	out := make([]storage.TaskRecord, len(tasks))
	for i, t := range tasks {
		out[i] = storage.TaskRecord{
			Position: i,
			Name:     t.Name,
			Status:   string(t.Status),
			Days:     int(t.Duration.Days),
			Hours:    int(t.Duration.Hours),
			Minutes:  int(t.Duration.Minutes),
			DueDate:  t.Date.String(),
			SubTasks: recordsFromTasks(t.SubTasks),
		}
	}
	return out
}

func listsFromRecords(records []storage.ListRecord) ([]model.TaskList, error) {
	out := make([]model.TaskList, len(records))
	for i, rec := range records {
		tasks, err := tasksFromRecords(rec.Tasks)
		if err != nil {
			return nil, fmt.Errorf("%w: list %q: %v", ErrInvalidFileFormat, rec.Name, err)
		}
		out[i] = model.NewTaskList(rec.Name, tasks...)
	}
	return out, nil
}

func tasksFromRecords(records []storage.TaskRecord) ([]model.Task, error) {
	out := make([]model.Task, len(records))
	for i, rec := range records {
		date, err := model.ParseDate(rec.DueDate)
		if err != nil {
			return nil, err
		}
		status := model.Status(rec.Status)
		if !status.IsValid() {
			return nil, fmt.Errorf("%w: %q", model.ErrInvalidStatus, rec.Status)
		}
		subs, err := tasksFromRecords(rec.SubTasks)
		if err != nil {
			return nil, err
		}
		out[i] = model.Task{
			Name:     rec.Name,
			Status:   status,
			Duration: model.Duration{}.AddMinutes(int64(rec.Days)*24*60 + int64(rec.Hours)*60 + int64(rec.Minutes)),
			Date:     date,
			SubTasks: subs,
		}
	}
	return out, nil
}

func readFile(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFilePath, err)
	}
	return raw, nil
}

func checkDir(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidFilePath)
	}
	info, err := os.Stat(filepath.Dir(path))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFilePath, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrInvalidFilePath, filepath.Dir(path))
	}
	return nil
}

func writeFileAtomic(path string, data []byte, perm fs.FileMode) error {
	if err := checkDir(path); err != nil {
		return err
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrInvalidFilePath, path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %v", ErrInvalidFilePath, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFilePath, err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	_ = tmp.Sync()
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFilePath, err)
	}
	return nil
}
