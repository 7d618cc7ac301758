// Package persist moves task lists between the store and files.
//
// Every operation is all-or-nothing: a failed load or import leaves the
// store as it was and a failed save or export leaves the filesystem as it
// was.
package persist

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/frogpad/frogpad/internal/model"
	"github.com/frogpad/frogpad/internal/store"
)

var (
	ErrInvalidFilePath   = errors.New("persist: invalid file path")
	ErrInvalidFileFormat = errors.New("persist: invalid file format")
	ErrInvalidIndex      = errors.New("persist: list index out of range")
)

// LoadStore replaces every list in s with the contents of path.
func LoadStore(ctx context.Context, s *store.Store, path string) error {
	lists, err := BackendFor(path).LoadLists(ctx, path)
	if err != nil {
		return err
	}
	s.Replace(lists)
	return nil
}

func SaveStore(ctx context.Context, s *store.Store, path string) error {
	return BackendFor(path).SaveLists(ctx, path, s.Lists())
}

// ImportList appends the single list stored at path.
func ImportList(_ context.Context, s *store.Store, path string) (model.TaskList, error) {
	raw, err := readFile(path)
	if err != nil {
		return model.TaskList{}, err
	}
	list, err := DecodeList(raw)
	if err != nil {
		return model.TaskList{}, err
	}
	s.Append(list)
	return list, nil
}

// ExportList writes list index of s to dir and returns the written path.
func ExportList(_ context.Context, s *store.Store, index int, dir string) (string, error) {
	lists := s.Lists()
	if index < 0 || index >= len(lists) {
		return "", fmt.Errorf("%w: %d of %d", ErrInvalidIndex, index, len(lists))
	}
	payload, err := EncodeList(lists[index])
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, ExportFileName(lists[index]))
	if err := writeFileAtomic(path, payload, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// ExportFileName is "<list name>.json" with path separators replaced so the
// export always lands in the target directory.
func ExportFileName(list model.TaskList) string {
	name := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' {
			return '_'
		}
		return r
	}, list.Name)
	if strings.TrimSpace(name) == "" || name == "." || name == ".." {
		name = "list"
	}
	return name + ".json"
}

// IsDirty reports whether current differs from the snapshot taken at the
// last load or save. Order of lists and tasks is ignored.
func IsDirty(current, snapshot []model.TaskList) bool {
	return !model.EqualLists(current, snapshot)
}
