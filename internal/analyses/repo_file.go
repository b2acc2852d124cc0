package analyses

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"documind-backend/internal/shared/telemetry"
)

// FileRepo stores one JSON file per record, named by id, under a base
// directory. There is no locking: ids are generated per request, so writes to
// distinct records never collide.
type FileRepo struct {
	dir string
}

// NewFileRepo creates the base directory if needed and returns a FileRepo.
func NewFileRepo(dir string) (*FileRepo, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("init analysis store: %w", err)
	}
	return &FileRepo{dir: dir}, nil
}

// Save marshals the record and replaces its file atomically via a temp file
// and rename.
func (r *FileRepo) Save(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := r.recordPath(rec.ID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	tmp, err := os.CreateTemp(r.dir, rec.ID+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

// Load reads and parses the record for id. A missing file and a corrupt file
// are reported uniformly as ErrNotFound.
func (r *FileRepo) Load(ctx context.Context, id string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	path, err := r.recordPath(id)
	if err != nil {
		return Record{}, ErrNotFound
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, ErrNotFound
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

// List scans the base directory for records, skipping any that fail to parse.
func (r *FileRepo) List(ctx context.Context) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}

	records := make([]Record, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(r.dir, entry.Name()))
		if err != nil {
			telemetry.Warn("store.list.unreadable", map[string]any{"file": entry.Name(), "err": err.Error()})
			continue
		}
		var rec Record
		if err := json.Unmarshal(data, &rec); err != nil {
			telemetry.Warn("store.list.skipping_invalid", map[string]any{"file": entry.Name(), "err": err.Error()})
			continue
		}
		rec.DocumentText = ""
		records = append(records, rec)
	}
	return records, nil
}

func (r *FileRepo) recordPath(id string) (string, error) {
	if id == "" || id != filepath.Clean(id) || strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return "", fmt.Errorf("invalid record id")
	}
	return filepath.Join(r.dir, id+".json"), nil
}

var _ Repo = (*FileRepo)(nil)
