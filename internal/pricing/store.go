package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/carebridge/homecare-platform/pkg/logging"
)

// Store persists the full pricing forest.
type Store interface {
	// Load returns the persisted forest, falling back to the default
	// catalog when nothing has been saved yet.
	Load(ctx context.Context) ([]Item, error)
	// Save stamps timestamps on every node and replaces the persisted
	// forest wholesale, returning the stamped tree.
	Save(ctx context.Context, items []Item) ([]Item, error)
}

// FileStore keeps the catalog as a single JSON array on disk. Writes replace
// the whole file; there is no merge and no lock, so two concurrent admin
// saves race with last-writer-wins. Accepted: the catalog has a single
// editor in practice.
type FileStore struct {
	path   string
	logger *logging.Logger
	now    func() time.Time
}

// NewFileStore creates a store writing to path. The containing directory is
// created on first save if absent.
func NewFileStore(path string, logger *logging.Logger) *FileStore {
	if logger == nil {
		logger = logging.Default()
	}
	return &FileStore{
		path:   path,
		logger: logger,
		now:    time.Now,
	}
}

// Load reads the catalog file. Any failure (missing file, unreadable,
// corrupt JSON) is logged and masked by the default catalog: the read path
// prefers availability over strictness.
func (s *FileStore) Load(ctx context.Context) ([]Item, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Error("failed to read pricing file, serving defaults", "path", s.path, "error", err)
		}
		return DefaultForest(), nil
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		s.logger.Error("pricing file is corrupt, serving defaults", "path", s.path, "error", err)
		return DefaultForest(), nil
	}

	return items, nil
}

// Save stamps every node (updatedAt always, createdAt only when absent) and
// atomically replaces the file via a temp-file rename. I/O failures here
// propagate to the caller, unlike Load.
func (s *FileStore) Save(ctx context.Context, items []Item) ([]Item, error) {
	if items == nil {
		return nil, ErrInvalidPayload
	}

	stamp(items, s.now().UTC())

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("pricing: marshal catalog: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("pricing: create catalog dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".pricing-*.json")
	if err != nil {
		return nil, fmt.Errorf("pricing: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return nil, fmt.Errorf("pricing: write catalog: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return nil, fmt.Errorf("pricing: close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return nil, fmt.Errorf("pricing: replace catalog: %w", err)
	}

	s.logger.Info("pricing catalog saved", "path", s.path, "services", len(items))
	return items, nil
}
