package taxtable

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Repository loads versioned tax tables from a backing source.
type Repository interface {
	Load(ctx context.Context, version string) (*Table, error)
	AvailableVersions(ctx context.Context) ([]string, error)
}

// FileRepository reads <dir>/<version>.json documents.
type FileRepository struct {
	Dir string
}

func NewFileRepository(dir string) *FileRepository {
	return &FileRepository{Dir: dir}
}

func (r *FileRepository) Load(_ context.Context, version string) (*Table, error) {
	path := filepath.Join(r.Dir, version+".json")
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("tax table version %q at %s: %w", version, path, ErrTableNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read tax table %q: %w", version, err)
	}
	return decodeTable(data)
}

func (r *FileRepository) AvailableVersions(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(r.Dir)
	if err != nil {
		return nil, fmt.Errorf("list tax tables in %s: %w", r.Dir, err)
	}
	versions := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		versions = append(versions, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(versions)
	return versions, nil
}

func decodeTable(data []byte) (*Table, error) {
	var table Table
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("decode tax table: %w", err)
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return &table, nil
}

// Store caches loaded tables by version. Tables are immutable after
// load, so cached pointers are shared across concurrent calculations.
type Store struct {
	repo Repository

	mu     sync.RWMutex
	tables map[string]*Table
}

func NewStore(repo Repository) *Store {
	return &Store{repo: repo, tables: make(map[string]*Table)}
}

func (s *Store) Table(ctx context.Context, version string) (*Table, error) {
	s.mu.RLock()
	table, ok := s.tables[version]
	s.mu.RUnlock()
	if ok {
		return table, nil
	}

	loaded, err := s.repo.Load(ctx, version)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if cached, ok := s.tables[version]; ok {
		return cached, nil
	}
	s.tables[version] = loaded
	return loaded, nil
}

func (s *Store) AvailableVersions(ctx context.Context) ([]string, error) {
	return s.repo.AvailableVersions(ctx)
}
