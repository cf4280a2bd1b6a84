package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/abdidvp/layoutcheck/internal/domain"
)

// Store is a file-based implementation of domain.ReportCache. Each report
// lives in its own file named by its content key.
type Store struct{}

// New creates a new file-based cache store.
func New() *Store {
	return &Store{}
}

// Load reads a cached report. Returns (nil, nil) if no entry exists.
func (s *Store) Load(projectPath, key string) (*domain.Report, error) {
	path, err := entryPath(projectPath, key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // no cache is not an error
		}
		return nil, err
	}

	var rep domain.Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return nil, err
	}
	return &rep, nil
}

// Save writes a report to disk, creating directories as needed.
func (s *Store) Save(projectPath, key string, report *domain.Report) error {
	path, err := entryPath(projectPath, key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cacheDir(projectPath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Clear removes every cached report for the given project path.
func (s *Store) Clear(projectPath string) error {
	if err := os.RemoveAll(cacheDir(projectPath)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func cacheDir(projectPath string) string {
	return filepath.Join(projectPath, ".layoutcheck", "cache")
}

func entryPath(projectPath, key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\.`) {
		return "", fmt.Errorf("invalid cache key %q", key)
	}
	return filepath.Join(cacheDir(projectPath), key+".json"), nil
}
