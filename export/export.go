// Package export writes rendered theme CSS to disk.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Store writes one CSS file per style group into a directory.
type Store struct {
	baseDir string
	mu      sync.Mutex
}

// New creates a new Store instance with the given base directory.
func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// EnsureDirs creates the export directory.
func (s *Store) EnsureDirs() error {
	return os.MkdirAll(s.baseDir, 0o755)
}

// WriteCSS atomically replaces <baseDir>/<groupCode>.css with css and
// returns the file path.
func (s *Store) WriteCSS(groupCode, css string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if groupCode == "" || strings.ContainsAny(groupCode, `/\`) || groupCode == "." || groupCode == ".." {
		return "", fmt.Errorf("invalid group code %q", groupCode)
	}
	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(s.baseDir, groupCode+".css")
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(css+"\n"), 0o644); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("rename %s: %w", tmp, err)
	}
	return path, nil
}

// List returns the group codes that have an exported file, sorted.
func (s *Store) List() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var codes []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".css" {
			continue
		}
		codes = append(codes, strings.TrimSuffix(entry.Name(), ".css"))
	}
	sort.Strings(codes)
	return codes, nil
}
