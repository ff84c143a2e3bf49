package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Scope selects which config files an operation touches.
type Scope int

const (
	// ScopeMerged reads local then system, and writes to the nearest file.
	ScopeMerged Scope = iota
	ScopeSystem
	ScopeLocal
)

// Store reads and writes config files for the config and reset commands.
type Store struct {
	paths Paths
}

// NewStore creates a Store over paths.
func NewStore(paths Paths) *Store {
	return &Store{paths: paths}
}

// Files returns the files scope covers, highest precedence first. The local
// scope falls back to .lt in the working directory when none exists yet.
func (s *Store) Files(scope Scope) []string {
	switch scope {
	case ScopeSystem:
		return []string{s.paths.SystemFile}
	case ScopeLocal:
		if s.paths.LocalFile != "" {
			return []string{s.paths.LocalFile}
		}
		return []string{filepath.Join(s.paths.WorkDir, FileName)}
	default:
		var files []string
		if s.paths.LocalFile != "" {
			files = append(files, s.paths.LocalFile)
		}
		return append(files, s.paths.SystemFile)
	}
}

// Get returns the value of key from the first file in scope that sets it.
func (s *Store) Get(key Option, scope Scope) (string, bool, error) {
	for _, file := range s.Files(scope) {
		values, err := readFile(file)
		if err != nil {
			return "", false, err
		}
		if v, ok := values[string(key)]; ok {
			return v, true, nil
		}
	}
	return "", false, nil
}

// Set writes key to the highest-precedence file in scope.
func (s *Store) Set(key Option, value string, scope Scope) error {
	file := s.Files(scope)[0]
	values, err := readFile(file)
	if err != nil {
		return err
	}
	values[string(key)] = value
	return writeFile(file, values)
}

// Unset removes key from the first file in scope that sets it. It reports
// the file changed, or "" when no file had the key.
func (s *Store) Unset(key Option, scope Scope) (string, error) {
	for _, file := range s.Files(scope) {
		values, err := readFile(file)
		if err != nil {
			return "", err
		}
		if _, ok := values[string(key)]; !ok {
			continue
		}
		delete(values, string(key))
		return file, writeFile(file, values)
	}
	return "", nil
}

// All merges every file in scope; earlier files win.
func (s *Store) All(scope Scope) (map[string]string, error) {
	merged := make(map[string]string)
	files := s.Files(scope)
	for i := len(files) - 1; i >= 0; i-- {
		values, err := readFile(files[i])
		if err != nil {
			return nil, err
		}
		for k, v := range values {
			merged[k] = v
		}
	}
	return merged, nil
}

// Existing returns the files in scope that exist on disk.
func (s *Store) Existing(scope Scope) []string {
	var out []string
	for _, file := range s.Files(scope) {
		if _, err := os.Stat(file); err == nil {
			out = append(out, file)
		}
	}
	return out
}

// Remove deletes one config file. A missing file is not an error.
func (s *Store) Remove(file string) error {
	if err := os.Remove(file); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing %s: %w", file, err)
	}
	return nil
}

func writeFile(path string, values map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	if err := godotenv.Write(values, path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
