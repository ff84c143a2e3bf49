package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileName is the name of both the local and the system config file.
const FileName = ".lt"

// Paths locates the files the CLI reads and writes.
type Paths struct {
	AppDir     string
	SystemFile string
	// LocalFile is the nearest .lt walking up from the working directory;
	// empty when there is none.
	LocalFile string
	WorkDir   string
	DB        string
}

// Env looks up environment variables. os.LookupEnv satisfies it.
type Env func(key string) (string, bool)

// ResolvePaths determines the application directory ($LT_HOME or the user
// config dir), the cache database ($LT_DB or <appdir>/cache.db) and the
// nearest local config file above workDir.
func ResolvePaths(env Env, workDir string) (Paths, error) {
	appDir, ok := env(EnvHome)
	if !ok || appDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return Paths{}, fmt.Errorf("locating config directory: %w", err)
		}
		appDir = filepath.Join(base, "lt")
	}

	dbPath, ok := env(EnvDB)
	if !ok || dbPath == "" {
		dbPath = filepath.Join(appDir, "cache.db")
	}

	p := Paths{
		AppDir:     appDir,
		SystemFile: filepath.Join(appDir, FileName),
		WorkDir:    workDir,
		DB:         dbPath,
	}
	local, err := findLocal(workDir, p.SystemFile)
	if err != nil {
		return Paths{}, err
	}
	p.LocalFile = local
	return p, nil
}

// findLocal walks up from dir looking for FileName, skipping the system file.
func findLocal(dir, systemFile string) (string, error) {
	if dir == "" {
		return "", nil
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving working directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if candidate != systemFile {
			info, err := os.Stat(candidate)
			if err == nil && !info.IsDir() {
				return candidate, nil
			}
			if err != nil && !errors.Is(err, os.ErrNotExist) {
				return "", fmt.Errorf("checking %s: %w", candidate, err)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// EnsureAppDir creates the application directory.
func (p Paths) EnsureAppDir() error {
	if err := os.MkdirAll(p.AppDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", p.AppDir, err)
	}
	return nil
}
