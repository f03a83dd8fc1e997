package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	dotConfig    = ".config"
	appName      = "ready"
	dbName       = "ready.db"
	scheduleName = "schedule.toml"
)

func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, dotConfig, appName), nil
}

func EnsureDir() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create %s directory: %w", appName, err)
	}
	return dir, nil
}

// DB returns the default database path, creating its directory.
func DB() (string, error) {
	dir, err := EnsureDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, dbName), nil
}

// Schedule returns the path of the optional questionnaire table override.
func Schedule() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, scheduleName), nil
}
