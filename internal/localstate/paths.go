// Package localstate locates on-disk state for local (single-machine) runs.
package localstate

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	envHome    = "MATCH_BACKEND_HOME" // override for tests and containers
	dirName    = ".matchmaker"        // default under $HOME
	dbFilename = "match.db"
)

// DataDir returns the directory holding local state (~/.matchmaker unless
// MATCH_BACKEND_HOME is set). It is not created; the SQLite opener does that.
func DataDir() (string, error) {
	if custom := os.Getenv(envHome); custom != "" {
		return custom, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine user home: %w", err)
	}
	return filepath.Join(home, dirName), nil
}

// DBPath returns the path of the local SQLite database file.
func DBPath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, dbFilename), nil
}
