package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

const (
	// DataDirEnv is the environment default used when no data folder is configured.
	DataDirEnv = "DATA_DIR"
	// DefaultDataDir is used when neither the config nor DataDirEnv provide a folder.
	DefaultDataDir = "data"
	// TempDataDirName is the folder created under the platform temporary directory.
	TempDataDirName = "demo-catalog"
)

// ErrNoWritableDataDir means persistence is impossible on this host.
var ErrNoWritableDataDir = errors.New("no writable data directory")

// ResolveDataDirectory returns the first usable folder among the configured
// one, the environment default and a folder under the temporary directory.
func ResolveDataDirectory(logger *zap.Logger, configured string) (string, error) {
	candidates := DataDirectoryCandidates(configured)
	for _, dir := range candidates {
		if err := ensureWritableDir(dir); err != nil {
			logger.Warn("data directory not usable", zap.String("data.dir", dir), zap.Error(err))
			continue
		}
		logger.Info("data directory resolved", zap.String("data.dir", dir))
		return dir, nil
	}
	return "", fmt.Errorf("%w: tried %s", ErrNoWritableDataDir, strings.Join(candidates, ", "))
}

// DataDirectoryCandidates lists the folders tried in order by ResolveDataDirectory.
func DataDirectoryCandidates(configured string) []string {
	var dirs []string
	if configured = strings.TrimSpace(configured); configured != "" {
		dirs = append(dirs, configured)
	}
	if env := strings.TrimSpace(os.Getenv(DataDirEnv)); env != "" {
		dirs = append(dirs, env)
	} else {
		dirs = append(dirs, DefaultDataDir)
	}
	return append(dirs, filepath.Join(os.TempDir(), TempDataDirName))
}

// ensureWritableDir creates dir if needed and proves a file can be written in it.
func ensureWritableDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	probe, err := os.CreateTemp(dir, ".probe-*")
	if err != nil {
		return err
	}
	name := probe.Name()
	if err = probe.Close(); err != nil {
		return err
	}
	return os.Remove(name)
}
