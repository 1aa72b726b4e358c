package sidecar

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// ErrNotFound indicates the named sidecar binary does not exist in the
// search directory for the current platform.
var ErrNotFound = errors.New("sidecar binary not found")

// Resolve locates the sidecar binary for the current platform inside dir.
// It prefers the platform-suffixed file <name>-<GOOS>-<GOARCH> and falls
// back to the bare name; on Windows both carry the .exe extension.
func Resolve(dir, name string) (string, error) {
	candidates := []string{
		name + "-" + runtime.GOOS + "-" + runtime.GOARCH + exeSuffix(),
		name + exeSuffix(),
	}
	for _, candidate := range candidates {
		path := filepath.Join(dir, candidate)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %q in %s", ErrNotFound, name, dir)
}

// ExecutableDir returns the directory containing the running shell binary,
// which is where sidecar binaries are bundled.
func ExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate shell executable: %w", err)
	}
	return filepath.Dir(exe), nil
}

func exeSuffix() string {
	if runtime.GOOS == "windows" {
		return ".exe"
	}
	return ""
}
