package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// SanitizeOutputPath validates and cleans the file path an encoded document
// is written to. The path is made absolute. Symlinks and directories are
// rejected, and a new file's parent directory must already exist.
func SanitizeOutputPath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("pathutil: empty output path")
	}

	abs, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("pathutil: cannot resolve absolute path: %w", err)
	}

	info, err := os.Lstat(abs)
	switch {
	case err == nil:
		if info.Mode()&os.ModeSymlink != 0 {
			return "", fmt.Errorf("pathutil: refusing to write to symlink: %s", abs)
		}
		if info.IsDir() {
			return "", fmt.Errorf("pathutil: output path is a directory: %s", abs)
		}
	case os.IsNotExist(err):
		dir, statErr := os.Stat(filepath.Dir(abs))
		if statErr != nil || !dir.IsDir() {
			return "", fmt.Errorf("pathutil: parent directory does not exist: %s", filepath.Dir(abs))
		}
	default:
		return "", fmt.Errorf("pathutil: cannot stat path: %w", err)
	}

	return abs, nil
}
