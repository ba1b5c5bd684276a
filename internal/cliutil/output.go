package cliutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/erraggy/flatjson/internal/fileutil"
)

// SanitizeOutputPath validates and cleans an output file path.
// It resolves ".." components via filepath.Clean + filepath.Abs and
// rejects symlinks, directories, and any path that resolves to one of
// inputPaths. New files in existing directories are accepted. Returns the
// cleaned absolute path.
func SanitizeOutputPath(path string, inputPaths ...string) (string, error) {
	abs, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("cliutil: cannot resolve absolute path: %w", err)
	}

	info, err := os.Lstat(abs)
	switch {
	case err == nil:
		if info.Mode()&os.ModeSymlink != 0 {
			return "", fmt.Errorf("cliutil: refusing to write to symlink: %s", abs)
		}
		if info.IsDir() {
			return "", fmt.Errorf("cliutil: output path is a directory: %s", abs)
		}
	case os.IsNotExist(err):
		// New file
	default:
		return "", fmt.Errorf("cliutil: cannot stat path: %w", err)
	}

	for _, in := range inputPaths {
		if in == "" || in == "-" {
			continue
		}
		absIn, err := filepath.Abs(in)
		if err != nil {
			return "", fmt.Errorf("cliutil: invalid input path %s: %w", in, err)
		}
		if absIn == abs {
			return "", fmt.Errorf("cliutil: output file %s would overwrite input file %s", path, in)
		}
	}

	return abs, nil
}

// WriteOutputFile writes data to a path returned by SanitizeOutputPath.
func WriteOutputFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, fileutil.OwnerReadWrite); err != nil {
		return fmt.Errorf("cliutil: writing %s: %w", path, err)
	}
	return nil
}
