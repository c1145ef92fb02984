package fileutil

import (
	"os"
	"path/filepath"
	"strings"
)

// FileExists reports whether path exists at all, file or directory.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// ExecutableDir returns the directory the running binary lives in, falling
// back to the working directory. The tools default to operating on their own
// location, the way the original cabinet scripts did.
func ExecutableDir() string {
	exe, err := os.Executable()
	if err == nil {
		if resolved, rerr := filepath.EvalSymlinks(exe); rerr == nil {
			exe = resolved
		}
		return filepath.Dir(exe)
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

// TempDir returns a working temp directory beside the current directory,
// falling back to the system temp dir.
func TempDir() string {
	wd, err := os.Getwd()
	if err != nil {
		return os.TempDir()
	}
	return filepath.Join(wd, ".tmp")
}

// FilterVisibleFiles keeps plain files whose names do not start with a dot.
func FilterVisibleFiles(entries []os.DirEntry) []os.DirEntry {
	result := make([]os.DirEntry, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() && !strings.HasPrefix(entry.Name(), ".") {
			result = append(result, entry)
		}
	}
	return result
}

// FilterHiddenDirectories keeps directories whose names do not start with a
// dot.
func FilterHiddenDirectories(entries []os.DirEntry) []os.DirEntry {
	result := make([]os.DirEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() && !strings.HasPrefix(entry.Name(), ".") {
			result = append(result, entry)
		}
	}
	return result
}
