package stringutil

import (
	"path/filepath"
	"strings"
)

// StripExtension removes the file extension from a filename.
func StripExtension(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}

// HasDriveLetter reports whether a path starts with a Windows drive letter,
// e.g. "G:\Roms". The cabinet tools see these inside profile and launcher
// files regardless of the host platform.
func HasDriveLetter(path string) bool {
	if len(path) < 2 || path[1] != ':' {
		return false
	}
	c := path[0]
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

// SwapDriveLetter replaces the drive letter of a Windows-style path, leaving
// the rest of the path untouched. Paths without a drive letter come back
// unchanged.
func SwapDriveLetter(path string, letter byte) string {
	if !HasDriveLetter(path) {
		return path
	}
	return string(letter) + path[1:]
}

// SplitWindowsPath splits a backslash-separated path into its segments,
// dropping empty parts.
func SplitWindowsPath(path string) []string {
	raw := strings.Split(path, `\`)
	parts := make([]string, 0, len(raw))
	for _, p := range raw {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
