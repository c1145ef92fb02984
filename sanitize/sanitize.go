// Package sanitize renames files and directories whose names contain
// characters the front-end toolchain cannot handle. The walk is post-order:
// everything inside a directory is renamed before the directory itself, so a
// container rename never invalidates a pending path. Re-running over a clean
// tree renames nothing.
package sanitize

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Rename records one applied rename.
type Rename struct {
	From string
	To   string
}

// Skip records an entry left alone because its sanitized name was already
// taken by a sibling.
type Skip struct {
	Path   string
	Reason string
}

// Summary aggregates one sanitizer run.
type Summary struct {
	Renamed []Rename
	Skipped []Skip
}

// Sanitizer applies a replacement rule set to every name beneath a starting
// directory.
type Sanitizer struct {
	rules  map[string]string
	logger *slog.Logger
}

// New returns a Sanitizer using rules, a map of disallowed substring to its
// replacement.
func New(rules map[string]string, logger *slog.Logger) *Sanitizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sanitizer{rules: rules, logger: logger}
}

// CleanName applies the rule set to a single name. File extensions are
// preserved and rules only apply to the base name; a directory name is
// cleaned whole, it has no extension to protect. The result is additionally
// trimmed of leading/trailing whitespace and repeated spaces are collapsed.
func (s *Sanitizer) CleanName(name string, isDir bool) string {
	var ext string
	base := name
	if !isDir {
		ext = filepath.Ext(name)
		base = strings.TrimSuffix(name, ext)
	}

	// Rules apply in sorted key order so the outcome never depends on map
	// iteration.
	for _, from := range sortedKeys(s.rules) {
		base = strings.ReplaceAll(base, from, s.rules[from])
	}
	for strings.Contains(base, "  ") {
		base = strings.ReplaceAll(base, "  ", " ")
	}
	base = strings.TrimSpace(base)

	if base == "" {
		// A rule set that empties the whole name leaves the original alone;
		// a nameless file helps nobody.
		return name
	}
	return base + ext
}

// Run walks startDir depth-first and renames every entry whose sanitized
// name differs. The starting directory itself is never renamed.
func (s *Sanitizer) Run(startDir string) (Summary, error) {
	info, err := os.Stat(startDir)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to stat start directory: %w", err)
	}
	if !info.IsDir() {
		return Summary{}, fmt.Errorf("%s is not a directory", startDir)
	}

	var summary Summary
	if err := s.walk(startDir, &summary); err != nil {
		return summary, err
	}
	return summary, nil
}

// walk descends into dir before renaming its entries: children first, then
// the entry itself when it is a directory.
func (s *Sanitizer) walk(dir string, summary *Summary) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		full := filepath.Join(dir, entry.Name())

		if entry.IsDir() {
			if err := s.walk(full, summary); err != nil {
				return err
			}
		}

		cleaned := s.CleanName(entry.Name(), entry.IsDir())
		if cleaned == entry.Name() {
			continue
		}

		target := filepath.Join(dir, cleaned)
		if _, err := os.Lstat(target); err == nil {
			s.logger.Warn("Sanitized name already exists, skipping", "path", full, "target", target)
			summary.Skipped = append(summary.Skipped, Skip{Path: full, Reason: "target name already exists"})
			continue
		}

		if err := os.Rename(full, target); err != nil {
			return fmt.Errorf("failed to rename %s: %w", full, err)
		}
		s.logger.Debug("Renamed entry", "from", full, "to", target)
		summary.Renamed = append(summary.Renamed, Rename{From: full, To: target})
	}

	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
