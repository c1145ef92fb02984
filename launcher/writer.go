// Package launcher regenerates the PCLauncher module INI consumed by the
// front-end: one record per game, pointing at its launch script. The output
// file is rewritten in full on every run; it is a generated artifact, never
// merged.
package launcher

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cabkit/internal/fileutil"
	"cabkit/internal/stringutil"
)

// Entry is one launcher record.
type Entry struct {
	Name        string
	Application string
}

// Writer builds launcher INI files.
type Writer struct {
	// ExitMethod is emitted into every record; the front-end uses it to
	// close the game.
	ExitMethod string
}

// EntriesFromScripts builds one entry per launch script in scriptDir,
// named after the script without its extension. Hidden files are skipped.
func (w *Writer) EntriesFromScripts(scriptDir string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(scriptDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read script directory: %w", err)
	}

	var entries []Entry
	for _, de := range fileutil.FilterVisibleFiles(dirEntries) {
		ext := strings.ToLower(filepath.Ext(de.Name()))
		if ext != ".bat" && ext != ".cmd" && ext != ".exe" && ext != ".sh" {
			continue
		}
		entries = append(entries, Entry{
			Name:        stringutil.StripExtension(de.Name()),
			Application: filepath.Join(scriptDir, de.Name()),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})
	return entries, nil
}

// EntriesFromNames builds one entry per name, pointing each at a launch
// script of the same name inside scriptDir.
func (w *Writer) EntriesFromNames(scriptDir string, names []string) []Entry {
	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		entries = append(entries, Entry{
			Name:        name,
			Application: filepath.Join(scriptDir, name+".bat"),
		})
	}
	return entries
}

// Render produces the full INI text: a [Name] section with Application and
// ExitMethod keys per entry, blank line between records.
func (w *Writer) Render(entries []Entry) string {
	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "[%s]\n", e.Name)
		fmt.Fprintf(&b, "Application=%s\n", e.Application)
		fmt.Fprintf(&b, "ExitMethod=%s\n", w.ExitMethod)
	}
	return b.String()
}

// WriteFile renders entries and replaces outputPath in full.
func (w *Writer) WriteFile(outputPath string, entries []Entry) error {
	if err := os.WriteFile(outputPath, []byte(w.Render(entries)), 0644); err != nil {
		return fmt.Errorf("failed to write launcher file: %w", err)
	}
	return nil
}
