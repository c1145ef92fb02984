// Package listing emits a flat text listing of a directory, the cabinet's
// quick inventory of a ROM or media folder.
package listing

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultOutputName is the listing file written into the directory itself.
const DefaultOutputName = "listado.txt"

// Lister enumerates the immediate entries of a directory.
type Lister struct {
	// OutputName is excluded from the listing so the file never lists
	// itself. Empty means DefaultOutputName.
	OutputName string
}

func (l *Lister) outputName() string {
	if l.OutputName != "" {
		return l.OutputName
	}
	return DefaultOutputName
}

// Entries returns every immediate entry of workDir except the output file,
// directories suffixed with a path separator, sorted case-insensitively
// with a locale-aware collator so titles sort the way the wheel shows them.
func (l *Lister) Entries(workDir string) ([]string, error) {
	dirEntries, err := os.ReadDir(workDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var names []string
	for _, entry := range dirEntries {
		if strings.EqualFold(entry.Name(), l.outputName()) {
			continue
		}
		name := entry.Name()
		if entry.IsDir() {
			name += string(os.PathSeparator)
		}
		names = append(names, name)
	}

	c := collate.New(language.English, collate.IgnoreCase)
	c.SortStrings(names)
	return names, nil
}

// WriteFile writes the listing into workDir and returns the entry count.
func (l *Lister) WriteFile(workDir string) (int, error) {
	names, err := l.Entries(workDir)
	if err != nil {
		return 0, err
	}

	outPath := filepath.Join(workDir, l.outputName())
	content := strings.Join(names, "\n")
	if len(names) > 0 {
		content += "\n"
	}
	if err := os.WriteFile(outPath, []byte(content), 0644); err != nil {
		return 0, fmt.Errorf("failed to write listing: %w", err)
	}
	return len(names), nil
}
