// Package placeholder generates one stub launcher script per game folder.
// The front-end wheel needs a launchable file per title even when the real
// launcher is managed elsewhere; these stubs mirror the folder names
// exactly. Only immediate subdirectories are considered, never recursed.
package placeholder

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cabkit/internal/fileutil"
)

// DefaultOutputDir is the subdirectory placeholders are written to, and the
// one subdirectory never treated as a game folder.
const DefaultOutputDir = "Launchers"

// Generator emits placeholder launcher scripts.
type Generator struct {
	// OutputDir is the name of the output subdirectory inside the working
	// directory. Empty means DefaultOutputDir.
	OutputDir string
}

func (g *Generator) outputDir() string {
	if g.OutputDir != "" {
		return g.OutputDir
	}
	return DefaultOutputDir
}

// Run writes one <folder>.bat stub per immediate subdirectory of workDir
// into the output subdirectory, creating it when missing. Existing stubs are
// rewritten; they are generated artifacts. Returns the stub names written.
func (g *Generator) Run(workDir string) ([]string, error) {
	entries, err := os.ReadDir(workDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read working directory: %w", err)
	}

	outDir := filepath.Join(workDir, g.outputDir())
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var written []string
	for _, entry := range fileutil.FilterHiddenDirectories(entries) {
		if strings.EqualFold(entry.Name(), g.outputDir()) {
			continue
		}

		stubPath := filepath.Join(outDir, entry.Name()+".bat")
		if err := os.WriteFile(stubPath, []byte(stubContent(entry.Name())), 0644); err != nil {
			return written, fmt.Errorf("failed to write placeholder %s: %w", stubPath, err)
		}
		written = append(written, entry.Name()+".bat")
	}

	return written, nil
}

// stubContent is the body of a placeholder script. CRLF line endings: the
// cabinet runs these under cmd.exe.
func stubContent(name string) string {
	return "@echo off\r\n" +
		"rem placeholder launcher for \"" + name + "\"\r\n" +
		"exit /b 0\r\n"
}
