// Package pathmove rewrites the game paths stored by the front-end's
// launcher configs after a library moves to a different drive or folder.
// TeknoParrot keeps one XML profile per game; PC Games keeps Application=
// entries in a PCLauncher INI.
package pathmove

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"

	"cabkit/internal/stringutil"
)

const gamePathElement = "GamePath"

// ProfileChange records one rewritten TeknoParrot profile.
type ProfileChange struct {
	File    string
	NewPath string
}

// TeknoParrot rewrites GamePath entries in profile XMLs.
type TeknoParrot struct {
	logger *slog.Logger
}

// NewTeknoParrot returns a TeknoParrot rewriter.
func NewTeknoParrot(logger *slog.Logger) *TeknoParrot {
	if logger == nil {
		logger = slog.Default()
	}
	return &TeknoParrot{logger: logger}
}

// RetargetDrive swaps the drive letter of the GamePath element in every XML
// profile under profilesDir. Profiles without a GamePath, or whose path has
// no drive letter, are left untouched. A profile that fails to parse is
// logged and skipped; the rest continue.
func (t *TeknoParrot) RetargetDrive(profilesDir string, driveLetter byte) ([]ProfileChange, error) {
	entries, err := os.ReadDir(profilesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read profiles directory: %w", err)
	}

	var changes []ProfileChange
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".xml") {
			continue
		}

		xmlPath := filepath.Join(profilesDir, entry.Name())
		change, err := t.retargetProfile(xmlPath, driveLetter)
		if err != nil {
			t.logger.Warn("Skipping unreadable profile", "file", entry.Name(), "error", err)
			continue
		}
		if change != nil {
			changes = append(changes, *change)
		}
	}
	return changes, nil
}

func (t *TeknoParrot) retargetProfile(xmlPath string, driveLetter byte) (*ProfileChange, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(xmlPath); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("profile has no root element")
	}

	node := root.FindElement(gamePathElement)
	if node == nil {
		return nil, nil
	}

	oldPath := node.Text()
	if !stringutil.HasDriveLetter(oldPath) {
		return nil, nil
	}

	newPath := stringutil.SwapDriveLetter(oldPath, driveLetter)
	if newPath == oldPath {
		return nil, nil
	}
	node.SetText(newPath)

	if err := doc.WriteToFile(xmlPath); err != nil {
		return nil, fmt.Errorf("failed to write profile: %w", err)
	}

	t.logger.Debug("Rewrote profile GamePath", "file", filepath.Base(xmlPath), "path", newPath)
	return &ProfileChange{File: filepath.Base(xmlPath), NewPath: newPath}, nil
}
