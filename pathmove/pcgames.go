package pathmove

import (
	"fmt"
	"log/slog"
	"strings"

	"cabkit/internal/inidoc"
	"cabkit/internal/stringutil"
)

// PCGames re-roots the Application= entries of a PCLauncher INI under a new
// games directory.
type PCGames struct {
	logger *slog.Logger
}

// NewPCGames returns a PCGames rewriter.
func NewPCGames(logger *slog.Logger) *PCGames {
	if logger == nil {
		logger = slog.Default()
	}
	return &PCGames{logger: logger}
}

// Rebase rewrites every absolute Application path in iniPath so it lives
// under gamesRoot, dropping the old drive letter and top-level folder but
// keeping the per-game tail (game folder and executable). Relative paths
// are left unchanged. Comments and unknown lines survive untouched. Returns
// the number of entries modified.
func (p *PCGames) Rebase(iniPath, gamesRoot string) (int, error) {
	doc, err := inidoc.Load(iniPath)
	if err != nil {
		return 0, err
	}

	root := strings.TrimRight(gamesRoot, `/\`)
	if root == "" {
		return 0, fmt.Errorf("games directory is empty")
	}

	changed := doc.VisitValues(func(section, key, value string) string {
		if !strings.EqualFold(key, "Application") {
			return value
		}
		next, ok := rebaseApplication(value, root)
		if !ok {
			return value
		}
		p.logger.Debug("Rebased launcher entry", "section", section, "path", next)
		return next
	})

	if changed == 0 {
		return 0, nil
	}
	if err := doc.Save(); err != nil {
		return changed, err
	}
	return changed, nil
}

// rebaseApplication rewrites one Application value. The old path's drive
// letter and first folder are discarded; whatever remains (typically
// "Game\Game.exe") is appended to the new root. Surrounding quotes are
// preserved.
func rebaseApplication(value, root string) (string, bool) {
	quote := ""
	path := value
	if len(path) >= 2 && (path[0] == '"' || path[0] == '\'') && path[len(path)-1] == path[0] {
		quote = string(path[0])
		path = path[1 : len(path)-1]
	}

	if !stringutil.HasDriveLetter(path) {
		return value, false
	}

	parts := stringutil.SplitWindowsPath(path)
	// parts[0] is the drive segment ("G:"), parts[1] the old top folder.
	var tail []string
	switch {
	case len(parts) >= 3:
		tail = parts[2:]
	case len(parts) == 2:
		tail = parts[1:]
	default:
		return value, false
	}

	next := root + `\` + strings.Join(tail, `\`)
	next = strings.ReplaceAll(next, "/", `\`)
	return quote + next + quote, true
}
