// pathmove fixes stored game paths after a library moves to another drive
// or folder: the GamePath inside every TeknoParrot profile XML, or the
// Application= entries of the PC Games launcher INI.
//
// Usage:
//
//	pathmove -system teknoparrot -profiles <UserProfiles dir> -drive E
//	pathmove -system pcgames -ini <PC Games.ini> -games <new games dir>
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"cabkit/internal/bootstrap"
	"cabkit/internal/config"
	"cabkit/internal/fileutil"
	"cabkit/internal/locale"
	"cabkit/pathmove"
	"cabkit/version"
)

func main() {
	system := flag.String("system", "teknoparrot", "which config set to rewrite: teknoparrot or pcgames")
	profilesDir := flag.String("profiles", "", "TeknoParrot UserProfiles directory (default: last used)")
	drive := flag.String("drive", "", "new drive letter for TeknoParrot GamePath entries, e.g. E")
	iniFile := flag.String("ini", "", "PC Games launcher INI file (default: last used)")
	gamesDir := flag.String("games", "", "new PC games root directory (default: last used)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Get().Version)
		return
	}

	cfg, configDir, logger := bootstrap.Init()

	switch strings.ToLower(*system) {
	case "teknoparrot":
		dir := firstNonEmpty(*profilesDir, cfg.UserProfilesDir)
		if dir == "" || !fileutil.IsDir(dir) {
			logger.Error("UserProfiles directory not set or missing", "dir", dir)
			os.Exit(1)
		}
		letter := strings.ToUpper(strings.TrimSpace(*drive))
		if len(letter) != 1 || letter[0] < 'A' || letter[0] > 'Z' {
			logger.Error("A single drive letter is required", "drive", *drive)
			os.Exit(1)
		}

		tp := pathmove.NewTeknoParrot(logger)
		changes, err := tp.RetargetDrive(dir, letter[0])
		if err != nil {
			logger.Error("Profile rewrite failed", "error", err)
			os.Exit(1)
		}

		for _, c := range changes {
			fmt.Println(locale.T("pathmove.profile", map[string]interface{}{"File": c.File, "Path": c.NewPath}))
		}
		fmt.Println(locale.T("pathmove.summary", map[string]interface{}{"Count": len(changes)}))

		cfg.UserProfilesDir = dir
		_ = config.Save(configDir, cfg)

	case "pcgames":
		ini := firstNonEmpty(*iniFile, cfg.PCLauncherINI)
		games := firstNonEmpty(*gamesDir, cfg.PCGamesDir)
		if ini == "" || !fileutil.FileExists(ini) {
			logger.Error("Launcher INI not set or missing", "ini", ini)
			os.Exit(1)
		}
		if games == "" || !fileutil.IsDir(games) {
			logger.Error("Games directory not set or missing", "games", games)
			os.Exit(1)
		}

		pc := pathmove.NewPCGames(logger)
		changed, err := pc.Rebase(ini, games)
		if err != nil {
			logger.Error("INI rewrite failed", "error", err)
			os.Exit(1)
		}
		fmt.Println(locale.T("pathmove.entries", map[string]interface{}{"Count": changed}))

		cfg.PCLauncherINI = ini
		cfg.PCGamesDir = games
		_ = config.Save(configDir, cfg)

	default:
		fmt.Fprintf(os.Stderr, "unknown system %q (valid: teknoparrot, pcgames)\n", *system)
		os.Exit(2)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
