// sanitize renames files and folders beneath a starting directory so their
// names only contain characters the front-end toolchain accepts. Contents
// are never modified and a second run renames nothing.
//
// Usage: sanitize [flags] [dir]
package main

import (
	"flag"
	"fmt"
	"os"

	"cabkit/internal/bootstrap"
	"cabkit/internal/fileutil"
	"cabkit/internal/locale"
	"cabkit/sanitize"
	"cabkit/version"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "report what would be renamed without touching anything")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Get().Version)
		return
	}

	cfg, _, logger := bootstrap.Init()

	startDir := flag.Arg(0)
	if startDir == "" {
		startDir = fileutil.ExecutableDir()
	}

	s := sanitize.New(cfg.Rules(), logger)

	if *dryRun {
		reportDryRun(s, startDir)
		return
	}

	summary, err := s.Run(startDir)
	if err != nil {
		logger.Error("Sanitize failed", "dir", startDir, "error", err)
		os.Exit(1)
	}

	for _, r := range summary.Renamed {
		fmt.Println(locale.T("sanitize.renamed", map[string]interface{}{"From": r.From, "To": r.To}))
	}
	for _, sk := range summary.Skipped {
		fmt.Println(locale.T("sanitize.collision", map[string]interface{}{"Path": sk.Path}))
	}
	fmt.Println(locale.T("sanitize.summary", map[string]interface{}{
		"Renamed": len(summary.Renamed),
		"Skipped": len(summary.Skipped),
	}))
}

// reportDryRun prints the renames a real run would apply, without renaming.
// Nested renames that only become possible after a parent rename are not
// simulated; a real run may do more.
func reportDryRun(s *sanitize.Sanitizer, startDir string) {
	count := 0
	walk(startDir, func(dir, name string, isDir bool) {
		cleaned := s.CleanName(name, isDir)
		if cleaned != name {
			fmt.Println(locale.T("sanitize.renamed", map[string]interface{}{
				"From": dir + string(os.PathSeparator) + name,
				"To":   dir + string(os.PathSeparator) + cleaned,
			}))
			count++
		}
	})
	fmt.Println(locale.T("sanitize.summary", map[string]interface{}{"Renamed": count, "Skipped": 0}))
}

func walk(dir string, fn func(dir, name string, isDir bool)) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			walk(dir+string(os.PathSeparator)+entry.Name(), fn)
		}
		fn(dir, entry.Name(), entry.IsDir())
	}
}
