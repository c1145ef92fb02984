// launchergen regenerates the PCLauncher module INI from a directory of
// launch scripts, or from a flat list of names. The output file is replaced
// in full on every run.
//
// Usage: launchergen [flags]
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"cabkit/internal/bootstrap"
	"cabkit/internal/fileutil"
	"cabkit/internal/locale"
	"cabkit/launcher"
	"cabkit/version"
)

func main() {
	scriptDir := flag.String("scripts", "", "directory containing the launch scripts (default: the tool's own directory)")
	namesFile := flag.String("names", "", "optional file with one game name per line; overrides script enumeration")
	output := flag.String("out", "PC Games.ini", "output INI file")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Get().Version)
		return
	}

	cfg, _, logger := bootstrap.Init()

	dir := *scriptDir
	if dir == "" {
		dir = fileutil.ExecutableDir()
	}

	w := &launcher.Writer{ExitMethod: cfg.ExitMethod}

	var entries []launcher.Entry
	if *namesFile != "" {
		names, err := readNames(*namesFile)
		if err != nil {
			logger.Error("Could not read names file", "file", *namesFile, "error", err)
			os.Exit(1)
		}
		entries = w.EntriesFromNames(dir, names)
	} else {
		var err error
		entries, err = w.EntriesFromScripts(dir)
		if err != nil {
			logger.Error("Could not enumerate launch scripts", "dir", dir, "error", err)
			os.Exit(1)
		}
	}

	outPath := *output
	if !filepath.IsAbs(outPath) {
		outPath = filepath.Join(dir, outPath)
	}

	if err := w.WriteFile(outPath, entries); err != nil {
		logger.Error("Could not write launcher file", "out", outPath, "error", err)
		os.Exit(1)
	}

	fmt.Println(locale.T("launcher.written", map[string]interface{}{
		"Count":  len(entries),
		"Output": outPath,
	}))
}

func readNames(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var names []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		names = append(names, scanner.Text())
	}
	return names, scanner.Err()
}
