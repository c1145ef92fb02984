// placeholders writes one stub launcher script per game folder into a
// Launchers subdirectory, so the wheel has a launchable file per title.
//
// Usage: placeholders [flags] [dir]
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"cabkit/internal/bootstrap"
	"cabkit/internal/fileutil"
	"cabkit/internal/locale"
	"cabkit/placeholder"
	"cabkit/version"
)

func main() {
	outDir := flag.String("out", placeholder.DefaultOutputDir, "output subdirectory for the stub launchers")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Get().Version)
		return
	}

	_, _, logger := bootstrap.Init()

	workDir := flag.Arg(0)
	if workDir == "" {
		workDir = fileutil.ExecutableDir()
	}

	g := &placeholder.Generator{OutputDir: *outDir}
	written, err := g.Run(workDir)
	if err != nil {
		logger.Error("Placeholder generation failed", "dir", workDir, "error", err)
		os.Exit(1)
	}

	fmt.Println(locale.T("placeholder.written", map[string]interface{}{
		"Count":  len(written),
		"Output": filepath.Join(workDir, *outDir),
	}))
}
