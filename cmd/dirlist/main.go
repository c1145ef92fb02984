// dirlist writes a flat text listing of a directory's entries into the
// directory itself, excluding the listing file.
//
// Usage: dirlist [flags] [dir]
package main

import (
	"flag"
	"fmt"
	"os"

	"cabkit/internal/bootstrap"
	"cabkit/internal/fileutil"
	"cabkit/internal/locale"
	"cabkit/listing"
	"cabkit/version"
)

func main() {
	outName := flag.String("out", listing.DefaultOutputName, "name of the listing file")
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

	l := &listing.Lister{OutputName: *outName}
	count, err := l.WriteFile(workDir)
	if err != nil {
		logger.Error("Listing failed", "dir", workDir, "error", err)
		os.Exit(1)
	}

	fmt.Println(locale.T("listing.written", map[string]interface{}{
		"Count":  count,
		"Output": *outName,
	}))
}
