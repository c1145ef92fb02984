// xisopack repacks original Xbox ISO images into the xiso layout with
// xdvdfs, batching over a directory. Sources inside .7z archives are
// extracted first. Images already packed (or recorded in the conversion
// ledger) are skipped.
//
// Usage: xisopack [flags] [dir]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"cabkit/convert"
	"cabkit/internal/bootstrap"
	"cabkit/internal/config"
	"cabkit/internal/fileutil"
	"cabkit/internal/locale"
	"cabkit/ledger"
	"cabkit/version"
)

const toolName = "xdvdfs-pack"

func main() {
	force := flag.Bool("force", false, "pack even when the ledger says it was already done")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Get().Version)
		return
	}

	cfg, configDir, logger := bootstrap.Init()

	dir := flag.Arg(0)
	if dir == "" {
		dir = fileutil.ExecutableDir()
	}
	if !fileutil.IsDir(dir) {
		logger.Error("Directory does not exist", "dir", dir)
		os.Exit(1)
	}

	x := convert.NewXiso(cfg.XdvdfsPath, logger)
	x.OnOutput = func(line string) { fmt.Println(line) }

	sources, err := x.Sources(dir)
	if err != nil {
		logger.Error("Could not enumerate sources", "dir", dir, "error", err)
		os.Exit(1)
	}

	led, err := ledger.Open(ledgerPath(cfg, configDir))
	if err != nil {
		logger.Warn("Conversion ledger unavailable, converting everything", "error", err)
	} else {
		defer led.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	converted, skipped, failed := 0, 0, 0
	for _, src := range sources {
		if ctx.Err() != nil {
			break
		}

		if led != nil && !*force {
			if out, seen, lerr := led.Seen(src, toolName); lerr == nil && seen && fileutil.FileExists(out) {
				fmt.Println(locale.T("convert.skip", map[string]interface{}{"Source": src}))
				skipped++
				continue
			}
		}

		fmt.Println(locale.T("convert.start", map[string]interface{}{"Source": src}))
		output, err := x.Pack(ctx, src)
		if err != nil {
			logger.Error("Pack failed", "source", src, "error", err)
			fmt.Println(locale.T("convert.failed", map[string]interface{}{"Source": src}))
			failed++
			continue
		}

		if led != nil {
			if err := led.Record(src, output, toolName); err != nil {
				logger.Warn("Could not record conversion", "error", err)
			}
		}
		fmt.Println(locale.T("convert.done", map[string]interface{}{"Output": output}))
		converted++
	}

	fmt.Println(locale.T("convert.summary", map[string]interface{}{
		"Converted": converted,
		"Skipped":   skipped,
		"Failed":    failed,
	}))

	if failed > 0 {
		os.Exit(1)
	}
}

func ledgerPath(cfg *config.Config, configDir string) string {
	if cfg.LedgerPath != "" {
		return cfg.LedgerPath
	}
	return filepath.Join(configDir, "conversions.db")
}
