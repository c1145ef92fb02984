// vidconvert transcodes a video into the fixed HyperSpin wheel profile
// (H.264 high@4.1, AAC stereo, faststart). Source, destination directory
// and output base name are prompted for when not given as flags, the way
// the original interactive converter worked. Already-converted sources are
// skipped via the conversion ledger.
//
// Usage: vidconvert [flags]
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"cabkit/convert"
	"cabkit/internal/bootstrap"
	"cabkit/internal/config"
	"cabkit/internal/fileutil"
	"cabkit/internal/locale"
	"cabkit/internal/stringutil"
	"cabkit/ledger"
	"cabkit/version"
)

const toolName = "ffmpeg-wheel"

func main() {
	source := flag.String("source", "", "source video file (prompted when empty)")
	destDir := flag.String("dest", "", "destination directory (prompted when empty)")
	baseName := flag.String("name", "", "output base name (prompted when empty)")
	force := flag.Bool("force", false, "convert even when the ledger says it was already done")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Get().Version)
		return
	}

	cfg, configDir, logger := bootstrap.Init()

	stdin := bufio.NewReader(os.Stdin)
	src := promptIfEmpty(stdin, *source, "prompt.source")
	dest := promptIfEmpty(stdin, *destDir, "prompt.destdir")
	name := promptIfEmpty(stdin, *baseName, "prompt.basename")
	if name == "" {
		name = stringutil.StripExtension(filepath.Base(src))
	}

	if !fileutil.FileExists(src) {
		logger.Error("Source file does not exist", "source", src)
		os.Exit(1)
	}
	if !fileutil.IsDir(dest) {
		logger.Error("Destination directory does not exist", "dest", dest)
		os.Exit(1)
	}
	if !convert.VideoExtensions[strings.ToLower(filepath.Ext(src))] {
		logger.Error("Not a supported video file", "source", src)
		os.Exit(1)
	}

	led, err := ledger.Open(ledgerPath(cfg, configDir))
	if err != nil {
		logger.Warn("Conversion ledger unavailable, converting everything", "error", err)
	} else {
		defer led.Close()
	}

	if led != nil && !*force {
		if out, seen, lerr := led.Seen(src, toolName); lerr == nil && seen && fileutil.FileExists(out) {
			fmt.Println(locale.T("convert.skip", map[string]interface{}{"Source": src}))
			return
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	f := convert.NewFFmpeg(cfg.FFmpegPath, logger)
	f.OnProgress = func(fraction float64) {
		fmt.Printf("\r%3.0f%%", fraction*100)
	}

	fmt.Println(locale.T("convert.start", map[string]interface{}{"Source": src}))

	output, err := f.Convert(ctx, src, dest, name)
	fmt.Println()
	if err != nil {
		logger.Error("Conversion failed", "source", src, "error", err)
		fmt.Println(locale.T("convert.failed", map[string]interface{}{"Source": src}))
		os.Exit(1)
	}

	if led != nil {
		if err := led.Record(src, output, toolName); err != nil {
			logger.Warn("Could not record conversion", "error", err)
		}
	}

	cfg.LastRoot = dest
	_ = config.Save(configDir, cfg)

	fmt.Println(locale.T("convert.done", map[string]interface{}{"Output": output}))
}

func promptIfEmpty(stdin *bufio.Reader, value, promptID string) string {
	if value != "" {
		return cleanInput(value)
	}
	fmt.Print(locale.T(promptID, nil))
	line, err := stdin.ReadString('\n')
	if err != nil {
		return ""
	}
	return cleanInput(line)
}

// cleanInput trims whitespace and the quotes shells add when a path is
// dragged onto the terminal.
func cleanInput(s string) string {
	return strings.Trim(strings.TrimSpace(s), `"'`)
}

func ledgerPath(cfg *config.Config, configDir string) string {
	if cfg.LedgerPath != "" {
		return cfg.LedgerPath
	}
	return filepath.Join(configDir, "conversions.db")
}
