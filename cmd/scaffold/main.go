// scaffold materializes the cabinet's library folders: per-system ROM and
// emulator directories plus the front-end's database, media and settings
// tree. Existing directories and their contents are never touched, so it is
// always safe to re-run.
//
// Usage: scaffold [flags] [root]
//
// The root defaults to the directory the tool lives in.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"

	"cabkit/internal/bootstrap"
	"cabkit/internal/config"
	"cabkit/internal/fileutil"
	"cabkit/internal/locale"
	"cabkit/scaffold"
	"cabkit/taxonomy"
	"cabkit/version"
)

func main() {
	library := flag.String("library", "all", "which taxonomy to scaffold: roms, emulators, frontend or all")
	taxonomyFile := flag.String("taxonomy", "", "scaffold a custom taxonomy from a YAML file instead of a built-in one")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Get().Version)
		return
	}

	cfg, configDir, logger := bootstrap.Init()

	root := flag.Arg(0)
	if root == "" {
		root = fileutil.ExecutableDir()
	}

	categories, err := selectTaxonomy(*library, *taxonomyFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s := scaffold.New(logger)
	s.OnResult = func(relPath string, result scaffold.Result) {
		switch result {
		case scaffold.Created:
			fmt.Println(locale.T("scaffold.created", map[string]interface{}{"Path": relPath}))
		case scaffold.AlreadyExisted:
			fmt.Println(locale.T("scaffold.exists", map[string]interface{}{"Path": relPath}))
		}
	}

	fmt.Println(locale.T("scaffold.root", map[string]interface{}{"Root": root}))

	summary, err := s.Scaffold(ctx, root, categories)
	if err != nil {
		var serr *scaffold.Error
		if errors.As(err, &serr) && errors.Is(err, scaffold.ErrRootUnwritable) {
			logger.Error("Root is not usable", "root", root, "error", err)
			os.Exit(1)
		}
		logger.Error("Scaffold aborted", "error", err)
		os.Exit(1)
	}

	for _, c := range summary.Conflicts {
		fmt.Println(locale.T("scaffold.conflict", map[string]interface{}{
			"Path":   c.Path,
			"Reason": c.Reason.Error(),
		}))
	}

	fmt.Println(locale.T("scaffold.summary", map[string]interface{}{
		"Created":   summary.CreatedCount,
		"Existing":  summary.ExistingCount,
		"Conflicts": len(summary.Conflicts),
	}))

	cfg.LastRoot = summary.Root
	if err := config.Save(configDir, cfg); err != nil {
		logger.Warn("Could not save config", "error", err)
	}
}

func selectTaxonomy(library, taxonomyFile string) ([]taxonomy.Category, error) {
	if taxonomyFile != "" {
		return taxonomy.Load(taxonomyFile)
	}

	libraries := taxonomy.Libraries()
	build, ok := libraries[strings.ToLower(library)]
	if !ok {
		names := make([]string, 0, len(libraries))
		for name := range libraries {
			names = append(names, name)
		}
		sort.Strings(names)
		return nil, fmt.Errorf("unknown library %q (valid: %s)", library, strings.Join(names, ", "))
	}
	return build(), nil
}
