// Package scaffold materializes a declared taxonomy as nested directories
// under a root. Runs are idempotent and order-independent: every target path
// is derived from the taxonomy alone, existing directories and their contents
// are never touched, and re-running after a partial failure is always safe.
package scaffold

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/atomic"

	"cabkit/taxonomy"
)

// Result tags the outcome for a single category path.
type Result int

const (
	Created Result = iota
	AlreadyExisted
)

// Conflict records a category path that could not be created, either because
// a plain file already occupies it or because the category name is not a
// legal path segment.
type Conflict struct {
	Path   string
	Reason error
}

// RunSummary aggregates one scaffold run.
type RunSummary struct {
	Root          string
	CreatedCount  int
	ExistingCount int
	Conflicts     []Conflict
}

// Scaffolder creates taxonomy directories under a root.
type Scaffolder struct {
	logger *slog.Logger

	// OnResult, when set, is invoked for every category path with its
	// outcome. Called from worker goroutines; must be safe for concurrent
	// use.
	OnResult func(relPath string, result Result)
}

// New returns a Scaffolder logging through logger.
func New(logger *slog.Logger) *Scaffolder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scaffolder{logger: logger}
}

// Scaffold ensures every category in the taxonomy exists as a directory
// under root. Missing directories are created, existing ones are left
// untouched. A plain file occupying a declared path is reported as a
// conflict without aborting unrelated subtrees. The only fatal condition is
// an unusable root; everything else accumulates into the summary.
//
// Top-level subtrees are processed by a small worker pool. Directory targets
// commute, so no ordering beyond parent-before-child (handled by
// os.MkdirAll) is needed. Cancellation is honored between subtrees;
// directories already created stay, consistent with idempotence.
func (s *Scaffolder) Scaffold(ctx context.Context, root string, categories []taxonomy.Category) (RunSummary, error) {
	root = strings.TrimRight(root, `/\`)
	if root == "" {
		return RunSummary{}, newScaffoldError("preflight", root, ErrRootUnwritable)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return RunSummary{}, newScaffoldError("preflight", root, err)
	}

	rootResult, err := checkRootUsable(absRoot)
	if err != nil {
		return RunSummary{Root: absRoot}, err
	}

	created := atomic.NewInt64(0)
	existing := atomic.NewInt64(0)

	// The root is part of the scaffold and counts like any category.
	switch rootResult {
	case Created:
		created.Inc()
	case AlreadyExisted:
		existing.Inc()
	}

	var (
		mu        sync.Mutex
		conflicts []Conflict
	)
	addConflict := func(c Conflict) {
		mu.Lock()
		conflicts = append(conflicts, c)
		mu.Unlock()
	}

	sem := make(chan struct{}, workerCount(len(categories)))
	var wg sync.WaitGroup

	for _, top := range categories {
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(cat taxonomy.Category) {
			defer wg.Done()
			defer func() { <-sem }()
			s.scaffoldSubtree(absRoot, "", cat, created, existing, addConflict)
		}(top)
	}
	wg.Wait()

	summary := RunSummary{
		Root:          absRoot,
		CreatedCount:  int(created.Load()),
		ExistingCount: int(existing.Load()),
		Conflicts:     conflicts,
	}

	if err := ctx.Err(); err != nil {
		return summary, err
	}
	return summary, nil
}

// scaffoldSubtree walks one category subtree top-down so a parent directory
// always exists before its children are attempted. A NameInvalid or conflict
// on a node skips its descendants but never its cousins.
func (s *Scaffolder) scaffoldSubtree(root, relParent string, cat taxonomy.Category, created, existing *atomic.Int64, addConflict func(Conflict)) {
	relPath := cat.Name
	if relParent != "" {
		relPath = relParent + "/" + cat.Name
	}
	target := filepath.Join(root, filepath.FromSlash(relPath))

	if err := taxonomy.ValidateName(cat.Name); err != nil {
		s.logger.Warn("Skipping category with invalid name", "path", target, "error", err)
		addConflict(Conflict{Path: target, Reason: fmt.Errorf("%w: %v", ErrNameInvalid, err)})
		return
	}

	result, err := ensureDirectory(target)
	if err != nil {
		s.logger.Warn("Category path conflicts with an existing file", "path", target)
		addConflict(Conflict{Path: target, Reason: err})
		return
	}

	switch result {
	case Created:
		created.Inc()
		s.logger.Debug("Created directory", "path", target)
	case AlreadyExisted:
		existing.Inc()
	}

	if s.OnResult != nil {
		s.OnResult(relPath, result)
	}

	for _, child := range cat.Children {
		s.scaffoldSubtree(root, relPath, child, created, existing, addConflict)
	}
}

// ensureDirectory creates path if missing and reports which case applied. A
// non-directory already occupying the path is a conflict, never overwritten.
func ensureDirectory(path string) (Result, error) {
	info, err := os.Lstat(path)
	switch {
	case err == nil && info.IsDir():
		return AlreadyExisted, nil
	case err == nil:
		return 0, newScaffoldError("mkdir", path, ErrPathConflict)
	case !os.IsNotExist(err):
		return 0, newScaffoldError("stat", path, err)
	}

	if err := os.MkdirAll(path, 0755); err != nil {
		// A file may have appeared between the stat and the mkdir, or an
		// ancestor segment is occupied by a file; either way it is the same
		// conflict to the caller.
		return 0, newScaffoldError("mkdir", path, fmt.Errorf("%w: %v", ErrPathConflict, err))
	}
	return Created, nil
}

// checkRootUsable verifies the root can hold directories before anything is
// mutated, creating it when missing. The root itself may be absent as long
// as its parent exists and is writable.
func checkRootUsable(root string) (Result, error) {
	info, err := os.Stat(root)
	if err == nil {
		if !info.IsDir() {
			return 0, newScaffoldError("preflight", root, ErrPathConflict)
		}
		return AlreadyExisted, checkWritable(root)
	}
	if !os.IsNotExist(err) {
		return 0, newScaffoldError("preflight", root, err)
	}

	parent := filepath.Dir(root)
	pinfo, perr := os.Stat(parent)
	if perr != nil || !pinfo.IsDir() {
		return 0, newScaffoldError("preflight", root, fmt.Errorf("%w: parent %s does not exist", ErrRootUnwritable, parent))
	}
	if err := checkWritable(parent); err != nil {
		return 0, err
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return 0, newScaffoldError("preflight", root, fmt.Errorf("%w: %v", ErrRootUnwritable, err))
	}
	return Created, nil
}

// checkWritable probes dir with a throwaway entry; permission bits alone are
// not trustworthy across filesystems.
func checkWritable(dir string) error {
	probe, err := os.CreateTemp(dir, ".cabkit-probe-*")
	if err != nil {
		return newScaffoldError("preflight", dir, fmt.Errorf("%w: %v", ErrRootUnwritable, err))
	}
	name := probe.Name()
	probe.Close()
	os.Remove(name)
	return nil
}

func workerCount(topLevel int) int {
	const maxWorkers = 4
	if topLevel < 1 {
		return 1
	}
	if topLevel > maxWorkers {
		return maxWorkers
	}
	return topLevel
}
