package scaffold

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"cabkit/taxonomy"
)

func sampleTaxonomy() []taxonomy.Category {
	return []taxonomy.Category{
		{Name: "A", Children: []taxonomy.Category{
			{Name: "X"},
			{Name: "Y"},
		}},
		{Name: "B"},
	}
}

func reversed(cats []taxonomy.Category) []taxonomy.Category {
	out := make([]taxonomy.Category, len(cats))
	for i, c := range cats {
		out[len(cats)-1-i] = c
	}
	return out
}

func listDirs(t *testing.T, root string) []string {
	t.Helper()
	var dirs []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() && path != root {
			rel, _ := filepath.Rel(root, path)
			dirs = append(dirs, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walking %s: %v", root, err)
	}
	sort.Strings(dirs)
	return dirs
}

func TestScaffoldEndToEnd(t *testing.T) {
	root := filepath.Join(t.TempDir(), "arcade")
	s := New(nil)

	summary, err := s.Scaffold(context.Background(), root, sampleTaxonomy())
	if err != nil {
		t.Fatalf("Scaffold() error = %v", err)
	}

	if summary.CreatedCount != 5 || summary.ExistingCount != 0 {
		t.Errorf("first run: created = %d, existing = %d, want 5, 0", summary.CreatedCount, summary.ExistingCount)
	}
	if len(summary.Conflicts) != 0 {
		t.Errorf("first run: conflicts = %v, want none", summary.Conflicts)
	}

	want := []string{"A", "A/X", "A/Y", "B"}
	got := listDirs(t, root)
	if len(got) != len(want) {
		t.Fatalf("directories = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("directories[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestScaffoldIdempotence(t *testing.T) {
	root := filepath.Join(t.TempDir(), "arcade")
	s := New(nil)

	first, err := s.Scaffold(context.Background(), root, sampleTaxonomy())
	if err != nil {
		t.Fatalf("first Scaffold() error = %v", err)
	}

	second, err := s.Scaffold(context.Background(), root, sampleTaxonomy())
	if err != nil {
		t.Fatalf("second Scaffold() error = %v", err)
	}

	if second.CreatedCount != 0 {
		t.Errorf("second run created %d directories, want 0", second.CreatedCount)
	}
	if second.ExistingCount != first.CreatedCount {
		t.Errorf("second run existing = %d, want %d", second.ExistingCount, first.CreatedCount)
	}
}

func TestScaffoldOrderIndependence(t *testing.T) {
	base := t.TempDir()
	rootA := filepath.Join(base, "declared")
	rootB := filepath.Join(base, "reversed")
	s := New(nil)

	if _, err := s.Scaffold(context.Background(), rootA, sampleTaxonomy()); err != nil {
		t.Fatalf("Scaffold(declared) error = %v", err)
	}
	if _, err := s.Scaffold(context.Background(), rootB, reversed(sampleTaxonomy())); err != nil {
		t.Fatalf("Scaffold(reversed) error = %v", err)
	}

	dirsA := listDirs(t, rootA)
	dirsB := listDirs(t, rootB)
	if len(dirsA) != len(dirsB) {
		t.Fatalf("directory sets differ: %v vs %v", dirsA, dirsB)
	}
	for i := range dirsA {
		if dirsA[i] != dirsB[i] {
			t.Errorf("directory sets differ at %d: %q vs %q", i, dirsA[i], dirsB[i])
		}
	}
}

func TestScaffoldNonDestructive(t *testing.T) {
	root := filepath.Join(t.TempDir(), "arcade")
	s := New(nil)

	if _, err := s.Scaffold(context.Background(), root, sampleTaxonomy()); err != nil {
		t.Fatalf("Scaffold() error = %v", err)
	}

	keeper := filepath.Join(root, "A", "X", "game.rom")
	if err := os.WriteFile(keeper, []byte("do not touch"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := s.Scaffold(context.Background(), root, sampleTaxonomy()); err != nil {
		t.Fatalf("re-Scaffold() error = %v", err)
	}

	data, err := os.ReadFile(keeper)
	if err != nil {
		t.Fatalf("pre-existing file gone: %v", err)
	}
	if string(data) != "do not touch" {
		t.Errorf("pre-existing file content = %q, want %q", data, "do not touch")
	}
}

func TestScaffoldPathConflict(t *testing.T) {
	root := filepath.Join(t.TempDir(), "arcade")
	if err := os.MkdirAll(root, 0755); err != nil {
		t.Fatal(err)
	}
	// A plain file occupying a declared directory path.
	if err := os.WriteFile(filepath.Join(root, "B"), []byte("in the way"), 0644); err != nil {
		t.Fatal(err)
	}

	s := New(nil)
	summary, err := s.Scaffold(context.Background(), root, sampleTaxonomy())
	if err != nil {
		t.Fatalf("Scaffold() error = %v", err)
	}

	if len(summary.Conflicts) != 1 {
		t.Fatalf("conflicts = %d, want 1", len(summary.Conflicts))
	}
	if !errors.Is(summary.Conflicts[0].Reason, ErrPathConflict) {
		t.Errorf("conflict reason = %v, want ErrPathConflict", summary.Conflicts[0].Reason)
	}

	// The occupying file survives untouched.
	data, err := os.ReadFile(filepath.Join(root, "B"))
	if err != nil || string(data) != "in the way" {
		t.Errorf("occupying file modified: %q, %v", data, err)
	}

	// Unrelated subtrees are still created.
	if summary.CreatedCount != 3 {
		t.Errorf("created = %d, want 3", summary.CreatedCount)
	}
	for _, rel := range []string{"A", "A/X", "A/Y"} {
		if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel))); err != nil {
			t.Errorf("expected directory %s missing: %v", rel, err)
		}
	}
}

func TestScaffoldNameInvalid(t *testing.T) {
	root := filepath.Join(t.TempDir(), "arcade")
	cats := []taxonomy.Category{
		{Name: "Bad|Name", Children: []taxonomy.Category{{Name: "Child"}}},
		{Name: "Good"},
	}

	s := New(nil)
	summary, err := s.Scaffold(context.Background(), root, cats)
	if err != nil {
		t.Fatalf("Scaffold() error = %v", err)
	}

	if len(summary.Conflicts) != 1 {
		t.Fatalf("conflicts = %d, want 1", len(summary.Conflicts))
	}
	if !errors.Is(summary.Conflicts[0].Reason, ErrNameInvalid) {
		t.Errorf("conflict reason = %v, want ErrNameInvalid", summary.Conflicts[0].Reason)
	}
	// Conflict paths are absolute regardless of the reason.
	if want := filepath.Join(summary.Root, "Bad|Name"); summary.Conflicts[0].Path != want {
		t.Errorf("conflict path = %q, want %q", summary.Conflicts[0].Path, want)
	}
	// The invalid subtree is skipped entirely; the root and the sibling are
	// created.
	if summary.CreatedCount != 2 {
		t.Errorf("created = %d, want 2", summary.CreatedCount)
	}
}

func TestScaffoldRootUnwritable(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope", "really", "arcade")

	s := New(nil)
	_, err := s.Scaffold(context.Background(), missing, sampleTaxonomy())
	if !errors.Is(err, ErrRootUnwritable) {
		t.Errorf("Scaffold() error = %v, want ErrRootUnwritable", err)
	}
}

func TestScaffoldCreatesMissingRoot(t *testing.T) {
	// Root itself missing but parent exists: allowed.
	root := filepath.Join(t.TempDir(), "arcade")

	s := New(nil)
	summary, err := s.Scaffold(context.Background(), root, sampleTaxonomy())
	if err != nil {
		t.Fatalf("Scaffold() error = %v", err)
	}
	if summary.CreatedCount != 5 {
		t.Errorf("created = %d, want 5", summary.CreatedCount)
	}
}

func TestScaffoldBuiltinLibraries(t *testing.T) {
	root := filepath.Join(t.TempDir(), "cab")
	s := New(nil)

	cats := taxonomy.FullLibrary()
	summary, err := s.Scaffold(context.Background(), root, cats)
	if err != nil {
		t.Fatalf("Scaffold() error = %v", err)
	}

	want := taxonomy.Count(cats) + 1 // the root itself counts
	if summary.CreatedCount != want {
		t.Errorf("created = %d, want %d", summary.CreatedCount, want)
	}
	if _, err := os.Stat(filepath.Join(root, "Roms", "MAME")); err != nil {
		t.Errorf("Roms/MAME missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "Media", "MAME", "Images", "Wheel")); err != nil {
		t.Errorf("Media/MAME/Images/Wheel missing: %v", err)
	}
}
