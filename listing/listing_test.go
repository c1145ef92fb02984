package listing

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestEntries(t *testing.T) {
	work := t.TempDir()
	for _, name := range []string{"Zelda", "mario"} {
		if err := os.Mkdir(filepath.Join(work, name), 0755); err != nil {
			t.Fatal(err)
		}
	}
	for _, name := range []string{"Alien.iso", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(work, name), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}

	l := &Lister{}
	got, err := l.Entries(work)
	if err != nil {
		t.Fatalf("Entries() error = %v", err)
	}

	sep := string(os.PathSeparator)
	want := []string{"Alien.iso", "mario" + sep, "notes.txt", "Zelda" + sep}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Entries() = %v, want %v", got, want)
	}
}

func TestEntriesExcludesOutputFile(t *testing.T) {
	work := t.TempDir()
	if err := os.WriteFile(filepath.Join(work, DefaultOutputName), nil, 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(work, "game.rom"), nil, 0644); err != nil {
		t.Fatal(err)
	}

	l := &Lister{}
	got, err := l.Entries(work)
	if err != nil {
		t.Fatalf("Entries() error = %v", err)
	}
	if len(got) != 1 || got[0] != "game.rom" {
		t.Errorf("Entries() = %v, want [game.rom]", got)
	}
}

func TestWriteFile(t *testing.T) {
	work := t.TempDir()
	for _, name := range []string{"b.bin", "a.bin"} {
		if err := os.WriteFile(filepath.Join(work, name), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}

	l := &Lister{}
	count, err := l.WriteFile(work)
	if err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}

	data, err := os.ReadFile(filepath.Join(work, DefaultOutputName))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "a.bin\nb.bin\n" {
		t.Errorf("listing = %q", data)
	}

	// A second run must not list the listing file.
	if _, err := l.WriteFile(work); err != nil {
		t.Fatalf("second WriteFile() error = %v", err)
	}
	data, _ = os.ReadFile(filepath.Join(work, DefaultOutputName))
	if strings.Contains(string(data), DefaultOutputName) {
		t.Errorf("listing lists itself: %q", data)
	}
}

func TestWriteFileEmptyDir(t *testing.T) {
	work := t.TempDir()

	l := &Lister{}
	count, err := l.WriteFile(work)
	if err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}
	data, err := os.ReadFile(filepath.Join(work, DefaultOutputName))
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 0 {
		t.Errorf("listing = %q, want empty", data)
	}
}
