package launcher

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEntriesFromScripts(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"Celeste.bat", "Brawlout.bat", "notes.txt", ".hidden.bat", "Doom.exe"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "Subfolder"), 0755); err != nil {
		t.Fatal(err)
	}

	w := &Writer{ExitMethod: "Close Window (Alt+F4)"}
	entries, err := w.EntriesFromScripts(dir)
	if err != nil {
		t.Fatalf("EntriesFromScripts() error = %v", err)
	}

	want := []string{"Brawlout", "Celeste", "Doom"}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d: %+v", len(entries), len(want), entries)
	}
	for i, name := range want {
		if entries[i].Name != name {
			t.Errorf("entries[%d].Name = %q, want %q", i, entries[i].Name, name)
		}
	}
}

func TestEntriesFromNames(t *testing.T) {
	w := &Writer{}
	entries := w.EntriesFromNames("/cab/pc", []string{"Celeste", "  ", "", "Doom "})
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Application != filepath.Join("/cab/pc", "Celeste.bat") {
		t.Errorf("Application = %q", entries[0].Application)
	}
}

func TestRender(t *testing.T) {
	w := &Writer{ExitMethod: "Close Window (Alt+F4)"}
	out := w.Render([]Entry{
		{Name: "Brawlout", Application: `G:\PC\Brawlout.bat`},
		{Name: "Celeste", Application: `G:\PC\Celeste.bat`},
	})

	want := "[Brawlout]\n" +
		"Application=G:\\PC\\Brawlout.bat\n" +
		"ExitMethod=Close Window (Alt+F4)\n" +
		"\n" +
		"[Celeste]\n" +
		"Application=G:\\PC\\Celeste.bat\n" +
		"ExitMethod=Close Window (Alt+F4)\n"
	if out != want {
		t.Errorf("Render() =\n%q\nwant\n%q", out, want)
	}
}

func TestWriteFileOverwrites(t *testing.T) {
	out := filepath.Join(t.TempDir(), "PC Games.ini")
	if err := os.WriteFile(out, []byte("stale content that must vanish"), 0644); err != nil {
		t.Fatal(err)
	}

	w := &Writer{ExitMethod: "Close Window (Alt+F4)"}
	if err := w.WriteFile(out, []Entry{{Name: "Doom", Application: "Doom.bat"}}); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "stale") {
		t.Error("old content survived the rewrite")
	}
	if !strings.HasPrefix(string(data), "[Doom]\n") {
		t.Errorf("unexpected output: %q", data)
	}
}
