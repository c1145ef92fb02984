package convert

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestArgs(t *testing.T) {
	f := NewFFmpeg("", nil)
	args := f.Args("in.mkv", "out.mp4")

	if args[0] != "-y" {
		t.Errorf("args must start with -y, got %q", args[0])
	}
	if args[len(args)-1] != "out.mp4" {
		t.Errorf("args must end with the output path, got %q", args[len(args)-1])
	}

	// The template is fixed; spot-check the parts the wheel player cares
	// about.
	joined := map[string]bool{}
	for i := 0; i < len(args)-1; i++ {
		joined[args[i]+" "+args[i+1]] = true
	}
	for _, pair := range []string{
		"-i in.mkv",
		"-map 0:a?",
		"-c:v libx264",
		"-pix_fmt yuv420p",
		"-crf 18",
		"-c:a aac",
		"-movflags +faststart",
	} {
		if !joined[pair] {
			t.Errorf("args missing %q: %v", pair, args)
		}
	}
}

func TestParseDurationBanner(t *testing.T) {
	banner := `Input #0, matroska,webm, from 'in.mkv':
  Duration: 00:01:30.50, start: 0.000000, bitrate: 5000 kb/s`

	secs, ok := parseDurationBanner(banner)
	if !ok {
		t.Fatal("banner not recognized")
	}
	if secs != 90.5 {
		t.Errorf("duration = %v, want 90.5", secs)
	}

	if _, ok := parseDurationBanner("no duration here"); ok {
		t.Error("recognized a banner with no Duration line")
	}
}

func TestParseTimeLine(t *testing.T) {
	tests := []struct {
		line string
		want float64
		ok   bool
	}{
		{"frame= 1210 fps=120 q=28.0 size=2048KiB time=00:00:40.33 bitrate= 416kbits/s speed=4.0x", 40.33, true},
		{"time=01:02:03.00", 3723, true},
		{"frame= 1 fps=0.0 q=0.0 size=0KiB", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseTimeLine(tt.line)
		if ok != tt.ok {
			t.Errorf("parseTimeLine(%q) ok = %v, want %v", tt.line, ok, tt.ok)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("parseTimeLine(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestScanCarriageLines(t *testing.T) {
	input := "line one\rline two\nline three"
	var got []string
	data := []byte(input)
	for len(data) > 0 {
		advance, token, err := scanCarriageLines(data, true)
		if err != nil {
			t.Fatal(err)
		}
		if advance == 0 {
			break
		}
		got = append(got, string(token))
		data = data[advance:]
	}

	want := []string{"line one", "line two", "line three"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tokens = %v, want %v", got, want)
	}
}

func TestOutputPath(t *testing.T) {
	got := OutputPath(filepath.Join("games", "Halo.iso"))
	want := filepath.Join("games", "Halo") + XisoSuffix
	if got != want {
		t.Errorf("OutputPath() = %q, want %q", got, want)
	}
}

func TestSources(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		"Halo.iso",
		"Fable.7z",
		"Halo.xiso.iso", // already packed
		"notes.txt",
		".hidden.iso",
	}
	for _, name := range files {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "Subdir"), 0755); err != nil {
		t.Fatal(err)
	}

	x := NewXiso("", nil)
	got, err := x.Sources(dir)
	if err != nil {
		t.Fatalf("Sources() error = %v", err)
	}

	want := map[string]bool{
		filepath.Join(dir, "Halo.iso"): true,
		filepath.Join(dir, "Fable.7z"): true,
	}
	if len(got) != len(want) {
		t.Fatalf("Sources() = %v, want the keys of %v", got, want)
	}
	for _, s := range got {
		if !want[s] {
			t.Errorf("unexpected source %q", s)
		}
	}
}

func TestConvertMissingSource(t *testing.T) {
	f := NewFFmpeg("", nil)
	if _, err := f.Convert(t.Context(), filepath.Join(t.TempDir(), "missing.mkv"), t.TempDir(), "out"); err == nil {
		t.Error("Convert() accepted a missing source")
	}
}

func TestPackMissingSource(t *testing.T) {
	x := NewXiso("", nil)
	if _, err := x.Pack(t.Context(), filepath.Join(t.TempDir(), "missing.iso")); err == nil {
		t.Error("Pack() accepted a missing source")
	}
}
