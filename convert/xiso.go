package convert

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"

	"cabkit/internal/fileutil"
	"cabkit/internal/stringutil"
)

// XisoSuffix marks ISOs already repacked into the xiso layout; they are
// never converted again.
const XisoSuffix = ".xiso.iso"

// Xiso packs original Xbox ISO images via xdvdfs. Sources inside .7z
// archives are extracted to a temp directory first.
type Xiso struct {
	// Path is the xdvdfs executable; empty means discover beside the binary
	// then on PATH.
	Path   string
	logger *slog.Logger

	// OnOutput, when set, receives each line xdvdfs prints.
	OnOutput func(line string)
}

// NewXiso returns an Xiso invoker.
func NewXiso(path string, logger *slog.Logger) *Xiso {
	if logger == nil {
		logger = slog.Default()
	}
	return &Xiso{Path: path, logger: logger}
}

// Executable resolves the xdvdfs binary: the configured path, a copy beside
// this tool, then PATH.
func (x *Xiso) Executable() (string, error) {
	if x.Path != "" {
		if fileutil.FileExists(x.Path) {
			return x.Path, nil
		}
		return "", fmt.Errorf("configured xdvdfs not found at %s", x.Path)
	}

	name := "xdvdfs"
	if isWindows() {
		name = "xdvdfs.exe"
	}
	local := filepath.Join(fileutil.ExecutableDir(), name)
	if fileutil.FileExists(local) {
		return local, nil
	}

	found, err := exec.LookPath("xdvdfs")
	if err != nil {
		return "", fmt.Errorf("xdvdfs not found beside the tool or on PATH: %w", err)
	}
	return found, nil
}

// OutputPath derives the packed image path for a source ISO.
func OutputPath(sourceISO string) string {
	return stringutil.StripExtension(sourceISO) + XisoSuffix
}

// Sources lists the convertible entries of dir: plain ISOs not already
// packed, plus .7z archives.
func (x *Xiso) Sources(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var sources []string
	for _, entry := range fileutil.FilterVisibleFiles(entries) {
		name := entry.Name()
		lower := strings.ToLower(name)
		switch {
		case strings.HasSuffix(lower, XisoSuffix):
			continue
		case strings.HasSuffix(lower, ".iso"), strings.HasSuffix(lower, ".7z"):
			sources = append(sources, filepath.Join(dir, name))
		}
	}
	return sources, nil
}

// Pack converts sourcePath into a packed xiso image beside it and returns
// the output path. A .7z source is extracted first and the extracted ISO is
// packed with the output written next to the archive.
func (x *Xiso) Pack(ctx context.Context, sourcePath string) (string, error) {
	if !fileutil.FileExists(sourcePath) {
		return "", fmt.Errorf("source file does not exist: %s", sourcePath)
	}

	isoPath := sourcePath
	outputPath := OutputPath(sourcePath)

	if strings.EqualFold(filepath.Ext(sourcePath), ".7z") {
		extracted, cleanup, err := x.extractISO(sourcePath)
		if err != nil {
			return "", err
		}
		defer cleanup()
		isoPath = extracted
		outputPath = filepath.Join(filepath.Dir(sourcePath), filepath.Base(OutputPath(extracted)))
	}

	exe, err := x.Executable()
	if err != nil {
		return "", err
	}

	cmd := exec.CommandContext(ctx, exe, "pack", isoPath, outputPath)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return "", fmt.Errorf("failed to attach to xdvdfs output: %w", err)
	}
	cmd.Stderr = cmd.Stdout

	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("failed to start xdvdfs: %w", err)
	}

	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		line := scanner.Text()
		x.logger.Debug("xdvdfs", "line", line)
		if x.OnOutput != nil {
			x.OnOutput(line)
		}
	}

	if err := cmd.Wait(); err != nil {
		os.Remove(outputPath)
		return "", fmt.Errorf("xdvdfs failed: %w", err)
	}
	return outputPath, nil
}

// extractISO pulls the first .iso entry out of a .7z archive into a temp
// directory. The caller must run the returned cleanup.
func (x *Xiso) extractISO(archivePath string) (string, func(), error) {
	reader, err := sevenzip.OpenReader(archivePath)
	if err != nil {
		return "", nil, fmt.Errorf("failed to open archive: %w", err)
	}
	defer reader.Close()

	if err := os.MkdirAll(fileutil.TempDir(), 0755); err != nil {
		return "", nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	tempDir, err := os.MkdirTemp(fileutil.TempDir(), "xiso-")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	cleanup := func() { os.RemoveAll(tempDir) }

	for _, file := range reader.File {
		if !strings.EqualFold(filepath.Ext(file.Name), ".iso") {
			continue
		}

		destPath := filepath.Join(tempDir, filepath.Base(file.Name))
		if err := extractArchiveFile(file, destPath); err != nil {
			cleanup()
			return "", nil, fmt.Errorf("failed to extract %s: %w", file.Name, err)
		}
		x.logger.Debug("Extracted ISO from archive", "archive", archivePath, "iso", destPath)
		return destPath, cleanup, nil
	}

	cleanup()
	return "", nil, fmt.Errorf("archive %s contains no ISO", archivePath)
}

func extractArchiveFile(file *sevenzip.File, destPath string) error {
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dest, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer dest.Close()

	if _, err := io.Copy(dest, src); err != nil {
		return err
	}
	return dest.Sync()
}
