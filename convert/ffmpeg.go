// Package convert drives the external converters the cabinet relies on:
// ffmpeg for wheel videos and xdvdfs for original Xbox ISOs. Each invoker
// uses a fixed argument template; this package never inspects media content
// itself.
package convert

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"cabkit/internal/fileutil"
)

// VideoExtensions are the source types the wheel-video converter accepts.
var VideoExtensions = map[string]bool{
	".mp4": true, ".mkv": true, ".mov": true, ".avi": true, ".webm": true, ".m4v": true,
}

var (
	durationRe = regexp.MustCompile(`Duration:\s*(\d+):(\d+):(\d+(?:\.\d+)?)`)
	timeRe     = regexp.MustCompile(`time=(\d+):(\d+):(\d+(?:\.\d+)?)`)
)

// FFmpeg invokes ffmpeg with the fixed wheel-video profile.
type FFmpeg struct {
	// Path is the ffmpeg executable; empty means discover beside the binary
	// then on PATH.
	Path   string
	logger *slog.Logger

	// OnProgress, when set, receives completion in [0,1] as ffmpeg reports
	// time= lines. Only called when the source duration could be probed.
	OnProgress func(fraction float64)
}

// NewFFmpeg returns an FFmpeg invoker.
func NewFFmpeg(path string, logger *slog.Logger) *FFmpeg {
	if logger == nil {
		logger = slog.Default()
	}
	return &FFmpeg{Path: path, logger: logger}
}

// Executable resolves the ffmpeg binary: the configured path, a copy beside
// this tool, then PATH.
func (f *FFmpeg) Executable() (string, error) {
	if f.Path != "" {
		if fileutil.FileExists(f.Path) {
			return f.Path, nil
		}
		return "", fmt.Errorf("configured ffmpeg not found at %s", f.Path)
	}

	local := filepath.Join(fileutil.ExecutableDir(), ffmpegName())
	if fileutil.FileExists(local) {
		return local, nil
	}

	found, err := exec.LookPath("ffmpeg")
	if err != nil {
		return "", fmt.Errorf("ffmpeg not found beside the tool or on PATH: %w", err)
	}
	return found, nil
}

func ffmpegName() string {
	if isWindows() {
		return "ffmpeg.exe"
	}
	return "ffmpeg"
}

func ffprobeName() string {
	if isWindows() {
		return "ffprobe.exe"
	}
	return "ffprobe"
}

func isWindows() bool {
	return os.PathSeparator == '\\'
}

// Args builds the fixed wheel-video argument template. The audio map is
// optional ("0:a?") so videos without an audio track do not fail.
func (f *FFmpeg) Args(sourcePath, outputPath string) []string {
	return []string{
		"-y",
		"-i", sourcePath,
		"-map", "0:v:0",
		"-map", "0:a?",
		"-c:v", "libx264", "-profile:v", "high", "-level", "4.1",
		"-pix_fmt", "yuv420p",
		"-preset", "slow", "-crf", "18",
		"-c:a", "aac", "-b:a", "128k", "-ar", "48000", "-ac", "2",
		"-movflags", "+faststart",
		outputPath,
	}
}

// ProbeDuration returns the source duration in seconds: ffprobe beside
// ffmpeg first, then ffmpeg's own "Duration:" banner. Zero with no error
// means the duration could not be determined; conversion still proceeds,
// only progress reporting is lost.
func (f *FFmpeg) ProbeDuration(ctx context.Context, sourcePath string) (float64, error) {
	ffmpegPath, err := f.Executable()
	if err != nil {
		return 0, err
	}

	ffprobe := filepath.Join(filepath.Dir(ffmpegPath), ffprobeName())
	if !fileutil.FileExists(ffprobe) {
		if found, lerr := exec.LookPath("ffprobe"); lerr == nil {
			ffprobe = found
		} else {
			ffprobe = ""
		}
	}

	if ffprobe != "" {
		out, err := exec.CommandContext(ctx, ffprobe,
			"-v", "error",
			"-show_entries", "format=duration",
			"-of", "default=noprint_wrappers=1:nokey=1",
			sourcePath,
		).Output()
		if err == nil {
			if secs, perr := strconv.ParseFloat(strings.TrimSpace(string(out)), 64); perr == nil {
				return secs, nil
			}
		}
	}

	// ffmpeg -i exits non-zero without an output file; only its banner
	// matters here.
	out, _ := exec.CommandContext(ctx, ffmpegPath, "-i", sourcePath).CombinedOutput()
	if secs, ok := parseDurationBanner(string(out)); ok {
		return secs, nil
	}
	return 0, nil
}

// Convert transcodes sourcePath into destDir as baseName.mp4 and returns the
// output path. Fails fast when the source file or the destination directory
// is missing. The output is written to a temp name beside the destination
// and renamed into place only on success.
func (f *FFmpeg) Convert(ctx context.Context, sourcePath, destDir, baseName string) (string, error) {
	if !fileutil.FileExists(sourcePath) {
		return "", fmt.Errorf("source file does not exist: %s", sourcePath)
	}
	if !fileutil.IsDir(destDir) {
		return "", fmt.Errorf("destination directory does not exist: %s", destDir)
	}

	ffmpegPath, err := f.Executable()
	if err != nil {
		return "", err
	}

	finalPath := filepath.Join(destDir, baseName+".mp4")
	tempPath := filepath.Join(destDir, baseName+".converting.mp4")
	if fileutil.FileExists(tempPath) {
		os.Remove(tempPath)
	}

	duration, err := f.ProbeDuration(ctx, sourcePath)
	if err != nil {
		f.logger.Warn("Could not probe duration", "source", sourcePath, "error", err)
	}

	cmd := exec.CommandContext(ctx, ffmpegPath, f.Args(sourcePath, tempPath)...)
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return "", fmt.Errorf("failed to attach to ffmpeg output: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	scanner := bufio.NewScanner(stderr)
	scanner.Split(scanCarriageLines)
	for scanner.Scan() {
		line := scanner.Text()
		f.logger.Debug("ffmpeg", "line", line)
		if duration <= 0 || f.OnProgress == nil {
			continue
		}
		if elapsed, ok := parseTimeLine(line); ok {
			fraction := elapsed / duration
			if fraction > 1 {
				fraction = 1
			}
			f.OnProgress(fraction)
		}
	}

	if err := cmd.Wait(); err != nil {
		os.Remove(tempPath)
		return "", fmt.Errorf("ffmpeg failed: %w", err)
	}

	if err := os.Rename(tempPath, finalPath); err != nil {
		return "", fmt.Errorf("failed to move converted file into place: %w", err)
	}
	return finalPath, nil
}

// parseDurationBanner extracts the total seconds from ffmpeg's
// "Duration: HH:MM:SS.ss" banner line.
func parseDurationBanner(out string) (float64, bool) {
	m := durationRe.FindStringSubmatch(out)
	if m == nil {
		return 0, false
	}
	return hmsToSeconds(m[1], m[2], m[3])
}

// parseTimeLine extracts the elapsed seconds from an ffmpeg progress line
// containing "time=HH:MM:SS.ss".
func parseTimeLine(line string) (float64, bool) {
	m := timeRe.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	return hmsToSeconds(m[1], m[2], m[3])
}

func hmsToSeconds(h, m, s string) (float64, bool) {
	hours, err1 := strconv.Atoi(h)
	minutes, err2 := strconv.Atoi(m)
	seconds, err3 := strconv.ParseFloat(s, 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, false
	}
	return float64(hours)*3600 + float64(minutes)*60 + seconds, true
}

// scanCarriageLines splits on \n or \r; ffmpeg rewrites its progress line
// with bare carriage returns.
func scanCarriageLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	for i, b := range data {
		if b == '\n' || b == '\r' {
			return i + 1, data[:i], nil
		}
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
