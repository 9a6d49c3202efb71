package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/go-faster/errors"

	"github.com/pavelc4/aether-resolver/internal/media"
	"github.com/pavelc4/aether-resolver/pkg/logger"
)

type runFunc func(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)

func runCommand(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// YtDlp runs the yt-dlp binary and decodes its single-JSON dump.
type YtDlp struct {
	path    string
	cookies string
	run     runFunc
}

func NewYtDlp(path, cookies string) *YtDlp {
	if path == "" {
		path = "yt-dlp"
	}
	return &YtDlp{
		path:    path,
		cookies: cookies,
		run:     runCommand,
	}
}

func (y *YtDlp) Extract(ctx context.Context, url string, opts Options) (*media.Info, error) {
	args := y.buildArgs(opts)
	args = append(args, url)

	stdout, stderr, err := y.run(ctx, y.path, args...)
	if err != nil {
		if msg := errorLines(stderr); msg != "" {
			return nil, &ProviderError{Class: ClassDownload, Message: msg}
		}
		return nil, errors.Wrapf(err, "run %s", y.path)
	}

	out := bytes.TrimSpace(stdout)
	if len(out) == 0 || bytes.Equal(out, []byte("null")) {
		return nil, nil
	}

	var info media.Info
	if err := json.Unmarshal(out, &info); err != nil {
		return nil, &ProviderError{
			Class:   ClassExtractor,
			Message: errors.Wrap(err, "decode yt-dlp output").Error(),
		}
	}
	return &info, nil
}

func (y *YtDlp) buildArgs(opts Options) []string {
	args := []string{
		"--dump-single-json",
		"--no-warnings",
	}

	if opts.Format != "" {
		args = append(args, "-f", opts.Format)
	}
	if opts.MergeOutputFormat != "" {
		args = append(args, "--merge-output-format", opts.MergeOutputFormat)
	}
	if opts.NoPlaylist {
		args = append(args, "--no-playlist")
	}
	if opts.GeoBypass {
		args = append(args, "--geo-bypass")
	}
	if opts.SocketTimeout > 0 {
		secs := int(opts.SocketTimeout.Seconds())
		if secs < 1 {
			secs = 1
		}
		args = append(args, "--socket-timeout", strconv.Itoa(secs))
	}
	if opts.InfoOnly {
		args = append(args, "--skip-download")
	}

	if y.cookies != "" {
		if _, err := os.Stat(y.cookies); err == nil {
			logger.Debug("Using yt-dlp cookies", "path", y.cookies)
			args = append(args, "--cookies", y.cookies)
		} else {
			logger.Warn("Cookies file not found", "path", y.cookies)
		}
	}

	return args
}

// errorLines collects the "ERROR:" lines yt-dlp writes to stderr.
func errorLines(stderr []byte) string {
	var lines []string
	for _, line := range strings.Split(string(stderr), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "ERROR:") {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "; ")
}
