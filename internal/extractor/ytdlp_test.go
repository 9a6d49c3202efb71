package extractor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubRun(stdout, stderr string, err error) (runFunc, *[]string) {
	var got []string
	return func(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
		got = append([]string{name}, args...)
		return []byte(stdout), []byte(stderr), err
	}, &got
}

func TestYtDlpBuildArgs(t *testing.T) {
	y := NewYtDlp("", "")
	args := y.buildArgs(Options{
		Format:            "best",
		MergeOutputFormat: "mp4",
		InfoOnly:          true,
		NoPlaylist:        true,
		GeoBypass:         true,
		SocketTimeout:     30 * time.Second,
	})

	assert.Equal(t, []string{
		"--dump-single-json",
		"--no-warnings",
		"-f", "best",
		"--merge-output-format", "mp4",
		"--no-playlist",
		"--geo-bypass",
		"--socket-timeout", "30",
		"--skip-download",
	}, args)
}

func TestYtDlpBuildArgsCookies(t *testing.T) {
	cookies := filepath.Join(t.TempDir(), "cookies.txt")
	require.NoError(t, os.WriteFile(cookies, []byte("# Netscape HTTP Cookie File\n"), 0o600))

	args := NewYtDlp("yt-dlp", cookies).buildArgs(Options{})
	assert.Equal(t, []string{"--dump-single-json", "--no-warnings", "--cookies", cookies}, args)

	missing := NewYtDlp("yt-dlp", filepath.Join(t.TempDir(), "nope.txt")).buildArgs(Options{})
	assert.NotContains(t, missing, "--cookies")
}

func TestYtDlpExtractDecodes(t *testing.T) {
	y := NewYtDlp("/usr/bin/yt-dlp", "")
	run, got := stubRun(`{"extractor":"vimeo","title":"T","url":"https://cdn/x.mp4"}`, "", nil)
	y.run = run

	info, err := y.Extract(context.Background(), "https://vimeo.com/1", Options{Format: "best"})
	require.NoError(t, err)
	require.NotNil(t, info)

	assert.Equal(t, "vimeo", info.Extractor)
	assert.Equal(t, "https://cdn/x.mp4", info.URL)
	assert.Equal(t, "/usr/bin/yt-dlp", (*got)[0])
	assert.Equal(t, "https://vimeo.com/1", (*got)[len(*got)-1])
}

func TestYtDlpExtractNoData(t *testing.T) {
	for _, out := range []string{"", "  \n", "null\n"} {
		y := NewYtDlp("", "")
		y.run, _ = stubRun(out, "", nil)

		info, err := y.Extract(context.Background(), "https://x.com/a", Options{})
		assert.NoError(t, err)
		assert.Nil(t, info)
	}
}

func TestYtDlpExtractReportedError(t *testing.T) {
	y := NewYtDlp("", "")
	stderr := "WARNING: something\nERROR: [youtube] abc: Private video. Sign in if you've been granted access\n"
	y.run, _ = stubRun("", stderr, errors.New("exit status 1"))

	_, err := y.Extract(context.Background(), "https://youtu.be/abc", Options{})

	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ClassDownload, perr.Class)
	assert.Equal(t, "ERROR: [youtube] abc: Private video. Sign in if you've been granted access", perr.Message)
}

func TestYtDlpExtractBadJSON(t *testing.T) {
	y := NewYtDlp("", "")
	y.run, _ = stubRun("{not json", "", nil)

	_, err := y.Extract(context.Background(), "https://x.com/a", Options{})

	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ClassExtractor, perr.Class)
	assert.Contains(t, perr.Message, "decode yt-dlp output")
}

func TestYtDlpExtractUnreportedFailure(t *testing.T) {
	y := NewYtDlp("", "")
	y.run, _ = stubRun("", "", errors.New("exec: \"yt-dlp\": executable file not found in $PATH"))

	_, err := y.Extract(context.Background(), "https://x.com/a", Options{})
	require.Error(t, err)

	var perr *ProviderError
	assert.False(t, errors.As(err, &perr))
	assert.Contains(t, err.Error(), "run yt-dlp")
}

func TestErrorLines(t *testing.T) {
	assert.Equal(t, "", errorLines(nil))
	assert.Equal(t, "ERROR: a; ERROR: b", errorLines([]byte("ERROR: a\r\nnoise\nERROR: b\n")))
}
