package telegram

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pavelc4/aether-resolver/internal/media"
	"github.com/pavelc4/aether-resolver/internal/stats"
)

func ptr[T any](v T) *T { return &v }

func TestFormatSeconds(t *testing.T) {
	assert.Equal(t, "0:00", FormatSeconds(0))
	assert.Equal(t, "3:32", FormatSeconds(212.4))
	assert.Equal(t, "1:02:03", FormatSeconds(3723))
	assert.Equal(t, "0:00", FormatSeconds(-5))
}

func TestFormatUploadDate(t *testing.T) {
	assert.Equal(t, "2009-10-25", FormatUploadDate("20091025"))
	assert.Equal(t, "2009-10", FormatUploadDate("2009-10"))
	assert.Equal(t, "2009102x", FormatUploadDate("2009102x"))
}

func TestFormatDownload(t *testing.T) {
	text := FormatDownload(&media.Download{
		Platform:    "Youtube",
		Title:       "Tom & Jerry <live>",
		Duration:    ptr(65.0),
		DownloadURL: "https://cdn.example/v.mp4?a=1&b=2",
	}, "@someone")

	assert.Contains(t, text, "<b>Tom &amp; Jerry &lt;live&gt;</b>")
	assert.Contains(t, text, "<code>Youtube</code>")
	assert.Contains(t, text, "<code>1:05</code>")
	assert.Contains(t, text, `href="https://cdn.example/v.mp4?a=1&amp;b=2"`)
	assert.Contains(t, text, "@someone")
}

func TestFormatDownloadLongTitle(t *testing.T) {
	text := FormatDownload(&media.Download{Title: strings.Repeat("é", 150)}, "")
	assert.Contains(t, text, strings.Repeat("é", 97)+"...")
	assert.NotContains(t, text, strings.Repeat("é", 98))
	assert.NotContains(t, text, "By :")
}

func TestFormatMetadata(t *testing.T) {
	text := FormatMetadata(&media.Metadata{
		Platform:    "Vimeo",
		Title:       "Clip",
		Uploader:    ptr("Studio"),
		UploadDate:  ptr("20240131"),
		ViewCount:   ptr(int64(42)),
		Description: ptr(strings.Repeat("x", 400)),
	})

	assert.Contains(t, text, "Studio")
	assert.Contains(t, text, "2024-01-31")
	assert.Contains(t, text, "<code>42</code>")
	assert.NotContains(t, text, "Likes")
	assert.Contains(t, text, strings.Repeat("x", 297)+"...")
}

func TestFormatQualities(t *testing.T) {
	text := FormatQualities(&media.Qualities{
		Platform: "Youtube",
		Title:    "T",
		Qualities: []media.QualityOption{
			{Quality: "1080p", Ext: "mp4", HasVideo: true, FileSize: ptr(int64(2 << 20))},
			{Quality: "720p", Ext: "mp4", HasVideo: true, HasAudio: true},
			{Quality: "audio only", Ext: "m4a", HasAudio: true},
		},
	})

	lines := strings.Split(text, "\n")
	assert.Equal(t, "• <code>1080p</code> mp4 🎞️ video only · 2.0 MB", lines[3])
	assert.Equal(t, "• <code>720p</code> mp4 🎬", lines[4])
	assert.Equal(t, "• <code>audio only</code> m4a 🎵 audio only", lines[5])

	empty := FormatQualities(&media.Qualities{Title: "T"})
	assert.Contains(t, empty, "No qualities available.")
}

func TestFormatQualitiesTruncates(t *testing.T) {
	q := &media.Qualities{Title: "T"}
	for i := 0; i < 25; i++ {
		q.Qualities = append(q.Qualities, media.QualityOption{Quality: "360p", Ext: "mp4"})
	}
	text := FormatQualities(q)
	assert.Equal(t, maxQualityLines, strings.Count(text, "• "))
	assert.Contains(t, text, "… and 5 more")
}

func TestFormatStats(t *testing.T) {
	s := stats.New()
	s.Record("download", "Youtube", "")
	s.Record("download", "Youtube", "")
	s.Record("download", "Tiktok", "")
	s.Record("metadata", "", "TIMEOUT")

	text := FormatStats(s.Snapshot(), &stats.SystemInfo{Hostname: "box", OS: "linux", CPUCores: 8})
	assert.Contains(t, text, "Requests : <code>4</code>")
	assert.Contains(t, text, "├ Youtube : <code>2</code>\n└ Tiktok : <code>1</code>")
	assert.Contains(t, text, "└ TIMEOUT : <code>1</code>")
	assert.Contains(t, text, "box (linux)")

	assert.NotContains(t, FormatStats(stats.New().Snapshot(), nil), "System")
}

func TestFormatError(t *testing.T) {
	assert.Equal(t, "❌ <b>Error:</b> a &lt; b", FormatError(errors.New("a < b")))
}

func TestFormatHelpListsTiers(t *testing.T) {
	assert.Contains(t, FormatHelp(), "quality is one of best, worst, 360p, 720p, 1080p")
}
