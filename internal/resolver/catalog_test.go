package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavelc4/aether-resolver/internal/media"
)

func TestBuildCatalog(t *testing.T) {
	info := &media.Info{Formats: []media.Format{
		{FormatID: "140", Ext: "m4a", URL: "u", VCodec: ptr("none"), ACodec: ptr("mp4a"), FileSize: ptr(int64(3_000_000))},
		{FormatID: "18", Ext: "mp4", URL: "u", Height: ptr(360), VCodec: ptr("avc1"), ACodec: ptr("mp4a"), FileSizeApprox: ptr(int64(9_000))},
		{FormatID: "137", Ext: "mp4", URL: "u", Height: ptr(1080), VCodec: ptr("avc1"), ACodec: ptr("none")},
		{FormatID: "136", Ext: "mp4", URL: "u", Height: ptr(720), VCodec: ptr("avc1"), ACodec: ptr("none")},
		{FormatID: "136b", Ext: "mp4", URL: "u", Height: ptr(720), VCodec: ptr("avc1"), ACodec: ptr("none")},
		{FormatID: "22", Ext: "mp4", URL: "u", Height: ptr(720), VCodec: ptr("avc1"), ACodec: ptr("mp4a")},
		{FormatID: "nourl", Ext: "mp4", Height: ptr(2160), VCodec: ptr("avc1")},
		{FormatID: "sb", Ext: "mhtml", URL: "u", FormatNote: ptr("storyboard")},
	}}

	got := BuildCatalog(info)

	ids := make([]string, 0, len(got))
	for _, q := range got {
		ids = append(ids, q.FormatID)
	}
	assert.Equal(t, []string{"137", "136", "22", "18", "140", "sb"}, ids)

	byID := map[string]media.QualityOption{}
	for _, q := range got {
		byID[q.FormatID] = q
	}
	assert.Equal(t, "audio only", byID["140"].Quality)
	assert.Equal(t, int64(3_000_000), *byID["140"].FileSize)
	assert.Equal(t, int64(9_000), *byID["18"].FileSize)
	assert.Nil(t, byID["137"].FileSize)
	assert.Equal(t, "storyboard", byID["sb"].Quality)
	assert.False(t, byID["sb"].HasVideo)
	assert.True(t, byID["22"].HasAudio)
	assert.False(t, byID["136"].HasAudio)
}

func TestBuildCatalogLabels(t *testing.T) {
	info := &media.Info{Formats: []media.Format{
		{FormatID: "a", URL: "u"},
		{FormatID: "b", Ext: "mp4", URL: "u", Height: ptr(0), VCodec: ptr("avc1")},
		{FormatID: "c", Ext: "webm", URL: "u", FormatNote: ptr("")},
	}}

	got := BuildCatalog(info)
	require.Len(t, got, 3)
	assert.Equal(t, "b", got[0].FormatID, "video sorts first")
	assert.Equal(t, "unknown", got[1].Ext)

	labels := []string{}
	for _, q := range got {
		labels = append(labels, q.Quality)
	}
	assert.Equal(t, []string{"unknown", "unknown", "unknown"}, labels)
}

func TestBuildCatalogIdempotent(t *testing.T) {
	info := &media.Info{Formats: []media.Format{
		{FormatID: "1", Ext: "mp4", URL: "u", Height: ptr(480), VCodec: ptr("avc1"), ACodec: ptr("mp4a")},
		{FormatID: "2", Ext: "webm", URL: "u", Height: ptr(480), VCodec: ptr("vp9"), ACodec: ptr("opus")},
		{FormatID: "3", Ext: "mp4", URL: "u", Height: ptr(480), VCodec: ptr("avc1"), ACodec: ptr("mp4a")},
	}}

	first := BuildCatalog(info)
	assert.Len(t, first, 2)
	assert.Equal(t, first, BuildCatalog(info))
}

func TestBuildCatalogEmpty(t *testing.T) {
	got := BuildCatalog(&media.Info{})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestLabelHeight(t *testing.T) {
	assert.Equal(t, 1080, labelHeight("1080p"))
	assert.Equal(t, 0, labelHeight("audio only"))
	assert.Equal(t, 0, labelHeight("hd p"))
	assert.Equal(t, 0, labelHeight("p"))
}
