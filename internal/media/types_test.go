package media

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestFormatCodecs(t *testing.T) {
	tests := []struct {
		name         string
		f            Format
		video, audio bool
	}{
		{"both", Format{VCodec: ptr("avc1"), ACodec: ptr("mp4a")}, true, true},
		{"none strings", Format{VCodec: ptr("none"), ACodec: ptr("none")}, false, false},
		{"absent", Format{}, false, false},
		{"audio only", Format{VCodec: ptr("none"), ACodec: ptr("opus")}, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.video, tt.f.HasVideo())
			assert.Equal(t, tt.audio, tt.f.HasAudio())
		})
	}
}

func TestFormatSize(t *testing.T) {
	assert.Nil(t, Format{}.Size())
	assert.Equal(t, int64(10), *Format{FileSize: ptr(int64(10)), FileSizeApprox: ptr(int64(20))}.Size())
	assert.Equal(t, int64(20), *Format{FileSize: ptr(int64(0)), FileSizeApprox: ptr(int64(20))}.Size())
	assert.Equal(t, int64(20), *Format{FileSizeApprox: ptr(int64(20))}.Size())
}

func TestInfoDecodesYtDlpFields(t *testing.T) {
	raw := `{
		"extractor": "youtube",
		"title": "Clip",
		"duration": 12.5,
		"channel": "Chan",
		"view_count": 42,
		"formats": [
			{"format_id": "18", "ext": "mp4", "url": "u18", "height": 360, "vcodec": "avc1", "acodec": "mp4a", "tbr": 500.5, "filesize_approx": 1000},
			{"format_id": "140", "ext": "m4a", "url": "u140", "vcodec": "none", "acodec": "mp4a", "format_note": "medium"}
		]
	}`

	var info Info
	require.NoError(t, json.Unmarshal([]byte(raw), &info))

	assert.Equal(t, "youtube", info.Extractor)
	assert.Nil(t, info.Uploader)
	assert.Equal(t, "Chan", *info.Channel)
	assert.Equal(t, int64(42), *info.ViewCount)
	require.Len(t, info.Formats, 2)
	assert.Equal(t, 360, *info.Formats[0].Height)
	assert.Equal(t, 500.5, *info.Formats[0].TBR)
	assert.Nil(t, info.Formats[1].Height)
	assert.Equal(t, "medium", *info.Formats[1].FormatNote)
}
