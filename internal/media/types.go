// Package media holds the raw extraction result as reported by an
// extraction provider and the projections handed to callers.
package media

// Info is one extraction result. Field names follow the yt-dlp info dict.
// It is built per request and never shared between requests.
type Info struct {
	Extractor   string   `json:"extractor"`
	Title       string   `json:"title"`
	Description *string  `json:"description,omitempty"`
	Thumbnail   *string  `json:"thumbnail,omitempty"`
	Duration    *float64 `json:"duration,omitempty"`
	Uploader    *string  `json:"uploader,omitempty"`
	Channel     *string  `json:"channel,omitempty"`
	UploadDate  *string  `json:"upload_date,omitempty"`
	ViewCount   *int64   `json:"view_count,omitempty"`
	LikeCount   *int64   `json:"like_count,omitempty"`

	// URL is set when the provider already resolved a single playable URL.
	URL string `json:"url,omitempty"`

	// Formats keeps provider order; selection depends on it.
	Formats          []Format `json:"formats,omitempty"`
	RequestedFormats []Format `json:"requested_formats,omitempty"`
}

type Format struct {
	FormatID       string   `json:"format_id"`
	Ext            string   `json:"ext"`
	URL            string   `json:"url,omitempty"`
	Height         *int     `json:"height,omitempty"`
	VCodec         *string  `json:"vcodec,omitempty"`
	ACodec         *string  `json:"acodec,omitempty"`
	TBR            *float64 `json:"tbr,omitempty"`
	FileSize       *int64   `json:"filesize,omitempty"`
	FileSizeApprox *int64   `json:"filesize_approx,omitempty"`
	FormatNote     *string  `json:"format_note,omitempty"`
}

// HasVideo reports whether a video codec is present and not "none".
func (f Format) HasVideo() bool {
	return codecPresent(f.VCodec)
}

// HasAudio reports whether an audio codec is present and not "none".
func (f Format) HasAudio() bool {
	return codecPresent(f.ACodec)
}

func codecPresent(codec *string) bool {
	return codec != nil && *codec != "none"
}

// Size returns the exact file size, falling back to the approximate one.
func (f Format) Size() *int64 {
	if f.FileSize != nil && *f.FileSize != 0 {
		return f.FileSize
	}
	return f.FileSizeApprox
}

type QualityOption struct {
	FormatID string `json:"format_id"`
	Quality  string `json:"quality"`
	Ext      string `json:"ext"`
	FileSize *int64 `json:"filesize"`
	HasAudio bool   `json:"has_audio"`
	HasVideo bool   `json:"has_video"`
}

type Download struct {
	Platform    string   `json:"platform"`
	Title       string   `json:"title"`
	Thumbnail   *string  `json:"thumbnail"`
	Duration    *float64 `json:"duration"`
	DownloadURL string   `json:"download_url"`
}

type Metadata struct {
	Platform    string   `json:"platform"`
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	Thumbnail   *string  `json:"thumbnail"`
	Duration    *float64 `json:"duration"`
	Uploader    *string  `json:"uploader"`
	UploadDate  *string  `json:"upload_date"`
	ViewCount   *int64   `json:"view_count"`
	LikeCount   *int64   `json:"like_count"`
}

type Qualities struct {
	Platform  string          `json:"platform"`
	Title     string          `json:"title"`
	Qualities []QualityOption `json:"available_qualities"`
}
