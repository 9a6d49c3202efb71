package resolver

import (
	"github.com/pavelc4/aether-resolver/internal/media"
)

// SelectBestURL picks the URL to hand out for direct playback:
//
//  1. the top-level URL, if the provider resolved one;
//  2. the highest mp4 carrying both audio and video, else the highest
//     video-only mp4 (height first, bitrate breaks ties);
//  3. the last format with a URL, providers list richer formats last;
//  4. the first requested format with a URL.
func SelectBestURL(info *media.Info) (string, error) {
	if info.URL != "" {
		return info.URL, nil
	}

	var combined, videoOnly []media.Format
	for _, f := range info.Formats {
		if f.Ext != "mp4" || f.URL == "" || !f.HasVideo() {
			continue
		}
		if f.HasAudio() {
			combined = append(combined, f)
		} else {
			videoOnly = append(videoOnly, f)
		}
	}

	if best, ok := highest(combined); ok {
		return best.URL, nil
	}
	if best, ok := highest(videoOnly); ok {
		return best.URL, nil
	}

	for i := len(info.Formats) - 1; i >= 0; i-- {
		if u := info.Formats[i].URL; u != "" {
			return u, nil
		}
	}

	for _, f := range info.RequestedFormats {
		if f.URL != "" {
			return f.URL, nil
		}
	}

	return "", ErrNoDownloadURL
}

// highest returns the first format with the greatest (height, bitrate).
func highest(formats []media.Format) (media.Format, bool) {
	if len(formats) == 0 {
		return media.Format{}, false
	}

	best := formats[0]
	for _, f := range formats[1:] {
		if rank(f).greater(rank(best)) {
			best = f
		}
	}
	return best, true
}

type formatRank struct {
	height  int
	bitrate float64
}

func rank(f media.Format) formatRank {
	var r formatRank
	if f.Height != nil {
		r.height = *f.Height
	}
	if f.TBR != nil {
		r.bitrate = *f.TBR
	}
	return r
}

func (r formatRank) greater(o formatRank) bool {
	if r.height != o.height {
		return r.height > o.height
	}
	return r.bitrate > o.bitrate
}
