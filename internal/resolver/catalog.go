package resolver

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pavelc4/aether-resolver/internal/media"
)

const (
	labelAudioOnly = "audio only"
	labelUnknown   = "unknown"
)

type catalogKey struct {
	label    string
	ext      string
	hasAudio bool
}

// BuildCatalog lists the distinct qualities of info, video first and then by
// height, highest first. The first format seen for a (label, ext, audio)
// combination wins.
func BuildCatalog(info *media.Info) []media.QualityOption {
	seen := make(map[catalogKey]struct{}, len(info.Formats))
	options := make([]media.QualityOption, 0, len(info.Formats))

	for _, f := range info.Formats {
		if f.URL == "" {
			continue
		}

		hasVideo, hasAudio := f.HasVideo(), f.HasAudio()
		label := qualityLabel(f, hasVideo, hasAudio)
		ext := f.Ext
		if ext == "" {
			ext = labelUnknown
		}

		key := catalogKey{label: label, ext: ext, hasAudio: hasAudio}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		options = append(options, media.QualityOption{
			FormatID: f.FormatID,
			Quality:  label,
			Ext:      ext,
			FileSize: f.Size(),
			HasAudio: hasAudio,
			HasVideo: hasVideo,
		})
	}

	sort.SliceStable(options, func(i, j int) bool {
		a, b := options[i], options[j]
		if a.HasVideo != b.HasVideo {
			return a.HasVideo
		}
		return labelHeight(a.Quality) > labelHeight(b.Quality)
	})

	return options
}

func qualityLabel(f media.Format, hasVideo, hasAudio bool) string {
	switch {
	case f.Height != nil && *f.Height > 0:
		return strconv.Itoa(*f.Height) + "p"
	case hasAudio && !hasVideo:
		return labelAudioOnly
	case f.FormatNote != nil && *f.FormatNote != "":
		return *f.FormatNote
	default:
		return labelUnknown
	}
}

// labelHeight is the sort height of a label: the number in "720p", 0 for
// anything else. Labels without a height therefore sort with "0p".
func labelHeight(label string) int {
	if !strings.HasSuffix(label, "p") {
		return 0
	}
	h, err := strconv.Atoi(strings.TrimSuffix(label, "p"))
	if err != nil {
		return 0
	}
	return h
}
