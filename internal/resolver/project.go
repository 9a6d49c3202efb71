package resolver

import (
	"errors"
	"fmt"

	"github.com/pavelc4/aether-resolver/internal/media"
)

const unknownTitle = "Unknown Title"

func project(mode Mode, info *media.Info) (*Result, error) {
	platform := NormalizePlatform(info.Extractor)

	switch mode {
	case ModeDownload:
		d, err := projectDownload(platform, info)
		if err != nil {
			return nil, err
		}
		return &Result{Mode: mode, Download: d}, nil
	case ModeMetadata:
		return &Result{Mode: mode, Metadata: projectMetadata(platform, info)}, nil
	case ModeQualities:
		return &Result{Mode: mode, Qualities: projectQualities(platform, info)}, nil
	default:
		return nil, &Error{Kind: KindInternal, Message: fmt.Sprintf("unknown mode %d", int(mode))}
	}
}

func projectDownload(platform string, info *media.Info) (*media.Download, error) {
	url, err := SelectBestURL(info)
	if err != nil {
		if errors.Is(err, ErrNoDownloadURL) {
			return nil, &Error{Kind: KindNoDownloadURL, Message: msgNoDownloadURL, Err: err}
		}
		return nil, &Error{Kind: KindInternal, Message: err.Error(), Err: err}
	}

	return &media.Download{
		Platform:    platform,
		Title:       title(info),
		Thumbnail:   info.Thumbnail,
		Duration:    info.Duration,
		DownloadURL: url,
	}, nil
}

func projectMetadata(platform string, info *media.Info) *media.Metadata {
	uploader := info.Uploader
	if uploader == nil || *uploader == "" {
		uploader = info.Channel
	}

	return &media.Metadata{
		Platform:    platform,
		Title:       title(info),
		Description: info.Description,
		Thumbnail:   info.Thumbnail,
		Duration:    info.Duration,
		Uploader:    uploader,
		UploadDate:  info.UploadDate,
		ViewCount:   info.ViewCount,
		LikeCount:   info.LikeCount,
	}
}

func projectQualities(platform string, info *media.Info) *media.Qualities {
	return &media.Qualities{
		Platform:  platform,
		Title:     title(info),
		Qualities: BuildCatalog(info),
	}
}

func title(info *media.Info) string {
	if info.Title == "" {
		return unknownTitle
	}
	return info.Title
}
