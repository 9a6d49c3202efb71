// Package extractor defines the extraction provider contract and its
// yt-dlp implementation.
package extractor

import (
	"context"
	"time"

	"github.com/pavelc4/aether-resolver/internal/media"
)

type Options struct {
	Format            string        // format selection expression
	MergeOutputFormat string        // container hint for merged streams
	InfoOnly          bool          // skip media resolution where possible
	NoPlaylist        bool          // resolve a single item only
	GeoBypass         bool
	SocketTimeout     time.Duration
}

// Provider turns a page URL into a raw extraction result. A nil Info with a
// nil error means the provider produced no data.
type Provider interface {
	Extract(ctx context.Context, url string, opts Options) (*media.Info, error)
}

type ProviderFunc func(ctx context.Context, url string, opts Options) (*media.Info, error)

func (f ProviderFunc) Extract(ctx context.Context, url string, opts Options) (*media.Info, error) {
	return f(ctx, url, opts)
}

// Class tells apart the failures a provider reports about the media itself.
type Class int

const (
	// ClassDownload is a reported failure whose message decides whether it
	// is final.
	ClassDownload Class = iota + 1
	// ClassExtractor is a failure of the extractor itself; never retried.
	ClassExtractor
)

func (c Class) String() string {
	switch c {
	case ClassDownload:
		return "download"
	case ClassExtractor:
		return "extractor"
	default:
		return "unknown"
	}
}

// ProviderError is a failure reported by the provider. Errors of any other
// type are treated as transient.
type ProviderError struct {
	Class   Class
	Message string
}

func (e *ProviderError) Error() string {
	return e.Message
}
