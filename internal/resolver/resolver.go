// Package resolver turns a media page URL into a download link, metadata or
// a quality catalog. It drives the extraction provider on a bounded worker
// pool with classified, exponentially backed-off retries.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/pavelc4/aether-resolver/internal/extractor"
	"github.com/pavelc4/aether-resolver/internal/media"
	"github.com/pavelc4/aether-resolver/internal/stats"
	"github.com/pavelc4/aether-resolver/pkg/logger"
	"github.com/pavelc4/aether-resolver/pkg/worker"
)

const (
	DefaultMaxRetries    = 3
	DefaultRetryDelay    = 1 * time.Second
	DefaultSocketTimeout = 30 * time.Second
)

type Mode int

const (
	ModeDownload Mode = iota
	ModeMetadata
	ModeQualities
)

func (m Mode) String() string {
	switch m {
	case ModeDownload:
		return "download"
	case ModeMetadata:
		return "metadata"
	case ModeQualities:
		return "qualities"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

type Request struct {
	URL     string
	Mode    Mode
	Quality Tier
}

// Result holds the projection matching the request mode; the others are nil.
type Result struct {
	Mode      Mode
	Download  *media.Download
	Metadata  *media.Metadata
	Qualities *media.Qualities
}

type Config struct {
	MaxRetries    int
	RetryDelay    time.Duration
	Timeout       time.Duration // whole call, all attempts included; 0 disables
	SocketTimeout time.Duration

	// CancelOnTimeout stops the provider call and any pending backoff when the
	// caller gives up. When false the abandoned extraction runs to completion
	// on its worker.
	CancelOnTimeout bool
}

type Option func(*Resolver)

// WithTimer replaces the timer used for backoff waits.
func WithTimer(newTimer func() backoff.Timer) Option {
	return func(r *Resolver) { r.newTimer = newTimer }
}

func WithStats(s *stats.Stats) Option {
	return func(r *Resolver) { r.stats = s }
}

type Resolver struct {
	provider extractor.Provider
	pool     *worker.Pool
	cfg      Config
	newTimer func() backoff.Timer
	stats    *stats.Stats
}

func New(provider extractor.Provider, pool *worker.Pool, cfg Config, opts ...Option) *Resolver {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = DefaultRetryDelay
	}
	if cfg.SocketTimeout <= 0 {
		cfg.SocketTimeout = DefaultSocketTimeout
	}

	r := &Resolver{
		provider: provider,
		pool:     pool,
		cfg:      cfg,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Resolver) Download(ctx context.Context, url string, quality Tier) (*media.Download, error) {
	res, err := r.Resolve(ctx, Request{URL: url, Mode: ModeDownload, Quality: quality})
	if err != nil {
		return nil, err
	}
	return res.Download, nil
}

func (r *Resolver) Metadata(ctx context.Context, url string) (*media.Metadata, error) {
	res, err := r.Resolve(ctx, Request{URL: url, Mode: ModeMetadata})
	if err != nil {
		return nil, err
	}
	return res.Metadata, nil
}

func (r *Resolver) Qualities(ctx context.Context, url string) (*media.Qualities, error) {
	res, err := r.Resolve(ctx, Request{URL: url, Mode: ModeQualities})
	if err != nil {
		return nil, err
	}
	return res.Qualities, nil
}

// Resolve runs one extraction on the pool and projects it for req.Mode.
// The url is expected to be a valid absolute http(s) URL. Errors are always
// *Error.
func (r *Resolver) Resolve(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()

	res, err := r.resolve(ctx, req)

	platform := ""
	if res != nil {
		platform = res.platform()
	}
	if r.stats != nil {
		code := ""
		if err != nil {
			code = KindOf(err).Code()
		}
		r.stats.Record(req.Mode.String(), platform, code)
	}

	if err != nil {
		logger.ErrorWithDuration("Resolve failed", start,
			"mode", req.Mode, "url", logger.MaskURL(req.URL), "kind", KindOf(err), "error", err)
		return nil, err
	}
	logger.InfoWithDuration("Resolved", start,
		"mode", req.Mode, "url", logger.MaskURL(req.URL), "platform", platform)
	return res, nil
}

func (r *Resolver) resolve(ctx context.Context, req Request) (*Result, error) {
	if r.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.Timeout)
		defer cancel()
	}

	quality := req.Quality
	if req.Mode != ModeDownload {
		quality = TierBest
	}
	opts := providerOptions(quality, req.Mode != ModeDownload, r.cfg.SocketTimeout)

	jobCtx := context.WithoutCancel(ctx)
	if r.cfg.CancelOnTimeout {
		jobCtx = ctx
	}

	var info *media.Info
	err := r.pool.Do(ctx, func() error {
		var err error
		info, err = r.extract(jobCtx, req.URL, opts)
		return err
	})
	if err != nil {
		var rerr *Error
		if errors.As(err, &rerr) {
			return nil, rerr
		}
		if ctx.Err() != nil {
			return nil, contextError(ctx.Err())
		}
		return nil, poolError(err)
	}

	return project(req.Mode, info)
}

// extract calls the provider until it succeeds, fails for good or runs out
// of attempts. Waits between attempts block the worker.
func (r *Resolver) extract(ctx context.Context, url string, opts extractor.Options) (*media.Info, error) {
	attempts := 0
	operation := func() (*media.Info, error) {
		attempts++
		info, err := r.provider.Extract(ctx, url, opts)
		if err != nil {
			if ctx.Err() != nil {
				return nil, backoff.Permanent(contextError(ctx.Err()))
			}
			v := classifyError(err)
			if v.Transient {
				return nil, err
			}
			return nil, backoff.Permanent(&Error{Kind: v.Kind, Message: v.Message, Attempts: attempts, Err: err})
		}
		if info == nil {
			return nil, backoff.Permanent(&Error{Kind: KindExtractionFailed, Message: msgNoInfo, Attempts: attempts})
		}
		return info, nil
	}

	notify := func(err error, delay time.Duration) {
		logger.Warn("Extraction attempt failed, retrying",
			"attempt", attempts, "delay", delay, "url", logger.MaskURL(url), "error", err)
	}

	var b backoff.BackOff = newBackOff(r.cfg.RetryDelay, r.cfg.MaxRetries)
	if r.cfg.CancelOnTimeout {
		b = backoff.WithContext(b, ctx)
	}

	var timer backoff.Timer
	if r.newTimer != nil {
		timer = r.newTimer()
	}

	info, err := backoff.RetryNotifyWithTimerAndData(operation, b, notify, timer)
	if err == nil {
		return info, nil
	}
	var rerr *Error
	if errors.As(err, &rerr) {
		return nil, rerr
	}
	if ctx.Err() != nil {
		return nil, contextError(ctx.Err())
	}
	return nil, &Error{
		Kind:     KindExtractionFailed,
		Message:  fmt.Sprintf("Failed after %d attempts: %s", attempts, err),
		Attempts: attempts,
		Err:      err,
	}
}

func (res *Result) platform() string {
	switch {
	case res.Download != nil:
		return res.Download.Platform
	case res.Metadata != nil:
		return res.Metadata.Platform
	case res.Qualities != nil:
		return res.Qualities.Platform
	}
	return ""
}
