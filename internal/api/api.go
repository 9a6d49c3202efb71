// Package api serves the resolver over HTTP.
package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pavelc4/aether-resolver/internal/media"
	"github.com/pavelc4/aether-resolver/internal/resolver"
	"github.com/pavelc4/aether-resolver/internal/stats"
)

const (
	ServiceName = "Universal Video Downloader API"
	Version     = "1.0.0"
)

// Resolver is the part of *resolver.Resolver the handlers use.
type Resolver interface {
	Download(ctx context.Context, url string, quality resolver.Tier) (*media.Download, error)
	Metadata(ctx context.Context, url string) (*media.Metadata, error)
	Qualities(ctx context.Context, url string) (*media.Qualities, error)
}

type PoolStatus interface {
	Size() int
	Active() int
	Waiting() int
}

type Options struct {
	Resolver  Resolver
	Pool      PoolStatus   // optional, reported by verbose health checks
	Stats     *stats.Stats // optional
	RateLimit int          // requests per minute per client, 0 disables
	APIKey    string       // empty disables the check
}

type Server struct {
	resolver Resolver
	pool     PoolStatus
	stats    *stats.Stats
}

// NewRouter builds the gin engine with all routes and middleware.
func NewRouter(opts Options) *gin.Engine {
	s := &Server{
		resolver: opts.Resolver,
		pool:     opts.Pool,
		stats:    opts.Stats,
	}

	r := gin.New()
	r.Use(Recovery(), RequestLogger(), CORS())

	r.GET("/", s.root)
	r.GET("/health", s.health)

	resolve := r.Group("/")
	resolve.Use(APIKey(opts.APIKey))
	if opts.RateLimit > 0 {
		resolve.Use(NewRateLimiter(opts.RateLimit).Middleware())
	}
	resolve.POST("/download", s.download)
	resolve.POST("/info", s.info)
	resolve.POST("/qualities", s.qualities)

	r.NoRoute(func(c *gin.Context) {
		writeError(c, http.StatusNotFound, codeNotFound, "Not found")
	})

	return r
}
