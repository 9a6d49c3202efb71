package api

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pavelc4/aether-resolver/internal/media"
	"github.com/pavelc4/aether-resolver/internal/resolver"
	"github.com/pavelc4/aether-resolver/internal/stats"
)

type downloadRequest struct {
	URL     string `json:"url" binding:"required"`
	Quality string `json:"quality" binding:"omitempty,oneof=best worst 360p 720p 1080p"`
}

type urlRequest struct {
	URL string `json:"url" binding:"required"`
}

type downloadResponse struct {
	Status string `json:"status"`
	*media.Download
}

type infoResponse struct {
	Status string `json:"status"`
	*media.Metadata
}

type qualitiesResponse struct {
	Status string `json:"status"`
	*media.Qualities
}

func (s *Server) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": ServiceName,
		"version": Version,
		"endpoints": gin.H{
			"POST /download":  "Resolve a direct download link for a video",
			"POST /info":      "Describe a video without resolving a link",
			"POST /qualities": "List the qualities a video is available in",
			"GET /health":     "Health check, ?verbose=1 adds runtime statistics",
		},
		"qualities": resolver.Tiers(),
	})
}

func (s *Server) health(c *gin.Context) {
	resp := gin.H{"status": "healthy"}
	if c.Query("verbose") != "1" {
		c.JSON(http.StatusOK, resp)
		return
	}

	if s.pool != nil {
		resp["pool"] = gin.H{
			"workers": s.pool.Size(),
			"active":  s.pool.Active(),
			"waiting": s.pool.Waiting(),
		}
	}
	if s.stats != nil {
		resp["requests"] = s.stats.Snapshot()
	}
	resp["system"] = stats.GetSystemInfo(c.Request.Context())
	c.JSON(http.StatusOK, resp)
}

func (s *Server) download(c *gin.Context) {
	var req downloadRequest
	if !bindRequest(c, &req) || !validURL(c, &req.URL) {
		return
	}

	quality := resolver.TierBest
	if req.Quality != "" {
		quality = resolver.Tier(req.Quality)
	}

	d, err := s.resolver.Download(c.Request.Context(), req.URL, quality)
	if err != nil {
		writeResolveError(c, err)
		return
	}
	c.JSON(http.StatusOK, downloadResponse{Status: "success", Download: d})
}

func (s *Server) info(c *gin.Context) {
	var req urlRequest
	if !bindRequest(c, &req) || !validURL(c, &req.URL) {
		return
	}

	m, err := s.resolver.Metadata(c.Request.Context(), req.URL)
	if err != nil {
		writeResolveError(c, err)
		return
	}
	c.JSON(http.StatusOK, infoResponse{Status: "success", Metadata: m})
}

func (s *Server) qualities(c *gin.Context) {
	var req urlRequest
	if !bindRequest(c, &req) || !validURL(c, &req.URL) {
		return
	}

	q, err := s.resolver.Qualities(c.Request.Context(), req.URL)
	if err != nil {
		writeResolveError(c, err)
		return
	}
	c.JSON(http.StatusOK, qualitiesResponse{Status: "success", Qualities: q})
}

func bindRequest(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		writeError(c, http.StatusBadRequest, codeInvalidRequest, "Invalid request: "+err.Error())
		return false
	}
	return true
}

func validURL(c *gin.Context, raw *string) bool {
	*raw = strings.TrimSpace(*raw)
	if err := ValidateURL(*raw); err != nil {
		writeError(c, http.StatusBadRequest, resolver.KindURLValidation.Code(), err.Error())
		return false
	}
	return true
}

// ValidateURL accepts absolute http and https URLs with a host.
func ValidateURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return &resolver.Error{Kind: resolver.KindURLValidation, Message: "URL must not be empty"}
	}
	u, err := url.Parse(raw)
	if err != nil {
		return &resolver.Error{Kind: resolver.KindURLValidation, Message: "Invalid URL", Err: err}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &resolver.Error{Kind: resolver.KindURLValidation, Message: "URL must use http or https"}
	}
	if u.Host == "" {
		return &resolver.Error{Kind: resolver.KindURLValidation, Message: "URL must include a host"}
	}
	return nil
}
