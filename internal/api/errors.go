package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pavelc4/aether-resolver/internal/resolver"
)

const (
	codeInvalidRequest = "INVALID_REQUEST"
	codeRateLimited    = "RATE_LIMITED"
	codeUnauthorized   = "UNAUTHORIZED"
	codeNotFound       = "NOT_FOUND"
)

var kindStatus = map[resolver.Kind]int{
	resolver.KindURLValidation:    http.StatusBadRequest,
	resolver.KindAuthRequired:     http.StatusForbidden,
	resolver.KindVideoUnavailable: http.StatusNotFound,
	resolver.KindNoDownloadURL:    http.StatusUnprocessableEntity,
	resolver.KindExtractionFailed: http.StatusBadGateway,
	resolver.KindTimeout:          http.StatusRequestTimeout,
	resolver.KindBusy:             http.StatusServiceUnavailable,
	resolver.KindInternal:         http.StatusInternalServerError,
}

type errorResponse struct {
	Status  string `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// StatusOf maps a resolver error to its HTTP status.
func StatusOf(err error) int {
	if status, ok := kindStatus[resolver.KindOf(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func writeError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, errorResponse{Status: "error", Code: code, Message: message})
}

func writeResolveError(c *gin.Context, err error) {
	kind := resolver.KindOf(err)
	message := err.Error()
	if kind == resolver.KindInternal && message == "" {
		message = "Internal server error"
	}
	writeError(c, StatusOf(err), kind.Code(), message)
}
