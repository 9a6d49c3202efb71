package app

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavelc4/aether-resolver/config"
)

func testConfig() *config.Config {
	return &config.Config{
		HTTPAddr:       ":0",
		RequestTimeout: time.Second,
		Workers:        2,
		MaxRetries:     1,
		RetryDelay:     time.Millisecond,
		SocketTimeout:  time.Second,
		YtDlpPath:      "yt-dlp",
		RateLimit:      10,
	}
}

func TestHTTPServer(t *testing.T) {
	gin.SetMode(gin.TestMode)
	a, err := New(testConfig())
	require.NoError(t, err)
	t.Cleanup(a.Close)

	srv := a.HTTPServer()
	assert.Equal(t, ":0", srv.Addr)
	assert.Greater(t, srv.WriteTimeout, time.Second)

	w := httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
}

func TestNewBotNeedsCredentials(t *testing.T) {
	a, err := New(testConfig())
	require.NoError(t, err)
	t.Cleanup(a.Close)

	_, err = a.NewBot()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "APP_ID")
}

func TestNewBot(t *testing.T) {
	cfg := testConfig()
	cfg.AppID = 12345
	cfg.AppHash = "0123456789abcdef"
	cfg.SessionDir = t.TempDir()

	a, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(a.Close)

	b, err := a.NewBot()
	require.NoError(t, err)
	assert.NotNil(t, b)
}
