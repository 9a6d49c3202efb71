package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultHTTPAddr       = ":5000"
	DefaultRequestTimeout = 60 * time.Second
	DefaultWorkers        = 4
	DefaultMaxRetries     = 3
	DefaultRetryDelay     = 1 * time.Second
	DefaultSocketTimeout  = 30 * time.Second
	DefaultRateLimit      = 10 // requests per minute per client
	DefaultYtDlpPath      = "yt-dlp"
	DefaultSessionDir     = "data"
)

type Config struct {
	HTTPAddr        string
	RequestTimeout  time.Duration
	Workers         int
	MaxQueue        int
	MaxRetries      int
	RetryDelay      time.Duration
	SocketTimeout   time.Duration
	CancelOnTimeout bool

	YtDlpPath    string
	YtDlpCookies string

	RateLimit int
	APIKey    string

	LogLevel  string
	LogFormat string

	BotToken   string
	AppID      int
	AppHash    string
	SessionDir string
	OwnerID    int64
}

func defaults(v *viper.Viper) {
	v.SetDefault("HTTP_ADDR", DefaultHTTPAddr)
	v.SetDefault("REQUEST_TIMEOUT", DefaultRequestTimeout)
	v.SetDefault("WORKERS", DefaultWorkers)
	v.SetDefault("MAX_QUEUE", 0)
	v.SetDefault("MAX_RETRIES", DefaultMaxRetries)
	v.SetDefault("RETRY_DELAY", DefaultRetryDelay)
	v.SetDefault("SOCKET_TIMEOUT", DefaultSocketTimeout)
	v.SetDefault("CANCEL_ON_TIMEOUT", false)
	v.SetDefault("YTDLP_PATH", DefaultYtDlpPath)
	v.SetDefault("YTDLP_COOKIES", "")
	v.SetDefault("RATE_LIMIT", DefaultRateLimit)
	v.SetDefault("API_KEY", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "pretty")
	v.SetDefault("BOT_TOKEN", "")
	v.SetDefault("APP_ID", 0)
	v.SetDefault("APP_HASH", "")
	v.SetDefault("SESSION_DIR", DefaultSessionDir)
	v.SetDefault("OWNER_ID", 0)
}

// LoadConfig reads defaults, then the optional file named by RESOLVER_CONFIG,
// then the environment.
func LoadConfig() (*Config, error) {
	v := viper.New()
	defaults(v)
	v.AutomaticEnv()

	if path := os.Getenv("RESOLVER_CONFIG"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var durations [3]time.Duration
	for i, key := range []string{"REQUEST_TIMEOUT", "RETRY_DELAY", "SOCKET_TIMEOUT"} {
		d, err := duration(v, key)
		if err != nil {
			return nil, err
		}
		durations[i] = d
	}

	cfg := &Config{
		HTTPAddr:        v.GetString("HTTP_ADDR"),
		RequestTimeout:  durations[0],
		Workers:         v.GetInt("WORKERS"),
		MaxQueue:        v.GetInt("MAX_QUEUE"),
		MaxRetries:      v.GetInt("MAX_RETRIES"),
		RetryDelay:      durations[1],
		SocketTimeout:   durations[2],
		CancelOnTimeout: v.GetBool("CANCEL_ON_TIMEOUT"),
		YtDlpPath:       v.GetString("YTDLP_PATH"),
		YtDlpCookies:    v.GetString("YTDLP_COOKIES"),
		RateLimit:       v.GetInt("RATE_LIMIT"),
		APIKey:          v.GetString("API_KEY"),
		LogLevel:        v.GetString("LOG_LEVEL"),
		LogFormat:       v.GetString("LOG_FORMAT"),
		BotToken:        v.GetString("BOT_TOKEN"),
		AppID:           v.GetInt("APP_ID"),
		AppHash:         v.GetString("APP_HASH"),
		SessionDir:      v.GetString("SESSION_DIR"),
		OwnerID:         v.GetInt64("OWNER_ID"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// duration reads key as a Go duration ("90s", "1m30s"). A bare number such
// as "60" means seconds.
func duration(v *viper.Viper, key string) (time.Duration, error) {
	switch raw := v.Get(key).(type) {
	case time.Duration:
		return raw, nil
	case int:
		return time.Duration(raw) * time.Second, nil
	case int64:
		return time.Duration(raw) * time.Second, nil
	case float64:
		return time.Duration(raw * float64(time.Second)), nil
	}

	s := strings.TrimSpace(v.GetString(key))
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		return time.Duration(secs * float64(time.Second)), nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q", key, s)
	}
	return d, nil
}

func (c *Config) Validate() error {
	if c.Workers <= 0 {
		return fmt.Errorf("WORKERS must be positive, got %d", c.Workers)
	}
	if c.MaxRetries <= 0 {
		return fmt.Errorf("MAX_RETRIES must be positive, got %d", c.MaxRetries)
	}
	if c.MaxQueue < 0 {
		return fmt.Errorf("MAX_QUEUE must not be negative, got %d", c.MaxQueue)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout)
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("RETRY_DELAY must not be negative, got %s", c.RetryDelay)
	}
	return nil
}
