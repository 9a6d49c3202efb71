package resolver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pavelc4/aether-resolver/internal/extractor"
	"github.com/pavelc4/aether-resolver/pkg/worker"
)

type Kind int

const (
	KindInternal Kind = iota
	KindURLValidation
	KindVideoUnavailable
	KindAuthRequired
	KindExtractionFailed
	KindNoDownloadURL
	KindTimeout
	KindBusy
)

var kindNames = map[Kind]struct{ name, code string }{
	KindInternal:         {"Internal", "INTERNAL_ERROR"},
	KindURLValidation:    {"URLValidation", "INVALID_URL"},
	KindVideoUnavailable: {"VideoUnavailable", "VIDEO_UNAVAILABLE"},
	KindAuthRequired:     {"AuthenticationRequired", "AUTH_REQUIRED"},
	KindExtractionFailed: {"ExtractionFailed", "EXTRACTION_ERROR"},
	KindNoDownloadURL:    {"NoDownloadURL", "NO_DOWNLOAD_URL"},
	KindTimeout:          {"Timeout", "TIMEOUT"},
	KindBusy:             {"Busy", "SERVER_BUSY"},
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n.name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Code is the machine-readable error code reported to clients.
func (k Kind) Code() string {
	if n, ok := kindNames[k]; ok {
		return n.code
	}
	return kindNames[KindInternal].code
}

const (
	msgUnavailable   = "Video is unavailable or private"
	msgUnsupported   = "This URL is not supported by any available extractor"
	msgAuth          = "This video requires authentication to access"
	msgAgeRestricted = "This video is age-restricted and requires authentication"
	msgBlocked       = "This video is blocked or unavailable in your region"
	msgNoInfo        = "Could not extract video information"
	msgNoDownloadURL = "No downloadable URL found for this video"
	msgTimeout       = "Request timed out. The video might be too large or the server is busy."
	msgBusy          = "Server is busy, try again later"
)

var ErrNoDownloadURL = errors.New("no downloadable URL")

// Error is the only error type the resolver returns.
type Error struct {
	Kind     Kind
	Message  string
	Attempts int
	Err      error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf reports the kind of err, KindInternal for foreign errors.
func KindOf(err error) Kind {
	var rerr *Error
	if errors.As(err, &rerr) {
		return rerr.Kind
	}
	return KindInternal
}

// Verdict is the outcome of classifying a provider error message.
type Verdict struct {
	Kind      Kind
	Message   string
	Transient bool
}

// Classify matches a provider error message against the known failure
// phrases, first match wins. Unmatched messages are transient.
func Classify(text string) Verdict {
	lower := strings.ToLower(text)
	has := func(subs ...string) bool {
		for _, s := range subs {
			if strings.Contains(lower, s) {
				return true
			}
		}
		return false
	}

	switch {
	case has("video unavailable", "private video"):
		return Verdict{Kind: KindVideoUnavailable, Message: msgUnavailable}
	case has("unsupported url"):
		return Verdict{Kind: KindURLValidation, Message: msgUnsupported}
	case has("sign in", "login"):
		return Verdict{Kind: KindAuthRequired, Message: msgAuth}
	case has("age"):
		return Verdict{Kind: KindAuthRequired, Message: msgAgeRestricted}
	case has("copyright", "blocked"):
		return Verdict{Kind: KindVideoUnavailable, Message: msgBlocked}
	default:
		return Verdict{Transient: true}
	}
}

// classifyError decides what a failed provider call means. Provider reported
// errors are matched by text first; an unmatched extractor-class error is
// final, everything else may be retried.
func classifyError(err error) Verdict {
	var perr *extractor.ProviderError
	if !errors.As(err, &perr) {
		return Verdict{Transient: true}
	}

	v := Classify(perr.Message)
	if !v.Transient {
		return v
	}
	if perr.Class == extractor.ClassExtractor {
		return Verdict{Kind: KindExtractionFailed, Message: "Extractor error: " + perr.Message}
	}
	return v
}

func contextError(err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, Message: msgTimeout, Err: err}
	}
	return &Error{Kind: KindInternal, Message: "Request cancelled", Err: err}
}

func poolError(err error) *Error {
	if errors.Is(err, worker.ErrQueueFull) || errors.Is(err, worker.ErrStopped) {
		return &Error{Kind: KindBusy, Message: msgBusy, Err: err}
	}
	return &Error{Kind: KindInternal, Message: "Unexpected error: " + err.Error(), Err: err}
}
