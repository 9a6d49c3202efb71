package resolver

import (
	"sync"
	"time"

	"github.com/pavelc4/aether-resolver/internal/media"
)

func ptr[T any](v T) *T { return &v }

// fakeTimer fires immediately and records the requested waits.
type fakeTimer struct {
	mu    sync.Mutex
	waits []time.Duration
	c     chan time.Time
}

func newFakeTimer() *fakeTimer {
	return &fakeTimer{c: make(chan time.Time, 1)}
}

func (t *fakeTimer) Start(d time.Duration) {
	t.mu.Lock()
	t.waits = append(t.waits, d)
	t.mu.Unlock()
	select {
	case t.c <- time.Now():
	default:
	}
}

func (t *fakeTimer) Stop() {}

func (t *fakeTimer) C() <-chan time.Time { return t.c }

func (t *fakeTimer) Waits() []time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]time.Duration(nil), t.waits...)
}

func mp4(id string, height int, tbr float64, vcodec, acodec string) media.Format {
	f := media.Format{
		FormatID: id,
		Ext:      "mp4",
		URL:      "https://cdn.example/" + id,
		VCodec:   ptr(vcodec),
		ACodec:   ptr(acodec),
	}
	if height > 0 {
		f.Height = ptr(height)
	}
	if tbr > 0 {
		f.TBR = ptr(tbr)
	}
	return f
}
