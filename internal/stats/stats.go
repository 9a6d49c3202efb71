// Package stats keeps in-memory resolution counters and reads host and
// process statistics.
package stats

import (
	"fmt"
	"sync"
	"time"
)

const unknownPlatform = "Unknown"

type Stats struct {
	mu        sync.RWMutex
	startTime time.Time

	total     int64
	succeeded int64
	failed    int64

	byMode     map[string]int64
	byPlatform map[string]int64
	byError    map[string]int64

	daily   map[string]*PeriodStats // YYYY-MM-DD
	weekly  map[string]*PeriodStats // YYYY-Www
	monthly map[string]*PeriodStats // YYYY-MM

	lastRequest time.Time
	now         func() time.Time
}

type PeriodStats struct {
	Requests int64
	Failed   int64
}

func New() *Stats {
	return &Stats{
		startTime:  time.Now(),
		byMode:     make(map[string]int64),
		byPlatform: make(map[string]int64),
		byError:    make(map[string]int64),
		daily:      make(map[string]*PeriodStats),
		weekly:     make(map[string]*PeriodStats),
		monthly:    make(map[string]*PeriodStats),
		now:        time.Now,
	}
}

// Record counts one finished resolution. An empty errCode means success.
func (s *Stats) Record(mode, platform, errCode string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.total++
	s.lastRequest = now
	s.byMode[mode]++

	failed := errCode != ""
	if failed {
		s.failed++
		s.byError[errCode]++
	} else {
		s.succeeded++
	}

	if platform != "" && platform != unknownPlatform {
		s.byPlatform[platform]++
	}

	recordPeriod(s.daily, now.Format("2006-01-02"), failed)
	recordPeriod(s.weekly, weekKey(now), failed)
	recordPeriod(s.monthly, now.Format("2006-01"), failed)
}

func recordPeriod(periods map[string]*PeriodStats, key string, failed bool) {
	p := periods[key]
	if p == nil {
		p = &PeriodStats{}
		periods[key] = p
	}
	p.Requests++
	if failed {
		p.Failed++
	}
}

func weekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// Period returns the counters for "today", "week" or "month", nil when the
// period is unknown or has no requests yet.
func (s *Stats) Period(period string) *PeriodStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	strategies := map[string]func() *PeriodStats{
		"today": func() *PeriodStats { return s.daily[now.Format("2006-01-02")] },
		"week":  func() *PeriodStats { return s.weekly[weekKey(now)] },
		"month": func() *PeriodStats { return s.monthly[now.Format("2006-01")] },
	}

	if strategy, ok := strategies[period]; ok {
		if p := strategy(); p != nil {
			cp := *p
			return &cp
		}
	}
	return nil
}

type Snapshot struct {
	Uptime      time.Duration    `json:"-"`
	UptimeText  string           `json:"uptime"`
	Total       int64            `json:"total"`
	Succeeded   int64            `json:"succeeded"`
	Failed      int64            `json:"failed"`
	ByMode      map[string]int64 `json:"by_mode"`
	ByPlatform  map[string]int64 `json:"by_platform"`
	ByError     map[string]int64 `json:"by_error"`
	LastRequest time.Time        `json:"last_request"`
}

func (s *Stats) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	uptime := s.now().Sub(s.startTime)
	return Snapshot{
		Uptime:      uptime,
		UptimeText:  FormatDuration(uptime),
		Total:       s.total,
		Succeeded:   s.succeeded,
		Failed:      s.failed,
		ByMode:      copyCounts(s.byMode),
		ByPlatform:  copyCounts(s.byPlatform),
		ByError:     copyCounts(s.byError),
		LastRequest: s.lastRequest,
	}
}

func copyCounts(m map[string]int64) map[string]int64 {
	out := make(map[string]int64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func FormatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	days := d / (24 * time.Hour)
	d -= days * 24 * time.Hour
	hours := d / time.Hour
	d -= hours * time.Hour
	minutes := d / time.Minute
	seconds := (d - minutes*time.Minute) / time.Second

	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	}
	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
	return fmt.Sprintf("%ds", seconds)
}

func FormatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}
