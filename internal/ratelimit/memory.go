package ratelimit

import (
	"context"
	"sync"
	"time"
)

type window struct {
	start time.Time
	count int
}

// Memory is a process-local fixed-window limiter.
type Memory struct {
	mu      sync.Mutex
	windows map[string]*window
	limit   int
	period  time.Duration
	now     func() time.Time
	sweptAt time.Time
}

func NewMemory(limit int, period time.Duration) *Memory {
	return newMemory(limit, period, time.Now)
}

func newMemory(limit int, period time.Duration, now func() time.Time) *Memory {
	return &Memory{
		windows: make(map[string]*window),
		limit:   limit,
		period:  period,
		now:     now,
		sweptAt: now(),
	}
}

func (m *Memory) Allow(_ context.Context, key string) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.sweep(now)

	w, ok := m.windows[key]
	if !ok || now.Sub(w.start) >= m.period {
		w = &window{start: now}
		m.windows[key] = w
	}
	w.count++

	return result(w.count, m.limit, w.start.Add(m.period).Sub(now)), nil
}

// sweep drops expired windows at most once per period. Caller holds mu.
func (m *Memory) sweep(now time.Time) {
	if now.Sub(m.sweptAt) < m.period {
		return
	}
	for key, w := range m.windows {
		if now.Sub(w.start) >= m.period {
			delete(m.windows, key)
		}
	}
	m.sweptAt = now
}
