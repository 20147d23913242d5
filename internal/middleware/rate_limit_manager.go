package middleware

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	visitorIdleTimeout = 3 * time.Minute
	cleanupInterval    = time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type RateLimitSettings struct {
	Requests int
	Window   time.Duration
	Burst    int
}

func (s RateLimitSettings) enabled() bool {
	return s.Requests > 0
}

func (s RateLimitSettings) limit() (rate.Limit, int) {
	window := s.Window
	if window <= 0 {
		window = time.Minute
	}

	limit := rate.Limit(float64(s.Requests) / window.Seconds())
	if limit <= 0 {
		limit = rate.Inf
	}

	burst := s.Burst
	if burst <= 0 {
		burst = s.Requests
	}
	return limit, burst
}

// RateLimitManager keeps one limiter per client and evicts idle ones.
type RateLimitManager struct {
	settings   RateLimitSettings
	visitors   map[string]*visitor
	visitorsMu sync.Mutex
	now        func() time.Time
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
}

func NewRateLimitManager(ctx context.Context, settings RateLimitSettings) *RateLimitManager {
	managerCtx, cancel := context.WithCancel(ctx)

	m := &RateLimitManager{
		settings: settings,
		visitors: make(map[string]*visitor),
		now:      time.Now,
		ctx:      managerCtx,
		cancel:   cancel,
	}

	m.wg.Add(1)
	go m.cleanupLoop()

	return m
}

// Visitor returns the limiter for key, or nil when limiting is disabled.
func (m *RateLimitManager) Visitor(key string) *rate.Limiter {
	if !m.settings.enabled() {
		return nil
	}

	m.visitorsMu.Lock()
	defer m.visitorsMu.Unlock()

	v, exists := m.visitors[key]
	if !exists {
		limit, burst := m.settings.limit()
		v = &visitor{limiter: rate.NewLimiter(limit, burst)}
		m.visitors[key] = v
	}
	v.lastSeen = m.now()
	return v.limiter
}

func (m *RateLimitManager) cleanupLoop() {
	defer m.wg.Done()

	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			m.cleanup()
		}
	}
}

func (m *RateLimitManager) cleanup() {
	m.visitorsMu.Lock()
	defer m.visitorsMu.Unlock()

	now := m.now()
	for key, v := range m.visitors {
		if now.Sub(v.lastSeen) > visitorIdleTimeout {
			delete(m.visitors, key)
		}
	}
}

func (m *RateLimitManager) visitorCount() int {
	m.visitorsMu.Lock()
	defer m.visitorsMu.Unlock()
	return len(m.visitors)
}

// Shutdown stops the cleanup goroutine and waits for it to finish.
func (m *RateLimitManager) Shutdown() error {
	m.cancel()
	m.wg.Wait()
	return nil
}
