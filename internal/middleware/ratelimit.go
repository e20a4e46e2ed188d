package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// LimiterStore keeps one token bucket per client key. Buckets untouched
// for idleTTL are dropped by a background sweep.
type LimiterStore struct {
	mu       sync.Mutex
	every    rate.Limit
	burst    int
	idleTTL  time.Duration
	visitors map[string]*visitor
	now      func() time.Time

	done     chan struct{}
	stopOnce sync.Once
}

type visitor struct {
	bucket *rate.Limiter
	seen   time.Time
}

// NewLimiterStore allows perMinute events per key with the given burst and
// sweeps idle keys every sweep interval.
func NewLimiterStore(perMinute, burst int, sweep time.Duration) *LimiterStore {
	if perMinute <= 0 {
		perMinute = 60
	}
	if burst <= 0 {
		burst = 1
	}
	s := &LimiterStore{
		every:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    burst,
		idleTTL:  10 * time.Minute,
		visitors: map[string]*visitor{},
		now:      time.Now,
		done:     make(chan struct{}),
	}
	go s.sweep(sweep)
	return s
}

func (s *LimiterStore) sweep(interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-t.C:
			s.evictIdle(s.now().Add(-s.idleTTL))
		}
	}
}

// evictIdle drops keys last seen before cutoff.
func (s *LimiterStore) evictIdle(cutoff time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, v := range s.visitors {
		if v.seen.Before(cutoff) {
			delete(s.visitors, key)
		}
	}
}

// Stop ends the sweep. It may be called more than once.
func (s *LimiterStore) Stop() {
	s.stopOnce.Do(func() { close(s.done) })
}

// Reserve takes a token for key. When none is available it returns false
// and how long until one is.
func (s *LimiterStore) Reserve(key string) (bool, time.Duration) {
	now := s.now()
	s.mu.Lock()
	v, ok := s.visitors[key]
	if !ok {
		v = &visitor{bucket: rate.NewLimiter(s.every, s.burst)}
		s.visitors[key] = v
	}
	v.seen = now
	s.mu.Unlock()

	r := v.bucket.ReserveN(now, 1)
	if !r.OK() {
		return false, time.Minute
	}
	if wait := r.DelayFrom(now); wait > 0 {
		r.CancelAt(now)
		return false, wait
	}
	return true, 0
}

// Allow reports whether key may proceed now.
func (s *LimiterStore) Allow(key string) bool {
	ok, _ := s.Reserve(key)
	return ok
}

// RateLimit answers 429 with Retry-After once the client IP has spent its
// allowance. A nil store disables limiting.
func RateLimit(store *LimiterStore) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if store == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if ok, wait := store.Reserve(ClientIP(r)); !ok {
				secs := int(math.Ceil(wait.Seconds()))
				w.Header().Set("Retry-After", strconv.Itoa(max(secs, 1)))
				writeErr(w, http.StatusTooManyRequests, "Too many attempts. Try again later.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP is the host part of RemoteAddr, which chi's RealIP has already
// rewritten from proxy headers when installed.
func ClientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
