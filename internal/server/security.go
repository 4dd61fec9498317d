package server

import (
	"crypto/subtle"
	"log/slog"
	"net"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/casynetic/WagerBoard_Go/internal/logger"
	"github.com/casynetic/WagerBoard_Go/internal/metrics"
)

// DetectorConfig tunes the per-client abuse detector
type DetectorConfig struct {
	Window          time.Duration
	MaxRequests     int
	FailedAuthAlert int
}

// DefaultDetectorConfig allows 1000 requests per client per 5 minutes and
// alerts after 5 failed keys
func DefaultDetectorConfig() DetectorConfig {
	return DetectorConfig{
		Window:          5 * time.Minute,
		MaxRequests:     1000,
		FailedAuthAlert: 5,
	}
}

// clientActivity counts one client's traffic in the current window
type clientActivity struct {
	requests   int
	failedAuth int
}

// SuspiciousActivityDetector rate limits clients and flags repeated bad keys.
// Counters reset together once per window.
type SuspiciousActivityDetector struct {
	mu          sync.Mutex
	cfg         DetectorConfig
	now         func() time.Time
	clients     map[string]*clientActivity
	windowStart time.Time
}

// NewSuspiciousActivityDetector creates a detector with the default limits
func NewSuspiciousActivityDetector() *SuspiciousActivityDetector {
	return NewSuspiciousActivityDetectorWithConfig(DefaultDetectorConfig())
}

// NewSuspiciousActivityDetectorWithConfig creates a detector with custom limits
func NewSuspiciousActivityDetectorWithConfig(cfg DetectorConfig) *SuspiciousActivityDetector {
	return &SuspiciousActivityDetector{
		cfg:         cfg,
		now:         time.Now,
		clients:     make(map[string]*clientActivity),
		windowStart: time.Now(),
	}
}

// client returns the activity for ip, rolling the window first. Caller holds mu.
func (s *SuspiciousActivityDetector) client(ip string) *clientActivity {
	if now := s.now(); now.Sub(s.windowStart) > s.cfg.Window {
		clear(s.clients)
		s.windowStart = now
	}
	c, ok := s.clients[ip]
	if !ok {
		c = &clientActivity{}
		s.clients[ip] = c
	}
	return c
}

// RecordFailedAuth counts a rejected API key from ip
func (s *SuspiciousActivityDetector) RecordFailedAuth(ip string) {
	s.mu.Lock()
	c := s.client(ip)
	c.failedAuth++
	count := c.failedAuth
	s.mu.Unlock()

	metrics.SecurityEvents.WithLabelValues(metrics.ReasonFailedAuth).Inc()
	if count >= s.cfg.FailedAuthAlert {
		slog.Warn(SecurityAlertFailedAuth, "ip", ip, "count", count)
	}
}

// FailedAuthCount reports the failed keys seen from ip in the current window
func (s *SuspiciousActivityDetector) FailedAuthCount(ip string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.client(ip).failedAuth
}

// RecordRequest counts a request from ip and reports whether it is within the limit
func (s *SuspiciousActivityDetector) RecordRequest(ip string) bool {
	s.mu.Lock()
	c := s.client(ip)
	c.requests++
	count := c.requests
	s.mu.Unlock()

	if count <= s.cfg.MaxRequests {
		return true
	}

	metrics.SecurityEvents.WithLabelValues(metrics.ReasonRateLimited).Inc()
	// first rejection, then every 100th
	if over := count - s.cfg.MaxRequests; over == 1 || over%100 == 0 {
		slog.Warn(SecurityAlertHighRate, "ip", ip, "count_in_window", count)
	}
	return false
}

// AuthMiddleware requires the shared X-API-Key on every non-public path.
// An empty configured key rejects everything.
func AuthMiddleware(apiKey string, trustedProxies []string, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			provided := r.Header.Get(HeaderAPIKey)
			if apiKey != "" && subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) == 1 {
				next.ServeHTTP(w, r)
				return
			}

			ip := clientIP(r, trustedProxies)
			detector.RecordFailedAuth(ip)
			logger.FromContext(r.Context()).Warn(LogMsgAuthFailed,
				"ip", ip,
				"path", r.URL.Path,
				"has_key", provided != "")

			http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
		})
	}
}

// RateLimitMiddleware rejects clients over their per-window request budget
func RateLimitMiddleware(trustedProxies []string, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !detector.RecordRequest(clientIP(r, trustedProxies)) {
				w.Header().Set(HeaderRetryAfter, retryAfterSeconds(detector.cfg.Window))
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequestSizeLimitMiddleware caps request bodies at maxBytes
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// SecurityHeadersMiddleware sets the standard hardening headers
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			for name, value := range securityHeaders {
				h.Set(name, value)
			}
			next.ServeHTTP(w, r)
		})
	}
}

func isPublicPath(path string) bool {
	return slices.ContainsFunc(PublicPaths, func(p string) bool {
		return strings.HasPrefix(path, p)
	})
}

// clientIP is the peer address, or the rightmost X-Forwarded-For hop when the
// peer is a trusted proxy
func clientIP(r *http.Request, trustedProxies []string) string {
	peer, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		peer = r.RemoteAddr
	}
	if !slices.Contains(trustedProxies, peer) {
		return peer
	}

	forwarded := r.Header.Get(HeaderForwardedFor)
	if forwarded == "" {
		return peer
	}
	hops := strings.Split(forwarded, ",")
	return strings.TrimSpace(hops[len(hops)-1])
}

func retryAfterSeconds(window time.Duration) string {
	secs := int(window.Seconds())
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}
