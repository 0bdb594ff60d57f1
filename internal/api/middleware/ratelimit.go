package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter applies a per-client sliding window over request timestamps.
type RateLimiter struct {
	requests int
	window   time.Duration
	clients  map[string]*clientWindow
	mu       sync.Mutex
}

type clientWindow struct {
	timestamps []time.Time
}

func NewRateLimiter(requests int, windowSeconds int) *RateLimiter {
	if requests <= 0 {
		requests = 100
	}
	if windowSeconds <= 0 {
		windowSeconds = 60
	}

	rl := &RateLimiter{
		requests: requests,
		window:   time.Duration(windowSeconds) * time.Second,
		clients:  make(map[string]*clientWindow),
	}

	go rl.cleanup()

	return rl
}

// cleanup drops clients with no activity inside two windows.
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(time.Minute)
	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for key, client := range rl.clients {
			if len(client.timestamps) == 0 ||
				now.Sub(client.timestamps[len(client.timestamps)-1]) > rl.window*2 {
				delete(rl.clients, key)
			}
		}
		rl.mu.Unlock()
	}
}

// Allow records a hit for key and reports whether it is within the limit,
// alongside the remaining budget and reset time.
func (rl *RateLimiter) Allow(key string) (bool, int, time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	client, ok := rl.clients[key]
	if !ok {
		client = &clientWindow{timestamps: make([]time.Time, 0, rl.requests)}
		rl.clients[key] = client
	}

	now := time.Now()
	windowStart := now.Add(-rl.window)

	kept := client.timestamps[:0]
	for _, ts := range client.timestamps {
		if ts.After(windowStart) {
			kept = append(kept, ts)
		}
	}
	client.timestamps = kept

	if len(client.timestamps) >= rl.requests {
		resetTime := client.timestamps[0].Add(rl.window)
		return false, 0, resetTime
	}

	client.timestamps = append(client.timestamps, now)
	return true, rl.requests - len(client.timestamps), now.Add(rl.window)
}

// RateLimit applies the in-memory limiter per client IP.
func RateLimit(requests int, windowSeconds int) func(http.Handler) http.Handler {
	limiter := NewRateLimiter(requests, windowSeconds)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, remaining, resetTime := limiter.Allow(clientIP(r))

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limiter.requests))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

			if !allowed {
				w.Header().Set("Retry-After", strconv.FormatInt(int64(time.Until(resetTime).Seconds())+1, 10))
				http.Error(w, "Rate limit exceeded", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// MailThrottle applies a redis fixed window per client IP on the endpoints
// that dispatch verification mail. With no redis configured it is a no-op;
// the global limiter still applies.
func MailThrottle(client *redis.Client, requests int, windowSeconds int) func(http.Handler) http.Handler {
	window := time.Duration(windowSeconds) * time.Second

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if client == nil || requests <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			key := fmt.Sprintf("throttle:mail:%s", clientIP(r))
			count, err := client.Incr(r.Context(), key).Result()
			if err != nil {
				// Redis being down should not take signup down with it.
				next.ServeHTTP(w, r)
				return
			}
			if count == 1 {
				client.Expire(r.Context(), key, window)
			}

			if count > int64(requests) {
				w.Header().Set("Retry-After", strconv.Itoa(windowSeconds))
				http.Error(w, "Too many verification mails requested", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP extracts the client IP from the request.
func clientIP(r *http.Request) string {
	// X-Forwarded-For: first entry is the original client
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		for i := 0; i < len(xff); i++ {
			if xff[i] == ',' {
				return xff[:i]
			}
		}
		return xff
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	ip := r.RemoteAddr
	for i := len(ip) - 1; i >= 0; i-- {
		if ip[i] == ':' {
			return ip[:i]
		}
	}
	return ip
}
