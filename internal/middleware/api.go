// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"golang.org/x/time/rate"

	"github.com/olegiv/portal-go/internal/i18n"
	"github.com/olegiv/portal-go/internal/util"
)

// Failure codes carried by JSON failure payloads.
const (
	CodeValidation  = "validation"
	CodeNotFound    = "not_found"
	CodePermission  = "permission"
	CodeInternal    = "internal"
	CodeRateLimited = "rate_limited"
)

// Failure is the JSON body of a failed API call.
type Failure struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

// WriteFailure writes a JSON failure payload with the given HTTP status.
func WriteFailure(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Failure{Success: false, Error: message, Code: code})
}

// limiterCache is a generic rate limiter cache with double-check locking.
type limiterCache[K comparable] struct {
	limiters map[K]*rate.Limiter
	mu       sync.RWMutex
	rate     rate.Limit
	burst    int
}

func newLimiterCache[K comparable](rps float64, burst int) *limiterCache[K] {
	return &limiterCache[K]{
		limiters: make(map[K]*rate.Limiter),
		rate:     rate.Limit(rps),
		burst:    burst,
	}
}

// get returns the rate limiter for key, creating one if needed.
func (lc *limiterCache[K]) get(key K) *rate.Limiter {
	lc.mu.RLock()
	limiter, exists := lc.limiters[key]
	lc.mu.RUnlock()

	if exists {
		return limiter
	}

	lc.mu.Lock()
	defer lc.mu.Unlock()

	if limiter, exists = lc.limiters[key]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(lc.rate, lc.burst)
	lc.limiters[key] = limiter
	return limiter
}

// clearIfExceeds drops all limiters once the cache grows past maxSize.
func (lc *limiterCache[K]) clearIfExceeds(maxSize int) bool {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	if len(lc.limiters) > maxSize {
		lc.limiters = make(map[K]*rate.Limiter)
		return true
	}
	return false
}

func (lc *limiterCache[K]) size() int {
	lc.mu.RLock()
	defer lc.mu.RUnlock()
	return len(lc.limiters)
}

// maxLimiters bounds the per-IP limiter map of a GlobalRateLimiter.
const maxLimiters = 10000

// GlobalRateLimiter limits requests per client IP.
type GlobalRateLimiter struct {
	cache *limiterCache[string]
}

// NewGlobalRateLimiter creates a per-IP limiter allowing rps requests per
// second with the given burst.
func NewGlobalRateLimiter(rps float64, burst int) *GlobalRateLimiter {
	return &GlobalRateLimiter{
		cache: newLimiterCache[string](rps, burst),
	}
}

func (rl *GlobalRateLimiter) allow(r *http.Request) (string, bool) {
	ip := util.ClientIP(r)
	if rl.cache.clearIfExceeds(maxLimiters) {
		slog.Info("cleared rate limiters due to size")
	}
	return ip, rl.cache.get(ip).Allow()
}

// Middleware rate limits JSON endpoints such as click tracking. Rejections
// use the JSON failure payload with status 429.
func (rl *GlobalRateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if ip, ok := rl.allow(r); !ok {
				slog.Warn("api rate limit exceeded", "ip", ip, "path", r.URL.Path)
				WriteFailure(w, http.StatusTooManyRequests, CodeRateLimited, i18n.T(GetLanguage(r), "error.rate_limit"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// HTMLMiddleware rate limits form endpoints with a plain text 429.
func (rl *GlobalRateLimiter) HTMLMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if ip, ok := rl.allow(r); !ok {
				slog.Warn("public rate limit exceeded", "ip", ip, "path", r.URL.Path)
				http.Error(w, i18n.T(GetLanguage(r), "error.rate_limit"), http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
