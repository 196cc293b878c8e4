// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteFailure(rec, http.StatusOK, CodeValidation, "name: must not be empty")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":false,"error":"name: must not be empty","code":"validation"}`, rec.Body.String())
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func trackRequest(remoteAddr, forwardedFor string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/cards/1/track", nil)
	req.RemoteAddr = remoteAddr
	if forwardedFor != "" {
		req.Header.Set("X-Forwarded-For", forwardedFor)
	}
	return req
}

func TestGlobalRateLimiter(t *testing.T) {
	handler := NewGlobalRateLimiter(0.001, 2).Middleware()(okHandler())

	for i := range 2 {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, trackRequest("192.168.1.1:12345", ""))
		assert.Equal(t, http.StatusOK, rec.Code, "request %d", i+1)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, trackRequest("192.168.1.1:12345", ""))
	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	var body Failure
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, CodeRateLimited, body.Code)
	assert.NotEmpty(t, body.Error)
}

func TestGlobalRateLimiter_DifferentIPs(t *testing.T) {
	handler := NewGlobalRateLimiter(0.001, 1).Middleware()(okHandler())

	handler.ServeHTTP(httptest.NewRecorder(), trackRequest("192.168.1.1:12345", ""))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, trackRequest("192.168.1.2:12345", ""))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGlobalRateLimiter_XForwardedFor(t *testing.T) {
	handler := NewGlobalRateLimiter(0.001, 1).Middleware()(okHandler())

	// Same proxy, different forwarded clients: separate budgets.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, trackRequest("10.0.0.1:80", "203.0.113.1"))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, trackRequest("10.0.0.1:80", "203.0.113.2, 10.0.0.1"))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, trackRequest("10.0.0.1:80", "203.0.113.1"))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestGlobalRateLimiter_HTMLMiddleware(t *testing.T) {
	handler := NewGlobalRateLimiter(0.001, 1).HTMLMiddleware()(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "192.168.1.1:12345"
	handler.ServeHTTP(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "192.168.1.1:12345"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
}

func TestLimiterCacheClearIfExceeds(t *testing.T) {
	lc := newLimiterCache[string](1, 1)
	for _, k := range []string{"a", "b", "c"} {
		lc.get(k)
	}
	assert.False(t, lc.clearIfExceeds(3))
	assert.Equal(t, 3, lc.size())
	assert.True(t, lc.clearIfExceeds(2))
	assert.Zero(t, lc.size())
	assert.Same(t, lc.get("a"), lc.get("a"))
}
