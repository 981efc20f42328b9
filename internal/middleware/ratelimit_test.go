// Copyright (c) 2025-2026 Hibiscus Efsya
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGlobalRateLimiterPerIP(t *testing.T) {
	rl := NewGlobalRateLimiter(1, 2)
	handler := rl.Middleware()(okHandler())

	send := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/content/hero", nil)
		req.RemoteAddr = addr
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr.Code
	}

	if got := send("203.0.113.1:1234"); got != http.StatusOK {
		t.Errorf("first request = %d, want %d", got, http.StatusOK)
	}
	if got := send("203.0.113.1:1234"); got != http.StatusOK {
		t.Errorf("second request = %d, want %d", got, http.StatusOK)
	}
	if got := send("203.0.113.1:1234"); got != http.StatusTooManyRequests {
		t.Errorf("third request = %d, want %d", got, http.StatusTooManyRequests)
	}

	// A different IP has its own budget
	if got := send("203.0.113.2:1234"); got != http.StatusOK {
		t.Errorf("other IP = %d, want %d", got, http.StatusOK)
	}
}

func TestLimiterCacheClearIfExceeds(t *testing.T) {
	cache := newLimiterCache[string](1, 1)
	cache.get("a")
	cache.get("b")
	cache.get("c")

	if cache.clearIfExceeds(5) {
		t.Error("cache cleared below threshold")
	}
	if !cache.clearIfExceeds(2) {
		t.Error("cache not cleared above threshold")
	}
	if len(cache.limiters) != 0 {
		t.Errorf("limiters after clear = %d, want 0", len(cache.limiters))
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		realIP     string
		forwarded  string
		want       string
	}{
		{"remote addr with port", "198.51.100.7:5555", "", "", "198.51.100.7"},
		{"x-real-ip wins", "198.51.100.7:5555", "203.0.113.9", "", "203.0.113.9"},
		{"x-forwarded-for first hop", "198.51.100.7:5555", "", "203.0.113.10, 10.0.0.1", "203.0.113.10"},
		{"ipv6 remote addr", "[2001:db8::1]:5555", "", "", "2001:db8::1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.realIP != "" {
				req.Header.Set("X-Real-IP", tt.realIP)
			}
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}

			if got := ClientIP(req); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
