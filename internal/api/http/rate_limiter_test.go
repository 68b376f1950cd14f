package http

import (
	"testing"
	"time"
)

func TestMemoryRateLimiterEnforcesLimit(t *testing.T) {
	limiter := NewMemoryRateLimiter()
	defer limiter.Close()

	for i := 0; i < 3; i++ {
		if !limiter.Allow("ip:1.2.3.4", 3, time.Minute) {
			t.Fatalf("attempt %d should pass", i+1)
		}
	}
	if limiter.Allow("ip:1.2.3.4", 3, time.Minute) {
		t.Fatal("fourth attempt should be rejected")
	}
	if !limiter.Allow("ip:5.6.7.8", 3, time.Minute) {
		t.Fatal("other keys must not be affected")
	}
}

func TestMemoryRateLimiterResetsAfterWindow(t *testing.T) {
	limiter := NewMemoryRateLimiter()
	defer limiter.Close()

	window := 20 * time.Millisecond
	if !limiter.Allow("ip:1.2.3.4", 1, window) {
		t.Fatal("first attempt should pass")
	}
	if limiter.Allow("ip:1.2.3.4", 1, window) {
		t.Fatal("second attempt inside the window should be rejected")
	}

	time.Sleep(window + 10*time.Millisecond)
	if !limiter.Allow("ip:1.2.3.4", 1, window) {
		t.Fatal("attempt after the window should pass")
	}
}

func TestMemoryRateLimiterZeroLimitDisables(t *testing.T) {
	limiter := NewMemoryRateLimiter()
	defer limiter.Close()

	for i := 0; i < 10; i++ {
		if !limiter.Allow("ip:1.2.3.4", 0, time.Minute) {
			t.Fatal("zero limit must disable rate limiting")
		}
	}
}
