package middleware

import "testing"

func TestTokenBucketExhaustion(t *testing.T) {
	t.Parallel()

	tb := NewTokenBucket(3, 1)
	for i := 0; i < 3; i++ {
		if !tb.Allow() {
			t.Fatalf("request %d should be allowed", i)
		}
	}
	if tb.Allow() {
		t.Fatalf("bucket should be empty")
	}
}

func TestRateLimiterIsolatesKeys(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(1, 1)
	if !rl.Allow("acme:1.2.3.4") {
		t.Fatalf("first request should pass")
	}
	if rl.Allow("acme:1.2.3.4") {
		t.Fatalf("second request from same key should be limited")
	}
	if !rl.Allow("other:5.6.7.8") {
		t.Fatalf("different key should have its own bucket")
	}
}
