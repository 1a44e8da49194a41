package blog

import (
	"testing"
	"time"
)

func newTestLimiter(max int, window time.Duration) (*LoginLimiter, *time.Time) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	l := NewLoginLimiter(max, window)
	l.now = func() time.Time { return now }
	return l, &now
}

func TestLoginLimiterBlocksAfterMaxFailures(t *testing.T) {
	l, _ := newTestLimiter(2, time.Minute)
	ip := "203.0.113.10"

	for i := 0; i < 2; i++ {
		if !l.Check(ip) {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
		l.Record(ip)
	}
	if l.Check(ip) {
		t.Fatal("expected ip to be blocked after two failures")
	}
}

func TestLoginLimiterCheckDoesNotRecord(t *testing.T) {
	l, _ := newTestLimiter(1, time.Minute)
	for i := 0; i < 5; i++ {
		if !l.Check("203.0.113.11") {
			t.Fatalf("check %d blocked without any recorded failure", i+1)
		}
	}
}

func TestLoginLimiterResetsAfterWindow(t *testing.T) {
	l, now := newTestLimiter(1, time.Minute)
	ip := "203.0.113.20"

	l.Record(ip)
	if l.Check(ip) {
		t.Fatal("expected ip to be blocked inside the window")
	}

	*now = now.Add(61 * time.Second)
	if !l.Check(ip) {
		t.Fatal("expected ip to be allowed after the window")
	}
	if _, ok := l.attempts[ip]; ok {
		t.Error("expired attempts should be pruned")
	}
}

func TestLoginLimiterIsPerIP(t *testing.T) {
	l, _ := newTestLimiter(1, time.Minute)

	l.Record("203.0.113.30")
	if !l.Check("203.0.113.31") {
		t.Fatal("second ip should be allowed independently")
	}
	if l.Check("203.0.113.30") {
		t.Fatal("first ip should be blocked")
	}
}
