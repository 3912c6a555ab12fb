package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestMemoryLimiterBlocksAfterLimit(t *testing.T) {
	l := NewMemoryLimiter(3, time.Hour)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := l.Allow(ctx, "phone:+1555")
		if err != nil {
			t.Fatalf("Allow %d: %v", i+1, err)
		}
		if !allowed {
			t.Fatalf("request %d blocked below the limit", i+1)
		}
	}

	allowed, err := l.Allow(ctx, "phone:+1555")
	if err != nil {
		t.Fatalf("Allow: %v", err)
	}
	if allowed {
		t.Error("request over the limit was allowed")
	}
}

func TestMemoryLimiterIsPerIdentifier(t *testing.T) {
	l := NewMemoryLimiter(1, time.Hour)
	ctx := context.Background()

	if allowed, _ := l.Allow(ctx, "a"); !allowed {
		t.Fatal("first request for a blocked")
	}
	if allowed, _ := l.Allow(ctx, "a"); allowed {
		t.Error("second request for a allowed")
	}
	if allowed, _ := l.Allow(ctx, "b"); !allowed {
		t.Error("request for b blocked by a's counter")
	}
}

func TestMemoryLimiterWindowIsAnchoredToFirstRequest(t *testing.T) {
	l := NewMemoryLimiter(2, 60*time.Millisecond)
	ctx := context.Background()

	if allowed, _ := l.Allow(ctx, "a"); !allowed {
		t.Fatal("first request blocked")
	}

	time.Sleep(40 * time.Millisecond)
	if allowed, _ := l.Allow(ctx, "a"); !allowed {
		t.Fatal("second request inside the window blocked")
	}

	// 80ms after the first request the window has elapsed. If the anchor
	// slid to the most recent request this would still be blocked.
	time.Sleep(40 * time.Millisecond)
	if allowed, _ := l.Allow(ctx, "a"); !allowed {
		t.Error("request after the first-request window elapsed was blocked")
	}
}

func TestMemoryLimiterWindowReset(t *testing.T) {
	l := NewMemoryLimiter(1, 10*time.Millisecond)
	ctx := context.Background()

	if allowed, _ := l.Allow(ctx, "a"); !allowed {
		t.Fatal("first request blocked")
	}
	if allowed, _ := l.Allow(ctx, "a"); allowed {
		t.Fatal("second request inside the window allowed")
	}

	time.Sleep(15 * time.Millisecond)

	if allowed, _ := l.Allow(ctx, "a"); !allowed {
		t.Error("request after the window elapsed was blocked")
	}
}
