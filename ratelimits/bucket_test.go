package ratelimits

import (
	"testing"
	"time"
)

func newTestContainer(rate int, per time.Duration) (*CooldownContainer, *time.Time) {
	clock := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	c := &CooldownContainer{now: func() time.Time { return clock }}
	c.Configure(rate, per)
	return c, &clock
}

func TestAllowWithinWindow(t *testing.T) {
	c, _ := newTestContainer(2, 10*time.Second)

	if !c.Allow("user") {
		t.Fatal("first call denied")
	}
	if !c.Allow("user") {
		t.Fatal("second call denied")
	}
	if c.Allow("user") {
		t.Fatal("third call allowed, rate is 2")
	}
}

func TestWindowReset(t *testing.T) {
	c, clock := newTestContainer(2, 10*time.Second)

	c.Allow("user")
	c.Allow("user")
	if c.Allow("user") {
		t.Fatal("over-rate call allowed")
	}

	*clock = clock.Add(11 * time.Second)

	if !c.Allow("user") {
		t.Fatal("call denied after the window fully elapsed")
	}
	if !c.Allow("user") {
		t.Fatal("second call of the fresh window denied")
	}
	if c.Allow("user") {
		t.Fatal("third call of the fresh window allowed")
	}
}

func TestUsersLimitedIndependently(t *testing.T) {
	c, _ := newTestContainer(1, 10*time.Second)

	if !c.Allow("a") {
		t.Fatal("user a denied")
	}
	if !c.Allow("b") {
		t.Fatal("user b denied, buckets must be per user")
	}
	if c.Allow("a") {
		t.Fatal("user a allowed over rate")
	}
}

func TestLazyEviction(t *testing.T) {
	c, clock := newTestContainer(5, 10*time.Second)

	c.Allow("a")
	c.Allow("b")
	if c.Tracked() != 2 {
		t.Fatalf("%d buckets tracked, want 2", c.Tracked())
	}

	*clock = clock.Add(11 * time.Second)

	// any call sweeps every expired bucket, not just the caller's
	c.Allow("c")
	if c.Tracked() != 1 {
		t.Fatalf("%d buckets tracked after sweep, want 1", c.Tracked())
	}
}
