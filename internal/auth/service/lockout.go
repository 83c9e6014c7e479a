package service

import "time"

// LockoutPolicy decides when repeated login failures lock an account and for
// how long. All methods are pure so they can be tested against fixed clocks.
type LockoutPolicy struct {
	Threshold int
	Duration  time.Duration
}

func NewLockoutPolicy(threshold int, duration time.Duration) LockoutPolicy {
	return LockoutPolicy{Threshold: threshold, Duration: duration}
}

// ShouldLock reports whether the failed-attempt counter has reached the
// lockout threshold.
func (p LockoutPolicy) ShouldLock(failedAttempts int) bool {
	return failedAttempts >= p.Threshold
}

// Expiry returns the lockout expiry for a lock imposed at the given time.
func (p LockoutPolicy) Expiry(now time.Time) time.Time {
	return now.Add(p.Duration)
}

// Expired reports whether a lockout that ends at lockedUntil has passed.
func (p LockoutPolicy) Expired(now, lockedUntil time.Time) bool {
	return !now.Before(lockedUntil)
}
