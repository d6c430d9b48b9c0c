package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"library-backend/pkg/cache"
)

const failedLoginKeyPrefix = "auth:failed_login:"

// LoginThrottle counts failed logins per username in a fixed window.
// A nil counter or an unreachable cache disables it; login is never blocked
// because the cache is down.
type LoginThrottle struct {
	counter cache.Counter
	max     int
	window  time.Duration
}

func NewLoginThrottle(counter cache.Counter, max int, window time.Duration) *LoginThrottle {
	return &LoginThrottle{counter: counter, max: max, window: window}
}

func (t *LoginThrottle) enabled() bool {
	return t != nil && t.counter != nil && t.max > 0
}

func failedLoginKey(username string) string {
	return failedLoginKeyPrefix + strings.ToLower(username)
}

// Locked reports whether username has reached the failure limit
func (t *LoginThrottle) Locked(ctx context.Context, username string) bool {
	if !t.enabled() {
		return false
	}

	n, found, err := t.counter.Get(ctx, failedLoginKey(username))
	if err != nil {
		log.Warn().Err(err).Str("component", "login_throttle").Msg("counter unavailable, skipping check")
		return false
	}
	return found && n >= int64(t.max)
}

// RecordFailure bumps the counter; the first failure starts the window
func (t *LoginThrottle) RecordFailure(ctx context.Context, username string) {
	if !t.enabled() {
		return
	}

	n, err := t.counter.Increment(ctx, failedLoginKey(username), t.window)
	if err != nil {
		log.Warn().Err(err).Str("component", "login_throttle").Msg("failed to record login failure")
		return
	}
	if n == int64(t.max) {
		log.Warn().Str("username", username).Int64("failures", n).Msg("login locked for window")
	}
}

// Reset clears the counter after a successful login
func (t *LoginThrottle) Reset(ctx context.Context, username string) {
	if !t.enabled() {
		return
	}
	if err := t.counter.Delete(ctx, failedLoginKey(username)); err != nil {
		log.Warn().Err(err).Str("component", "login_throttle").Msg("failed to reset counter")
	}
}
