package server

import (
	"os"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitConfig bounds how many commands one connection may issue. The
// zero value disables limiting, which preserves the protocol's default
// behaviour; abusive clients then only cost what the single-threaded loop
// lets them cost.
type RateLimitConfig struct {
	// CommandsPerWindow is the number of commands allowed in the time window
	CommandsPerWindow int
	// Window is the time window for rate limiting
	Window time.Duration
	// Burst allows for temporary bursts above the rate limit
	Burst int
}

// Enabled reports whether the config actually limits anything.
func (c RateLimitConfig) Enabled() bool {
	return c.CommandsPerWindow > 0 && c.Window > 0
}

func (c RateLimitConfig) newLimiter() *rate.Limiter {
	burst := c.Burst
	if burst <= 0 {
		burst = c.CommandsPerWindow
	}
	return rate.NewLimiter(rate.Limit(float64(c.CommandsPerWindow)/c.Window.Seconds()), burst)
}

// ParseRateLimitFromEnv reads rate limit settings from environment
// variables following the pattern RATELIMIT_{prefix}_{field}, e.g.
// RATELIMIT_COMMANDS_REQUESTS, RATELIMIT_COMMANDS_WINDOW_SEC,
// RATELIMIT_COMMANDS_BURST.
func ParseRateLimitFromEnv(prefix string, defaultConfig RateLimitConfig) RateLimitConfig {
	config := defaultConfig

	if v := os.Getenv("RATELIMIT_" + prefix + "_REQUESTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.CommandsPerWindow = n
		}
	}
	if v := os.Getenv("RATELIMIT_" + prefix + "_WINDOW_SEC"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Window = time.Duration(n) * time.Second
		}
	}
	if v := os.Getenv("RATELIMIT_" + prefix + "_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Burst = n
		}
	}

	return config
}
