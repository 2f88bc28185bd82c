// Package ratelimit implements a Redis sliding-window limiter shared by all
// server instances.
package ratelimit

import (
	"context"
	"time"
)

// Limits caps requests per sliding window. Zero disables a window.
type Limits struct {
	PerMinute int
	PerHour   int
}

// IsZero reports whether no window is enabled.
func (l Limits) IsZero() bool {
	return l.PerMinute <= 0 && l.PerHour <= 0
}

type window struct {
	span  time.Duration
	limit int
}

func (l Limits) windows() []window {
	var ws []window
	if l.PerMinute > 0 {
		ws = append(ws, window{span: time.Minute, limit: l.PerMinute})
	}
	if l.PerHour > 0 {
		ws = append(ws, window{span: time.Hour, limit: l.PerHour})
	}
	return ws
}

type RateLimiter interface {
	Allow(ctx context.Context, key string, limits Limits) (bool, error)
}
