// Package pacing decides how long the job waits between batches. The
// orchestration loop only sees the Pacer interface, so strategies can be
// swapped without touching it.
package pacing

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// Pacer blocks between two batches
type Pacer interface {
	Wait(ctx context.Context) error
}

// Fixed pauses for the same interval after every batch
type Fixed struct {
	Interval time.Duration
}

// Wait sleeps for the interval or until ctx is done
func (f Fixed) Wait(ctx context.Context) error {
	if f.Interval <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(f.Interval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Ticker lets one batch through per interval. Time spent on the request
// itself counts towards the interval, unlike Fixed.
type Ticker struct {
	limiter *rate.Limiter
}

// NewTicker creates a ticker pacer. The first Wait returns one interval
// after creation.
func NewTicker(interval time.Duration) *Ticker {
	limiter := rate.NewLimiter(rate.Every(interval), 1)
	// spend the initial burst token so the first batch also waits
	limiter.Allow()
	return &Ticker{limiter: limiter}
}

// Wait blocks until the next batch may start. The burst is one, so a slow
// batch never earns back-to-back batches.
func (t *Ticker) Wait(ctx context.Context) error {
	return t.limiter.Wait(ctx)
}

// New creates the pacer for the configured strategy
func New(kind string, interval time.Duration) (Pacer, error) {
	switch kind {
	case "fixed", "":
		return Fixed{Interval: interval}, nil
	case "ticker":
		if interval <= 0 {
			return Fixed{}, nil
		}
		return NewTicker(interval), nil
	default:
		return nil, fmt.Errorf("unknown pacing: %s", kind)
	}
}
