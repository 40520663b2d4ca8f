package importer

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Throttle paces work against the storefront image hosts and the CMS.
type Throttle interface {
	Wait(ctx context.Context) error
}

// Pause makes every caller sleep for the whole duration.
type Pause time.Duration

func (p Pause) Wait(ctx context.Context) error {
	if p <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(time.Duration(p))
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Pace lets one caller through per interval, shared by every caller.
type Pace struct {
	limiter *rate.Limiter
}

func NewPace(interval time.Duration) *Pace {
	return &Pace{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

func (p *Pace) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

// NewThrottle returns a shared Pace when shared is set, a Pause otherwise.
func NewThrottle(interval time.Duration, shared bool) Throttle {
	if shared && interval > 0 {
		return NewPace(interval)
	}
	return Pause(interval)
}
