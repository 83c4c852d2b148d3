package usecase

import (
	"context"
	"time"

	"github.com/runoshun/timeflow/internal/domain"
)

// WatchTimerInput contains the parameters for watching the timer.
type WatchTimerInput struct {
	OnTick   func(*ShowStatusOutput) // Called once immediately, then every Interval
	Interval time.Duration           // Zero uses domain.DefaultTickInterval
}

// WatchTimer re-reads the stored runtime on every tick, so it follows a timer driven
// by another process.
type WatchTimer struct {
	timer  *Timer
	status *ShowStatus
}

// NewWatchTimer creates a new WatchTimer use case.
func NewWatchTimer(timer *Timer, status *ShowStatus) *WatchTimer {
	return &WatchTimer{
		timer:  timer,
		status: status,
	}
}

// Execute blocks until ctx is done or the timer is no longer running. Cancellation is
// not an error.
func (uc *WatchTimer) Execute(ctx context.Context, in WatchTimerInput) error {
	interval := in.Interval
	if interval <= 0 {
		interval = domain.DefaultTickInterval
	}

	emit := func() (bool, error) {
		uc.timer.Reload()
		out, err := uc.status.Execute(ctx, ShowStatusInput{})
		if err != nil {
			return false, err
		}
		if in.OnTick != nil {
			in.OnTick(out)
		}
		return out.State == domain.StateRunning, nil
	}

	if running, err := emit(); err != nil || !running {
		return err
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if running, err := emit(); err != nil || !running {
				return err
			}
		}
	}
}
