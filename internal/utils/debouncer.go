package utils

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Debouncer collapses bursts of Do calls into a single execution after the
// requested delay. Scheduled functions run on the Run goroutine.
type Debouncer struct {
	mu    sync.Mutex
	timer *time.Timer
	calls chan func(context.Context) error
}

func NewDebouncer() *Debouncer {
	return &Debouncer{calls: make(chan func(context.Context) error, 1)}
}

func (d *Debouncer) Do(ctx context.Context, delay time.Duration, fn func(context.Context) error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(delay, func() {
		select {
		case d.calls <- fn:
		case <-ctx.Done():
			logrus.Debug("Debounced call dropped, context done")
		}
	})
}

func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
}

func (d *Debouncer) Run(ctx context.Context) error {
	for {
		select {
		case fn := <-d.calls:
			if err := fn(ctx); err != nil {
				logrus.WithError(err).Error("Debounced call failed")
			}
		case <-ctx.Done():
			return fmt.Errorf("debouncer cancelled: %w", context.Cause(ctx))
		}
	}
}
