package liveness

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Target is a state container that can be perturbed by a tick. Tick reports
// whether the state changed.
type Target interface {
	Tick(src Source) bool
}

// Config parameterises a Timer.
type Config struct {
	Interval time.Duration
	Source   Source
	// OnChange runs after a tick that changed the target.
	OnChange func()
	// OnTick runs after every tick with its outcome.
	OnTick func(changed bool)
	Logger zerolog.Logger
}

// Timer repeatedly ticks a target until stopped.
type Timer struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Start launches the ticking goroutine. The timer stops when ctx is cancelled
// or Stop is called.
func Start(ctx context.Context, target Target, cfg Config) *Timer {
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Second
	}
	if cfg.Source == nil {
		cfg.Source = NewRandomSource(time.Now().UnixNano())
	}

	runCtx, cancel := context.WithCancel(ctx)
	t := &Timer{cancel: cancel, done: make(chan struct{})}

	go t.run(runCtx, target, cfg)
	return t
}

func (t *Timer) run(ctx context.Context, target Target, cfg Config) {
	defer close(t.done)

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			cfg.Logger.Debug().Msg("liveness timer stopped")
			return
		case <-ticker.C:
			// Prefer cancellation when both are ready.
			if ctx.Err() != nil {
				return
			}
			changed := target.Tick(cfg.Source)
			if cfg.OnTick != nil {
				cfg.OnTick(changed)
			}
			if changed && cfg.OnChange != nil {
				cfg.OnChange()
			}
		}
	}
}

// Stop cancels the timer and waits for the goroutine to exit. No tick runs
// after Stop returns. Safe to call more than once.
func (t *Timer) Stop() {
	if t == nil {
		return
	}
	t.once.Do(t.cancel)
	<-t.done
}

// Done is closed once the ticking goroutine has exited.
func (t *Timer) Done() <-chan struct{} {
	return t.done
}
