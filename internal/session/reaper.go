package session

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Reaper periodically closes idle sessions.
type Reaper struct {
	cron *cron.Cron
}

// StartReaper schedules store.ReapIdle on spec, a standard cron expression or
// a descriptor such as "@every 1m".
func StartReaper(store *Store, spec string, logger zerolog.Logger) (*Reaper, error) {
	log := logger.With().Str("component", "session_reaper").Logger()

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(spec, func() {
		if closed := store.ReapIdle(); closed > 0 {
			log.Info().Int("closed", closed).Int("open", store.Len()).Msg("idle sessions reaped")
		}
	}); err != nil {
		return nil, fmt.Errorf("schedule session reaper %q: %w", spec, err)
	}

	c.Start()
	log.Info().Str("schedule", spec).Msg("session reaper started")
	return &Reaper{cron: c}, nil
}

// Stop halts the schedule and waits for a running reap to finish or ctx to expire.
func (r *Reaper) Stop(ctx context.Context) {
	if r == nil {
		return
	}
	select {
	case <-r.cron.Stop().Done():
	case <-ctx.Done():
	}
}
