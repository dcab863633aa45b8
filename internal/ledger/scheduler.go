package ledger

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Scheduler polls the accrual operation on a fixed interval, decoupled
// from the HTTP request path. The cadence does not matter for
// correctness - the engine's per-day idempotence check does - so any
// interval that fires at least once per day is valid.
type Scheduler struct {
	engine   *Engine
	interval time.Duration
	log      zerolog.Logger
	done     chan struct{}
}

// NewScheduler creates a scheduler over the given engine.
func NewScheduler(engine *Engine, interval time.Duration, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		engine:   engine,
		interval: interval,
		log:      log,
		done:     make(chan struct{}),
	}
}

// Start runs the polling loop until the context is cancelled or Stop is
// called. One accrual attempt fires immediately on start.
func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.tick()
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.done:
			return
		case <-ticker.C:
			s.tick()
		}
	}
}

// Stop terminates the polling loop.
func (s *Scheduler) Stop() {
	select {
	case <-s.done:
	default:
		close(s.done)
	}
}

func (s *Scheduler) tick() {
	tx, err := s.engine.AccrueToday()
	if err != nil {
		s.log.Error().Err(err).Msg("Daily yield accrual failed")
		return
	}
	if tx != nil {
		s.log.Info().
			Str("transaction_id", tx.ID).
			Str("date", tx.Date).
			Float64("amount", tx.Amount).
			Msg("Daily yield accrued")
	}
}
