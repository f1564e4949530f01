// Package sweeper runs the periodic task that keeps booking statuses
// consistent with wall-clock time.
package sweeper

import (
	"context"
	"log"
	"time"
)

// Expirer is the slice of the booking service the sweeper needs.
type Expirer interface {
	ExpireOverdue(ctx context.Context) (int, error)
}

// Sweeper periodically advances overdue bookings to the expired status.
// Each sweep is idempotent, so overlapping state between cycles is never an
// issue; a failed cycle is logged and simply retried on the next tick. A
// booking mutated by a concurrent request during a sweep is a last-write-wins
// race, accepted given the coarse sweep interval.
type Sweeper struct {
	bookings Expirer
	interval time.Duration
}

func New(bookings Expirer, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Sweeper{
		bookings: bookings,
		interval: interval,
	}
}

// Run sweeps once immediately, then on every tick until ctx is cancelled.
// It blocks; run it in its own goroutine.
func (s *Sweeper) Run(ctx context.Context) {
	log.Printf("expiration sweeper running, interval %s", s.interval)

	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep(ctx)
		case <-ctx.Done():
			log.Println("expiration sweeper stopped")
			return
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	expired, err := s.bookings.ExpireOverdue(ctx)
	if err != nil {
		log.Printf("expiration sweep failed: %v", err)
		return
	}
	if expired > 0 {
		log.Printf("expiration sweep moved %d bookings to expired", expired)
	}
}
