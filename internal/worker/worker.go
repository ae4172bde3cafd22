// Package worker runs the reserved-post promotion loop.
package worker

import (
	"context"
	"log"
	"time"
)

// Promoter promotes all due reservations in one transaction and returns how
// many were promoted.
type Promoter interface {
	PromoteDue(ctx context.Context) (int, error)
}

// ReservedPostWorker calls the promoter on a fixed period. It holds no state
// between runs; everything it needs lives in the store, and each run draws a
// fresh connection from the pool. A failed run is logged and retried on the
// next tick; promotion is at-least-once, with the is_posted flag as the
// idempotency boundary.
type ReservedPostWorker struct {
	promoter Promoter
	interval time.Duration
}

func New(promoter Promoter, interval time.Duration) *ReservedPostWorker {
	if interval <= 0 {
		interval = 60 * time.Second
	}
	return &ReservedPostWorker{
		promoter: promoter,
		interval: interval,
	}
}

// Run blocks until ctx is cancelled. Ticks do not overlap: the next run only
// starts after the previous RunOnce returns.
func (w *ReservedPostWorker) Run(ctx context.Context) {
	log.Printf("reserved post worker started, interval %s", w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("reserved post worker stopped")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce performs a single promotion pass.
func (w *ReservedPostWorker) RunOnce(ctx context.Context) {
	promoted, err := w.promoter.PromoteDue(ctx)
	if err != nil {
		log.Printf("reserved post promotion failed: %v", err)
		return
	}

	if promoted > 0 {
		log.Printf("promoted %d reserved post(s)", promoted)
	}
}
