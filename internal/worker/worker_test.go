package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePromoter struct {
	calls int32
	err   error
}

func (f *fakePromoter) PromoteDue(ctx context.Context) (int, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.err != nil {
		return 0, f.err
	}
	return 2, nil
}

func TestRunOnce(t *testing.T) {
	t.Run("A successful pass calls the promoter once", func(t *testing.T) {
		promoter := &fakePromoter{}
		w := New(promoter, time.Minute)

		w.RunOnce(context.Background())

		assert.Equal(t, int32(1), atomic.LoadInt32(&promoter.calls))
	})

	t.Run("A failed pass is swallowed so the loop keeps running", func(t *testing.T) {
		promoter := &fakePromoter{err: errors.New("db down")}
		w := New(promoter, time.Minute)

		w.RunOnce(context.Background())
		w.RunOnce(context.Background())

		assert.Equal(t, int32(2), atomic.LoadInt32(&promoter.calls))
	})
}

func TestRun(t *testing.T) {
	t.Run("Run ticks until the context is cancelled", func(t *testing.T) {
		promoter := &fakePromoter{}
		w := New(promoter, 5*time.Millisecond)

		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan struct{})
		go func() {
			w.Run(ctx)
			close(done)
		}()

		assert.Eventually(t, func() bool {
			return atomic.LoadInt32(&promoter.calls) >= 2
		}, time.Second, time.Millisecond)

		cancel()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("worker did not stop after cancellation")
		}
	})

	t.Run("Non-positive interval falls back to the default", func(t *testing.T) {
		w := New(&fakePromoter{}, 0)

		require.Equal(t, 60*time.Second, w.interval)
	})
}
