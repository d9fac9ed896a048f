package scheduler

import (
	"context"
	"errors"
	"remindbot/internal/core/domain/logging"
	"remindbot/internal/core/services"
	deliverreminders "remindbot/internal/core/services/deliver_reminders"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countingService(calls *int32, result deliverreminders.Result, err error) services.Func[deliverreminders.Input, deliverreminders.Result] {
	return func(ctx context.Context, input deliverreminders.Input) (deliverreminders.Result, error) {
		atomic.AddInt32(calls, 1)
		return result, err
	}
}

func runInBackground(ctx context.Context, log logging.Logger, service services.Func[deliverreminders.Input, deliverreminders.Result]) chan struct{} {
	done := make(chan struct{})
	go func() {
		Run(ctx, log, 5*time.Millisecond, service)
		close(done)
	}()
	return done
}

func TestRunTicksUntilCancelled(t *testing.T) {
	// Setup ---
	var calls int32
	ctx, cancel := context.WithCancel(context.Background())
	logger := logging.NewFakeLogger()
	service := countingService(&calls, deliverreminders.Result{Delivered: 1}, nil)

	// Exercise ---
	done := runInBackground(ctx, logger, service)
	require.Eventually(t, func() bool { return atomic.LoadInt32(&calls) >= 3 }, time.Second, time.Millisecond)
	cancel()

	// Verify ---
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
	stopped := atomic.LoadInt32(&calls)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, stopped, atomic.LoadInt32(&calls))
	assert.NotEmpty(t, logger.Records(logging.INFO))
}

func TestRunKeepsGoingOnErrors(t *testing.T) {
	var calls int32
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	logger := logging.NewFakeLogger()

	runInBackground(ctx, logger, countingService(&calls, deliverreminders.Result{}, errors.New("disk full")))

	require.Eventually(t, func() bool { return atomic.LoadInt32(&calls) >= 2 }, time.Second, time.Millisecond)
	assert.NotEmpty(t, logger.Records(logging.ERROR))
}
