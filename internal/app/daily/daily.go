package daily

import (
	"context"
	"errors"
	dailyevent "remindbot/internal/core/domain/daily_event"
	e "remindbot/internal/core/domain/errors"
	"remindbot/internal/core/domain/logging"
	"remindbot/internal/core/domain/storage"
	"remindbot/internal/core/services"
	senddailyevent "remindbot/internal/core/services/send_daily_event"
	"sync"
	"time"
)

func LoadEvents(ctx context.Context, store storage.Store) ([]dailyevent.DailyEvent, error) {
	var doc dailyevent.Document
	err := store.Read(ctx, dailyevent.DOCUMENT_NAME, &doc)
	if errors.Is(err, storage.ErrDocumentDoesNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc.DailyEvents, nil
}

// Runner announces daily events at their configured wall-clock time.
// Occurrences missed while the process was down are not replayed.
type Runner struct {
	log     logging.Logger
	service services.Service[senddailyevent.Input, senddailyevent.Result]
	now     func() time.Time
}

func NewRunner(
	log logging.Logger,
	service services.Service[senddailyevent.Input, senddailyevent.Result],
	now func() time.Time,
) *Runner {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &Runner{log: log, service: service, now: now}
}

// Start launches one loop per enabled and valid event and returns the number started.
// The returned WaitGroup is done once every loop has observed ctx cancellation.
func (r *Runner) Start(ctx context.Context, events []dailyevent.DailyEvent) (int, *sync.WaitGroup) {
	var wg sync.WaitGroup
	started := 0
	for _, event := range events {
		if !event.Enabled {
			continue
		}
		if err := event.Validate(); err != nil {
			r.log.Warning(ctx, "Skipping invalid daily event.", logging.Entry("event", event.Name), logging.Entry("err", err))
			continue
		}

		event := event
		started++
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.loop(ctx, event)
		}()
	}
	r.log.Info(ctx, "Daily events scheduled.", logging.Entry("count", started))
	return started, &wg
}

func (r *Runner) loop(ctx context.Context, event dailyevent.DailyEvent) {
	from := r.now()
	for {
		next, err := event.NextFrom(from)
		if err != nil {
			logging.Error(ctx, r.log, err, logging.Entry("event", event.Name))
			return
		}
		r.log.Debug(ctx, "Next daily event occurrence.", logging.Entry("event", event.Name), logging.Entry("at", next))

		timer := time.NewTimer(next.Sub(r.now()))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		// The service logs its own failures; a failed announcement is not retried.
		r.service.Run(ctx, senddailyevent.Input{Event: event})

		from = r.now()
		if from.Before(next) {
			from = next
		}
	}
}
