package deliverreminders

import (
	"context"
	e "remindbot/internal/core/domain/errors"
	"remindbot/internal/core/domain/logging"
	"remindbot/internal/core/domain/reminder"
	"remindbot/internal/core/services"
	"time"
)

type Input struct{}

type Result struct {
	Delivered int
	Dropped   int
}

func (r Result) Taken() int {
	return r.Delivered + r.Dropped
}

type service struct {
	log        logging.Logger
	repository reminder.ReminderRepository
	sender     reminder.Sender
	now        func() time.Time
}

// New returns the service that runs one scheduler tick. Due reminders are
// removed before they are sent, so a reminder is never sent twice and a failed
// send is not retried.
func New(
	log logging.Logger,
	repository reminder.ReminderRepository,
	sender reminder.Sender,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if repository == nil {
		panic(e.NewNilArgumentError("repository"))
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:        log,
		repository: repository,
		sender:     sender,
		now:        now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	now := s.now()
	due := s.repository.TakeDue(ctx, now)
	if len(due) == 0 {
		return result, nil
	}

	for _, rem := range due {
		if err := s.sender.SendReminder(ctx, rem); err != nil {
			s.log.Error(
				ctx,
				"Could not send reminder, dropped.",
				logging.Entry("reminder", rem),
				logging.Entry("err", err),
			)
			result.Dropped++
			continue
		}
		s.log.Info(
			ctx,
			"Reminder sent.",
			logging.Entry("reminderID", rem.ID),
			logging.Entry("late", now.Sub(rem.TriggerTime())),
		)
		result.Delivered++
	}

	if err := s.repository.Flush(ctx); err != nil {
		return result, err
	}

	s.log.Info(
		ctx,
		"Due reminders processed.",
		logging.Entry("delivered", result.Delivered),
		logging.Entry("dropped", result.Dropped),
		logging.Entry("remaining", s.repository.Count(ctx)),
	)
	return result, nil
}
