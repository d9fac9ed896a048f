package listguildreminders

import (
	"context"
	e "remindbot/internal/core/domain/errors"
	"remindbot/internal/core/domain/logging"
	"remindbot/internal/core/domain/reminder"
	"remindbot/internal/core/services"
	"time"
)

type Input struct {
	GuildID string
}

type Result struct {
	Reminders []reminder.Reminder
	Now       time.Time
}

type service struct {
	log        logging.Logger
	repository reminder.ReminderRepository
	now        func() time.Time
}

func New(
	log logging.Logger,
	repository reminder.ReminderRepository,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if repository == nil {
		panic(e.NewNilArgumentError("repository"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{log: log, repository: repository, now: now}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	result.Now = s.now()
	result.Reminders = s.repository.ListByGuild(ctx, input.GuildID)
	s.log.Debug(
		ctx,
		"Guild reminders listed.",
		logging.Entry("guildID", input.GuildID),
		logging.Entry("count", len(result.Reminders)),
	)
	return result, nil
}
