package createreminder

import (
	"context"
	"errors"
	e "remindbot/internal/core/domain/errors"
	"remindbot/internal/core/domain/logging"
	"remindbot/internal/core/domain/reminder"
	"remindbot/internal/core/services"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type Input struct {
	GuildID   string
	ChannelID string
	AuthorID  string
	Title     string
	Duration  time.Duration
}

func (i Input) GetRateLimitKey() string {
	return "create-reminder::" + i.GuildID + "::" + i.AuthorID
}

func (i Input) Validate() error {
	err := validation.ValidateStruct(&i,
		validation.Field(&i.GuildID, validation.Required, is.Digit),
		validation.Field(&i.ChannelID, validation.Required, is.Digit),
		validation.Field(&i.AuthorID, validation.Required, is.Digit),
	)
	if err != nil {
		return reminder.ErrInvalidReference
	}
	title := strings.TrimSpace(i.Title)
	if err := validation.Validate(title, validation.Required, validation.RuneLength(1, reminder.MAX_TITLE_LENGTH)); err != nil {
		return reminder.ErrInvalidTitle
	}
	if i.Duration <= 0 {
		return reminder.ErrInvalidDuration
	}
	if i.Duration > reminder.MAX_DURATION {
		return reminder.ErrReminderTooLate
	}
	return nil
}

type Result struct {
	Reminder reminder.Reminder
}

type service struct {
	log        logging.Logger
	repository reminder.ReminderRepository
}

func New(
	log logging.Logger,
	repository reminder.ReminderRepository,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if repository == nil {
		panic(e.NewNilArgumentError("repository"))
	}
	return &service{
		log:        log,
		repository: repository,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if err := input.Validate(); err != nil {
		s.log.Info(ctx, "Invalid reminder input.", logging.Entry("input", input), logging.Entry("err", err))
		return result, err
	}

	created, err := s.repository.Create(ctx, reminder.CreateInput{
		GuildID:   input.GuildID,
		ChannelID: input.ChannelID,
		Title:     input.Title,
		CreatedBy: input.AuthorID,
		Duration:  input.Duration,
	})
	result.Reminder = created
	if err != nil {
		if errors.Is(err, reminder.ErrIDGenerationFailed) {
			logging.Error(ctx, s.log, err, logging.Entry("input", input))
		}
		return result, err
	}

	s.log.Info(
		ctx,
		"Reminder successfully created.",
		logging.Entry("reminder", created),
		logging.Entry("total", s.repository.Count(ctx)),
	)
	return result, nil
}
