package deletereminder

import (
	"context"
	"errors"
	"remindbot/internal/core/domain/bot"
	e "remindbot/internal/core/domain/errors"
	"remindbot/internal/core/domain/logging"
	"remindbot/internal/core/domain/reminder"
	"remindbot/internal/core/services"
)

type Input struct {
	GuildID     string
	ChannelID   string
	RequesterID string
	ReminderID  reminder.ID
}

type Result struct {
	Reminder reminder.Reminder
}

type service struct {
	log         logging.Logger
	repository  reminder.ReminderRepository
	permissions bot.PermissionChecker
}

func New(
	log logging.Logger,
	repository reminder.ReminderRepository,
	permissions bot.PermissionChecker,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if repository == nil {
		panic(e.NewNilArgumentError("repository"))
	}
	if permissions == nil {
		panic(e.NewNilArgumentError("permissions"))
	}
	return &service{
		log:         log,
		repository:  repository,
		permissions: permissions,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	// A failed permission lookup leaves only the owner able to delete.
	isModerator, err := s.permissions.CanManageMessages(ctx, input.ChannelID, input.RequesterID)
	if err != nil {
		s.log.Warning(ctx, "Could not check requester permissions.", logging.Entry("input", input), logging.Entry("err", err))
		isModerator = false
	}

	removed, err := s.repository.DeleteByID(ctx, reminder.DeleteInput{
		GuildID:              input.GuildID,
		ID:                   input.ReminderID,
		RequesterID:          input.RequesterID,
		RequesterIsModerator: isModerator,
	})
	if err != nil {
		switch {
		case errors.Is(err, reminder.ErrReminderDoesNotExist):
			s.log.Info(ctx, "Reminder not found.", logging.Entry("input", input))
		case errors.Is(err, reminder.ErrReminderPermission):
			s.log.Info(ctx, "Reminder belongs to another user.", logging.Entry("input", input))
		}
		result.Reminder = removed
		return result, err
	}

	s.log.Info(
		ctx,
		"Reminder successfully deleted.",
		logging.Entry("reminder", removed),
		logging.Entry("byModerator", isModerator && removed.CreatedBy != input.RequesterID),
	)
	result.Reminder = removed
	return result, nil
}
