package deletereminder

import (
	"context"
	"errors"
	"fmt"
	"remindbot/internal/core/domain/bot"
	e "remindbot/internal/core/domain/errors"
	"remindbot/internal/core/domain/logging"
	"remindbot/internal/core/domain/reminder"
	"remindbot/internal/core/services"
	service "remindbot/internal/core/services/delete_reminder"
	"remindbot/internal/discord/handlers"
	"remindbot/internal/discord/handlers/response"
)

type Handler struct {
	log     logging.Logger
	service services.Service[service.Input, service.Result]
	replier bot.Replier
	usage   string
}

func New(
	log logging.Logger,
	service services.Service[service.Input, service.Result],
	replier bot.Replier,
	prefix string,
) *Handler {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	if replier == nil {
		panic(e.NewNilArgumentError("replier"))
	}
	return &Handler{
		log:     log,
		service: service,
		replier: replier,
		usage:   fmt.Sprintf("Usage: `%sreminder-delete ID`", prefix),
	}
}

func (h *Handler) Handle(ctx context.Context, cmd handlers.Command) {
	m := cmd.Message
	if len(cmd.Args) == 0 {
		h.reply(ctx, m, "Please provide a reminder ID! "+h.usage)
		return
	}
	id := reminder.NormalizeID(reminder.ID(cmd.Args[0]))

	result, err := h.service.Run(ctx, service.Input{
		GuildID:     m.GuildID,
		ChannelID:   m.ChannelID,
		RequesterID: m.AuthorID,
		ReminderID:  id,
	})
	if err != nil {
		switch {
		case errors.Is(err, reminder.ErrReminderDoesNotExist):
			h.reply(ctx, m, fmt.Sprintf("No reminder found with ID: %s", id))
		case errors.Is(err, reminder.ErrReminderPermission):
			h.reply(ctx, m, "You can only delete your own reminders (or need Manage Messages permission).")
		default:
			logging.Error(ctx, h.log, err, logging.Entry("commandID", cmd.ID), logging.Entry("reminderID", id))
			response.SendInternalError(ctx, h.replier, h.log, m)
		}
		return
	}

	h.reply(ctx, m, response.ReminderDeleted(result.Reminder))
}

func (h *Handler) reply(ctx context.Context, m bot.Message, text string) {
	response.Send(ctx, h.replier, h.log, m, text)
}
