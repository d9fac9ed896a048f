package wipe

import (
	"context"
	"errors"
	"remindbot/internal/core/domain/bot"
	e "remindbot/internal/core/domain/errors"
	"remindbot/internal/core/domain/logging"
	ratelimiter "remindbot/internal/core/domain/rate_limiter"
	"remindbot/internal/core/services"
	service "remindbot/internal/core/services/wipe_messages"
	"remindbot/internal/discord/handlers"
	"remindbot/internal/discord/handlers/response"
	"strconv"
	"time"
)

const CONFIRMATION_TTL = 5 * time.Second

type Handler struct {
	log     logging.Logger
	service services.Service[service.Input, service.Result]
	replier bot.Replier
}

func New(
	log logging.Logger,
	service services.Service[service.Input, service.Result],
	replier bot.Replier,
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
	return &Handler{log: log, service: service, replier: replier}
}

// parseCount falls back to the default when no count or a non-numeric count is given.
func parseCount(args []string) int {
	if len(args) == 0 {
		return service.DEFAULT_COUNT
	}
	count, err := strconv.Atoi(args[0])
	if err != nil {
		return service.DEFAULT_COUNT
	}
	return count
}

func (h *Handler) Handle(ctx context.Context, cmd handlers.Command) {
	m := cmd.Message
	result, err := h.service.Run(ctx, service.Input{
		GuildID:     m.GuildID,
		ChannelID:   m.ChannelID,
		RequesterID: m.AuthorID,
		Count:       parseCount(cmd.Args),
	})
	if err != nil {
		switch {
		case errors.Is(err, bot.ErrPermissionRequired):
			h.reply(ctx, m, "You need Manage Messages permission to use this command!")
		case errors.Is(err, bot.ErrInvalidWipeCount):
			h.reply(ctx, m, "Please provide a number greater than 0!")
		case errors.Is(err, ratelimiter.ErrRateLimitExceeded):
			h.reply(ctx, m, response.RateLimitExceeded)
		default:
			h.log.Warning(ctx, "Wipe failed.", logging.Entry("commandID", cmd.ID), logging.Entry("deleted", result.Deleted))
			h.reply(ctx, m, "There was an error deleting messages.")
		}
		return
	}

	if err := h.replier.ReplyTemporary(ctx, m, response.MessagesWiped(result.Deleted), CONFIRMATION_TTL); err != nil {
		h.log.Warning(ctx, "Could not send reply.", logging.Entry("commandID", cmd.ID), logging.Entry("err", err))
	}
}

func (h *Handler) reply(ctx context.Context, m bot.Message, text string) {
	response.Send(ctx, h.replier, h.log, m, text)
}
