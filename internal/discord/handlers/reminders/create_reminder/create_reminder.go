package createreminder

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"remindbot/internal/core/domain/bot"
	e "remindbot/internal/core/domain/errors"
	"remindbot/internal/core/domain/logging"
	ratelimiter "remindbot/internal/core/domain/rate_limiter"
	"remindbot/internal/core/domain/reminder"
	"remindbot/internal/core/services"
	service "remindbot/internal/core/services/create_reminder"
	"remindbot/internal/discord/handlers"
	"remindbot/internal/discord/handlers/response"
	"time"
)

var channelMentionRe = regexp.MustCompile(`^<#(\d+)>$`)

type Handler struct {
	log      logging.Logger
	service  services.Service[service.Input, service.Result]
	resolver bot.ChannelResolver
	replier  bot.Replier
	usage    string
}

func New(
	log logging.Logger,
	service services.Service[service.Input, service.Result],
	resolver bot.ChannelResolver,
	replier bot.Replier,
	prefix string,
) *Handler {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	if resolver == nil {
		panic(e.NewNilArgumentError("resolver"))
	}
	if replier == nil {
		panic(e.NewNilArgumentError("replier"))
	}
	return &Handler{
		log:      log,
		service:  service,
		resolver: resolver,
		replier:  replier,
		usage:    fmt.Sprintf("Usage: `%sreminder #channel \"title\" 2h30m`", prefix),
	}
}

func (h *Handler) Handle(ctx context.Context, cmd handlers.Command) {
	m := cmd.Message

	var channelID string
	if len(cmd.Args) > 0 {
		if match := channelMentionRe.FindStringSubmatch(cmd.Args[0]); match != nil {
			channelID = match[1]
		}
	}
	if channelID == "" {
		h.reply(ctx, m, "Please specify a channel! "+h.usage)
		return
	}

	if err := h.resolver.ResolveChannel(ctx, m.GuildID, channelID); err != nil {
		if !errors.Is(err, bot.ErrGuildNotFound) && !errors.Is(err, bot.ErrChannelNotFound) {
			h.log.Warning(ctx, "Could not resolve channel.", logging.Entry("commandID", cmd.ID), logging.Entry("err", err))
		}
		h.reply(ctx, m, "Channel not found!")
		return
	}

	title, err := reminder.ExtractTitle(m.Content)
	if err != nil {
		h.replyTitleMissing(ctx, m)
		return
	}

	duration, err := reminder.ParseDuration(cmd.Args[len(cmd.Args)-1])
	if err != nil {
		h.replyInvalidDuration(ctx, m)
		return
	}

	result, err := h.service.Run(ctx, service.Input{
		GuildID:   m.GuildID,
		ChannelID: channelID,
		AuthorID:  m.AuthorID,
		Title:     title,
		Duration:  duration,
	})
	if err != nil {
		switch {
		case errors.Is(err, reminder.ErrInvalidTitle):
			h.replyTitleMissing(ctx, m)
		case errors.Is(err, reminder.ErrInvalidDuration):
			h.replyInvalidDuration(ctx, m)
		case errors.Is(err, reminder.ErrReminderTooLate):
			h.reply(ctx, m, fmt.Sprintf("Reminders can be set at most %d days ahead.", reminder.MAX_DURATION/(24*time.Hour)))
		case errors.Is(err, reminder.ErrInvalidReference):
			h.reply(ctx, m, "Channel not found!")
		case errors.Is(err, ratelimiter.ErrRateLimitExceeded):
			h.reply(ctx, m, response.RateLimitExceeded)
		default:
			logging.Error(ctx, h.log, err, logging.Entry("commandID", cmd.ID), logging.Entry("reminder", result.Reminder))
			response.SendInternalError(ctx, h.replier, h.log, m)
		}
		return
	}

	h.reply(ctx, m, response.ReminderCreated(result.Reminder, duration))
}

func (h *Handler) replyTitleMissing(ctx context.Context, m bot.Message) {
	h.reply(ctx, m, "Please provide a title in quotes! "+h.usage+"\n(Accepts any type of quotes: \" \" ' ' « » etc.)")
}

func (h *Handler) replyInvalidDuration(ctx context.Context, m bot.Message) {
	h.reply(ctx, m, "Invalid time format! Use formats like: 2h, 30m, 2h30m, 45s")
}

func (h *Handler) reply(ctx context.Context, m bot.Message, text string) {
	response.Send(ctx, h.replier, h.log, m, text)
}
