package listreminders

import (
	"context"
	"remindbot/internal/core/domain/bot"
	e "remindbot/internal/core/domain/errors"
	"remindbot/internal/core/domain/logging"
	"remindbot/internal/core/services"
	service "remindbot/internal/core/services/list_guild_reminders"
	"remindbot/internal/discord/handlers"
	"remindbot/internal/discord/handlers/response"
)

type Handler struct {
	log      logging.Logger
	service  services.Service[service.Input, service.Result]
	resolver bot.ChannelResolver
	replier  bot.Replier
}

func New(
	log logging.Logger,
	service services.Service[service.Input, service.Result],
	resolver bot.ChannelResolver,
	replier bot.Replier,
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
	return &Handler{log: log, service: service, resolver: resolver, replier: replier}
}

func (h *Handler) Handle(ctx context.Context, cmd handlers.Command) {
	m := cmd.Message
	result, err := h.service.Run(ctx, service.Input{GuildID: m.GuildID})
	if err != nil {
		logging.Error(ctx, h.log, err, logging.Entry("commandID", cmd.ID))
		response.SendInternalError(ctx, h.replier, h.log, m)
		return
	}
	if len(result.Reminders) == 0 {
		response.Send(ctx, h.replier, h.log, m, "No active reminders in this server.")
		return
	}

	listed := make([]response.ListedReminder, 0, len(result.Reminders))
	visible := make(map[string]bool)
	for _, r := range result.Reminders {
		ok, checked := visible[r.ChannelID]
		if !checked {
			ok = h.resolver.ResolveChannel(ctx, m.GuildID, r.ChannelID) == nil
			visible[r.ChannelID] = ok
		}
		listed = append(listed, response.ListedReminder{Reminder: r, ChannelVisible: ok})
	}
	response.Send(ctx, h.replier, h.log, m, response.ReminderList(listed, result.Now))
}
