package services

import (
	"remindbot/internal/app/deps"
	ratelimiter "remindbot/internal/core/domain/rate_limiter"
	"remindbot/internal/core/services"
	createreminder "remindbot/internal/core/services/create_reminder"
	deletereminder "remindbot/internal/core/services/delete_reminder"
	deliverreminders "remindbot/internal/core/services/deliver_reminders"
	listguildreminders "remindbot/internal/core/services/list_guild_reminders"
	"remindbot/internal/core/services/rate_limiting"
	senddailyevent "remindbot/internal/core/services/send_daily_event"
	wipemessages "remindbot/internal/core/services/wipe_messages"
)

// Bulk deletes are expensive on the Discord side, so wipes get a tighter limit.
const WIPE_RATE_LIMIT = 3

type Services struct {
	CreateReminder     services.Service[createreminder.Input, createreminder.Result]
	ListGuildReminders services.Service[listguildreminders.Input, listguildreminders.Result]
	DeleteReminder     services.Service[deletereminder.Input, deletereminder.Result]
	DeliverReminders   services.Service[deliverreminders.Input, deliverreminders.Result]
	WipeMessages       services.Service[wipemessages.Input, wipemessages.Result]
	SendDailyEvent     services.Service[senddailyevent.Input, senddailyevent.Result]
}

func InitServices(deps *deps.Deps) *Services {
	return &Services{
		CreateReminder: ratelimiting.WithRateLimiting(
			deps.Logger,
			deps.RateLimiter,
			ratelimiter.Limit{Value: deps.Config.CommandRateLimit, Interval: ratelimiter.Minute},
			createreminder.New(deps.Logger, deps.ReminderRepository),
		),
		ListGuildReminders: listguildreminders.New(deps.Logger, deps.ReminderRepository, deps.Now),
		DeleteReminder:     deletereminder.New(deps.Logger, deps.ReminderRepository, deps.Discord),
		DeliverReminders: deliverreminders.New(
			deps.Logger,
			deps.ReminderRepository,
			deps.ReminderSender,
			deps.Now,
		),
		WipeMessages: ratelimiting.WithRateLimiting(
			deps.Logger,
			deps.RateLimiter,
			ratelimiter.Limit{Value: WIPE_RATE_LIMIT, Interval: ratelimiter.Minute},
			wipemessages.New(deps.Logger, deps.Discord, deps.Discord),
		),
		SendDailyEvent: senddailyevent.New(deps.Logger, deps.Discord),
	}
}
