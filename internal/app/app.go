package app

import (
	"net/http"
	"remindbot/internal/app/deps"
	"remindbot/internal/app/services"
	"remindbot/internal/discord"
	createreminder "remindbot/internal/discord/handlers/reminders/create_reminder"
	deletereminder "remindbot/internal/discord/handlers/reminders/delete_reminder"
	listreminders "remindbot/internal/discord/handlers/reminders/list_reminders"
	"remindbot/internal/discord/handlers/wipe"
	health "remindbot/internal/http"
	"time"
)

func InitRouter(deps *deps.Deps, s *services.Services) *discord.Router {
	prefix := deps.Config.CommandPrefix

	router := discord.NewRouter(deps.Logger, prefix)
	router.Register(
		"reminder",
		createreminder.New(deps.Logger, s.CreateReminder, deps.Discord, deps.Discord, prefix),
	)
	router.Register("reminder-list", listreminders.New(deps.Logger, s.ListGuildReminders, deps.Discord, deps.Discord))
	router.Register("reminder-delete", deletereminder.New(deps.Logger, s.DeleteReminder, deps.Discord, prefix))
	router.Register("wipe", wipe.New(deps.Logger, s.WipeMessages, deps.Discord))
	return router
}

func InitHttpServer(deps *deps.Deps) *http.Server {
	return &http.Server{
		Addr:              deps.Config.Addr(),
		Handler:           health.NewHandler(deps.Logger, deps.StartedAt, deps.Now),
		ReadHeaderTimeout: 5 * time.Second,
	}
}
