package discord

import (
	"context"
	"fmt"
	"remindbot/internal/core/domain/bot"
	e "remindbot/internal/core/domain/errors"
	"remindbot/internal/core/domain/logging"
	"remindbot/internal/discord/handlers"
	"strings"

	"github.com/google/uuid"
)

// Router turns prefixed guild messages into commands for the registered handlers.
type Router struct {
	log      logging.Logger
	prefix   string
	handlers map[string]handlers.Handler
}

func NewRouter(log logging.Logger, prefix string) *Router {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if prefix == "" {
		panic(e.NewNilArgumentError("prefix"))
	}
	return &Router{log: log, prefix: prefix, handlers: make(map[string]handlers.Handler)}
}

func (r *Router) Prefix() string {
	return r.prefix
}

func (r *Router) Register(name string, h handlers.Handler) {
	r.handlers[strings.ToLower(name)] = h
}

// Parse reports false for messages that are not commands.
func (r *Router) Parse(m bot.Message) (handlers.Command, bool) {
	if m.AuthorIsBot || m.GuildID == "" || !strings.HasPrefix(m.Content, r.prefix) {
		return handlers.Command{}, false
	}
	fields := strings.Fields(m.Content[len(r.prefix):])
	if len(fields) == 0 {
		return handlers.Command{}, false
	}
	return handlers.Command{
		Name:    strings.ToLower(fields[0]),
		Args:    fields[1:],
		Message: m,
	}, true
}

// Dispatch runs the handler of the command in m and reports whether there was one.
func (r *Router) Dispatch(ctx context.Context, m bot.Message) bool {
	cmd, ok := r.Parse(m)
	if !ok {
		return false
	}
	h, ok := r.handlers[cmd.Name]
	if !ok {
		return false
	}
	cmd.ID = uuid.NewString()

	defer func() {
		if rec := recover(); rec != nil {
			logging.Error(
				ctx,
				r.log,
				fmt.Errorf("command handler panicked: %v", rec),
				logging.Entry("commandID", cmd.ID),
				logging.Entry("command", cmd.Name),
			)
		}
	}()

	r.log.Info(
		ctx,
		"Command received.",
		logging.Entry("commandID", cmd.ID),
		logging.Entry("command", cmd.Name),
		logging.Entry("guildID", m.GuildID),
		logging.Entry("authorID", m.AuthorID),
	)
	h.Handle(ctx, cmd)
	return true
}
