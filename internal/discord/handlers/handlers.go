package handlers

import (
	"context"
	"remindbot/internal/core/domain/bot"
)

// Command is a parsed chat command. Args keep the original casing.
type Command struct {
	ID      string
	Name    string
	Args    []string
	Message bot.Message
}

type Handler interface {
	Handle(ctx context.Context, cmd Command)
}

type HandlerFunc func(ctx context.Context, cmd Command)

func (f HandlerFunc) Handle(ctx context.Context, cmd Command) {
	f(ctx, cmd)
}
