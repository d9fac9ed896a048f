package remindersender

import (
	"context"
	"fmt"
	"remindbot/internal/core/domain/bot"
	e "remindbot/internal/core/domain/errors"
	"remindbot/internal/core/domain/reminder"
)

type channelClient interface {
	bot.ChannelResolver
	bot.MessageSender
}

// Sender posts due reminders to the channel they were created for.
type Sender struct {
	client channelClient
}

func New(client channelClient) *Sender {
	if client == nil {
		panic(e.NewNilArgumentError("client"))
	}
	return &Sender{client: client}
}

func (s *Sender) SendReminder(ctx context.Context, r reminder.Reminder) error {
	if err := s.client.ResolveChannel(ctx, r.GuildID, r.ChannelID); err != nil {
		return err
	}
	return s.client.SendMessage(ctx, r.ChannelID, FormatReminder(r))
}

func FormatReminder(r reminder.Reminder) string {
	return fmt.Sprintf("⏰ **Reminder:** %s\n*Set by <@%s>*", r.Title, r.CreatedBy)
}
