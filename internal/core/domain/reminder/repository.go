package reminder

import (
	"context"
	"time"
)

const DOCUMENT_NAME = "reminders.json"

// Document is the persisted form of the reminder set.
type Document struct {
	Reminders []Reminder `json:"reminders"`
}

type CreateInput struct {
	GuildID   string
	ChannelID string
	Title     string
	CreatedBy string
	Duration  time.Duration
}

type DeleteInput struct {
	GuildID              string
	ID                   ID
	RequesterID          string
	RequesterIsModerator bool
}

// ReminderRepository owns the set of pending reminders of all guilds.
// Every mutation is applied in memory first and then flushed to storage.
type ReminderRepository interface {
	Load(ctx context.Context) error
	Create(ctx context.Context, input CreateInput) (Reminder, error)
	ListByGuild(ctx context.Context, guildID string) []Reminder
	DeleteByID(ctx context.Context, input DeleteInput) (Reminder, error)
	TakeDue(ctx context.Context, now time.Time) []Reminder
	Flush(ctx context.Context) error
	Count(ctx context.Context) int
}
