package bot

import (
	"context"
	"errors"
	"time"
)

var (
	ErrGuildNotFound      = errors.New("guild not found")
	ErrChannelNotFound    = errors.New("channel not found")
	ErrPermissionRequired = errors.New("manage messages permission required")
	ErrInvalidWipeCount   = errors.New("wipe count must be a positive number")
)

// Message is an inbound chat message.
type Message struct {
	ID          string
	GuildID     string
	ChannelID   string
	AuthorID    string
	AuthorIsBot bool
	Content     string
}

type ChannelResolver interface {
	// ResolveChannel returns ErrGuildNotFound or ErrChannelNotFound when the channel
	// is not reachable within the guild.
	ResolveChannel(ctx context.Context, guildID string, channelID string) error
}

type MessageSender interface {
	SendMessage(ctx context.Context, channelID string, text string) error
}

type Replier interface {
	Reply(ctx context.Context, m Message, text string) error
	// ReplyTemporary posts text to the message channel and removes it after ttl.
	ReplyTemporary(ctx context.Context, m Message, text string, ttl time.Duration) error
}

type PermissionChecker interface {
	CanManageMessages(ctx context.Context, channelID string, userID string) (bool, error)
}

type MessageWiper interface {
	WipeMessages(ctx context.Context, channelID string, limit int) (deleted int, err error)
}
