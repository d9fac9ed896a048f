package discord

import (
	"context"
	"fmt"
	"remindbot/internal/core/domain/bot"
	e "remindbot/internal/core/domain/errors"
	"remindbot/internal/core/domain/logging"
	"time"

	"github.com/bwmarrin/discordgo"
)

const (
	FETCH_BATCH_SIZE = 100
	BULK_DELETE_AGE  = 14 * 24 * time.Hour
)

const INTENTS = discordgo.IntentsGuilds |
	discordgo.IntentsGuildMessages |
	discordgo.IntentsMessageContent |
	discordgo.IntentsGuildMembers

// Client adapts a discordgo session to the bot interfaces.
type Client struct {
	session *discordgo.Session
	log     logging.Logger
	now     func() time.Time
}

func NewSession(token string) (*discordgo.Session, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}
	session.Identify.Intents = INTENTS
	return session, nil
}

func New(session *discordgo.Session, log logging.Logger, now func() time.Time) *Client {
	if session == nil {
		panic(e.NewNilArgumentError("session"))
	}
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &Client{session: session, log: log, now: now}
}

func (c *Client) ResolveChannel(ctx context.Context, guildID string, channelID string) error {
	if _, err := c.guild(ctx, guildID); err != nil {
		c.log.Debug(ctx, "Could not resolve guild.", logging.Entry("guildID", guildID), logging.Entry("err", err))
		return fmt.Errorf("%w: %s", bot.ErrGuildNotFound, guildID)
	}
	ch, err := c.channel(ctx, channelID)
	if err != nil {
		c.log.Debug(ctx, "Could not resolve channel.", logging.Entry("channelID", channelID), logging.Entry("err", err))
		return fmt.Errorf("%w: %s", bot.ErrChannelNotFound, channelID)
	}
	if ch.GuildID != guildID {
		return fmt.Errorf("%w: %s", bot.ErrChannelNotFound, channelID)
	}
	return nil
}

func (c *Client) guild(ctx context.Context, guildID string) (*discordgo.Guild, error) {
	if g, err := c.session.State.Guild(guildID); err == nil {
		return g, nil
	}
	return c.session.Guild(guildID, discordgo.WithContext(ctx))
}

func (c *Client) channel(ctx context.Context, channelID string) (*discordgo.Channel, error) {
	if ch, err := c.session.State.Channel(channelID); err == nil {
		return ch, nil
	}
	return c.session.Channel(channelID, discordgo.WithContext(ctx))
}

func (c *Client) SendMessage(ctx context.Context, channelID string, text string) error {
	_, err := c.session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content: text,
		AllowedMentions: &discordgo.MessageAllowedMentions{
			Parse: []discordgo.AllowedMentionType{discordgo.AllowedMentionTypeUsers},
		},
	}, discordgo.WithContext(ctx))
	return err
}

func (c *Client) Reply(ctx context.Context, m bot.Message, text string) error {
	_, err := c.session.ChannelMessageSendComplex(m.ChannelID, &discordgo.MessageSend{
		Content:   text,
		Reference: &discordgo.MessageReference{MessageID: m.ID, ChannelID: m.ChannelID, GuildID: m.GuildID},
		AllowedMentions: &discordgo.MessageAllowedMentions{
			Parse: []discordgo.AllowedMentionType{},
		},
	}, discordgo.WithContext(ctx))
	return err
}

func (c *Client) ReplyTemporary(ctx context.Context, m bot.Message, text string, ttl time.Duration) error {
	sent, err := c.session.ChannelMessageSend(m.ChannelID, text, discordgo.WithContext(ctx))
	if err != nil {
		return err
	}
	time.AfterFunc(ttl, func() {
		if err := c.session.ChannelMessageDelete(sent.ChannelID, sent.ID); err != nil {
			c.log.Debug(context.Background(), "Could not delete temporary message.", logging.Entry("err", err))
		}
	})
	return nil
}

func (c *Client) CanManageMessages(ctx context.Context, channelID string, userID string) (bool, error) {
	permissions, err := c.session.UserChannelPermissions(userID, channelID, discordgo.WithContext(ctx))
	if err != nil {
		return false, err
	}
	return permissions&discordgo.PermissionManageMessages != 0, nil
}

// WipeMessages deletes up to limit of the most recent messages in the channel.
// Messages younger than two weeks are bulk deleted, older ones one at a time.
func (c *Client) WipeMessages(ctx context.Context, channelID string, limit int) (deleted int, err error) {
	before := ""
	for remaining := limit; remaining > 0; {
		batch := remaining
		if batch > FETCH_BATCH_SIZE {
			batch = FETCH_BATCH_SIZE
		}
		messages, err := c.session.ChannelMessages(channelID, batch, before, "", "", discordgo.WithContext(ctx))
		if err != nil {
			return deleted, err
		}
		if len(messages) == 0 {
			return deleted, nil
		}

		recent, old := c.splitByAge(messages)
		n, err := c.deleteRecent(ctx, channelID, recent)
		deleted += n
		if err != nil {
			return deleted, err
		}
		for _, id := range old {
			if err := c.session.ChannelMessageDelete(channelID, id, discordgo.WithContext(ctx)); err != nil {
				return deleted, err
			}
			deleted++
		}

		remaining -= len(messages)
		before = messages[len(messages)-1].ID
		if len(messages) < batch {
			return deleted, nil
		}
	}
	return deleted, nil
}

func (c *Client) splitByAge(messages []*discordgo.Message) (recent []string, old []string) {
	threshold := c.now().Add(-BULK_DELETE_AGE)
	for _, m := range messages {
		if m.Timestamp.After(threshold) {
			recent = append(recent, m.ID)
		} else {
			old = append(old, m.ID)
		}
	}
	return recent, old
}

func (c *Client) deleteRecent(ctx context.Context, channelID string, ids []string) (int, error) {
	switch len(ids) {
	case 0:
		return 0, nil
	case 1:
		if err := c.session.ChannelMessageDelete(channelID, ids[0], discordgo.WithContext(ctx)); err != nil {
			return 0, err
		}
		return 1, nil
	default:
		if err := c.session.ChannelMessagesBulkDelete(channelID, ids, discordgo.WithContext(ctx)); err != nil {
			return 0, err
		}
		return len(ids), nil
	}
}
