package discord

import (
	"context"
	"remindbot/internal/core/domain/bot"
	"remindbot/internal/core/domain/logging"

	"github.com/bwmarrin/discordgo"
)

func ToMessage(m *discordgo.Message) bot.Message {
	msg := bot.Message{
		ID:        m.ID,
		GuildID:   m.GuildID,
		ChannelID: m.ChannelID,
		Content:   m.Content,
	}
	if m.Author != nil {
		msg.AuthorID = m.Author.ID
		msg.AuthorIsBot = m.Author.Bot
	}
	return msg
}

// Listen registers the router on the session. Each message is handled on the
// goroutine discordgo starts for the event.
func Listen(session *discordgo.Session, router *Router, log logging.Logger) {
	session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Info(
			context.Background(),
			"Connected to Discord.",
			logging.Entry("user", r.User.Username),
			logging.Entry("guilds", len(r.Guilds)),
		)
	})
	session.AddHandler(func(s *discordgo.Session, mc *discordgo.MessageCreate) {
		router.Dispatch(context.Background(), ToMessage(mc.Message))
	})
}
