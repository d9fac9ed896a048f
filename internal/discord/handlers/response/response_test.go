package response

import (
	"context"
	"errors"
	"remindbot/internal/core/domain/bot"
	"remindbot/internal/core/domain/logging"
	"remindbot/internal/core/domain/reminder"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTimestamp(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.Nil(t, err)

	assert.Equal(t, "Oct 16, 02:30 PM UTC", FormatTimestamp(time.Date(2024, 10, 16, 14, 30, 0, 0, time.UTC)))
	assert.Equal(t, "Jan 2, 09:05 AM UTC", FormatTimestamp(time.Date(2025, 1, 2, 10, 5, 0, 0, berlin)))
}

func TestSplitMessage(t *testing.T) {
	cases := []struct {
		id    string
		text  string
		limit int
	}{
		{id: "short", text: "hello", limit: 10},
		{id: "exact", text: "0123456789", limit: 10},
		{id: "no newlines", text: strings.Repeat("x", 25), limit: 10},
		{id: "newlines", text: strings.Repeat("line of text\n", 40), limit: 100},
		{id: "multibyte", text: strings.Repeat("⏰ напоминание\n", 30), limit: 50},
		{id: "newline at start", text: "\n" + strings.Repeat("y", 30), limit: 10},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			segments := SplitMessage(testcase.text, testcase.limit)

			require.NotEmpty(t, segments)
			for _, segment := range segments {
				assert.NotEmpty(t, segment)
				assert.LessOrEqual(t, utf8.RuneCountInString(segment), testcase.limit)
				assert.True(t, utf8.ValidString(segment))
			}
			assert.Equal(t, testcase.text, strings.Join(segments, ""))
		})
	}
}

func TestSplitMessagePrefersNewlines(t *testing.T) {
	segments := SplitMessage("aaaa\nbbbb\ncccc", 12)

	assert.Equal(t, []string{"aaaa\nbbbb\n", "cccc"}, segments)
}

func TestSplitMessageEmpty(t *testing.T) {
	assert.Len(t, SplitMessage("", 10), 0)
}

func TestReminderCreated(t *testing.T) {
	created := time.Date(2024, 10, 16, 12, 0, 0, 0, time.UTC)
	r := reminder.Reminder{
		ID:        "AB12CD",
		ChannelID: "42",
		Title:     "stand-up",
		CreatedAt: created.UnixMilli(),
		TriggerAt: created.Add(2*time.Hour + 30*time.Minute).UnixMilli(),
	}

	text := ReminderCreated(r, 2*time.Hour+30*time.Minute)

	assert.Equal(
		t,
		"✅ Reminder set! (ID: AB12CD)\n\"stand-up\" will be sent to <#42> in 2h 30m\n📅 Trigger time: Oct 16, 02:30 PM UTC",
		text,
	)
}

func TestReminderList(t *testing.T) {
	now := time.Date(2024, 10, 16, 12, 0, 0, 0, time.UTC)
	text := ReminderList([]ListedReminder{
		{
			Reminder:       reminder.Reminder{ID: "AAAAAA", ChannelID: "1", Title: "one", CreatedBy: "9", TriggerAt: now.Add(90 * time.Minute).UnixMilli()},
			ChannelVisible: true,
		},
		{
			Reminder: reminder.Reminder{ID: "BBBBBB", ChannelID: "2", Title: "two", CreatedBy: "9", TriggerAt: now.Add(-time.Minute).UnixMilli()},
		},
	}, now)

	assert.True(t, strings.HasPrefix(text, "📋 **Active Reminders:**\n\n"))
	assert.Contains(t, text, "**ID:** AAAAAA\n**Title:** \"one\"\n**Channel:** <#1>\n**Set by:** <@9>\n**Triggers at:** Oct 16, 01:30 PM UTC\n**Time left:** 1h 30m\n\n")
	assert.Contains(t, text, "**Channel:** Unknown\n")
	assert.Contains(t, text, "**Time left:** 0s\n\n")
}

func TestSend(t *testing.T) {
	client := bot.NewFakeClient()
	m := bot.Message{ID: "m", ChannelID: "c"}
	text := strings.Repeat("0123456789\n", 400)

	Send(context.Background(), client, logging.NewFakeLogger(), m, text)

	replies := client.ReplyTexts()
	assert.Greater(t, len(replies), 1)
	assert.Equal(t, text, strings.Join(replies, ""))
}

func TestSendStopsOnError(t *testing.T) {
	client := bot.NewFakeClient()
	client.ReplyError = errors.New("missing access")
	log := logging.NewFakeLogger()

	Send(context.Background(), client, log, bot.Message{}, strings.Repeat("x", 5000))

	assert.Len(t, log.Records(logging.WARNING), 1)
}
