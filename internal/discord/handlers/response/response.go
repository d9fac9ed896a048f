package response

import (
	"context"
	"fmt"
	"remindbot/internal/core/domain/bot"
	"remindbot/internal/core/domain/logging"
	"remindbot/internal/core/domain/reminder"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MAX_SEGMENT_LENGTH = 1900
	TIMESTAMP_LAYOUT   = "Jan 2, 03:04 PM MST"
)

const (
	InternalError     = "Something went wrong, please try again later."
	RateLimitExceeded = "You are sending commands too fast, please slow down."
)

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TIMESTAMP_LAYOUT)
}

// Send replies with every segment of text in order and stops on the first failure.
func Send(ctx context.Context, replier bot.Replier, log logging.Logger, m bot.Message, text string) {
	for _, segment := range SplitMessage(text, MAX_SEGMENT_LENGTH) {
		if err := replier.Reply(ctx, m, segment); err != nil {
			log.Warning(ctx, "Could not send reply.", logging.Entry("channelID", m.ChannelID), logging.Entry("err", err))
			return
		}
	}
}

func SendInternalError(ctx context.Context, replier bot.Replier, log logging.Logger, m bot.Message) {
	Send(ctx, replier, log, m, InternalError)
}

// SplitMessage cuts text into segments of at most limit runes. A segment ends
// after the last newline that fits, or at the limit when there is none.
// Joining the segments gives back text.
func SplitMessage(text string, limit int) []string {
	if text == "" {
		return nil
	}
	segments := make([]string, 0, utf8.RuneCountInString(text)/limit+1)
	for text != "" {
		if utf8.RuneCountInString(text) <= limit {
			segments = append(segments, text)
			break
		}
		cut := byteOffset(text, limit)
		if i := strings.LastIndexByte(text[:cut], '\n'); i >= 0 {
			cut = i + 1
		}
		segments = append(segments, text[:cut])
		text = text[cut:]
	}
	return segments
}

func byteOffset(text string, runes int) int {
	i := 0
	for offset := range text {
		if i == runes {
			return offset
		}
		i++
	}
	return len(text)
}

func ReminderCreated(r reminder.Reminder, d time.Duration) string {
	return fmt.Sprintf(
		"✅ Reminder set! (ID: %s)\n\"%s\" will be sent to <#%s> in %s\n📅 Trigger time: %s",
		r.ID,
		r.Title,
		r.ChannelID,
		reminder.FormatDuration(d),
		FormatTimestamp(r.TriggerTime()),
	)
}

// ListedReminder is a reminder together with whether its channel still resolves.
type ListedReminder struct {
	Reminder       reminder.Reminder
	ChannelVisible bool
}

func ReminderList(reminders []ListedReminder, now time.Time) string {
	var b strings.Builder
	b.WriteString("📋 **Active Reminders:**\n\n")
	for _, item := range reminders {
		r := item.Reminder
		channel := "Unknown"
		if item.ChannelVisible {
			channel = fmt.Sprintf("<#%s>", r.ChannelID)
		}
		fmt.Fprintf(&b, "**ID:** %s\n", r.ID)
		fmt.Fprintf(&b, "**Title:** \"%s\"\n", r.Title)
		fmt.Fprintf(&b, "**Channel:** %s\n", channel)
		fmt.Fprintf(&b, "**Set by:** <@%s>\n", r.CreatedBy)
		fmt.Fprintf(&b, "**Triggers at:** %s\n", FormatTimestamp(r.TriggerTime()))
		fmt.Fprintf(&b, "**Time left:** %s\n\n", reminder.FormatDuration(r.TimeLeft(now)))
	}
	return b.String()
}

func ReminderDeleted(r reminder.Reminder) string {
	return fmt.Sprintf("✅ Deleted reminder \"%s\" (ID: %s)", r.Title, r.ID)
}

func MessagesWiped(n int) string {
	return fmt.Sprintf("🗑️ Deleted %d messages!", n)
}
