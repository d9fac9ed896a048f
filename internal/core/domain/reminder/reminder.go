package reminder

import (
	"strings"
	"time"
)

const (
	ID_LENGTH        = 6
	MAX_DURATION     = 366 * 24 * time.Hour
	MAX_TITLE_LENGTH = 1500
)

type ID string

// NormalizeID makes IDs comparable regardless of the case they were typed in.
func NormalizeID(id ID) ID {
	return ID(strings.ToUpper(strings.TrimSpace(string(id))))
}

type Reminder struct {
	ID        ID     `json:"id"`
	ChannelID string `json:"channelId"`
	Title     string `json:"title"`
	CreatedBy string `json:"createdBy"`
	CreatedAt int64  `json:"createdAt"`
	TriggerAt int64  `json:"triggerAt"`
	GuildID   string `json:"guildId"`
}

func (r Reminder) CreatedTime() time.Time {
	return time.UnixMilli(r.CreatedAt).UTC()
}

func (r Reminder) TriggerTime() time.Time {
	return time.UnixMilli(r.TriggerAt).UTC()
}

func (r Reminder) IsDue(now time.Time) bool {
	return r.TriggerAt <= now.UnixMilli()
}

// TimeLeft is never negative.
func (r Reminder) TimeLeft(now time.Time) time.Duration {
	left := r.TriggerTime().Sub(now)
	if left < 0 {
		return 0
	}
	return left
}

type IDGenerator interface {
	GenerateReminderID() ID
}
