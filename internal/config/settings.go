package config

import (
	"context"
	"errors"
	"remindbot/internal/core/domain/storage"
	"strings"
	"time"
)

const SETTINGS_DOCUMENT_NAME = "config.json"

// Settings is the optional config document kept next to the reminders.
// ReminderCheckInterval is in milliseconds.
type Settings struct {
	Prefix                string `json:"prefix,omitempty"`
	ReminderCheckInterval int64  `json:"reminderCheckInterval,omitempty"`
}

func LoadSettings(ctx context.Context, store storage.Store) (Settings, error) {
	var s Settings
	err := store.Read(ctx, SETTINGS_DOCUMENT_NAME, &s)
	if errors.Is(err, storage.ErrDocumentDoesNotExist) {
		return Settings{}, nil
	}
	return s, err
}

// Apply overrides config values with the ones present in the settings document.
// Values that would make the config invalid are ignored.
func (c *Config) Apply(s Settings) {
	if prefix := strings.TrimSpace(s.Prefix); prefix != "" {
		c.CommandPrefix = prefix
	}
	if interval := time.Duration(s.ReminderCheckInterval) * time.Millisecond; interval >= time.Second {
		c.ReminderCheckInterval = interval
	}
}
