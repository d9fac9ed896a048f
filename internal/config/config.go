package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v6"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type Config struct {
	IsTestMode            bool          `env:"TEST_MODE" envDefault:"false"`
	DiscordToken          string        `env:"DISCORD_TOKEN,required"`
	Port                  uint16        `env:"PORT" envDefault:"3000"`
	DataDir               string        `env:"DATA_DIR" envDefault:"data"`
	CommandPrefix         string        `env:"COMMAND_PREFIX" envDefault:"!"`
	ReminderCheckInterval time.Duration `env:"REMINDER_CHECK_INTERVAL" envDefault:"30s"`
	RedisURL              string        `env:"REDIS_URL"`
	CommandRateLimit      uint16        `env:"COMMAND_RATE_LIMIT" envDefault:"10"`
	SentryDsn             *url.URL      `env:"SENTRY_DSN"`
	ExternalURL           string        `env:"RENDER_EXTERNAL_URL"`
	SelfPingInterval      time.Duration `env:"SELF_PING_INTERVAL" envDefault:"10m"`
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.DiscordToken, validation.Required),
		validation.Field(&c.Port, validation.Required),
		validation.Field(&c.DataDir, validation.Required),
		validation.Field(&c.CommandPrefix, validation.Required, validation.RuneLength(1, 8)),
		validation.Field(&c.ReminderCheckInterval, validation.Required, validation.Min(time.Second)),
		validation.Field(&c.CommandRateLimit, validation.Required),
		validation.Field(&c.ExternalURL, is.URL),
		validation.Field(&c.SelfPingInterval, validation.Required, validation.Min(time.Minute)),
	)
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func Load() (*Config, error) {
	return LoadFrom(env.Options{})
}

// LoadFrom parses the config with explicit env options, e.g. a fixed environment in tests.
func LoadFrom(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg, opts); err != nil {
		return nil, fmt.Errorf("could not parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
