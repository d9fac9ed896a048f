package wipemessages

import (
	"context"
	"remindbot/internal/core/domain/bot"
	e "remindbot/internal/core/domain/errors"
	"remindbot/internal/core/domain/logging"
	"remindbot/internal/core/services"
)

const (
	DEFAULT_COUNT = 100
	MAX_COUNT     = 1000
)

type Input struct {
	GuildID     string
	ChannelID   string
	RequesterID string
	Count       int
}

func (i Input) GetRateLimitKey() string {
	return "wipe::" + i.GuildID + "::" + i.ChannelID
}

type Result struct {
	Deleted int
}

type service struct {
	log         logging.Logger
	permissions bot.PermissionChecker
	wiper       bot.MessageWiper
}

func New(
	log logging.Logger,
	permissions bot.PermissionChecker,
	wiper bot.MessageWiper,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if permissions == nil {
		panic(e.NewNilArgumentError("permissions"))
	}
	if wiper == nil {
		panic(e.NewNilArgumentError("wiper"))
	}
	return &service{log: log, permissions: permissions, wiper: wiper}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	allowed, err := s.permissions.CanManageMessages(ctx, input.ChannelID, input.RequesterID)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	if !allowed {
		return result, bot.ErrPermissionRequired
	}
	if input.Count < 1 {
		return result, bot.ErrInvalidWipeCount
	}
	count := input.Count
	if count > MAX_COUNT {
		count = MAX_COUNT
	}

	deleted, err := s.wiper.WipeMessages(ctx, input.ChannelID, count)
	result.Deleted = deleted
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input), logging.Entry("deleted", deleted))
		return result, err
	}

	s.log.Info(ctx, "Messages wiped.", logging.Entry("input", input), logging.Entry("deleted", deleted))
	return result, nil
}
