package senddailyevent

import (
	"context"
	"fmt"
	"remindbot/internal/core/domain/bot"
	dailyevent "remindbot/internal/core/domain/daily_event"
	e "remindbot/internal/core/domain/errors"
	"remindbot/internal/core/domain/logging"
	"remindbot/internal/core/services"
)

type Input struct {
	Event dailyevent.DailyEvent
}

type Result struct{}

type service struct {
	log    logging.Logger
	sender bot.MessageSender
}

func New(log logging.Logger, sender bot.MessageSender) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}
	return &service{log: log, sender: sender}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	text := fmt.Sprintf("📅 **Daily Reminder:** %s", input.Event.Message)
	if err := s.sender.SendMessage(ctx, input.Event.Channel, text); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("event", input.Event.Name))
		return result, err
	}
	s.log.Info(ctx, "Daily event sent.", logging.Entry("event", input.Event.Name))
	return result, nil
}
