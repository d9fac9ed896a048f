package wipe

import (
	"context"
	"errors"
	"remindbot/internal/core/domain/bot"
	"remindbot/internal/core/domain/logging"
	service "remindbot/internal/core/services/wipe_messages"
	"remindbot/internal/discord/handlers"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	input  *service.Input
	result service.Result
	err    error
}

func (s *stubService) Run(ctx context.Context, input service.Input) (service.Result, error) {
	s.input = &input
	return s.result, s.err
}

func command(args ...string) handlers.Command {
	return handlers.Command{
		ID:      "cmd",
		Name:    "wipe",
		Args:    args,
		Message: bot.Message{ID: "m1", GuildID: "100", ChannelID: "200", AuthorID: "300"},
	}
}

func TestParseCount(t *testing.T) {
	assert.Equal(t, 100, parseCount(nil))
	assert.Equal(t, 100, parseCount([]string{"lots"}))
	assert.Equal(t, 25, parseCount([]string{"25"}))
	assert.Equal(t, 0, parseCount([]string{"0"}))
	assert.Equal(t, -3, parseCount([]string{"-3"}))
}

func TestWipeSuccess(t *testing.T) {
	client := bot.NewFakeClient()
	stub := &stubService{result: service.Result{Deleted: 42}}
	handler := New(logging.NewFakeLogger(), stub, client)

	handler.Handle(context.Background(), command("50"))

	require.NotNil(t, stub.input)
	assert.Equal(t, service.Input{GuildID: "100", ChannelID: "200", RequesterID: "300", Count: 50}, *stub.input)
	require.Len(t, client.Replies, 1)
	assert.Equal(t, "🗑️ Deleted 42 messages!", client.Replies[0].Text)
	assert.True(t, client.Replies[0].Temporary)
}

func TestWipeErrors(t *testing.T) {
	cases := []struct {
		id       string
		err      error
		expected string
	}{
		{id: "permission", err: bot.ErrPermissionRequired, expected: "You need Manage Messages permission to use this command!"},
		{id: "count", err: bot.ErrInvalidWipeCount, expected: "Please provide a number greater than 0!"},
		{id: "discord", err: errors.New("missing access"), expected: "There was an error deleting messages."},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			client := bot.NewFakeClient()
			handler := New(logging.NewFakeLogger(), &stubService{err: testcase.err}, client)

			handler.Handle(context.Background(), command())

			assert.Equal(t, []string{testcase.expected}, client.ReplyTexts())
		})
	}
}
