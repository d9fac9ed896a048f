package bot

import (
	"context"
	"sync"
	"time"
)

type FakeReply struct {
	Message   Message
	Text      string
	Temporary bool
}

// FakeClient implements every bot interface and records what was sent.
type FakeClient struct {
	Replies         []FakeReply
	Sent            map[string][]string
	ReplyError      error
	SendError       error
	ResolveErrors   map[string]error
	Moderators      map[string]bool
	PermissionError error
	WipedChannel    string
	WipedLimit      int
	WipeResult      int
	WipeError       error
	lock            sync.Mutex
}

func NewFakeClient() *FakeClient {
	return &FakeClient{
		Sent:          make(map[string][]string),
		ResolveErrors: make(map[string]error),
		Moderators:    make(map[string]bool),
	}
}

func (c *FakeClient) ResolveChannel(ctx context.Context, guildID string, channelID string) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.ResolveErrors[channelID]
}

func (c *FakeClient) SendMessage(ctx context.Context, channelID string, text string) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.SendError != nil {
		return c.SendError
	}
	c.Sent[channelID] = append(c.Sent[channelID], text)
	return nil
}

func (c *FakeClient) Reply(ctx context.Context, m Message, text string) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.ReplyError != nil {
		return c.ReplyError
	}
	c.Replies = append(c.Replies, FakeReply{Message: m, Text: text})
	return nil
}

func (c *FakeClient) ReplyTemporary(ctx context.Context, m Message, text string, ttl time.Duration) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.ReplyError != nil {
		return c.ReplyError
	}
	c.Replies = append(c.Replies, FakeReply{Message: m, Text: text, Temporary: true})
	return nil
}

func (c *FakeClient) CanManageMessages(ctx context.Context, channelID string, userID string) (bool, error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.PermissionError != nil {
		return false, c.PermissionError
	}
	return c.Moderators[userID], nil
}

func (c *FakeClient) WipeMessages(ctx context.Context, channelID string, limit int) (int, error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.WipedChannel = channelID
	c.WipedLimit = limit
	return c.WipeResult, c.WipeError
}

func (c *FakeClient) ReplyTexts() []string {
	c.lock.Lock()
	defer c.lock.Unlock()
	texts := make([]string, 0, len(c.Replies))
	for _, r := range c.Replies {
		texts = append(texts, r.Text)
	}
	return texts
}

func (c *FakeClient) SentTo(channelID string) []string {
	c.lock.Lock()
	defer c.lock.Unlock()
	return append([]string(nil), c.Sent[channelID]...)
}
