package reminder

import (
	"context"
	"sync"
	"time"
)

type FakeReminderRepository struct {
	CreateWith    []CreateInput
	CreateResult  Reminder
	CreateError   error
	ListWith      []string
	ListResult    []Reminder
	DeleteWith    []DeleteInput
	DeleteResult  Reminder
	DeleteError   error
	TakeDueWith   []time.Time
	TakeDueResult []Reminder
	FlushError    error
	FlushCount    int
	lock          sync.Mutex
}

func NewFakeReminderRepository() *FakeReminderRepository {
	return &FakeReminderRepository{}
}

func (r *FakeReminderRepository) Load(ctx context.Context) error {
	return nil
}

func (r *FakeReminderRepository) Create(ctx context.Context, input CreateInput) (Reminder, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.CreateWith = append(r.CreateWith, input)
	return r.CreateResult, r.CreateError
}

func (r *FakeReminderRepository) ListByGuild(ctx context.Context, guildID string) []Reminder {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.ListWith = append(r.ListWith, guildID)
	return r.ListResult
}

func (r *FakeReminderRepository) DeleteByID(ctx context.Context, input DeleteInput) (Reminder, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.DeleteWith = append(r.DeleteWith, input)
	return r.DeleteResult, r.DeleteError
}

func (r *FakeReminderRepository) TakeDue(ctx context.Context, now time.Time) []Reminder {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.TakeDueWith = append(r.TakeDueWith, now)
	taken := r.TakeDueResult
	r.TakeDueResult = nil
	return taken
}

func (r *FakeReminderRepository) Flush(ctx context.Context) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.FlushCount++
	return r.FlushError
}

func (r *FakeReminderRepository) Count(ctx context.Context) int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return len(r.ListResult)
}

type FakeSender struct {
	Sent   []Reminder
	Errors map[ID]error
	lock   sync.Mutex
}

func NewFakeSender() *FakeSender {
	return &FakeSender{Errors: make(map[ID]error)}
}

func (s *FakeSender) SendReminder(ctx context.Context, r Reminder) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	if err, ok := s.Errors[r.ID]; ok {
		return err
	}
	s.Sent = append(s.Sent, r)
	return nil
}

type FakeIDGenerator struct {
	IDs  []ID
	next int
	lock sync.Mutex
}

// NewFakeIDGenerator returns the given IDs in order, then repeats the last one.
func NewFakeIDGenerator(ids ...ID) *FakeIDGenerator {
	return &FakeIDGenerator{IDs: ids}
}

func (g *FakeIDGenerator) GenerateReminderID() ID {
	g.lock.Lock()
	defer g.lock.Unlock()
	if g.next >= len(g.IDs) {
		return g.IDs[len(g.IDs)-1]
	}
	id := g.IDs[g.next]
	g.next++
	return id
}
