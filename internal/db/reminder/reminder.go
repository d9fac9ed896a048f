package dbreminder

import (
	"context"
	"errors"
	e "remindbot/internal/core/domain/errors"
	"remindbot/internal/core/domain/logging"
	"remindbot/internal/core/domain/reminder"
	"remindbot/internal/core/domain/storage"
	"strings"
	"sync"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const MAX_ID_ATTEMPTS = 16

// StoreReminderRepository keeps the live reminder set in memory and writes
// the whole set to a storage document after every mutation.
type StoreReminderRepository struct {
	store     storage.Store
	ids       reminder.IDGenerator
	log       logging.Logger
	now       func() time.Time
	lock      sync.Mutex
	flushLock sync.Mutex
	reminders *orderedmap.OrderedMap[reminder.ID, reminder.Reminder]
}

func NewStoreReminderRepository(
	store storage.Store,
	ids reminder.IDGenerator,
	log logging.Logger,
	now func() time.Time,
) *StoreReminderRepository {
	if store == nil {
		panic(e.NewNilArgumentError("store"))
	}
	if ids == nil {
		panic(e.NewNilArgumentError("ids"))
	}
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &StoreReminderRepository{
		store:     store,
		ids:       ids,
		log:       log,
		now:       now,
		reminders: orderedmap.New[reminder.ID, reminder.Reminder](),
	}
}

func (r *StoreReminderRepository) Load(ctx context.Context) error {
	var doc reminder.Document
	err := r.store.Read(ctx, reminder.DOCUMENT_NAME, &doc)
	if errors.Is(err, storage.ErrDocumentDoesNotExist) {
		doc = reminder.Document{}
	} else if err != nil {
		return err
	}

	loaded := orderedmap.New[reminder.ID, reminder.Reminder]()
	for _, rem := range doc.Reminders {
		key := reminder.NormalizeID(rem.ID)
		if _, ok := loaded.Get(key); ok {
			r.log.Warning(ctx, "Skipped reminder with duplicated ID.", logging.Entry("reminder", rem))
			continue
		}
		loaded.Set(key, rem)
	}

	r.lock.Lock()
	r.reminders = loaded
	r.lock.Unlock()

	r.log.Info(ctx, "Reminders loaded.", logging.Entry("count", loaded.Len()))
	return nil
}

func (r *StoreReminderRepository) Create(
	ctx context.Context,
	input reminder.CreateInput,
) (rem reminder.Reminder, err error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return rem, reminder.ErrInvalidTitle
	}
	if input.Duration < time.Millisecond {
		return rem, reminder.ErrInvalidDuration
	}

	r.lock.Lock()
	id, ok := r.freshID()
	if !ok {
		r.lock.Unlock()
		return rem, reminder.ErrIDGenerationFailed
	}
	now := r.now()
	rem = reminder.Reminder{
		ID:        id,
		GuildID:   input.GuildID,
		ChannelID: input.ChannelID,
		Title:     title,
		CreatedBy: input.CreatedBy,
		CreatedAt: now.UnixMilli(),
		TriggerAt: now.Add(input.Duration).UnixMilli(),
	}
	r.reminders.Set(id, rem)
	r.lock.Unlock()

	if err := r.Flush(ctx); err != nil {
		return rem, err
	}
	return rem, nil
}

// freshID must be called with the lock held.
func (r *StoreReminderRepository) freshID() (reminder.ID, bool) {
	for i := 0; i < MAX_ID_ATTEMPTS; i++ {
		id := reminder.NormalizeID(r.ids.GenerateReminderID())
		if id == "" {
			continue
		}
		if _, exists := r.reminders.Get(id); !exists {
			return id, true
		}
	}
	return "", false
}

func (r *StoreReminderRepository) ListByGuild(ctx context.Context, guildID string) []reminder.Reminder {
	r.lock.Lock()
	defer r.lock.Unlock()

	result := make([]reminder.Reminder, 0)
	for pair := r.reminders.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value.GuildID == guildID {
			result = append(result, pair.Value)
		}
	}
	return result
}

func (r *StoreReminderRepository) DeleteByID(
	ctx context.Context,
	input reminder.DeleteInput,
) (rem reminder.Reminder, err error) {
	key := reminder.NormalizeID(input.ID)

	r.lock.Lock()
	rem, ok := r.reminders.Get(key)
	if !ok || rem.GuildID != input.GuildID {
		r.lock.Unlock()
		return reminder.Reminder{}, reminder.ErrReminderDoesNotExist
	}
	if rem.CreatedBy != input.RequesterID && !input.RequesterIsModerator {
		r.lock.Unlock()
		return reminder.Reminder{}, reminder.ErrReminderPermission
	}
	r.reminders.Delete(key)
	r.lock.Unlock()

	if err := r.Flush(ctx); err != nil {
		return rem, err
	}
	return rem, nil
}

// TakeDue does not flush. The caller flushes once it has handled the taken reminders.
func (r *StoreReminderRepository) TakeDue(ctx context.Context, now time.Time) []reminder.Reminder {
	r.lock.Lock()
	defer r.lock.Unlock()

	due := make([]reminder.Reminder, 0)
	for pair := r.reminders.Oldest(); pair != nil; {
		next := pair.Next()
		if pair.Value.IsDue(now) {
			due = append(due, pair.Value)
			r.reminders.Delete(pair.Key)
		}
		pair = next
	}
	return due
}

func (r *StoreReminderRepository) Flush(ctx context.Context) error {
	r.flushLock.Lock()
	defer r.flushLock.Unlock()

	doc := reminder.Document{Reminders: r.snapshot()}
	if err := r.store.Write(ctx, reminder.DOCUMENT_NAME, doc); err != nil {
		logging.Error(ctx, r.log, err, logging.Entry("count", len(doc.Reminders)))
		return err
	}
	return nil
}

func (r *StoreReminderRepository) Count(ctx context.Context) int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.reminders.Len()
}

func (r *StoreReminderRepository) snapshot() []reminder.Reminder {
	r.lock.Lock()
	defer r.lock.Unlock()

	result := make([]reminder.Reminder, 0, r.reminders.Len())
	for pair := r.reminders.Oldest(); pair != nil; pair = pair.Next() {
		result = append(result, pair.Value)
	}
	return result
}
