package dbreminder

import (
	"context"
	"errors"
	"fmt"
	"remindbot/internal/core/domain/logging"
	"remindbot/internal/core/domain/reminder"
	"remindbot/internal/core/domain/storage"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const (
	GUILD_ID       = "100"
	OTHER_GUILD_ID = "200"
	CHANNEL_ID     = "300"
	AUTHOR_ID      = "400"
	OTHER_USER_ID  = "500"
)

var Now = time.Date(2024, 10, 16, 12, 0, 0, 0, time.UTC)

type testSuite struct {
	suite.Suite
	store *storage.FakeStore
	ids   *reminder.FakeIDGenerator
	log   *logging.FakeLogger
	now   time.Time
	repo  *StoreReminderRepository
}

func (suite *testSuite) SetupTest() {
	suite.store = storage.NewFakeStore()
	suite.ids = reminder.NewFakeIDGenerator("AAAAAA", "BBBBBB", "CCCCCC", "DDDDDD")
	suite.log = logging.NewFakeLogger()
	suite.now = Now
	suite.repo = NewStoreReminderRepository(suite.store, suite.ids, suite.log, func() time.Time { return suite.now })
}

func TestStoreReminderRepository(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) create(guildID string, title string, d time.Duration) reminder.Reminder {
	s.T().Helper()
	rem, err := s.repo.Create(context.Background(), reminder.CreateInput{
		GuildID:   guildID,
		ChannelID: CHANNEL_ID,
		Title:     title,
		CreatedBy: AUTHOR_ID,
		Duration:  d,
	})
	s.Require().Nil(err)
	return rem
}

func (s *testSuite) persisted() []reminder.Reminder {
	s.T().Helper()
	var doc reminder.Document
	err := s.store.Read(context.Background(), reminder.DOCUMENT_NAME, &doc)
	s.Require().Nil(err)
	return doc.Reminders
}

func (s *testSuite) TestCreate() {
	// Exercise ---
	rem := s.create(GUILD_ID, "  stand-up  ", 90*time.Second)

	// Verify ---
	s.Equal(reminder.Reminder{
		ID:        "AAAAAA",
		GuildID:   GUILD_ID,
		ChannelID: CHANNEL_ID,
		Title:     "stand-up",
		CreatedBy: AUTHOR_ID,
		CreatedAt: Now.UnixMilli(),
		TriggerAt: Now.Add(90 * time.Second).UnixMilli(),
	}, rem)
	s.Greater(rem.TriggerAt, rem.CreatedAt)
	s.Equal([]reminder.Reminder{rem}, s.persisted())
	s.Equal(1, s.store.Writes(reminder.DOCUMENT_NAME))
}

func (s *testSuite) TestCreateInvalidInput() {
	cases := []struct {
		id       string
		title    string
		duration time.Duration
		err      error
	}{
		{id: "empty title", title: "", duration: time.Minute, err: reminder.ErrInvalidTitle},
		{id: "blank title", title: " \t ", duration: time.Minute, err: reminder.ErrInvalidTitle},
		{id: "zero duration", title: "x", duration: 0, err: reminder.ErrInvalidDuration},
		{id: "negative duration", title: "x", duration: -time.Minute, err: reminder.ErrInvalidDuration},
		{id: "sub-millisecond duration", title: "x", duration: time.Microsecond, err: reminder.ErrInvalidDuration},
	}

	for _, testcase := range cases {
		s.Run(testcase.id, func() {
			_, err := s.repo.Create(context.Background(), reminder.CreateInput{
				GuildID:   GUILD_ID,
				ChannelID: CHANNEL_ID,
				Title:     testcase.title,
				CreatedBy: AUTHOR_ID,
				Duration:  testcase.duration,
			})
			s.ErrorIs(err, testcase.err)
			s.Equal(0, s.repo.Count(context.Background()))
			s.Equal(0, s.store.Writes(reminder.DOCUMENT_NAME))
		})
	}
}

func (s *testSuite) TestCreateRetriesOnIDCollision() {
	s.ids = reminder.NewFakeIDGenerator("AAAAAA", "aaaaaa", "AAAAAA", "BBBBBB")
	s.repo = NewStoreReminderRepository(s.store, s.ids, s.log, func() time.Time { return s.now })

	first := s.create(GUILD_ID, "first", time.Minute)
	second := s.create(GUILD_ID, "second", time.Minute)

	s.Equal(reminder.ID("AAAAAA"), first.ID)
	s.Equal(reminder.ID("BBBBBB"), second.ID)
}

func (s *testSuite) TestCreateGivesUpAfterRepeatedCollisions() {
	s.ids = reminder.NewFakeIDGenerator("AAAAAA")
	s.repo = NewStoreReminderRepository(s.store, s.ids, s.log, func() time.Time { return s.now })
	s.create(GUILD_ID, "first", time.Minute)

	_, err := s.repo.Create(context.Background(), reminder.CreateInput{
		GuildID:  GUILD_ID,
		Title:    "second",
		Duration: time.Minute,
	})

	s.ErrorIs(err, reminder.ErrIDGenerationFailed)
	s.Equal(1, s.repo.Count(context.Background()))
}

func (s *testSuite) TestCreateKeepsReminderWhenFlushFails() {
	s.store.WriteError = errors.New("disk full")

	rem, err := s.repo.Create(context.Background(), reminder.CreateInput{
		GuildID:   GUILD_ID,
		ChannelID: CHANNEL_ID,
		Title:     "x",
		CreatedBy: AUTHOR_ID,
		Duration:  time.Minute,
	})

	var storageErr *storage.Error
	s.True(errors.As(err, &storageErr))
	s.Equal(reminder.ID("AAAAAA"), rem.ID)
	s.Equal([]reminder.Reminder{rem}, s.repo.ListByGuild(context.Background(), GUILD_ID))
	s.Len(s.log.Records(logging.ERROR), 1)
}

func (s *testSuite) TestListByGuild() {
	// Setup ---
	first := s.create(GUILD_ID, "first", time.Minute)
	other := s.create(OTHER_GUILD_ID, "other", time.Minute)
	second := s.create(GUILD_ID, "second", time.Second)

	// Exercise ---
	listed := s.repo.ListByGuild(context.Background(), GUILD_ID)
	listedOther := s.repo.ListByGuild(context.Background(), OTHER_GUILD_ID)
	listedEmpty := s.repo.ListByGuild(context.Background(), "unknown")

	// Verify ---
	s.Equal([]reminder.Reminder{first, second}, listed)
	s.Equal([]reminder.Reminder{other}, listedOther)
	s.NotNil(listedEmpty)
	s.Len(listedEmpty, 0)
}

func (s *testSuite) TestListByGuildReturnsSnapshot() {
	s.create(GUILD_ID, "first", time.Minute)
	listed := s.repo.ListByGuild(context.Background(), GUILD_ID)

	s.create(GUILD_ID, "second", time.Minute)

	s.Len(listed, 1)
	s.Len(s.repo.ListByGuild(context.Background(), GUILD_ID), 2)
}

func (s *testSuite) TestDeleteByID() {
	cases := []struct {
		id          string
		guildID     string
		reminderID  reminder.ID
		requesterID string
		moderator   bool
		err         error
	}{
		{id: "owner", guildID: GUILD_ID, reminderID: "AAAAAA", requesterID: AUTHOR_ID},
		{id: "owner lower case id", guildID: GUILD_ID, reminderID: "aaaaaa", requesterID: AUTHOR_ID},
		{id: "moderator", guildID: GUILD_ID, reminderID: "AAAAAA", requesterID: OTHER_USER_ID, moderator: true},
		{id: "stranger", guildID: GUILD_ID, reminderID: "AAAAAA", requesterID: OTHER_USER_ID, err: reminder.ErrReminderPermission},
		{id: "unknown id", guildID: GUILD_ID, reminderID: "ZZZZZZ", requesterID: AUTHOR_ID, err: reminder.ErrReminderDoesNotExist},
		{id: "other guild", guildID: OTHER_GUILD_ID, reminderID: "AAAAAA", requesterID: AUTHOR_ID, moderator: true, err: reminder.ErrReminderDoesNotExist},
	}

	for _, testcase := range cases {
		s.Run(testcase.id, func() {
			// Setup ---
			s.SetupTest()
			created := s.create(GUILD_ID, "to delete", time.Minute)
			writesBefore := s.store.Writes(reminder.DOCUMENT_NAME)

			// Exercise ---
			deleted, err := s.repo.DeleteByID(context.Background(), reminder.DeleteInput{
				GuildID:              testcase.guildID,
				ID:                   testcase.reminderID,
				RequesterID:          testcase.requesterID,
				RequesterIsModerator: testcase.moderator,
			})

			// Verify ---
			if testcase.err != nil {
				s.ErrorIs(err, testcase.err)
				s.Equal(1, s.repo.Count(context.Background()))
				s.Equal(writesBefore, s.store.Writes(reminder.DOCUMENT_NAME))
				return
			}
			s.Nil(err)
			s.Equal(created, deleted)
			s.Equal(0, s.repo.Count(context.Background()))
			s.Len(s.persisted(), 0)
		})
	}
}

func (s *testSuite) TestTakeDueBoundary() {
	cases := []struct {
		id    string
		now   time.Time
		taken int
	}{
		{id: "one millisecond early", now: Now.Add(time.Minute - time.Millisecond), taken: 0},
		{id: "exactly at trigger time", now: Now.Add(time.Minute), taken: 1},
		{id: "one millisecond late", now: Now.Add(time.Minute + time.Millisecond), taken: 1},
	}

	for _, testcase := range cases {
		s.Run(testcase.id, func() {
			s.SetupTest()
			s.create(GUILD_ID, "due", time.Minute)

			taken := s.repo.TakeDue(context.Background(), testcase.now)

			s.Len(taken, testcase.taken)
			s.Equal(1-testcase.taken, s.repo.Count(context.Background()))
		})
	}
}

func (s *testSuite) TestTakeDueKeepsOrderAndPendingReminders() {
	// Setup ---
	early := s.create(GUILD_ID, "early", time.Second)
	late := s.create(GUILD_ID, "late", time.Hour)
	alsoEarly := s.create(OTHER_GUILD_ID, "also early", 2*time.Second)
	writesBefore := s.store.Writes(reminder.DOCUMENT_NAME)

	// Exercise ---
	taken := s.repo.TakeDue(context.Background(), Now.Add(time.Minute))
	takenAgain := s.repo.TakeDue(context.Background(), Now.Add(time.Minute))

	// Verify ---
	s.Equal([]reminder.Reminder{early, alsoEarly}, taken)
	s.Len(takenAgain, 0)
	s.Equal([]reminder.Reminder{late}, s.repo.ListByGuild(context.Background(), GUILD_ID))
	s.Equal(writesBefore, s.store.Writes(reminder.DOCUMENT_NAME))

	s.Require().Nil(s.repo.Flush(context.Background()))
	s.Equal([]reminder.Reminder{late}, s.persisted())
}

func (s *testSuite) TestLoad() {
	// Setup ---
	s.Require().Nil(s.store.Write(context.Background(), reminder.DOCUMENT_NAME, reminder.Document{
		Reminders: []reminder.Reminder{
			{ID: "AAAAAA", GuildID: GUILD_ID, Title: "one", CreatedBy: AUTHOR_ID, CreatedAt: 1, TriggerAt: 2},
			{ID: "aaaaaa", GuildID: GUILD_ID, Title: "duplicate", CreatedBy: AUTHOR_ID, CreatedAt: 1, TriggerAt: 2},
			{ID: "BBBBBB", GuildID: GUILD_ID, Title: "two", CreatedBy: AUTHOR_ID, CreatedAt: 1, TriggerAt: 2},
		},
	}))

	// Exercise ---
	err := s.repo.Load(context.Background())

	// Verify ---
	s.Require().Nil(err)
	listed := s.repo.ListByGuild(context.Background(), GUILD_ID)
	s.Require().Len(listed, 2)
	s.Equal("one", listed[0].Title)
	s.Equal("two", listed[1].Title)
	s.Len(s.log.Records(logging.WARNING), 1)

	// Loaded IDs take part in collision checks.
	created := s.create(GUILD_ID, "new", time.Minute)
	s.Equal(reminder.ID("CCCCCC"), created.ID)
}

func (s *testSuite) TestLoadAbsentDocument() {
	err := s.repo.Load(context.Background())

	s.Nil(err)
	s.Equal(0, s.repo.Count(context.Background()))
}

func (s *testSuite) TestLoadStorageError() {
	s.store.ReadError = &storage.Error{Op: "read", Name: reminder.DOCUMENT_NAME, Err: errors.New("permission denied")}

	err := s.repo.Load(context.Background())

	var storageErr *storage.Error
	s.True(errors.As(err, &storageErr))
}

func (s *testSuite) TestConcurrentMutationsKeepSetConsistent() {
	// Setup ---
	ids := make([]reminder.ID, 0, 200)
	for i := 0; i < 200; i++ {
		ids = append(ids, reminder.ID(fmt.Sprintf("ID%04d", i)))
	}
	s.ids = reminder.NewFakeIDGenerator(ids...)
	s.repo = NewStoreReminderRepository(s.store, s.ids, s.log, func() time.Time { return Now })

	// Exercise ---
	var wg sync.WaitGroup
	var takenLock sync.Mutex
	taken := make(map[reminder.ID]int)
	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_, err := s.repo.Create(context.Background(), reminder.CreateInput{
				GuildID:   GUILD_ID,
				ChannelID: CHANNEL_ID,
				Title:     fmt.Sprintf("r%d", i),
				CreatedBy: AUTHOR_ID,
				Duration:  time.Duration(i%2+1) * time.Second,
			})
			s.Nil(err)
		}(i)
		go func() {
			defer wg.Done()
			for _, rem := range s.repo.TakeDue(context.Background(), Now.Add(time.Second)) {
				takenLock.Lock()
				taken[rem.ID]++
				takenLock.Unlock()
			}
		}()
	}
	wg.Wait()
	for _, rem := range s.repo.TakeDue(context.Background(), Now.Add(time.Second)) {
		taken[rem.ID]++
	}
	s.Require().Nil(s.repo.Flush(context.Background()))

	// Verify ---
	s.Len(taken, 50)
	for id, count := range taken {
		s.Equal(1, count, "reminder %s taken more than once", id)
	}
	remaining := s.repo.ListByGuild(context.Background(), GUILD_ID)
	s.Len(remaining, 50)
	seen := make(map[reminder.ID]struct{})
	for _, rem := range remaining {
		_, duplicate := seen[rem.ID]
		s.False(duplicate)
		seen[rem.ID] = struct{}{}
		_, alsoTaken := taken[rem.ID]
		s.False(alsoTaken)
		s.Greater(rem.TriggerAt, rem.CreatedAt)
	}
	s.Equal(remaining, s.persisted())
}
