package storage

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookingcal/internal/domain"
)

// setupTestDB creates a temporary BadgerDB instance for testing.
func setupTestDB(t *testing.T) *BadgerRepository {
	t.Helper()

	testLogger := logrus.New()
	testLogger.SetOutput(io.Discard)

	repo, err := NewBadgerRepository(t.TempDir(), testLogger)
	require.NoError(t, err, "Failed to create test BadgerDB repository")

	t.Cleanup(func() {
		assert.NoError(t, repo.Close(), "Failed to close test BadgerDB repository")
	})
	return repo
}

func samplePending(userID int64, id string) domain.PendingEvent {
	return domain.PendingEvent{
		ID:     id,
		UserID: userID,
		Event: domain.Event{
			Title:           "헤어살롱 - 김디자이너",
			Start:           time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC),
			DurationMinutes: 60,
			Location:        "서울 강남구",
		},
	}
}

func TestBadgerRepository_PendingLifecycle(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	pending := samplePending(1, "abc")
	require.NoError(t, repo.SavePending(ctx, pending, time.Hour))

	got, err := repo.GetPending(ctx, 1, "abc")
	require.NoError(t, err)
	assert.Equal(t, pending.Event.Title, got.Event.Title)
	assert.True(t, pending.Event.Start.Equal(got.Event.Start))
	assert.False(t, got.CreatedAt.IsZero(), "created_at is filled on save")

	// Pending events are scoped per user.
	_, err = repo.GetPending(ctx, 2, "abc")
	assert.ErrorIs(t, err, domain.ErrPendingNotFound)

	require.NoError(t, repo.DeletePending(ctx, 1, "abc"))
	_, err = repo.GetPending(ctx, 1, "abc")
	assert.ErrorIs(t, err, domain.ErrPendingNotFound)

	assert.NoError(t, repo.DeletePending(ctx, 1, "abc"), "deleting twice is not an error")
}

func TestBadgerRepository_PendingExpires(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	// Badger TTLs have one second granularity.
	require.NoError(t, repo.SavePending(ctx, samplePending(1, "short"), time.Second))
	require.NoError(t, repo.SavePending(ctx, samplePending(1, "forever"), 0))

	time.Sleep(2100 * time.Millisecond)

	_, err := repo.GetPending(ctx, 1, "short")
	assert.ErrorIs(t, err, domain.ErrPendingNotFound)
	_, err = repo.GetPending(ctx, 1, "forever")
	assert.NoError(t, err)
}

func TestBadgerRepository_SaveAndGetEvents(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	older := domain.SavedEvent{ID: "1", UserID: 10, Event: domain.Event{Title: "older"}, CalendarURL: "https://a", Timestamp: time.Now().Add(-time.Hour)}
	newer := domain.SavedEvent{ID: "2", UserID: 10, Event: domain.Event{Title: "newer"}, CalendarURL: "https://b", Timestamp: time.Now()}
	other := domain.SavedEvent{ID: "3", UserID: 20, Event: domain.Event{Title: "other"}}

	require.NoError(t, repo.SaveEvent(ctx, older))
	require.NoError(t, repo.SaveEvent(ctx, newer))
	require.NoError(t, repo.SaveEvent(ctx, other))

	events, err := repo.GetEventsByUser(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "newer", events[0].Event.Title)
	assert.Equal(t, "older", events[1].Event.Title)
	assert.Equal(t, "https://a", events[1].CalendarURL)

	events, err = repo.GetEventsByUser(ctx, 20)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.False(t, events[0].Timestamp.IsZero())

	events, err = repo.GetEventsByUser(ctx, 999)
	require.NoError(t, err)
	assert.Empty(t, events)

	// Pending events never show up in history.
	require.NoError(t, repo.SavePending(ctx, samplePending(10, "p"), time.Hour))
	events, err = repo.GetEventsByUser(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, events, 2)
}
