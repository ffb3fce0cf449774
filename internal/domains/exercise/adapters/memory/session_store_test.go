package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/purchase-order-exercise/internal/domains/exercise/domain"
	"github.com/Apurer/purchase-order-exercise/internal/domains/exercise/ports"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func TestSessionStore_SaveAndGetReturnCopies(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 3, 4, 9, 0, 0, 0, time.UTC)}
	store := NewSessionStore(time.Hour).WithClock(clock.Now)
	ctx := context.Background()

	exercise := domain.NewExercise("ex-1", clock.now)
	require.NoError(t, store.Save(ctx, exercise))

	exercise.Step = domain.StepReview
	loaded, err := store.Get(ctx, "ex-1")
	require.NoError(t, err)
	require.Equal(t, domain.StepIntro, loaded.Step)

	loaded.Step = domain.StepComparison
	again, err := store.Get(ctx, "ex-1")
	require.NoError(t, err)
	require.Equal(t, domain.StepIntro, again.Step)
}

func TestSessionStore_Expiry(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 3, 4, 9, 0, 0, 0, time.UTC)}
	store := NewSessionStore(time.Hour).WithClock(clock.Now)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.NewExercise("old", clock.now)))
	clock.now = clock.now.Add(30 * time.Minute)
	require.NoError(t, store.Save(ctx, domain.NewExercise("fresh", clock.now)))

	clock.now = clock.now.Add(45 * time.Minute)
	_, err := store.Get(ctx, "old")
	require.ErrorIs(t, err, ports.ErrNotFound)
	_, err = store.Get(ctx, "fresh")
	require.NoError(t, err)

	purged, err := store.PurgeExpired(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, purged)
	require.Equal(t, 1, store.Len())
}

func TestSessionStore_Delete(t *testing.T) {
	store := NewSessionStore(0)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.NewExercise("ex-1", time.Now())))
	require.NoError(t, store.Delete(ctx, "ex-1"))
	require.NoError(t, store.Delete(ctx, "ex-1"))

	_, err := store.Get(ctx, "ex-1")
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestSessionStore_RejectsMissingID(t *testing.T) {
	store := NewSessionStore(time.Hour)
	require.Error(t, store.Save(context.Background(), &domain.Exercise{}))
	require.Error(t, store.Save(context.Background(), nil))
}
