package reservation

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/court-reservation/internal/pkg/clock"
)

func sampleSelection() *Selection {
	anchor := Cell{Date: "2026-03-06", Hour: 14}
	current := day("2026-03-06", 14, 16)
	return &Selection{
		Anchor:  &anchor,
		Current: &current,
		Ranges:  []Range{day("2026-03-05", 10, 12)},
	}
}

func testSessionStore(t *testing.T, store SessionStore) {
	ctx := context.Background()
	key := SessionKey{UserID: "user-1", CourtID: "1"}

	t.Run("Missing session is empty", func(t *testing.T) {
		sel, err := store.Load(ctx, SessionKey{UserID: "nobody", CourtID: "1"})
		require.NoError(t, err)
		require.NotNil(t, sel)
		assert.False(t, sel.Dragging())
		assert.Empty(t, sel.Ranges)
	})

	t.Run("Save and load", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, key, sampleSelection()))

		got, err := store.Load(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, sampleSelection(), got)

		other, err := store.Load(ctx, SessionKey{UserID: "user-1", CourtID: "2"})
		require.NoError(t, err)
		assert.Empty(t, other.Ranges, "sessions are per court")
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, key))
		got, err := store.Load(ctx, key)
		require.NoError(t, err)
		assert.Empty(t, got.Ranges)
	})

	t.Run("Busy flag", func(t *testing.T) {
		busy, err := store.Busy(ctx, key)
		require.NoError(t, err)
		assert.False(t, busy)

		ok, err := store.Acquire(ctx, key)
		require.NoError(t, err)
		assert.True(t, ok)

		busy, err = store.Busy(ctx, key)
		require.NoError(t, err)
		assert.True(t, busy)

		ok, err = store.Acquire(ctx, key)
		require.NoError(t, err)
		assert.False(t, ok, "second checkout must wait")

		ok, err = store.Acquire(ctx, SessionKey{UserID: "user-2", CourtID: "1"})
		require.NoError(t, err)
		assert.True(t, ok, "other users are independent")

		require.NoError(t, store.Release(ctx, key))
		busy, err = store.Busy(ctx, key)
		require.NoError(t, err)
		assert.False(t, busy)

		ok, err = store.Acquire(ctx, key)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestMemorySessionStore(t *testing.T) {
	testSessionStore(t, NewMemorySessionStore(time.Hour, clock.NewMockClock(testNow)))

	t.Run("Expiry", func(t *testing.T) {
		ctx := context.Background()
		clk := clock.NewMockClock(testNow)
		store := NewMemorySessionStore(time.Minute, clk)
		key := SessionKey{UserID: "u", CourtID: "1"}

		require.NoError(t, store.Save(ctx, key, sampleSelection()))
		ok, err := store.Acquire(ctx, key)
		require.NoError(t, err)
		require.True(t, ok)

		clk.Add(2 * time.Minute)

		got, err := store.Load(ctx, key)
		require.NoError(t, err)
		assert.Empty(t, got.Ranges)

		ok, err = store.Acquire(ctx, key)
		require.NoError(t, err)
		assert.True(t, ok, "a stale busy flag expires")
	})

	t.Run("Stored selection is isolated", func(t *testing.T) {
		ctx := context.Background()
		store := NewMemorySessionStore(time.Hour, clock.NewMockClock(testNow))
		key := SessionKey{UserID: "u", CourtID: "1"}
		sel := sampleSelection()
		require.NoError(t, store.Save(ctx, key, sel))

		sel.Ranges[0].StartHour = 6
		sel.Current.EndHour = 22

		got, err := store.Load(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, sampleSelection(), got)
	})
}

func TestRedisSessionStore(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	client := redis.NewClient(&redis.Options{
		Addr: s.Addr(),
	})
	defer client.Close()

	testSessionStore(t, NewRedisSessionStore(client, time.Hour))

	t.Run("Expiry", func(t *testing.T) {
		ctx := context.Background()
		store := NewRedisSessionStore(client, time.Minute)
		key := SessionKey{UserID: "u", CourtID: "1"}

		require.NoError(t, store.Save(ctx, key, sampleSelection()))
		ok, err := store.Acquire(ctx, key)
		require.NoError(t, err)
		require.True(t, ok)

		s.FastForward(2 * time.Minute)

		got, err := store.Load(ctx, key)
		require.NoError(t, err)
		assert.Empty(t, got.Ranges)

		ok, err = store.Acquire(ctx, key)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Keys", func(t *testing.T) {
		ctx := context.Background()
		store := NewRedisSessionStore(client, time.Hour)
		require.NoError(t, store.Save(ctx, SessionKey{UserID: "kim", CourtID: "3"}, sampleSelection()))
		assert.True(t, s.Exists("court_reservation:selection:kim:3"))
	})

	t.Run("Unreachable", func(t *testing.T) {
		dead := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
		defer dead.Close()

		_, err := NewRedisSessionStore(dead, time.Hour).Load(context.Background(), SessionKey{UserID: "u", CourtID: "1"})
		assert.Error(t, err)
	})
}
