package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecord(id, courtID, date string, start, end int) *MyBooking {
	return &MyBooking{
		Booking: Booking{ID: id, CourtID: courtID, Date: date, StartHour: start, EndHour: end, UserName: "tester"},
		UserID:  "user-1",
		Price:   int64(end-start) * 15000,
		Status:  StatusConfirmed,
	}
}

func TestBookingIntervals(t *testing.T) {
	b := Booking{Date: "2026-03-02", StartHour: 10, EndHour: 12}

	assert.True(t, b.Covers("2026-03-02", 10))
	assert.True(t, b.Covers("2026-03-02", 11))
	assert.False(t, b.Covers("2026-03-02", 12), "end hour is exclusive")
	assert.False(t, b.Covers("2026-03-03", 10))

	assert.True(t, b.Overlaps("2026-03-02", 11, 13))
	assert.True(t, b.Overlaps("2026-03-02", 9, 11))
	assert.False(t, b.Overlaps("2026-03-02", 12, 14), "adjacent intervals do not overlap")
	assert.False(t, b.Overlaps("2026-03-02", 8, 10))
}

func TestMemoryStoreAppend(t *testing.T) {
	ctx := context.Background()

	t.Run("Appends batch and lists by court", func(t *testing.T) {
		s := NewMemoryStore()
		require.NoError(t, s.Append(ctx, []*MyBooking{
			newRecord("a", "1", "2026-03-02", 14, 15),
			newRecord("b", "1", "2026-03-02", 10, 12),
			newRecord("c", "2", "2026-03-02", 10, 12),
		}))

		got, err := s.ListForCourt(ctx, "1", "", "")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "b", got[0].ID, "sorted by start hour")
		assert.Equal(t, "a", got[1].ID)
	})

	t.Run("Conflict with stored booking inserts nothing", func(t *testing.T) {
		s := NewMemoryStore(newRecord("a", "1", "2026-03-02", 10, 12))

		err := s.Append(ctx, []*MyBooking{
			newRecord("b", "1", "2026-03-02", 14, 15),
			newRecord("c", "1", "2026-03-02", 11, 13),
		})
		assert.ErrorIs(t, err, ErrTimeConflict)

		_, total, err := s.List(ctx, Filter{})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
	})

	t.Run("Conflict inside batch", func(t *testing.T) {
		s := NewMemoryStore()
		err := s.Append(ctx, []*MyBooking{
			newRecord("a", "1", "2026-03-02", 10, 12),
			newRecord("b", "1", "2026-03-02", 11, 12),
		})
		assert.ErrorIs(t, err, ErrTimeConflict)
	})

	t.Run("Cancelled bookings free their slot", func(t *testing.T) {
		cancelled := newRecord("a", "1", "2026-03-02", 10, 12)
		cancelled.Status = StatusCancelled
		s := NewMemoryStore(cancelled)

		got, err := s.ListForCourt(ctx, "1", "", "")
		require.NoError(t, err)
		assert.Empty(t, got)

		require.NoError(t, s.Append(ctx, []*MyBooking{newRecord("b", "1", "2026-03-02", 10, 11)}))

		err = s.UpdateStatus(ctx, "a", StatusConfirmed)
		assert.ErrorIs(t, err, ErrTimeConflict, "reviving must not double-book")
	})

	t.Run("Rejects malformed dates", func(t *testing.T) {
		s := NewMemoryStore()
		err := s.Append(ctx, []*MyBooking{newRecord("a", "1", "03/02/2026", 10, 11)})
		assert.ErrorIs(t, err, ErrInvalidDate)

		_, err = s.ListForCourt(ctx, "1", "yesterday", "")
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("Stored records are isolated from callers", func(t *testing.T) {
		s := NewMemoryStore()
		rec := newRecord("a", "1", "2026-03-02", 10, 12)
		require.NoError(t, s.Append(ctx, []*MyBooking{rec}))
		rec.StartHour = 6

		got, err := s.GetByID(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, 10, got.StartHour)
	})
}

func TestMemoryStoreListForCourtRange(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(
		newRecord("a", "1", "2026-03-01", 10, 11),
		newRecord("b", "1", "2026-03-02", 10, 11),
		newRecord("c", "1", "2026-03-09", 10, 11),
	)

	got, err := s.ListForCourt(ctx, "1", "2026-03-02", "2026-03-08")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)
}

func TestMemoryStoreListFilter(t *testing.T) {
	ctx := context.Background()
	pending := newRecord("p", "2", "2026-03-03", 9, 10)
	pending.Status = StatusPending
	other := newRecord("o", "1", "2026-03-04", 9, 10)
	other.UserID = "user-2"

	s := NewMemoryStore(
		newRecord("a", "1", "2026-03-02", 10, 11),
		newRecord("b", "1", "2026-03-02", 14, 15),
		pending,
		other,
	)

	items, total, err := s.List(ctx, Filter{UserID: "user-1"})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, items, 3)
	assert.Equal(t, []string{"p", "b", "a"}, []string{items[0].ID, items[1].ID, items[2].ID})

	items, total, err = s.List(ctx, Filter{Status: "pending"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "p", items[0].ID)

	items, _, err = s.List(ctx, Filter{Status: "all", CourtID: "1", Date: "2026-03-04"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "o", items[0].ID)

	items, total, err = s.List(ctx, Filter{Page: 2, PageSize: 3})
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	require.Len(t, items, 1)
}

func TestMemoryStoreListStableAcrossPages(t *testing.T) {
	ctx := context.Background()
	// Same date and hour on different courts tie on the date and hour sort keys.
	s := NewMemoryStore(
		newRecord("c", "3", "2026-03-02", 10, 11),
		newRecord("a", "1", "2026-03-02", 10, 11),
		newRecord("b", "2", "2026-03-02", 10, 11),
	)

	var ids []string
	for page := 1; page <= 3; page++ {
		items, total, err := s.List(ctx, Filter{Page: page, PageSize: 1})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		require.Len(t, items, 1)
		ids = append(ids, items[0].ID)
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids)
}

func TestSeedBookings(t *testing.T) {
	now := time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC)
	ctx := context.Background()
	s := NewMemoryStore(SeedBookings(now)...)

	court1, err := s.ListForCourt(ctx, "1", "2026-03-04", "2026-03-04")
	require.NoError(t, err)
	assert.Len(t, court1, 2)

	court2, err := s.ListForCourt(ctx, "2", "2026-03-05", "2026-03-05")
	require.NoError(t, err)
	require.Len(t, court2, 1)
	assert.Equal(t, 18, court2[0].StartHour)
}
