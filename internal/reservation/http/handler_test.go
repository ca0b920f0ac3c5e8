package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/court-reservation/internal/auth"
	"github.com/nekogravitycat/court-reservation/internal/booking"
	"github.com/nekogravitycat/court-reservation/internal/court"
	"github.com/nekogravitycat/court-reservation/internal/payment"
	"github.com/nekogravitycat/court-reservation/internal/pkg/clock"
	"github.com/nekogravitycat/court-reservation/internal/reservation"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	kst := time.FixedZone("KST", 9*60*60)
	clk := clock.NewMockClock(time.Date(2026, 3, 4, 9, 30, 0, 0, kst))
	store := booking.NewMemoryStore(booking.SeedBookings(clk.Now())...)
	courts := court.NewService(court.NewMemoryRepository(court.SeedCourts()))
	committer := reservation.NewCommitter(courts, store, payment.NewMockGateway(0, clk), clk, zerolog.Nop())
	svc := reservation.NewService(courts, store, reservation.NewMemorySessionStore(time.Hour, clk), committer, clk, zerolog.Nop())

	fakeAuth := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing Authorization header"})
			return
		}
		auth.SetIdentity(c, auth.Identity{UserID: "user-1", Name: "Kim Cheolsu", Type: auth.TypeUser})
		c.Next()
	}

	r := gin.New()
	RegisterRoutes(r.Group("/v1"), NewHandler(svc), fakeAuth)
	return r
}

func call(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer test")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func hour(h int) *int { return &h }

func TestReservationRoutes(t *testing.T) {
	r := newTestRouter(t)

	t.Run("Unauthenticated", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/v1/courts/1/grid", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Grid", func(t *testing.T) {
		w := call(r, http.MethodGet, "/v1/courts/1/grid", nil)
		require.Equal(t, http.StatusOK, w.Code)

		grid := decode[GridResponse](t, w)
		assert.Equal(t, "2026-03-02", grid.Days[0])
		require.Len(t, grid.Rows, reservation.SlotCount)
		assert.Equal(t, reservation.StateBooked, grid.Rows[10-reservation.FirstHour].States[2])
		assert.Equal(t, reservation.StatePast, grid.Rows[0].States[2])
		assert.NotNil(t, grid.Quote.Ranges)
	})

	t.Run("Grid unknown court", func(t *testing.T) {
		w := call(r, http.MethodGet, "/v1/courts/42/grid", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Drag start on booked cell is ignored", func(t *testing.T) {
		w := call(r, http.MethodPost, "/v1/courts/1/selection/drag-start", CellRequest{Date: "2026-03-04", Hour: hour(10)})
		require.Equal(t, http.StatusOK, w.Code)
		assert.False(t, decode[SelectionResponse](t, w).Accepted)
	})

	t.Run("Drag start rejects bad cell", func(t *testing.T) {
		w := call(r, http.MethodPost, "/v1/courts/1/selection/drag-start", CellRequest{Date: "2026-03-04", Hour: hour(3)})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = call(r, http.MethodPost, "/v1/courts/1/selection/drag-start", gin.H{"date": "2026-03-04"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Drag end without drag", func(t *testing.T) {
		w := call(r, http.MethodPost, "/v1/courts/1/selection/drag-end", nil)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Drag flow and checkout", func(t *testing.T) {
		w := call(r, http.MethodPost, "/v1/courts/1/selection/drag-start", CellRequest{Date: "2026-03-06", Hour: hour(14)})
		require.Equal(t, http.StatusOK, w.Code)
		started := decode[SelectionResponse](t, w)
		assert.True(t, started.Accepted)
		assert.True(t, started.Dragging)

		w = call(r, http.MethodPost, "/v1/courts/1/selection/drag-over", CellRequest{Date: "2026-03-06", Hour: hour(12)})
		require.Equal(t, http.StatusOK, w.Code)
		over := decode[SelectionResponse](t, w)
		require.NotNil(t, over.Current)
		assert.Equal(t, RangeResponse{Date: "2026-03-06", StartHour: 12, EndHour: 15, Hours: 3}, *over.Current)

		w = call(r, http.MethodPost, "/v1/courts/1/selection/drag-end", nil)
		require.Equal(t, http.StatusOK, w.Code)
		end := decode[SelectionResponse](t, w)
		require.NotNil(t, end.Outcome)
		assert.True(t, end.Outcome.Committed)
		assert.EqualValues(t, 45000, end.Quote.Total)

		w = call(r, http.MethodGet, "/v1/courts/1/selection", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode[QuoteResponse](t, w).Ranges, 1)

		w = call(r, http.MethodPost, "/v1/courts/1/checkout", CheckoutRequest{PaymentMethod: "card"})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		res := decode[CheckoutResponse](t, w)
		require.Len(t, res.Bookings, 1)
		assert.EqualValues(t, 45000, res.Total)
		assert.Equal(t, "confirmed", res.Bookings[0].Status)
		assert.Equal(t, "Gangnam Badminton Center", res.Bookings[0].Court.Name)

		w = call(r, http.MethodGet, "/v1/courts/1/grid?date=2026-03-06", nil)
		require.Equal(t, http.StatusOK, w.Code)
		grid := decode[GridResponse](t, w)
		assert.Equal(t, reservation.StateBooked, grid.Rows[13-reservation.FirstHour].States[4])
	})

	t.Run("Rejected drag reports reason", func(t *testing.T) {
		call(r, http.MethodPost, "/v1/courts/1/selection/drag-start", CellRequest{Date: "2026-03-06", Hour: hour(10)})
		call(r, http.MethodPost, "/v1/courts/1/selection/drag-over", CellRequest{Date: "2026-03-06", Hour: hour(13)})
		w := call(r, http.MethodPost, "/v1/courts/1/selection/drag-end", nil)
		require.Equal(t, http.StatusOK, w.Code)

		end := decode[SelectionResponse](t, w)
		require.NotNil(t, end.Outcome)
		assert.False(t, end.Outcome.Committed)
		assert.Equal(t, "booked", end.Outcome.Reason)
	})

	t.Run("Remove range and clear", func(t *testing.T) {
		call(r, http.MethodPost, "/v1/courts/2/selection/drag-start", CellRequest{Date: "2026-03-06", Hour: hour(8)})
		call(r, http.MethodPost, "/v1/courts/2/selection/drag-end", nil)
		call(r, http.MethodPost, "/v1/courts/2/selection/drag-start", CellRequest{Date: "2026-03-07", Hour: hour(8)})
		call(r, http.MethodPost, "/v1/courts/2/selection/drag-end", nil)

		w := call(r, http.MethodDelete, "/v1/courts/2/selection/ranges/0", nil)
		require.Equal(t, http.StatusOK, w.Code)
		q := decode[SelectionResponse](t, w).Quote
		require.Len(t, q.Ranges, 1)
		assert.Equal(t, "2026-03-07", q.Ranges[0].Date)
		assert.EqualValues(t, 18000, q.Total)

		w = call(r, http.MethodDelete, "/v1/courts/2/selection/ranges/abc", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = call(r, http.MethodDelete, "/v1/courts/2/selection", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, decode[SelectionResponse](t, w).Quote.Ranges)
	})

	t.Run("Checkout with nothing selected", func(t *testing.T) {
		w := call(r, http.MethodPost, "/v1/courts/3/checkout", CheckoutRequest{PaymentMethod: "card"})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = call(r, http.MethodPost, "/v1/courts/3/checkout", gin.H{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
