package booking

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/court-reservation/internal/pkg/apperror"
)

// DateLayout is the ISO day format used for booking dates.
const DateLayout = "2006-01-02"

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "booking not found")
	ErrTimeConflict     = apperror.New(http.StatusConflict, "time slot already booked")
	ErrInvalidStatus    = apperror.New(http.StatusBadRequest, "invalid booking status")
	ErrInvalidDate      = apperror.New(http.StatusBadRequest, "date must be formatted as YYYY-MM-DD")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "permission denied")
	ErrAlreadyCancelled = apperror.New(http.StatusConflict, "booking already cancelled")
	ErrBookingStarted   = apperror.New(http.StatusConflict, "booking has already started")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// ParseStatus validates a status string.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return st, nil
	}
	return "", ErrInvalidStatus
}

// Booking is a committed reservation of the half-open hour interval
// [StartHour, EndHour) on Date.
type Booking struct {
	ID        string
	CourtID   string
	Date      string // DateLayout
	StartHour int
	EndHour   int
	UserName  string
}

// Covers reports whether the booking holds the given hour on date.
func (b Booking) Covers(date string, hour int) bool {
	return b.Date == date && b.StartHour <= hour && hour < b.EndHour
}

// Overlaps reports whether [start,end) on date intersects the booking.
func (b Booking) Overlaps(date string, start, end int) bool {
	return b.Date == date && start < b.EndHour && end > b.StartHour
}

// MyBooking is the user-facing booking record. Court fields are copied at
// commit time and never follow later catalog edits.
type MyBooking struct {
	Booking
	UserID        string
	CourtName     string
	CourtLocation string
	CourtImageURL string
	Price         int64
	Status        Status
	PaymentMethod string
	PaymentID     string
	CreatedAt     time.Time
}

// StartsAt returns the instant the booking begins in loc.
func (m *MyBooking) StartsAt(loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation(DateLayout, m.Date, loc)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return time.Date(day.Year(), day.Month(), day.Day(), m.StartHour, 0, 0, 0, loc), nil
}

// Filter defines parameters for listing bookings.
type Filter struct {
	UserID   string
	CourtID  string
	Date     string
	Status   string // empty or "all" matches every status
	Page     int
	PageSize int
}

func (f Filter) matches(m *MyBooking) bool {
	if f.UserID != "" && m.UserID != f.UserID {
		return false
	}
	if f.CourtID != "" && m.CourtID != f.CourtID {
		return false
	}
	if f.Date != "" && m.Date != f.Date {
		return false
	}
	if f.Status != "" && f.Status != "all" && string(m.Status) != f.Status {
		return false
	}
	return true
}

// MonthlySummary aggregates booking revenue for one calendar month.
type MonthlySummary struct {
	Month     string // YYYY-MM
	Bookings  int
	Total     int64
	Confirmed int64
	Pending   int64
}
