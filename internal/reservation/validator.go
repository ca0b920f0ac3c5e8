package reservation

import (
	"time"

	"github.com/nekogravitycat/court-reservation/internal/booking"
)

// Reason explains why a candidate range was rejected.
type Reason string

const (
	ReasonMalformed Reason = "malformed"
	ReasonPast      Reason = "past"
	ReasonBooked    Reason = "booked"
	ReasonOverlap   Reason = "overlap"
)

// CheckRange returns the first rule the range breaks, or "" when every hour
// in it is free and not in the past.
func CheckRange(courtID string, r Range, existing []booking.Booking, now time.Time) Reason {
	if !r.SingleDay() || r.EndHour <= r.StartHour {
		return ReasonMalformed
	}
	if r.StartHour < FirstHour || r.EndHour > LastHour+1 {
		return ReasonMalformed
	}
	if _, ok := cellStart(r.StartDate, r.StartHour, now.Location()); !ok {
		return ReasonMalformed
	}

	for h := r.StartHour; h < r.EndHour; h++ {
		if isPast(r.StartDate, h, now) {
			return ReasonPast
		}
		for _, b := range existing {
			if b.CourtID == courtID && b.Covers(r.StartDate, h) {
				return ReasonBooked
			}
		}
	}
	return ""
}

// IsRangeValid reports whether the range can be booked on courtID.
func IsRangeValid(courtID string, r Range, existing []booking.Booking, now time.Time) bool {
	return CheckRange(courtID, r, existing, now) == ""
}
