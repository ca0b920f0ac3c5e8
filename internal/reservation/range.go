package reservation

import (
	"time"

	"github.com/nekogravitycat/court-reservation/internal/booking"
)

// Cell addresses one hour slot on the grid.
type Cell struct {
	Date string `json:"date"` // booking.DateLayout
	Hour int    `json:"hour"`
}

// Range is a selected, not yet paid, half-open hour interval [StartHour, EndHour).
type Range struct {
	StartDate string `json:"start_date"`
	StartHour int    `json:"start_hour"`
	EndDate   string `json:"end_date"`
	EndHour   int    `json:"end_hour"`
}

func singleHour(c Cell) Range {
	return Range{StartDate: c.Date, StartHour: c.Hour, EndDate: c.Date, EndHour: c.Hour + 1}
}

// SingleDay reports whether the range starts and ends on the same date.
func (r Range) SingleDay() bool {
	return r.StartDate == r.EndDate
}

// Hours is the billable length of the range.
func (r Range) Hours() int {
	if r.EndHour <= r.StartHour {
		return 0
	}
	return r.EndHour - r.StartHour
}

func (r Range) Contains(c Cell) bool {
	return r.StartDate == c.Date && r.StartHour <= c.Hour && c.Hour < r.EndHour
}

// Overlaps reports whether two ranges share any hour.
func (r Range) Overlaps(o Range) bool {
	return r.StartDate == o.StartDate && r.StartHour < o.EndHour && o.StartHour < r.EndHour
}

// CellState is the rendering class of a grid cell.
type CellState string

const (
	StateAvailable CellState = "available"
	StatePast      CellState = "past"
	StateBooked    CellState = "booked"
	StateSelected  CellState = "selected"
)

// cellStart returns the instant the slot begins in loc.
func cellStart(date string, hour int, loc *time.Location) (time.Time, bool) {
	day, err := time.ParseInLocation(booking.DateLayout, date, loc)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, loc), true
}

// ParseCell validates a date and hour sent by a client.
func ParseCell(date string, hour int) (Cell, error) {
	if _, err := time.Parse(booking.DateLayout, date); err != nil {
		return Cell{}, ErrInvalidCell
	}
	if hour < FirstHour || hour > LastHour {
		return Cell{}, ErrInvalidCell
	}
	return Cell{Date: date, Hour: hour}, nil
}
