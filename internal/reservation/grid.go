package reservation

import (
	"time"

	"github.com/nekogravitycat/court-reservation/internal/booking"
)

// The grid shows one week of hourly slots from 06:00 through the 22:00 slot.
const (
	FirstHour = 6
	LastHour  = 22
	SlotCount = LastHour - FirstHour + 1
	WeekLen   = 7
)

// WeekDays returns midnight of each day of the Monday-first week containing ref,
// in ref's location.
func WeekDays(ref time.Time) []time.Time {
	loc := ref.Location()
	offset := (int(ref.Weekday()) + 6) % 7
	monday := time.Date(ref.Year(), ref.Month(), ref.Day()-offset, 0, 0, 0, 0, loc)

	days := make([]time.Time, WeekLen)
	for i := range days {
		days[i] = time.Date(monday.Year(), monday.Month(), monday.Day()+i, 0, 0, 0, 0, loc)
	}
	return days
}

// Grid classifies the cells of one court's week. It holds no state beyond its
// inputs and is rebuilt for every read.
type Grid struct {
	courtID  string
	days     []string
	now      time.Time
	bookings []booking.Booking
	selected []Range
}

func NewGrid(courtID string, ref time.Time, bookings []booking.Booking, now time.Time, selected []Range) *Grid {
	week := WeekDays(ref)
	days := make([]string, len(week))
	for i, d := range week {
		days[i] = d.Format(booking.DateLayout)
	}

	var own []booking.Booking
	for _, b := range bookings {
		if b.CourtID == courtID {
			own = append(own, b)
		}
	}

	return &Grid{
		courtID:  courtID,
		days:     days,
		now:      now,
		bookings: own,
		selected: selected,
	}
}

func (g *Grid) CourtID() string {
	return g.courtID
}

// Days returns the visible dates, Monday first.
func (g *Grid) Days() []string {
	out := make([]string, len(g.days))
	copy(out, g.days)
	return out
}

// Hours returns the visible slot start hours.
func (g *Grid) Hours() []int {
	out := make([]int, 0, SlotCount)
	for h := FirstHour; h <= LastHour; h++ {
		out = append(out, h)
	}
	return out
}

// Visible reports whether the cell lies inside this week's hour window.
func (g *Grid) Visible(c Cell) bool {
	if c.Hour < FirstHour || c.Hour > LastHour {
		return false
	}
	for _, d := range g.days {
		if d == c.Date {
			return true
		}
	}
	return false
}

// Classify returns the state of one cell. Past wins over booked, booked over selected.
func (g *Grid) Classify(date string, hour int) CellState {
	if isPast(date, hour, g.now) {
		return StatePast
	}
	for _, b := range g.bookings {
		if b.Covers(date, hour) {
			return StateBooked
		}
	}
	c := Cell{Date: date, Hour: hour}
	for _, r := range g.selected {
		if r.Contains(c) {
			return StateSelected
		}
	}
	return StateAvailable
}

// Row is one hour line of the rendered grid, one state per visible day.
type Row struct {
	Hour   int         `json:"hour"`
	States []CellState `json:"states"`
}

// Rows returns the full cell matrix, hour-major.
func (g *Grid) Rows() []Row {
	rows := make([]Row, 0, SlotCount)
	for _, h := range g.Hours() {
		row := Row{Hour: h, States: make([]CellState, len(g.days))}
		for i, d := range g.days {
			row.States[i] = g.Classify(d, h)
		}
		rows = append(rows, row)
	}
	return rows
}

// isPast reports whether the slot starts strictly before now. Unparseable
// dates count as past so they can never be selected.
func isPast(date string, hour int, now time.Time) bool {
	start, ok := cellStart(date, hour, now.Location())
	if !ok {
		return true
	}
	return start.Before(now)
}
