package reservation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func day(date string, start, end int) Range {
	return Range{StartDate: date, StartHour: start, EndDate: date, EndHour: end}
}

func TestCheckRange(t *testing.T) {
	existing := testBookings()

	tests := []struct {
		name string
		r    Range
		want Reason
	}{
		{name: "Free", r: day("2026-03-04", 12, 14)},
		{name: "Ends where booking starts", r: day("2026-03-05", 13, 15)},
		{name: "Starts where booking ends", r: day("2026-03-04", 12, 13)},
		{name: "Covers booked hour", r: day("2026-03-04", 11, 13), want: ReasonBooked},
		{name: "Spans whole booking", r: day("2026-03-05", 14, 17), want: ReasonBooked},
		{name: "Other court booking ignored", r: day("2026-03-04", 14, 15)},
		{name: "Starts before now", r: day("2026-03-04", 9, 10), want: ReasonPast},
		{name: "Yesterday", r: day("2026-03-03", 18, 19), want: ReasonPast},
		{name: "Cross day", r: Range{StartDate: "2026-03-06", StartHour: 20, EndDate: "2026-03-07", EndHour: 8}, want: ReasonMalformed},
		{name: "Empty", r: day("2026-03-06", 12, 12), want: ReasonMalformed},
		{name: "Before opening", r: day("2026-03-06", 5, 7), want: ReasonMalformed},
		{name: "After closing", r: day("2026-03-06", 22, 24), want: ReasonMalformed},
		{name: "Last slot", r: day("2026-03-06", 22, 23)},
		{name: "Bad date", r: day("06/03/2026", 12, 13), want: ReasonMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CheckRange("1", tt.r, existing, testNow))
			assert.Equal(t, tt.want == "", IsRangeValid("1", tt.r, existing, testNow))
		})
	}
}

func TestIsRangeValidRejectsEveryBookedHour(t *testing.T) {
	existing := testBookings()
	for start := FirstHour; start <= LastHour; start++ {
		for end := start + 1; end <= LastHour+1; end++ {
			r := day("2026-03-05", start, end)
			coversBooked := start <= 15 && 15 < end
			if coversBooked {
				assert.False(t, IsRangeValid("1", r, existing, testNow), "[%d,%d)", start, end)
			} else {
				assert.True(t, IsRangeValid("1", r, existing, testNow), "[%d,%d)", start, end)
			}
		}
	}
}

func TestTotalPrice(t *testing.T) {
	assert.EqualValues(t, 30000, TotalPrice([]Range{day("2026-03-06", 10, 12)}, 15000))
	assert.EqualValues(t, 45000, TotalPrice([]Range{day("2026-03-06", 10, 12), day("2026-03-06", 14, 15)}, 15000))
	assert.EqualValues(t, 0, TotalPrice(nil, 15000))
	assert.EqualValues(t, 0, TotalPrice([]Range{day("2026-03-06", 12, 10)}, 15000), "inverted ranges bill nothing")
}
