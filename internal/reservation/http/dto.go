package http

import (
	bookingHttp "github.com/nekogravitycat/court-reservation/internal/booking/http"
	"github.com/nekogravitycat/court-reservation/internal/reservation"
)

// CellRequest addresses the cell under the pointer.
type CellRequest struct {
	Date string `json:"date" binding:"required"`
	Hour *int   `json:"hour" binding:"required"`
}

type CheckoutRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
}

type RangeResponse struct {
	Date      string `json:"date"`
	StartHour int    `json:"start_hour"`
	EndHour   int    `json:"end_hour"`
	Hours     int    `json:"hours"`
}

func newRangeResponse(r reservation.Range) RangeResponse {
	return RangeResponse{Date: r.StartDate, StartHour: r.StartHour, EndHour: r.EndHour, Hours: r.Hours()}
}

func newRangeResponses(rs []reservation.Range) []RangeResponse {
	out := make([]RangeResponse, len(rs))
	for i, r := range rs {
		out[i] = newRangeResponse(r)
	}
	return out
}

type QuoteResponse struct {
	Ranges     []RangeResponse `json:"ranges"`
	Hours      int             `json:"hours"`
	HourlyRate int64           `json:"hourly_rate"`
	Total      int64           `json:"total"`
}

func NewQuoteResponse(q reservation.Quote) QuoteResponse {
	return QuoteResponse{
		Ranges:     newRangeResponses(q.Ranges),
		Hours:      q.Hours,
		HourlyRate: q.HourlyRate,
		Total:      q.Total,
	}
}

type GridResponse struct {
	CourtID string            `json:"court_id"`
	Days    []string          `json:"days"`
	Hours   []int             `json:"hours"`
	Rows    []reservation.Row `json:"rows"`
	Quote   QuoteResponse     `json:"quote"`
}

func NewGridResponse(g *reservation.GridView) GridResponse {
	return GridResponse{
		CourtID: g.CourtID,
		Days:    g.Days,
		Hours:   g.Hours,
		Rows:    g.Rows,
		Quote:   NewQuoteResponse(g.Quote),
	}
}

// OutcomeResponse reports what drag end did with the dragged range.
type OutcomeResponse struct {
	Range     RangeResponse `json:"range"`
	Committed bool          `json:"committed"`
	Reason    string        `json:"reason,omitempty"`
}

type SelectionResponse struct {
	Accepted bool             `json:"accepted"`
	Dragging bool             `json:"dragging"`
	Current  *RangeResponse   `json:"current,omitempty"`
	Outcome  *OutcomeResponse `json:"outcome,omitempty"`
	Quote    QuoteResponse    `json:"quote"`
}

func NewSelectionResponse(s *reservation.SelectionState) SelectionResponse {
	resp := SelectionResponse{
		Accepted: s.Accepted,
		Dragging: s.Selection.Dragging(),
		Quote:    NewQuoteResponse(s.Quote),
	}
	if s.Selection.Current != nil {
		cur := newRangeResponse(*s.Selection.Current)
		resp.Current = &cur
	}
	if s.Outcome != nil {
		resp.Outcome = &OutcomeResponse{
			Range:     newRangeResponse(s.Outcome.Range),
			Committed: s.Outcome.Committed,
			Reason:    string(s.Outcome.Reason),
		}
	}
	return resp
}

type CheckoutResponse struct {
	Bookings  []bookingHttp.BookingResponse `json:"bookings"`
	Total     int64                         `json:"total"`
	PaymentID string                        `json:"payment_id"`
}

func NewCheckoutResponse(r *reservation.CheckoutResult) CheckoutResponse {
	return CheckoutResponse{
		Bookings:  bookingHttp.NewBookingResponses(r.Bookings),
		Total:     r.Total,
		PaymentID: r.PaymentID,
	}
}
