package http

import (
	"time"

	"github.com/nekogravitycat/court-reservation/internal/booking"
	courtHttp "github.com/nekogravitycat/court-reservation/internal/court/http"
)

type BookingResponse struct {
	ID            string             `json:"id"`
	Court         courtHttp.CourtTag `json:"court"`
	CourtLocation string             `json:"court_location"`
	CourtImageURL string             `json:"court_image_url"`
	Date          string             `json:"date"`
	StartHour     int                `json:"start_hour"`
	EndHour       int                `json:"end_hour"`
	UserName      string             `json:"user_name"`
	Price         int64              `json:"price"`
	Status        string             `json:"status"`
	PaymentMethod string             `json:"payment_method"`
	PaymentID     string             `json:"payment_id"`
	CreatedAt     time.Time          `json:"created_at"`
}

func NewBookingResponse(b *booking.MyBooking) BookingResponse {
	return BookingResponse{
		ID:            b.ID,
		Court:         courtHttp.CourtTag{ID: b.CourtID, Name: b.CourtName},
		CourtLocation: b.CourtLocation,
		CourtImageURL: b.CourtImageURL,
		Date:          b.Date,
		StartHour:     b.StartHour,
		EndHour:       b.EndHour,
		UserName:      b.UserName,
		Price:         b.Price,
		Status:        string(b.Status),
		PaymentMethod: b.PaymentMethod,
		PaymentID:     b.PaymentID,
		CreatedAt:     b.CreatedAt,
	}
}

func NewBookingResponses(items []*booking.MyBooking) []BookingResponse {
	out := make([]BookingResponse, len(items))
	for i, b := range items {
		out[i] = NewBookingResponse(b)
	}
	return out
}

type UpdateStatusBody struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed cancelled"`
}

type MonthlySummaryResponse struct {
	Month     string `json:"month"`
	Bookings  int    `json:"bookings"`
	Total     int64  `json:"total"`
	Confirmed int64  `json:"confirmed"`
	Pending   int64  `json:"pending"`
}

type RevenueResponse struct {
	Months    []MonthlySummaryResponse `json:"months"`
	Total     int64                    `json:"total"`
	Confirmed int64                    `json:"confirmed"`
	Pending   int64                    `json:"pending"`
}

func NewRevenueResponse(months []booking.MonthlySummary) RevenueResponse {
	resp := RevenueResponse{Months: make([]MonthlySummaryResponse, len(months))}
	for i, m := range months {
		resp.Months[i] = MonthlySummaryResponse(m)
		resp.Total += m.Total
		resp.Confirmed += m.Confirmed
		resp.Pending += m.Pending
	}
	return resp
}
