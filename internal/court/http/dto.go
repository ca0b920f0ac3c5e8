package http

import (
	"github.com/nekogravitycat/court-reservation/internal/court"
)

type CourtResponse struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Location      string   `json:"location"`
	Address       string   `json:"address"`
	Price         int64    `json:"price"`
	Description   string   `json:"description"`
	AvailableTime string   `json:"available_time"`
	Facilities    []string `json:"facilities"`
	Rating        float64  `json:"rating"`
	ReviewCount   int      `json:"review_count"`
	ImageURL      string   `json:"image_url"`
}

// CourtTag is a brief representation of a court.
type CourtTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func NewCourtResponse(c *court.Court) CourtResponse {
	facilities := c.Facilities
	if facilities == nil {
		facilities = []string{}
	}
	return CourtResponse{
		ID:            c.ID,
		Name:          c.Name,
		Location:      c.Location,
		Address:       c.Address,
		Price:         c.Price,
		Description:   c.Description,
		AvailableTime: c.AvailableTime,
		Facilities:    facilities,
		Rating:        c.Rating,
		ReviewCount:   c.ReviewCount,
		ImageURL:      c.ImageURL,
	}
}
