package court

import (
	"net/http"

	"github.com/nekogravitycat/court-reservation/internal/pkg/apperror"
)

var (
	ErrNotFound = apperror.New(http.StatusNotFound, "court not found")
)

// Court is immutable reference data describing a bookable court.
type Court struct {
	ID            string
	Name          string
	Location      string // District shown in listings
	Address       string
	Price         int64 // Hourly rate in won
	Description   string
	AvailableTime string // Display string, e.g. "06:00 - 23:00"
	Facilities    []string
	Rating        float64
	ReviewCount   int
	ImageURL      string
}

// Filter defines parameters for listing courts.
type Filter struct {
	Keyword  string // Search in Name, Location or Address
	Page     int
	PageSize int
}

const defaultImageURL = "https://images.unsplash.com/photo-1626224583764-f87db24ac4ea?auto=format&fit=crop&w=800&q=80"

// SeedCourts returns the reference catalog served by the in-memory repository.
func SeedCourts() []*Court {
	return []*Court{
		{
			ID:            "1",
			Name:          "Gangnam Badminton Center",
			Location:      "Gangnam-gu",
			Address:       "123 Gangnam-daero, Gangnam-gu, Seoul",
			Price:         15000,
			Description:   "Comfortable indoor badminton courts",
			AvailableTime: "06:00 - 23:00",
			Facilities:    []string{"shower", "parking", "locker room", "lounge"},
			Rating:        4.5,
			ReviewCount:   128,
			ImageURL:      defaultImageURL,
		},
		{
			ID:            "2",
			Name:          "Seocho Sports Center",
			Location:      "Seocho-gu",
			Address:       "456 Seocho-daero, Seocho-gu, Seoul",
			Price:         18000,
			Description:   "Premium badminton courts",
			AvailableTime: "07:00 - 22:00",
			Facilities:    []string{"shower", "locker room", "cafe", "free parking"},
			Rating:        4.7,
			ReviewCount:   95,
			ImageURL:      defaultImageURL,
		},
		{
			ID:            "3",
			Name:          "Songpa Badminton Academy",
			Location:      "Songpa-gu",
			Address:       "789 Olympic-ro, Songpa-gu, Seoul",
			Price:         22000,
			Description:   "Dedicated badminton courts with top-class facilities",
			AvailableTime: "08:00 - 24:00",
			Facilities:    []string{"shower", "parking", "locker room", "towels", "coaching"},
			Rating:        4.9,
			ReviewCount:   213,
			ImageURL:      defaultImageURL,
		},
	}
}
