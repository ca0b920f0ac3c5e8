package booking

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/nekogravitycat/court-reservation/internal/pkg/response"
)

type memoryStore struct {
	mu      sync.RWMutex
	records []*MyBooking
}

// NewMemoryStore returns a Store kept in process memory.
func NewMemoryStore(seed ...*MyBooking) Store {
	s := &memoryStore{}
	for _, m := range seed {
		s.records = append(s.records, copyOf(m))
	}
	return s
}

func copyOf(m *MyBooking) *MyBooking {
	cp := *m
	return &cp
}

func (s *memoryStore) ListForCourt(ctx context.Context, courtID, from, to string) ([]Booking, error) {
	if from != "" {
		if _, err := parseDay(from); err != nil {
			return nil, err
		}
	}
	if to != "" {
		if _, err := parseDay(to); err != nil {
			return nil, err
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Booking
	for _, m := range s.records {
		if m.CourtID != courtID || m.Status == StatusCancelled {
			continue
		}
		// DateLayout sorts lexically in calendar order.
		if from != "" && m.Date < from {
			continue
		}
		if to != "" && m.Date > to {
			continue
		}
		out = append(out, m.Booking)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].StartHour < out[j].StartHour
	})
	return out, nil
}

func (s *memoryStore) Append(ctx context.Context, records []*MyBooking) error {
	if err := checkBatch(records); err != nil {
		return err
	}
	for _, m := range records {
		if _, err := parseDay(m.Date); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range records {
		for _, existing := range s.records {
			if existing.Status == StatusCancelled || existing.CourtID != m.CourtID {
				continue
			}
			if existing.Overlaps(m.Date, m.StartHour, m.EndHour) {
				return ErrTimeConflict
			}
		}
	}

	for _, m := range records {
		s.records = append(s.records, copyOf(m))
	}
	return nil
}

func (s *memoryStore) GetByID(ctx context.Context, id string) (*MyBooking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, m := range s.records {
		if m.ID == id {
			return copyOf(m), nil
		}
	}
	return nil, ErrNotFound
}

func (s *memoryStore) List(ctx context.Context, filter Filter) ([]*MyBooking, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []*MyBooking
	for _, m := range s.records {
		if filter.matches(m) {
			matched = append(matched, copyOf(m))
		}
	}
	// Same order as the pgx store, with id breaking ties so pages never overlap.
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Date != matched[j].Date {
			return matched[i].Date > matched[j].Date
		}
		if matched[i].StartHour != matched[j].StartHour {
			return matched[i].StartHour > matched[j].StartHour
		}
		return matched[i].ID < matched[j].ID
	})

	return response.Paginate(matched, filter.Page, filter.PageSize), len(matched), nil
}

func (s *memoryStore) UpdateStatus(ctx context.Context, id string, status Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var target *MyBooking
	for _, m := range s.records {
		if m.ID == id {
			target = m
			break
		}
	}
	if target == nil {
		return ErrNotFound
	}

	// Reviving a cancelled booking must not double-book its slot.
	if target.Status == StatusCancelled && status != StatusCancelled {
		for _, other := range s.records {
			if other == target || other.Status == StatusCancelled || other.CourtID != target.CourtID {
				continue
			}
			if other.Overlaps(target.Date, target.StartHour, target.EndHour) {
				return ErrTimeConflict
			}
		}
	}

	target.Status = status
	return nil
}

// SeedBookings returns the demo bookings relative to now: two on court 1
// today and one on court 2 tomorrow.
func SeedBookings(now time.Time) []*MyBooking {
	today := now.Format(DateLayout)
	tomorrow := now.AddDate(0, 0, 1).Format(DateLayout)
	created := now.Add(-24 * time.Hour)

	return []*MyBooking{
		{
			Booking:       Booking{ID: "seed-1", CourtID: "1", Date: today, StartHour: 10, EndHour: 12, UserName: "Kim Cheolsu"},
			CourtName:     "Gangnam Badminton Center",
			CourtLocation: "Gangnam-gu",
			Price:         30000,
			Status:        StatusConfirmed,
			PaymentMethod: "card",
			PaymentID:     "seed-pay-1",
			CreatedAt:     created,
		},
		{
			Booking:       Booking{ID: "seed-2", CourtID: "1", Date: today, StartHour: 15, EndHour: 16, UserName: "Lee Younghee"},
			CourtName:     "Gangnam Badminton Center",
			CourtLocation: "Gangnam-gu",
			Price:         15000,
			Status:        StatusConfirmed,
			PaymentMethod: "card",
			PaymentID:     "seed-pay-2",
			CreatedAt:     created,
		},
		{
			Booking:       Booking{ID: "seed-3", CourtID: "2", Date: tomorrow, StartHour: 18, EndHour: 19, UserName: "Park Minjun"},
			CourtName:     "Seocho Sports Center",
			CourtLocation: "Seocho-gu",
			Price:         18000,
			Status:        StatusConfirmed,
			PaymentMethod: "card",
			PaymentID:     "seed-pay-3",
			CreatedAt:     created,
		},
	}
}
