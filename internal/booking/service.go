package booking

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"github.com/nekogravitycat/court-reservation/internal/pkg/clock"
)

type Service interface {
	// ListMine lists the caller's bookings, optionally narrowed to one status.
	ListMine(ctx context.Context, userID, status string, page, pageSize int) ([]*MyBooking, int, error)
	// Cancel cancels one of the caller's bookings that has not started yet.
	Cancel(ctx context.Context, id, userID string) (*MyBooking, error)

	ListAll(ctx context.Context, filter Filter) ([]*MyBooking, int, error)
	UpdateStatus(ctx context.Context, id, status string) (*MyBooking, error)
	Revenue(ctx context.Context, courtID string) ([]MonthlySummary, error)
}

type service struct {
	store  Store
	clock  clock.Clock
	logger zerolog.Logger
}

func NewService(store Store, clk clock.Clock, logger zerolog.Logger) Service {
	return &service{
		store:  store,
		clock:  clk,
		logger: logger.With().Str("component", "booking").Logger(),
	}
}

func (s *service) ListMine(ctx context.Context, userID, status string, page, pageSize int) ([]*MyBooking, int, error) {
	if userID == "" {
		return nil, 0, ErrPermissionDenied
	}
	if status != "" && status != "all" {
		if _, err := ParseStatus(status); err != nil {
			return nil, 0, err
		}
	}
	return s.store.List(ctx, Filter{
		UserID:   userID,
		Status:   status,
		Page:     page,
		PageSize: pageSize,
	})
}

func (s *service) Cancel(ctx context.Context, id, userID string) (*MyBooking, error) {
	b, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if b.UserID == "" || b.UserID != userID {
		return nil, ErrPermissionDenied
	}
	if b.Status == StatusCancelled {
		return nil, ErrAlreadyCancelled
	}

	now := s.clock.Now()
	startsAt, err := b.StartsAt(now.Location())
	if err != nil {
		return nil, err
	}
	if !now.Before(startsAt) {
		return nil, ErrBookingStarted
	}

	if err := s.store.UpdateStatus(ctx, id, StatusCancelled); err != nil {
		return nil, err
	}
	b.Status = StatusCancelled

	s.logger.Info().Str("booking_id", id).Str("user_id", userID).Msg("booking cancelled")
	return b, nil
}

func (s *service) ListAll(ctx context.Context, filter Filter) ([]*MyBooking, int, error) {
	if filter.Status != "" && filter.Status != "all" {
		if _, err := ParseStatus(filter.Status); err != nil {
			return nil, 0, err
		}
	}
	if filter.Date != "" {
		if _, err := parseDay(filter.Date); err != nil {
			return nil, 0, err
		}
	}
	return s.store.List(ctx, filter)
}

func (s *service) UpdateStatus(ctx context.Context, id, status string) (*MyBooking, error) {
	st, err := ParseStatus(status)
	if err != nil {
		return nil, err
	}

	if err := s.store.UpdateStatus(ctx, id, st); err != nil {
		return nil, err
	}

	b, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("booking_id", id).Str("status", status).Msg("booking status changed")
	return b, nil
}

const revenuePageSize = 500

func (s *service) Revenue(ctx context.Context, courtID string) ([]MonthlySummary, error) {
	byMonth := make(map[string]*MonthlySummary)

	for page := 1; ; page++ {
		items, _, err := s.store.List(ctx, Filter{CourtID: courtID, Page: page, PageSize: revenuePageSize})
		if err != nil {
			return nil, err
		}

		for _, b := range items {
			if b.Status == StatusCancelled || len(b.Date) < 7 {
				continue
			}
			month := b.Date[:7]
			sum, ok := byMonth[month]
			if !ok {
				sum = &MonthlySummary{Month: month}
				byMonth[month] = sum
			}
			sum.Bookings++
			sum.Total += b.Price
			switch b.Status {
			case StatusConfirmed:
				sum.Confirmed += b.Price
			case StatusPending:
				sum.Pending += b.Price
			}
		}

		if len(items) < revenuePageSize {
			break
		}
	}

	out := make([]MonthlySummary, 0, len(byMonth))
	for _, sum := range byMonth {
		out = append(out, *sum)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month > out[j].Month })
	return out, nil
}
