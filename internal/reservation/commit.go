package reservation

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nekogravitycat/court-reservation/internal/booking"
	"github.com/nekogravitycat/court-reservation/internal/court"
	"github.com/nekogravitycat/court-reservation/internal/payment"
	"github.com/nekogravitycat/court-reservation/internal/pkg/apperror"
	"github.com/nekogravitycat/court-reservation/internal/pkg/clock"
)

// CourtCatalog resolves the court a checkout is for.
type CourtCatalog interface {
	GetByID(ctx context.Context, id string) (*court.Court, error)
}

// CommitRequest is a paid checkout of the selected ranges.
type CommitRequest struct {
	CourtID       string
	UserID        string
	UserName      string
	PaymentMethod string
	Ranges        []Range
}

// Committer turns selected ranges into stored bookings, one per range.
type Committer struct {
	courts  CourtCatalog
	store   booking.Store
	gateway payment.Gateway
	clock   clock.Clock
	logger  zerolog.Logger
}

func NewCommitter(courts CourtCatalog, store booking.Store, gateway payment.Gateway, clk clock.Clock, logger zerolog.Logger) *Committer {
	return &Committer{
		courts:  courts,
		store:   store,
		gateway: gateway,
		clock:   clk,
		logger:  logger.With().Str("component", "commit").Logger(),
	}
}

// Commit revalidates the batch, charges for it and stores it. Either every
// range becomes a booking or none does; the store is untouched when payment fails.
func (c *Committer) Commit(ctx context.Context, req CommitRequest) ([]*booking.MyBooking, error) {
	if len(req.Ranges) == 0 {
		return nil, ErrNoRanges
	}

	ct, err := c.courts.GetByID(ctx, req.CourtID)
	if err != nil {
		if errors.Is(err, court.ErrNotFound) {
			return nil, ErrCourtNotFound
		}
		return nil, fmt.Errorf("failed to look up court: %w", err)
	}

	if err := c.revalidate(ctx, req.CourtID, req.Ranges); err != nil {
		return nil, err
	}

	total := TotalPrice(req.Ranges, ct.Price)
	receipt, err := c.gateway.ProcessPayment(ctx, total, req.PaymentMethod)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		if errors.Is(err, ErrPaymentFailed) {
			return nil, err
		}
		return nil, apperror.Wrap(fmt.Errorf("%w: %w", ErrPaymentFailed, err), ErrPaymentFailed.Code, ErrPaymentFailed.Message)
	}

	now := c.clock.Now()
	records := make([]*booking.MyBooking, len(req.Ranges))
	for i, r := range req.Ranges {
		records[i] = &booking.MyBooking{
			Booking: booking.Booking{
				ID:        uuid.NewString(),
				CourtID:   ct.ID,
				Date:      r.StartDate,
				StartHour: r.StartHour,
				EndHour:   r.EndHour,
				UserName:  req.UserName,
			},
			UserID:        req.UserID,
			CourtName:     ct.Name,
			CourtLocation: ct.Location,
			CourtImageURL: ct.ImageURL,
			Price:         int64(r.Hours()) * ct.Price,
			Status:        booking.StatusConfirmed,
			PaymentMethod: req.PaymentMethod,
			PaymentID:     receipt.PaymentID,
			CreatedAt:     now,
		}
	}

	if err := c.store.Append(ctx, records); err != nil {
		if errors.Is(err, booking.ErrTimeConflict) {
			// TODO: refund receipt.PaymentID once the gateway exposes refunds.
			c.logger.Warn().
				Str("payment_id", receipt.PaymentID).
				Str("court_id", req.CourtID).
				Msg("slots taken after payment; bookings not stored")
			return nil, ErrInvalidRange
		}
		return nil, fmt.Errorf("failed to store bookings: %w", err)
	}

	c.logger.Info().
		Str("court_id", req.CourtID).
		Str("user_id", req.UserID).
		Str("payment_id", receipt.PaymentID).
		Int("bookings", len(records)).
		Int64("amount", total).
		Msg("bookings committed")
	return records, nil
}

// revalidate checks every range against the store as it is now and against
// the rest of the batch.
func (c *Committer) revalidate(ctx context.Context, courtID string, ranges []Range) error {
	dates := make([]string, 0, len(ranges))
	for _, r := range ranges {
		dates = append(dates, r.StartDate)
	}
	sort.Strings(dates)

	for _, r := range ranges {
		if !r.SingleDay() {
			return apperror.Wrap(ErrInvalidRange, ErrInvalidRange.Code, "selected ranges must stay within one day")
		}
		if _, err := ParseCell(r.StartDate, r.StartHour); err != nil {
			return apperror.Wrap(ErrInvalidRange, ErrInvalidRange.Code, ErrInvalidRange.Message)
		}
	}

	existing, err := c.store.ListForCourt(ctx, courtID, dates[0], dates[len(dates)-1])
	if err != nil {
		return fmt.Errorf("failed to load bookings: %w", err)
	}

	now := c.clock.Now()
	for i, r := range ranges {
		if reason := CheckRange(courtID, r, existing, now); reason != "" {
			return apperror.Wrap(ErrInvalidRange, ErrInvalidRange.Code, "selected time is no longer available: "+string(reason))
		}
		for _, other := range ranges[:i] {
			if other.Overlaps(r) {
				return apperror.Wrap(ErrInvalidRange, ErrInvalidRange.Code, "selected time is no longer available: "+string(ReasonOverlap))
			}
		}
	}
	return nil
}
