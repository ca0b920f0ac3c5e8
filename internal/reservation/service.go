package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/nekogravitycat/court-reservation/internal/booking"
	"github.com/nekogravitycat/court-reservation/internal/court"
	"github.com/nekogravitycat/court-reservation/internal/metrics"
	"github.com/nekogravitycat/court-reservation/internal/pkg/clock"
)

// Customer is the caller as the identity provider describes them.
type Customer struct {
	ID   string
	Name string
}

// Quote prices the kept ranges of a selection.
type Quote struct {
	Ranges     []Range
	Hours      int
	HourlyRate int64
	Total      int64
}

// GridView is everything needed to render one court's week.
type GridView struct {
	CourtID string
	Days    []string
	Hours   []int
	Rows    []Row
	Quote   Quote
}

// SelectionState is the selection after a pointer event. Accepted is false when
// the event was ignored; Outcome is set for drag end.
type SelectionState struct {
	Accepted  bool
	Outcome   *DragOutcome
	Selection Selection
	Quote     Quote
}

// CheckoutResult lists the bookings a checkout created.
type CheckoutResult struct {
	Bookings  []*booking.MyBooking
	Total     int64
	PaymentID string
}

// Service drives one user's reservation page for a court.
type Service interface {
	// Grid renders the week containing date ("" means today).
	Grid(ctx context.Context, who Customer, courtID, date string) (*GridView, error)

	DragStart(ctx context.Context, who Customer, courtID string, c Cell) (*SelectionState, error)
	DragOver(ctx context.Context, who Customer, courtID string, c Cell) (*SelectionState, error)
	// DragEnd validates the dragged range against current bookings and keeps it
	// if valid. A rejection is reported in the outcome, not as an error.
	DragEnd(ctx context.Context, who Customer, courtID string) (*SelectionState, error)
	RemoveRange(ctx context.Context, who Customer, courtID string, index int) (*SelectionState, error)
	ClearAll(ctx context.Context, who Customer, courtID string) (*SelectionState, error)

	Quote(ctx context.Context, who Customer, courtID string) (*Quote, error)
	// Checkout pays for and books every kept range. Only one checkout per
	// user and court runs at a time.
	Checkout(ctx context.Context, who Customer, courtID, method string) (*CheckoutResult, error)
}

type service struct {
	courts    CourtCatalog
	store     booking.Store
	sessions  SessionStore
	committer *Committer
	clock     clock.Clock
	logger    zerolog.Logger
}

func NewService(courts CourtCatalog, store booking.Store, sessions SessionStore, committer *Committer, clk clock.Clock, logger zerolog.Logger) Service {
	return &service{
		courts:    courts,
		store:     store,
		sessions:  sessions,
		committer: committer,
		clock:     clk,
		logger:    logger.With().Str("component", "reservation").Logger(),
	}
}

func (s *service) court(ctx context.Context, id string) (*court.Court, error) {
	ct, err := s.courts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, court.ErrNotFound) {
			return nil, ErrCourtNotFound
		}
		return nil, fmt.Errorf("failed to look up court: %w", err)
	}
	return ct, nil
}

func quoteFor(sel *Selection, rate int64) Quote {
	q := Quote{Ranges: append([]Range{}, sel.Ranges...), HourlyRate: rate}
	for _, r := range sel.Ranges {
		q.Hours += r.Hours()
	}
	q.Total = TotalPrice(sel.Ranges, rate)
	return q
}

func (s *service) Grid(ctx context.Context, who Customer, courtID, date string) (*GridView, error) {
	ct, err := s.court(ctx, courtID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	ref := now
	if date != "" {
		ref, err = time.ParseInLocation(booking.DateLayout, date, now.Location())
		if err != nil {
			return nil, booking.ErrInvalidDate
		}
	}

	sel, err := s.sessions.Load(ctx, SessionKey{UserID: who.ID, CourtID: courtID})
	if err != nil {
		return nil, err
	}

	grid, err := s.gridFor(ctx, courtID, ref, now, sel)
	if err != nil {
		return nil, err
	}

	return &GridView{
		CourtID: courtID,
		Days:    grid.Days(),
		Hours:   grid.Hours(),
		Rows:    grid.Rows(),
		Quote:   quoteFor(sel, ct.Price),
	}, nil
}

func (s *service) gridFor(ctx context.Context, courtID string, ref, now time.Time, sel *Selection) (*Grid, error) {
	week := WeekDays(ref)
	existing, err := s.store.ListForCourt(ctx, courtID,
		week[0].Format(booking.DateLayout), week[len(week)-1].Format(booking.DateLayout))
	if err != nil {
		return nil, err
	}
	return NewGrid(courtID, ref, existing, now, sel.Pending()), nil
}

// checkIdle fails with ErrCheckoutInProgress while a checkout holds the busy flag.
func (s *service) checkIdle(ctx context.Context, key SessionKey) error {
	busy, err := s.sessions.Busy(ctx, key)
	if err != nil {
		return err
	}
	if busy {
		return ErrCheckoutInProgress
	}
	return nil
}

// update loads the selection, applies fn and saves the result when fn reports a change.
// Edits are refused while the same selection is being paid for.
func (s *service) update(ctx context.Context, who Customer, courtID string, fn func(ct *court.Court, sel *Selection) (bool, error)) (*SelectionState, error) {
	ct, err := s.court(ctx, courtID)
	if err != nil {
		return nil, err
	}

	key := SessionKey{UserID: who.ID, CourtID: courtID}
	if err := s.checkIdle(ctx, key); err != nil {
		return nil, err
	}
	sel, err := s.sessions.Load(ctx, key)
	if err != nil {
		return nil, err
	}

	changed, err := fn(ct, sel)
	if err != nil {
		return nil, err
	}
	if changed {
		// A checkout may have started while fn ran.
		if err := s.checkIdle(ctx, key); err != nil {
			return nil, err
		}
		if err := s.sessions.Save(ctx, key, sel); err != nil {
			return nil, err
		}
	}

	return &SelectionState{Accepted: changed, Selection: *sel, Quote: quoteFor(sel, ct.Price)}, nil
}

func (s *service) DragStart(ctx context.Context, who Customer, courtID string, c Cell) (*SelectionState, error) {
	return s.update(ctx, who, courtID, func(ct *court.Court, sel *Selection) (bool, error) {
		now := s.clock.Now()
		ref, err := time.ParseInLocation(booking.DateLayout, c.Date, now.Location())
		if err != nil {
			return false, ErrInvalidCell
		}
		grid, err := s.gridFor(ctx, courtID, ref, now, sel)
		if err != nil {
			return false, err
		}
		return sel.DragStart(grid, c), nil
	})
}

func (s *service) DragOver(ctx context.Context, who Customer, courtID string, c Cell) (*SelectionState, error) {
	return s.update(ctx, who, courtID, func(_ *court.Court, sel *Selection) (bool, error) {
		return sel.DragOver(c), nil
	})
}

func (s *service) DragEnd(ctx context.Context, who Customer, courtID string) (*SelectionState, error) {
	var outcome DragOutcome
	state, err := s.update(ctx, who, courtID, func(_ *court.Court, sel *Selection) (bool, error) {
		if !sel.Dragging() {
			return false, ErrNotDragging
		}

		now := s.clock.Now()
		var loadErr error
		outcome = sel.DragEnd(func(r Range) Reason {
			existing, err := s.store.ListForCourt(ctx, courtID, r.StartDate, r.StartDate)
			if err != nil {
				loadErr = err
				return ReasonMalformed
			}
			return CheckRange(courtID, r, existing, now)
		})
		if loadErr != nil {
			return false, loadErr
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	if !outcome.Committed {
		metrics.IncRangeRejected(string(outcome.Reason))
		s.logger.Debug().
			Str("court_id", courtID).
			Str("user_id", who.ID).
			Str("reason", string(outcome.Reason)).
			Msg("dragged range rejected")
	}

	state.Accepted = outcome.Committed
	state.Outcome = &outcome
	return state, nil
}

func (s *service) RemoveRange(ctx context.Context, who Customer, courtID string, index int) (*SelectionState, error) {
	return s.update(ctx, who, courtID, func(_ *court.Court, sel *Selection) (bool, error) {
		if err := sel.RemoveRange(index); err != nil {
			return false, err
		}
		return true, nil
	})
}

func (s *service) ClearAll(ctx context.Context, who Customer, courtID string) (*SelectionState, error) {
	return s.update(ctx, who, courtID, func(_ *court.Court, sel *Selection) (bool, error) {
		sel.ClearAll()
		return true, nil
	})
}

func (s *service) Quote(ctx context.Context, who Customer, courtID string) (*Quote, error) {
	ct, err := s.court(ctx, courtID)
	if err != nil {
		return nil, err
	}
	sel, err := s.sessions.Load(ctx, SessionKey{UserID: who.ID, CourtID: courtID})
	if err != nil {
		return nil, err
	}
	q := quoteFor(sel, ct.Price)
	return &q, nil
}

func (s *service) Checkout(ctx context.Context, who Customer, courtID, method string) (*CheckoutResult, error) {
	started := time.Now()
	key := SessionKey{UserID: who.ID, CourtID: courtID}

	ok, err := s.sessions.Acquire(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		metrics.ObserveCheckout("busy", started)
		return nil, ErrCheckoutInProgress
	}
	defer func() {
		if err := s.sessions.Release(context.WithoutCancel(ctx), key); err != nil {
			s.logger.Error().Err(err).Str("user_id", who.ID).Msg("failed to clear checkout flag")
		}
	}()

	sel, err := s.sessions.Load(ctx, key)
	if err != nil {
		return nil, err
	}

	records, err := s.committer.Commit(ctx, CommitRequest{
		CourtID:       courtID,
		UserID:        who.ID,
		UserName:      who.Name,
		PaymentMethod: method,
		Ranges:        sel.Ranges,
	})
	if err != nil {
		metrics.ObserveCheckout(checkoutResult(err), started)
		return nil, err
	}

	if err := s.sessions.Delete(ctx, key); err != nil {
		s.logger.Warn().Err(err).Str("user_id", who.ID).Msg("failed to clear selection after checkout")
	}

	metrics.AddBookingsCommitted(len(records))
	metrics.ObserveCheckout("success", started)

	res := &CheckoutResult{Bookings: records}
	for _, r := range records {
		res.Total += r.Price
	}
	if len(records) > 0 {
		res.PaymentID = records[0].PaymentID
	}
	return res, nil
}

func checkoutResult(err error) string {
	switch {
	case errors.Is(err, ErrNoRanges):
		return "empty"
	case errors.Is(err, ErrCourtNotFound):
		return "court_not_found"
	case errors.Is(err, ErrInvalidRange):
		return "invalid_range"
	case errors.Is(err, ErrPaymentFailed):
		return "payment_failed"
	}
	return "error"
}
