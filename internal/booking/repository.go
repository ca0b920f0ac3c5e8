package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store persists bookings. It is both the sink of checkout and the source of
// the slots the overlap checks run against.
type Store interface {
	// ListForCourt returns the non-cancelled bookings of a court whose date lies
	// in [from, to]. Empty bounds are open.
	ListForCourt(ctx context.Context, courtID, from, to string) ([]Booking, error)

	// Append inserts all records or none. It fails with ErrTimeConflict when a
	// record overlaps a stored booking or another record of the batch.
	Append(ctx context.Context, records []*MyBooking) error

	GetByID(ctx context.Context, id string) (*MyBooking, error)
	List(ctx context.Context, filter Filter) ([]*MyBooking, int, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
}

// checkBatch rejects batches whose own records overlap each other.
func checkBatch(records []*MyBooking) error {
	for i, a := range records {
		if a.EndHour <= a.StartHour {
			return fmt.Errorf("booking %d has empty interval: %w", i, ErrTimeConflict)
		}
		for _, b := range records[:i] {
			if a.CourtID == b.CourtID && b.Overlaps(a.Date, a.StartHour, a.EndHour) {
				return ErrTimeConflict
			}
		}
	}
	return nil
}

type pgxStore struct {
	pool *pgxpool.Pool
}

func NewPgxStore(pool *pgxpool.Pool) Store {
	return &pgxStore{pool: pool}
}

var myBookingColumns = []string{
	"b.id", "b.court_id", "to_char(b.date, 'YYYY-MM-DD')", "b.start_hour", "b.end_hour", "b.user_name",
	"b.user_id", "b.court_name", "b.court_location", "b.court_image_url",
	"b.price", "b.status", "b.payment_method", "b.payment_id", "b.created_at",
}

func scanMyBooking(row pgx.Row, extra ...any) (*MyBooking, error) {
	var m MyBooking
	dest := []any{
		&m.ID, &m.CourtID, &m.Date, &m.StartHour, &m.EndHour, &m.UserName,
		&m.UserID, &m.CourtName, &m.CourtLocation, &m.CourtImageURL,
		&m.Price, &m.Status, &m.PaymentMethod, &m.PaymentID, &m.CreatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &m, nil
}

func parseDay(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}

func (r *pgxStore) ListForCourt(ctx context.Context, courtID, from, to string) ([]Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select("id", "court_id", "to_char(date, 'YYYY-MM-DD')", "start_hour", "end_hour", "user_name").
		From("public.bookings").
		Where(squirrel.Eq{"court_id": courtID}).
		Where(squirrel.NotEq{"status": StatusCancelled})

	if from != "" {
		d, err := parseDay(from)
		if err != nil {
			return nil, err
		}
		query = query.Where(squirrel.GtOrEq{"date": d})
	}
	if to != "" {
		d, err := parseDay(to)
		if err != nil {
			return nil, err
		}
		query = query.Where(squirrel.LtOrEq{"date": d})
	}

	sql, args, err := query.OrderBy("date ASC", "start_hour ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list court bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list court bookings failed: %w", err)
	}
	defer rows.Close()

	var out []Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(&b.ID, &b.CourtID, &b.Date, &b.StartHour, &b.EndHour, &b.UserName); err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *pgxStore) Append(ctx context.Context, records []*MyBooking) error {
	if err := checkBatch(records); err != nil {
		return err
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin append bookings failed: %w", err)
	}
	defer tx.Rollback(ctx)

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	for _, m := range records {
		day, err := parseDay(m.Date)
		if err != nil {
			return err
		}

		// Serialize writers per court and day so the probe below cannot race.
		if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", m.CourtID+"/"+m.Date); err != nil {
			return fmt.Errorf("lock court day failed: %w", err)
		}

		probe, args, err := psql.Select("1").
			From("public.bookings").
			Where(squirrel.Eq{"court_id": m.CourtID, "date": day}).
			Where(squirrel.NotEq{"status": StatusCancelled}).
			Where(squirrel.Lt{"start_hour": m.EndHour}).
			Where(squirrel.Gt{"end_hour": m.StartHour}).
			ToSql()
		if err != nil {
			return fmt.Errorf("build overlap probe failed: %w", err)
		}
		var exists bool
		if err := tx.QueryRow(ctx, "SELECT EXISTS ("+probe+")", args...).Scan(&exists); err != nil {
			return fmt.Errorf("check overlap failed: %w", err)
		}
		if exists {
			return ErrTimeConflict
		}

		insert, args, err := psql.Insert("public.bookings").
			Columns(
				"id", "court_id", "date", "start_hour", "end_hour", "user_name",
				"user_id", "court_name", "court_location", "court_image_url",
				"price", "status", "payment_method", "payment_id", "created_at",
			).
			Values(
				m.ID, m.CourtID, day, m.StartHour, m.EndHour, m.UserName,
				m.UserID, m.CourtName, m.CourtLocation, m.CourtImageURL,
				m.Price, m.Status, m.PaymentMethod, m.PaymentID, m.CreatedAt,
			).
			ToSql()
		if err != nil {
			return fmt.Errorf("build insert booking query failed: %w", err)
		}
		if _, err := tx.Exec(ctx, insert, args...); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ExclusionViolation {
				return ErrTimeConflict
			}
			return fmt.Errorf("insert booking failed: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit bookings failed: %w", err)
	}
	return nil
}

func (r *pgxStore) GetByID(ctx context.Context, id string) (*MyBooking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(myBookingColumns...).
		From("public.bookings b").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	m, err := scanMyBooking(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return m, nil
}

func (r *pgxStore) List(ctx context.Context, filter Filter) ([]*MyBooking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(append(myBookingColumns, "count(*) OVER() as total_count")...).
		From("public.bookings b")

	if filter.UserID != "" {
		query = query.Where(squirrel.Eq{"b.user_id": filter.UserID})
	}
	if filter.CourtID != "" {
		query = query.Where(squirrel.Eq{"b.court_id": filter.CourtID})
	}
	if filter.Date != "" {
		d, err := parseDay(filter.Date)
		if err != nil {
			return nil, 0, err
		}
		query = query.Where(squirrel.Eq{"b.date": d})
	}
	if filter.Status != "" && filter.Status != "all" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}

	// Pagination
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	sql, args, err := query.OrderBy("b.date DESC", "b.start_hour DESC", "b.id ASC").
		Limit(uint64(filter.PageSize)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*MyBooking
	var total int
	for rows.Next() {
		m, err := scanMyBooking(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate bookings failed: %w", err)
	}

	return bookings, total, nil
}

func (r *pgxStore) UpdateStatus(ctx context.Context, id string, status Status) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ExclusionViolation {
			return ErrTimeConflict
		}
		return fmt.Errorf("update booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
