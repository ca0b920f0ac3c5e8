package court

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/court-reservation/internal/pkg/response"
)

// Repository is the catalog provider for courts.
type Repository interface {
	GetByID(ctx context.Context, id string) (*Court, error)
	List(ctx context.Context, filter Filter) ([]*Court, int, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var courtColumns = []string{
	"id", "name", "location", "address", "price", "description",
	"available_time", "facilities", "rating", "review_count", "image_url",
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Court, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(courtColumns...).
		From("public.courts").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get court query failed: %w", err)
	}

	var c Court
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&c.ID, &c.Name, &c.Location, &c.Address, &c.Price, &c.Description,
		&c.AvailableTime, &c.Facilities, &c.Rating, &c.ReviewCount, &c.ImageURL,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get court failed: %w", err)
	}
	return &c, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Court, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(append(courtColumns, "count(*) OVER() as total_count")...).
		From("public.courts")

	if kw := strings.TrimSpace(filter.Keyword); kw != "" {
		pattern := "%" + kw + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"location": pattern},
			squirrel.ILike{"address": pattern},
		})
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	sql, args, err := query.OrderBy("id ASC").
		Limit(uint64(filter.PageSize)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list courts query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list courts failed: %w", err)
	}
	defer rows.Close()

	var courts []*Court
	var total int
	for rows.Next() {
		var c Court
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Location, &c.Address, &c.Price, &c.Description,
			&c.AvailableTime, &c.Facilities, &c.Rating, &c.ReviewCount, &c.ImageURL, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan court failed: %w", err)
		}
		courts = append(courts, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate courts failed: %w", err)
	}

	return courts, total, nil
}

// memoryRepository serves a fixed catalog. Courts are copied on the way out
// so callers cannot mutate the reference data.
type memoryRepository struct {
	mu     sync.RWMutex
	courts map[string]*Court
}

func NewMemoryRepository(seed []*Court) Repository {
	m := &memoryRepository{courts: make(map[string]*Court, len(seed))}
	for _, c := range seed {
		m.courts[c.ID] = clone(c)
	}
	return m
}

func (m *memoryRepository) GetByID(ctx context.Context, id string) (*Court, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.courts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(c), nil
}

func (m *memoryRepository) List(ctx context.Context, filter Filter) ([]*Court, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	kw := strings.ToLower(strings.TrimSpace(filter.Keyword))
	var matched []*Court
	for _, c := range m.courts {
		if kw != "" && !matchesKeyword(c, kw) {
			continue
		}
		matched = append(matched, clone(c))
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	return response.Paginate(matched, filter.Page, filter.PageSize), len(matched), nil
}

func matchesKeyword(c *Court, kw string) bool {
	return strings.Contains(strings.ToLower(c.Name), kw) ||
		strings.Contains(strings.ToLower(c.Location), kw) ||
		strings.Contains(strings.ToLower(c.Address), kw)
}

func clone(c *Court) *Court {
	cp := *c
	cp.Facilities = append([]string(nil), c.Facilities...)
	return &cp
}
