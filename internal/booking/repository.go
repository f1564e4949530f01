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

type Repository interface {
	Create(ctx context.Context, booking *Booking) error
	GetByID(ctx context.Context, id int64) (*Booking, error)
	GetByNumber(ctx context.Context, number string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	ListByTitle(ctx context.Context, title string) ([]*Booking, error)
	ListAll(ctx context.Context) ([]*Booking, error)
	Update(ctx context.Context, booking *Booking) error
	Delete(ctx context.Context, id int64) error

	// HasOverlap checks if there is any conflicting booking for the room in the
	// given half-open time range. excludeBookingID ignores the booking itself
	// during updates; pass 0 on create.
	HasOverlap(ctx context.Context, roomID int64, start, end time.Time, excludeBookingID int64) (bool, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns("room_id", "start_time", "end_time", "title", "number", "status").
		Values(b.RoomID, b.StartTime, b.EndTime, b.Title, b.Number, b.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrNumberTaken
		}
		return fmt.Errorf("create booking failed: %w", err)
	}
	return nil
}

const bookingColumns = "b.id, b.room_id, r.name, b.start_time, b.end_time, b.title, b.number, b.status, b.created_at, b.updated_at"

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	err := row.Scan(
		&b.ID, &b.RoomID, &b.RoomName, &b.StartTime, &b.EndTime,
		&b.Title, &b.Number, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Booking, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM public.bookings b
		JOIN public.rooms r ON b.room_id = r.id
		WHERE b.id = $1
	`, bookingColumns)

	b, err := scanBooking(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) GetByNumber(ctx context.Context, number string) (*Booking, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM public.bookings b
		JOIN public.rooms r ON b.room_id = r.id
		WHERE b.number = $1
	`, bookingColumns)

	b, err := scanBooking(r.pool.QueryRow(ctx, query, number))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking by number failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"b.id", "b.room_id", "r.name", "b.start_time", "b.end_time",
		"b.title", "b.number", "b.status", "b.created_at", "b.updated_at",
		"count(*) OVER() as total_count",
	).
		From("public.bookings b").
		Join("public.rooms r ON b.room_id = r.id")

	if filter.RoomID != 0 {
		query = query.Where(squirrel.Eq{"b.room_id": filter.RoomID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}
	// Date range filtering (intersection logic)
	if filter.StartTime != nil {
		query = query.Where(squirrel.GtOrEq{"b.end_time": filter.StartTime})
	}
	if filter.EndTime != nil {
		query = query.Where(squirrel.LtOrEq{"b.start_time": filter.EndTime})
	}

	// Sorting
	orderBy := "b.start_time"
	if filter.SortBy != "" {
		orderBy = "b." + filter.SortBy
	}

	orderDir := "DESC"
	if filter.SortOrder != "" {
		orderDir = filter.SortOrder
	}

	query = query.OrderBy(orderBy + " " + orderDir)

	// Pagination
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int

	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.RoomID, &b.RoomName, &b.StartTime, &b.EndTime,
			&b.Title, &b.Number, &b.Status, &b.CreatedAt, &b.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}

	return bookings, total, nil
}

// ListByTitle returns every booking whose title matches, case-insensitively
// and ignoring surrounding whitespace. Used by the guest login lookup to
// gather all reservations held under one name.
func (r *pgxRepository) ListByTitle(ctx context.Context, title string) ([]*Booking, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM public.bookings b
		JOIN public.rooms r ON b.room_id = r.id
		WHERE lower(trim(b.title)) = lower(trim($1))
		ORDER BY b.start_time
	`, bookingColumns)

	rows, err := r.pool.Query(ctx, query, title)
	if err != nil {
		return nil, fmt.Errorf("list bookings by title failed: %w", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

func (r *pgxRepository) ListAll(ctx context.Context) ([]*Booking, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM public.bookings b
		JOIN public.rooms r ON b.room_id = r.id
		ORDER BY b.id
	`, bookingColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list all bookings failed: %w", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

func collectBookings(rows pgx.Rows) ([]*Booking, error) {
	var bookings []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *pgxRepository) Update(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	// Room and number are immutable after creation and deliberately absent here.
	query, args, err := psql.Update("public.bookings").
		Set("start_time", b.StartTime).
		Set("end_time", b.EndTime).
		Set("title", b.Title).
		Set("status", b.Status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": b.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id int64) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete booking query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// overlapPredicate is the SQL rendering of Overlaps: stored [start_time,
// end_time) intersects the candidate [start, end) iff start_time < end AND
// end_time > start. Strict comparisons keep touching endpoints conflict-free.
//
// Status is intentionally not part of the predicate: a cancelled booking
// still occupies its slot. See DESIGN.md for why this oddity is kept.
func overlapPredicate(roomID int64, start, end time.Time, excludeBookingID int64) squirrel.And {
	pred := squirrel.And{
		squirrel.Eq{"room_id": roomID},
		squirrel.Lt{"start_time": end},
		squirrel.Gt{"end_time": start},
	}
	if excludeBookingID != 0 {
		pred = append(pred, squirrel.NotEq{"id": excludeBookingID})
	}
	return pred
}

func (r *pgxRepository) HasOverlap(ctx context.Context, roomID int64, start, end time.Time, excludeBookingID int64) (bool, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	subQuery := psql.Select("1").
		From("public.bookings").
		Where(overlapPredicate(roomID, start, end, excludeBookingID))

	sql, args, err := subQuery.ToSql()
	if err != nil {
		return false, fmt.Errorf("build check overlap query failed: %w", err)
	}

	query := "SELECT EXISTS (" + sql + ")"

	var exists bool
	err = r.pool.QueryRow(ctx, query, args...).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check overlap failed: %w", err)
	}
	return exists, nil
}
