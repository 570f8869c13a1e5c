package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/hotel-booking-backend/internal/availability"
	"github.com/nekogravitycat/hotel-booking-backend/internal/db"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/hotel-booking-backend/internal/room"
)

// Repository defines methods for accessing booking data.
//
// Create and Update are the authoritative double-booking guard: the
// conflict count and the write happen atomically per room, so two
// overlapping bookings can never both be stored.
type Repository interface {
	availability.BookingStore

	Create(ctx context.Context, b *Booking) error
	Update(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a new booking repository.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

func selectBookings(columns ...string) squirrel.SelectBuilder {
	cols := append([]string{
		"b.id", "b.hotel_id", "b.room_id", "b.user_id", "u.email", "b.guest_name",
		"b.address", "b.phone", "b.check_in", "b.check_out", "b.created_at", "b.updated_at",
	}, columns...)
	return psql.Select(cols...).
		From("public.bookings b").
		Join("public.users u ON u.id = b.user_id")
}

func scanBooking(row pgx.Row, extra ...any) (*Booking, error) {
	var b Booking
	dest := []any{
		&b.ID, &b.HotelID, &b.RoomID, &b.UserID, &b.UserEmail, &b.GuestName,
		&b.Contact.Address, &b.Contact.Phone, &b.CheckIn, &b.CheckOut, &b.CreatedAt, &b.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &b, nil
}

// overlapping matches bookings sharing at least one day with rng.
func overlapping(rng availability.DateRange) squirrel.Sqlizer {
	return squirrel.And{
		squirrel.LtOrEq{"check_in": rng.CheckOut},
		squirrel.GtOrEq{"check_out": rng.CheckIn},
	}
}

func countConflicts(ctx context.Context, q db.Querier, roomID string, rng availability.DateRange, excludeID string) (int, error) {
	builder := psql.Select("count(*)").
		From("public.bookings").
		Where(squirrel.Eq{"room_id": roomID}).
		Where(overlapping(rng))
	if excludeID != "" {
		builder = builder.Where(squirrel.NotEq{"id": excludeID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count conflicts query failed: %w", err)
	}

	var n int
	if err := q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count conflicts failed: %w", err)
	}
	return n, nil
}

func (r *pgxRepository) CountConflicts(ctx context.Context, roomID string, rng availability.DateRange, excludeID string) (int, error) {
	return countConflicts(ctx, r.pool, roomID, rng, excludeID)
}

func (r *pgxRepository) BookedRoomIDs(ctx context.Context, hotelID string, rng availability.DateRange) ([]string, error) {
	query, args, err := psql.Select("DISTINCT room_id").
		From("public.bookings").
		Where(squirrel.Eq{"hotel_id": hotelID}).
		Where(overlapping(rng)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build booked rooms query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("booked rooms failed: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

// lockRoom serializes every booking write on the room for the rest of tx.
// The status is read under the lock, so a room switched to UNAVAILABLE by a
// concurrent update takes no further bookings.
func lockRoom(ctx context.Context, tx pgx.Tx, roomID string) error {
	var status string
	err := tx.QueryRow(ctx, "SELECT status FROM public.rooms WHERE id = $1 FOR UPDATE", roomID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return room.ErrNotFound
		}
		return fmt.Errorf("lock room failed: %w", err)
	}
	if room.Status(status) == room.StatusUnavailable {
		return room.ErrUnavailable
	}
	return nil
}

// guardedWrite runs write after confirming, under the room lock, that no
// other booking overlaps b.
func (r *pgxRepository) guardedWrite(ctx context.Context, b *Booking, excludeID string, write func(tx pgx.Tx) error) error {
	err := db.InTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := lockRoom(ctx, tx, b.RoomID); err != nil {
			return err
		}

		n, err := countConflicts(ctx, tx, b.RoomID, b.Range(), excludeID)
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrRoomAlreadyBooked
		}
		return write(tx)
	})
	if db.IsExclusionViolation(err, db.ConstraintBookingNoOverlap) {
		return ErrRoomAlreadyBooked
	}
	return err
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	return r.guardedWrite(ctx, b, "", func(tx pgx.Tx) error {
		query, args, err := psql.Insert("public.bookings").
			Columns("hotel_id", "room_id", "user_id", "guest_name", "address", "phone", "check_in", "check_out").
			Values(b.HotelID, b.RoomID, b.UserID, b.GuestName, b.Contact.Address, b.Contact.Phone, b.CheckIn, b.CheckOut).
			Suffix("RETURNING id, created_at, updated_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("build create booking query failed: %w", err)
		}
		if err := tx.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return fmt.Errorf("create booking failed: %w", err)
		}
		return nil
	})
}

func (r *pgxRepository) Update(ctx context.Context, b *Booking) error {
	return r.guardedWrite(ctx, b, b.ID, func(tx pgx.Tx) error {
		query, args, err := psql.Update("public.bookings").
			Set("guest_name", b.GuestName).
			Set("address", b.Contact.Address).
			Set("phone", b.Contact.Phone).
			Set("check_in", b.CheckIn).
			Set("check_out", b.CheckOut).
			Set("updated_at", squirrel.Expr("now()")).
			Where(squirrel.Eq{"id": b.ID}).
			Suffix("RETURNING updated_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("build update booking query failed: %w", err)
		}
		if err := tx.QueryRow(ctx, query, args...).Scan(&b.UpdatedAt); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("update booking failed: %w", err)
		}
		return nil
	})
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	query, args, err := selectBookings().Where(squirrel.Eq{"b.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	builder := selectBookings("count(*) OVER() AS total_count")
	if filter.HotelID != "" {
		builder = builder.Where(squirrel.Eq{"b.hotel_id": filter.HotelID})
	}
	if filter.RoomID != "" {
		builder = builder.Where(squirrel.Eq{"b.room_id": filter.RoomID})
	}
	if filter.UserID != "" {
		builder = builder.Where(squirrel.Eq{"b.user_id": filter.UserID})
	}

	query, args, err := builder.
		OrderBy("b.check_in ASC", "b.id ASC").
		Limit(uint64(filter.Size)).
		Offset(request.Offset(filter.Page, filter.Size)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int
	for rows.Next() {
		b, err := scanBooking(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	return bookings, total, nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, "DELETE FROM public.bookings WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
