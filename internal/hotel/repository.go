package hotel

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/hotel-booking-backend/internal/auth"
	"github.com/nekogravitycat/hotel-booking-backend/internal/db"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/hotel-booking-backend/internal/user"
)

// Repository defines methods for accessing hotel data.
type Repository interface {
	// CreateWithStaff stores the staff account and the hotel in one transaction.
	CreateWithStaff(ctx context.Context, h *Hotel, staff *user.User) error
	GetByID(ctx context.Context, id string) (*Hotel, error)
	List(ctx context.Context, filter Filter) ([]*Hotel, int, error)
	// Update fails with ErrCapacityBelowRoomCount when h.RoomCount is lower
	// than the number of rooms the hotel already has.
	Update(ctx context.Context, h *Hotel) error
	// Delete removes the hotel with its rooms and bookings. The staff
	// account is kept and demoted to USER.
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a new hotel repository.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

func selectHotels() squirrel.SelectBuilder {
	return psql.Select(
		"h.id", "h.name", "h.room_count", "h.latitude", "h.longitude",
		"h.staff_user_id", "u.email", "h.created_at", "h.updated_at",
	).
		From("public.hotels h").
		Join("public.users u ON u.id = h.staff_user_id")
}

func scanHotel(row pgx.Row, extra ...any) (*Hotel, error) {
	var h Hotel
	dest := []any{
		&h.ID, &h.Name, &h.RoomCount, &h.Location.Latitude, &h.Location.Longitude,
		&h.StaffUserID, &h.StaffEmail, &h.CreatedAt, &h.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *pgxRepository) CreateWithStaff(ctx context.Context, h *Hotel, staff *user.User) error {
	return db.InTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := user.Insert(ctx, tx, staff); err != nil {
			return err
		}

		query, args, err := psql.Insert("public.hotels").
			Columns("name", "room_count", "latitude", "longitude", "staff_user_id").
			Values(h.Name, h.RoomCount, h.Location.Latitude, h.Location.Longitude, staff.ID).
			Suffix("RETURNING id, created_at, updated_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("build create hotel query failed: %w", err)
		}

		if err := tx.QueryRow(ctx, query, args...).Scan(&h.ID, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return fmt.Errorf("create hotel failed: %w", err)
		}
		h.StaffUserID = staff.ID
		h.StaffEmail = staff.Email
		return nil
	})
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Hotel, error) {
	query, args, err := selectHotels().Where(squirrel.Eq{"h.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get hotel query failed: %w", err)
	}

	h, err := scanHotel(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get hotel failed: %w", err)
	}
	return h, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Hotel, int, error) {
	query, args, err := selectHotels().
		Column("count(*) OVER() AS total_count").
		OrderBy("h.created_at ASC", "h.id ASC").
		Limit(uint64(filter.Size)).
		Offset(request.Offset(filter.Page, filter.Size)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list hotels query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list hotels failed: %w", err)
	}
	defer rows.Close()

	var hotels []*Hotel
	var total int
	for rows.Next() {
		h, err := scanHotel(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan hotel failed: %w", err)
		}
		hotels = append(hotels, h)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list hotels failed: %w", err)
	}

	// An out of range page still reports the real total.
	if len(hotels) == 0 && filter.Page > 0 {
		total, err = r.count(ctx)
		if err != nil {
			return nil, 0, err
		}
	}
	return hotels, total, nil
}

func (r *pgxRepository) count(ctx context.Context) (int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, "SELECT count(*) FROM public.hotels").Scan(&total); err != nil {
		return 0, fmt.Errorf("count hotels failed: %w", err)
	}
	return total, nil
}

// lockHotel takes a row lock on the hotel for the rest of tx and returns its
// staff user id.
func lockHotel(ctx context.Context, tx pgx.Tx, id string) (string, error) {
	var staffID string
	err := tx.QueryRow(ctx,
		"SELECT staff_user_id FROM public.hotels WHERE id = $1 FOR UPDATE", id,
	).Scan(&staffID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("lock hotel failed: %w", err)
	}
	return staffID, nil
}

func (r *pgxRepository) Update(ctx context.Context, h *Hotel) error {
	return db.InTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := lockHotel(ctx, tx, h.ID); err != nil {
			return err
		}

		var rooms int
		if err := tx.QueryRow(ctx, "SELECT count(*) FROM public.rooms WHERE hotel_id = $1", h.ID).Scan(&rooms); err != nil {
			return fmt.Errorf("count rooms failed: %w", err)
		}
		if h.RoomCount < rooms {
			return ErrCapacityBelowRoomCount
		}

		query, args, err := psql.Update("public.hotels").
			Set("name", h.Name).
			Set("room_count", h.RoomCount).
			Set("latitude", h.Location.Latitude).
			Set("longitude", h.Location.Longitude).
			Set("updated_at", squirrel.Expr("now()")).
			Where(squirrel.Eq{"id": h.ID}).
			Suffix("RETURNING updated_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("build update hotel query failed: %w", err)
		}
		if err := tx.QueryRow(ctx, query, args...).Scan(&h.UpdatedAt); err != nil {
			return fmt.Errorf("update hotel failed: %w", err)
		}
		return nil
	})
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	return db.InTx(ctx, r.pool, func(tx pgx.Tx) error {
		staffID, err := lockHotel(ctx, tx, id)
		if err != nil {
			return err
		}

		steps := []struct {
			name string
			sql  string
			arg  string
		}{
			{"delete bookings", "DELETE FROM public.bookings WHERE hotel_id = $1", id},
			{"delete rooms", "DELETE FROM public.rooms WHERE hotel_id = $1", id},
			{"delete hotel", "DELETE FROM public.hotels WHERE id = $1", id},
			{"demote staff", "UPDATE public.users SET authority = '" + string(auth.AuthorityUser) + "' WHERE id = $1", staffID},
		}
		for _, step := range steps {
			if _, err := tx.Exec(ctx, step.sql, step.arg); err != nil {
				return fmt.Errorf("%s failed: %w", step.name, err)
			}
		}
		return nil
	})
}
