package room

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/hotel-booking-backend/internal/db"
	"github.com/nekogravitycat/hotel-booking-backend/internal/hotel"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/request"
)

// Repository defines methods for accessing room data.
type Repository interface {
	// Create fails with ErrHotelMaximumRoomCount once the hotel holds as many
	// rooms as its capacity. The count and insert run under a hotel row lock.
	Create(ctx context.Context, r *Room) error
	GetByID(ctx context.Context, id string) (*Room, error)
	List(ctx context.Context, hotelID string, filter Filter) ([]*Room, int, error)
	ListByStatus(ctx context.Context, hotelID string, status Status) ([]*Room, error)
	Update(ctx context.Context, r *Room) error
	// Delete removes the room and its bookings in one transaction.
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a new room repository.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var roomColumns = []string{"id", "hotel_id", "room_number", "type", "price", "status", "created_at", "updated_at"}

func scanRoom(row pgx.Row, extra ...any) (*Room, error) {
	var r Room
	var typ, status string
	dest := []any{&r.ID, &r.HotelID, &r.Number, &typ, &r.Price, &status, &r.CreatedAt, &r.UpdatedAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	r.Type = Type(typ)
	r.Status = Status(status)
	return &r, nil
}

func (repo *pgxRepository) Create(ctx context.Context, r *Room) error {
	return db.InTx(ctx, repo.pool, func(tx pgx.Tx) error {
		var capacity, existing int
		err := tx.QueryRow(ctx,
			"SELECT room_count FROM public.hotels WHERE id = $1 FOR UPDATE", r.HotelID,
		).Scan(&capacity)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return hotel.ErrNotFound
			}
			return fmt.Errorf("lock hotel failed: %w", err)
		}

		if err := tx.QueryRow(ctx, "SELECT count(*) FROM public.rooms WHERE hotel_id = $1", r.HotelID).Scan(&existing); err != nil {
			return fmt.Errorf("count rooms failed: %w", err)
		}
		if existing >= capacity {
			return ErrHotelMaximumRoomCount
		}

		query, args, err := psql.Insert("public.rooms").
			Columns("hotel_id", "room_number", "type", "price", "status").
			Values(r.HotelID, r.Number, string(r.Type), r.Price, string(r.Status)).
			Suffix("RETURNING id, created_at, updated_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("build create room query failed: %w", err)
		}

		if err := tx.QueryRow(ctx, query, args...).Scan(&r.ID, &r.CreatedAt, &r.UpdatedAt); err != nil {
			if db.IsUniqueViolation(err, db.ConstraintRoomNumber) {
				return ErrAlreadyExists
			}
			return fmt.Errorf("create room failed: %w", err)
		}
		return nil
	})
}

func (repo *pgxRepository) GetByID(ctx context.Context, id string) (*Room, error) {
	query, args, err := psql.Select(roomColumns...).
		From("public.rooms").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get room query failed: %w", err)
	}

	r, err := scanRoom(repo.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get room failed: %w", err)
	}
	return r, nil
}

func (repo *pgxRepository) List(ctx context.Context, hotelID string, filter Filter) ([]*Room, int, error) {
	query, args, err := psql.Select(append(roomColumns, "count(*) OVER() AS total_count")...).
		From("public.rooms").
		Where(squirrel.Eq{"hotel_id": hotelID}).
		OrderBy("room_number ASC").
		Limit(uint64(filter.Size)).
		Offset(request.Offset(filter.Page, filter.Size)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list rooms query failed: %w", err)
	}

	rows, err := repo.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list rooms failed: %w", err)
	}
	defer rows.Close()

	var rooms []*Room
	var total int
	for rows.Next() {
		r, err := scanRoom(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan room failed: %w", err)
		}
		rooms = append(rooms, r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list rooms failed: %w", err)
	}
	return rooms, total, nil
}

func (repo *pgxRepository) ListByStatus(ctx context.Context, hotelID string, status Status) ([]*Room, error) {
	query, args, err := psql.Select(roomColumns...).
		From("public.rooms").
		Where(squirrel.Eq{"hotel_id": hotelID, "status": string(status)}).
		OrderBy("room_number ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list rooms by status query failed: %w", err)
	}

	rows, err := repo.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list rooms by status failed: %w", err)
	}
	defer rows.Close()

	var rooms []*Room
	for rows.Next() {
		r, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("scan room failed: %w", err)
		}
		rooms = append(rooms, r)
	}
	return rooms, rows.Err()
}

func (repo *pgxRepository) Update(ctx context.Context, r *Room) error {
	query, args, err := psql.Update("public.rooms").
		Set("room_number", r.Number).
		Set("type", string(r.Type)).
		Set("price", r.Price).
		Set("status", string(r.Status)).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": r.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update room query failed: %w", err)
	}

	if err := repo.pool.QueryRow(ctx, query, args...).Scan(&r.UpdatedAt); err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return ErrNotFound
		case db.IsUniqueViolation(err, db.ConstraintRoomNumber):
			return ErrAlreadyExists
		}
		return fmt.Errorf("update room failed: %w", err)
	}
	return nil
}

func (repo *pgxRepository) Delete(ctx context.Context, id string) error {
	return db.InTx(ctx, repo.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "DELETE FROM public.bookings WHERE room_id = $1", id); err != nil {
			return fmt.Errorf("delete room bookings failed: %w", err)
		}

		ct, err := tx.Exec(ctx, "DELETE FROM public.rooms WHERE id = $1", id)
		if err != nil {
			return fmt.Errorf("delete room failed: %w", err)
		}
		if ct.RowsAffected() == 0 {
			return ErrNotFound
		}
		return nil
	})
}
