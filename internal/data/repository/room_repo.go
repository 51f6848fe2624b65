package repository

import (
	"context"
	"fmt"

	"hotel-booking/internal/data/entity"
	"hotel-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type RoomRepository interface {
	Create(ctx context.Context, room *entity.Room) error
	FindByID(ctx context.Context, id int64) (*entity.Room, error)
	FindAll(ctx context.Context) ([]*entity.Room, error)
	Update(ctx context.Context, room *entity.Room) error
	UpdateStatus(ctx context.Context, id int64, status entity.RoomStatus) error
	Delete(ctx context.Context, id int64) error
}

type roomRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRoomRepository(db database.PgxIface, log *zap.Logger) RoomRepository {
	return &roomRepository{
		db:  db,
		log: log.With(zap.String("repository", "room")),
	}
}

const roomColumns = `id, number, type, capacity, allowed_extra_guests, price_per_night, extra_guest_price_per_night, status, created_at, updated_at`

func (r *roomRepository) Create(ctx context.Context, room *entity.Room) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO rooms (number, type, capacity, allowed_extra_guests, price_per_night, extra_guest_price_per_night, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		room.Number,
		room.Type,
		room.Capacity,
		room.AllowedExtraGuests,
		room.PricePerNight,
		room.ExtraGuestPricePerNight,
		room.Status,
		room.CreatedAt,
		room.UpdatedAt,
	).Scan(&room.ID)
	if err != nil {
		r.log.Error("Failed to create room",
			zap.Error(err),
			zap.String("number", room.Number),
		)
		return fmt.Errorf("create room %s: %w", room.Number, err)
	}

	return nil
}

func (r *roomRepository) FindByID(ctx context.Context, id int64) (*entity.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE id = $1`

	room, err := scanRoom(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find room by ID",
			zap.Error(err),
			zap.Int64("room_id", id),
		)
		return nil, fmt.Errorf("find room by ID %d: %w", id, err)
	}

	return room, nil
}

func (r *roomRepository) FindAll(ctx context.Context) ([]*entity.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms ORDER BY number`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find rooms", zap.Error(err))
		return nil, fmt.Errorf("find all rooms: %w", err)
	}
	defer rows.Close()

	var rooms []*entity.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("scan room row: %w", err)
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

func (r *roomRepository) Update(ctx context.Context, room *entity.Room) error {
	result, err := r.db.Exec(ctx,
		`UPDATE rooms
		 SET number = $2, type = $3, capacity = $4, allowed_extra_guests = $5,
		     price_per_night = $6, extra_guest_price_per_night = $7, status = $8, updated_at = $9
		 WHERE id = $1`,
		room.ID,
		room.Number,
		room.Type,
		room.Capacity,
		room.AllowedExtraGuests,
		room.PricePerNight,
		room.ExtraGuestPricePerNight,
		room.Status,
		room.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update room",
			zap.Error(err),
			zap.Int64("room_id", room.ID),
		)
		return fmt.Errorf("update room %d: %w", room.ID, err)
	}
	if result.RowsAffected() == 0 {
		return entity.ErrRoomNotFound
	}

	return nil
}

func (r *roomRepository) UpdateStatus(ctx context.Context, id int64, status entity.RoomStatus) error {
	result, err := r.db.Exec(ctx,
		`UPDATE rooms SET status = $2, updated_at = NOW() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		r.log.Error("Failed to update room status",
			zap.Error(err),
			zap.Int64("room_id", id),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update room %d status to %s: %w", id, string(status), err)
	}
	if result.RowsAffected() == 0 {
		return entity.ErrRoomNotFound
	}

	return nil
}

func (r *roomRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete room",
			zap.Error(err),
			zap.Int64("room_id", id),
		)
		return fmt.Errorf("delete room %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return entity.ErrRoomNotFound
	}

	r.log.Info("Room deleted", zap.Int64("room_id", id))
	return nil
}

func scanRoom(row pgx.Row) (*entity.Room, error) {
	var room entity.Room
	err := row.Scan(
		&room.ID,
		&room.Number,
		&room.Type,
		&room.Capacity,
		&room.AllowedExtraGuests,
		&room.PricePerNight,
		&room.ExtraGuestPricePerNight,
		&room.Status,
		&room.CreatedAt,
		&room.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &room, nil
}
