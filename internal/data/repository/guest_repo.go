package repository

import (
	"context"
	"fmt"

	"hotel-booking/internal/data/entity"
	"hotel-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type GuestRepository interface {
	Create(ctx context.Context, guest *entity.Guest) error
	FindByID(ctx context.Context, id int64) (*entity.Guest, error)
	FindByEmail(ctx context.Context, email string) (*entity.Guest, error)
	FindAll(ctx context.Context) ([]*entity.Guest, error)
	Update(ctx context.Context, guest *entity.Guest) error
	Delete(ctx context.Context, id int64) error
}

type guestRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewGuestRepository(db database.PgxIface, log *zap.Logger) GuestRepository {
	return &guestRepository{
		db:  db,
		log: log.With(zap.String("repository", "guest")),
	}
}

const guestColumns = `id, name, email, phone, created_at, updated_at`

func (r *guestRepository) Create(ctx context.Context, guest *entity.Guest) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO guests (name, email, phone, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		guest.Name,
		guest.Email,
		guest.Phone,
		guest.CreatedAt,
		guest.UpdatedAt,
	).Scan(&guest.ID)
	if err != nil {
		r.log.Error("Failed to create guest",
			zap.Error(err),
			zap.String("email", guest.Email),
		)
		return fmt.Errorf("create guest %s: %w", guest.Email, err)
	}

	return nil
}

func (r *guestRepository) FindByID(ctx context.Context, id int64) (*entity.Guest, error) {
	query := `SELECT ` + guestColumns + ` FROM guests WHERE id = $1`

	guest, err := scanGuest(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find guest by ID",
			zap.Error(err),
			zap.Int64("guest_id", id),
		)
		return nil, fmt.Errorf("find guest by ID %d: %w", id, err)
	}

	return guest, nil
}

func (r *guestRepository) FindByEmail(ctx context.Context, email string) (*entity.Guest, error) {
	query := `SELECT ` + guestColumns + ` FROM guests WHERE email = $1`

	guest, err := scanGuest(r.db.QueryRow(ctx, query, email))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find guest by email",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find guest by email %s: %w", email, err)
	}

	return guest, nil
}

func (r *guestRepository) FindAll(ctx context.Context) ([]*entity.Guest, error) {
	query := `SELECT ` + guestColumns + ` FROM guests ORDER BY name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find guests", zap.Error(err))
		return nil, fmt.Errorf("find all guests: %w", err)
	}
	defer rows.Close()

	var guests []*entity.Guest
	for rows.Next() {
		guest, err := scanGuest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan guest row: %w", err)
		}
		guests = append(guests, guest)
	}
	return guests, rows.Err()
}

func (r *guestRepository) Update(ctx context.Context, guest *entity.Guest) error {
	result, err := r.db.Exec(ctx,
		`UPDATE guests SET name = $2, email = $3, phone = $4, updated_at = $5 WHERE id = $1`,
		guest.ID,
		guest.Name,
		guest.Email,
		guest.Phone,
		guest.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update guest",
			zap.Error(err),
			zap.Int64("guest_id", guest.ID),
		)
		return fmt.Errorf("update guest %d: %w", guest.ID, err)
	}
	if result.RowsAffected() == 0 {
		return entity.ErrGuestNotFound
	}

	return nil
}

func (r *guestRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM guests WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete guest",
			zap.Error(err),
			zap.Int64("guest_id", id),
		)
		return fmt.Errorf("delete guest %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return entity.ErrGuestNotFound
	}

	r.log.Info("Guest deleted", zap.Int64("guest_id", id))
	return nil
}

func scanGuest(row pgx.Row) (*entity.Guest, error) {
	var guest entity.Guest
	err := row.Scan(
		&guest.ID,
		&guest.Name,
		&guest.Email,
		&guest.Phone,
		&guest.CreatedAt,
		&guest.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &guest, nil
}
