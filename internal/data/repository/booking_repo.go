package repository

import (
	"context"
	"fmt"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	// Create inserts the booking after re-checking room availability inside
	// the same transaction. Assigns the store id on success.
	Create(ctx context.Context, booking *entity.Booking) error
	// Update rewrites the booking after re-checking availability, excluding
	// the booking's own row from the conflict comparison.
	Update(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id int64) (*entity.Booking, error)
	FindAll(ctx context.Context) ([]*entity.Booking, error)
	FindOverlapping(ctx context.Context, roomID int64, checkIn, checkOut time.Time, excludeID int64) ([]*entity.Booking, error)
	FindByGuestAndStatuses(ctx context.Context, guestID int64, statuses []entity.BookingStatus) ([]*entity.Booking, error)
	// UpdateStatus sets the status unconditionally (admin override path).
	UpdateStatus(ctx context.Context, id int64, status entity.BookingStatus) error
	// UpdateStatusFrom sets the status only if the current status is in from.
	// Returns false when the precondition no longer holds.
	UpdateStatusFrom(ctx context.Context, id int64, from []entity.BookingStatus, to entity.BookingStatus) (bool, error)
	Delete(ctx context.Context, id int64) error
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, room_id, guest_id, check_in, check_out, total_price, num_guests, status, created_at, updated_at`

// overlapQuery finds bookings that occupy the room for any part of
// [check_in, check_out). Half-open: back-to-back stays do not match.
// $5 = 0 means no booking is excluded.
const overlapQuery = `
	SELECT ` + bookingColumns + `
	FROM bookings
	WHERE room_id = $1
	  AND check_in < $2
	  AND check_out > $3
	  AND status = ANY($4)
	  AND ($5 = 0 OR id <> $5)
`

func statusStrings(statuses []entity.BookingStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create booking tx: %w", err)
	}
	defer tx.Rollback(ctx)

	// Serialize concurrent reservations on the same room so the overlap
	// check and the insert act as one unit. Two requests racing for the
	// same room queue here instead of both passing the check.
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, roomLockKey(booking.RoomID)); err != nil {
		return fmt.Errorf("lock room %d: %w", booking.RoomID, err)
	}

	var conflicts int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM bookings
		 WHERE room_id = $1 AND check_in < $2 AND check_out > $3 AND status = ANY($4)`,
		booking.RoomID, booking.CheckOut, booking.CheckIn,
		statusStrings(entity.ActiveBookingStatuses),
	).Scan(&conflicts)
	if err != nil {
		r.log.Error("Failed to check room availability",
			zap.Error(err),
			zap.Int64("room_id", booking.RoomID),
		)
		return fmt.Errorf("check availability for room %d: %w", booking.RoomID, err)
	}
	if conflicts > 0 {
		return entity.ErrRoomUnavailable
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO bookings (room_id, guest_id, check_in, check_out, total_price, num_guests, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		booking.RoomID,
		booking.GuestID,
		booking.CheckIn,
		booking.CheckOut,
		booking.TotalPrice,
		booking.NumGuests,
		booking.Status,
		booking.CreatedAt,
		booking.UpdatedAt,
	).Scan(&booking.ID)
	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.Int64("room_id", booking.RoomID),
			zap.Int64("guest_id", booking.GuestID),
		)
		return fmt.Errorf("create booking for guest %d: %w", booking.GuestID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create booking: %w", err)
	}

	return nil
}

func (r *bookingRepository) Update(ctx context.Context, booking *entity.Booking) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin update booking tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, roomLockKey(booking.RoomID)); err != nil {
		return fmt.Errorf("lock room %d: %w", booking.RoomID, err)
	}

	var conflicts int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM bookings
		 WHERE room_id = $1 AND check_in < $2 AND check_out > $3 AND status = ANY($4) AND id <> $5`,
		booking.RoomID, booking.CheckOut, booking.CheckIn,
		statusStrings(entity.ActiveBookingStatuses),
		booking.ID,
	).Scan(&conflicts)
	if err != nil {
		r.log.Error("Failed to check room availability",
			zap.Error(err),
			zap.Int64("room_id", booking.RoomID),
			zap.Int64("booking_id", booking.ID),
		)
		return fmt.Errorf("check availability for room %d: %w", booking.RoomID, err)
	}
	if conflicts > 0 {
		return entity.ErrRoomUnavailable
	}

	result, err := tx.Exec(ctx,
		`UPDATE bookings
		 SET room_id = $2, guest_id = $3, check_in = $4, check_out = $5,
		     total_price = $6, num_guests = $7, status = $8, updated_at = $9
		 WHERE id = $1`,
		booking.ID,
		booking.RoomID,
		booking.GuestID,
		booking.CheckIn,
		booking.CheckOut,
		booking.TotalPrice,
		booking.NumGuests,
		booking.Status,
		booking.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update booking",
			zap.Error(err),
			zap.Int64("booking_id", booking.ID),
		)
		return fmt.Errorf("update booking %d: %w", booking.ID, err)
	}
	if result.RowsAffected() == 0 {
		return entity.ErrBookingNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit update booking: %w", err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id int64) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.Int64("booking_id", id),
		)
		return nil, fmt.Errorf("find booking by ID %d: %w", id, err)
	}

	return booking, nil
}

func (r *bookingRepository) FindAll(ctx context.Context) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY check_in, id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find bookings", zap.Error(err))
		return nil, fmt.Errorf("find all bookings: %w", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

func (r *bookingRepository) FindOverlapping(ctx context.Context, roomID int64, checkIn, checkOut time.Time, excludeID int64) ([]*entity.Booking, error) {
	rows, err := r.db.Query(ctx, overlapQuery,
		roomID, checkOut, checkIn,
		statusStrings(entity.ActiveBookingStatuses),
		excludeID,
	)
	if err != nil {
		r.log.Error("Failed to find overlapping bookings",
			zap.Error(err),
			zap.Int64("room_id", roomID),
			zap.Time("check_in", checkIn),
			zap.Time("check_out", checkOut),
		)
		return nil, fmt.Errorf("find overlapping bookings for room %d: %w", roomID, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

func (r *bookingRepository) FindByGuestAndStatuses(ctx context.Context, guestID int64, statuses []entity.BookingStatus) ([]*entity.Booking, error) {
	if len(statuses) == 0 {
		return nil, nil
	}

	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE guest_id = $1 AND status = ANY($2) ORDER BY check_in`

	rows, err := r.db.Query(ctx, query, guestID, statusStrings(statuses))
	if err != nil {
		r.log.Error("Failed to find bookings by guest",
			zap.Error(err),
			zap.Int64("guest_id", guestID),
		)
		return nil, fmt.Errorf("find bookings for guest %d: %w", guestID, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id int64, status entity.BookingStatus) error {
	query := `UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.Int64("booking_id", id),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update booking %d status to %s: %w", id, string(status), err)
	}
	if result.RowsAffected() == 0 {
		return entity.ErrBookingNotFound
	}

	return nil
}

func (r *bookingRepository) UpdateStatusFrom(ctx context.Context, id int64, from []entity.BookingStatus, to entity.BookingStatus) (bool, error) {
	// Conditional single-row update: if the status changed since the caller
	// read it, zero rows land and the caller reports the stale precondition.
	query := `UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1 AND status = ANY($3)`

	result, err := r.db.Exec(ctx, query, id, to, statusStrings(from))
	if err != nil {
		r.log.Error("Failed to transition booking status",
			zap.Error(err),
			zap.Int64("booking_id", id),
			zap.String("status", string(to)),
		)
		return false, fmt.Errorf("transition booking %d to %s: %w", id, string(to), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *bookingRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete booking",
			zap.Error(err),
			zap.Int64("booking_id", id),
		)
		return fmt.Errorf("delete booking %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return entity.ErrBookingNotFound
	}

	r.log.Info("Booking deleted", zap.Int64("booking_id", id))
	return nil
}

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.RoomID,
		&booking.GuestID,
		&booking.CheckIn,
		&booking.CheckOut,
		&booking.TotalPrice,
		&booking.NumGuests,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func scanBookings(rows pgx.Rows) ([]*entity.Booking, error) {
	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}
	return bookings, rows.Err()
}
