package repository

import (
	"hotel-booking/pkg/database"

	"go.uber.org/zap"
)

// advisoryKeyRoom namespaces the per-room advisory locks so they cannot
// collide with other advisory lock users on the same database.
const advisoryKeyRoom = int64(1)

// roomLockKey folds the namespace and the room id into one bigint for the
// single-argument form of pg_advisory_xact_lock. The two-argument form takes
// (int4, int4) and would reject an int8 room id.
func roomLockKey(roomID int64) int64 {
	return advisoryKeyRoom<<32 | (roomID & 0xFFFFFFFF)
}

type Repository struct {
	User    UserRepository
	Session SessionRepository
	Room    RoomRepository
	Guest   GuestRepository
	Booking BookingRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:    NewUserRepository(db, log),
		Session: NewSessionRepository(db, log),
		Room:    NewRoomRepository(db, log),
		Guest:   NewGuestRepository(db, log),
		Booking: NewBookingRepository(db, log),
	}
}
