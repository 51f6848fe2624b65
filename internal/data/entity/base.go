package entity

import (
	"time"

	"github.com/google/uuid"
)

// Base is shared by the account entities (users, sessions), which keep UUID
// identifiers. Hotel rows (rooms, guests, bookings) use store-assigned
// bigserial ids instead.
type Base struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type BaseSimple struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
}
