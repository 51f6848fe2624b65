package entity

import (
	"strings"
	"time"
)

type RoomStatus string

const (
	RoomStatusAvailable   RoomStatus = "available"
	RoomStatusOccupied    RoomStatus = "occupied"
	RoomStatusMaintenance RoomStatus = "maintenance"
	RoomStatusUnavailable RoomStatus = "unavailable"
)

// ParseRoomStatus accepts any casing ("AVAILABLE", "available").
func ParseRoomStatus(value string) (RoomStatus, error) {
	switch RoomStatus(strings.ToLower(value)) {
	case RoomStatusAvailable:
		return RoomStatusAvailable, nil
	case RoomStatusOccupied:
		return RoomStatusOccupied, nil
	case RoomStatusMaintenance:
		return RoomStatusMaintenance, nil
	case RoomStatusUnavailable:
		return RoomStatusUnavailable, nil
	default:
		return "", &InvalidRoomStatusError{Value: value}
	}
}

type Room struct {
	ID                      int64      `db:"id"`
	Number                  string     `db:"number"`
	Type                    string     `db:"type"`
	Capacity                int        `db:"capacity"`
	AllowedExtraGuests      int        `db:"allowed_extra_guests"`
	PricePerNight           float64    `db:"price_per_night"`
	ExtraGuestPricePerNight float64    `db:"extra_guest_price_per_night"`
	Status                  RoomStatus `db:"status"`
	CreatedAt               time.Time  `db:"created_at"`
	UpdatedAt               time.Time  `db:"updated_at"`
}
