package entity

import (
	"strings"
	"time"
)

type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusCheckedIn  BookingStatus = "checked_in"
	BookingStatusCheckedOut BookingStatus = "checked_out"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

// ActiveBookingStatuses are the statuses that occupy (or will occupy) a room.
var ActiveBookingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusConfirmed,
	BookingStatusCheckedIn,
}

// ParseBookingStatus accepts any casing ("PENDING", "pending").
func ParseBookingStatus(value string) (BookingStatus, error) {
	switch BookingStatus(strings.ToLower(value)) {
	case BookingStatusPending:
		return BookingStatusPending, nil
	case BookingStatusConfirmed:
		return BookingStatusConfirmed, nil
	case BookingStatusCheckedIn:
		return BookingStatusCheckedIn, nil
	case BookingStatusCheckedOut:
		return BookingStatusCheckedOut, nil
	case BookingStatusCancelled:
		return BookingStatusCancelled, nil
	default:
		return "", &InvalidBookingStatusError{Value: value}
	}
}

func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCheckedOut || s == BookingStatusCancelled
}

// CanTransitionTo reports whether the normal lifecycle allows moving from s
// to target. The admin status override bypasses this table.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	switch target {
	case BookingStatusConfirmed:
		return s == BookingStatusPending
	case BookingStatusCheckedIn:
		return s == BookingStatusConfirmed
	case BookingStatusCheckedOut:
		return s == BookingStatusCheckedIn
	case BookingStatusCancelled:
		return s == BookingStatusPending || s == BookingStatusConfirmed
	default:
		return false
	}
}

type Booking struct {
	ID         int64         `db:"id"`
	RoomID     int64         `db:"room_id"`
	GuestID    int64         `db:"guest_id"`
	CheckIn    time.Time     `db:"check_in"`
	CheckOut   time.Time     `db:"check_out"`
	TotalPrice float64       `db:"total_price"`
	NumGuests  int           `db:"num_guests"`
	Status     BookingStatus `db:"status"`
	CreatedAt  time.Time     `db:"created_at"`
	UpdatedAt  time.Time     `db:"updated_at"`
}

// IsActive reports whether the booking counts for room conflict checks.
// Cancelled and checked-out bookings never conflict.
func (b *Booking) IsActive() bool {
	for _, s := range ActiveBookingStatuses {
		if b.Status == s {
			return true
		}
	}
	return false
}

// Overlaps reports whether the stay intersects [checkIn, checkOut) under
// half-open semantics: a checkout on the same date as another check-in is
// not a conflict. Comparisons are date-only.
func (b *Booking) Overlaps(checkIn, checkOut time.Time) bool {
	return DateOnly(b.CheckIn).Before(DateOnly(checkOut)) &&
		DateOnly(b.CheckOut).After(DateOnly(checkIn))
}

// Nights returns the number of whole nights between check-in and check-out.
func (b *Booking) Nights() int {
	return int(DateOnly(b.CheckOut).Sub(DateOnly(b.CheckIn)) / (24 * time.Hour))
}

// DateOnly truncates a timestamp to its calendar date. Booking dates carry no
// authoritative time component, so every comparison goes through here.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
