package entity

import (
	"errors"
	"fmt"
)

// Domain errors. Every failed invariant surfaces as one of these so the
// request layer can map them 1:1 to response codes.
var (
	ErrValidation            = errors.New("validation failed")
	ErrInvalidDateRange      = errors.New("check-in date must be before check-out date")
	ErrRoomUnavailable       = errors.New("room is not available for the requested dates")
	ErrGuestHasActiveBooking = errors.New("guest already has an active booking")
	ErrCapacityExceeded      = errors.New("number of guests exceeds room capacity")

	ErrNotPendingBooking   = errors.New("booking is not pending")
	ErrNotConfirmedBooking = errors.New("booking is not confirmed")
	ErrNotCheckedInBooking = errors.New("booking is not checked in")
	ErrInvalidCheckInDate  = errors.New("check-in is only allowed between the booked dates")

	ErrCannotCancelAfterCheckIn = errors.New("cannot cancel booking after check-in")
	ErrCannotCancelWithinWindow = errors.New("cannot cancel booking less than 24 hours before check-in")

	ErrBookingNotFound = errors.New("booking not found")
	ErrRoomNotFound    = errors.New("room not found")
	ErrGuestNotFound   = errors.New("guest not found")

	ErrInvalidRoomPrice = errors.New("room price must be greater than zero")
)

// InvalidBookingStatusError carries the offending value for diagnostics.
type InvalidBookingStatusError struct {
	Value string
}

func (e *InvalidBookingStatusError) Error() string {
	return fmt.Sprintf("invalid booking status: %s", e.Value)
}

type InvalidRoomStatusError struct {
	Value string
}

func (e *InvalidRoomStatusError) Error() string {
	return fmt.Sprintf("invalid room status: %s", e.Value)
}
