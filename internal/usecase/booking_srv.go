package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/dto/response"
	"hotel-booking/pkg/utils"

	"go.uber.org/zap"
)

// cancelWindow is the minimum lead time before check-in for a cancellation.
const cancelWindow = 24 * time.Hour

const dateLayout = "2006-01-02"

// BookingService is the reservation engine. Every mutating operation runs
// validate -> conflict/capacity -> price -> persist -> room side effect.
type BookingService interface {
	CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	UpdateBooking(ctx context.Context, id int64, req *request.UpdateBookingRequest) (*response.BookingResponse, error)
	ConfirmBooking(ctx context.Context, id int64) (*response.BookingResponse, error)
	CheckInBooking(ctx context.Context, id int64) (*response.BookingResponse, error)
	CheckOutBooking(ctx context.Context, id int64) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, id int64) (*response.BookingResponse, error)
	// SetBookingStatus is the admin override: no precondition on the source
	// state, but the target must parse and side effects still apply.
	SetBookingStatus(ctx context.Context, id int64, status string) (*response.BookingResponse, error)

	GetBookingByID(ctx context.Context, id int64) (*response.BookingResponse, error)
	GetAllBookings(ctx context.Context) ([]response.BookingResponse, error)
	// CheckAvailability is the read-only conflict probe. The answer is
	// advisory: only the transactional create/update decides for real.
	CheckAvailability(ctx context.Context, roomID int64, checkInStr, checkOutStr string) (*response.AvailabilityResponse, error)
	GetGuestBookings(ctx context.Context, guestID int64, statuses []string) ([]response.BookingResponse, error)
	// DeleteBooking removes the row entirely, bypassing the lifecycle.
	// Reserved for data correction, not business flow.
	DeleteBooking(ctx context.Context, id int64) error
}

type bookingService struct {
	repo  *repository.Repository
	log   *zap.Logger
	clock Clock
}

func NewBookingService(repo *repository.Repository, log *zap.Logger) BookingService {
	return &bookingService{
		repo:  repo,
		log:   log.With(zap.String("service", "booking")),
		clock: systemClock{},
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", entity.ErrValidation, utils.FormatValidationErrors(errs))
	}

	guest, err := s.repo.Guest.FindByID(ctx, req.GuestID)
	if err != nil {
		return nil, fmt.Errorf("check guest %d: %w", req.GuestID, err)
	}
	if guest == nil {
		return nil, entity.ErrGuestNotFound
	}

	// One active stay per guest. Applies on create only.
	active, err := s.repo.Booking.FindByGuestAndStatuses(ctx, req.GuestID, entity.ActiveBookingStatuses)
	if err != nil {
		return nil, fmt.Errorf("check active bookings for guest %d: %w", req.GuestID, err)
	}
	if len(active) > 0 {
		s.log.Warn("Guest has active booking", zap.Int64("guest_id", req.GuestID))
		return nil, entity.ErrGuestHasActiveBooking
	}

	checkIn, checkOut, totalPrice, err := s.prepareStay(ctx, req.RoomID, req.CheckIn, req.CheckOut, req.NumGuests)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	booking := &entity.Booking{
		RoomID:     req.RoomID,
		GuestID:    req.GuestID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		TotalPrice: totalPrice,
		NumGuests:  req.NumGuests,
		Status:     entity.BookingStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	// Availability is re-checked and committed in one transaction; a
	// concurrent reservation for the same room surfaces here as
	// ErrRoomUnavailable rather than a double booking.
	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		if errors.Is(err, entity.ErrRoomUnavailable) {
			s.log.Warn("Room unavailable",
				zap.Int64("room_id", req.RoomID),
				zap.String("check_in", req.CheckIn),
				zap.String("check_out", req.CheckOut),
			)
			return nil, err
		}
		s.log.Error("Failed to create booking",
			zap.Error(err),
			zap.Int64("room_id", req.RoomID),
			zap.Int64("guest_id", req.GuestID),
		)
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("Booking created",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("room_id", booking.RoomID),
		zap.Int64("guest_id", booking.GuestID),
		zap.Int("nights", booking.Nights()),
		zap.Float64("total_price", booking.TotalPrice),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) UpdateBooking(ctx context.Context, id int64, req *request.UpdateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", entity.ErrValidation, utils.FormatValidationErrors(errs))
	}

	existing, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking %d: %w", id, err)
	}
	if existing == nil {
		return nil, entity.ErrBookingNotFound
	}

	checkIn, checkOut, totalPrice, err := s.prepareStay(ctx, req.RoomID, req.CheckIn, req.CheckOut, req.NumGuests)
	if err != nil {
		return nil, err
	}

	booking := &entity.Booking{
		ID:         existing.ID,
		RoomID:     req.RoomID,
		GuestID:    req.GuestID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		TotalPrice: totalPrice,
		NumGuests:  req.NumGuests,
		Status:     existing.Status,
		CreatedAt:  existing.CreatedAt,
		UpdatedAt:  s.clock.Now(),
	}

	// The conflict check excludes the booking's own row.
	if err := s.repo.Booking.Update(ctx, booking); err != nil {
		if errors.Is(err, entity.ErrRoomUnavailable) || errors.Is(err, entity.ErrBookingNotFound) {
			return nil, err
		}
		s.log.Error("Failed to update booking", zap.Error(err), zap.Int64("booking_id", id))
		return nil, fmt.Errorf("update booking: %w", err)
	}

	s.log.Info("Booking updated",
		zap.Int64("booking_id", booking.ID),
		zap.Float64("total_price", booking.TotalPrice),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) ConfirmBooking(ctx context.Context, id int64) (*response.BookingResponse, error) {
	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking %d: %w", id, err)
	}
	if booking == nil {
		return nil, entity.ErrBookingNotFound
	}

	moved, err := s.repo.Booking.UpdateStatusFrom(ctx, id,
		[]entity.BookingStatus{entity.BookingStatusPending}, entity.BookingStatusConfirmed)
	if err != nil {
		return nil, fmt.Errorf("confirm booking %d: %w", id, err)
	}
	if !moved {
		s.log.Warn("Cannot confirm booking not pending",
			zap.Int64("booking_id", id),
			zap.String("status", string(booking.Status)),
		)
		return nil, entity.ErrNotPendingBooking
	}

	s.setRoomStatus(ctx, booking.RoomID, entity.RoomStatusOccupied)

	s.log.Info("Booking confirmed", zap.Int64("booking_id", id))

	booking.Status = entity.BookingStatusConfirmed
	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) CheckInBooking(ctx context.Context, id int64) (*response.BookingResponse, error) {
	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking %d: %w", id, err)
	}
	if booking == nil {
		return nil, entity.ErrBookingNotFound
	}

	if booking.Status != entity.BookingStatusConfirmed {
		s.log.Warn("Cannot check in booking not confirmed",
			zap.Int64("booking_id", id),
			zap.String("status", string(booking.Status)),
		)
		return nil, entity.ErrNotConfirmedBooking
	}

	// Check-in is allowed on any date of the stay, endpoints included.
	today := entity.DateOnly(s.clock.Now())
	if today.Before(entity.DateOnly(booking.CheckIn)) || today.After(entity.DateOnly(booking.CheckOut)) {
		s.log.Warn("Check-in outside booked dates",
			zap.Int64("booking_id", id),
			zap.Time("check_in", booking.CheckIn),
			zap.Time("check_out", booking.CheckOut),
		)
		return nil, entity.ErrInvalidCheckInDate
	}

	moved, err := s.repo.Booking.UpdateStatusFrom(ctx, id,
		[]entity.BookingStatus{entity.BookingStatusConfirmed}, entity.BookingStatusCheckedIn)
	if err != nil {
		return nil, fmt.Errorf("check in booking %d: %w", id, err)
	}
	if !moved {
		return nil, entity.ErrNotConfirmedBooking
	}

	s.log.Info("Booking checked in", zap.Int64("booking_id", id))

	booking.Status = entity.BookingStatusCheckedIn
	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) CheckOutBooking(ctx context.Context, id int64) (*response.BookingResponse, error) {
	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking %d: %w", id, err)
	}
	if booking == nil {
		return nil, entity.ErrBookingNotFound
	}

	moved, err := s.repo.Booking.UpdateStatusFrom(ctx, id,
		[]entity.BookingStatus{entity.BookingStatusCheckedIn}, entity.BookingStatusCheckedOut)
	if err != nil {
		return nil, fmt.Errorf("check out booking %d: %w", id, err)
	}
	if !moved {
		s.log.Warn("Cannot check out booking not checked in",
			zap.Int64("booking_id", id),
			zap.String("status", string(booking.Status)),
		)
		return nil, entity.ErrNotCheckedInBooking
	}

	s.setRoomStatus(ctx, booking.RoomID, entity.RoomStatusAvailable)

	s.log.Info("Booking checked out", zap.Int64("booking_id", id))

	booking.Status = entity.BookingStatusCheckedOut
	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, id int64) (*response.BookingResponse, error) {
	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking %d: %w", id, err)
	}
	if booking == nil {
		return nil, entity.ErrBookingNotFound
	}

	if booking.Status == entity.BookingStatusCheckedIn || booking.Status == entity.BookingStatusCheckedOut {
		s.log.Warn("Cannot cancel booking after check-in",
			zap.Int64("booking_id", id),
			zap.String("status", string(booking.Status)),
		)
		return nil, entity.ErrCannotCancelAfterCheckIn
	}

	if entity.DateOnly(booking.CheckIn).Sub(s.clock.Now()) < cancelWindow {
		s.log.Warn("Cancellation inside 24h window",
			zap.Int64("booking_id", id),
			zap.Time("check_in", booking.CheckIn),
		)
		return nil, entity.ErrCannotCancelWithinWindow
	}

	moved, err := s.repo.Booking.UpdateStatusFrom(ctx, id,
		[]entity.BookingStatus{entity.BookingStatusPending, entity.BookingStatusConfirmed},
		entity.BookingStatusCancelled)
	if err != nil {
		return nil, fmt.Errorf("cancel booking %d: %w", id, err)
	}
	if !moved {
		return nil, entity.ErrCannotCancelAfterCheckIn
	}

	s.releaseRoomIfOccupied(ctx, booking.RoomID)

	s.log.Info("Booking cancelled", zap.Int64("booking_id", id))

	booking.Status = entity.BookingStatusCancelled
	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) SetBookingStatus(ctx context.Context, id int64, status string) (*response.BookingResponse, error) {
	target, err := entity.ParseBookingStatus(status)
	if err != nil {
		s.log.Warn("Invalid booking status", zap.String("status", status))
		return nil, err
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking %d: %w", id, err)
	}
	if booking == nil {
		return nil, entity.ErrBookingNotFound
	}

	if err := s.repo.Booking.UpdateStatus(ctx, id, target); err != nil {
		if errors.Is(err, entity.ErrBookingNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("set booking %d status: %w", id, err)
	}

	// Mirror the side effects of the normal transitions.
	switch target {
	case entity.BookingStatusConfirmed:
		s.setRoomStatus(ctx, booking.RoomID, entity.RoomStatusOccupied)
	case entity.BookingStatusCheckedOut:
		s.setRoomStatus(ctx, booking.RoomID, entity.RoomStatusAvailable)
	case entity.BookingStatusCancelled:
		s.releaseRoomIfOccupied(ctx, booking.RoomID)
	}

	s.log.Info("Booking status overridden",
		zap.Int64("booking_id", id),
		zap.String("from", string(booking.Status)),
		zap.String("to", string(target)),
	)

	booking.Status = target
	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, id int64) (*response.BookingResponse, error) {
	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking %d: %w", id, err)
	}
	if booking == nil {
		return nil, entity.ErrBookingNotFound
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetAllBookings(ctx context.Context) ([]response.BookingResponse, error) {
	bookings, err := s.repo.Booking.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get all bookings: %w", err)
	}

	return response.BookingsToResponse(bookings), nil
}

func (s *bookingService) CheckAvailability(ctx context.Context, roomID int64, checkInStr, checkOutStr string) (*response.AvailabilityResponse, error) {
	checkIn, err := time.Parse(dateLayout, checkInStr)
	if err != nil {
		return nil, entity.ErrInvalidDateRange
	}
	checkOut, err := time.Parse(dateLayout, checkOutStr)
	if err != nil {
		return nil, entity.ErrInvalidDateRange
	}
	if !checkIn.Before(checkOut) {
		return nil, entity.ErrInvalidDateRange
	}

	room, err := s.repo.Room.FindByID(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("find room %d: %w", roomID, err)
	}
	if room == nil {
		return nil, entity.ErrRoomNotFound
	}

	conflicts, err := s.repo.Booking.FindOverlapping(ctx, roomID, checkIn, checkOut, 0)
	if err != nil {
		return nil, fmt.Errorf("check availability for room %d: %w", roomID, err)
	}

	return &response.AvailabilityResponse{
		RoomID:    roomID,
		CheckIn:   checkIn.Format(dateLayout),
		CheckOut:  checkOut.Format(dateLayout),
		Available: len(conflicts) == 0,
		Conflicts: response.BookingsToResponse(conflicts),
	}, nil
}

func (s *bookingService) GetGuestBookings(ctx context.Context, guestID int64, statuses []string) ([]response.BookingResponse, error) {
	set := entity.ActiveBookingStatuses
	if len(statuses) > 0 {
		set = make([]entity.BookingStatus, len(statuses))
		for i, raw := range statuses {
			status, err := entity.ParseBookingStatus(raw)
			if err != nil {
				return nil, err
			}
			set[i] = status
		}
	}

	bookings, err := s.repo.Booking.FindByGuestAndStatuses(ctx, guestID, set)
	if err != nil {
		return nil, fmt.Errorf("get bookings for guest %d: %w", guestID, err)
	}

	return response.BookingsToResponse(bookings), nil
}

func (s *bookingService) DeleteBooking(ctx context.Context, id int64) error {
	if err := s.repo.Booking.Delete(ctx, id); err != nil {
		if errors.Is(err, entity.ErrBookingNotFound) {
			return err
		}
		return fmt.Errorf("delete booking %d: %w", id, err)
	}

	s.log.Info("Booking hard-deleted", zap.Int64("booking_id", id))
	return nil
}

// prepareStay validates the interval, enforces capacity against the room,
// and computes the server-side price. Client-supplied prices are never read.
func (s *bookingService) prepareStay(ctx context.Context, roomID int64, checkInStr, checkOutStr string, numGuests int) (time.Time, time.Time, float64, error) {
	var zero time.Time

	checkIn, err := time.Parse(dateLayout, checkInStr)
	if err != nil {
		return zero, zero, 0, entity.ErrInvalidDateRange
	}
	checkOut, err := time.Parse(dateLayout, checkOutStr)
	if err != nil {
		return zero, zero, 0, entity.ErrInvalidDateRange
	}

	if !checkIn.Before(checkOut) {
		return zero, zero, 0, entity.ErrInvalidDateRange
	}
	if !entity.DateOnly(checkOut).After(entity.DateOnly(s.clock.Now())) {
		return zero, zero, 0, entity.ErrInvalidDateRange
	}

	room, err := s.repo.Room.FindByID(ctx, roomID)
	if err != nil {
		return zero, zero, 0, fmt.Errorf("find room %d: %w", roomID, err)
	}
	if room == nil {
		return zero, zero, 0, entity.ErrRoomNotFound
	}

	extraGuests := numGuests - room.Capacity
	if extraGuests < 0 {
		extraGuests = 0
	}
	if extraGuests > room.AllowedExtraGuests {
		s.log.Warn("Capacity exceeded",
			zap.Int64("room_id", roomID),
			zap.Int("num_guests", numGuests),
			zap.Int("extra_guests", extraGuests),
		)
		return zero, zero, 0, entity.ErrCapacityExceeded
	}

	nights := int(entity.DateOnly(checkOut).Sub(entity.DateOnly(checkIn)) / (24 * time.Hour))
	if nights <= 0 {
		return zero, zero, 0, entity.ErrInvalidDateRange
	}

	total := room.PricePerNight*float64(nights) +
		float64(extraGuests)*room.ExtraGuestPricePerNight*float64(nights)

	// Rounded to currency precision once, at the boundary.
	return checkIn, checkOut, roundToCents(total), nil
}

// setRoomStatus applies a room side effect after a committed transition.
// Best effort: a failure is logged, never rolled back into the booking.
func (s *bookingService) setRoomStatus(ctx context.Context, roomID int64, status entity.RoomStatus) {
	if err := s.repo.Room.UpdateStatus(ctx, roomID, status); err != nil {
		s.log.Warn("Room status side effect failed, booking state is authoritative",
			zap.Error(err),
			zap.Int64("room_id", roomID),
			zap.String("status", string(status)),
		)
	}
}

// releaseRoomIfOccupied flips the room back to available only when a prior
// confirmation had marked it occupied.
func (s *bookingService) releaseRoomIfOccupied(ctx context.Context, roomID int64) {
	room, err := s.repo.Room.FindByID(ctx, roomID)
	if err != nil || room == nil {
		s.log.Warn("Could not read room for release", zap.Error(err), zap.Int64("room_id", roomID))
		return
	}
	if room.Status == entity.RoomStatusOccupied {
		s.setRoomStatus(ctx, roomID, entity.RoomStatusAvailable)
	}
}

func roundToCents(v float64) float64 {
	return math.Round(v*100) / 100
}
