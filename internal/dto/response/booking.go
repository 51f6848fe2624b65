package response

import (
	"time"

	"hotel-booking/internal/data/entity"
)

type BookingResponse struct {
	ID         int64                `json:"id"`
	RoomID     int64                `json:"room_id"`
	GuestID    int64                `json:"guest_id"`
	CheckIn    string               `json:"check_in"`
	CheckOut   string               `json:"check_out"`
	TotalPrice float64              `json:"total_price"`
	NumGuests  int                  `json:"num_guests"`
	Status     entity.BookingStatus `json:"status"`
	CreatedAt  time.Time            `json:"created_at"`
	UpdatedAt  time.Time            `json:"updated_at"`
}

func BookingToResponse(booking *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:         booking.ID,
		RoomID:     booking.RoomID,
		GuestID:    booking.GuestID,
		CheckIn:    booking.CheckIn.Format("2006-01-02"),
		CheckOut:   booking.CheckOut.Format("2006-01-02"),
		TotalPrice: booking.TotalPrice,
		NumGuests:  booking.NumGuests,
		Status:     booking.Status,
		CreatedAt:  booking.CreatedAt,
		UpdatedAt:  booking.UpdatedAt,
	}
}

type AvailabilityResponse struct {
	RoomID    int64             `json:"room_id"`
	CheckIn   string            `json:"check_in"`
	CheckOut  string            `json:"check_out"`
	Available bool              `json:"available"`
	Conflicts []BookingResponse `json:"conflicts,omitempty"`
}

func BookingsToResponse(bookings []*entity.Booking) []BookingResponse {
	out := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		out[i] = BookingToResponse(b)
	}
	return out
}
