package request

// Booking dates travel as calendar dates ("2006-01-02"); any time component
// is rejected at the boundary. Total price is never accepted from callers.
type CreateBookingRequest struct {
	RoomID    int64  `json:"room_id" validate:"required,min=1"`
	GuestID   int64  `json:"guest_id" validate:"required,min=1"`
	CheckIn   string `json:"check_in" validate:"required,datetime=2006-01-02"`
	CheckOut  string `json:"check_out" validate:"required,datetime=2006-01-02"`
	NumGuests int    `json:"num_guests" validate:"required,min=1"`
}

type UpdateBookingRequest struct {
	RoomID    int64  `json:"room_id" validate:"required,min=1"`
	GuestID   int64  `json:"guest_id" validate:"required,min=1"`
	CheckIn   string `json:"check_in" validate:"required,datetime=2006-01-02"`
	CheckOut  string `json:"check_out" validate:"required,datetime=2006-01-02"`
	NumGuests int    `json:"num_guests" validate:"required,min=1"`
}

type SetBookingStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
