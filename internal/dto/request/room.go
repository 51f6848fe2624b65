package request

type CreateRoomRequest struct {
	Number                  string  `json:"number" validate:"required"`
	Type                    string  `json:"type" validate:"required"`
	Capacity                int     `json:"capacity" validate:"required,min=1"`
	AllowedExtraGuests      int     `json:"allowed_extra_guests" validate:"min=0"`
	PricePerNight           float64 `json:"price_per_night" validate:"required,gt=0"`
	ExtraGuestPricePerNight float64 `json:"extra_guest_price_per_night" validate:"min=0"`
}

type UpdateRoomRequest struct {
	Number                  string  `json:"number" validate:"required"`
	Type                    string  `json:"type" validate:"required"`
	Capacity                int     `json:"capacity" validate:"required,min=1"`
	AllowedExtraGuests      int     `json:"allowed_extra_guests" validate:"min=0"`
	PricePerNight           float64 `json:"price_per_night" validate:"required,gt=0"`
	ExtraGuestPricePerNight float64 `json:"extra_guest_price_per_night" validate:"min=0"`
}

type SetRoomStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
