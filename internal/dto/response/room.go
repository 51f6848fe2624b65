package response

import "hotel-booking/internal/data/entity"

type RoomResponse struct {
	ID                      int64             `json:"id"`
	Number                  string            `json:"number"`
	Type                    string            `json:"type"`
	Capacity                int               `json:"capacity"`
	AllowedExtraGuests      int               `json:"allowed_extra_guests"`
	PricePerNight           float64           `json:"price_per_night"`
	ExtraGuestPricePerNight float64           `json:"extra_guest_price_per_night"`
	Status                  entity.RoomStatus `json:"status"`
}

func RoomToResponse(room *entity.Room) RoomResponse {
	return RoomResponse{
		ID:                      room.ID,
		Number:                  room.Number,
		Type:                    room.Type,
		Capacity:                room.Capacity,
		AllowedExtraGuests:      room.AllowedExtraGuests,
		PricePerNight:           room.PricePerNight,
		ExtraGuestPricePerNight: room.ExtraGuestPricePerNight,
		Status:                  room.Status,
	}
}

func RoomsToResponse(rooms []*entity.Room) []RoomResponse {
	out := make([]RoomResponse, len(rooms))
	for i, r := range rooms {
		out[i] = RoomToResponse(r)
	}
	return out
}
