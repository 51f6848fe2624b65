package response

import "hotel-booking/internal/data/entity"

type GuestResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func GuestToResponse(guest *entity.Guest) GuestResponse {
	return GuestResponse{
		ID:    guest.ID,
		Name:  guest.Name,
		Email: guest.Email,
		Phone: guest.Phone,
	}
}

func GuestsToResponse(guests []*entity.Guest) []GuestResponse {
	out := make([]GuestResponse, len(guests))
	for i, g := range guests {
		out[i] = GuestToResponse(g)
	}
	return out
}
