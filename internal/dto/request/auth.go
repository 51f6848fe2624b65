package request

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	// Username accepts either the username or the account email.
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
