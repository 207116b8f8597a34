package dto

// RegisterRequest is used for incoming registration requests.
type RegisterRequest struct {
	Email       string  `json:"email" validate:"required,email"`
	Password    string  `json:"password" validate:"required,min=6"`
	DisplayName *string `json:"displayName" validate:"omitempty,min=1,max=100"`
}

// LoginRequest is used for incoming login requests.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned after a successful registration or login. The
// identity field is keyed uid, unlike usage/score records which reference
// their owner as userId.
type AuthResponse struct {
	UID         string  `json:"uid"`
	Email       string  `json:"email"`
	DisplayName *string `json:"displayName,omitempty"`
	Token       string  `json:"token"`
}

// VerifyTokenResponse is returned when a presented token checks out.
type VerifyTokenResponse struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	Valid bool   `json:"valid"`
}
