package dto

type AdminLogin struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
}

type SessionResponse struct {
	AdminID uint    `json:"admin_id"`
	Email   string  `json:"email"`
	Iat     float64 `json:"iat"`
	Expiry  float64 `json:"expiry"`
}
