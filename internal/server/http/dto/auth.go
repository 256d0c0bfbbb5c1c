package dto

// RegisterRequest describes the signup payload.
type RegisterRequest struct {
	Login        string `json:"login"`
	Password     string `json:"password"`
	Role         string `json:"role"`
	FullName     string `json:"full_name"`
	Phone        string `json:"phone"`
	VehiclePlate string `json:"vehicle_plate"`
}

// AuthRequest describes login/password payload.
type AuthRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// TokenResponse is returned after successful register/login.
type TokenResponse struct {
	OK    bool   `json:"ok"`
	Token string `json:"token"`
}

// ProfileResponse describes the caller's own profile.
type ProfileResponse struct {
	ID           int64   `json:"id"`
	Role         string  `json:"role"`
	FullName     string  `json:"full_name"`
	Phone        string  `json:"phone"`
	VehiclePlate *string `json:"vehicle_plate,omitempty"`
}
