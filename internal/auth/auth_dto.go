package auth

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type AuthResponse struct {
	ID             string  `json:"id"`
	EmployeeID     *string `json:"employee_id,omitempty"`
	EmployeeNumber string  `json:"employee_number,omitempty"`
	Email          string  `json:"email"`
	Name           string  `json:"name"`
	Role           string  `json:"role"`
}

// TokenPair is what Login and RefreshToken hand back to the handler.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
