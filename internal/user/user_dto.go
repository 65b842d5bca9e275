package user

type CreateUserRequest struct {
	EmployeeID *string `json:"employee_id" binding:"omitempty,uuid"`
	Name       string  `json:"name" binding:"required,max=255"`
	Email      string  `json:"email" binding:"required,email"`
	Password   string  `json:"password" binding:"required,min=8"`
	Role       string  `json:"role" binding:"required,oneof=ADMIN HR EMPLOYEE"`
}

type UpdateUserStatusRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

type UpdateUserRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=ADMIN HR EMPLOYEE"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

type UserResponse struct {
	ID             string  `json:"id"`
	EmployeeID     *string `json:"employee_id,omitempty"`
	EmployeeNumber string  `json:"employee_number,omitempty"`
	FullName       string  `json:"full_name,omitempty"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Role           string  `json:"role"`
	IsActive       bool    `json:"is_active"`
	LastLoginAt    *string `json:"last_login_at,omitempty"`
	CreatedAt      string  `json:"created_at"`
}
