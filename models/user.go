package models

import "time"

// User là cấu trúc dữ liệu của một tài khoản người dùng.
// Trường Password chứa mật khẩu đã được băm (bcrypt), không bao giờ trả về qua JSON.
type User struct {
	ID        int64     `json:"user_id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	RoleID    int64     `json:"role_id"`
	RoleName  string    `json:"role_name,omitempty"`
	IsActive  bool      `json:"isactive"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RegisterRequest for creating a new account
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// LoginRequest for user authentication
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UpdateUserRoleRequest for the admin role-change endpoint
type UpdateUserRoleRequest struct {
	RoleID int64 `json:"role_id"`
}

// UpdateUserStatusRequest for the admin activate/deactivate endpoint
type UpdateUserStatusRequest struct {
	IsActive bool `json:"isactive"`
}
