// AngelaMos | 2026
// dto.go

package auth

import (
	"time"
)

const (
	ActionRegister = "register"
	ActionLogin    = "login"
)

type AuthRequest struct {
	Action   string `json:"action"   validate:"omitempty,oneof=register login"`
	Email    string `json:"email"    validate:"required,max=255"`
	Password string `json:"password" validate:"required,max=128"`
	Name     string `json:"name"     validate:"max=100"`
}

type UserResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Energy    int64     `json:"energy"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

type AuthResponse struct {
	Success bool         `json:"success"`
	User    UserResponse `json:"user"`
	Token   string       `json:"token"`
}

type ProfileResponse struct {
	Success bool         `json:"success"`
	User    UserResponse `json:"user"`
}

func ToUserResponse(u *UserInfo) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Energy:    u.Energy,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
	}
}
