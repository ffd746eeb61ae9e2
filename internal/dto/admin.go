// File: internal/dto/admin.go
package dto

import "time"

// RegisterRequest 註冊管理員
// swagger:model dto.RegisterRequest
type RegisterRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email,max=64" example:"alice@example.com"`
	Name     string `json:"name" form:"name" validate:"required" example:"Alice"`
	Password string `json:"password" form:"password" validate:"required,min=8" example:"Secret123!"`
}

// LoginRequest 管理員登入
// swagger:model dto.LoginRequest
type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email" example:"alice@example.com"`
	Password string `json:"password" form:"password" validate:"required" example:"Secret123!"`
}

// swagger:model dto.AdminResponse
type AdminResponse struct {
	ID        int       `json:"id" example:"1"`
	Email     string    `json:"email" example:"alice@example.com"`
	Name      string    `json:"name" example:"Alice"`
	CreatedAt time.Time `json:"created_at" example:"2025-05-01T15:04:05Z"`
}

// AuthResponse is returned by register and login.
// swagger:model dto.AuthResponse
type AuthResponse struct {
	Data  AdminResponse `json:"data"`
	Token string        `json:"token" example:"eyJhbGciOi..."`
}
