// file: internals/features/users/user/dto/user_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	m "trainingcenter_backend/internals/features/users/user/model"
)

/* =========================================================
 * REQUESTS
 * ========================================================= */

type RegisterUserRequest struct {
	UserName     string  `json:"user_name" validate:"required,min=2,max=100"`
	UserEmail    string  `json:"user_email" validate:"required,email,max=255"`
	UserPassword string  `json:"user_password" validate:"required,min=8,max=72"`
	UserRole     string  `json:"user_role" validate:"omitempty,oneof=admin instructor student"`
	UserPhone    *string `json:"user_phone" validate:"omitempty,max=30"`
}

type LoginRequest struct {
	UserEmail    string `json:"user_email" validate:"required,email"`
	UserPassword string `json:"user_password" validate:"required"`
}

/* =========================================================
 * RESPONSE
 * ========================================================= */

type UserResponse struct {
	UserID        uuid.UUID `json:"user_id"`
	UserName      string    `json:"user_name"`
	UserEmail     string    `json:"user_email"`
	UserRole      string    `json:"user_role"`
	UserPhone     *string   `json:"user_phone,omitempty"`
	UserIsActive  bool      `json:"user_is_active"`
	UserCreatedAt time.Time `json:"user_created_at"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        UserResponse `json:"user"`
}

/* =========================================================
 * HELPERS
 * ========================================================= */

func NewUserResponse(mdl *m.UserModel) UserResponse {
	return UserResponse{
		UserID:        mdl.UserID,
		UserName:      mdl.UserName,
		UserEmail:     mdl.UserEmail,
		UserRole:      mdl.UserRole,
		UserPhone:     mdl.UserPhone,
		UserIsActive:  mdl.UserIsActive,
		UserCreatedAt: mdl.UserCreatedAt,
	}
}
