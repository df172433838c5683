package user

import (
	"time"

	"github.com/google/uuid"

	domainUser "shipping-management/internal/domain/user"
)

type CreateUserRequest struct {
	Email     string     `json:"email" validate:"required,email"`
	Password  string     `json:"password" validate:"required,min=8"`
	FullName  string     `json:"full_name" validate:"required,min=2,max=255"`
	Role      string     `json:"role" validate:"required"`
	CompanyID uuid.UUID  `json:"company_id"`
	PartnerID *uuid.UUID `json:"partner_id"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	OldPassword     string `json:"old_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=NewPassword"`
}

type UpdateProfileRequest struct {
	FullName  *string    `json:"full_name" validate:"omitempty,min=2,max=255"`
	PartnerID *uuid.UUID `json:"partner_id"`
}

type UserResponse struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	FullName  string     `json:"full_name"`
	Role      string     `json:"role"`
	CompanyID uuid.UUID  `json:"company_id"`
	PartnerID *uuid.UUID `json:"partner_id,omitempty"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
}

type AuthResponse struct {
	User        *UserResponse `json:"user"`
	AccessToken string        `json:"access_token"`
	ExpiresAt   int64         `json:"expires_at"`
}

func ToUserResponse(u *domainUser.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      string(u.Role),
		CompanyID: u.CompanyID,
		PartnerID: u.PartnerID,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}
