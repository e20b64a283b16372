package api

import (
	"github.com/taskdeck/taskdeck-api/internal/domain"
)

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Name     string `json:"name,omitempty" validate:"omitempty,min=2"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	Token        string          `json:"token"`
	RefreshToken string          `json:"refreshToken,omitempty"`
	User         *domain.UserRef `json:"user"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token
// refresh endpoint.
type RefreshTokenResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// CreateTaskRequest defines the payload for task creation. Status is not
// accepted: new tasks always start as TODO.
type CreateTaskRequest struct {
	Title        string  `json:"title"       validate:"required,max=100"`
	Description  string  `json:"description" validate:"required"`
	Priority     string  `json:"priority"    validate:"required,oneof=LOW MEDIUM HIGH URGENT"`
	DueDate      *string `json:"dueDate,omitempty"      validate:"omitempty"`
	AssignedToID *string `json:"assignedToId,omitempty" validate:"omitempty,uuid"`
}

// UpdateTaskRequest defines the payload for a partial task update. Absent
// fields keep their stored values.
type UpdateTaskRequest struct {
	Title        *string `json:"title,omitempty"       validate:"omitempty,min=1,max=100"`
	Description  *string `json:"description,omitempty" validate:"omitempty,min=1"`
	Priority     *string `json:"priority,omitempty"    validate:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	Status       *string `json:"status,omitempty"      validate:"omitempty,oneof=TODO IN_PROGRESS REVIEW COMPLETED"`
	DueDate      *string `json:"dueDate,omitempty"      validate:"omitempty"`
	AssignedToID *string `json:"assignedToId,omitempty" validate:"omitempty,uuid"`
}
