package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sysstock/backend/internal/domain/identity"
)

// LoginRequest carries the credentials for a login attempt
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResult contains the token pair and account snapshot after login
type LoginResult struct {
	AccessToken           string       `json:"access_token"`
	RefreshToken          string       `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time    `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time    `json:"refresh_token_expires_at"`
	User                  UserResponse `json:"user"`
}

// RefreshRequest carries the refresh token to rotate
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RefreshResult contains the rotated token pair
type RefreshResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
}

// LogoutRequest identifies the session being closed
type LogoutRequest struct {
	UserID   uuid.UUID
	TokenJTI string
	// TokenTTL is the remaining lifetime of the access token; the blacklist
	// entry only needs to outlive it
	TokenTTL time.Duration
}

// RegisterOwnerRequest carries the fields for self-service owner signup
type RegisterOwnerRequest struct {
	Username string `json:"username" binding:"required,min=3,max=150"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// CreateEmployeeRequest carries the fields for an owner creating an employee
// account pinned to one branch
type CreateEmployeeRequest struct {
	BranchID uuid.UUID `json:"branch_id" binding:"required"`
	Username string    `json:"username" binding:"required,min=3,max=150"`
	Email    string    `json:"email" binding:"required,email"`
	Password string    `json:"password" binding:"required,min=8,max=72"`
}

// ReassignEmployeeRequest moves an employee to another branch of the same owner
type ReassignEmployeeRequest struct {
	BranchID uuid.UUID `json:"branch_id" binding:"required"`
}

// ChangePasswordRequest carries a password change for the current account
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=72"`
}

// UserResponse is the account representation returned over HTTP. The
// password hash never leaves the domain layer.
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	OwnerID     *uuid.UUID `json:"owner_id,omitempty"`
	BranchID    *uuid.UUID `json:"branch_id,omitempty"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ToUserResponse converts a domain user to its response representation
func ToUserResponse(user *identity.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		Role:        user.Role.String(),
		OwnerID:     user.OwnerID,
		BranchID:    user.BranchID,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}

// ToUserListResponse converts a slice of domain users
func ToUserListResponse(users []*identity.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i, user := range users {
		responses[i] = ToUserResponse(user)
	}
	return responses
}
