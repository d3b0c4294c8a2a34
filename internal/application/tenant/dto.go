package tenant

import (
	"time"

	"github.com/google/uuid"
	"github.com/sysstock/backend/internal/domain/tenant"
)

// CreateBranchRequest represents a request to create a branch
type CreateBranchRequest struct {
	Name    string `json:"name" binding:"required,max=200"`
	Address string `json:"address" binding:"omitempty,max=300"`
	Phone   string `json:"phone" binding:"omitempty,max=30"`
	// OwnerID is honored only for superuser callers; owners always create
	// branches under their own account
	OwnerID *uuid.UUID `json:"owner_id"`
}

// UpdateBranchRequest represents a request to update a branch
type UpdateBranchRequest struct {
	Name    string `json:"name" binding:"required,max=200"`
	Address string `json:"address" binding:"omitempty,max=300"`
	Phone   string `json:"phone" binding:"omitempty,max=30"`
}

// BranchResponse represents a branch in API responses
type BranchResponse struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BranchListFilter represents filter options for branch listings
type BranchListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ToBranchResponse converts a branch aggregate to its API representation
func ToBranchResponse(branch *tenant.Branch) BranchResponse {
	return BranchResponse{
		ID:        branch.ID,
		OwnerID:   branch.OwnerID,
		Name:      branch.Name,
		Address:   branch.Address,
		Phone:     branch.Phone,
		CreatedAt: branch.CreatedAt,
		UpdatedAt: branch.UpdatedAt,
	}
}
