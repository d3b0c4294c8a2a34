package tenant

import (
	"context"

	"github.com/google/uuid"
	"github.com/sysstock/backend/internal/domain/shared"
)

// BranchRepository defines the interface for branch persistence
type BranchRepository interface {
	// Create creates a new branch
	Create(ctx context.Context, branch *Branch) error

	// Update updates an existing branch
	Update(ctx context.Context, branch *Branch) error

	// Delete deletes a branch by ID. Dependent rows are removed by the
	// application layer inside the same transaction before this call.
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID finds a branch by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Branch, error)

	// FindByOwner returns all branches for an owner, paginated
	FindByOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]Branch, int64, error)

	// FindAll returns all branches (superuser listing), paginated
	FindAll(ctx context.Context, filter shared.Filter) ([]Branch, int64, error)

	// ExistsByOwnerAndName checks (owner, name) uniqueness, case-insensitive.
	// excludeID skips one branch when checking during update; pass uuid.Nil otherwise.
	ExistsByOwnerAndName(ctx context.Context, ownerID uuid.UUID, name string, excludeID uuid.UUID) (bool, error)
}
