package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/sysstock/backend/internal/domain/shared"
)

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// Create creates a new category
	Create(ctx context.Context, category *Category) error

	// Update updates an existing category
	Update(ctx context.Context, category *Category) error

	// Delete deletes a category by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID finds a category by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)

	// FindByOwner returns all categories for an owner, paginated
	FindByOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]Category, int64, error)

	// ExistsByOwnerAndName checks (owner, name) uniqueness, case-insensitive
	ExistsByOwnerAndName(ctx context.Context, ownerID uuid.UUID, name string, excludeID uuid.UUID) (bool, error)
}

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// Create creates a new product
	Create(ctx context.Context, product *Product) error

	// Update updates an existing product
	Update(ctx context.Context, product *Product) error

	// Delete deletes a product by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByBranch removes all products of a branch (cascading branch delete)
	DeleteByBranch(ctx context.Context, branchID uuid.UUID) error

	// FindByID finds a product by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByIDForUpdate finds a product by ID taking a row lock.
	// Implementations must hold the lock until the surrounding transaction
	// ends; this row is the serialization point for stock writes.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByBranch returns all products of a branch, paginated
	FindByBranch(ctx context.Context, branchID uuid.UUID, filter shared.Filter) ([]Product, int64, error)

	// FindByOwner returns all products across an owner's branches, paginated
	FindByOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]Product, int64, error)

	// CountByCategory counts products referencing a category
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)

	// ExistsByBranchAndName checks (branch, name) uniqueness, case-insensitive
	ExistsByBranchAndName(ctx context.Context, branchID uuid.UUID, name string, excludeID uuid.UUID) (bool, error)

	// ExistsByOwnerAndSKU checks (owner, sku) uniqueness, case-insensitive
	ExistsByOwnerAndSKU(ctx context.Context, ownerID uuid.UUID, sku string, excludeID uuid.UUID) (bool, error)
}
