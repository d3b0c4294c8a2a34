package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sysstock/backend/internal/domain/shared"
)

// SaleFilter narrows sale listings
type SaleFilter struct {
	shared.Filter
	From *time.Time
	To   *time.Time
}

// SaleRepository persists committed sales and their items
type SaleRepository interface {
	// Create persists the sale together with all its items
	Create(ctx context.Context, sale *Sale) error

	// FindByID loads a sale with its items preloaded
	FindByID(ctx context.Context, id uuid.UUID) (*Sale, error)

	// FindByBranch returns sales of a branch, newest first, optionally
	// restricted to a date range
	FindByBranch(ctx context.Context, branchID uuid.UUID, filter SaleFilter) (*shared.Paginated[*Sale], error)

	// FindByOwnerAndRange returns all sales across an owner's branches within
	// the given range, items preloaded, ordered by creation time
	FindByOwnerAndRange(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]*Sale, error)

	// FindByBranchAndRange returns a branch's sales within the given range,
	// items preloaded, ordered by creation time
	FindByBranchAndRange(ctx context.Context, branchID uuid.UUID, from, to time.Time) ([]*Sale, error)

	// CountItemsByProduct reports how many sale items reference the product.
	// A product with any referencing item may not be deleted.
	CountItemsByProduct(ctx context.Context, productID uuid.UUID) (int64, error)

	// CountByBranch reports how many sales the branch holds
	CountByBranch(ctx context.Context, branchID uuid.UUID) (int64, error)

	// DeleteByBranch removes a branch's sales and their items. Only the
	// branch cascade uses this; sales are otherwise immutable.
	DeleteByBranch(ctx context.Context, branchID uuid.UUID) error
}
