package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sysstock/backend/internal/domain/shared"
)

// MovementFilter narrows movement history queries
type MovementFilter struct {
	Kind      *MovementKind
	ProductID *uuid.UUID
	From      *time.Time
	To        *time.Time
}

// StockMovementRepository is the append-only store behind the stock ledger.
// There is deliberately no Update or Delete for single movements: rows are
// immutable once written. DeleteByBranch exists solely for the cascading
// branch removal, which runs inside one transaction.
type StockMovementRepository interface {
	// Append writes one new movement row
	Append(ctx context.Context, movement *StockMovement) error

	// AppendAll writes a batch of movement rows
	AppendAll(ctx context.Context, movements []*StockMovement) error

	// SumSigned returns the current stock for a (product, branch) pair as
	// the signed sum over its full movement history.
	SumSigned(ctx context.Context, productID, branchID uuid.UUID) (int64, error)

	// FindByProductAndBranch returns movements of one product in one branch
	// in chronological order, optionally bounded by a date range.
	FindByProductAndBranch(ctx context.Context, productID, branchID uuid.UUID, from, to *time.Time) ([]StockMovement, error)

	// FindByBranch returns movements of a branch, newest first, paginated
	FindByBranch(ctx context.Context, branchID uuid.UUID, filter MovementFilter, page shared.Filter) ([]StockMovement, int64, error)

	// CountByProduct counts all movements referencing a product
	CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error)

	// DeleteByBranch removes all movements of a branch (cascading branch delete)
	DeleteByBranch(ctx context.Context, branchID uuid.UUID) error
}
