package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sysstock/backend/internal/domain/ledger"
	"github.com/sysstock/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormStockMovementRepository implements ledger.StockMovementRepository
// using GORM. Movement rows are append-only; the only delete path is the
// branch cascade.
type GormStockMovementRepository struct {
	db *gorm.DB
}

// NewGormStockMovementRepository creates a new GormStockMovementRepository
func NewGormStockMovementRepository(db *gorm.DB) *GormStockMovementRepository {
	return &GormStockMovementRepository{db: db}
}

// Append writes one new movement row
func (r *GormStockMovementRepository) Append(ctx context.Context, movement *ledger.StockMovement) error {
	return r.db.WithContext(ctx).Create(movement).Error
}

// AppendAll writes a batch of movement rows
func (r *GormStockMovementRepository) AppendAll(ctx context.Context, movements []*ledger.StockMovement) error {
	if len(movements) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(movements).Error
}

// SumSigned returns the current stock of a (product, branch) pair. A pair
// with no movements has stock zero.
func (r *GormStockMovementRepository) SumSigned(ctx context.Context, productID, branchID uuid.UUID) (int64, error) {
	var stock int64
	err := r.db.WithContext(ctx).Model(&ledger.StockMovement{}).
		Select("COALESCE(SUM(signed_quantity), 0)").
		Where("product_id = ? AND branch_id = ?", productID, branchID).
		Scan(&stock).Error
	if err != nil {
		return 0, err
	}
	return stock, nil
}

// FindByProductAndBranch returns one product's movements in chronological
// order, optionally bounded by a date range.
func (r *GormStockMovementRepository) FindByProductAndBranch(ctx context.Context, productID, branchID uuid.UUID, from, to *time.Time) ([]ledger.StockMovement, error) {
	query := r.db.WithContext(ctx).
		Where("product_id = ? AND branch_id = ?", productID, branchID)
	if from != nil {
		query = query.Where("created_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("created_at <= ?", *to)
	}

	var movements []ledger.StockMovement
	if err := query.Order("created_at ASC, id ASC").Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// FindByBranch returns a branch's movements, newest first, paginated
func (r *GormStockMovementRepository) FindByBranch(ctx context.Context, branchID uuid.UUID, filter ledger.MovementFilter, page shared.Filter) ([]ledger.StockMovement, int64, error) {
	query := r.db.WithContext(ctx).Model(&ledger.StockMovement{}).
		Where("branch_id = ?", branchID)
	if filter.Kind != nil {
		query = query.Where("kind = ?", *filter.Kind)
	}
	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}
	if filter.From != nil {
		query = query.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("created_at <= ?", *filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var movements []ledger.StockMovement
	if err := applyPaging(query, page).Find(&movements).Error; err != nil {
		return nil, 0, err
	}
	return movements, total, nil
}

// CountByProduct counts all movements referencing a product
func (r *GormStockMovementRepository) CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&ledger.StockMovement{}).
		Where("product_id = ?", productID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// DeleteByBranch removes all movements of a branch
func (r *GormStockMovementRepository) DeleteByBranch(ctx context.Context, branchID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("branch_id = ?", branchID).
		Delete(&ledger.StockMovement{}).Error
}

var _ ledger.StockMovementRepository = (*GormStockMovementRepository)(nil)
