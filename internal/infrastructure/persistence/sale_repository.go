package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sysstock/backend/internal/domain/sales"
	"github.com/sysstock/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormSaleRepository implements sales.SaleRepository using GORM. Sales are
// written once, together with their items, and never updated.
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// Create persists the sale together with all its items
func (r *GormSaleRepository) Create(ctx context.Context, sale *sales.Sale) error {
	return r.db.WithContext(ctx).Create(sale).Error
}

// FindByID loads a sale with its items preloaded
func (r *GormSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Sale, error) {
	var sale sales.Sale
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&sale, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// FindByBranch returns sales of a branch, newest first, paginated
func (r *GormSaleRepository) FindByBranch(ctx context.Context, branchID uuid.UUID, filter sales.SaleFilter) (*shared.Paginated[*sales.Sale], error) {
	query := r.db.WithContext(ctx).Model(&sales.Sale{}).Where("branch_id = ?", branchID)
	if filter.From != nil {
		query = query.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("created_at <= ?", *filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var rows []*sales.Sale
	if err := applyPaging(query, filter.Filter).Preload("Items").Find(&rows).Error; err != nil {
		return nil, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > 200 {
		pageSize = 20
	}
	result := shared.NewPaginated(rows, total, page, pageSize)
	return &result, nil
}

// FindByOwnerAndRange returns all sales across an owner's branches within
// the given range, ordered by creation time.
func (r *GormSaleRepository) FindByOwnerAndRange(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]*sales.Sale, error) {
	var rows []*sales.Sale
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND created_at >= ? AND created_at <= ?", ownerID, from, to).
		Order("created_at ASC").
		Preload("Items").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByBranchAndRange returns a branch's sales within the given range,
// ordered by creation time.
func (r *GormSaleRepository) FindByBranchAndRange(ctx context.Context, branchID uuid.UUID, from, to time.Time) ([]*sales.Sale, error) {
	var rows []*sales.Sale
	if err := r.db.WithContext(ctx).
		Where("branch_id = ? AND created_at >= ? AND created_at <= ?", branchID, from, to).
		Order("created_at ASC").
		Preload("Items").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CountItemsByProduct reports how many sale items reference the product
func (r *GormSaleRepository) CountItemsByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&sales.SaleItem{}).
		Where("product_id = ?", productID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByBranch reports how many sales the branch holds
func (r *GormSaleRepository) CountByBranch(ctx context.Context, branchID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&sales.Sale{}).
		Where("branch_id = ?", branchID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// DeleteByBranch removes a branch's sales and their items
func (r *GormSaleRepository) DeleteByBranch(ctx context.Context, branchID uuid.UUID) error {
	// Items first, their sale rows second, same transaction as the caller
	if err := r.db.WithContext(ctx).
		Where("sale_id IN (?)", r.db.Model(&sales.Sale{}).Select("id").Where("branch_id = ?", branchID)).
		Delete(&sales.SaleItem{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Where("branch_id = ?", branchID).
		Delete(&sales.Sale{}).Error
}

var _ sales.SaleRepository = (*GormSaleRepository)(nil)
