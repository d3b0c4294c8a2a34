package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sysstock/backend/internal/domain/shared"
	"github.com/sysstock/backend/internal/domain/tenant"
	"gorm.io/gorm"
)

// GormBranchRepository implements tenant.BranchRepository using GORM
type GormBranchRepository struct {
	db *gorm.DB
}

// NewGormBranchRepository creates a new GormBranchRepository
func NewGormBranchRepository(db *gorm.DB) *GormBranchRepository {
	return &GormBranchRepository{db: db}
}

// Create creates a new branch
func (r *GormBranchRepository) Create(ctx context.Context, branch *tenant.Branch) error {
	if err := r.db.WithContext(ctx).Create(branch).Error; err != nil {
		return err
	}
	branch.VersionSaved()
	return nil
}

// Update updates an existing branch with an optimistic version check.
// A concurrent writer that got there first leaves zero matching rows.
func (r *GormBranchRepository) Update(ctx context.Context, branch *tenant.Branch) error {
	result := r.db.WithContext(ctx).
		Model(branch).
		Where("id = ? AND version = ?", branch.ID, branch.StoredVersion()).
		Select("*").
		Updates(branch)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	branch.VersionSaved()
	return nil
}

// Delete deletes a branch by ID
func (r *GormBranchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&tenant.Branch{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a branch by ID
func (r *GormBranchRepository) FindByID(ctx context.Context, id uuid.UUID) (*tenant.Branch, error) {
	var branch tenant.Branch
	if err := r.db.WithContext(ctx).First(&branch, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &branch, nil
}

// FindByOwner returns an owner's branches, paginated
func (r *GormBranchRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]tenant.Branch, int64, error) {
	query := r.db.WithContext(ctx).Model(&tenant.Branch{}).Where("owner_id = ?", ownerID)
	return r.list(query, filter)
}

// FindAll returns all branches, paginated
func (r *GormBranchRepository) FindAll(ctx context.Context, filter shared.Filter) ([]tenant.Branch, int64, error) {
	return r.list(r.db.WithContext(ctx).Model(&tenant.Branch{}), filter)
}

func (r *GormBranchRepository) list(query *gorm.DB, filter shared.Filter) ([]tenant.Branch, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var branches []tenant.Branch
	if err := applyPaging(query, filter).Find(&branches).Error; err != nil {
		return nil, 0, err
	}
	return branches, total, nil
}

// ExistsByOwnerAndName checks (owner, name) uniqueness, case-insensitive
func (r *GormBranchRepository) ExistsByOwnerAndName(ctx context.Context, ownerID uuid.UUID, name string, excludeID uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&tenant.Branch{}).
		Where("owner_id = ? AND LOWER(name) = LOWER(?)", ownerID, name)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

var _ tenant.BranchRepository = (*GormBranchRepository)(nil)
