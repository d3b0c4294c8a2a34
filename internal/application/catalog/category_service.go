package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/sysstock/backend/internal/domain/catalog"
	"github.com/sysstock/backend/internal/domain/identity"
	"github.com/sysstock/backend/internal/domain/shared"
)

// CategoryService manages an owner's category catalog
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
	productRepo  catalog.ProductRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo catalog.CategoryRepository, productRepo catalog.ProductRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo, productRepo: productRepo}
}

// CreateCategory creates a category under the caller's owner account
func (s *CategoryService) CreateCategory(ctx context.Context, scope identity.AccessScope, req CreateCategoryRequest) (*CategoryResponse, error) {
	ownerID, ok := scope.OwnerID()
	if !ok {
		return nil, shared.ErrForbidden
	}

	taken, err := s.categoryRepo.ExistsByOwnerAndName(ctx, ownerID, req.Name, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A category with this name already exists")
	}

	category, err := catalog.NewCategory(ownerID, req.Name)
	if err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	response := ToCategoryResponse(category)
	return &response, nil
}

// ListCategories returns the caller's categories
func (s *CategoryService) ListCategories(ctx context.Context, scope identity.AccessScope, filter ProductListFilter) (*shared.Paginated[CategoryResponse], error) {
	ownerID, ok := scope.OwnerID()
	if !ok {
		return nil, shared.ErrForbidden
	}

	page := shared.DefaultFilter()
	page.Search = filter.Search
	if filter.Page > 0 {
		page.Page = filter.Page
	}
	if filter.PageSize > 0 {
		page.PageSize = filter.PageSize
	}

	categories, total, err := s.categoryRepo.FindByOwner(ctx, ownerID, page)
	if err != nil {
		return nil, err
	}
	items := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		items = append(items, ToCategoryResponse(&categories[i]))
	}
	result := shared.NewPaginated(items, total, page.Page, page.PageSize)
	return &result, nil
}

// UpdateCategory renames a category
func (s *CategoryService) UpdateCategory(ctx context.Context, scope identity.AccessScope, categoryID uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.ownedCategory(ctx, scope, categoryID)
	if err != nil {
		return nil, err
	}

	taken, err := s.categoryRepo.ExistsByOwnerAndName(ctx, category.OwnerID, req.Name, category.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A category with this name already exists")
	}

	if err := category.Rename(req.Name); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	response := ToCategoryResponse(category)
	return &response, nil
}

// DeleteCategory removes a category. Categories still referenced by
// products are protected.
func (s *CategoryService) DeleteCategory(ctx context.Context, scope identity.AccessScope, categoryID uuid.UUID) error {
	category, err := s.ownedCategory(ctx, scope, categoryID)
	if err != nil {
		return err
	}

	count, err := s.productRepo.CountByCategory(ctx, category.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("CATEGORY_IN_USE", "Category is referenced by products and cannot be deleted")
	}
	return s.categoryRepo.Delete(ctx, category.ID)
}

func (s *CategoryService) ownedCategory(ctx context.Context, scope identity.AccessScope, categoryID uuid.UUID) (*catalog.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if !scope.IsSuperuser() {
		ownerID, ok := scope.OwnerID()
		if !ok || ownerID != category.OwnerID {
			return nil, shared.ErrForbidden
		}
	}
	return category, nil
}
