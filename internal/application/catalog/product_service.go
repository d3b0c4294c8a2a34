package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/sysstock/backend/internal/domain/catalog"
	"github.com/sysstock/backend/internal/domain/identity"
	"github.com/sysstock/backend/internal/domain/ledger"
	"github.com/sysstock/backend/internal/domain/sales"
	"github.com/sysstock/backend/internal/domain/shared"
	"github.com/sysstock/backend/internal/domain/tenant"
)

// ProductService manages the per-branch product catalog. Stock levels in
// its responses are always derived from the movement ledger.
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	branchRepo   tenant.BranchRepository
	movementRepo ledger.StockMovementRepository
	saleRepo     sales.SaleRepository
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	branchRepo tenant.BranchRepository,
	movementRepo ledger.StockMovementRepository,
	saleRepo sales.SaleRepository,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		branchRepo:   branchRepo,
		movementRepo: movementRepo,
		saleRepo:     saleRepo,
	}
}

// CreateProduct adds a product to a branch's catalog
func (s *ProductService) CreateProduct(ctx context.Context, scope identity.AccessScope, req CreateProductRequest) (*ProductResponse, error) {
	branch, err := s.branchRepo.FindByID(ctx, req.BranchID)
	if err != nil {
		return nil, err
	}
	if !scope.CanAccessBranch(branch.ID, branch.OwnerID) {
		return nil, shared.ErrForbidden
	}

	taken, err := s.productRepo.ExistsByBranchAndName(ctx, branch.ID, req.Name, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A product with this name already exists in the branch")
	}

	product, err := catalog.NewProduct(branch.OwnerID, branch.ID, req.Name, req.Price)
	if err != nil {
		return nil, err
	}
	if req.CategoryID != nil {
		if err := s.checkCategory(ctx, branch.OwnerID, *req.CategoryID); err != nil {
			return nil, err
		}
		product.SetCategory(req.CategoryID)
	}
	if req.SKU != "" {
		if err := s.checkSKU(ctx, branch.OwnerID, req.SKU, uuid.Nil); err != nil {
			return nil, err
		}
		if err := product.SetSKU(req.SKU); err != nil {
			return nil, err
		}
	}
	if req.MinStock != nil {
		if err := product.SetMinStock(req.MinStock); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product, 0)
	return &response, nil
}

// GetProduct loads one product with its derived stock level
func (s *ProductService) GetProduct(ctx context.Context, scope identity.AccessScope, productID uuid.UUID) (*ProductResponse, error) {
	product, _, err := s.ownedProduct(ctx, scope, productID)
	if err != nil {
		return nil, err
	}
	stock, err := s.movementRepo.SumSigned(ctx, product.ID, product.BranchID)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product, stock)
	return &response, nil
}

// ListProducts returns a branch's catalog with derived stock levels
func (s *ProductService) ListProducts(ctx context.Context, scope identity.AccessScope, branchID uuid.UUID, filter ProductListFilter) (*shared.Paginated[ProductResponse], error) {
	branch, err := s.branchRepo.FindByID(ctx, branchID)
	if err != nil {
		return nil, err
	}
	if !scope.CanAccessBranch(branch.ID, branch.OwnerID) {
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

	products, total, err := s.productRepo.FindByBranch(ctx, branchID, page)
	if err != nil {
		return nil, err
	}
	items := make([]ProductResponse, 0, len(products))
	for i := range products {
		stock, err := s.movementRepo.SumSigned(ctx, products[i].ID, products[i].BranchID)
		if err != nil {
			return nil, err
		}
		items = append(items, ToProductResponse(&products[i], stock))
	}
	result := shared.NewPaginated(items, total, page.Page, page.PageSize)
	return &result, nil
}

// UpdateProduct changes a product's catalog fields. Completed sales keep
// the prices they captured.
func (s *ProductService) UpdateProduct(ctx context.Context, scope identity.AccessScope, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, branch, err := s.ownedProduct(ctx, scope, productID)
	if err != nil {
		return nil, err
	}

	taken, err := s.productRepo.ExistsByBranchAndName(ctx, product.BranchID, req.Name, product.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A product with this name already exists in the branch")
	}

	if err := product.Rename(req.Name); err != nil {
		return nil, err
	}
	if err := product.ChangePrice(req.Price); err != nil {
		return nil, err
	}
	if req.CategoryID != nil {
		if err := s.checkCategory(ctx, branch.OwnerID, *req.CategoryID); err != nil {
			return nil, err
		}
	}
	product.SetCategory(req.CategoryID)
	if req.SKU != "" {
		if err := s.checkSKU(ctx, branch.OwnerID, req.SKU, product.ID); err != nil {
			return nil, err
		}
		if err := product.SetSKU(req.SKU); err != nil {
			return nil, err
		}
	} else {
		product.SKU = nil
	}
	if err := product.SetMinStock(req.MinStock); err != nil {
		return nil, err
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	stock, err := s.movementRepo.SumSigned(ctx, product.ID, product.BranchID)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product, stock)
	return &response, nil
}

// DeleteProduct removes a product from the catalog. Products with ledger
// history or sale items are protected: history must never dangle.
func (s *ProductService) DeleteProduct(ctx context.Context, scope identity.AccessScope, productID uuid.UUID) error {
	product, _, err := s.ownedProduct(ctx, scope, productID)
	if err != nil {
		return err
	}

	movements, err := s.movementRepo.CountByProduct(ctx, product.ID)
	if err != nil {
		return err
	}
	if movements > 0 {
		return shared.NewDomainError("PRODUCT_IN_USE", "Product has stock movements and cannot be deleted")
	}
	saleItems, err := s.saleRepo.CountItemsByProduct(ctx, product.ID)
	if err != nil {
		return err
	}
	if saleItems > 0 {
		return shared.NewDomainError("PRODUCT_IN_USE", "Product appears in sales and cannot be deleted")
	}
	return s.productRepo.Delete(ctx, product.ID)
}

func (s *ProductService) ownedProduct(ctx context.Context, scope identity.AccessScope, productID uuid.UUID) (*catalog.Product, *tenant.Branch, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, nil, err
	}
	branch, err := s.branchRepo.FindByID(ctx, product.BranchID)
	if err != nil {
		return nil, nil, err
	}
	if !scope.CanAccessBranch(branch.ID, branch.OwnerID) {
		return nil, nil, shared.ErrForbidden
	}
	return product, branch, nil
}

func (s *ProductService) checkCategory(ctx context.Context, ownerID, categoryID uuid.UUID) error {
	category, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if category.OwnerID != ownerID {
		return shared.NewDomainError("INVALID_CATEGORY", "Category belongs to another account")
	}
	return nil
}

func (s *ProductService) checkSKU(ctx context.Context, ownerID uuid.UUID, sku string, excludeID uuid.UUID) error {
	taken, err := s.productRepo.ExistsByOwnerAndSKU(ctx, ownerID, sku, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return shared.NewDomainError("ALREADY_EXISTS", "A product with this SKU already exists")
	}
	return nil
}
