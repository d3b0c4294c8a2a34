package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sysstock/backend/internal/domain/catalog"
	"github.com/sysstock/backend/internal/domain/identity"
	"github.com/sysstock/backend/internal/domain/ledger"
	"github.com/sysstock/backend/internal/domain/sales"
	"github.com/sysstock/backend/internal/domain/shared"
	"github.com/sysstock/backend/internal/domain/tenant"
)

// MockCategoryRepository is a mock implementation of catalog.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *catalog.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Update(ctx context.Context, category *catalog.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]catalog.Category, int64, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).([]catalog.Category), args.Get(1).(int64), args.Error(2)
}

func (m *MockCategoryRepository) ExistsByOwnerAndName(ctx context.Context, ownerID uuid.UUID, name string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, ownerID, name, excludeID)
	return args.Bool(0), args.Error(1)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) DeleteByBranch(ctx context.Context, branchID uuid.UUID) error {
	args := m.Called(ctx, branchID)
	return args.Error(0)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByBranch(ctx context.Context, branchID uuid.UUID, filter shared.Filter) ([]catalog.Product, int64, error) {
	args := m.Called(ctx, branchID, filter)
	return args.Get(0).([]catalog.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]catalog.Product, int64, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).([]catalog.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	args := m.Called(ctx, categoryID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) ExistsByBranchAndName(ctx context.Context, branchID uuid.UUID, name string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, branchID, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) ExistsByOwnerAndSKU(ctx context.Context, ownerID uuid.UUID, sku string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, ownerID, sku, excludeID)
	return args.Bool(0), args.Error(1)
}

// MockBranchRepository is a mock implementation of tenant.BranchRepository
type MockBranchRepository struct {
	mock.Mock
}

func (m *MockBranchRepository) Create(ctx context.Context, branch *tenant.Branch) error {
	args := m.Called(ctx, branch)
	return args.Error(0)
}

func (m *MockBranchRepository) Update(ctx context.Context, branch *tenant.Branch) error {
	args := m.Called(ctx, branch)
	return args.Error(0)
}

func (m *MockBranchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBranchRepository) FindByID(ctx context.Context, id uuid.UUID) (*tenant.Branch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenant.Branch), args.Error(1)
}

func (m *MockBranchRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]tenant.Branch, int64, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).([]tenant.Branch), args.Get(1).(int64), args.Error(2)
}

func (m *MockBranchRepository) FindAll(ctx context.Context, filter shared.Filter) ([]tenant.Branch, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]tenant.Branch), args.Get(1).(int64), args.Error(2)
}

func (m *MockBranchRepository) ExistsByOwnerAndName(ctx context.Context, ownerID uuid.UUID, name string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, ownerID, name, excludeID)
	return args.Bool(0), args.Error(1)
}

// MockMovementRepository is a mock implementation of ledger.StockMovementRepository
type MockMovementRepository struct {
	mock.Mock
}

func (m *MockMovementRepository) Append(ctx context.Context, movement *ledger.StockMovement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

func (m *MockMovementRepository) AppendAll(ctx context.Context, movements []*ledger.StockMovement) error {
	args := m.Called(ctx, movements)
	return args.Error(0)
}

func (m *MockMovementRepository) SumSigned(ctx context.Context, productID, branchID uuid.UUID) (int64, error) {
	args := m.Called(ctx, productID, branchID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMovementRepository) FindByProductAndBranch(ctx context.Context, productID, branchID uuid.UUID, from, to *time.Time) ([]ledger.StockMovement, error) {
	args := m.Called(ctx, productID, branchID, from, to)
	return args.Get(0).([]ledger.StockMovement), args.Error(1)
}

func (m *MockMovementRepository) FindByBranch(ctx context.Context, branchID uuid.UUID, filter ledger.MovementFilter, page shared.Filter) ([]ledger.StockMovement, int64, error) {
	args := m.Called(ctx, branchID, filter, page)
	return args.Get(0).([]ledger.StockMovement), args.Get(1).(int64), args.Error(2)
}

func (m *MockMovementRepository) CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMovementRepository) DeleteByBranch(ctx context.Context, branchID uuid.UUID) error {
	args := m.Called(ctx, branchID)
	return args.Error(0)
}

// MockSaleRepository is a mock implementation of sales.SaleRepository
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) Create(ctx context.Context, sale *sales.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Sale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindByBranch(ctx context.Context, branchID uuid.UUID, filter sales.SaleFilter) (*shared.Paginated[*sales.Sale], error) {
	args := m.Called(ctx, branchID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[*sales.Sale]), args.Error(1)
}

func (m *MockSaleRepository) FindByOwnerAndRange(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]*sales.Sale, error) {
	args := m.Called(ctx, ownerID, from, to)
	return args.Get(0).([]*sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindByBranchAndRange(ctx context.Context, branchID uuid.UUID, from, to time.Time) ([]*sales.Sale, error) {
	args := m.Called(ctx, branchID, from, to)
	return args.Get(0).([]*sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) CountItemsByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSaleRepository) CountByBranch(ctx context.Context, branchID uuid.UUID) (int64, error) {
	args := m.Called(ctx, branchID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSaleRepository) DeleteByBranch(ctx context.Context, branchID uuid.UUID) error {
	args := m.Called(ctx, branchID)
	return args.Error(0)
}

type catalogTestFixture struct {
	categoryRepo *MockCategoryRepository
	productRepo  *MockProductRepository
	branchRepo   *MockBranchRepository
	movementRepo *MockMovementRepository
	saleRepo     *MockSaleRepository
	products     *ProductService
	categories   *CategoryService
	owner        *identity.User
	branch       *tenant.Branch
	scope        identity.AccessScope
}

func newCatalogTestFixture(t *testing.T) *catalogTestFixture {
	t.Helper()

	categoryRepo := &MockCategoryRepository{}
	productRepo := &MockProductRepository{}
	branchRepo := &MockBranchRepository{}
	movementRepo := &MockMovementRepository{}
	saleRepo := &MockSaleRepository{}

	owner, err := identity.NewOwner("admin", "admin@example.com", "secret-pass")
	require.NoError(t, err)
	scope, err := identity.NewAccessScope(owner)
	require.NoError(t, err)
	branch, err := tenant.NewBranch(owner.ID, "Centro", "", "")
	require.NoError(t, err)

	return &catalogTestFixture{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		branchRepo:   branchRepo,
		movementRepo: movementRepo,
		saleRepo:     saleRepo,
		products:     NewProductService(productRepo, categoryRepo, branchRepo, movementRepo, saleRepo),
		categories:   NewCategoryService(categoryRepo, productRepo),
		owner:        owner,
		branch:       branch,
		scope:        scope,
	}
}

func TestCreateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a product in the branch", func(t *testing.T) {
		f := newCatalogTestFixture(t)
		f.branchRepo.On("FindByID", ctx, f.branch.ID).Return(f.branch, nil)
		f.productRepo.On("ExistsByBranchAndName", ctx, f.branch.ID, "Yerba Mate 1kg", uuid.Nil).Return(false, nil)
		f.productRepo.On("Create", ctx, mock.Anything).Return(nil)

		response, err := f.products.CreateProduct(ctx, f.scope, CreateProductRequest{
			BranchID: f.branch.ID,
			Name:     "Yerba Mate 1kg",
			Price:    decimal.NewFromInt(1500),
		})
		require.NoError(t, err)
		assert.Equal(t, f.branch.ID, response.BranchID)
		assert.Equal(t, int64(0), response.Stock)
	})

	t.Run("rejects duplicate names within the branch", func(t *testing.T) {
		f := newCatalogTestFixture(t)
		f.branchRepo.On("FindByID", ctx, f.branch.ID).Return(f.branch, nil)
		f.productRepo.On("ExistsByBranchAndName", ctx, f.branch.ID, "Yerba Mate 1kg", uuid.Nil).Return(true, nil)

		_, err := f.products.CreateProduct(ctx, f.scope, CreateProductRequest{
			BranchID: f.branch.ID,
			Name:     "Yerba Mate 1kg",
			Price:    decimal.NewFromInt(1500),
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})

	t.Run("rejects a duplicate SKU within the owner", func(t *testing.T) {
		f := newCatalogTestFixture(t)
		f.branchRepo.On("FindByID", ctx, f.branch.ID).Return(f.branch, nil)
		f.productRepo.On("ExistsByBranchAndName", ctx, f.branch.ID, "Yerba Mate 1kg", uuid.Nil).Return(false, nil)
		f.productRepo.On("ExistsByOwnerAndSKU", ctx, f.owner.ID, "YM-001", uuid.Nil).Return(true, nil)

		_, err := f.products.CreateProduct(ctx, f.scope, CreateProductRequest{
			BranchID: f.branch.ID,
			Name:     "Yerba Mate 1kg",
			Price:    decimal.NewFromInt(1500),
			SKU:      "YM-001",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SKU")
	})

	t.Run("rejects a category of another owner", func(t *testing.T) {
		f := newCatalogTestFixture(t)
		foreignCategory, err := catalog.NewCategory(uuid.New(), "Ajena")
		require.NoError(t, err)

		f.branchRepo.On("FindByID", ctx, f.branch.ID).Return(f.branch, nil)
		f.productRepo.On("ExistsByBranchAndName", ctx, f.branch.ID, "Yerba Mate 1kg", uuid.Nil).Return(false, nil)
		f.categoryRepo.On("FindByID", ctx, foreignCategory.ID).Return(foreignCategory, nil)

		_, err = f.products.CreateProduct(ctx, f.scope, CreateProductRequest{
			BranchID:   f.branch.ID,
			Name:       "Yerba Mate 1kg",
			Price:      decimal.NewFromInt(1500),
			CategoryID: &foreignCategory.ID,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "another account")
	})

	t.Run("denies branches of other owners", func(t *testing.T) {
		f := newCatalogTestFixture(t)
		foreign, err := tenant.NewBranch(uuid.New(), "Ajena", "", "")
		require.NoError(t, err)
		f.branchRepo.On("FindByID", ctx, foreign.ID).Return(foreign, nil)

		_, err = f.products.CreateProduct(ctx, f.scope, CreateProductRequest{
			BranchID: foreign.ID,
			Name:     "Yerba Mate 1kg",
			Price:    decimal.NewFromInt(1500),
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrForbidden))
	})
}

func TestGetProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("includes the derived stock level", func(t *testing.T) {
		f := newCatalogTestFixture(t)
		product, err := catalog.NewProduct(f.owner.ID, f.branch.ID, "Yerba Mate 1kg", decimal.NewFromInt(1500))
		require.NoError(t, err)

		f.productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		f.branchRepo.On("FindByID", ctx, f.branch.ID).Return(f.branch, nil)
		f.movementRepo.On("SumSigned", ctx, product.ID, f.branch.ID).Return(int64(12), nil)

		response, err := f.products.GetProduct(ctx, f.scope, product.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(12), response.Stock)
	})
}

func TestDeleteProduct(t *testing.T) {
	ctx := context.Background()

	newOwnedProduct := func(t *testing.T, f *catalogTestFixture) *catalog.Product {
		t.Helper()
		product, err := catalog.NewProduct(f.owner.ID, f.branch.ID, "Yerba Mate 1kg", decimal.NewFromInt(1500))
		require.NoError(t, err)
		f.productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		f.branchRepo.On("FindByID", ctx, f.branch.ID).Return(f.branch, nil)
		return product
	}

	t.Run("deletes a product without history", func(t *testing.T) {
		f := newCatalogTestFixture(t)
		product := newOwnedProduct(t, f)
		f.movementRepo.On("CountByProduct", ctx, product.ID).Return(int64(0), nil)
		f.saleRepo.On("CountItemsByProduct", ctx, product.ID).Return(int64(0), nil)
		f.productRepo.On("Delete", ctx, product.ID).Return(nil)

		require.NoError(t, f.products.DeleteProduct(ctx, f.scope, product.ID))
	})

	t.Run("protects a product with ledger history", func(t *testing.T) {
		f := newCatalogTestFixture(t)
		product := newOwnedProduct(t, f)
		f.movementRepo.On("CountByProduct", ctx, product.ID).Return(int64(3), nil)

		err := f.products.DeleteProduct(ctx, f.scope, product.ID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "stock movements")
		f.productRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("protects a product referenced by sales", func(t *testing.T) {
		f := newCatalogTestFixture(t)
		product := newOwnedProduct(t, f)
		f.movementRepo.On("CountByProduct", ctx, product.ID).Return(int64(0), nil)
		f.saleRepo.On("CountItemsByProduct", ctx, product.ID).Return(int64(2), nil)

		err := f.products.DeleteProduct(ctx, f.scope, product.ID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sales")
		f.productRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
