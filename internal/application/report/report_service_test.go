package report

import (
	"context"
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
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]tenant.Branch), args.Get(1).(int64), args.Error(2)
}

func (m *MockBranchRepository) FindAll(ctx context.Context, filter shared.Filter) ([]tenant.Branch, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]tenant.Branch), args.Get(1).(int64), args.Error(2)
}

func (m *MockBranchRepository) ExistsByOwnerAndName(ctx context.Context, ownerID uuid.UUID, name string, excludeID uuid.UUID) (bool, error) {
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
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]catalog.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]catalog.Product, int64, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.StockMovement), args.Error(1)
}

func (m *MockMovementRepository) FindByBranch(ctx context.Context, branchID uuid.UUID, filter ledger.MovementFilter, page shared.Filter) ([]ledger.StockMovement, int64, error) {
	args := m.Called(ctx, branchID, filter, page)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindByBranchAndRange(ctx context.Context, branchID uuid.UUID, from, to time.Time) ([]*sales.Sale, error) {
	args := m.Called(ctx, branchID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
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

type reportTestFixture struct {
	branchRepo   *MockBranchRepository
	productRepo  *MockProductRepository
	movementRepo *MockMovementRepository
	saleRepo     *MockSaleRepository
	service      *ReportService
}

func newReportTestFixture() *reportTestFixture {
	branchRepo := new(MockBranchRepository)
	productRepo := new(MockProductRepository)
	movementRepo := new(MockMovementRepository)
	saleRepo := new(MockSaleRepository)
	return &reportTestFixture{
		branchRepo:   branchRepo,
		productRepo:  productRepo,
		movementRepo: movementRepo,
		saleRepo:     saleRepo,
		service:      NewReportService(branchRepo, productRepo, movementRepo, saleRepo, 5),
	}
}

func reportOwnerScope(t *testing.T, ownerID uuid.UUID) identity.AccessScope {
	t.Helper()
	owner := &identity.User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Role:              identity.RoleOwner,
		OwnerID:           &ownerID,
	}
	owner.ID = ownerID
	scope, err := identity.NewAccessScope(owner)
	require.NoError(t, err)
	return scope
}

func reportBranch(t *testing.T, ownerID uuid.UUID) *tenant.Branch {
	t.Helper()
	branch, err := tenant.NewBranch(ownerID, "Main Branch", "123 Main St", "")
	require.NoError(t, err)
	return branch
}

func saleAt(t *testing.T, ownerID, branchID uuid.UUID, at time.Time, lines ...sales.SaleItem) *sales.Sale {
	t.Helper()
	actor := uuid.New()
	sale, err := sales.NewSale(ownerID, branchID, &actor)
	require.NoError(t, err)
	for _, line := range lines {
		_, err := sale.AddItem(line.ProductID, line.ProductName, line.Quantity, line.UnitPrice)
		require.NoError(t, err)
	}
	sale.CreatedAt = at
	return sale
}

func TestReportService_SalesSummary(t *testing.T) {
	ctx := context.Background()

	t.Run("aggregates count, items, and total over the range", func(t *testing.T) {
		f := newReportTestFixture()
		ownerID := uuid.New()
		branch := reportBranch(t, ownerID)
		productA := uuid.New()
		productB := uuid.New()
		day := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

		rows := []*sales.Sale{
			saleAt(t, ownerID, branch.ID, day,
				sales.SaleItem{ProductID: productA, ProductName: "Coffee", Quantity: 2, UnitPrice: decimal.NewFromFloat(10.50)}),
			saleAt(t, ownerID, branch.ID, day.Add(2*time.Hour),
				sales.SaleItem{ProductID: productB, ProductName: "Tea", Quantity: 3, UnitPrice: decimal.NewFromInt(4)}),
		}

		f.branchRepo.On("FindByID", ctx, branch.ID).Return(branch, nil)
		f.saleRepo.On("FindByBranchAndRange", ctx, branch.ID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return(rows, nil)

		summary, err := f.service.SalesSummary(ctx, reportOwnerScope(t, ownerID), SalesReportFilter{
			BranchID: branch.ID,
			From:     day.AddDate(0, 0, -1),
			To:       day.AddDate(0, 0, 1),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2), summary.SaleCount)
		assert.Equal(t, int64(5), summary.ItemsSold)
		assert.True(t, summary.TotalAmount.Equal(decimal.NewFromInt(33)), "got %s", summary.TotalAmount)
		assert.True(t, summary.AvgSaleAmount.Equal(decimal.NewFromFloat(16.50)), "got %s", summary.AvgSaleAmount)
	})

	t.Run("rejects an inverted range", func(t *testing.T) {
		f := newReportTestFixture()
		ownerID := uuid.New()

		_, err := f.service.SalesSummary(ctx, reportOwnerScope(t, ownerID), SalesReportFilter{
			BranchID: uuid.New(),
			From:     time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
			To:       time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_RANGE", domainErr.Code)
	})

	t.Run("denies a branch of another owner", func(t *testing.T) {
		f := newReportTestFixture()
		branch := reportBranch(t, uuid.New())

		f.branchRepo.On("FindByID", ctx, branch.ID).Return(branch, nil)

		_, err := f.service.SalesSummary(ctx, reportOwnerScope(t, uuid.New()), SalesReportFilter{
			BranchID: branch.ID,
			From:     time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			To:       time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		})
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})
}

func TestReportService_SalesByDay(t *testing.T) {
	ctx := context.Background()

	t.Run("buckets sales per calendar day in order", func(t *testing.T) {
		f := newReportTestFixture()
		ownerID := uuid.New()
		branch := reportBranch(t, ownerID)
		product := uuid.New()
		day1 := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
		day2 := time.Date(2026, 3, 12, 17, 0, 0, 0, time.UTC)

		rows := []*sales.Sale{
			saleAt(t, ownerID, branch.ID, day2,
				sales.SaleItem{ProductID: product, ProductName: "Coffee", Quantity: 1, UnitPrice: decimal.NewFromInt(10)}),
			saleAt(t, ownerID, branch.ID, day1,
				sales.SaleItem{ProductID: product, ProductName: "Coffee", Quantity: 2, UnitPrice: decimal.NewFromInt(10)}),
			saleAt(t, ownerID, branch.ID, day1.Add(time.Hour),
				sales.SaleItem{ProductID: product, ProductName: "Coffee", Quantity: 1, UnitPrice: decimal.NewFromInt(10)}),
		}

		f.branchRepo.On("FindByID", ctx, branch.ID).Return(branch, nil)
		f.saleRepo.On("FindByBranchAndRange", ctx, branch.ID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return(rows, nil)

		days, err := f.service.SalesByDay(ctx, reportOwnerScope(t, ownerID), SalesReportFilter{
			BranchID: branch.ID,
			From:     day1.AddDate(0, 0, -1),
			To:       day2.AddDate(0, 0, 1),
		})
		require.NoError(t, err)
		require.Len(t, days, 2)
		assert.Equal(t, "2026-03-10", days[0].Date)
		assert.Equal(t, int64(2), days[0].SaleCount)
		assert.Equal(t, int64(3), days[0].ItemsSold)
		assert.True(t, days[0].TotalAmount.Equal(decimal.NewFromInt(30)))
		assert.Equal(t, "2026-03-12", days[1].Date)
		assert.Equal(t, int64(1), days[1].SaleCount)
	})
}

func TestReportService_SalesByProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("ranks products by quantity sold", func(t *testing.T) {
		f := newReportTestFixture()
		ownerID := uuid.New()
		branch := reportBranch(t, ownerID)
		coffee := uuid.New()
		tea := uuid.New()
		day := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

		rows := []*sales.Sale{
			saleAt(t, ownerID, branch.ID, day,
				sales.SaleItem{ProductID: coffee, ProductName: "Coffee", Quantity: 2, UnitPrice: decimal.NewFromInt(10)},
				sales.SaleItem{ProductID: tea, ProductName: "Tea", Quantity: 5, UnitPrice: decimal.NewFromInt(4)}),
			saleAt(t, ownerID, branch.ID, day.Add(time.Hour),
				sales.SaleItem{ProductID: coffee, ProductName: "Coffee", Quantity: 1, UnitPrice: decimal.NewFromInt(10)}),
		}

		f.branchRepo.On("FindByID", ctx, branch.ID).Return(branch, nil)
		f.saleRepo.On("FindByBranchAndRange", ctx, branch.ID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return(rows, nil)

		ranking, err := f.service.SalesByProduct(ctx, reportOwnerScope(t, ownerID), SalesReportFilter{
			BranchID: branch.ID,
			From:     day.AddDate(0, 0, -1),
			To:       day.AddDate(0, 0, 1),
		})
		require.NoError(t, err)
		require.Len(t, ranking, 2)
		assert.Equal(t, "Tea", ranking[0].ProductName)
		assert.Equal(t, int64(5), ranking[0].Quantity)
		assert.True(t, ranking[0].TotalAmount.Equal(decimal.NewFromInt(20)))
		assert.Equal(t, "Coffee", ranking[1].ProductName)
		assert.Equal(t, int64(3), ranking[1].Quantity)
		assert.True(t, ranking[1].TotalAmount.Equal(decimal.NewFromInt(30)))
	})
}

func TestReportService_LowStock(t *testing.T) {
	ctx := context.Background()

	t.Run("lists products at or below their threshold", func(t *testing.T) {
		f := newReportTestFixture()
		ownerID := uuid.New()
		branch := reportBranch(t, ownerID)

		low, err := catalog.NewProduct(ownerID, branch.ID, "Coffee", decimal.NewFromInt(10))
		require.NoError(t, err)
		healthy, err := catalog.NewProduct(ownerID, branch.ID, "Tea", decimal.NewFromInt(4))
		require.NoError(t, err)
		custom, err := catalog.NewProduct(ownerID, branch.ID, "Sugar", decimal.NewFromInt(2))
		require.NoError(t, err)
		ten := int64(10)
		require.NoError(t, custom.SetMinStock(&ten))

		f.branchRepo.On("FindByID", ctx, branch.ID).Return(branch, nil)
		f.productRepo.On("FindByBranch", ctx, branch.ID, mock.AnythingOfType("shared.Filter")).
			Return([]catalog.Product{*low, *healthy, *custom}, int64(3), nil)
		f.movementRepo.On("SumSigned", ctx, low.ID, branch.ID).Return(int64(3), nil)
		f.movementRepo.On("SumSigned", ctx, healthy.ID, branch.ID).Return(int64(40), nil)
		f.movementRepo.On("SumSigned", ctx, custom.ID, branch.ID).Return(int64(8), nil)

		items, err := f.service.LowStock(ctx, reportOwnerScope(t, ownerID), branch.ID)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "Coffee", items[0].ProductName)
		assert.Equal(t, int64(3), items[0].Stock)
		assert.Equal(t, int64(5), items[0].Threshold)
		assert.Equal(t, "Sugar", items[1].ProductName)
		assert.Equal(t, int64(10), items[1].Threshold)
	})
}

func TestReportService_Kardex(t *testing.T) {
	ctx := context.Background()

	t.Run("returns running balances in chronological order", func(t *testing.T) {
		f := newReportTestFixture()
		ownerID := uuid.New()
		branch := reportBranch(t, ownerID)
		productID := uuid.New()

		in, err := ledger.NewStockMovement(productID, branch.ID, ledger.MovementIn, 10, "restock", nil, nil)
		require.NoError(t, err)
		out, err := ledger.NewStockMovement(productID, branch.ID, ledger.MovementOut, 4, "sale", nil, nil)
		require.NoError(t, err)

		f.branchRepo.On("FindByID", ctx, branch.ID).Return(branch, nil)
		f.movementRepo.On("FindByProductAndBranch", ctx, productID, branch.ID, (*time.Time)(nil), (*time.Time)(nil)).
			Return([]ledger.StockMovement{*in, *out}, nil)

		rows, err := f.service.Kardex(ctx, reportOwnerScope(t, ownerID), productID, KardexReportFilter{BranchID: branch.ID})
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, int64(10), rows[0].Balance)
		assert.Equal(t, "IN", rows[0].Kind)
		assert.Equal(t, int64(6), rows[1].Balance)
		assert.Equal(t, "OUT", rows[1].Kind)
	})
}

func TestReportService_ExportSales(t *testing.T) {
	ctx := context.Background()

	t.Run("writes one row per sale line plus a totals row", func(t *testing.T) {
		f := newReportTestFixture()
		ownerID := uuid.New()
		branch := reportBranch(t, ownerID)
		day := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

		rows := []*sales.Sale{
			saleAt(t, ownerID, branch.ID, day,
				sales.SaleItem{ProductID: uuid.New(), ProductName: "Coffee", Quantity: 2, UnitPrice: decimal.NewFromInt(10)},
				sales.SaleItem{ProductID: uuid.New(), ProductName: "Tea", Quantity: 1, UnitPrice: decimal.NewFromInt(4)}),
		}

		f.branchRepo.On("FindByID", ctx, branch.ID).Return(branch, nil)
		f.saleRepo.On("FindByBranchAndRange", ctx, branch.ID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return(rows, nil)

		workbook, err := f.service.ExportSales(ctx, reportOwnerScope(t, ownerID), SalesReportFilter{
			BranchID: branch.ID,
			From:     day.AddDate(0, 0, -1),
			To:       day.AddDate(0, 0, 1),
		})
		require.NoError(t, err)
		defer workbook.Close()

		sheetRows, err := workbook.GetRows("Sales")
		require.NoError(t, err)
		// header + two lines + totals
		require.Len(t, sheetRows, 4)
		assert.Equal(t, "Product", sheetRows[0][2])
		assert.Equal(t, "Coffee", sheetRows[1][2])
		assert.Equal(t, "Tea", sheetRows[2][2])
		assert.Equal(t, "24", sheetRows[3][5])
	})
}

func TestReportService_ExportKardex(t *testing.T) {
	ctx := context.Background()

	t.Run("writes the kardex sheet", func(t *testing.T) {
		f := newReportTestFixture()
		ownerID := uuid.New()
		branch := reportBranch(t, ownerID)
		productID := uuid.New()

		in, err := ledger.NewStockMovement(productID, branch.ID, ledger.MovementIn, 10, "restock", nil, nil)
		require.NoError(t, err)

		f.branchRepo.On("FindByID", ctx, branch.ID).Return(branch, nil)
		f.movementRepo.On("FindByProductAndBranch", ctx, productID, branch.ID, (*time.Time)(nil), (*time.Time)(nil)).
			Return([]ledger.StockMovement{*in}, nil)

		workbook, err := f.service.ExportKardex(ctx, reportOwnerScope(t, ownerID), productID, KardexReportFilter{BranchID: branch.ID})
		require.NoError(t, err)
		defer workbook.Close()

		sheetRows, err := workbook.GetRows("Kardex")
		require.NoError(t, err)
		require.Len(t, sheetRows, 2)
		assert.Equal(t, "IN", sheetRows[1][1])
		assert.Equal(t, "10", sheetRows[1][2])
	})
}
