package report

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sysstock/backend/internal/domain/catalog"
	"github.com/sysstock/backend/internal/domain/identity"
	"github.com/sysstock/backend/internal/domain/ledger"
	"github.com/sysstock/backend/internal/domain/sales"
	"github.com/sysstock/backend/internal/domain/shared"
	"github.com/sysstock/backend/internal/domain/tenant"
)

// lowStockPageSize bounds the per-branch product scan for low-stock listings
const lowStockPageSize = 500

// ReportService answers read-only questions over the sales history and the
// stock ledger. It never writes.
type ReportService struct {
	branchRepo       tenant.BranchRepository
	productRepo      catalog.ProductRepository
	movementRepo     ledger.StockMovementRepository
	saleRepo         sales.SaleRepository
	defaultThreshold int64
}

// NewReportService creates a new report service
func NewReportService(
	branchRepo tenant.BranchRepository,
	productRepo catalog.ProductRepository,
	movementRepo ledger.StockMovementRepository,
	saleRepo sales.SaleRepository,
	defaultThreshold int64,
) *ReportService {
	return &ReportService{
		branchRepo:       branchRepo,
		productRepo:      productRepo,
		movementRepo:     movementRepo,
		saleRepo:         saleRepo,
		defaultThreshold: defaultThreshold,
	}
}

// SalesSummary aggregates a branch's sales over a date range
func (s *ReportService) SalesSummary(ctx context.Context, scope identity.AccessScope, filter SalesReportFilter) (*SalesSummaryResponse, error) {
	from, to, err := normalizeRange(filter.From, filter.To)
	if err != nil {
		return nil, err
	}
	saleRows, err := s.branchSales(ctx, scope, filter.BranchID, from, to)
	if err != nil {
		return nil, err
	}
	return summarize(saleRows, from, to), nil
}

// TodaySummary aggregates a branch's sales for the current day
func (s *ReportService) TodaySummary(ctx context.Context, scope identity.AccessScope, branchID uuid.UUID) (*SalesSummaryResponse, error) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	to := from.Add(24*time.Hour - time.Nanosecond)

	saleRows, err := s.branchSales(ctx, scope, branchID, from, to)
	if err != nil {
		return nil, err
	}
	return summarize(saleRows, from, to), nil
}

// SalesByDay buckets a branch's sales per calendar day. Days without sales
// are omitted.
func (s *ReportService) SalesByDay(ctx context.Context, scope identity.AccessScope, filter SalesReportFilter) ([]DailySalesResponse, error) {
	from, to, err := normalizeRange(filter.From, filter.To)
	if err != nil {
		return nil, err
	}
	saleRows, err := s.branchSales(ctx, scope, filter.BranchID, from, to)
	if err != nil {
		return nil, err
	}

	buckets := make(map[string]*DailySalesResponse)
	for _, sale := range saleRows {
		day := sale.CreatedAt.Format("2006-01-02")
		bucket, ok := buckets[day]
		if !ok {
			bucket = &DailySalesResponse{Date: day, TotalAmount: decimal.Zero}
			buckets[day] = bucket
		}
		bucket.SaleCount++
		bucket.ItemsSold += sale.TotalQuantity()
		bucket.TotalAmount = bucket.TotalAmount.Add(sale.Total())
	}

	days := make([]DailySalesResponse, 0, len(buckets))
	for _, bucket := range buckets {
		days = append(days, *bucket)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return days, nil
}

// SalesByProduct ranks products by quantity sold inside a range, largest
// first. Totals use the unit price captured at sale time.
func (s *ReportService) SalesByProduct(ctx context.Context, scope identity.AccessScope, filter SalesReportFilter) ([]ProductSalesResponse, error) {
	from, to, err := normalizeRange(filter.From, filter.To)
	if err != nil {
		return nil, err
	}
	saleRows, err := s.branchSales(ctx, scope, filter.BranchID, from, to)
	if err != nil {
		return nil, err
	}

	totals := make(map[uuid.UUID]*ProductSalesResponse)
	for _, sale := range saleRows {
		for _, item := range sale.Items {
			row, ok := totals[item.ProductID]
			if !ok {
				row = &ProductSalesResponse{
					ProductID:   item.ProductID,
					ProductName: item.ProductName,
					TotalAmount: decimal.Zero,
				}
				totals[item.ProductID] = row
			}
			row.Quantity += item.Quantity
			row.TotalAmount = row.TotalAmount.Add(item.Amount())
		}
	}

	ranking := make([]ProductSalesResponse, 0, len(totals))
	for _, row := range totals {
		ranking = append(ranking, *row)
	}
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Quantity != ranking[j].Quantity {
			return ranking[i].Quantity > ranking[j].Quantity
		}
		return ranking[i].ProductName < ranking[j].ProductName
	})
	return ranking, nil
}

// LowStock lists the products of a branch whose current stock sits at or
// below their threshold (the per-product minimum or the default).
func (s *ReportService) LowStock(ctx context.Context, scope identity.AccessScope, branchID uuid.UUID) ([]LowStockItemResponse, error) {
	if _, err := s.accessBranch(ctx, scope, branchID); err != nil {
		return nil, err
	}

	products, _, err := s.productRepo.FindByBranch(ctx, branchID, shared.Filter{Page: 1, PageSize: lowStockPageSize})
	if err != nil {
		return nil, err
	}

	var items []LowStockItemResponse
	for i := range products {
		product := &products[i]
		stock, err := s.movementRepo.SumSigned(ctx, product.ID, branchID)
		if err != nil {
			return nil, err
		}
		if !product.IsBelowMinStock(stock, s.defaultThreshold) {
			continue
		}
		threshold := s.defaultThreshold
		if product.MinStock != nil {
			threshold = *product.MinStock
		}
		items = append(items, LowStockItemResponse{
			ProductID:   product.ID,
			ProductName: product.Name,
			BranchID:    branchID,
			Stock:       stock,
			Threshold:   threshold,
		})
	}
	return items, nil
}

// Kardex returns the chronological ledger of one product in one branch with
// running balances.
func (s *ReportService) Kardex(ctx context.Context, scope identity.AccessScope, productID uuid.UUID, filter KardexReportFilter) ([]KardexRowResponse, error) {
	if _, err := s.accessBranch(ctx, scope, filter.BranchID); err != nil {
		return nil, err
	}

	movements, err := s.movementRepo.FindByProductAndBranch(ctx, productID, filter.BranchID, filter.From, filter.To)
	if err != nil {
		return nil, err
	}

	entries := ledger.BuildKardex(movements)
	rows := make([]KardexRowResponse, len(entries))
	for i, entry := range entries {
		rows[i] = KardexRowResponse{
			MovementID: entry.Movement.ID,
			Kind:       entry.Movement.Kind.String(),
			Quantity:   entry.Movement.Quantity,
			Reason:     entry.Movement.Reason,
			UnitCost:   entry.Movement.UnitCost,
			Balance:    entry.Balance,
			CreatedAt:  entry.Movement.CreatedAt,
		}
	}
	return rows, nil
}

func (s *ReportService) branchSales(ctx context.Context, scope identity.AccessScope, branchID uuid.UUID, from, to time.Time) ([]*sales.Sale, error) {
	if _, err := s.accessBranch(ctx, scope, branchID); err != nil {
		return nil, err
	}
	return s.saleRepo.FindByBranchAndRange(ctx, branchID, from, to)
}

func (s *ReportService) accessBranch(ctx context.Context, scope identity.AccessScope, branchID uuid.UUID) (*tenant.Branch, error) {
	branch, err := s.branchRepo.FindByID(ctx, branchID)
	if err != nil {
		return nil, shared.NewDomainError("BRANCH_NOT_FOUND", "Branch not found")
	}
	if !scope.CanAccessBranch(branch.ID, branch.OwnerID) {
		return nil, shared.ErrForbidden
	}
	return branch, nil
}

// normalizeRange widens To to the end of its day and rejects inverted ranges
func normalizeRange(from, to time.Time) (time.Time, time.Time, error) {
	if to.Before(from) {
		return time.Time{}, time.Time{}, shared.NewDomainError("INVALID_RANGE", "End date must not precede start date")
	}
	end := time.Date(to.Year(), to.Month(), to.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), to.Location())
	return from, end, nil
}

func summarize(saleRows []*sales.Sale, from, to time.Time) *SalesSummaryResponse {
	summary := &SalesSummaryResponse{
		From:          from,
		To:            to,
		TotalAmount:   decimal.Zero,
		AvgSaleAmount: decimal.Zero,
	}
	for _, sale := range saleRows {
		summary.SaleCount++
		summary.ItemsSold += sale.TotalQuantity()
		summary.TotalAmount = summary.TotalAmount.Add(sale.Total())
	}
	if summary.SaleCount > 0 {
		summary.AvgSaleAmount = summary.TotalAmount.DivRound(decimal.NewFromInt(summary.SaleCount), 2)
	}
	return summary
}
