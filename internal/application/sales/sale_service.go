package sales

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sysstock/backend/internal/domain/catalog"
	"github.com/sysstock/backend/internal/domain/identity"
	"github.com/sysstock/backend/internal/domain/ledger"
	"github.com/sysstock/backend/internal/domain/sales"
	"github.com/sysstock/backend/internal/domain/shared"
	"github.com/sysstock/backend/internal/domain/tenant"
)

// SaleService commits sales against the stock ledger. A sale is all or
// nothing: either every line is persisted together with its OUT movement,
// or nothing is.
type SaleService struct {
	branchRepo       tenant.BranchRepository
	saleRepo         sales.SaleRepository
	txScope          TransactionScope
	eventPublisher   shared.EventPublisher
	defaultThreshold int64
}

// NewSaleService creates a new SaleService
func NewSaleService(branchRepo tenant.BranchRepository, saleRepo sales.SaleRepository, txScope TransactionScope, defaultThreshold int64) *SaleService {
	return &SaleService{
		branchRepo:       branchRepo,
		saleRepo:         saleRepo,
		txScope:          txScope,
		defaultThreshold: defaultThreshold,
	}
}

// SetEventPublisher sets the publisher for low-stock events
func (s *SaleService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateSale validates the requested lines, locks the product rows, checks
// sufficiency against the ledger, and commits the sale with one OUT movement
// per line inside a single transaction.
//
// Two sales competing for the last units of a product serialize on the
// product row lock; the loser re-reads the balance after the winner's
// movements are visible and fails with an insufficient stock error.
func (s *SaleService) CreateSale(ctx context.Context, scope identity.AccessScope, actorID uuid.UUID, req CreateSaleRequest) (*SaleResponse, error) {
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("EMPTY_ORDER", "Sale must contain at least one item")
	}
	for _, item := range req.Items {
		if item.Quantity < 1 {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Item quantity must be at least 1")
		}
		if item.UnitPrice != nil && item.UnitPrice.LessThanOrEqual(decimal.Zero) {
			return nil, shared.NewDomainError("INVALID_PRICE", "Unit price must be greater than zero")
		}
	}

	branch, err := s.branchRepo.FindByID(ctx, req.BranchID)
	if err != nil {
		return nil, err
	}
	if !scope.CanAccessBranch(branch.ID, branch.OwnerID) {
		return nil, shared.ErrForbidden
	}

	// Total requested per product across lines; duplicated lines must not
	// each pass a sufficiency check the combined quantity would fail.
	requested := make(map[uuid.UUID]int64, len(req.Items))
	for _, item := range req.Items {
		requested[item.ProductID] += item.Quantity
	}
	productIDs := make([]uuid.UUID, 0, len(requested))
	for id := range requested {
		productIDs = append(productIDs, id)
	}
	// Locking in a fixed order keeps two overlapping sales from deadlocking
	sort.Slice(productIDs, func(i, j int) bool {
		return productIDs[i].String() < productIDs[j].String()
	})

	var sale *sales.Sale
	var lowStockEvents []shared.DomainEvent

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		products := make(map[uuid.UUID]*catalog.Product, len(productIDs))
		for _, productID := range productIDs {
			product, err := repos.ProductRepo().FindByIDForUpdate(ctx, productID)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return shared.NewDomainError("PRODUCT_NOT_FOUND", fmt.Sprintf("Product %s does not exist", productID))
				}
				return err
			}
			if !product.BelongsToBranch(req.BranchID) {
				return shared.NewDomainError("PRODUCT_NOT_IN_BRANCH", fmt.Sprintf("Product '%s' does not belong to this branch", product.Name))
			}
			products[productID] = product
		}

		available := make(map[uuid.UUID]int64, len(productIDs))
		for _, productID := range productIDs {
			stock, err := repos.MovementRepo().SumSigned(ctx, productID, req.BranchID)
			if err != nil {
				return err
			}
			available[productID] = stock
			if stock < requested[productID] {
				return &ledger.InsufficientStockError{
					ProductID:   productID,
					ProductName: products[productID].Name,
					Available:   stock,
					Requested:   requested[productID],
				}
			}
		}

		actor := actorID
		sale, err = sales.NewSale(branch.OwnerID, req.BranchID, &actor)
		if err != nil {
			return err
		}
		for _, item := range req.Items {
			product := products[item.ProductID]
			unitPrice := product.Price
			if item.UnitPrice != nil {
				unitPrice = *item.UnitPrice
			}
			if _, err := sale.AddItem(product.ID, product.Name, item.Quantity, unitPrice); err != nil {
				return err
			}
		}
		if err := repos.SaleRepo().Create(ctx, sale); err != nil {
			return err
		}

		movements := make([]*ledger.StockMovement, 0, len(req.Items))
		reason := fmt.Sprintf("sale %s", sale.ID)
		for _, item := range req.Items {
			movement, err := ledger.NewStockMovement(item.ProductID, req.BranchID, ledger.MovementOut, item.Quantity, reason, nil, &actor)
			if err != nil {
				return err
			}
			movements = append(movements, movement)
		}
		if err := repos.MovementRepo().AppendAll(ctx, movements); err != nil {
			return err
		}

		for _, productID := range productIDs {
			product := products[productID]
			remaining := available[productID] - requested[productID]
			if product.IsBelowMinStock(remaining, s.defaultThreshold) {
				lowStockEvents = append(lowStockEvents, ledger.NewStockBelowThresholdEvent(
					branch.OwnerID, product.ID, req.BranchID, product.Name, remaining, thresholdFor(product, s.defaultThreshold)))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Events are published only after the transaction committed
	if s.eventPublisher != nil && len(lowStockEvents) > 0 {
		_ = s.eventPublisher.Publish(ctx, lowStockEvents...)
	}

	response := ToSaleResponse(sale)
	return &response, nil
}

func thresholdFor(product *catalog.Product, defaultThreshold int64) int64 {
	if product.MinStock != nil {
		return *product.MinStock
	}
	return defaultThreshold
}

// GetSale loads one sale with its items
func (s *SaleService) GetSale(ctx context.Context, scope identity.AccessScope, saleID uuid.UUID) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	branch, err := s.branchRepo.FindByID(ctx, sale.BranchID)
	if err != nil {
		return nil, err
	}
	if !scope.CanAccessBranch(branch.ID, branch.OwnerID) {
		return nil, shared.ErrForbidden
	}
	response := ToSaleResponse(sale)
	return &response, nil
}

// ListSales returns a branch's sales, newest first
func (s *SaleService) ListSales(ctx context.Context, scope identity.AccessScope, branchID uuid.UUID, filter SaleListFilter) (*shared.Paginated[SaleResponse], error) {
	branch, err := s.branchRepo.FindByID(ctx, branchID)
	if err != nil {
		return nil, err
	}
	if !scope.CanAccessBranch(branch.ID, branch.OwnerID) {
		return nil, shared.ErrForbidden
	}

	domainFilter := sales.SaleFilter{
		Filter: shared.DefaultFilter(),
		From:   filter.From,
		To:     filter.To,
	}
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}

	page, err := s.saleRepo.FindByBranch(ctx, branchID, domainFilter)
	if err != nil {
		return nil, err
	}
	response := ToSaleListResponse(page)
	return &response, nil
}
