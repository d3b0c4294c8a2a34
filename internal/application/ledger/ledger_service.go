package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/sysstock/backend/internal/domain/catalog"
	"github.com/sysstock/backend/internal/domain/identity"
	"github.com/sysstock/backend/internal/domain/ledger"
	"github.com/sysstock/backend/internal/domain/shared"
	"github.com/sysstock/backend/internal/domain/tenant"
)

// LedgerService exposes the stock ledger: appending movements, deriving
// stock levels, and movement history. Stock is never stored as a counter;
// every read sums the signed movement history.
type LedgerService struct {
	branchRepo       tenant.BranchRepository
	productRepo      catalog.ProductRepository
	movementRepo     ledger.StockMovementRepository
	txScope          TransactionScope
	eventPublisher   shared.EventPublisher
	defaultThreshold int64
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(
	branchRepo tenant.BranchRepository,
	productRepo catalog.ProductRepository,
	movementRepo ledger.StockMovementRepository,
	txScope TransactionScope,
	defaultThreshold int64,
) *LedgerService {
	return &LedgerService{
		branchRepo:       branchRepo,
		productRepo:      productRepo,
		movementRepo:     movementRepo,
		txScope:          txScope,
		defaultThreshold: defaultThreshold,
	}
}

// SetEventPublisher sets the publisher for low-stock events
func (s *LedgerService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// RecordMovement appends one row to the ledger. IN movements are always
// accepted for a valid product; OUT movements additionally check sufficiency
// under the product row lock, the same serialization point sales use.
func (s *LedgerService) RecordMovement(ctx context.Context, scope identity.AccessScope, actorID uuid.UUID, req RecordMovementRequest) (*MovementResponse, error) {
	kind, err := ledger.ParseMovementKind(req.Kind)
	if err != nil {
		return nil, err
	}
	if req.Quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Movement quantity must be a positive integer")
	}

	var movement *ledger.StockMovement
	var lowStockEvent shared.DomainEvent

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		product, err := repos.ProductRepo().FindByIDForUpdate(ctx, req.ProductID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("PRODUCT_NOT_FOUND", fmt.Sprintf("Product %s does not exist", req.ProductID))
			}
			return err
		}

		branch, err := s.branchRepo.FindByID(ctx, product.BranchID)
		if err != nil {
			return err
		}
		if !scope.CanAccessBranch(branch.ID, branch.OwnerID) {
			return shared.ErrForbidden
		}

		if kind == ledger.MovementOut {
			stock, err := repos.MovementRepo().SumSigned(ctx, product.ID, product.BranchID)
			if err != nil {
				return err
			}
			if stock < req.Quantity {
				return &ledger.InsufficientStockError{
					ProductID:   product.ID,
					ProductName: product.Name,
					Available:   stock,
					Requested:   req.Quantity,
				}
			}
			remaining := stock - req.Quantity
			if product.IsBelowMinStock(remaining, s.defaultThreshold) {
				threshold := s.defaultThreshold
				if product.MinStock != nil {
					threshold = *product.MinStock
				}
				lowStockEvent = ledger.NewStockBelowThresholdEvent(
					branch.OwnerID, product.ID, product.BranchID, product.Name, remaining, threshold)
			}
		}

		actor := actorID
		movement, err = ledger.NewStockMovement(product.ID, product.BranchID, kind, req.Quantity, req.Reason, req.UnitCost, &actor)
		if err != nil {
			return err
		}
		return repos.MovementRepo().Append(ctx, movement)
	})
	if err != nil {
		return nil, err
	}

	if s.eventPublisher != nil && lowStockEvent != nil {
		_ = s.eventPublisher.Publish(ctx, lowStockEvent)
	}

	response := ToMovementResponse(movement)
	return &response, nil
}

// CurrentStock derives the stock level of one product from its full history
func (s *LedgerService) CurrentStock(ctx context.Context, scope identity.AccessScope, productID uuid.UUID) (*StockResponse, error) {
	product, branch, err := s.resolveProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !scope.CanAccessBranch(branch.ID, branch.OwnerID) {
		return nil, shared.ErrForbidden
	}

	stock, err := s.movementRepo.SumSigned(ctx, product.ID, product.BranchID)
	if err != nil {
		return nil, err
	}
	return &StockResponse{ProductID: product.ID, BranchID: product.BranchID, Stock: stock}, nil
}

// Kardex returns a product's movement history with running balances,
// oldest first, optionally bounded by a date range.
func (s *LedgerService) Kardex(ctx context.Context, scope identity.AccessScope, productID uuid.UUID, filter MovementListFilter) ([]KardexEntryResponse, error) {
	product, branch, err := s.resolveProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !scope.CanAccessBranch(branch.ID, branch.OwnerID) {
		return nil, shared.ErrForbidden
	}

	movements, err := s.movementRepo.FindByProductAndBranch(ctx, product.ID, product.BranchID, filter.From, filter.To)
	if err != nil {
		return nil, err
	}
	return ToKardexResponse(ledger.BuildKardex(movements)), nil
}

// ListMovements returns a branch's movements, newest first
func (s *LedgerService) ListMovements(ctx context.Context, scope identity.AccessScope, branchID uuid.UUID, filter MovementListFilter) (*shared.Paginated[MovementResponse], error) {
	branch, err := s.branchRepo.FindByID(ctx, branchID)
	if err != nil {
		return nil, err
	}
	if !scope.CanAccessBranch(branch.ID, branch.OwnerID) {
		return nil, shared.ErrForbidden
	}

	domainFilter := ledger.MovementFilter{
		ProductID: filter.ProductID,
		From:      filter.From,
		To:        filter.To,
	}
	if filter.Kind != "" {
		kind, err := ledger.ParseMovementKind(filter.Kind)
		if err != nil {
			return nil, err
		}
		domainFilter.Kind = &kind
	}

	page := shared.DefaultFilter()
	if filter.Page > 0 {
		page.Page = filter.Page
	}
	if filter.PageSize > 0 {
		page.PageSize = filter.PageSize
	}

	movements, total, err := s.movementRepo.FindByBranch(ctx, branchID, domainFilter, page)
	if err != nil {
		return nil, err
	}
	items := make([]MovementResponse, 0, len(movements))
	for i := range movements {
		items = append(items, ToMovementResponse(&movements[i]))
	}
	result := shared.NewPaginated(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (s *LedgerService) resolveProduct(ctx context.Context, productID uuid.UUID) (*catalog.Product, *tenant.Branch, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, nil, err
	}
	branch, err := s.branchRepo.FindByID(ctx, product.BranchID)
	if err != nil {
		return nil, nil, err
	}
	return product, branch, nil
}
