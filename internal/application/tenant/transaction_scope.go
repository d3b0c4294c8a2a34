package tenant

import (
	"context"

	"github.com/sysstock/backend/internal/domain/catalog"
	"github.com/sysstock/backend/internal/domain/identity"
	"github.com/sysstock/backend/internal/domain/ledger"
	"github.com/sysstock/backend/internal/domain/sales"
	"github.com/sysstock/backend/internal/domain/tenant"
)

// TransactionScope provides transactional access to everything a branch
// removal touches. Deleting a branch takes its employees, products,
// movements, and sales with it in one transaction.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides repositories bound to one open transaction
type TransactionalRepositories interface {
	// BranchRepo returns the branch repository scoped to the transaction
	BranchRepo() tenant.BranchRepository
	// UserRepo returns the user repository scoped to the transaction
	UserRepo() identity.UserRepository
	// ProductRepo returns the product repository scoped to the transaction
	ProductRepo() catalog.ProductRepository
	// MovementRepo returns the stock ledger scoped to the transaction
	MovementRepo() ledger.StockMovementRepository
	// SaleRepo returns the sale repository scoped to the transaction
	SaleRepo() sales.SaleRepository
}

// NoOpTransactionScope runs the function against plain repositories without
// a real transaction. Used in tests.
type NoOpTransactionScope struct {
	branchRepo   tenant.BranchRepository
	userRepo     identity.UserRepository
	productRepo  catalog.ProductRepository
	movementRepo ledger.StockMovementRepository
	saleRepo     sales.SaleRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	branchRepo tenant.BranchRepository,
	userRepo identity.UserRepository,
	productRepo catalog.ProductRepository,
	movementRepo ledger.StockMovementRepository,
	saleRepo sales.SaleRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		branchRepo:   branchRepo,
		userRepo:     userRepo,
		productRepo:  productRepo,
		movementRepo: movementRepo,
		saleRepo:     saleRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// BranchRepo returns the branch repository.
func (s *NoOpTransactionScope) BranchRepo() tenant.BranchRepository { return s.branchRepo }

// UserRepo returns the user repository.
func (s *NoOpTransactionScope) UserRepo() identity.UserRepository { return s.userRepo }

// ProductRepo returns the product repository.
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository { return s.productRepo }

// MovementRepo returns the stock movement repository.
func (s *NoOpTransactionScope) MovementRepo() ledger.StockMovementRepository { return s.movementRepo }

// SaleRepo returns the sale repository.
func (s *NoOpTransactionScope) SaleRepo() sales.SaleRepository { return s.saleRepo }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
