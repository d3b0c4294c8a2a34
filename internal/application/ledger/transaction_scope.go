package ledger

import (
	"context"

	"github.com/sysstock/backend/internal/domain/catalog"
	"github.com/sysstock/backend/internal/domain/ledger"
)

// TransactionScope provides transactional access to the repositories a
// manual stock movement touches. The sufficiency check for OUT movements
// and the append itself must see the same ledger state.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides repositories bound to one open transaction
type TransactionalRepositories interface {
	// ProductRepo returns the product repository scoped to the transaction
	ProductRepo() catalog.ProductRepository
	// MovementRepo returns the stock ledger scoped to the transaction
	MovementRepo() ledger.StockMovementRepository
}

// NoOpTransactionScope runs the function against plain repositories without
// a real transaction. Used in tests.
type NoOpTransactionScope struct {
	productRepo  catalog.ProductRepository
	movementRepo ledger.StockMovementRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(productRepo catalog.ProductRepository, movementRepo ledger.StockMovementRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{productRepo: productRepo, movementRepo: movementRepo}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ProductRepo returns the product repository.
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository {
	return s.productRepo
}

// MovementRepo returns the stock movement repository.
func (s *NoOpTransactionScope) MovementRepo() ledger.StockMovementRepository {
	return s.movementRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
