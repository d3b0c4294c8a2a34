package persistence

import (
	"context"

	appledger "github.com/sysstock/backend/internal/application/ledger"
	appsales "github.com/sysstock/backend/internal/application/sales"
	apptenant "github.com/sysstock/backend/internal/application/tenant"
	"github.com/sysstock/backend/internal/domain/catalog"
	"github.com/sysstock/backend/internal/domain/identity"
	"github.com/sysstock/backend/internal/domain/ledger"
	"github.com/sysstock/backend/internal/domain/sales"
	"github.com/sysstock/backend/internal/domain/tenant"
	"gorm.io/gorm"
)

// SalesTransactionScope runs sale commits inside one database transaction.
// The repositories handed to the callback all share that transaction, so
// FindByIDForUpdate row locks hold until the callback returns.
type SalesTransactionScope struct {
	db *gorm.DB
}

// NewSalesTransactionScope creates a new SalesTransactionScope
func NewSalesTransactionScope(db *gorm.DB) *SalesTransactionScope {
	return &SalesTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *SalesTransactionScope) Execute(ctx context.Context, fn func(repos appsales.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&salesTxRepositories{tx: tx})
	})
}

type salesTxRepositories struct {
	tx *gorm.DB
}

func (r *salesTxRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

func (r *salesTxRepositories) MovementRepo() ledger.StockMovementRepository {
	return NewGormStockMovementRepository(r.tx)
}

func (r *salesTxRepositories) SaleRepo() sales.SaleRepository {
	return NewGormSaleRepository(r.tx)
}

// LedgerTransactionScope runs manual stock adjustments inside one
// database transaction.
type LedgerTransactionScope struct {
	db *gorm.DB
}

// NewLedgerTransactionScope creates a new LedgerTransactionScope
func NewLedgerTransactionScope(db *gorm.DB) *LedgerTransactionScope {
	return &LedgerTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *LedgerTransactionScope) Execute(ctx context.Context, fn func(repos appledger.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ledgerTxRepositories{tx: tx})
	})
}

type ledgerTxRepositories struct {
	tx *gorm.DB
}

func (r *ledgerTxRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

func (r *ledgerTxRepositories) MovementRepo() ledger.StockMovementRepository {
	return NewGormStockMovementRepository(r.tx)
}

// TenantTransactionScope runs branch cascade deletes inside one database
// transaction so a branch never loses part of its data.
type TenantTransactionScope struct {
	db *gorm.DB
}

// NewTenantTransactionScope creates a new TenantTransactionScope
func NewTenantTransactionScope(db *gorm.DB) *TenantTransactionScope {
	return &TenantTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *TenantTransactionScope) Execute(ctx context.Context, fn func(repos apptenant.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&tenantTxRepositories{tx: tx})
	})
}

type tenantTxRepositories struct {
	tx *gorm.DB
}

func (r *tenantTxRepositories) BranchRepo() tenant.BranchRepository {
	return NewGormBranchRepository(r.tx)
}

func (r *tenantTxRepositories) UserRepo() identity.UserRepository {
	return NewGormUserRepository(r.tx)
}

func (r *tenantTxRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

func (r *tenantTxRepositories) MovementRepo() ledger.StockMovementRepository {
	return NewGormStockMovementRepository(r.tx)
}

func (r *tenantTxRepositories) SaleRepo() sales.SaleRepository {
	return NewGormSaleRepository(r.tx)
}

var (
	_ appsales.TransactionScope  = (*SalesTransactionScope)(nil)
	_ appledger.TransactionScope = (*LedgerTransactionScope)(nil)
	_ apptenant.TransactionScope = (*TenantTransactionScope)(nil)
)
