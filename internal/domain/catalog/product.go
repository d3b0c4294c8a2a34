package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sysstock/backend/internal/domain/shared"
)

// Product is a catalog item belonging to exactly one branch.
// Current stock is never stored here; it is always derived from the
// movement ledger for the (product, branch) pair.
type Product struct {
	shared.OwnedAggregateRoot
	BranchID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	CategoryID *uuid.UUID      `gorm:"type:uuid;index"`
	Name       string          `gorm:"size:255;not null;index"`
	Price      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// SKU is unique per owner when present
	SKU *string `gorm:"size:64;index"`
	// MinStock is the optional low-stock alert threshold
	MinStock *int64
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product in a branch's catalog
func NewProduct(ownerID, branchID uuid.UUID, name string, price decimal.Decimal) (*Product, error) {
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Owner ID cannot be empty")
	}
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BRANCH", "Branch ID cannot be empty")
	}
	name = strings.TrimSpace(name)
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if err := validatePrice(price); err != nil {
		return nil, err
	}

	return &Product{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		BranchID:           branchID,
		Name:               name,
		Price:              price,
	}, nil
}

// SetCategory assigns the product to a category (nil clears it)
func (p *Product) SetCategory(categoryID *uuid.UUID) {
	p.CategoryID = categoryID
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetSKU sets the stock-keeping unit code.
// Per-owner uniqueness is checked by the application layer.
func (p *Product) SetSKU(sku string) error {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if len(sku) > 64 {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot exceed 64 characters")
	}
	p.SKU = &sku
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// SetMinStock sets the low-stock threshold (nil disables the alert)
func (p *Product) SetMinStock(minStock *int64) error {
	if minStock != nil && *minStock < 0 {
		return shared.NewDomainError("INVALID_MIN_STOCK", "Minimum stock cannot be negative")
	}
	p.MinStock = minStock
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// Rename changes the product name
func (p *Product) Rename(name string) error {
	name = strings.TrimSpace(name)
	if err := validateProductName(name); err != nil {
		return err
	}
	p.Name = name
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// ChangePrice updates the catalog price. Completed sales are unaffected:
// items capture the unit price at sale time.
func (p *Product) ChangePrice(price decimal.Decimal) error {
	if err := validatePrice(price); err != nil {
		return err
	}
	p.Price = price
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// BelongsToBranch reports whether the product is part of the given branch
func (p *Product) BelongsToBranch(branchID uuid.UUID) bool {
	return p.BranchID == branchID
}

// IsBelowMinStock reports whether the given stock level is at or below the
// product's own threshold, falling back to defaultThreshold when unset.
func (p *Product) IsBelowMinStock(stock int64, defaultThreshold int64) bool {
	threshold := defaultThreshold
	if p.MinStock != nil {
		threshold = *p.MinStock
	}
	return stock <= threshold
}

func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 255 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 255 characters")
	}
	if isDigitsOnly(name) {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be only digits")
	}
	return nil
}

func validatePrice(price decimal.Decimal) error {
	if price.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_PRICE", "Price must be greater than zero")
	}
	return nil
}
