package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sysstock/backend/internal/domain/shared"
)

// SaleItem is one line of a committed sale. The unit price is captured at
// sale time so later catalog changes never alter a completed sale.
type SaleItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SaleID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName string          `gorm:"size:255;not null"`
	Quantity    int64           `gorm:"not null;check:quantity >= 1"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt   time.Time
}

// TableName returns the table name for GORM
func (SaleItem) TableName() string {
	return "sale_items"
}

// Amount returns quantity * unit price for this line
func (i SaleItem) Amount() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(i.Quantity))
}

// Sale is a committed transaction of one or more line items, each of which
// deducted stock through an OUT movement. The total is always derived from
// the items and never persisted.
type Sale struct {
	shared.OwnedAggregateRoot
	BranchID uuid.UUID `gorm:"type:uuid;not null;index"`
	// ActorID is preserved as a value even if the account is later removed
	ActorID *uuid.UUID `gorm:"type:uuid;index"`
	Items   []SaleItem `gorm:"foreignKey:SaleID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Sale) TableName() string {
	return "sales"
}

// NewSale creates an empty sale for a branch. Lines are added with AddItem;
// a sale with no items must never be committed.
func NewSale(ownerID, branchID uuid.UUID, actorID *uuid.UUID) (*Sale, error) {
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Owner ID cannot be empty")
	}
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BRANCH", "Branch ID cannot be empty")
	}

	return &Sale{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		BranchID:           branchID,
		ActorID:            actorID,
		Items:              make([]SaleItem, 0),
	}, nil
}

// AddItem appends a line to the sale
func (s *Sale) AddItem(productID uuid.UUID, productName string, quantity int64, unitPrice decimal.Decimal) (*SaleItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Item quantity must be at least 1")
	}
	if unitPrice.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price must be greater than zero")
	}

	item := SaleItem{
		ID:          uuid.New(),
		SaleID:      s.ID,
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		CreatedAt:   time.Now(),
	}
	s.Items = append(s.Items, item)

	return &s.Items[len(s.Items)-1], nil
}

// Total derives the sale total as the sum of quantity * unit price over all
// items. It is computed on read, never stored.
func (s *Sale) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.Items {
		total = total.Add(item.Amount())
	}
	return total
}

// ItemCount returns the number of lines in the sale
func (s *Sale) ItemCount() int {
	return len(s.Items)
}

// TotalQuantity returns the summed quantity across all lines
func (s *Sale) TotalQuantity() int64 {
	var total int64
	for _, item := range s.Items {
		total += item.Quantity
	}
	return total
}
