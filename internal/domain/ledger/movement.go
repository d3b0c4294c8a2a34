package ledger

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sysstock/backend/internal/domain/shared"
)

// MovementKind is the direction of a stock movement
type MovementKind string

const (
	MovementIn  MovementKind = "IN"
	MovementOut MovementKind = "OUT"
)

// IsValid checks if the kind is a valid MovementKind
func (k MovementKind) IsValid() bool {
	return k == MovementIn || k == MovementOut
}

// String returns the string representation of the kind
func (k MovementKind) String() string {
	return string(k)
}

// Sign returns +1 for IN and -1 for OUT
func (k MovementKind) Sign() int64 {
	if k == MovementOut {
		return -1
	}
	return 1
}

// ParseMovementKind maps user-facing kind spellings (including the Spanish
// aliases the original clients send) onto the canonical IN/OUT pair.
func ParseMovementKind(raw string) (MovementKind, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "IN", "INGRESO", "ENTRADA":
		return MovementIn, nil
	case "OUT", "EGRESO", "SALIDA":
		return MovementOut, nil
	default:
		return "", shared.NewDomainError("INVALID_KIND", "Movement kind must be IN or OUT")
	}
}

// StockMovement is one immutable row of the stock ledger. Movements are only
// ever appended; the signed sum over a (product, branch) pair is the stock
// level. There are no setters on this type.
type StockMovement struct {
	shared.BaseEntity
	ProductID uuid.UUID    `gorm:"type:uuid;not null;index:idx_movements_product_branch,priority:1"`
	BranchID  uuid.UUID    `gorm:"type:uuid;not null;index:idx_movements_product_branch,priority:2"`
	Kind      MovementKind `gorm:"size:3;not null"`
	Quantity  int64        `gorm:"not null"`
	// SignedQuantity is +Quantity for IN and -Quantity for OUT. It is stored
	// for one-pass SUM aggregation and must always equal Kind.Sign()*Quantity.
	SignedQuantity int64            `gorm:"not null"`
	Reason         string           `gorm:"size:255"`
	UnitCost       *decimal.Decimal `gorm:"type:decimal(12,2)"`
	ActorID        *uuid.UUID       `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (StockMovement) TableName() string {
	return "stock_movements"
}

// NewStockMovement creates a new immutable ledger row. It validates shape
// only; sufficiency against the current balance is the caller's check.
func NewStockMovement(productID, branchID uuid.UUID, kind MovementKind, quantity int64, reason string, unitCost *decimal.Decimal, actorID *uuid.UUID) (*StockMovement, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BRANCH", "Branch ID cannot be empty")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Movement kind must be IN or OUT")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Movement quantity must be a positive integer")
	}
	if len(reason) > 255 {
		return nil, shared.NewDomainError("INVALID_REASON", "Reason cannot exceed 255 characters")
	}
	if unitCost != nil && unitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}

	return &StockMovement{
		BaseEntity:     shared.NewBaseEntity(),
		ProductID:      productID,
		BranchID:       branchID,
		Kind:           kind,
		Quantity:       quantity,
		SignedQuantity: kind.Sign() * quantity,
		Reason:         strings.TrimSpace(reason),
		UnitCost:       unitCost,
		ActorID:        actorID,
	}, nil
}

// IsConsistent verifies the stored signed quantity matches kind and quantity
func (m *StockMovement) IsConsistent() bool {
	return m.SignedQuantity == m.Kind.Sign()*m.Quantity
}

// KardexEntry is one movement with the running balance after it was applied
type KardexEntry struct {
	Movement StockMovement
	Balance  int64
}

// BuildKardex computes running balances over chronologically ordered movements
func BuildKardex(movements []StockMovement) []KardexEntry {
	entries := make([]KardexEntry, 0, len(movements))
	var balance int64
	for _, m := range movements {
		balance += m.SignedQuantity
		entries = append(entries, KardexEntry{Movement: m, Balance: balance})
	}
	return entries
}

// StockBelowThresholdEvent is emitted when an OUT movement leaves a product
// at or below its low-stock threshold.
type StockBelowThresholdEvent struct {
	shared.BaseDomainEvent
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	BranchID    uuid.UUID `json:"branch_id"`
	Stock       int64     `json:"stock"`
	Threshold   int64     `json:"threshold"`
}

// EventTypeStockBelowThreshold is the event type identifier
const EventTypeStockBelowThreshold = "ledger.stock_below_threshold"

// NewStockBelowThresholdEvent creates a new low-stock event
func NewStockBelowThresholdEvent(ownerID, productID, branchID uuid.UUID, productName string, stock, threshold int64) *StockBelowThresholdEvent {
	return &StockBelowThresholdEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockBelowThreshold, "StockMovement", productID, ownerID),
		ProductID:       productID,
		ProductName:     productName,
		BranchID:        branchID,
		Stock:           stock,
		Threshold:       threshold,
	}
}

var _ shared.DomainEvent = (*StockBelowThresholdEvent)(nil)

// InsufficientStockError reports a failed sufficiency check. It carries the
// available vs requested quantities for user display.
type InsufficientStockError struct {
	ProductID   uuid.UUID
	ProductName string
	Available   int64
	Requested   int64
}

// Error implements the error interface
func (e *InsufficientStockError) Error() string {
	name := e.ProductName
	if name == "" {
		name = e.ProductID.String()
	}
	return fmt.Sprintf("insufficient stock for '%s': available %d, requested %d", name, e.Available, e.Requested)
}

// Unwrap lets callers match with errors.Is(err, shared.ErrInsufficientStock)
func (e *InsufficientStockError) Unwrap() error {
	return shared.ErrInsufficientStock
}
