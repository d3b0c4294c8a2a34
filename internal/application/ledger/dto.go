package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sysstock/backend/internal/domain/ledger"
)

// RecordMovementRequest represents a request to append a ledger row.
// Kind accepts IN/OUT and their Spanish aliases.
type RecordMovementRequest struct {
	ProductID uuid.UUID        `json:"product_id" binding:"required"`
	Kind      string           `json:"kind" binding:"required,movementkind"`
	Quantity  int64            `json:"quantity" binding:"required,min=1"`
	Reason    string           `json:"reason" binding:"omitempty,max=255"`
	UnitCost  *decimal.Decimal `json:"unit_cost"`
}

// MovementResponse represents a ledger row in API responses
type MovementResponse struct {
	ID             uuid.UUID        `json:"id"`
	ProductID      uuid.UUID        `json:"product_id"`
	BranchID       uuid.UUID        `json:"branch_id"`
	Kind           string           `json:"kind"`
	Quantity       int64            `json:"quantity"`
	SignedQuantity int64            `json:"signed_quantity"`
	Reason         string           `json:"reason,omitempty"`
	UnitCost       *decimal.Decimal `json:"unit_cost,omitempty"`
	ActorID        *uuid.UUID       `json:"actor_id,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
}

// StockResponse reports the derived stock level of a product
type StockResponse struct {
	ProductID uuid.UUID `json:"product_id"`
	BranchID  uuid.UUID `json:"branch_id"`
	Stock     int64     `json:"stock"`
}

// KardexEntryResponse is one movement with its running balance
type KardexEntryResponse struct {
	Movement MovementResponse `json:"movement"`
	Balance  int64            `json:"balance"`
}

// MovementListFilter represents filter options for movement listings
type MovementListFilter struct {
	Kind      string     `form:"kind"`
	ProductID *uuid.UUID `form:"product_id"`
	From      *time.Time `form:"from" time_format:"2006-01-02"`
	To        *time.Time `form:"to" time_format:"2006-01-02"`
	Page      int        `form:"page" binding:"omitempty,min=1"`
	PageSize  int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// LowStockItemResponse is one product at or below its alert threshold
type LowStockItemResponse struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	BranchID  uuid.UUID `json:"branch_id"`
	Stock     int64     `json:"stock"`
	Threshold int64     `json:"threshold"`
}

// ToMovementResponse converts a ledger row to its API representation
func ToMovementResponse(m *ledger.StockMovement) MovementResponse {
	return MovementResponse{
		ID:             m.ID,
		ProductID:      m.ProductID,
		BranchID:       m.BranchID,
		Kind:           m.Kind.String(),
		Quantity:       m.Quantity,
		SignedQuantity: m.SignedQuantity,
		Reason:         m.Reason,
		UnitCost:       m.UnitCost,
		ActorID:        m.ActorID,
		CreatedAt:      m.CreatedAt,
	}
}

// ToKardexResponse converts kardex entries to their API representation
func ToKardexResponse(entries []ledger.KardexEntry) []KardexEntryResponse {
	out := make([]KardexEntryResponse, 0, len(entries))
	for _, e := range entries {
		movement := e.Movement
		out = append(out, KardexEntryResponse{
			Movement: ToMovementResponse(&movement),
			Balance:  e.Balance,
		})
	}
	return out
}
