package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sysstock/backend/internal/domain/sales"
	"github.com/sysstock/backend/internal/domain/shared"
)

// CreateSaleRequest represents a request to commit a sale
type CreateSaleRequest struct {
	BranchID uuid.UUID               `json:"branch_id" binding:"required"`
	Items    []CreateSaleItemRequest `json:"items" binding:"required,min=1,dive"`
}

// CreateSaleItemRequest is one requested line of a sale. UnitPrice is
// optional; when omitted the product's current catalog price is captured.
type CreateSaleItemRequest struct {
	ProductID uuid.UUID        `json:"product_id" binding:"required"`
	Quantity  int64            `json:"quantity" binding:"required,min=1"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// SaleItemResponse represents a sale line in API responses
type SaleItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// SaleResponse represents a sale in API responses
type SaleResponse struct {
	ID        uuid.UUID          `json:"id"`
	BranchID  uuid.UUID          `json:"branch_id"`
	ActorID   *uuid.UUID         `json:"actor_id,omitempty"`
	Items     []SaleItemResponse `json:"items"`
	Total     decimal.Decimal    `json:"total"`
	CreatedAt time.Time          `json:"created_at"`
}

// SaleListFilter represents filter options for sale listings
type SaleListFilter struct {
	From     *time.Time `form:"from" time_format:"2006-01-02"`
	To       *time.Time `form:"to" time_format:"2006-01-02"`
	Page     int        `form:"page" binding:"omitempty,min=1"`
	PageSize int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ToSaleResponse converts a sale aggregate to its API representation
func ToSaleResponse(sale *sales.Sale) SaleResponse {
	items := make([]SaleItemResponse, 0, len(sale.Items))
	for _, item := range sale.Items {
		items = append(items, SaleItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount(),
		})
	}
	return SaleResponse{
		ID:        sale.ID,
		BranchID:  sale.BranchID,
		ActorID:   sale.ActorID,
		Items:     items,
		Total:     sale.Total(),
		CreatedAt: sale.CreatedAt,
	}
}

// ToSaleListResponse converts a page of sales
func ToSaleListResponse(page *shared.Paginated[*sales.Sale]) shared.Paginated[SaleResponse] {
	items := make([]SaleResponse, 0, len(page.Items))
	for _, sale := range page.Items {
		items = append(items, ToSaleResponse(sale))
	}
	return shared.Paginated[SaleResponse]{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}
}
