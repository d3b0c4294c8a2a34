package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesReportFilter bounds a sales report to a branch and date range. The
// range is inclusive on both ends; To covers the whole day when only a date
// is given.
type SalesReportFilter struct {
	BranchID uuid.UUID `form:"branch_id" binding:"required"`
	From     time.Time `form:"from" binding:"required" time_format:"2006-01-02"`
	To       time.Time `form:"to" binding:"required" time_format:"2006-01-02"`
}

// SalesSummaryResponse aggregates sales over a period
type SalesSummaryResponse struct {
	From          time.Time       `json:"from"`
	To            time.Time       `json:"to"`
	SaleCount     int64           `json:"sale_count"`
	ItemsSold     int64           `json:"items_sold"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	AvgSaleAmount decimal.Decimal `json:"avg_sale_amount"`
}

// DailySalesResponse is one day's totals inside a range
type DailySalesResponse struct {
	Date        string          `json:"date"`
	SaleCount   int64           `json:"sale_count"`
	ItemsSold   int64           `json:"items_sold"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// ProductSalesResponse ranks one product's sales inside a range
type ProductSalesResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// LowStockItemResponse is one product at or below its threshold
type LowStockItemResponse struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	BranchID    uuid.UUID `json:"branch_id"`
	Stock       int64     `json:"stock"`
	Threshold   int64     `json:"threshold"`
}

// KardexReportFilter bounds a kardex report
type KardexReportFilter struct {
	BranchID uuid.UUID  `form:"branch_id" binding:"required"`
	From     *time.Time `form:"from" time_format:"2006-01-02"`
	To       *time.Time `form:"to" time_format:"2006-01-02"`
}

// KardexRowResponse is one ledger row with its running balance
type KardexRowResponse struct {
	MovementID uuid.UUID        `json:"movement_id"`
	Kind       string           `json:"kind"`
	Quantity   int64            `json:"quantity"`
	Reason     string           `json:"reason,omitempty"`
	UnitCost   *decimal.Decimal `json:"unit_cost,omitempty"`
	Balance    int64            `json:"balance"`
	CreatedAt  time.Time        `json:"created_at"`
}
