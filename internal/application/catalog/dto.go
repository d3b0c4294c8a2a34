package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sysstock/backend/internal/domain/catalog"
)

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// UpdateCategoryRequest represents a request to rename a category
type UpdateCategoryRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	BranchID   uuid.UUID       `json:"branch_id" binding:"required"`
	Name       string          `json:"name" binding:"required,max=255"`
	Price      decimal.Decimal `json:"price" binding:"required"`
	CategoryID *uuid.UUID      `json:"category_id"`
	SKU        string          `json:"sku" binding:"omitempty,max=64"`
	MinStock   *int64          `json:"min_stock"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name       string          `json:"name" binding:"required,max=255"`
	Price      decimal.Decimal `json:"price" binding:"required"`
	CategoryID *uuid.UUID      `json:"category_id"`
	SKU        string          `json:"sku" binding:"omitempty,max=64"`
	MinStock   *int64          `json:"min_stock"`
}

// ProductResponse represents a product in API responses. Stock is derived
// from the movement ledger at read time.
type ProductResponse struct {
	ID         uuid.UUID       `json:"id"`
	BranchID   uuid.UUID       `json:"branch_id"`
	CategoryID *uuid.UUID      `json:"category_id,omitempty"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	SKU        *string         `json:"sku,omitempty"`
	MinStock   *int64          `json:"min_stock,omitempty"`
	Stock      int64           `json:"stock"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ProductListFilter represents filter options for product listings
type ProductListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ToCategoryResponse converts a category aggregate to its API representation
func ToCategoryResponse(category *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:        category.ID,
		Name:      category.Name,
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
}

// ToProductResponse converts a product aggregate and its derived stock
func ToProductResponse(product *catalog.Product, stock int64) ProductResponse {
	return ProductResponse{
		ID:         product.ID,
		BranchID:   product.BranchID,
		CategoryID: product.CategoryID,
		Name:       product.Name,
		Price:      product.Price,
		SKU:        product.SKU,
		MinStock:   product.MinStock,
		Stock:      stock,
		CreatedAt:  product.CreatedAt,
		UpdatedAt:  product.UpdatedAt,
	}
}
