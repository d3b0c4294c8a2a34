package handler

import (
	"github.com/gin-gonic/gin"
	appcatalog "github.com/sysstock/backend/internal/application/catalog"
)

// ProductHandler handles product management endpoints
type ProductHandler struct {
	BaseHandler
	productService *appcatalog.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *appcatalog.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// Create registers a product on a branch
func (h *ProductHandler) Create(c *gin.Context) {
	scope, ok := h.requireScope(c)
	if !ok {
		return
	}

	var req appcatalog.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), scope, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, product)
}

// GetByID retrieves a product with its derived stock
func (h *ProductHandler) GetByID(c *gin.Context) {
	scope, ok := h.requireScope(c)
	if !ok {
		return
	}

	productID, ok := h.parseID(c)
	if !ok {
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), scope, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// List returns the products of a branch
func (h *ProductHandler) List(c *gin.Context) {
	scope, ok := h.requireScope(c)
	if !ok {
		return
	}

	branchID, ok := h.parseBranchIDQuery(c)
	if !ok {
		return
	}

	var filter appcatalog.ProductListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.productService.ListProducts(c.Request.Context(), scope, branchID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize, page.TotalPages)
}

// Update changes a product's attributes
func (h *ProductHandler) Update(c *gin.Context) {
	scope, ok := h.requireScope(c)
	if !ok {
		return
	}

	productID, ok := h.parseID(c)
	if !ok {
		return
	}

	var req appcatalog.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), scope, productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// Delete removes a product that has no recorded history
func (h *ProductHandler) Delete(c *gin.Context) {
	scope, ok := h.requireScope(c)
	if !ok {
		return
	}

	productID, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), scope, productID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
