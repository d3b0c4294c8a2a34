package handler

import (
	"github.com/gin-gonic/gin"
	appcatalog "github.com/sysstock/backend/internal/application/catalog"
)

// CategoryHandler handles category management endpoints
type CategoryHandler struct {
	BaseHandler
	categoryService *appcatalog.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *appcatalog.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// Create adds a category to the caller's catalog
func (h *CategoryHandler) Create(c *gin.Context) {
	scope, ok := h.requireScope(c)
	if !ok {
		return
	}

	var req appcatalog.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), scope, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, category)
}

// List returns the caller's categories
func (h *CategoryHandler) List(c *gin.Context) {
	scope, ok := h.requireScope(c)
	if !ok {
		return
	}

	var filter appcatalog.ProductListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.categoryService.ListCategories(c.Request.Context(), scope, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize, page.TotalPages)
}

// Update renames a category
func (h *CategoryHandler) Update(c *gin.Context) {
	scope, ok := h.requireScope(c)
	if !ok {
		return
	}

	categoryID, ok := h.parseID(c)
	if !ok {
		return
	}

	var req appcatalog.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	category, err := h.categoryService.UpdateCategory(c.Request.Context(), scope, categoryID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, category)
}

// Delete removes an unused category
func (h *CategoryHandler) Delete(c *gin.Context) {
	scope, ok := h.requireScope(c)
	if !ok {
		return
	}

	categoryID, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.categoryService.DeleteCategory(c.Request.Context(), scope, categoryID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
