package handler

import (
	"github.com/gin-gonic/gin"
	appsales "github.com/sysstock/backend/internal/application/sales"
)

// SaleHandler handles point of sale endpoints
type SaleHandler struct {
	BaseHandler
	saleService *appsales.SaleService
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(saleService *appsales.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// Create registers a sale, deducting stock for every line or none at all
func (h *SaleHandler) Create(c *gin.Context) {
	scope, ok := h.requireScope(c)
	if !ok {
		return
	}

	var req appsales.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sale, err := h.saleService.CreateSale(c.Request.Context(), scope, scope.UserID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, sale)
}

// GetByID retrieves a sale with its lines
func (h *SaleHandler) GetByID(c *gin.Context) {
	scope, ok := h.requireScope(c)
	if !ok {
		return
	}

	saleID, ok := h.parseID(c)
	if !ok {
		return
	}

	sale, err := h.saleService.GetSale(c.Request.Context(), scope, saleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sale)
}

// List returns a branch's sales, newest first
func (h *SaleHandler) List(c *gin.Context) {
	scope, ok := h.requireScope(c)
	if !ok {
		return
	}

	branchID, ok := h.parseBranchIDQuery(c)
	if !ok {
		return
	}

	var filter appsales.SaleListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.saleService.ListSales(c.Request.Context(), scope, branchID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize, page.TotalPages)
}
