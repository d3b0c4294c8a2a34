package handler

import (
	"github.com/gin-gonic/gin"
	appledger "github.com/sysstock/backend/internal/application/ledger"
)

// MovementHandler handles stock movement endpoints
type MovementHandler struct {
	BaseHandler
	ledgerService *appledger.LedgerService
}

// NewMovementHandler creates a new MovementHandler
func NewMovementHandler(ledgerService *appledger.LedgerService) *MovementHandler {
	return &MovementHandler{ledgerService: ledgerService}
}

// Record appends an IN or OUT movement to a product's ledger
func (h *MovementHandler) Record(c *gin.Context) {
	scope, ok := h.requireScope(c)
	if !ok {
		return
	}

	var req appledger.RecordMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	movement, err := h.ledgerService.RecordMovement(c.Request.Context(), scope, scope.UserID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, movement)
}

// List returns a branch's movements, newest first
func (h *MovementHandler) List(c *gin.Context) {
	scope, ok := h.requireScope(c)
	if !ok {
		return
	}

	branchID, ok := h.parseBranchIDQuery(c)
	if !ok {
		return
	}

	var filter appledger.MovementListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.ledgerService.ListMovements(c.Request.Context(), scope, branchID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize, page.TotalPages)
}

// Stock returns a product's current stock, derived from its ledger
func (h *MovementHandler) Stock(c *gin.Context) {
	scope, ok := h.requireScope(c)
	if !ok {
		return
	}

	productID, ok := h.parseID(c)
	if !ok {
		return
	}

	stock, err := h.ledgerService.CurrentStock(c.Request.Context(), scope, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stock)
}

// Kardex returns a product's chronological ledger with running balances
func (h *MovementHandler) Kardex(c *gin.Context) {
	scope, ok := h.requireScope(c)
	if !ok {
		return
	}

	productID, ok := h.parseID(c)
	if !ok {
		return
	}

	var filter appledger.MovementListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	entries, err := h.ledgerService.Kardex(c.Request.Context(), scope, productID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entries)
}
