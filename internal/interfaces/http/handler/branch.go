package handler

import (
	"github.com/gin-gonic/gin"
	apptenant "github.com/sysstock/backend/internal/application/tenant"
)

// BranchHandler handles branch management endpoints
type BranchHandler struct {
	BaseHandler
	branchService *apptenant.BranchService
}

// NewBranchHandler creates a new BranchHandler
func NewBranchHandler(branchService *apptenant.BranchService) *BranchHandler {
	return &BranchHandler{branchService: branchService}
}

// Create opens a new branch for the caller's account
func (h *BranchHandler) Create(c *gin.Context) {
	scope, ok := h.requireScope(c)
	if !ok {
		return
	}

	var req apptenant.CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	branch, err := h.branchService.CreateBranch(c.Request.Context(), scope, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, branch)
}

// GetByID retrieves a branch
func (h *BranchHandler) GetByID(c *gin.Context) {
	scope, ok := h.requireScope(c)
	if !ok {
		return
	}

	branchID, ok := h.parseID(c)
	if !ok {
		return
	}

	branch, err := h.branchService.GetBranch(c.Request.Context(), scope, branchID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, branch)
}

// List returns the branches visible to the caller
func (h *BranchHandler) List(c *gin.Context) {
	scope, ok := h.requireScope(c)
	if !ok {
		return
	}

	var filter apptenant.BranchListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.branchService.ListBranches(c.Request.Context(), scope, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize, page.TotalPages)
}

// Update renames or re-addresses a branch
func (h *BranchHandler) Update(c *gin.Context) {
	scope, ok := h.requireScope(c)
	if !ok {
		return
	}

	branchID, ok := h.parseID(c)
	if !ok {
		return
	}

	var req apptenant.UpdateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	branch, err := h.branchService.UpdateBranch(c.Request.Context(), scope, branchID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, branch)
}

// Delete removes a branch and everything recorded under it
func (h *BranchHandler) Delete(c *gin.Context) {
	scope, ok := h.requireScope(c)
	if !ok {
		return
	}

	branchID, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.branchService.DeleteBranch(c.Request.Context(), scope, branchID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
