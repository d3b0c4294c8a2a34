package handler

import (
	"github.com/gin-gonic/gin"
	appidentity "github.com/sysstock/backend/internal/application/identity"
)

// UserHandler handles account management endpoints
type UserHandler struct {
	BaseHandler
	userService *appidentity.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *appidentity.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// CreateEmployee creates an employee account on one of the caller's branches
func (h *UserHandler) CreateEmployee(c *gin.Context) {
	scope, ok := h.requireScope(c)
	if !ok {
		return
	}

	var req appidentity.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	employee, err := h.userService.CreateEmployee(c.Request.Context(), scope, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, employee)
}

// ListEmployees lists the employees assigned to a branch
func (h *UserHandler) ListEmployees(c *gin.Context) {
	scope, ok := h.requireScope(c)
	if !ok {
		return
	}

	branchID, ok := h.parseBranchIDQuery(c)
	if !ok {
		return
	}

	employees, err := h.userService.ListEmployees(c.Request.Context(), scope, branchID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, employees)
}

// ReassignEmployee moves an employee to another branch of the same owner
func (h *UserHandler) ReassignEmployee(c *gin.Context) {
	scope, ok := h.requireScope(c)
	if !ok {
		return
	}

	employeeID, ok := h.parseID(c)
	if !ok {
		return
	}

	var req appidentity.ReassignEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	employee, err := h.userService.ReassignEmployee(c.Request.Context(), scope, employeeID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, employee)
}

// DeleteEmployee removes an employee account
func (h *UserHandler) DeleteEmployee(c *gin.Context) {
	scope, ok := h.requireScope(c)
	if !ok {
		return
	}

	employeeID, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.userService.DeleteEmployee(c.Request.Context(), scope, employeeID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// GetUser retrieves an account visible to the caller
func (h *UserHandler) GetUser(c *gin.Context) {
	scope, ok := h.requireScope(c)
	if !ok {
		return
	}

	userID, ok := h.parseID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), scope, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}
