package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sysstock/backend/internal/domain/identity"
	"github.com/sysstock/backend/internal/domain/shared"
	"github.com/sysstock/backend/internal/domain/tenant"
	"go.uber.org/zap"
)

// UserService handles account registration and employee management
type UserService struct {
	userRepo   identity.UserRepository
	branchRepo tenant.BranchRepository
	logger     *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(
	userRepo identity.UserRepository,
	branchRepo tenant.BranchRepository,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo:   userRepo,
		branchRepo: branchRepo,
		logger:     logger,
	}
}

// RegisterOwner creates a new owner account. Owners register themselves and
// become their own tenant boundary.
func (s *UserService) RegisterOwner(ctx context.Context, req RegisterOwnerRequest) (*UserResponse, error) {
	if err := s.checkAvailability(ctx, req.Username, req.Email); err != nil {
		return nil, err
	}

	user, err := identity.NewOwner(req.Username, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.Error("Failed to create owner account", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create account")
	}

	s.logger.Info("Owner account registered",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	response := ToUserResponse(user)
	return &response, nil
}

// CreateEmployee creates an employee account pinned to one branch. The actor
// must be able to manage the branch; the employee inherits the branch owner
// as its tenant key.
func (s *UserService) CreateEmployee(ctx context.Context, scope identity.AccessScope, req CreateEmployeeRequest) (*UserResponse, error) {
	if !scope.CanManageBranches() {
		return nil, shared.ErrForbidden
	}

	branch, err := s.branchRepo.FindByID(ctx, req.BranchID)
	if err != nil {
		return nil, shared.NewDomainError("BRANCH_NOT_FOUND", "Branch not found")
	}
	if !scope.CanAccessBranch(branch.ID, branch.OwnerID) {
		return nil, shared.ErrForbidden
	}

	if err := s.checkAvailability(ctx, req.Username, req.Email); err != nil {
		return nil, err
	}

	user, err := identity.NewEmployee(branch.OwnerID, branch.ID, req.Username, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.Error("Failed to create employee account", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create account")
	}

	s.logger.Info("Employee account created",
		zap.String("user_id", user.ID.String()),
		zap.String("branch_id", branch.ID.String()),
		zap.String("owner_id", branch.OwnerID.String()))

	response := ToUserResponse(user)
	return &response, nil
}

// ListEmployees returns the employee accounts assigned to a branch
func (s *UserService) ListEmployees(ctx context.Context, scope identity.AccessScope, branchID uuid.UUID) ([]UserResponse, error) {
	branch, err := s.branchRepo.FindByID(ctx, branchID)
	if err != nil {
		return nil, shared.NewDomainError("BRANCH_NOT_FOUND", "Branch not found")
	}
	if !scope.CanAccessBranch(branch.ID, branch.OwnerID) {
		return nil, shared.ErrForbidden
	}

	employees, err := s.userRepo.FindEmployeesByBranch(ctx, branchID)
	if err != nil {
		return nil, err
	}
	return ToUserListResponse(employees), nil
}

// ReassignEmployee moves an employee to another branch of the same owner
func (s *UserService) ReassignEmployee(ctx context.Context, scope identity.AccessScope, employeeID uuid.UUID, req ReassignEmployeeRequest) (*UserResponse, error) {
	if !scope.CanManageBranches() {
		return nil, shared.ErrForbidden
	}

	employee, err := s.managedEmployee(ctx, scope, employeeID)
	if err != nil {
		return nil, err
	}

	branch, err := s.branchRepo.FindByID(ctx, req.BranchID)
	if err != nil {
		return nil, shared.NewDomainError("BRANCH_NOT_FOUND", "Branch not found")
	}
	if employee.OwnerID == nil || branch.OwnerID != *employee.OwnerID {
		return nil, shared.NewDomainError("INVALID_BRANCH", "Branch belongs to another account")
	}
	if !scope.CanAccessBranch(branch.ID, branch.OwnerID) {
		return nil, shared.ErrForbidden
	}

	if err := employee.ReassignBranch(branch.ID); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, employee); err != nil {
		if errors.Is(err, shared.ErrConcurrencyConflict) {
			return nil, err
		}
		s.logger.Error("Failed to reassign employee", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update account")
	}

	s.logger.Info("Employee reassigned",
		zap.String("user_id", employee.ID.String()),
		zap.String("branch_id", branch.ID.String()))

	response := ToUserResponse(employee)
	return &response, nil
}

// DeleteEmployee removes an employee account
func (s *UserService) DeleteEmployee(ctx context.Context, scope identity.AccessScope, employeeID uuid.UUID) error {
	if !scope.CanManageBranches() {
		return shared.ErrForbidden
	}

	employee, err := s.managedEmployee(ctx, scope, employeeID)
	if err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, employee.ID); err != nil {
		s.logger.Error("Failed to delete employee", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete account")
	}

	s.logger.Info("Employee deleted", zap.String("user_id", employee.ID.String()))
	return nil
}

// ChangePassword changes the password of the calling account after verifying
// the current one.
func (s *UserService) ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	if !user.CheckPassword(req.CurrentPassword) {
		return shared.NewDomainError("INVALID_CREDENTIALS", "Current password is incorrect")
	}
	if err := user.ChangePassword(req.NewPassword); err != nil {
		return err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, shared.ErrConcurrencyConflict) {
			return err
		}
		s.logger.Error("Failed to update password", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to update password")
	}

	s.logger.Info("Password changed", zap.String("user_id", userID.String()))
	return nil
}

// GetUser returns an account visible to the scope. Superusers see everyone,
// owners see accounts of their tenant, everyone sees themselves.
func (s *UserService) GetUser(ctx context.Context, scope identity.AccessScope, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	if user.ID != scope.UserID && !scope.IsSuperuser() {
		ownerID, ok := scope.OwnerID()
		if !ok || scope.Role != identity.RoleOwner || user.OwnerID == nil || *user.OwnerID != ownerID {
			return nil, shared.ErrForbidden
		}
	}

	response := ToUserResponse(user)
	return &response, nil
}

// managedEmployee loads an employee account and verifies the scope may
// manage it. Only employee accounts are managed through this service.
func (s *UserService) managedEmployee(ctx context.Context, scope identity.AccessScope, employeeID uuid.UUID) (*identity.User, error) {
	employee, err := s.userRepo.FindByID(ctx, employeeID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}
	if employee.Role != identity.RoleEmployee {
		return nil, shared.NewDomainError("INVALID_ROLE", "Account is not an employee")
	}
	if !scope.IsSuperuser() {
		ownerID, ok := scope.OwnerID()
		if !ok || employee.OwnerID == nil || *employee.OwnerID != ownerID {
			return nil, shared.ErrForbidden
		}
	}
	return employee, nil
}

func (s *UserService) checkAvailability(ctx context.Context, username, email string) error {
	exists, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		s.logger.Error("Failed to check username availability", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to check username availability")
	}
	if exists {
		return shared.NewDomainError("USERNAME_EXISTS", "Username already exists")
	}

	exists, err = s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		s.logger.Error("Failed to check email availability", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to check email availability")
	}
	if exists {
		return shared.NewDomainError("EMAIL_EXISTS", "Email already registered")
	}
	return nil
}
