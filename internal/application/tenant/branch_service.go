package tenant

import (
	"context"

	"github.com/google/uuid"

	"github.com/sysstock/backend/internal/domain/identity"
	"github.com/sysstock/backend/internal/domain/shared"
	"github.com/sysstock/backend/internal/domain/tenant"
)

// BranchService manages the branch registry. Only owners and superusers
// touch branches; employees are read-only within their assigned branch.
type BranchService struct {
	branchRepo tenant.BranchRepository
	txScope    TransactionScope
}

// NewBranchService creates a new BranchService
func NewBranchService(branchRepo tenant.BranchRepository, txScope TransactionScope) *BranchService {
	return &BranchService{branchRepo: branchRepo, txScope: txScope}
}

// CreateBranch creates a branch under the calling owner's account.
// Superusers may create branches for any owner via req.OwnerID.
func (s *BranchService) CreateBranch(ctx context.Context, scope identity.AccessScope, req CreateBranchRequest) (*BranchResponse, error) {
	if !scope.CanManageBranches() {
		return nil, shared.ErrForbidden
	}

	ownerID, hasOwner := scope.OwnerID()
	if scope.IsSuperuser() {
		if req.OwnerID == nil {
			return nil, shared.NewDomainError("INVALID_OWNER", "Superuser must name the owning account")
		}
		ownerID = *req.OwnerID
	} else if !hasOwner {
		return nil, shared.ErrForbidden
	}

	taken, err := s.branchRepo.ExistsByOwnerAndName(ctx, ownerID, req.Name, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A branch with this name already exists")
	}

	branch, err := tenant.NewBranch(ownerID, req.Name, req.Address, req.Phone)
	if err != nil {
		return nil, err
	}
	if err := s.branchRepo.Create(ctx, branch); err != nil {
		return nil, err
	}

	response := ToBranchResponse(branch)
	return &response, nil
}

// GetBranch loads one branch
func (s *BranchService) GetBranch(ctx context.Context, scope identity.AccessScope, branchID uuid.UUID) (*BranchResponse, error) {
	branch, err := s.branchRepo.FindByID(ctx, branchID)
	if err != nil {
		return nil, err
	}
	if !scope.CanAccessBranch(branch.ID, branch.OwnerID) {
		return nil, shared.ErrForbidden
	}
	response := ToBranchResponse(branch)
	return &response, nil
}

// ListBranches returns the branches visible to the caller: all of them for
// superusers, the owner's for owners, the single assigned one for employees.
func (s *BranchService) ListBranches(ctx context.Context, scope identity.AccessScope, filter BranchListFilter) (*shared.Paginated[BranchResponse], error) {
	page := shared.DefaultFilter()
	page.Search = filter.Search
	if filter.Page > 0 {
		page.Page = filter.Page
	}
	if filter.PageSize > 0 {
		page.PageSize = filter.PageSize
	}

	if branchID, ok := scope.BranchID(); ok {
		branch, err := s.branchRepo.FindByID(ctx, branchID)
		if err != nil {
			return nil, err
		}
		result := shared.NewPaginated([]BranchResponse{ToBranchResponse(branch)}, 1, 1, page.PageSize)
		return &result, nil
	}

	var branches []tenant.Branch
	var total int64
	var err error
	if ownerID, ok := scope.OwnerID(); ok {
		branches, total, err = s.branchRepo.FindByOwner(ctx, ownerID, page)
	} else {
		branches, total, err = s.branchRepo.FindAll(ctx, page)
	}
	if err != nil {
		return nil, err
	}

	items := make([]BranchResponse, 0, len(branches))
	for i := range branches {
		items = append(items, ToBranchResponse(&branches[i]))
	}
	result := shared.NewPaginated(items, total, page.Page, page.PageSize)
	return &result, nil
}

// UpdateBranch changes a branch's name, address, and phone
func (s *BranchService) UpdateBranch(ctx context.Context, scope identity.AccessScope, branchID uuid.UUID, req UpdateBranchRequest) (*BranchResponse, error) {
	if !scope.CanManageBranches() {
		return nil, shared.ErrForbidden
	}
	branch, err := s.branchRepo.FindByID(ctx, branchID)
	if err != nil {
		return nil, err
	}
	if !scope.CanAccessBranch(branch.ID, branch.OwnerID) {
		return nil, shared.ErrForbidden
	}

	taken, err := s.branchRepo.ExistsByOwnerAndName(ctx, branch.OwnerID, req.Name, branch.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A branch with this name already exists")
	}

	if err := branch.Update(req.Name, req.Address, req.Phone); err != nil {
		return nil, err
	}
	if err := s.branchRepo.Update(ctx, branch); err != nil {
		return nil, err
	}

	response := ToBranchResponse(branch)
	return &response, nil
}

// DeleteBranch removes a branch together with everything that hangs off it.
// Employees, products, ledger rows, and sales of the branch disappear in
// the same transaction; a partial cascade never survives.
func (s *BranchService) DeleteBranch(ctx context.Context, scope identity.AccessScope, branchID uuid.UUID) error {
	if !scope.CanManageBranches() {
		return shared.ErrForbidden
	}
	branch, err := s.branchRepo.FindByID(ctx, branchID)
	if err != nil {
		return err
	}
	if !scope.CanAccessBranch(branch.ID, branch.OwnerID) {
		return shared.ErrForbidden
	}

	return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.UserRepo().DeleteEmployeesByBranch(ctx, branchID); err != nil {
			return err
		}
		if err := repos.SaleRepo().DeleteByBranch(ctx, branchID); err != nil {
			return err
		}
		if err := repos.MovementRepo().DeleteByBranch(ctx, branchID); err != nil {
			return err
		}
		if err := repos.ProductRepo().DeleteByBranch(ctx, branchID); err != nil {
			return err
		}
		return repos.BranchRepo().Delete(ctx, branchID)
	})
}
