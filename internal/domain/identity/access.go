package identity

import (
	"github.com/google/uuid"
	"github.com/sysstock/backend/internal/domain/shared"
)

// AccessScope is the capability object the HTTP layer resolves once per
// request and passes into every core operation. It answers exactly one
// question: which branches may this actor touch.
//
// superuser: every branch. owner: branches it owns. employee: the single
// assigned branch. Unknown roles never produce a scope.
type AccessScope struct {
	UserID uuid.UUID
	Role   Role
	// ownerID is the tenant key for owner/employee scopes, nil for superusers
	ownerID *uuid.UUID
	// branchID is set only for employee scopes
	branchID *uuid.UUID
}

// NewAccessScope derives the scope for a user. Returns ErrForbidden for any
// role outside the closed set (default deny).
func NewAccessScope(user *User) (AccessScope, error) {
	switch user.Role {
	case RoleSuperuser:
		return AccessScope{UserID: user.ID, Role: RoleSuperuser}, nil
	case RoleOwner:
		if user.OwnerID == nil {
			return AccessScope{}, shared.NewDomainError("INVALID_SCOPE", "Owner account has no tenant key")
		}
		return AccessScope{UserID: user.ID, Role: RoleOwner, ownerID: user.OwnerID}, nil
	case RoleEmployee:
		if user.OwnerID == nil || user.BranchID == nil {
			return AccessScope{}, shared.NewDomainError("INVALID_SCOPE", "Employee account has no assigned branch")
		}
		return AccessScope{UserID: user.ID, Role: RoleEmployee, ownerID: user.OwnerID, branchID: user.BranchID}, nil
	default:
		return AccessScope{}, shared.ErrForbidden
	}
}

// IsSuperuser returns true for unrestricted scopes
func (s AccessScope) IsSuperuser() bool {
	return s.Role == RoleSuperuser
}

// OwnerID returns the tenant key the scope is restricted to.
// The second return is false for superuser scopes.
func (s AccessScope) OwnerID() (uuid.UUID, bool) {
	if s.ownerID == nil {
		return uuid.Nil, false
	}
	return *s.ownerID, true
}

// BranchID returns the single branch an employee scope is pinned to.
// The second return is false for owner and superuser scopes.
func (s AccessScope) BranchID() (uuid.UUID, bool) {
	if s.branchID == nil {
		return uuid.Nil, false
	}
	return *s.branchID, true
}

// CanAccessBranch reports whether the scope authorizes operations against a
// branch with the given ID and owner.
func (s AccessScope) CanAccessBranch(branchID, branchOwnerID uuid.UUID) bool {
	switch s.Role {
	case RoleSuperuser:
		return true
	case RoleOwner:
		return s.ownerID != nil && *s.ownerID == branchOwnerID
	case RoleEmployee:
		return s.branchID != nil && *s.branchID == branchID
	default:
		return false
	}
}

// CanManageBranches reports whether the scope may create, update, or delete
// branches. Employees never manage branches.
func (s AccessScope) CanManageBranches() bool {
	return s.Role == RoleSuperuser || s.Role == RoleOwner
}
