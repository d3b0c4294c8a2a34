package tenant

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sysstock/backend/internal/domain/shared"
)

// Branch represents a tenant-owned location. It is the aggregate root that
// products, stock movements, and sales hang off.
type Branch struct {
	shared.OwnedAggregateRoot
	Name    string `gorm:"size:200;not null;uniqueIndex:idx_branches_owner_name,priority:2"`
	Address string `gorm:"size:300"`
	Phone   string `gorm:"size:30"`
}

// TableName returns the table name for GORM
func (Branch) TableName() string {
	return "branches"
}

// NewBranch creates a new branch for an owner account.
// (owner, name) uniqueness is enforced by the repository/storage layer.
func NewBranch(ownerID uuid.UUID, name, address, phone string) (*Branch, error) {
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Owner ID cannot be empty")
	}
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return nil, err
	}
	if len(address) > 300 {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Address cannot exceed 300 characters")
	}
	if len(phone) > 30 {
		return nil, shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 30 characters")
	}

	return &Branch{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		Name:               name,
		Address:            strings.TrimSpace(address),
		Phone:              strings.TrimSpace(phone),
	}, nil
}

// Update changes the branch's name, address, and phone
func (b *Branch) Update(name, address, phone string) error {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return err
	}
	if len(address) > 300 {
		return shared.NewDomainError("INVALID_ADDRESS", "Address cannot exceed 300 characters")
	}
	if len(phone) > 30 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 30 characters")
	}

	b.Name = name
	b.Address = strings.TrimSpace(address)
	b.Phone = strings.TrimSpace(phone)
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return nil
}

func validateName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Branch name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Branch name cannot exceed 200 characters")
	}
	if isDigitsOnly(name) {
		return shared.NewDomainError("INVALID_NAME", "Branch name cannot be only digits")
	}
	return nil
}

func isDigitsOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
