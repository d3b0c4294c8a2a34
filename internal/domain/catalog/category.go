package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sysstock/backend/internal/domain/shared"
)

// Category groups products within one owner's catalog.
// (owner, name) is unique, case-insensitive.
type Category struct {
	shared.OwnedAggregateRoot
	Name string `gorm:"size:100;not null;uniqueIndex:idx_categories_owner_name,priority:2"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category for an owner
func NewCategory(ownerID uuid.UUID, name string) (*Category, error) {
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Owner ID cannot be empty")
	}
	name = strings.TrimSpace(name)
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}

	return &Category{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		Name:               name,
	}, nil
}

// Rename changes the category name
func (c *Category) Rename(name string) error {
	name = strings.TrimSpace(name)
	if err := validateCategoryName(name); err != nil {
		return err
	}
	c.Name = name
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

func validateCategoryName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 100 characters")
	}
	if isDigitsOnly(name) {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be only digits")
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
