package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *User) error

	// Update updates an existing user
	Update(ctx context.Context, user *User) error

	// Delete deletes a user by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByUsername finds a user by username
	FindByUsername(ctx context.Context, username string) (*User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindEmployeesByBranch finds all employee accounts assigned to a branch
	FindEmployeesByBranch(ctx context.Context, branchID uuid.UUID) ([]*User, error)

	// DeleteEmployeesByBranch removes all employee accounts assigned to a
	// branch (cascading branch delete)
	DeleteEmployeesByBranch(ctx context.Context, branchID uuid.UUID) error

	// FindByOwner returns all accounts belonging to an owner's tenant
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*User, error)

	// ExistsByUsername checks if a username already exists
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// ExistsByEmail checks if an email already exists
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
