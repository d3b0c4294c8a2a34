package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sysstock/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role is the closed set of account roles. Anything outside this set is
// rejected; there is no implicit fallback role.
type Role string

const (
	// RoleSuperuser has unrestricted access across all owners and branches.
	RoleSuperuser Role = "superuser"
	// RoleOwner administers its own branches, products, and employees.
	RoleOwner Role = "owner"
	// RoleEmployee operates within exactly one assigned branch.
	RoleEmployee Role = "employee"
)

// IsValid checks if the role belongs to the closed role set
func (r Role) IsValid() bool {
	switch r {
	case RoleSuperuser, RoleOwner, RoleEmployee:
		return true
	}
	return false
}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

const bcryptCost = 12

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// User represents an account in the system.
// Owners are their own tenant boundary (OwnerID == ID); employees carry the
// owner of the branch they are assigned to.
type User struct {
	shared.BaseAggregateRoot
	Username     string `gorm:"size:150;not null;uniqueIndex"`
	Email        string `gorm:"size:254;not null;uniqueIndex"`
	PasswordHash string `gorm:"size:100;not null"`
	Role         Role   `gorm:"size:20;not null"`
	// OwnerID is the tenant key: for owners it equals the user's own ID,
	// for employees it is the owner of their branch. Nil for superusers.
	OwnerID *uuid.UUID `gorm:"type:uuid;index"`
	// BranchID is the single assigned branch for employees, nil otherwise.
	BranchID    *uuid.UUID `gorm:"type:uuid;index"`
	LastLoginAt *time.Time
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewOwner creates a new owner account. The account is its own tenant key.
func NewOwner(username, email, password string) (*User, error) {
	user, err := newUser(username, email, password, RoleOwner)
	if err != nil {
		return nil, err
	}
	ownerID := user.ID
	user.OwnerID = &ownerID
	return user, nil
}

// NewEmployee creates an employee account assigned to exactly one branch
// belonging to the given owner.
func NewEmployee(ownerID, branchID uuid.UUID, username, email, password string) (*User, error) {
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Owner ID cannot be empty")
	}
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BRANCH", "Branch ID cannot be empty")
	}
	user, err := newUser(username, email, password, RoleEmployee)
	if err != nil {
		return nil, err
	}
	user.OwnerID = &ownerID
	user.BranchID = &branchID
	return user, nil
}

// NewSuperuser creates a superuser account with no tenant restriction.
func NewSuperuser(username, email, password string) (*User, error) {
	return newUser(username, email, password, RoleSuperuser)
}

func newUser(username, email, password string, role Role) (*User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	email = strings.ToLower(strings.TrimSpace(email))

	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown role")
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Username:          username,
		Email:             email,
		PasswordHash:      hash,
		Role:              role,
	}, nil
}

// CheckPassword verifies the given plaintext password against the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// ChangePassword replaces the password hash after validating the new password
func (u *User) ChangePassword(password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}
	hash, err := hashPassword(password)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	u.PasswordHash = hash
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	return nil
}

// RecordLogin updates the last login timestamp
func (u *User) RecordLogin(at time.Time) {
	u.LastLoginAt = &at
	u.UpdatedAt = time.Now()
}

// ReassignBranch moves an employee to another branch of the same owner
func (u *User) ReassignBranch(branchID uuid.UUID) error {
	if u.Role != RoleEmployee {
		return shared.NewDomainError("INVALID_ROLE", "Only employees are assigned to a branch")
	}
	if branchID == uuid.Nil {
		return shared.NewDomainError("INVALID_BRANCH", "Branch ID cannot be empty")
	}
	u.BranchID = &branchID
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	return nil
}

func validateUsername(username string) error {
	if username == "" {
		return shared.NewDomainError("INVALID_USERNAME", "Username cannot be empty")
	}
	if len(username) < 3 || len(username) > 150 {
		return shared.NewDomainError("INVALID_USERNAME", "Username must be between 3 and 150 characters")
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if !emailPattern.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Email format is invalid")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 72 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 72 characters")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
