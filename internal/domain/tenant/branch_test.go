package tenant

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBranch(t *testing.T) {
	ownerID := uuid.New()

	t.Run("creates branch with valid inputs", func(t *testing.T) {
		branch, err := NewBranch(ownerID, "Centro", "Av. Siempre Viva 742", "+54 11 5555-0000")
		require.NoError(t, err)
		require.NotNil(t, branch)

		assert.Equal(t, ownerID, branch.OwnerID)
		assert.Equal(t, "Centro", branch.Name)
		assert.Equal(t, "Av. Siempre Viva 742", branch.Address)
		assert.NotEmpty(t, branch.ID)
		assert.Equal(t, 1, branch.GetVersion())
	})

	t.Run("trims whitespace", func(t *testing.T) {
		branch, err := NewBranch(ownerID, "  Centro  ", " addr ", " phone ")
		require.NoError(t, err)
		assert.Equal(t, "Centro", branch.Name)
		assert.Equal(t, "addr", branch.Address)
		assert.Equal(t, "phone", branch.Phone)
	})

	t.Run("fails with empty owner", func(t *testing.T) {
		_, err := NewBranch(uuid.Nil, "Centro", "", "")
		require.Error(t, err)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewBranch(ownerID, "   ", "", "")
		require.Error(t, err)
	})

	t.Run("fails with digits-only name", func(t *testing.T) {
		_, err := NewBranch(ownerID, "12345", "", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "only digits")
	})

	t.Run("fails with name too long", func(t *testing.T) {
		_, err := NewBranch(ownerID, strings.Repeat("a", 201), "", "")
		require.Error(t, err)
	})
}

func TestBranchUpdate(t *testing.T) {
	ownerID := uuid.New()

	t.Run("updates fields and bumps the version", func(t *testing.T) {
		branch, err := NewBranch(ownerID, "Centro", "", "")
		require.NoError(t, err)

		err = branch.Update("Norte", "Calle 1", "123-456")
		require.NoError(t, err)

		assert.Equal(t, "Norte", branch.Name)
		assert.Equal(t, "Calle 1", branch.Address)
		assert.Equal(t, "123-456", branch.Phone)
		assert.Equal(t, 2, branch.GetVersion())
	})

	t.Run("rejects invalid name without mutating", func(t *testing.T) {
		branch, err := NewBranch(ownerID, "Centro", "", "")
		require.NoError(t, err)

		err = branch.Update("999", "x", "y")
		require.Error(t, err)
		assert.Equal(t, "Centro", branch.Name)
	})
}
