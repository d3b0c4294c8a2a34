package sales

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSale(t *testing.T) {
	ownerID := uuid.New()
	branchID := uuid.New()
	actorID := uuid.New()

	t.Run("creates empty sale", func(t *testing.T) {
		sale, err := NewSale(ownerID, branchID, &actorID)
		require.NoError(t, err)
		require.NotNil(t, sale)

		assert.Equal(t, ownerID, sale.OwnerID)
		assert.Equal(t, branchID, sale.BranchID)
		require.NotNil(t, sale.ActorID)
		assert.Equal(t, actorID, *sale.ActorID)
		assert.Empty(t, sale.Items)
		assert.True(t, sale.Total().IsZero())
	})

	t.Run("allows nil actor", func(t *testing.T) {
		sale, err := NewSale(ownerID, branchID, nil)
		require.NoError(t, err)
		assert.Nil(t, sale.ActorID)
	})

	t.Run("fails with empty owner", func(t *testing.T) {
		_, err := NewSale(uuid.Nil, branchID, nil)
		require.Error(t, err)
	})

	t.Run("fails with empty branch", func(t *testing.T) {
		_, err := NewSale(ownerID, uuid.Nil, nil)
		require.Error(t, err)
	})
}

func TestSaleAddItem(t *testing.T) {
	ownerID := uuid.New()
	branchID := uuid.New()

	t.Run("captures quantity and unit price", func(t *testing.T) {
		sale, err := NewSale(ownerID, branchID, nil)
		require.NoError(t, err)

		productID := uuid.New()
		item, err := sale.AddItem(productID, "Yerba Mate 1kg", 3, decimal.NewFromFloat(1500.50))
		require.NoError(t, err)
		require.NotNil(t, item)

		assert.Equal(t, sale.ID, item.SaleID)
		assert.Equal(t, productID, item.ProductID)
		assert.Equal(t, "Yerba Mate 1kg", item.ProductName)
		assert.Equal(t, int64(3), item.Quantity)
		assert.True(t, item.UnitPrice.Equal(decimal.NewFromFloat(1500.50)))
		assert.Len(t, sale.Items, 1)
	})

	t.Run("fails with quantity below one", func(t *testing.T) {
		sale, err := NewSale(ownerID, branchID, nil)
		require.NoError(t, err)

		_, err = sale.AddItem(uuid.New(), "x", 0, decimal.NewFromInt(10))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 1")

		_, err = sale.AddItem(uuid.New(), "x", -2, decimal.NewFromInt(10))
		require.Error(t, err)
	})

	t.Run("fails with non-positive price", func(t *testing.T) {
		sale, err := NewSale(ownerID, branchID, nil)
		require.NoError(t, err)

		_, err = sale.AddItem(uuid.New(), "x", 1, decimal.Zero)
		require.Error(t, err)
	})

	t.Run("fails with empty product", func(t *testing.T) {
		sale, err := NewSale(ownerID, branchID, nil)
		require.NoError(t, err)

		_, err = sale.AddItem(uuid.Nil, "x", 1, decimal.NewFromInt(10))
		require.Error(t, err)
	})
}

func TestSaleTotal(t *testing.T) {
	ownerID := uuid.New()
	branchID := uuid.New()

	t.Run("sums quantity times unit price over all items", func(t *testing.T) {
		sale, err := NewSale(ownerID, branchID, nil)
		require.NoError(t, err)

		_, err = sale.AddItem(uuid.New(), "A", 2, decimal.NewFromFloat(100.50))
		require.NoError(t, err)
		_, err = sale.AddItem(uuid.New(), "B", 3, decimal.NewFromInt(10))
		require.NoError(t, err)

		assert.True(t, sale.Total().Equal(decimal.NewFromFloat(231.00)))
		assert.Equal(t, 2, sale.ItemCount())
		assert.Equal(t, int64(5), sale.TotalQuantity())
	})

	t.Run("total reflects captured price not current catalog price", func(t *testing.T) {
		sale, err := NewSale(ownerID, branchID, nil)
		require.NoError(t, err)

		item, err := sale.AddItem(uuid.New(), "A", 1, decimal.NewFromInt(50))
		require.NoError(t, err)

		// mutating the returned item's copy of the price must not be possible
		// through catalog changes; the item holds its own value
		assert.True(t, item.Amount().Equal(decimal.NewFromInt(50)))
		assert.True(t, sale.Total().Equal(decimal.NewFromInt(50)))
	})
}
