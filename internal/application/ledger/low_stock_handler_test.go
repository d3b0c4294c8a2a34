package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sysstock/backend/internal/domain/ledger"
	"github.com/sysstock/backend/internal/domain/shared"
)

type capturingNotifier struct {
	alerts []StockAlert
	err    error
}

func (n *capturingNotifier) SendAlert(_ context.Context, alert StockAlert) error {
	if n.err != nil {
		return n.err
	}
	n.alerts = append(n.alerts, alert)
	return nil
}

func TestLowStockHandler(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	newEvent := func(stock int64) *ledger.StockBelowThresholdEvent {
		return ledger.NewStockBelowThresholdEvent(uuid.New(), uuid.New(), uuid.New(), "Yerba Mate 1kg", stock, 5)
	}

	t.Run("forwards the alert to the notifier", func(t *testing.T) {
		notifier := &capturingNotifier{}
		handler := NewLowStockHandler(logger).WithNotifier(notifier)

		require.NoError(t, handler.Handle(ctx, newEvent(3)))
		require.Len(t, notifier.alerts, 1)
		assert.Equal(t, "low_stock", notifier.alerts[0].AlertType)
		assert.Equal(t, int64(3), notifier.alerts[0].Stock)
		assert.Equal(t, "Yerba Mate 1kg", notifier.alerts[0].ProductName)
	})

	t.Run("flags zero stock as out of stock", func(t *testing.T) {
		notifier := &capturingNotifier{}
		handler := NewLowStockHandler(logger).WithNotifier(notifier)

		require.NoError(t, handler.Handle(ctx, newEvent(0)))
		require.Len(t, notifier.alerts, 1)
		assert.Equal(t, "out_of_stock", notifier.alerts[0].AlertType)
	})

	t.Run("notifier failure does not fail event handling", func(t *testing.T) {
		notifier := &capturingNotifier{err: errors.New("smtp down")}
		handler := NewLowStockHandler(logger).WithNotifier(notifier)

		assert.NoError(t, handler.Handle(ctx, newEvent(3)))
	})

	t.Run("works without a notifier", func(t *testing.T) {
		handler := NewLowStockHandler(logger)
		assert.NoError(t, handler.Handle(ctx, newEvent(3)))
	})

	t.Run("rejects foreign event types", func(t *testing.T) {
		handler := NewLowStockHandler(logger)
		foreign := &struct{ shared.BaseDomainEvent }{shared.NewBaseDomainEvent("other.event", "Other", uuid.New(), uuid.New())}
		assert.Error(t, handler.Handle(ctx, foreign))
	})

	t.Run("subscribes to the low stock event type", func(t *testing.T) {
		handler := NewLowStockHandler(logger)
		assert.Equal(t, []string{ledger.EventTypeStockBelowThreshold}, handler.EventTypes())
	})
}
