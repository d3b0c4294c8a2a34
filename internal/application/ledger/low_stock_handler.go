package ledger

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sysstock/backend/internal/domain/ledger"
	"github.com/sysstock/backend/internal/domain/shared"
)

// LowStockHandler handles StockBelowThreshold events and forwards them to
// a notifier. Failures to notify are logged, never propagated: an alert
// must not fail the operation that triggered it.
type LowStockHandler struct {
	logger   *zap.Logger
	notifier StockAlertNotifier
}

// StockAlertNotifier is the interface for sending low-stock alerts
type StockAlertNotifier interface {
	// SendAlert sends a stock alert notification
	SendAlert(ctx context.Context, alert StockAlert) error
}

// StockAlert represents a low-stock alert
type StockAlert struct {
	OwnerID     string `json:"owner_id"`
	BranchID    string `json:"branch_id"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Stock       int64  `json:"stock"`
	Threshold   int64  `json:"threshold"`
	AlertType   string `json:"alert_type"` // "low_stock", "out_of_stock"
}

// NewLowStockHandler creates a new handler for low-stock events
func NewLowStockHandler(logger *zap.Logger) *LowStockHandler {
	return &LowStockHandler{logger: logger}
}

// WithNotifier sets the notifier for sending alerts
func (h *LowStockHandler) WithNotifier(notifier StockAlertNotifier) *LowStockHandler {
	h.notifier = notifier
	return h
}

// EventTypes returns the event types this handler is interested in
func (h *LowStockHandler) EventTypes() []string {
	return []string{ledger.EventTypeStockBelowThreshold}
}

// Handle processes a StockBelowThresholdEvent
func (h *LowStockHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	thresholdEvent, ok := event.(*ledger.StockBelowThresholdEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", ledger.EventTypeStockBelowThreshold),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			ledger.EventTypeStockBelowThreshold, event.EventType())
	}

	h.logger.Warn("stock below threshold detected",
		zap.String("owner_id", event.OwnerID().String()),
		zap.String("branch_id", thresholdEvent.BranchID.String()),
		zap.String("product_id", thresholdEvent.ProductID.String()),
		zap.String("product_name", thresholdEvent.ProductName),
		zap.Int64("stock", thresholdEvent.Stock),
		zap.Int64("threshold", thresholdEvent.Threshold),
	)

	if h.notifier == nil {
		return nil
	}

	alertType := "low_stock"
	if thresholdEvent.Stock <= 0 {
		alertType = "out_of_stock"
	}
	alert := StockAlert{
		OwnerID:     event.OwnerID().String(),
		BranchID:    thresholdEvent.BranchID.String(),
		ProductID:   thresholdEvent.ProductID.String(),
		ProductName: thresholdEvent.ProductName,
		Stock:       thresholdEvent.Stock,
		Threshold:   thresholdEvent.Threshold,
		AlertType:   alertType,
	}
	if err := h.notifier.SendAlert(ctx, alert); err != nil {
		h.logger.Error("failed to send stock alert notification",
			zap.String("product_id", alert.ProductID),
			zap.Error(err),
		)
	}
	return nil
}

var _ shared.EventHandler = (*LowStockHandler)(nil)

// LoggingStockAlertNotifier logs alerts. Useful for development and testing.
type LoggingStockAlertNotifier struct {
	logger *zap.Logger
}

// NewLoggingStockAlertNotifier creates a new logging notifier
func NewLoggingStockAlertNotifier(logger *zap.Logger) *LoggingStockAlertNotifier {
	return &LoggingStockAlertNotifier{logger: logger}
}

// SendAlert logs the stock alert
func (n *LoggingStockAlertNotifier) SendAlert(_ context.Context, alert StockAlert) error {
	n.logger.Warn("STOCK ALERT",
		zap.String("type", alert.AlertType),
		zap.String("product_id", alert.ProductID),
		zap.String("product_name", alert.ProductName),
		zap.String("branch_id", alert.BranchID),
		zap.Int64("stock", alert.Stock),
		zap.Int64("threshold", alert.Threshold),
	)
	return nil
}

var _ StockAlertNotifier = (*LoggingStockAlertNotifier)(nil)
