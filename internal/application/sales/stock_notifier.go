package sales

import (
	"context"

	domsales "github.com/fuelstation/backend/internal/domain/sales"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// LoggingStockNotifier records stock movements to the log only. Stock
// keeping itself lives outside this service; the notifier keeps the port
// exercised until a real inventory consumer is wired in.
type LoggingStockNotifier struct {
	logger *zap.Logger
}

// NewLoggingStockNotifier creates a logging stock notifier
func NewLoggingStockNotifier(logger *zap.Logger) *LoggingStockNotifier {
	return &LoggingStockNotifier{logger: logger}
}

// StockDecreased logs a stock decrement
func (n *LoggingStockNotifier) StockDecreased(_ context.Context, productID uuid.UUID, quantity decimal.Decimal) error {
	n.logger.Info("stock decreased",
		zap.String("product_id", productID.String()),
		zap.String("quantity", quantity.String()),
	)
	return nil
}

// StockRestored logs a stock restore
func (n *LoggingStockNotifier) StockRestored(_ context.Context, productID uuid.UUID, quantity decimal.Decimal) error {
	n.logger.Info("stock restored",
		zap.String("product_id", productID.String()),
		zap.String("quantity", quantity.String()),
	)
	return nil
}

var _ domsales.StockNotifier = (*LoggingStockNotifier)(nil)
