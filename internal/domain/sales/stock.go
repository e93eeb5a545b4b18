package sales

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockNotifier receives stock movements implied by sale facts. Recording a
// sale decrements stock, deleting one restores it. Failures are reported to
// the caller but the sale fact itself is already committed; stock keeping is
// advisory here.
type StockNotifier interface {
	StockDecreased(ctx context.Context, productID uuid.UUID, quantity decimal.Decimal) error
	StockRestored(ctx context.Context, productID uuid.UUID, quantity decimal.Decimal) error
}
