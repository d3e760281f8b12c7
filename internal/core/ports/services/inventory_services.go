package services

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/smartstock/smartstock_backend/internal/core/domain"
)

// InventorySvcFacade serves stock-on-hand reads and the reorder signal.
// Movements themselves are written only through voucher posting.
type InventorySvcFacade interface {
	GetStockOnHand(ctx context.Context, companyID, productID string) (decimal.Decimal, error)
	// NeedsReorder is true when stock-on-hand is at or below the product's
	// restock level.
	NeedsReorder(ctx context.Context, companyID, productID string) (bool, error)
	ListReorderProducts(ctx context.Context, companyID string) ([]domain.ReorderProduct, error)
}
