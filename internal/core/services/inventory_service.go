package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/smartstock/smartstock_backend/internal/core/domain"
	portsrepo "github.com/smartstock/smartstock_backend/internal/core/ports/repositories"
	portssvc "github.com/smartstock/smartstock_backend/internal/core/ports/services"
)

// inventoryService answers stock questions from the materialized counters.
// It never writes: movements enter only through voucher posting.
type inventoryService struct {
	productRepo portsrepo.ProductRepository
}

// NewInventoryService creates a new inventory service.
func NewInventoryService(productRepo portsrepo.ProductRepository) portssvc.InventorySvcFacade {
	return &inventoryService{productRepo: productRepo}
}

var _ portssvc.InventorySvcFacade = (*inventoryService)(nil)

// GetStockOnHand returns current stock for a product, zero if it never moved.
func (s *inventoryService) GetStockOnHand(ctx context.Context, companyID, productID string) (decimal.Decimal, error) {
	if _, err := s.productRepo.FindProductByID(ctx, companyID, productID); err != nil {
		return decimal.Zero, fmt.Errorf("failed to find product %s: %w", productID, err)
	}
	quantity, err := s.productRepo.GetStockLevel(ctx, companyID, productID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to read stock level for product %s: %w", productID, err)
	}
	return quantity, nil
}

// NeedsReorder reports whether stock-on-hand is at or below the restock level.
func (s *inventoryService) NeedsReorder(ctx context.Context, companyID, productID string) (bool, error) {
	product, err := s.productRepo.FindProductByID(ctx, companyID, productID)
	if err != nil {
		return false, fmt.Errorf("failed to find product %s: %w", productID, err)
	}
	quantity, err := s.productRepo.GetStockLevel(ctx, companyID, productID)
	if err != nil {
		return false, fmt.Errorf("failed to read stock level for product %s: %w", productID, err)
	}
	return quantity.LessThanOrEqual(product.RestockLevel), nil
}

// ListReorderProducts returns all active products at or below their restock
// level, paired with their current stock.
func (s *inventoryService) ListReorderProducts(ctx context.Context, companyID string) ([]domain.ReorderProduct, error) {
	rows, err := s.productRepo.ListBelowRestock(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reorder products: %w", err)
	}
	if rows == nil {
		rows = []domain.ReorderProduct{}
	}
	return rows, nil
}
