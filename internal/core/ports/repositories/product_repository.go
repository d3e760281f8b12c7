package repositories

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/smartstock/smartstock_backend/internal/core/domain"
)

// ProductRepository provides the product directory and stock-on-hand reads.
type ProductRepository interface {
	SaveProduct(ctx context.Context, product domain.Product) error
	FindProductByID(ctx context.Context, companyID, productID string) (*domain.Product, error)
	FindProductsByIDs(ctx context.Context, companyID string, productIDs []string) (map[string]domain.Product, error)
	ListProducts(ctx context.Context, companyID string) ([]domain.Product, error)
	// GetStockLevel reads the materialized stock counter; zero when the product
	// has never moved.
	GetStockLevel(ctx context.Context, companyID, productID string) (decimal.Decimal, error)
	ListBelowRestock(ctx context.Context, companyID string) ([]domain.ReorderProduct, error)
}
