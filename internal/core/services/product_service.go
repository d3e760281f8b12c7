package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/smartstock/smartstock_backend/internal/apperrors"
	"github.com/smartstock/smartstock_backend/internal/core/domain"
	portsrepo "github.com/smartstock/smartstock_backend/internal/core/ports/repositories"
	portssvc "github.com/smartstock/smartstock_backend/internal/core/ports/services"
	"github.com/smartstock/smartstock_backend/internal/dto"
	"github.com/smartstock/smartstock_backend/internal/middleware"
)

type productService struct {
	productRepo portsrepo.ProductRepository
}

// NewProductService creates a new product service.
func NewProductService(productRepo portsrepo.ProductRepository) portssvc.ProductSvcFacade {
	return &productService{productRepo: productRepo}
}

var _ portssvc.ProductSvcFacade = (*productService)(nil)

// CreateProduct registers a product in the company directory.
func (s *productService) CreateProduct(ctx context.Context, companyID string, req dto.CreateProductRequest, creatorUserID string) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.UnitPrice.IsPositive() {
		return nil, fmt.Errorf("%w: unit price must be positive", apperrors.ErrValidation)
	}
	if req.UnitCost.IsNegative() {
		return nil, fmt.Errorf("%w: unit cost cannot be negative", apperrors.ErrValidation)
	}
	if req.RestockLevel.IsNegative() {
		return nil, fmt.Errorf("%w: restock level cannot be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	product := domain.Product{
		ProductID:    uuid.NewString(),
		CompanyID:    companyID,
		Name:         req.Name,
		UnitPrice:    req.UnitPrice,
		UnitCost:     req.UnitCost,
		RestockLevel: req.RestockLevel,
		IsActive:     true,
		AuditFields:  auditNow(now, creatorUserID),
	}

	if err := s.productRepo.SaveProduct(ctx, product); err != nil {
		logger.Error("Failed to save product", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	logger.Info("Product created", slog.String("product_id", product.ProductID), slog.String("name", product.Name))
	return &product, nil
}

// GetProductByID retrieves a product scoped to the company.
func (s *productService) GetProductByID(ctx context.Context, companyID, productID string) (*domain.Product, error) {
	product, err := s.productRepo.FindProductByID(ctx, companyID, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to find product %s: %w", productID, err)
	}
	return product, nil
}

// ListProducts lists the company's products.
func (s *productService) ListProducts(ctx context.Context, companyID string) ([]domain.Product, error) {
	products, err := s.productRepo.ListProducts(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}
