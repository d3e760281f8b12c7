package services

import (
	"context"

	"github.com/smartstock/smartstock_backend/internal/core/domain"
	"github.com/smartstock/smartstock_backend/internal/dto"
)

// ProductSvcFacade is the product directory surface.
type ProductSvcFacade interface {
	CreateProduct(ctx context.Context, companyID string, req dto.CreateProductRequest, creatorUserID string) (*domain.Product, error)
	GetProductByID(ctx context.Context, companyID, productID string) (*domain.Product, error)
	ListProducts(ctx context.Context, companyID string) ([]domain.Product, error)
}
