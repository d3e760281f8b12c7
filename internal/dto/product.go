package dto

import (
	"github.com/shopspring/decimal"
	"github.com/smartstock/smartstock_backend/internal/core/domain"
)

// CreateProductRequest registers a product in the directory.
type CreateProductRequest struct {
	Name         string          `json:"name" binding:"required"`
	UnitPrice    decimal.Decimal `json:"unitPrice" binding:"required"`
	UnitCost     decimal.Decimal `json:"unitCost"`
	RestockLevel decimal.Decimal `json:"restockLevel"`
}

// ProductResponse is the wire shape of a product.
type ProductResponse struct {
	ProductID    string          `json:"productID"`
	Name         string          `json:"name"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	UnitCost     decimal.Decimal `json:"unitCost"`
	RestockLevel decimal.Decimal `json:"restockLevel"`
	IsActive     bool            `json:"isActive"`
}

// StockResponse reports stock-on-hand and the reorder flag for one product.
type StockResponse struct {
	ProductID    string          `json:"productID"`
	StockOnHand  decimal.Decimal `json:"stockOnHand"`
	NeedsReorder bool            `json:"needsReorder"`
}

// ReorderProductResponse is one row of the reorder listing.
type ReorderProductResponse struct {
	Product     ProductResponse `json:"product"`
	StockOnHand decimal.Decimal `json:"stockOnHand"`
}

// ToProductResponse maps a domain product to its response shape.
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ProductID:    p.ProductID,
		Name:         p.Name,
		UnitPrice:    p.UnitPrice,
		UnitCost:     p.UnitCost,
		RestockLevel: p.RestockLevel,
		IsActive:     p.IsActive,
	}
}

// ToProductResponses maps a slice of domain products.
func ToProductResponses(products []domain.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i := range products {
		out[i] = ToProductResponse(&products[i])
	}
	return out
}

// ToReorderProductResponses maps the reorder listing.
func ToReorderProductResponses(rows []domain.ReorderProduct) []ReorderProductResponse {
	out := make([]ReorderProductResponse, len(rows))
	for i, row := range rows {
		out[i] = ReorderProductResponse{
			Product:     ToProductResponse(&rows[i].Product),
			StockOnHand: row.StockOnHand,
		}
	}
	return out
}
