package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/smartstock/smartstock_backend/internal/apperrors"
	"github.com/smartstock/smartstock_backend/internal/core/domain"
	portsrepo "github.com/smartstock/smartstock_backend/internal/core/ports/repositories"
)

type PgxProductRepository struct {
	BaseRepository
}

// newPgxProductRepository creates a new repository for product data.
func newPgxProductRepository(pool *pgxpool.Pool) portsrepo.ProductRepository {
	return &PgxProductRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ProductRepository = (*PgxProductRepository)(nil)

const productColumns = `product_id, company_id, name, unit_price, unit_cost, restock_level, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanProduct(row pgx.Row) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ProductID,
		&p.CompanyID,
		&p.Name,
		&p.UnitPrice,
		&p.UnitCost,
		&p.RestockLevel,
		&p.IsActive,
		&p.CreatedAt,
		&p.CreatedBy,
		&p.LastUpdatedAt,
		&p.LastUpdatedBy,
	)
	return p, err
}

// SaveProduct inserts a new product.
func (r *PgxProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		product.ProductID,
		product.CompanyID,
		product.Name,
		product.UnitPrice,
		product.UnitCost,
		product.RestockLevel,
		product.IsActive,
		product.CreatedAt,
		product.CreatedBy,
		product.LastUpdatedAt,
		product.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: product %s already exists", apperrors.ErrDuplicate, product.ProductID)
		}
		return fmt.Errorf("failed to save product %s: %w", product.ProductID, err)
	}
	return nil
}

// FindProductByID retrieves a product by its ID, scoped to the company.
func (r *PgxProductRepository) FindProductByID(ctx context.Context, companyID, productID string) (*domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE company_id = $1 AND product_id = $2;
	`
	product, err := scanProduct(r.Pool.QueryRow(ctx, query, companyID, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: product %s", apperrors.ErrNotFound, productID)
		}
		return nil, fmt.Errorf("failed to find product by ID %s: %w", productID, err)
	}
	return &product, nil
}

// FindProductsByIDs retrieves multiple products by their IDs. Missing IDs are
// simply absent from the returned map.
func (r *PgxProductRepository) FindProductsByIDs(ctx context.Context, companyID string, productIDs []string) (map[string]domain.Product, error) {
	if len(productIDs) == 0 {
		return map[string]domain.Product{}, nil
	}

	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE company_id = $1 AND product_id = ANY($2);
	`
	rows, err := r.Pool.Query(ctx, query, companyID, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query products by IDs: %w", err)
	}
	defer rows.Close()

	productsMap := make(map[string]domain.Product)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row during batch fetch: %w", err)
		}
		productsMap[product.ProductID] = product
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product rows during batch fetch: %w", err)
	}
	return productsMap, nil
}

// ListProducts retrieves the company's active products ordered by name.
func (r *PgxProductRepository) ListProducts(ctx context.Context, companyID string) ([]domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE company_id = $1 AND is_active = TRUE
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query products for company %s: %w", companyID, err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row for company %s: %w", companyID, err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product rows for company %s: %w", companyID, err)
	}
	return products, nil
}

// GetStockLevel reads the materialized stock counter. Products that never
// moved have no counter row and report zero.
func (r *PgxProductRepository) GetStockLevel(ctx context.Context, companyID, productID string) (decimal.Decimal, error) {
	query := `
		SELECT quantity FROM stock_levels
		WHERE company_id = $1 AND product_id = $2;
	`
	var quantity decimal.Decimal
	err := r.Pool.QueryRow(ctx, query, companyID, productID).Scan(&quantity)
	if errors.Is(err, pgx.ErrNoRows) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to read stock level for product %s: %w", productID, err)
	}
	return quantity, nil
}

// ListBelowRestock returns active products whose stock-on-hand is at or below
// their restock level, including products that never moved.
func (r *PgxProductRepository) ListBelowRestock(ctx context.Context, companyID string) ([]domain.ReorderProduct, error) {
	query := `
		SELECT p.product_id, p.company_id, p.name, p.unit_price, p.unit_cost, p.restock_level, p.is_active,
		       p.created_at, p.created_by, p.last_updated_at, p.last_updated_by,
		       COALESCE(s.quantity, 0)
		FROM products p
		LEFT JOIN stock_levels s ON s.company_id = p.company_id AND s.product_id = p.product_id
		WHERE p.company_id = $1 AND p.is_active = TRUE
		  AND COALESCE(s.quantity, 0) <= p.restock_level
		ORDER BY p.name;
	`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query reorder products for company %s: %w", companyID, err)
	}
	defer rows.Close()

	result := []domain.ReorderProduct{}
	for rows.Next() {
		var rp domain.ReorderProduct
		err := rows.Scan(
			&rp.Product.ProductID,
			&rp.Product.CompanyID,
			&rp.Product.Name,
			&rp.Product.UnitPrice,
			&rp.Product.UnitCost,
			&rp.Product.RestockLevel,
			&rp.Product.IsActive,
			&rp.Product.CreatedAt,
			&rp.Product.CreatedBy,
			&rp.Product.LastUpdatedAt,
			&rp.Product.LastUpdatedBy,
			&rp.StockOnHand,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reorder product row for company %s: %w", companyID, err)
		}
		result = append(result, rp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reorder product rows for company %s: %w", companyID, err)
	}
	return result, nil
}
