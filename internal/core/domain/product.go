package domain

import "github.com/shopspring/decimal"

// Product holds the catalog metadata the engine reads: prices for posting and
// the restock level for the reorder signal. Catalog maintenance itself lives
// outside the core.
type Product struct {
	ProductID    string          `json:"productID"`
	CompanyID    string          `json:"companyID"`
	Name         string          `json:"name"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	UnitCost     decimal.Decimal `json:"unitCost"`
	RestockLevel decimal.Decimal `json:"restockLevel"`
	IsActive     bool            `json:"isActive"`
	AuditFields
}
