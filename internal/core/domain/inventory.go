package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryMovement records stock entering or leaving under one voucher.
// Exactly one of QuantityIn/QuantityOut is positive, the other is zero.
// Append-only; reversals record the inverse movement rather than deleting.
type InventoryMovement struct {
	MovementID  string          `json:"movementID"`
	VoucherID   string          `json:"voucherID"`
	CompanyID   string          `json:"companyID"`
	ProductID   string          `json:"productID"`
	AccountID   string          `json:"accountID"` // counterparty of the movement
	QuantityIn  decimal.Decimal `json:"quantityIn"`
	QuantityOut decimal.Decimal `json:"quantityOut"`
	UnitRate    decimal.Decimal `json:"unitRate"`
	Amount      decimal.Decimal `json:"amount"`
	AuditFields
}

// StockLevel is the materialized stock-on-hand counter for one product.
// It is updated in the same transaction as the movement rows that change it;
// the movement rows remain the audit trail.
type StockLevel struct {
	CompanyID     string          `json:"companyID"`
	ProductID     string          `json:"productID"`
	Quantity      decimal.Decimal `json:"quantity"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}
