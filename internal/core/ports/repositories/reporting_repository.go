package repositories

import (
	"context"
	"time"

	"github.com/smartstock/smartstock_backend/internal/core/domain"
)

// ReportingRepository serves the read-only projections. Queries never mutate
// ledger state and return empty slices, not errors, when nothing matches.
// The period bounds are half-open: from is inclusive, to is exclusive.
type ReportingRepository interface {
	// GetDaybookRows returns counterparty-side ledger lines for vouchers of the
	// given types, ordered by (date, voucher number) ascending. The type filter
	// is applied in the query, before any merging.
	GetDaybookRows(ctx context.Context, companyID string, from, to time.Time, types []domain.VoucherType) ([]domain.DaybookRow, error)
	GetAccountLedgerRows(ctx context.Context, companyID, accountID string, from, to time.Time) ([]domain.AccountLedgerRow, error)
	GetProductLedgerRows(ctx context.Context, companyID, productID string, from, to time.Time) ([]domain.ProductLedgerRow, error)
}
