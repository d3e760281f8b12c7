package services

import (
	"context"
	"time"

	"github.com/smartstock/smartstock_backend/internal/core/domain"
)

// ReportingSvcFacade reconstructs report views from posted rows. All calls are
// read-only and repeatable: identical arguments with no intervening writes
// yield identical results.
type ReportingSvcFacade interface {
	GetDaybook(ctx context.Context, companyID string, from, to time.Time, filter domain.DaybookFilter) ([]domain.DaybookRow, error)
	GetAccountLedger(ctx context.Context, companyID, accountID string, from, to time.Time) ([]domain.AccountLedgerRow, error)
	GetProductLedger(ctx context.Context, companyID, productID string, from, to time.Time) ([]domain.ProductLedgerRow, error)
}
