package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smartstock/smartstock_backend/internal/apperrors"
	"github.com/smartstock/smartstock_backend/internal/core/domain"
	portsrepo "github.com/smartstock/smartstock_backend/internal/core/ports/repositories"
	portssvc "github.com/smartstock/smartstock_backend/internal/core/ports/services"
	"github.com/smartstock/smartstock_backend/internal/utils/accounting"
)

// reportingService reconstructs report views from posted rows. Running
// figures are derived here, in row order, never stored.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepository
	accountRepo   portsrepo.AccountRepository
	productRepo   portsrepo.ProductRepository
}

// NewReportingService creates a new reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, accountRepo portsrepo.AccountRepository, productRepo portsrepo.ProductRepository) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo: reportingRepo,
		accountRepo:   accountRepo,
		productRepo:   productRepo,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// periodEnd converts an inclusive report end date into the exclusive query
// bound one day later. Vouchers carry full timestamps, so a voucher posted at
// any time of day on the end date still falls inside the period.
func periodEnd(to time.Time) time.Time {
	return to.UTC().Truncate(24 * time.Hour).AddDate(0, 0, 1)
}

// GetDaybook returns the chronological daybook for the period, narrowed by
// the filter at query time. Both period dates are inclusive whole days.
func (s *reportingService) GetDaybook(ctx context.Context, companyID string, from, to time.Time, filter domain.DaybookFilter) ([]domain.DaybookRow, error) {
	if !filter.Valid() {
		return nil, fmt.Errorf("%w: unknown daybook filter %q", apperrors.ErrValidation, filter)
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: period end precedes period start", apperrors.ErrValidation)
	}

	rows, err := s.reportingRepo.GetDaybookRows(ctx, companyID, from, periodEnd(to), filter.VoucherTypes())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch daybook rows: %w", err)
	}
	if rows == nil {
		rows = []domain.DaybookRow{}
	}
	return rows, nil
}

// GetAccountLedger returns the account's ledger lines for the period with a
// running balance. Suppliers are credit-natured; everything else debit-natured.
func (s *reportingService) GetAccountLedger(ctx context.Context, companyID, accountID string, from, to time.Time) ([]domain.AccountLedgerRow, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: period end precedes period start", apperrors.ErrValidation)
	}

	account, err := s.accountRepo.FindAccountByID(ctx, companyID, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	rows, err := s.reportingRepo.GetAccountLedgerRows(ctx, companyID, accountID, from, periodEnd(to))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ledger rows for account %s: %w", accountID, err)
	}
	if rows == nil {
		rows = []domain.AccountLedgerRow{}
	}

	running := decimal.Zero
	for i := range rows {
		running = running.Add(accounting.SignedAmount(account.AccountType, rows[i].Debit, rows[i].Credit))
		rows[i].RunningBalance = running
	}
	return rows, nil
}

// GetProductLedger returns the product's movement lines for the period with a
// running stock figure.
func (s *reportingService) GetProductLedger(ctx context.Context, companyID, productID string, from, to time.Time) ([]domain.ProductLedgerRow, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: period end precedes period start", apperrors.ErrValidation)
	}

	if _, err := s.productRepo.FindProductByID(ctx, companyID, productID); err != nil {
		return nil, fmt.Errorf("failed to find product %s: %w", productID, err)
	}

	rows, err := s.reportingRepo.GetProductLedgerRows(ctx, companyID, productID, from, periodEnd(to))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch movement rows for product %s: %w", productID, err)
	}
	if rows == nil {
		rows = []domain.ProductLedgerRow{}
	}

	running := decimal.Zero
	for i := range rows {
		running = running.Add(rows[i].QuantityIn).Sub(rows[i].QuantityOut)
		rows[i].RunningStock = running
	}
	return rows, nil
}
