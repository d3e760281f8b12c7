package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smartstock/smartstock_backend/internal/core/domain"
	portsrepo "github.com/smartstock/smartstock_backend/internal/core/ports/repositories"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates a new reporting repository
func newPgxReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// GetDaybookRows retrieves the counterparty-side ledger lines for the period.
// One line per voucher: the customer, supplier or walk-in side. The type
// filter is applied here, before anything is merged or ordered.
func (r *reportingRepository) GetDaybookRows(ctx context.Context, companyID string, from, to time.Time, types []domain.VoucherType) ([]domain.DaybookRow, error) {
	query := `
		SELECT
			v.voucher_date,
			v.voucher_type,
			v.voucher_no,
			a.name AS account_name,
			e.debit,
			e.credit,
			v.narration
		FROM vouchers v
		JOIN ledger_entries e ON e.voucher_id = v.voucher_id
		JOIN accounts a ON a.account_id = e.account_id
		WHERE v.company_id = $1
			AND v.voucher_date >= $2
			AND v.voucher_date < $3
			AND v.voucher_type = ANY($4)
			AND a.account_type IN ('CUSTOMER', 'SUPPLIER', 'WALK_IN')
		ORDER BY v.voucher_date, v.voucher_no
	`

	typeStrings := make([]string, len(types))
	for i, t := range types {
		typeStrings[i] = string(t)
	}

	rows, err := r.Pool.Query(ctx, query, companyID, from, to, typeStrings)
	if err != nil {
		return nil, fmt.Errorf("error querying daybook rows: %w", err)
	}
	defer rows.Close()

	result := []domain.DaybookRow{}
	for rows.Next() {
		var row domain.DaybookRow
		if err := rows.Scan(
			&row.Date,
			&row.VoucherType,
			&row.VoucherNo,
			&row.AccountName,
			&row.Debit,
			&row.Credit,
			&row.Description,
		); err != nil {
			return nil, fmt.Errorf("error scanning daybook row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating daybook rows: %w", err)
	}
	return result, nil
}

// GetAccountLedgerRows retrieves one account's ledger lines for the period in
// chronological order. The running balance column is filled in by the caller.
func (r *reportingRepository) GetAccountLedgerRows(ctx context.Context, companyID, accountID string, from, to time.Time) ([]domain.AccountLedgerRow, error) {
	query := `
		SELECT
			v.voucher_date,
			v.voucher_type,
			v.voucher_no,
			e.debit,
			e.credit,
			v.narration
		FROM ledger_entries e
		JOIN vouchers v ON v.voucher_id = e.voucher_id
		WHERE e.company_id = $1
			AND e.account_id = $2
			AND v.voucher_date >= $3
			AND v.voucher_date < $4
		ORDER BY v.voucher_date, v.voucher_no
	`

	rows, err := r.Pool.Query(ctx, query, companyID, accountID, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying account ledger rows: %w", err)
	}
	defer rows.Close()

	result := []domain.AccountLedgerRow{}
	for rows.Next() {
		var row domain.AccountLedgerRow
		if err := rows.Scan(
			&row.Date,
			&row.VoucherType,
			&row.VoucherNo,
			&row.Debit,
			&row.Credit,
			&row.Description,
		); err != nil {
			return nil, fmt.Errorf("error scanning account ledger row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account ledger rows: %w", err)
	}
	return result, nil
}

// GetProductLedgerRows retrieves one product's movement lines for the period
// in chronological order. The running stock column is filled in by the caller.
func (r *reportingRepository) GetProductLedgerRows(ctx context.Context, companyID, productID string, from, to time.Time) ([]domain.ProductLedgerRow, error) {
	query := `
		SELECT
			v.voucher_date,
			v.voucher_type,
			v.voucher_no,
			a.name AS account_name,
			m.quantity_in,
			m.quantity_out,
			m.unit_rate,
			m.amount
		FROM inventory_movements m
		JOIN vouchers v ON v.voucher_id = m.voucher_id
		JOIN accounts a ON a.account_id = m.account_id
		WHERE m.company_id = $1
			AND m.product_id = $2
			AND v.voucher_date >= $3
			AND v.voucher_date < $4
		ORDER BY v.voucher_date, v.voucher_no
	`

	rows, err := r.Pool.Query(ctx, query, companyID, productID, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying product ledger rows: %w", err)
	}
	defer rows.Close()

	result := []domain.ProductLedgerRow{}
	for rows.Next() {
		var row domain.ProductLedgerRow
		if err := rows.Scan(
			&row.Date,
			&row.VoucherType,
			&row.VoucherNo,
			&row.AccountName,
			&row.QuantityIn,
			&row.QuantityOut,
			&row.UnitRate,
			&row.Amount,
		); err != nil {
			return nil, fmt.Errorf("error scanning product ledger row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product ledger rows: %w", err)
	}
	return result, nil
}
