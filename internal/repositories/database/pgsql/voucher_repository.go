package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/smartstock/smartstock_backend/internal/apperrors"
	"github.com/smartstock/smartstock_backend/internal/core/domain"
	portsrepo "github.com/smartstock/smartstock_backend/internal/core/ports/repositories"
)

type PgxVoucherRepository struct {
	BaseRepository
}

// newPgxVoucherRepository creates a new repository for voucher data.
func newPgxVoucherRepository(pool *pgxpool.Pool) portsrepo.VoucherRepository {
	return &PgxVoucherRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.VoucherRepository = (*PgxVoucherRepository)(nil)

// SaveVoucher persists one business event as a single database transaction:
// number allocation, the voucher row, its ledger entries, its movements with
// the stock counter adjustments, and the optional payment record. Nothing is
// visible to readers until the commit.
func (r *PgxVoucherRepository) SaveVoucher(ctx context.Context, voucher domain.Voucher, entries []domain.LedgerEntry, movements []domain.InventoryMovement, payment *domain.PaymentRecord) (int64, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx)

	voucherNo, err := r.postVoucher(ctx, tx, voucher, entries, movements)
	if err != nil {
		return 0, err
	}

	if payment != nil {
		paymentQuery := `
			INSERT INTO payment_records (payment_id, voucher_id, company_id, account_id, payment_type, amount, method_account_id, reference, payment_date, created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
		`
		_, err = tx.Exec(ctx, paymentQuery,
			payment.PaymentID,
			payment.VoucherID,
			payment.CompanyID,
			payment.AccountID,
			payment.PaymentType,
			payment.Amount,
			payment.MethodAccountID,
			payment.Reference,
			payment.PaymentDate,
			payment.CreatedAt,
			payment.CreatedBy,
			payment.LastUpdatedAt,
			payment.LastUpdatedBy,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert payment record for voucher %s: %w", voucher.VoucherID, err)
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		if conflictErr := asConflict(err); conflictErr != nil {
			return 0, fmt.Errorf("%w: commit failed for voucher %s", conflictErr, voucher.VoucherID)
		}
		return 0, err
	}
	return voucherNo, nil
}

// SaveReversingVoucher posts the reversing voucher and flips the original to
// REVERSED in the same transaction. Losing a race to another reversal leaves
// the original untouched and returns apperrors.ErrConflict.
func (r *PgxVoucherRepository) SaveReversingVoucher(ctx context.Context, reversing domain.Voucher, entries []domain.LedgerEntry, movements []domain.InventoryMovement, originalVoucherID string) (int64, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx)

	markQuery := `
		UPDATE vouchers
		SET status = $1, reversing_voucher_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE company_id = $5 AND voucher_id = $6 AND status = $7;
	`
	cmdTag, err := tx.Exec(ctx, markQuery,
		domain.Reversed,
		reversing.VoucherID,
		reversing.LastUpdatedAt,
		reversing.LastUpdatedBy,
		reversing.CompanyID,
		originalVoucherID,
		domain.Posted,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to mark voucher %s reversed: %w", originalVoucherID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return 0, fmt.Errorf("%w: voucher %s is no longer in %s status", apperrors.ErrConflict, originalVoucherID, domain.Posted)
	}

	voucherNo, err := r.postVoucher(ctx, tx, reversing, entries, movements)
	if err != nil {
		return 0, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		if conflictErr := asConflict(err); conflictErr != nil {
			return 0, fmt.Errorf("%w: commit failed for reversing voucher %s", conflictErr, reversing.VoucherID)
		}
		return 0, err
	}
	return voucherNo, nil
}

// postVoucher writes the voucher row and everything it owns inside tx. The
// voucher number comes from the per-domain sequence row, bumped atomically so
// concurrent posts in the same domain serialize on it.
func (r *PgxVoucherRepository) postVoucher(ctx context.Context, tx pgx.Tx, voucher domain.Voucher, entries []domain.LedgerEntry, movements []domain.InventoryMovement) (int64, error) {
	voucherNo, err := r.nextVoucherNumberInTx(ctx, tx, voucher)
	if err != nil {
		return 0, err
	}

	voucherQuery := `
		INSERT INTO vouchers (voucher_id, company_id, voucher_no, voucher_type, voucher_domain, voucher_date, amount, narration, status, original_voucher_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err = tx.Exec(ctx, voucherQuery,
		voucher.VoucherID,
		voucher.CompanyID,
		voucherNo,
		voucher.VoucherType,
		voucher.VoucherDomain,
		voucher.VoucherDate,
		voucher.Amount,
		voucher.Narration,
		voucher.Status,
		voucher.OriginalVoucherID,
		voucher.CreatedAt,
		voucher.CreatedBy,
		voucher.LastUpdatedAt,
		voucher.LastUpdatedBy,
	)
	if err != nil {
		if conflictErr := asConflict(err); conflictErr != nil {
			return 0, fmt.Errorf("%w: voucher number %d already taken", conflictErr, voucherNo)
		}
		return 0, fmt.Errorf("failed to insert voucher %s: %w", voucher.VoucherID, err)
	}

	if err := r.applyStockDeltas(ctx, tx, voucher, movements); err != nil {
		return 0, err
	}

	batch := &pgx.Batch{}
	entryQuery := `
		INSERT INTO ledger_entries (entry_id, voucher_id, company_id, account_id, debit, credit, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	for _, e := range entries {
		batch.Queue(entryQuery,
			e.EntryID,
			e.VoucherID,
			e.CompanyID,
			e.AccountID,
			e.Debit,
			e.Credit,
			e.CreatedAt,
			e.CreatedBy,
			e.LastUpdatedAt,
			e.LastUpdatedBy,
		)
	}

	movementQuery := `
		INSERT INTO inventory_movements (movement_id, voucher_id, company_id, product_id, account_id, quantity_in, quantity_out, unit_rate, amount, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	for _, m := range movements {
		batch.Queue(movementQuery,
			m.MovementID,
			m.VoucherID,
			m.CompanyID,
			m.ProductID,
			m.AccountID,
			m.QuantityIn,
			m.QuantityOut,
			m.UnitRate,
			m.Amount,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}

	if batch.Len() > 0 {
		br := tx.SendBatch(ctx, batch)
		if err := br.Close(); err != nil {
			return 0, fmt.Errorf("failed to execute insert batch for voucher %s: %w", voucher.VoucherID, err)
		}
	}

	return voucherNo, nil
}

// nextVoucherNumberInTx bumps and returns the per-domain sequence. The upsert
// takes a row lock, so two posts in the same domain cannot read the same
// number.
func (r *PgxVoucherRepository) nextVoucherNumberInTx(ctx context.Context, tx pgx.Tx, voucher domain.Voucher) (int64, error) {
	query := `
		INSERT INTO voucher_sequences (company_id, voucher_domain, last_number)
		VALUES ($1, $2, 1)
		ON CONFLICT (company_id, voucher_domain)
		DO UPDATE SET last_number = voucher_sequences.last_number + 1
		RETURNING last_number;
	`
	var voucherNo int64
	if err := tx.QueryRow(ctx, query, voucher.CompanyID, voucher.VoucherDomain).Scan(&voucherNo); err != nil {
		if conflictErr := asConflict(err); conflictErr != nil {
			return 0, fmt.Errorf("%w: voucher number allocation for domain %s", conflictErr, voucher.VoucherDomain)
		}
		return 0, fmt.Errorf("failed to allocate voucher number for domain %s: %w", voucher.VoucherDomain, err)
	}
	return voucherNo, nil
}

// applyStockDeltas locks the touched stock counters and applies the net
// quantity change per product. A change that would drive a counter negative
// aborts the whole unit with apperrors.ErrInsufficientStock.
func (r *PgxVoucherRepository) applyStockDeltas(ctx context.Context, tx pgx.Tx, voucher domain.Voucher, movements []domain.InventoryMovement) error {
	if len(movements) == 0 {
		return nil
	}

	deltas := make(map[string]decimal.Decimal)
	productIDs := make([]string, 0, len(movements))
	for _, m := range movements {
		if _, seen := deltas[m.ProductID]; !seen {
			productIDs = append(productIDs, m.ProductID)
		}
		deltas[m.ProductID] = deltas[m.ProductID].Add(m.QuantityIn).Sub(m.QuantityOut)
	}

	// Seed missing counter rows so the FOR UPDATE lock below has something
	// to grab. Touched in product id order to keep lock acquisition
	// deterministic across concurrent posts.
	seedQuery := `
		INSERT INTO stock_levels (company_id, product_id, quantity, last_updated_at)
		VALUES ($1, $2, 0, $3)
		ON CONFLICT (company_id, product_id) DO NOTHING;
	`
	lockQuery := `
		SELECT quantity FROM stock_levels
		WHERE company_id = $1 AND product_id = $2
		FOR UPDATE;
	`
	updateQuery := `
		UPDATE stock_levels
		SET quantity = $3, last_updated_at = $4
		WHERE company_id = $1 AND product_id = $2;
	`

	sort.Strings(productIDs)
	for _, productID := range productIDs {
		if _, err := tx.Exec(ctx, seedQuery, voucher.CompanyID, productID, voucher.LastUpdatedAt); err != nil {
			return fmt.Errorf("failed to seed stock counter for product %s: %w", productID, err)
		}

		var current decimal.Decimal
		if err := tx.QueryRow(ctx, lockQuery, voucher.CompanyID, productID).Scan(&current); err != nil {
			return fmt.Errorf("failed to lock stock counter for product %s: %w", productID, err)
		}

		next := current.Add(deltas[productID])
		if next.IsNegative() {
			return fmt.Errorf("%w: product %s has %s on hand, movement requires %s",
				apperrors.ErrInsufficientStock, productID, current, deltas[productID].Neg())
		}

		if _, err := tx.Exec(ctx, updateQuery, voucher.CompanyID, productID, next, voucher.LastUpdatedAt); err != nil {
			return fmt.Errorf("failed to update stock counter for product %s: %w", productID, err)
		}
	}
	return nil
}

const voucherColumns = `voucher_id, company_id, voucher_no, voucher_type, voucher_domain, voucher_date, amount, narration, status, original_voucher_id, reversing_voucher_id, created_at, created_by, last_updated_at, last_updated_by`

func scanVoucher(row pgx.Row) (domain.Voucher, error) {
	var v domain.Voucher
	err := row.Scan(
		&v.VoucherID,
		&v.CompanyID,
		&v.VoucherNo,
		&v.VoucherType,
		&v.VoucherDomain,
		&v.VoucherDate,
		&v.Amount,
		&v.Narration,
		&v.Status,
		&v.OriginalVoucherID,
		&v.ReversingVoucherID,
		&v.CreatedAt,
		&v.CreatedBy,
		&v.LastUpdatedAt,
		&v.LastUpdatedBy,
	)
	return v, err
}

// FindVoucherByID retrieves a voucher by its ID, scoped to the company.
func (r *PgxVoucherRepository) FindVoucherByID(ctx context.Context, companyID, voucherID string) (*domain.Voucher, error) {
	query := `
		SELECT ` + voucherColumns + `
		FROM vouchers
		WHERE company_id = $1 AND voucher_id = $2;
	`
	voucher, err := scanVoucher(r.Pool.QueryRow(ctx, query, companyID, voucherID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: voucher %s", apperrors.ErrNotFound, voucherID)
		}
		return nil, fmt.Errorf("failed to find voucher by ID %s: %w", voucherID, err)
	}
	return &voucher, nil
}

// FindLedgerEntriesByVoucherID retrieves all ledger entries of one voucher.
func (r *PgxVoucherRepository) FindLedgerEntriesByVoucherID(ctx context.Context, companyID, voucherID string) ([]domain.LedgerEntry, error) {
	query := `
		SELECT entry_id, voucher_id, company_id, account_id, debit, credit, created_at, created_by, last_updated_at, last_updated_by
		FROM ledger_entries
		WHERE company_id = $1 AND voucher_id = $2
		ORDER BY entry_id;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, voucherID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries for voucher %s: %w", voucherID, err)
	}
	defer rows.Close()

	entries := []domain.LedgerEntry{}
	for rows.Next() {
		var e domain.LedgerEntry
		err := rows.Scan(
			&e.EntryID,
			&e.VoucherID,
			&e.CompanyID,
			&e.AccountID,
			&e.Debit,
			&e.Credit,
			&e.CreatedAt,
			&e.CreatedBy,
			&e.LastUpdatedAt,
			&e.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry row for voucher %s: %w", voucherID, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger entry rows for voucher %s: %w", voucherID, err)
	}
	return entries, nil
}

// FindMovementsByVoucherID retrieves all inventory movements of one voucher.
func (r *PgxVoucherRepository) FindMovementsByVoucherID(ctx context.Context, companyID, voucherID string) ([]domain.InventoryMovement, error) {
	query := `
		SELECT movement_id, voucher_id, company_id, product_id, account_id, quantity_in, quantity_out, unit_rate, amount, created_at, created_by, last_updated_at, last_updated_by
		FROM inventory_movements
		WHERE company_id = $1 AND voucher_id = $2
		ORDER BY movement_id;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, voucherID)
	if err != nil {
		return nil, fmt.Errorf("failed to query movements for voucher %s: %w", voucherID, err)
	}
	defer rows.Close()

	movements := []domain.InventoryMovement{}
	for rows.Next() {
		var m domain.InventoryMovement
		err := rows.Scan(
			&m.MovementID,
			&m.VoucherID,
			&m.CompanyID,
			&m.ProductID,
			&m.AccountID,
			&m.QuantityIn,
			&m.QuantityOut,
			&m.UnitRate,
			&m.Amount,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan movement row for voucher %s: %w", voucherID, err)
		}
		movements = append(movements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating movement rows for voucher %s: %w", voucherID, err)
	}
	return movements, nil
}

// PeekNextVoucherNumber previews the next number without consuming it.
func (r *PgxVoucherRepository) PeekNextVoucherNumber(ctx context.Context, companyID string, voucherDomain domain.VoucherDomain) (int64, error) {
	query := `
		SELECT last_number + 1
		FROM voucher_sequences
		WHERE company_id = $1 AND voucher_domain = $2;
	`
	var next int64
	err := r.Pool.QueryRow(ctx, query, companyID, voucherDomain).Scan(&next)
	if errors.Is(err, pgx.ErrNoRows) {
		return 1, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to peek next voucher number for domain %s: %w", voucherDomain, err)
	}
	return next, nil
}
