package repositories

import (
	"context"

	"github.com/smartstock/smartstock_backend/internal/core/domain"
)

// VoucherRepository persists vouchers and everything they own. SaveVoucher and
// SaveReversingVoucher are the only write paths into the ledger: each runs as
// one database transaction covering voucher number allocation, the voucher
// row, its ledger entries, its inventory movements, the stock counter
// adjustments, and (for payments) the payment record.
//
// Implementations return apperrors.ErrConflict when the unit of work loses a
// race (serialization failure or unique violation) so callers can retry, and
// apperrors.ErrInsufficientStock when a movement would drive a stock counter
// negative.
type VoucherRepository interface {
	SaveVoucher(ctx context.Context, voucher domain.Voucher, entries []domain.LedgerEntry, movements []domain.InventoryMovement, payment *domain.PaymentRecord) (int64, error)
	// SaveReversingVoucher additionally marks the original voucher REVERSED and
	// links the pair, all inside the same transaction.
	SaveReversingVoucher(ctx context.Context, reversing domain.Voucher, entries []domain.LedgerEntry, movements []domain.InventoryMovement, originalVoucherID string) (int64, error)
	FindVoucherByID(ctx context.Context, companyID, voucherID string) (*domain.Voucher, error)
	FindLedgerEntriesByVoucherID(ctx context.Context, companyID, voucherID string) ([]domain.LedgerEntry, error)
	FindMovementsByVoucherID(ctx context.Context, companyID, voucherID string) ([]domain.InventoryMovement, error)
	// PeekNextVoucherNumber is a read-only preview. The number actually
	// assigned is decided inside SaveVoucher's transaction.
	PeekNextVoucherNumber(ctx context.Context, companyID string, voucherDomain domain.VoucherDomain) (int64, error)
}
