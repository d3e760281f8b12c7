package services

import (
	"context"

	"github.com/smartstock/smartstock_backend/internal/core/domain"
	"github.com/smartstock/smartstock_backend/internal/dto"
)

// VoucherSvcFacade turns business events into posted vouchers and serves
// voucher reads. All mutations are atomic per voucher and retried internally
// on allocation races before surfacing apperrors.ErrConflict.
type VoucherSvcFacade interface {
	CreatePurchase(ctx context.Context, companyID string, req dto.CreatePurchaseRequest, creatorUserID string) (*domain.Voucher, error)
	CreateSale(ctx context.Context, companyID string, req dto.CreateSaleRequest, creatorUserID string) (*domain.Voucher, error)
	CreatePayment(ctx context.Context, companyID string, req dto.CreatePaymentRequest, creatorUserID string) (*domain.Voucher, error)
	// ReverseVoucher posts a new voucher mirroring the original's ledger lines
	// and inverting its movements, then marks the original REVERSED.
	ReverseVoucher(ctx context.Context, companyID, voucherID, userID string) (*domain.Voucher, error)
	// GetNextVoucherNumber is an advisory preview; the committed number is
	// allocated inside the create calls.
	GetNextVoucherNumber(ctx context.Context, companyID string, voucherDomain domain.VoucherDomain) (int64, error)
	GetVoucherByID(ctx context.Context, companyID, voucherID string) (*domain.Voucher, []domain.LedgerEntry, []domain.InventoryMovement, error)
}
