package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/smartstock/smartstock_backend/internal/core/domain"
)

// PurchaseItem is one line of a purchase voucher.
type PurchaseItem struct {
	ProductID string          `json:"productID" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	UnitCost  decimal.Decimal `json:"unitCost" binding:"required"`
}

// CreatePurchaseRequest posts a purchase from a supplier.
type CreatePurchaseRequest struct {
	SupplierID  string         `json:"supplierID" binding:"required"`
	VoucherDate time.Time      `json:"voucherDate" binding:"required"`
	Narration   string         `json:"narration"`
	Items       []PurchaseItem `json:"items" binding:"required,min=1,dive"`
}

// SaleItem is one line of a sale voucher. DiscountPct is a percentage in
// [0, 100] applied to quantity times unit price.
type SaleItem struct {
	ProductID   string          `json:"productID" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unitPrice" binding:"required"`
	DiscountPct decimal.Decimal `json:"discountPct"`
}

// CreateSaleRequest posts a sale. CustomerID may be empty for a walk-in sale,
// in which case the company's walk-in account is the counterparty.
type CreateSaleRequest struct {
	CustomerID  string     `json:"customerID"`
	VoucherDate time.Time  `json:"voucherDate" binding:"required"`
	Narration   string     `json:"narration"`
	Items       []SaleItem `json:"items" binding:"required,min=1,dive"`
}

// CreatePaymentRequest posts a payment received from a customer or paid to a
// supplier. MethodAccountID may be empty; the company cash/bank account is
// then used.
type CreatePaymentRequest struct {
	AccountID       string             `json:"accountID" binding:"required"`
	PaymentType     domain.PaymentType `json:"paymentType" binding:"required,oneof=RECEIVED PAID"`
	Amount          decimal.Decimal    `json:"amount" binding:"required"`
	MethodAccountID string             `json:"methodAccountID"`
	Reference       string             `json:"reference"`
	VoucherDate     time.Time          `json:"voucherDate" binding:"required"`
}

// VoucherResponse acknowledges a posted voucher.
type VoucherResponse struct {
	VoucherID   string             `json:"voucherID"`
	VoucherNo   int64              `json:"voucherNo"`
	VoucherType domain.VoucherType `json:"voucherType"`
	Amount      decimal.Decimal    `json:"amount"`
}

// NextVoucherNumberResponse carries the advisory next number for a domain.
type NextVoucherNumberResponse struct {
	Domain        domain.VoucherDomain `json:"domain"`
	NextVoucherNo int64                `json:"nextVoucherNo"`
}

// LedgerEntryResponse is one ledger line of a voucher detail.
type LedgerEntryResponse struct {
	AccountID string          `json:"accountID"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// MovementResponse is one inventory movement line of a voucher detail.
type MovementResponse struct {
	ProductID   string          `json:"productID"`
	QuantityIn  decimal.Decimal `json:"quantityIn"`
	QuantityOut decimal.Decimal `json:"quantityOut"`
	UnitRate    decimal.Decimal `json:"unitRate"`
	Amount      decimal.Decimal `json:"amount"`
}

// VoucherDetailResponse is a voucher with everything it owns.
type VoucherDetailResponse struct {
	VoucherID          string                `json:"voucherID"`
	VoucherNo          int64                 `json:"voucherNo"`
	VoucherType        domain.VoucherType    `json:"voucherType"`
	VoucherDate        time.Time             `json:"voucherDate"`
	Amount             decimal.Decimal       `json:"amount"`
	Narration          string                `json:"narration"`
	Status             domain.VoucherStatus  `json:"status"`
	OriginalVoucherID  *string               `json:"originalVoucherID,omitempty"`
	ReversingVoucherID *string               `json:"reversingVoucherID,omitempty"`
	Entries            []LedgerEntryResponse `json:"entries"`
	Movements          []MovementResponse    `json:"movements"`
}

// ToVoucherDetailResponse maps a voucher and its rows to the detail shape.
func ToVoucherDetailResponse(v *domain.Voucher, entries []domain.LedgerEntry, movements []domain.InventoryMovement) VoucherDetailResponse {
	resp := VoucherDetailResponse{
		VoucherID:          v.VoucherID,
		VoucherNo:          v.VoucherNo,
		VoucherType:        v.VoucherType,
		VoucherDate:        v.VoucherDate,
		Amount:             v.Amount,
		Narration:          v.Narration,
		Status:             v.Status,
		OriginalVoucherID:  v.OriginalVoucherID,
		ReversingVoucherID: v.ReversingVoucherID,
		Entries:            make([]LedgerEntryResponse, len(entries)),
		Movements:          make([]MovementResponse, len(movements)),
	}
	for i, e := range entries {
		resp.Entries[i] = LedgerEntryResponse{AccountID: e.AccountID, Debit: e.Debit, Credit: e.Credit}
	}
	for i, m := range movements {
		resp.Movements[i] = MovementResponse{
			ProductID:   m.ProductID,
			QuantityIn:  m.QuantityIn,
			QuantityOut: m.QuantityOut,
			UnitRate:    m.UnitRate,
			Amount:      m.Amount,
		}
	}
	return resp
}

// ToVoucherResponse maps a posted voucher to its acknowledgement shape.
func ToVoucherResponse(v *domain.Voucher) VoucherResponse {
	return VoucherResponse{
		VoucherID:   v.VoucherID,
		VoucherNo:   v.VoucherNo,
		VoucherType: v.VoucherType,
		Amount:      v.Amount,
	}
}
