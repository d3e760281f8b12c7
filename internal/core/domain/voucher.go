package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// VoucherType names the business event a voucher records.
type VoucherType string

const (
	PurchaseVoucher VoucherType = "PURCHASE"
	SaleVoucher     VoucherType = "SALE"
	PaymentReceived VoucherType = "PAYMENT_RECEIVED"
	PaymentMade     VoucherType = "PAYMENT_MADE"
)

// VoucherDomain identifies an independent per-company numbering sequence.
// Both payment voucher types draw from the same Payment sequence.
type VoucherDomain string

const (
	PurchaseDomain VoucherDomain = "PURCHASE"
	SaleDomain     VoucherDomain = "SALE"
	PaymentDomain  VoucherDomain = "PAYMENT"
)

// Label is the human-readable form used in narrations and report descriptions.
func (t VoucherType) Label() string {
	switch t {
	case PurchaseVoucher:
		return "Purchase"
	case SaleVoucher:
		return "Sale"
	case PaymentReceived:
		return "Payment Received"
	case PaymentMade:
		return "Payment Made"
	default:
		return string(t)
	}
}

// Domain maps a voucher type to its numbering domain.
func (t VoucherType) Domain() VoucherDomain {
	switch t {
	case PurchaseVoucher:
		return PurchaseDomain
	case SaleVoucher:
		return SaleDomain
	default:
		return PaymentDomain
	}
}

// VoucherStatus indicates the lifecycle state of a posted voucher.
type VoucherStatus string

const (
	Posted   VoucherStatus = "POSTED"
	Reversed VoucherStatus = "REVERSED"
)

// Voucher groups the balanced ledger rows (and, for purchases and sales, the
// inventory movements) of a single business event. Vouchers are immutable once
// posted; corrections are new reversing vouchers linked through
// OriginalVoucherID / ReversingVoucherID.
type Voucher struct {
	VoucherID          string          `json:"voucherID"`
	CompanyID          string          `json:"companyID"`
	VoucherNo          int64           `json:"voucherNo"`
	VoucherType        VoucherType     `json:"voucherType"`
	VoucherDomain      VoucherDomain   `json:"voucherDomain"`
	VoucherDate        time.Time       `json:"voucherDate"`
	Amount             decimal.Decimal `json:"amount"`
	Narration          string          `json:"narration"`
	Status             VoucherStatus   `json:"status"`
	OriginalVoucherID  *string         `json:"originalVoucherID,omitempty"`
	ReversingVoucherID *string         `json:"reversingVoucherID,omitempty"`
	AuditFields
}
