package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DaybookFilter narrows the daybook to one class of business event.
type DaybookFilter string

const (
	DaybookAll             DaybookFilter = "all"
	DaybookPaymentReceived DaybookFilter = "payment-received"
	DaybookPaymentPaid     DaybookFilter = "payment-paid"
	DaybookSale            DaybookFilter = "sale"
	DaybookPurchase        DaybookFilter = "purchase"
)

// VoucherTypes expands a filter into the voucher types it selects.
// The filter is applied at query time, before rows are merged.
func (f DaybookFilter) VoucherTypes() []VoucherType {
	switch f {
	case DaybookPaymentReceived:
		return []VoucherType{PaymentReceived}
	case DaybookPaymentPaid:
		return []VoucherType{PaymentMade}
	case DaybookSale:
		return []VoucherType{SaleVoucher}
	case DaybookPurchase:
		return []VoucherType{PurchaseVoucher}
	default:
		return []VoucherType{PurchaseVoucher, SaleVoucher, PaymentReceived, PaymentMade}
	}
}

// Valid reports whether the filter is one of the supported values.
func (f DaybookFilter) Valid() bool {
	switch f {
	case DaybookAll, DaybookPaymentReceived, DaybookPaymentPaid, DaybookSale, DaybookPurchase:
		return true
	}
	return false
}

// DaybookRow is one line of the chronological daybook view.
type DaybookRow struct {
	Date        time.Time       `json:"date"`
	VoucherType VoucherType     `json:"voucherType"`
	VoucherNo   int64           `json:"voucherNo"`
	AccountName string          `json:"accountName"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// AccountLedgerRow is one line of a per-account ledger projection.
// RunningBalance is derived in order while reconstructing the view.
type AccountLedgerRow struct {
	Date           time.Time       `json:"date"`
	VoucherType    VoucherType     `json:"voucherType"`
	VoucherNo      int64           `json:"voucherNo"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	Description    string          `json:"description"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// ProductLedgerRow is one line of a per-product stock movement projection.
type ProductLedgerRow struct {
	Date         time.Time       `json:"date"`
	VoucherType  VoucherType     `json:"voucherType"`
	VoucherNo    int64           `json:"voucherNo"`
	AccountName  string          `json:"accountName"`
	QuantityIn   decimal.Decimal `json:"quantityIn"`
	QuantityOut  decimal.Decimal `json:"quantityOut"`
	UnitRate     decimal.Decimal `json:"unitRate"`
	Amount       decimal.Decimal `json:"amount"`
	RunningStock decimal.Decimal `json:"runningStock"`
}

// ReorderProduct pairs a product with its current stock when the reorder
// threshold has been reached.
type ReorderProduct struct {
	Product     Product         `json:"product"`
	StockOnHand decimal.Decimal `json:"stockOnHand"`
}
