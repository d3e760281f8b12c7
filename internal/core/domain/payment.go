package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentType indicates the direction of a payment.
type PaymentType string

const (
	PaymentTypeReceived PaymentType = "RECEIVED"
	PaymentTypePaid     PaymentType = "PAID"
)

// PaymentRecord summarises a payment voucher: one record corresponds to
// exactly one pair of ledger entries (the cash/bank side and the counterparty
// side).
type PaymentRecord struct {
	PaymentID       string          `json:"paymentID"`
	VoucherID       string          `json:"voucherID"`
	CompanyID       string          `json:"companyID"`
	AccountID       string          `json:"accountID"` // customer or supplier
	PaymentType     PaymentType     `json:"paymentType"`
	Amount          decimal.Decimal `json:"amount"`
	MethodAccountID string          `json:"methodAccountID"` // cash/bank account
	Reference       string          `json:"reference"`
	PaymentDate     time.Time       `json:"paymentDate"`
	AuditFields
}
