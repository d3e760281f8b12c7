package domain

import "github.com/shopspring/decimal"

// LedgerEntry is one debit-or-credit line against one account, belonging to
// exactly one voucher. Exactly one of Debit/Credit is positive, the other is
// zero. Entries are append-only; only the ledger poster creates them.
type LedgerEntry struct {
	EntryID   string          `json:"entryID"`
	VoucherID string          `json:"voucherID"`
	CompanyID string          `json:"companyID"`
	AccountID string          `json:"accountID"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	AuditFields
}
