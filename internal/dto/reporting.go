package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/smartstock/smartstock_backend/internal/core/domain"
)

const reportDateLayout = "2006-01-02"

// DaybookRowResponse is one line of the daybook report.
type DaybookRowResponse struct {
	Date        string          `json:"date"`
	VoucherType string          `json:"voucherType"`
	VoucherNo   int64           `json:"voucherNo"`
	AccountName string          `json:"accountName"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// DaybookResponse is the daybook report for a date range.
type DaybookResponse struct {
	FromDate string               `json:"fromDate"`
	ToDate   string               `json:"toDate"`
	Filter   string               `json:"filter"`
	Rows     []DaybookRowResponse `json:"rows"`
}

// AccountLedgerRowResponse is one line of an account ledger report.
type AccountLedgerRowResponse struct {
	Date           string          `json:"date"`
	VoucherType    string          `json:"voucherType"`
	VoucherNo      int64           `json:"voucherNo"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	Description    string          `json:"description"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// AccountLedgerResponse is the per-account ledger report.
type AccountLedgerResponse struct {
	AccountID string                     `json:"accountID"`
	FromDate  string                     `json:"fromDate"`
	ToDate    string                     `json:"toDate"`
	Rows      []AccountLedgerRowResponse `json:"rows"`
}

// ProductLedgerRowResponse is one line of a product ledger report.
type ProductLedgerRowResponse struct {
	Date         string          `json:"date"`
	VoucherType  string          `json:"voucherType"`
	VoucherNo    int64           `json:"voucherNo"`
	AccountName  string          `json:"accountName"`
	QuantityIn   decimal.Decimal `json:"quantityIn"`
	QuantityOut  decimal.Decimal `json:"quantityOut"`
	UnitRate     decimal.Decimal `json:"unitRate"`
	Amount       decimal.Decimal `json:"amount"`
	RunningStock decimal.Decimal `json:"runningStock"`
}

// ProductLedgerResponse is the per-product stock ledger report.
type ProductLedgerResponse struct {
	ProductID string                     `json:"productID"`
	FromDate  string                     `json:"fromDate"`
	ToDate    string                     `json:"toDate"`
	Rows      []ProductLedgerRowResponse `json:"rows"`
}

// ToDaybookResponse maps daybook rows to the report response.
func ToDaybookResponse(rows []domain.DaybookRow, from, to time.Time, filter domain.DaybookFilter) DaybookResponse {
	resp := DaybookResponse{
		FromDate: from.Format(reportDateLayout),
		ToDate:   to.Format(reportDateLayout),
		Filter:   string(filter),
		Rows:     make([]DaybookRowResponse, len(rows)),
	}
	for i, row := range rows {
		resp.Rows[i] = DaybookRowResponse{
			Date:        row.Date.Format(reportDateLayout),
			VoucherType: string(row.VoucherType),
			VoucherNo:   row.VoucherNo,
			AccountName: row.AccountName,
			Debit:       row.Debit,
			Credit:      row.Credit,
			Description: row.Description,
		}
	}
	return resp
}

// ToAccountLedgerResponse maps account ledger rows to the report response.
func ToAccountLedgerResponse(rows []domain.AccountLedgerRow, accountID string, from, to time.Time) AccountLedgerResponse {
	resp := AccountLedgerResponse{
		AccountID: accountID,
		FromDate:  from.Format(reportDateLayout),
		ToDate:    to.Format(reportDateLayout),
		Rows:      make([]AccountLedgerRowResponse, len(rows)),
	}
	for i, row := range rows {
		resp.Rows[i] = AccountLedgerRowResponse{
			Date:           row.Date.Format(reportDateLayout),
			VoucherType:    string(row.VoucherType),
			VoucherNo:      row.VoucherNo,
			Debit:          row.Debit,
			Credit:         row.Credit,
			Description:    row.Description,
			RunningBalance: row.RunningBalance,
		}
	}
	return resp
}

// ToProductLedgerResponse maps product ledger rows to the report response.
func ToProductLedgerResponse(rows []domain.ProductLedgerRow, productID string, from, to time.Time) ProductLedgerResponse {
	resp := ProductLedgerResponse{
		ProductID: productID,
		FromDate:  from.Format(reportDateLayout),
		ToDate:    to.Format(reportDateLayout),
		Rows:      make([]ProductLedgerRowResponse, len(rows)),
	}
	for i, row := range rows {
		resp.Rows[i] = ProductLedgerRowResponse{
			Date:         row.Date.Format(reportDateLayout),
			VoucherType:  string(row.VoucherType),
			VoucherNo:    row.VoucherNo,
			AccountName:  row.AccountName,
			QuantityIn:   row.QuantityIn,
			QuantityOut:  row.QuantityOut,
			UnitRate:     row.UnitRate,
			Amount:       row.Amount,
			RunningStock: row.RunningStock,
		}
	}
	return resp
}
