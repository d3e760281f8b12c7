package domain

// AccountType classifies an account in the company's directory.
// Customer and supplier accounts are user-created; the remaining types are
// internal accounts the engine creates on demand, at most one per company.
type AccountType string

const (
	Customer      AccountType = "CUSTOMER"
	Supplier      AccountType = "SUPPLIER"
	LocalSale     AccountType = "LOCAL_SALE"
	LocalPurchase AccountType = "LOCAL_PURCHASE"
	CashBank      AccountType = "CASH_BANK"
	WalkIn        AccountType = "WALK_IN"
)

// IsInternal reports whether the type names a company-owned internal account.
func (t AccountType) IsInternal() bool {
	switch t {
	case LocalSale, LocalPurchase, CashBank, WalkIn:
		return true
	}
	return false
}

// Account represents one ledger account owned by a company.
type Account struct {
	AccountID   string      `json:"accountID"`
	CompanyID   string      `json:"companyID"`
	Name        string      `json:"name"`
	AccountType AccountType `json:"accountType"`
	Phone       string      `json:"phone"`
	Email       string      `json:"email"`
	Address     string      `json:"address"`
	IsActive    bool        `json:"isActive"`
	AuditFields
}
