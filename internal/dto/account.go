package dto

import (
	"github.com/shopspring/decimal"
	"github.com/smartstock/smartstock_backend/internal/core/domain"
)

// CreateAccountRequest creates a customer or supplier account. Internal
// account types are engine-managed and rejected here.
type CreateAccountRequest struct {
	Name        string             `json:"name" binding:"required"`
	AccountType domain.AccountType `json:"accountType" binding:"required,oneof=CUSTOMER SUPPLIER"`
	Phone       string             `json:"phone"`
	Email       string             `json:"email" binding:"omitempty,email"`
	Address     string             `json:"address"`
}

// AccountResponse is the wire shape of an account.
type AccountResponse struct {
	AccountID   string             `json:"accountID"`
	Name        string             `json:"name"`
	AccountType domain.AccountType `json:"accountType"`
	Phone       string             `json:"phone,omitempty"`
	Email       string             `json:"email,omitempty"`
	Address     string             `json:"address,omitempty"`
	IsActive    bool               `json:"isActive"`
}

// BalanceResponse reports an account's outstanding balance, recomputed from
// the ledger on every call.
type BalanceResponse struct {
	AccountID          string          `json:"accountID"`
	OutstandingBalance decimal.Decimal `json:"outstandingBalance"`
}

// ToAccountResponse maps a domain account to its response shape.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:   a.AccountID,
		Name:        a.Name,
		AccountType: a.AccountType,
		Phone:       a.Phone,
		Email:       a.Email,
		Address:     a.Address,
		IsActive:    a.IsActive,
	}
}

// ToAccountResponses maps a slice of domain accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	out := make([]AccountResponse, len(accounts))
	for i := range accounts {
		out[i] = ToAccountResponse(&accounts[i])
	}
	return out
}
