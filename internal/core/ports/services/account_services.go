package services

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/smartstock/smartstock_backend/internal/core/domain"
	"github.com/smartstock/smartstock_backend/internal/dto"
)

// AccountSvcFacade is the account directory and resolver surface the rest of
// the engine depends on.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)
	GetAccountByID(ctx context.Context, companyID, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context, companyID string, accountType *domain.AccountType) ([]domain.Account, error)
	// DeleteAccount rejects deletion with apperrors.ErrConflict while ledger
	// entries reference the account.
	DeleteAccount(ctx context.Context, companyID, accountID string) error
	// EnsureInternalAccount returns the company's internal account of the given
	// type, creating it with defaults on first use. Idempotent.
	EnsureInternalAccount(ctx context.Context, companyID string, accountType domain.AccountType, userID string) (*domain.Account, error)
	// GetOutstandingBalance recomputes the account's net position from the
	// ledger: credit minus debit for suppliers, debit minus credit otherwise.
	GetOutstandingBalance(ctx context.Context, companyID, accountID string) (decimal.Decimal, error)
}
