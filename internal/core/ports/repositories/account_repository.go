package repositories

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/smartstock/smartstock_backend/internal/core/domain"
)

// AccountRepository provides persistence for the company account directory
// and the ledger aggregations derived from it.
type AccountRepository interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	FindAccountByID(ctx context.Context, companyID, accountID string) (*domain.Account, error)
	// FindAccountsByIDs returns the accounts found keyed by id; missing ids are
	// simply absent from the map.
	FindAccountsByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error)
	// FindInternalAccount returns the single internal account of the given type
	// for the company, or apperrors.ErrNotFound when none exists yet.
	FindInternalAccount(ctx context.Context, companyID string, accountType domain.AccountType) (*domain.Account, error)
	ListAccounts(ctx context.Context, companyID string, accountType *domain.AccountType) ([]domain.Account, error)
	// GetDebitCreditTotals sums all ledger entry debits and credits for one account.
	GetDebitCreditTotals(ctx context.Context, companyID, accountID string) (debit, credit decimal.Decimal, err error)
	HasLedgerEntries(ctx context.Context, companyID, accountID string) (bool, error)
	DeleteAccount(ctx context.Context, companyID, accountID string) error
}
