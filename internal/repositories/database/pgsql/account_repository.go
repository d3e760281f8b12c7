package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/smartstock/smartstock_backend/internal/apperrors"
	"github.com/smartstock/smartstock_backend/internal/core/domain"
	portsrepo "github.com/smartstock/smartstock_backend/internal/core/ports/repositories"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepository = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, company_id, name, account_type, phone, email, address, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanAccount(row pgx.Row) (domain.Account, error) {
	var a domain.Account
	err := row.Scan(
		&a.AccountID,
		&a.CompanyID,
		&a.Name,
		&a.AccountType,
		&a.Phone,
		&a.Email,
		&a.Address,
		&a.IsActive,
		&a.CreatedAt,
		&a.CreatedBy,
		&a.LastUpdatedAt,
		&a.LastUpdatedBy,
	)
	return a, err
}

// SaveAccount inserts a new account. A partial unique index keeps internal
// account types to one row per company; racing inserts surface as
// apperrors.ErrDuplicate.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		account.AccountID,
		account.CompanyID,
		account.Name,
		account.AccountType,
		account.Phone,
		account.Email,
		account.Address,
		account.IsActive,
		account.CreatedAt,
		account.CreatedBy,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: account %s already exists", apperrors.ErrDuplicate, account.AccountID)
		}
		return fmt.Errorf("failed to save account %s: %w", account.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID, scoped to the company.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, companyID, accountID string) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE company_id = $1 AND account_id = $2;
	`
	account, err := scanAccount(r.Pool.QueryRow(ctx, query, companyID, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	return &account, nil
}

// FindAccountsByIDs retrieves multiple accounts by their IDs. Missing IDs are
// simply absent from the returned map.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE company_id = $1 AND account_id = ANY($2);
	`
	rows, err := r.Pool.Query(ctx, query, companyID, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs: %w", err)
	}
	defer rows.Close()

	accountsMap := make(map[string]domain.Account)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row during batch fetch: %w", err)
		}
		accountsMap[account.AccountID] = account
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows during batch fetch: %w", err)
	}
	return accountsMap, nil
}

// FindInternalAccount returns the company's single internal account of the
// given type.
func (r *PgxAccountRepository) FindInternalAccount(ctx context.Context, companyID string, accountType domain.AccountType) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE company_id = $1 AND account_type = $2
		LIMIT 1;
	`
	account, err := scanAccount(r.Pool.QueryRow(ctx, query, companyID, accountType))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: internal account %s", apperrors.ErrNotFound, accountType)
		}
		return nil, fmt.Errorf("failed to find internal account %s: %w", accountType, err)
	}
	return &account, nil
}

// ListAccounts retrieves the company's active accounts, optionally narrowed
// to one type, ordered by name.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, companyID string, accountType *domain.AccountType) ([]domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE company_id = $1 AND is_active = TRUE
		  AND ($2::text IS NULL OR account_type = $2)
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, accountType)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts for company %s: %w", companyID, err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row for company %s: %w", companyID, err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows for company %s: %w", companyID, err)
	}
	return accounts, nil
}

// GetDebitCreditTotals sums all ledger debits and credits for one account.
func (r *PgxAccountRepository) GetDebitCreditTotals(ctx context.Context, companyID, accountID string) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(debit), 0), COALESCE(SUM(credit), 0)
		FROM ledger_entries
		WHERE company_id = $1 AND account_id = $2;
	`
	var debit, credit decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, companyID, accountID).Scan(&debit, &credit); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to sum ledger entries for account %s: %w", accountID, err)
	}
	return debit, credit, nil
}

// HasLedgerEntries reports whether any ledger entry references the account.
func (r *PgxAccountRepository) HasLedgerEntries(ctx context.Context, companyID, accountID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM ledger_entries WHERE company_id = $1 AND account_id = $2
		);
	`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, companyID, accountID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check ledger references for account %s: %w", accountID, err)
	}
	return exists, nil
}

// DeleteAccount removes an account row. The service layer guarantees no
// ledger entry references it before calling.
func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, companyID, accountID string) error {
	query := `DELETE FROM accounts WHERE company_id = $1 AND account_id = $2;`
	cmdTag, err := r.Pool.Exec(ctx, query, companyID, accountID)
	if err != nil {
		return fmt.Errorf("failed to delete account %s: %w", accountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	return nil
}
