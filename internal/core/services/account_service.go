package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smartstock/smartstock_backend/internal/apperrors"
	"github.com/smartstock/smartstock_backend/internal/core/domain"
	portsrepo "github.com/smartstock/smartstock_backend/internal/core/ports/repositories"
	portssvc "github.com/smartstock/smartstock_backend/internal/core/ports/services"
	"github.com/smartstock/smartstock_backend/internal/dto"
	"github.com/smartstock/smartstock_backend/internal/middleware"
	"github.com/smartstock/smartstock_backend/internal/utils/accounting"
)

// internalAccountNames are the defaults used when an internal account is
// created on first use.
var internalAccountNames = map[domain.AccountType]string{
	domain.LocalSale:     "Local Sale",
	domain.LocalPurchase: "Local Purchase",
	domain.CashBank:      "Cash / Bank",
	domain.WalkIn:        "Walk-in Customer",
}

// accountService implements the account directory and resolver.
type accountService struct {
	accountRepo portsrepo.AccountRepository
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepository) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount creates a customer or supplier account.
func (s *accountService) CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.AccountType.IsInternal() {
		return nil, fmt.Errorf("%w: account type %s is engine-managed", apperrors.ErrValidation, req.AccountType)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   companyID,
		Name:        req.Name,
		AccountType: req.AccountType,
		Phone:       req.Phone,
		Email:       req.Email,
		Address:     req.Address,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("account_type", string(account.AccountType)))
	return &account, nil
}

// GetAccountByID retrieves an account scoped to the company.
func (s *accountService) GetAccountByID(ctx context.Context, companyID, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, companyID, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return account, nil
}

// ListAccounts lists the company's accounts, optionally narrowed by type.
func (s *accountService) ListAccounts(ctx context.Context, companyID string, accountType *domain.AccountType) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, companyID, accountType)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// DeleteAccount removes an account unless ledger entries reference it.
func (s *accountService) DeleteAccount(ctx context.Context, companyID, accountID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, companyID, accountID)
	if err != nil {
		return fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	if account.AccountType.IsInternal() {
		return fmt.Errorf("%w: internal account %s cannot be deleted", apperrors.ErrValidation, accountID)
	}

	referenced, err := s.accountRepo.HasLedgerEntries(ctx, companyID, accountID)
	if err != nil {
		return fmt.Errorf("failed to check ledger references for account %s: %w", accountID, err)
	}
	if referenced {
		return fmt.Errorf("%w: account %s is referenced by ledger entries", apperrors.ErrConflict, accountID)
	}

	if err := s.accountRepo.DeleteAccount(ctx, companyID, accountID); err != nil {
		logger.Error("Failed to delete account", slog.String("account_id", accountID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete account %s: %w", accountID, err)
	}

	logger.Info("Account deleted", slog.String("account_id", accountID))
	return nil
}

// EnsureInternalAccount returns the company's internal account of the given
// type, creating it on first use. Safe to call concurrently: a creation race
// falls back to re-reading the winner's row.
func (s *accountService) EnsureInternalAccount(ctx context.Context, companyID string, accountType domain.AccountType, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !accountType.IsInternal() {
		return nil, fmt.Errorf("%w: %s is not an internal account type", apperrors.ErrValidation, accountType)
	}

	account, err := s.accountRepo.FindInternalAccount(ctx, companyID, accountType)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to find internal account %s: %w", accountType, err)
	}

	now := time.Now().UTC()
	created := domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   companyID,
		Name:        internalAccountNames[accountType],
		AccountType: accountType,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, created); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Another caller created it between our read and write.
			return s.accountRepo.FindInternalAccount(ctx, companyID, accountType)
		}
		logger.Error("Failed to create internal account", slog.String("account_type", string(accountType)), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create internal account %s: %w", accountType, err)
	}

	logger.Info("Internal account created", slog.String("account_id", created.AccountID), slog.String("account_type", string(accountType)))
	return &created, nil
}

// GetOutstandingBalance recomputes the account's net position from the ledger.
// Never cached: the ledger rows are the single source of truth.
func (s *accountService) GetOutstandingBalance(ctx context.Context, companyID, accountID string) (decimal.Decimal, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, companyID, accountID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	totalDebit, totalCredit, err := s.accountRepo.GetDebitCreditTotals(ctx, companyID, accountID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum ledger entries for account %s: %w", accountID, err)
	}

	return accounting.OutstandingBalance(account.AccountType, totalDebit, totalCredit), nil
}
