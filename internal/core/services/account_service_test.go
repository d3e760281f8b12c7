package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/smartstock/smartstock_backend/internal/apperrors"
	"github.com/smartstock/smartstock_backend/internal/core/domain"
	portsrepo "github.com/smartstock/smartstock_backend/internal/core/ports/repositories"
	portssvc "github.com/smartstock/smartstock_backend/internal/core/ports/services"
	"github.com/smartstock/smartstock_backend/internal/core/services"
	"github.com/smartstock/smartstock_backend/internal/dto"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepository = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, companyID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, companyID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindInternalAccount(ctx context.Context, companyID string, accountType domain.AccountType) (*domain.Account, error) {
	args := m.Called(ctx, companyID, accountType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, companyID string, accountType *domain.AccountType) ([]domain.Account, error) {
	args := m.Called(ctx, companyID, accountType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) GetDebitCreditTotals(ctx context.Context, companyID, accountID string) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, companyID, accountID)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockAccountRepository) HasLedgerEntries(ctx context.Context, companyID, accountID string) (bool, error) {
	args := m.Called(ctx, companyID, accountID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, companyID, accountID string) error {
	args := m.Called(ctx, companyID, accountID)
	return args.Error(0)
}

// --- Test Suite Setup ---
type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo  *MockAccountRepository
	service   portssvc.AccountSvcFacade
	companyID string
	userID    string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockRepo)
	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Name: "Acme Traders", AccountType: domain.Supplier, Phone: "0300-1234567"}

	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.NotEmpty(account.AccountID)
	suite.Equal(suite.companyID, account.CompanyID)
	suite.Equal(domain.Supplier, account.AccountType)
	suite.True(account.IsActive)
	suite.Equal(suite.userID, account.CreatedBy)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_InternalTypeRejected() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Name: "Sneaky", AccountType: domain.CashBank}

	_, err := suite.service.CreateAccount(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestEnsureInternalAccount_Existing() {
	ctx := context.Background()
	existing := &domain.Account{AccountID: uuid.NewString(), CompanyID: suite.companyID, Name: "Cash / Bank", AccountType: domain.CashBank, IsActive: true}

	suite.mockRepo.On("FindInternalAccount", ctx, suite.companyID, domain.CashBank).Return(existing, nil).Once()

	account, err := suite.service.EnsureInternalAccount(ctx, suite.companyID, domain.CashBank, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(existing.AccountID, account.AccountID)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestEnsureInternalAccount_CreatesOnFirstUse() {
	ctx := context.Background()

	suite.mockRepo.On("FindInternalAccount", ctx, suite.companyID, domain.WalkIn).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.EnsureInternalAccount(ctx, suite.companyID, domain.WalkIn, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.WalkIn, account.AccountType)
	suite.Equal("Walk-in Customer", account.Name)
	suite.True(account.IsActive)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestEnsureInternalAccount_CreationRaceFallsBack() {
	ctx := context.Background()
	winner := &domain.Account{AccountID: uuid.NewString(), CompanyID: suite.companyID, Name: "Local Sale", AccountType: domain.LocalSale, IsActive: true}

	suite.mockRepo.On("FindInternalAccount", ctx, suite.companyID, domain.LocalSale).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(apperrors.ErrDuplicate).Once()
	suite.mockRepo.On("FindInternalAccount", ctx, suite.companyID, domain.LocalSale).Return(winner, nil).Once()

	account, err := suite.service.EnsureInternalAccount(ctx, suite.companyID, domain.LocalSale, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(winner.AccountID, account.AccountID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestEnsureInternalAccount_NonInternalTypeRejected() {
	ctx := context.Background()

	_, err := suite.service.EnsureInternalAccount(ctx, suite.companyID, domain.Customer, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindInternalAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_InternalRejected() {
	ctx := context.Background()
	accountID := uuid.NewString()
	internal := &domain.Account{AccountID: accountID, CompanyID: suite.companyID, AccountType: domain.LocalPurchase, IsActive: true}

	suite.mockRepo.On("FindAccountByID", ctx, suite.companyID, accountID).Return(internal, nil).Once()

	err := suite.service.DeleteAccount(ctx, suite.companyID, accountID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_ReferencedRejected() {
	ctx := context.Background()
	accountID := uuid.NewString()
	customer := &domain.Account{AccountID: accountID, CompanyID: suite.companyID, AccountType: domain.Customer, IsActive: true}

	suite.mockRepo.On("FindAccountByID", ctx, suite.companyID, accountID).Return(customer, nil).Once()
	suite.mockRepo.On("HasLedgerEntries", ctx, suite.companyID, accountID).Return(true, nil).Once()

	err := suite.service.DeleteAccount(ctx, suite.companyID, accountID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()
	supplier := &domain.Account{AccountID: accountID, CompanyID: suite.companyID, AccountType: domain.Supplier, IsActive: true}

	suite.mockRepo.On("FindAccountByID", ctx, suite.companyID, accountID).Return(supplier, nil).Once()
	suite.mockRepo.On("HasLedgerEntries", ctx, suite.companyID, accountID).Return(false, nil).Once()
	suite.mockRepo.On("DeleteAccount", ctx, suite.companyID, accountID).Return(nil).Once()

	err := suite.service.DeleteAccount(ctx, suite.companyID, accountID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetOutstandingBalance_SupplierCreditMinusDebit() {
	ctx := context.Background()
	accountID := uuid.NewString()
	supplier := &domain.Account{AccountID: accountID, CompanyID: suite.companyID, AccountType: domain.Supplier, IsActive: true}

	suite.mockRepo.On("FindAccountByID", ctx, suite.companyID, accountID).Return(supplier, nil).Once()
	suite.mockRepo.On("GetDebitCreditTotals", ctx, suite.companyID, accountID).
		Return(decimal.NewFromInt(300), decimal.NewFromInt(1000), nil).Once()

	balance, err := suite.service.GetOutstandingBalance(ctx, suite.companyID, accountID)

	suite.Require().NoError(err)
	// Supplier balances are what the company owes: credit minus debit.
	suite.True(balance.Equal(decimal.NewFromInt(700)))
}

func (suite *AccountServiceTestSuite) TestGetOutstandingBalance_CustomerDebitMinusCredit() {
	ctx := context.Background()
	accountID := uuid.NewString()
	customer := &domain.Account{AccountID: accountID, CompanyID: suite.companyID, AccountType: domain.Customer, IsActive: true}

	suite.mockRepo.On("FindAccountByID", ctx, suite.companyID, accountID).Return(customer, nil).Once()
	suite.mockRepo.On("GetDebitCreditTotals", ctx, suite.companyID, accountID).
		Return(decimal.NewFromInt(1000), decimal.NewFromInt(250), nil).Once()

	balance, err := suite.service.GetOutstandingBalance(ctx, suite.companyID, accountID)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromInt(750)))
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_NotFound() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockRepo.On("FindAccountByID", ctx, suite.companyID, accountID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetAccountByID(ctx, suite.companyID, accountID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
