package services_test

import (
	"context"
	"testing"
	"time"

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

// --- Mock VoucherRepository ---
type MockVoucherRepository struct {
	mock.Mock
}

var _ portsrepo.VoucherRepository = (*MockVoucherRepository)(nil)

func (m *MockVoucherRepository) SaveVoucher(ctx context.Context, voucher domain.Voucher, entries []domain.LedgerEntry, movements []domain.InventoryMovement, payment *domain.PaymentRecord) (int64, error) {
	args := m.Called(ctx, voucher, entries, movements, payment)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVoucherRepository) SaveReversingVoucher(ctx context.Context, reversing domain.Voucher, entries []domain.LedgerEntry, movements []domain.InventoryMovement, originalVoucherID string) (int64, error) {
	args := m.Called(ctx, reversing, entries, movements, originalVoucherID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVoucherRepository) FindVoucherByID(ctx context.Context, companyID, voucherID string) (*domain.Voucher, error) {
	args := m.Called(ctx, companyID, voucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}

func (m *MockVoucherRepository) FindLedgerEntriesByVoucherID(ctx context.Context, companyID, voucherID string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, companyID, voucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockVoucherRepository) FindMovementsByVoucherID(ctx context.Context, companyID, voucherID string) ([]domain.InventoryMovement, error) {
	args := m.Called(ctx, companyID, voucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryMovement), args.Error(1)
}

func (m *MockVoucherRepository) PeekNextVoucherNumber(ctx context.Context, companyID string, voucherDomain domain.VoucherDomain) (int64, error) {
	args := m.Called(ctx, companyID, voucherDomain)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock ProductRepository ---
type MockProductRepository struct {
	mock.Mock
}

var _ portsrepo.ProductRepository = (*MockProductRepository)(nil)

func (m *MockProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) FindProductByID(ctx context.Context, companyID, productID string) (*domain.Product, error) {
	args := m.Called(ctx, companyID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindProductsByIDs(ctx context.Context, companyID string, productIDs []string) (map[string]domain.Product, error) {
	args := m.Called(ctx, companyID, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Product), args.Error(1)
}

func (m *MockProductRepository) ListProducts(ctx context.Context, companyID string) ([]domain.Product, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) GetStockLevel(ctx context.Context, companyID, productID string) (decimal.Decimal, error) {
	args := m.Called(ctx, companyID, productID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockProductRepository) ListBelowRestock(ctx context.Context, companyID string) ([]domain.ReorderProduct, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReorderProduct), args.Error(1)
}

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

func (m *MockAccountService) CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, companyID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, companyID string, accountType *domain.AccountType) ([]domain.Account, error) {
	args := m.Called(ctx, companyID, accountType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) DeleteAccount(ctx context.Context, companyID, accountID string) error {
	args := m.Called(ctx, companyID, accountID)
	return args.Error(0)
}

func (m *MockAccountService) EnsureInternalAccount(ctx context.Context, companyID string, accountType domain.AccountType, userID string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, accountType, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetOutstandingBalance(ctx context.Context, companyID, accountID string) (decimal.Decimal, error) {
	args := m.Called(ctx, companyID, accountID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Test Suite Setup ---
type VoucherServiceTestSuite struct {
	suite.Suite
	mockVoucherRepo *MockVoucherRepository
	mockProductRepo *MockProductRepository
	mockAccountSvc  *MockAccountService
	service         portssvc.VoucherSvcFacade
	companyID       string
	userID          string
	supplier        domain.Account
	customer        domain.Account
	walkIn          domain.Account
	localPurchase   domain.Account
	localSale       domain.Account
	cashBank        domain.Account
	product         domain.Product
}

func (suite *VoucherServiceTestSuite) SetupTest() {
	suite.mockVoucherRepo = new(MockVoucherRepository)
	suite.mockProductRepo = new(MockProductRepository)
	suite.mockAccountSvc = new(MockAccountService)
	suite.service = services.NewVoucherService(suite.mockVoucherRepo, suite.mockProductRepo, suite.mockAccountSvc)

	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.supplier = domain.Account{AccountID: uuid.NewString(), CompanyID: suite.companyID, Name: "Acme Traders", AccountType: domain.Supplier, IsActive: true}
	suite.customer = domain.Account{AccountID: uuid.NewString(), CompanyID: suite.companyID, Name: "Jane Retail", AccountType: domain.Customer, IsActive: true}
	suite.walkIn = domain.Account{AccountID: uuid.NewString(), CompanyID: suite.companyID, Name: "Walk-in Customer", AccountType: domain.WalkIn, IsActive: true}
	suite.localPurchase = domain.Account{AccountID: uuid.NewString(), CompanyID: suite.companyID, Name: "Local Purchase", AccountType: domain.LocalPurchase, IsActive: true}
	suite.localSale = domain.Account{AccountID: uuid.NewString(), CompanyID: suite.companyID, Name: "Local Sale", AccountType: domain.LocalSale, IsActive: true}
	suite.cashBank = domain.Account{AccountID: uuid.NewString(), CompanyID: suite.companyID, Name: "Cash / Bank", AccountType: domain.CashBank, IsActive: true}
	suite.product = domain.Product{ProductID: uuid.NewString(), CompanyID: suite.companyID, Name: "Widget", UnitPrice: decimal.NewFromInt(150), UnitCost: decimal.NewFromInt(100), IsActive: true}
}

func entriesBalance(entries []domain.LedgerEntry) bool {
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, e := range entries {
		totalDebit = totalDebit.Add(e.Debit)
		totalCredit = totalCredit.Add(e.Credit)
	}
	return totalDebit.Equal(totalCredit)
}

// --- Purchase ---

func (suite *VoucherServiceTestSuite) TestCreatePurchase_Success() {
	ctx := context.Background()
	req := dto.CreatePurchaseRequest{
		SupplierID:  suite.supplier.AccountID,
		VoucherDate: time.Now().UTC(),
		Items: []dto.PurchaseItem{
			{ProductID: suite.product.ProductID, Quantity: decimal.NewFromInt(10), UnitCost: decimal.NewFromInt(100)},
		},
	}

	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.companyID, suite.supplier.AccountID).Return(&suite.supplier, nil).Once()
	suite.mockProductRepo.On("FindProductsByIDs", ctx, suite.companyID, []string{suite.product.ProductID}).
		Return(map[string]domain.Product{suite.product.ProductID: suite.product}, nil).Once()
	suite.mockAccountSvc.On("EnsureInternalAccount", ctx, suite.companyID, domain.LocalPurchase, suite.userID).Return(&suite.localPurchase, nil).Once()

	var savedEntries []domain.LedgerEntry
	var savedMovements []domain.InventoryMovement
	suite.mockVoucherRepo.On("SaveVoucher", ctx, mock.AnythingOfType("domain.Voucher"), mock.Anything, mock.Anything, (*domain.PaymentRecord)(nil)).
		Run(func(args mock.Arguments) {
			savedEntries = args.Get(2).([]domain.LedgerEntry)
			savedMovements = args.Get(3).([]domain.InventoryMovement)
		}).
		Return(int64(7), nil).Once()

	voucher, err := suite.service.CreatePurchase(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(voucher)
	suite.Equal(int64(7), voucher.VoucherNo)
	suite.Equal(domain.PurchaseVoucher, voucher.VoucherType)
	suite.Equal(domain.PurchaseDomain, voucher.VoucherDomain)
	suite.Equal(domain.Posted, voucher.Status)
	suite.True(voucher.Amount.Equal(decimal.NewFromInt(1000)))

	suite.Require().Len(savedEntries, 2)
	suite.True(entriesBalance(savedEntries))
	suite.Equal(suite.localPurchase.AccountID, savedEntries[0].AccountID)
	suite.True(savedEntries[0].Debit.Equal(decimal.NewFromInt(1000)))
	suite.Equal(suite.supplier.AccountID, savedEntries[1].AccountID)
	suite.True(savedEntries[1].Credit.Equal(decimal.NewFromInt(1000)))

	suite.Require().Len(savedMovements, 1)
	suite.True(savedMovements[0].QuantityIn.Equal(decimal.NewFromInt(10)))
	suite.True(savedMovements[0].QuantityOut.IsZero())

	suite.mockVoucherRepo.AssertExpectations(suite.T())
	suite.mockAccountSvc.AssertExpectations(suite.T())
}

func (suite *VoucherServiceTestSuite) TestCreatePurchase_WrongAccountType() {
	ctx := context.Background()
	req := dto.CreatePurchaseRequest{
		SupplierID:  suite.customer.AccountID,
		VoucherDate: time.Now().UTC(),
		Items: []dto.PurchaseItem{
			{ProductID: suite.product.ProductID, Quantity: decimal.NewFromInt(1), UnitCost: decimal.NewFromInt(100)},
		},
	}

	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.companyID, suite.customer.AccountID).Return(&suite.customer, nil).Once()

	_, err := suite.service.CreatePurchase(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockVoucherRepo.AssertNotCalled(suite.T(), "SaveVoucher", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *VoucherServiceTestSuite) TestCreatePurchase_UnknownProduct() {
	ctx := context.Background()
	unknownID := uuid.NewString()
	req := dto.CreatePurchaseRequest{
		SupplierID:  suite.supplier.AccountID,
		VoucherDate: time.Now().UTC(),
		Items: []dto.PurchaseItem{
			{ProductID: unknownID, Quantity: decimal.NewFromInt(1), UnitCost: decimal.NewFromInt(100)},
		},
	}

	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.companyID, suite.supplier.AccountID).Return(&suite.supplier, nil).Once()
	suite.mockProductRepo.On("FindProductsByIDs", ctx, suite.companyID, []string{unknownID}).
		Return(map[string]domain.Product{}, nil).Once()
	suite.mockAccountSvc.On("EnsureInternalAccount", ctx, suite.companyID, domain.LocalPurchase, suite.userID).Return(&suite.localPurchase, nil).Once()

	_, err := suite.service.CreatePurchase(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *VoucherServiceTestSuite) TestCreatePurchase_RetriesOnConflict() {
	ctx := context.Background()
	req := dto.CreatePurchaseRequest{
		SupplierID:  suite.supplier.AccountID,
		VoucherDate: time.Now().UTC(),
		Items: []dto.PurchaseItem{
			{ProductID: suite.product.ProductID, Quantity: decimal.NewFromInt(2), UnitCost: decimal.NewFromInt(50)},
		},
	}

	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.companyID, suite.supplier.AccountID).Return(&suite.supplier, nil).Once()
	suite.mockProductRepo.On("FindProductsByIDs", ctx, suite.companyID, mock.Anything).
		Return(map[string]domain.Product{suite.product.ProductID: suite.product}, nil).Once()
	suite.mockAccountSvc.On("EnsureInternalAccount", ctx, suite.companyID, domain.LocalPurchase, suite.userID).Return(&suite.localPurchase, nil).Once()

	suite.mockVoucherRepo.On("SaveVoucher", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(int64(0), apperrors.ErrConflict).Twice()
	suite.mockVoucherRepo.On("SaveVoucher", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(int64(4), nil).Once()

	voucher, err := suite.service.CreatePurchase(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(int64(4), voucher.VoucherNo)
	suite.mockVoucherRepo.AssertNumberOfCalls(suite.T(), "SaveVoucher", 3)
}

func (suite *VoucherServiceTestSuite) TestCreatePurchase_RetryExhausted() {
	ctx := context.Background()
	req := dto.CreatePurchaseRequest{
		SupplierID:  suite.supplier.AccountID,
		VoucherDate: time.Now().UTC(),
		Items: []dto.PurchaseItem{
			{ProductID: suite.product.ProductID, Quantity: decimal.NewFromInt(2), UnitCost: decimal.NewFromInt(50)},
		},
	}

	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.companyID, suite.supplier.AccountID).Return(&suite.supplier, nil).Once()
	suite.mockProductRepo.On("FindProductsByIDs", ctx, suite.companyID, mock.Anything).
		Return(map[string]domain.Product{suite.product.ProductID: suite.product}, nil).Once()
	suite.mockAccountSvc.On("EnsureInternalAccount", ctx, suite.companyID, domain.LocalPurchase, suite.userID).Return(&suite.localPurchase, nil).Once()

	suite.mockVoucherRepo.On("SaveVoucher", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(int64(0), apperrors.ErrConflict).Times(3)

	_, err := suite.service.CreatePurchase(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockVoucherRepo.AssertNumberOfCalls(suite.T(), "SaveVoucher", 3)
}

// --- Sale ---

func (suite *VoucherServiceTestSuite) TestCreateSale_WalkInFallback() {
	ctx := context.Background()
	req := dto.CreateSaleRequest{
		VoucherDate: time.Now().UTC(),
		Items: []dto.SaleItem{
			{ProductID: suite.product.ProductID, Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(150)},
		},
	}

	suite.mockAccountSvc.On("EnsureInternalAccount", ctx, suite.companyID, domain.WalkIn, suite.userID).Return(&suite.walkIn, nil).Once()
	suite.mockProductRepo.On("FindProductsByIDs", ctx, suite.companyID, mock.Anything).
		Return(map[string]domain.Product{suite.product.ProductID: suite.product}, nil).Once()
	suite.mockAccountSvc.On("EnsureInternalAccount", ctx, suite.companyID, domain.LocalSale, suite.userID).Return(&suite.localSale, nil).Once()

	var savedEntries []domain.LedgerEntry
	suite.mockVoucherRepo.On("SaveVoucher", ctx, mock.Anything, mock.Anything, mock.Anything, (*domain.PaymentRecord)(nil)).
		Run(func(args mock.Arguments) {
			savedEntries = args.Get(2).([]domain.LedgerEntry)
		}).
		Return(int64(1), nil).Once()

	voucher, err := suite.service.CreateSale(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.SaleVoucher, voucher.VoucherType)
	suite.True(voucher.Amount.Equal(decimal.NewFromInt(300)))

	suite.Require().Len(savedEntries, 2)
	suite.True(entriesBalance(savedEntries))
	suite.Equal(suite.walkIn.AccountID, savedEntries[0].AccountID)
	suite.Equal(suite.localSale.AccountID, savedEntries[1].AccountID)
	suite.mockAccountSvc.AssertExpectations(suite.T())
}

func (suite *VoucherServiceTestSuite) TestCreateSale_DiscountApplied() {
	ctx := context.Background()
	req := dto.CreateSaleRequest{
		CustomerID:  suite.customer.AccountID,
		VoucherDate: time.Now().UTC(),
		Items: []dto.SaleItem{
			{ProductID: suite.product.ProductID, Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(100), DiscountPct: decimal.NewFromInt(10)},
		},
	}

	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.companyID, suite.customer.AccountID).Return(&suite.customer, nil).Once()
	suite.mockProductRepo.On("FindProductsByIDs", ctx, suite.companyID, mock.Anything).
		Return(map[string]domain.Product{suite.product.ProductID: suite.product}, nil).Once()
	suite.mockAccountSvc.On("EnsureInternalAccount", ctx, suite.companyID, domain.LocalSale, suite.userID).Return(&suite.localSale, nil).Once()
	suite.mockVoucherRepo.On("SaveVoucher", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(int64(2), nil).Once()

	voucher, err := suite.service.CreateSale(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	// 2 * 100 * 0.9 = 180
	suite.True(voucher.Amount.Equal(decimal.NewFromInt(180)))
}

func (suite *VoucherServiceTestSuite) TestCreateSale_InvalidDiscount() {
	ctx := context.Background()
	req := dto.CreateSaleRequest{
		CustomerID:  suite.customer.AccountID,
		VoucherDate: time.Now().UTC(),
		Items: []dto.SaleItem{
			{ProductID: suite.product.ProductID, Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(100), DiscountPct: decimal.NewFromInt(101)},
		},
	}

	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.companyID, suite.customer.AccountID).Return(&suite.customer, nil).Once()
	suite.mockProductRepo.On("FindProductsByIDs", ctx, suite.companyID, mock.Anything).
		Return(map[string]domain.Product{suite.product.ProductID: suite.product}, nil).Once()
	suite.mockAccountSvc.On("EnsureInternalAccount", ctx, suite.companyID, domain.LocalSale, suite.userID).Return(&suite.localSale, nil).Once()

	_, err := suite.service.CreateSale(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *VoucherServiceTestSuite) TestCreateSale_InsufficientStockNotRetried() {
	ctx := context.Background()
	req := dto.CreateSaleRequest{
		CustomerID:  suite.customer.AccountID,
		VoucherDate: time.Now().UTC(),
		Items: []dto.SaleItem{
			{ProductID: suite.product.ProductID, Quantity: decimal.NewFromInt(99), UnitPrice: decimal.NewFromInt(150)},
		},
	}

	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.companyID, suite.customer.AccountID).Return(&suite.customer, nil).Once()
	suite.mockProductRepo.On("FindProductsByIDs", ctx, suite.companyID, mock.Anything).
		Return(map[string]domain.Product{suite.product.ProductID: suite.product}, nil).Once()
	suite.mockAccountSvc.On("EnsureInternalAccount", ctx, suite.companyID, domain.LocalSale, suite.userID).Return(&suite.localSale, nil).Once()
	suite.mockVoucherRepo.On("SaveVoucher", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(int64(0), apperrors.ErrInsufficientStock).Once()

	_, err := suite.service.CreateSale(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientStock)
	suite.mockVoucherRepo.AssertNumberOfCalls(suite.T(), "SaveVoucher", 1)
}

// --- Payment ---

func (suite *VoucherServiceTestSuite) TestCreatePayment_PaidToSupplier() {
	ctx := context.Background()
	req := dto.CreatePaymentRequest{
		AccountID:   suite.supplier.AccountID,
		PaymentType: domain.PaymentTypePaid,
		Amount:      decimal.NewFromInt(500),
		VoucherDate: time.Now().UTC(),
	}

	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.companyID, suite.supplier.AccountID).Return(&suite.supplier, nil).Once()
	suite.mockAccountSvc.On("EnsureInternalAccount", ctx, suite.companyID, domain.CashBank, suite.userID).Return(&suite.cashBank, nil).Once()

	var savedEntries []domain.LedgerEntry
	var savedPayment *domain.PaymentRecord
	suite.mockVoucherRepo.On("SaveVoucher", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			savedEntries = args.Get(2).([]domain.LedgerEntry)
			savedPayment = args.Get(4).(*domain.PaymentRecord)
		}).
		Return(int64(3), nil).Once()

	voucher, err := suite.service.CreatePayment(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentMade, voucher.VoucherType)
	suite.Equal(domain.PaymentDomain, voucher.VoucherDomain)

	suite.Require().Len(savedEntries, 2)
	suite.True(entriesBalance(savedEntries))
	suite.Equal(suite.supplier.AccountID, savedEntries[0].AccountID)
	suite.True(savedEntries[0].Debit.Equal(decimal.NewFromInt(500)))
	suite.Equal(suite.cashBank.AccountID, savedEntries[1].AccountID)
	suite.True(savedEntries[1].Credit.Equal(decimal.NewFromInt(500)))

	suite.Require().NotNil(savedPayment)
	suite.Equal(domain.PaymentTypePaid, savedPayment.PaymentType)
	suite.Equal(suite.cashBank.AccountID, savedPayment.MethodAccountID)
}

func (suite *VoucherServiceTestSuite) TestCreatePayment_ReceivedFromSupplierRejected() {
	ctx := context.Background()
	req := dto.CreatePaymentRequest{
		AccountID:   suite.supplier.AccountID,
		PaymentType: domain.PaymentTypeReceived,
		Amount:      decimal.NewFromInt(500),
		VoucherDate: time.Now().UTC(),
	}

	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.companyID, suite.supplier.AccountID).Return(&suite.supplier, nil).Once()

	_, err := suite.service.CreatePayment(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockVoucherRepo.AssertNotCalled(suite.T(), "SaveVoucher", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *VoucherServiceTestSuite) TestCreatePayment_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.CreatePaymentRequest{
		AccountID:   suite.customer.AccountID,
		PaymentType: domain.PaymentTypeReceived,
		Amount:      decimal.Zero,
		VoucherDate: time.Now().UTC(),
	}

	_, err := suite.service.CreatePayment(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- Reversal ---

func (suite *VoucherServiceTestSuite) TestReverseVoucher_MirrorsEntriesAndMovements() {
	ctx := context.Background()
	originalID := uuid.NewString()
	original := domain.Voucher{
		VoucherID:     originalID,
		CompanyID:     suite.companyID,
		VoucherNo:     7,
		VoucherType:   domain.PurchaseVoucher,
		VoucherDomain: domain.PurchaseDomain,
		VoucherDate:   time.Now().UTC(),
		Amount:        decimal.NewFromInt(1000),
		Narration:     "10 widgets from Acme",
		Status:        domain.Posted,
	}
	originalEntries := []domain.LedgerEntry{
		{EntryID: uuid.NewString(), VoucherID: originalID, AccountID: suite.localPurchase.AccountID, Debit: decimal.NewFromInt(1000), Credit: decimal.Zero},
		{EntryID: uuid.NewString(), VoucherID: originalID, AccountID: suite.supplier.AccountID, Debit: decimal.Zero, Credit: decimal.NewFromInt(1000)},
	}
	originalMovements := []domain.InventoryMovement{
		{MovementID: uuid.NewString(), VoucherID: originalID, ProductID: suite.product.ProductID, QuantityIn: decimal.NewFromInt(10), QuantityOut: decimal.Zero, UnitRate: decimal.NewFromInt(100), Amount: decimal.NewFromInt(1000)},
	}

	suite.mockVoucherRepo.On("FindVoucherByID", ctx, suite.companyID, originalID).Return(&original, nil).Once()
	suite.mockVoucherRepo.On("FindLedgerEntriesByVoucherID", ctx, suite.companyID, originalID).Return(originalEntries, nil).Once()
	suite.mockVoucherRepo.On("FindMovementsByVoucherID", ctx, suite.companyID, originalID).Return(originalMovements, nil).Once()

	var savedEntries []domain.LedgerEntry
	var savedMovements []domain.InventoryMovement
	suite.mockVoucherRepo.On("SaveReversingVoucher", ctx, mock.Anything, mock.Anything, mock.Anything, originalID).
		Run(func(args mock.Arguments) {
			savedEntries = args.Get(2).([]domain.LedgerEntry)
			savedMovements = args.Get(3).([]domain.InventoryMovement)
		}).
		Return(int64(9), nil).Once()

	reversing, err := suite.service.ReverseVoucher(ctx, suite.companyID, originalID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(int64(9), reversing.VoucherNo)
	suite.Equal(domain.PurchaseVoucher, reversing.VoucherType)
	suite.Equal("Reversal of Purchase #7: 10 widgets from Acme", reversing.Narration)
	suite.Require().NotNil(reversing.OriginalVoucherID)
	suite.Equal(originalID, *reversing.OriginalVoucherID)

	suite.Require().Len(savedEntries, 2)
	suite.True(entriesBalance(savedEntries))
	// Debits and credits swap sides.
	suite.Equal(suite.localPurchase.AccountID, savedEntries[0].AccountID)
	suite.True(savedEntries[0].Credit.Equal(decimal.NewFromInt(1000)))
	suite.Equal(suite.supplier.AccountID, savedEntries[1].AccountID)
	suite.True(savedEntries[1].Debit.Equal(decimal.NewFromInt(1000)))

	suite.Require().Len(savedMovements, 1)
	suite.True(savedMovements[0].QuantityOut.Equal(decimal.NewFromInt(10)))
	suite.True(savedMovements[0].QuantityIn.IsZero())
}

func (suite *VoucherServiceTestSuite) TestReverseVoucher_AlreadyReversed() {
	ctx := context.Background()
	originalID := uuid.NewString()
	original := domain.Voucher{
		VoucherID: originalID,
		CompanyID: suite.companyID,
		Status:    domain.Reversed,
	}

	suite.mockVoucherRepo.On("FindVoucherByID", ctx, suite.companyID, originalID).Return(&original, nil).Once()

	_, err := suite.service.ReverseVoucher(ctx, suite.companyID, originalID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockVoucherRepo.AssertNotCalled(suite.T(), "SaveReversingVoucher", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *VoucherServiceTestSuite) TestReverseVoucher_ReversalOfReversalRejected() {
	ctx := context.Background()
	parentID := uuid.NewString()
	reversalID := uuid.NewString()
	reversal := domain.Voucher{
		VoucherID:         reversalID,
		CompanyID:         suite.companyID,
		Status:            domain.Posted,
		OriginalVoucherID: &parentID,
	}

	suite.mockVoucherRepo.On("FindVoucherByID", ctx, suite.companyID, reversalID).Return(&reversal, nil).Once()

	_, err := suite.service.ReverseVoucher(ctx, suite.companyID, reversalID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

// --- Numbering ---

func (suite *VoucherServiceTestSuite) TestGetNextVoucherNumber() {
	ctx := context.Background()

	suite.mockVoucherRepo.On("PeekNextVoucherNumber", ctx, suite.companyID, domain.SaleDomain).Return(int64(12), nil).Once()

	next, err := suite.service.GetNextVoucherNumber(ctx, suite.companyID, domain.SaleDomain)

	suite.Require().NoError(err)
	suite.Equal(int64(12), next)
}

func (suite *VoucherServiceTestSuite) TestGetNextVoucherNumber_UnknownDomain() {
	ctx := context.Background()

	_, err := suite.service.GetNextVoucherNumber(ctx, suite.companyID, domain.VoucherDomain("BOGUS"))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockVoucherRepo.AssertNotCalled(suite.T(), "PeekNextVoucherNumber", mock.Anything, mock.Anything, mock.Anything)
}

func TestVoucherServiceTestSuite(t *testing.T) {
	suite.Run(t, new(VoucherServiceTestSuite))
}
