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

// maxPostAttempts bounds retries when voucher number allocation loses a race.
const maxPostAttempts = 3

var (
	ErrEmptyLineItems   = errors.New("voucher must have at least one line item")
	ErrWrongAccountType = errors.New("account type does not match the operation")
)

// voucherService posts business events as balanced vouchers and serves
// voucher reads.
type voucherService struct {
	voucherRepo portsrepo.VoucherRepository
	productRepo portsrepo.ProductRepository
	accountSvc  portssvc.AccountSvcFacade
}

// NewVoucherService creates a new voucher service.
func NewVoucherService(voucherRepo portsrepo.VoucherRepository, productRepo portsrepo.ProductRepository, accountSvc portssvc.AccountSvcFacade) portssvc.VoucherSvcFacade {
	return &voucherService{
		voucherRepo: voucherRepo,
		productRepo: productRepo,
		accountSvc:  accountSvc,
	}
}

var _ portssvc.VoucherSvcFacade = (*voucherService)(nil)

// saveWithRetry re-runs the persistence unit when it loses a sequencing race.
// Each attempt re-reads the sequence inside a fresh transaction, so retried
// vouchers get the next free number without gaps.
func (s *voucherService) saveWithRetry(ctx context.Context, save func() (int64, error)) (int64, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var lastErr error
	for attempt := 1; attempt <= maxPostAttempts; attempt++ {
		voucherNo, err := save()
		if err == nil {
			return voucherNo, nil
		}
		if !errors.Is(err, apperrors.ErrConflict) {
			return 0, err
		}
		lastErr = err
		logger.Warn("Voucher allocation conflict, retrying", slog.Int("attempt", attempt))
	}
	return 0, fmt.Errorf("voucher allocation failed after %d attempts: %w", maxPostAttempts, lastErr)
}

// CreatePurchase posts a purchase voucher: debit LocalPurchase, credit the
// supplier for the aggregate cost, plus one quantity-in movement per line.
func (s *voucherService) CreatePurchase(ctx context.Context, companyID string, req dto.CreatePurchaseRequest, creatorUserID string) (*domain.Voucher, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrEmptyLineItems)
	}

	supplier, err := s.accountSvc.GetAccountByID(ctx, companyID, req.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier.AccountType != domain.Supplier {
		return nil, fmt.Errorf("%w: %s: account %s is %s, expected %s", apperrors.ErrValidation, ErrWrongAccountType, supplier.AccountID, supplier.AccountType, domain.Supplier)
	}
	if !supplier.IsActive {
		return nil, fmt.Errorf("%w: supplier %s is inactive", apperrors.ErrValidation, supplier.AccountID)
	}

	products, err := s.fetchLineProducts(ctx, companyID, purchaseProductIDs(req.Items))
	if err != nil {
		return nil, err
	}

	// Resolve the internal account before sequencing or posting begins.
	localPurchase, err := s.accountSvc.EnsureInternalAccount(ctx, companyID, domain.LocalPurchase, creatorUserID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	voucherID := uuid.NewString()
	total := decimal.Zero
	movements := make([]domain.InventoryMovement, len(req.Items))
	for i, item := range req.Items {
		if !item.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: quantity must be positive for product %s", apperrors.ErrValidation, item.ProductID)
		}
		if !item.UnitCost.IsPositive() {
			return nil, fmt.Errorf("%w: unit cost must be positive for product %s", apperrors.ErrValidation, item.ProductID)
		}
		if _, ok := products[item.ProductID]; !ok {
			return nil, fmt.Errorf("%w: product %s", apperrors.ErrNotFound, item.ProductID)
		}

		lineTotal := accounting.LineTotal(item.Quantity, item.UnitCost, decimal.Zero)
		total = total.Add(lineTotal)
		movements[i] = domain.InventoryMovement{
			MovementID:  uuid.NewString(),
			VoucherID:   voucherID,
			CompanyID:   companyID,
			ProductID:   item.ProductID,
			AccountID:   supplier.AccountID,
			QuantityIn:  item.Quantity,
			QuantityOut: decimal.Zero,
			UnitRate:    item.UnitCost,
			Amount:      lineTotal,
			AuditFields: auditNow(now, creatorUserID),
		}
	}

	narration := req.Narration
	if narration == "" {
		narration = fmt.Sprintf("Purchase from %s", supplier.Name)
	}

	voucher := domain.Voucher{
		VoucherID:     voucherID,
		CompanyID:     companyID,
		VoucherType:   domain.PurchaseVoucher,
		VoucherDomain: domain.PurchaseDomain,
		VoucherDate:   req.VoucherDate,
		Amount:        total,
		Narration:     narration,
		Status:        domain.Posted,
		AuditFields:   auditNow(now, creatorUserID),
	}

	entries := []domain.LedgerEntry{
		newEntry(voucherID, companyID, localPurchase.AccountID, total, decimal.Zero, now, creatorUserID),
		newEntry(voucherID, companyID, supplier.AccountID, decimal.Zero, total, now, creatorUserID),
	}
	if err := accounting.ValidateEntries(entries); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
	}

	voucherNo, err := s.saveWithRetry(ctx, func() (int64, error) {
		return s.voucherRepo.SaveVoucher(ctx, voucher, entries, movements, nil)
	})
	if err != nil {
		logger.Error("Failed to post purchase voucher", slog.String("error", err.Error()))
		return nil, err
	}
	voucher.VoucherNo = voucherNo

	logger.Info("Purchase voucher posted", slog.String("voucher_id", voucherID), slog.Int64("voucher_no", voucherNo))
	return &voucher, nil
}

// CreateSale posts a sale voucher: debit the customer (or the walk-in
// account), credit LocalSale, plus one quantity-out movement per line. The
// repository rejects the whole unit with ErrInsufficientStock when any line
// would drive stock negative.
func (s *voucherService) CreateSale(ctx context.Context, companyID string, req dto.CreateSaleRequest, creatorUserID string) (*domain.Voucher, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrEmptyLineItems)
	}

	var counterparty *domain.Account
	var err error
	if req.CustomerID != "" {
		counterparty, err = s.accountSvc.GetAccountByID(ctx, companyID, req.CustomerID)
		if err != nil {
			return nil, err
		}
		if counterparty.AccountType != domain.Customer && counterparty.AccountType != domain.WalkIn {
			return nil, fmt.Errorf("%w: %s: account %s is %s, expected %s", apperrors.ErrValidation, ErrWrongAccountType, counterparty.AccountID, counterparty.AccountType, domain.Customer)
		}
		if !counterparty.IsActive {
			return nil, fmt.Errorf("%w: customer %s is inactive", apperrors.ErrValidation, counterparty.AccountID)
		}
	} else {
		counterparty, err = s.accountSvc.EnsureInternalAccount(ctx, companyID, domain.WalkIn, creatorUserID)
		if err != nil {
			return nil, err
		}
	}

	products, err := s.fetchLineProducts(ctx, companyID, saleProductIDs(req.Items))
	if err != nil {
		return nil, err
	}

	localSale, err := s.accountSvc.EnsureInternalAccount(ctx, companyID, domain.LocalSale, creatorUserID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	voucherID := uuid.NewString()
	hundred := decimal.NewFromInt(100)
	total := decimal.Zero
	movements := make([]domain.InventoryMovement, len(req.Items))
	for i, item := range req.Items {
		if !item.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: quantity must be positive for product %s", apperrors.ErrValidation, item.ProductID)
		}
		if !item.UnitPrice.IsPositive() {
			return nil, fmt.Errorf("%w: unit price must be positive for product %s", apperrors.ErrValidation, item.ProductID)
		}
		if item.DiscountPct.IsNegative() || item.DiscountPct.GreaterThan(hundred) {
			return nil, fmt.Errorf("%w: discount must be between 0 and 100 for product %s", apperrors.ErrValidation, item.ProductID)
		}
		if _, ok := products[item.ProductID]; !ok {
			return nil, fmt.Errorf("%w: product %s", apperrors.ErrNotFound, item.ProductID)
		}

		lineTotal := accounting.LineTotal(item.Quantity, item.UnitPrice, item.DiscountPct)
		total = total.Add(lineTotal)
		movements[i] = domain.InventoryMovement{
			MovementID:  uuid.NewString(),
			VoucherID:   voucherID,
			CompanyID:   companyID,
			ProductID:   item.ProductID,
			AccountID:   counterparty.AccountID,
			QuantityIn:  decimal.Zero,
			QuantityOut: item.Quantity,
			UnitRate:    item.UnitPrice,
			Amount:      lineTotal,
			AuditFields: auditNow(now, creatorUserID),
		}
	}

	if !total.IsPositive() {
		return nil, fmt.Errorf("%w: sale total must be positive", apperrors.ErrValidation)
	}

	narration := req.Narration
	if narration == "" {
		narration = fmt.Sprintf("Sale to %s", counterparty.Name)
	}

	voucher := domain.Voucher{
		VoucherID:     voucherID,
		CompanyID:     companyID,
		VoucherType:   domain.SaleVoucher,
		VoucherDomain: domain.SaleDomain,
		VoucherDate:   req.VoucherDate,
		Amount:        total,
		Narration:     narration,
		Status:        domain.Posted,
		AuditFields:   auditNow(now, creatorUserID),
	}

	entries := []domain.LedgerEntry{
		newEntry(voucherID, companyID, counterparty.AccountID, total, decimal.Zero, now, creatorUserID),
		newEntry(voucherID, companyID, localSale.AccountID, decimal.Zero, total, now, creatorUserID),
	}
	if err := accounting.ValidateEntries(entries); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
	}

	voucherNo, err := s.saveWithRetry(ctx, func() (int64, error) {
		return s.voucherRepo.SaveVoucher(ctx, voucher, entries, movements, nil)
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrInsufficientStock) {
			logger.Error("Failed to post sale voucher", slog.String("error", err.Error()))
		}
		return nil, err
	}
	voucher.VoucherNo = voucherNo

	logger.Info("Sale voucher posted", slog.String("voucher_id", voucherID), slog.Int64("voucher_no", voucherNo))
	return &voucher, nil
}

// CreatePayment posts a payment voucher. RECEIVED debits the cash/bank method
// account and credits the customer; PAID debits the supplier and credits the
// method account. Account type mismatches are rejected before any row is
// written.
func (s *voucherService) CreatePayment(ctx context.Context, companyID string, req dto.CreatePaymentRequest, creatorUserID string) (*domain.Voucher, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}

	counterparty, err := s.accountSvc.GetAccountByID(ctx, companyID, req.AccountID)
	if err != nil {
		return nil, err
	}
	switch req.PaymentType {
	case domain.PaymentTypeReceived:
		if counterparty.AccountType != domain.Customer && counterparty.AccountType != domain.WalkIn {
			return nil, fmt.Errorf("%w: %s: cannot receive from %s account %s", apperrors.ErrValidation, ErrWrongAccountType, counterparty.AccountType, counterparty.AccountID)
		}
	case domain.PaymentTypePaid:
		if counterparty.AccountType != domain.Supplier {
			return nil, fmt.Errorf("%w: %s: cannot pay %s account %s", apperrors.ErrValidation, ErrWrongAccountType, counterparty.AccountType, counterparty.AccountID)
		}
	default:
		return nil, fmt.Errorf("%w: unknown payment type %s", apperrors.ErrValidation, req.PaymentType)
	}

	var method *domain.Account
	if req.MethodAccountID != "" {
		method, err = s.accountSvc.GetAccountByID(ctx, companyID, req.MethodAccountID)
		if err != nil {
			return nil, err
		}
		if method.AccountType != domain.CashBank {
			return nil, fmt.Errorf("%w: %s: method account %s is %s, expected %s", apperrors.ErrValidation, ErrWrongAccountType, method.AccountID, method.AccountType, domain.CashBank)
		}
	} else {
		method, err = s.accountSvc.EnsureInternalAccount(ctx, companyID, domain.CashBank, creatorUserID)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	voucherID := uuid.NewString()

	voucherType := domain.PaymentReceived
	entries := []domain.LedgerEntry{
		newEntry(voucherID, companyID, method.AccountID, req.Amount, decimal.Zero, now, creatorUserID),
		newEntry(voucherID, companyID, counterparty.AccountID, decimal.Zero, req.Amount, now, creatorUserID),
	}
	if req.PaymentType == domain.PaymentTypePaid {
		voucherType = domain.PaymentMade
		entries = []domain.LedgerEntry{
			newEntry(voucherID, companyID, counterparty.AccountID, req.Amount, decimal.Zero, now, creatorUserID),
			newEntry(voucherID, companyID, method.AccountID, decimal.Zero, req.Amount, now, creatorUserID),
		}
	}
	if err := accounting.ValidateEntries(entries); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
	}

	narration := req.Reference
	if narration == "" {
		if req.PaymentType == domain.PaymentTypeReceived {
			narration = fmt.Sprintf("Payment received from %s", counterparty.Name)
		} else {
			narration = fmt.Sprintf("Payment to %s", counterparty.Name)
		}
	}

	voucher := domain.Voucher{
		VoucherID:     voucherID,
		CompanyID:     companyID,
		VoucherType:   voucherType,
		VoucherDomain: domain.PaymentDomain,
		VoucherDate:   req.VoucherDate,
		Amount:        req.Amount,
		Narration:     narration,
		Status:        domain.Posted,
		AuditFields:   auditNow(now, creatorUserID),
	}

	payment := &domain.PaymentRecord{
		PaymentID:       uuid.NewString(),
		VoucherID:       voucherID,
		CompanyID:       companyID,
		AccountID:       counterparty.AccountID,
		PaymentType:     req.PaymentType,
		Amount:          req.Amount,
		MethodAccountID: method.AccountID,
		Reference:       req.Reference,
		PaymentDate:     req.VoucherDate,
		AuditFields:     auditNow(now, creatorUserID),
	}

	voucherNo, err := s.saveWithRetry(ctx, func() (int64, error) {
		return s.voucherRepo.SaveVoucher(ctx, voucher, entries, nil, payment)
	})
	if err != nil {
		logger.Error("Failed to post payment voucher", slog.String("error", err.Error()))
		return nil, err
	}
	voucher.VoucherNo = voucherNo

	logger.Info("Payment voucher posted", slog.String("voucher_id", voucherID), slog.Int64("voucher_no", voucherNo), slog.String("payment_type", string(req.PaymentType)))
	return &voucher, nil
}

// ReverseVoucher corrects a posted voucher by posting its mirror image: every
// debit becomes a credit and every movement is inverted. The original is
// marked REVERSED and linked to the new voucher in the same transaction.
func (s *voucherService) ReverseVoucher(ctx context.Context, companyID, voucherID, userID string) (*domain.Voucher, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.voucherRepo.FindVoucherByID(ctx, companyID, voucherID)
	if err != nil {
		return nil, err
	}
	if original.Status != domain.Posted {
		return nil, fmt.Errorf("%w: voucher %s is %s, expected %s", apperrors.ErrConflict, voucherID, original.Status, domain.Posted)
	}
	if original.OriginalVoucherID != nil {
		return nil, fmt.Errorf("%w: voucher %s is itself a reversal", apperrors.ErrConflict, voucherID)
	}

	originalEntries, err := s.voucherRepo.FindLedgerEntriesByVoucherID(ctx, companyID, voucherID)
	if err != nil {
		return nil, err
	}
	originalMovements, err := s.voucherRepo.FindMovementsByVoucherID(ctx, companyID, voucherID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	reversingID := uuid.NewString()

	entries := make([]domain.LedgerEntry, len(originalEntries))
	for i, e := range originalEntries {
		entries[i] = newEntry(reversingID, companyID, e.AccountID, e.Credit, e.Debit, now, userID)
	}
	movements := make([]domain.InventoryMovement, len(originalMovements))
	for i, m := range originalMovements {
		movements[i] = domain.InventoryMovement{
			MovementID:  uuid.NewString(),
			VoucherID:   reversingID,
			CompanyID:   companyID,
			ProductID:   m.ProductID,
			AccountID:   m.AccountID,
			QuantityIn:  m.QuantityOut,
			QuantityOut: m.QuantityIn,
			UnitRate:    m.UnitRate,
			Amount:      m.Amount,
			AuditFields: auditNow(now, userID),
		}
	}

	reversing := domain.Voucher{
		VoucherID:         reversingID,
		CompanyID:         companyID,
		VoucherType:       original.VoucherType,
		VoucherDomain:     original.VoucherDomain,
		VoucherDate:       original.VoucherDate,
		Amount:            original.Amount,
		Narration:         fmt.Sprintf("Reversal of %s #%d: %s", original.VoucherType.Label(), original.VoucherNo, original.Narration),
		Status:            domain.Posted,
		OriginalVoucherID: &original.VoucherID,
		AuditFields:       auditNow(now, userID),
	}

	voucherNo, err := s.saveWithRetry(ctx, func() (int64, error) {
		return s.voucherRepo.SaveReversingVoucher(ctx, reversing, entries, movements, original.VoucherID)
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrInsufficientStock) {
			logger.Error("Failed to post reversing voucher", slog.String("error", err.Error()), slog.String("original_voucher_id", voucherID))
		}
		return nil, err
	}
	reversing.VoucherNo = voucherNo

	logger.Info("Voucher reversed", slog.String("original_voucher_id", voucherID), slog.String("reversing_voucher_id", reversingID), slog.Int64("voucher_no", voucherNo))
	return &reversing, nil
}

// GetNextVoucherNumber previews the next number for a domain. Advisory only:
// the committed number is allocated inside the posting transaction.
func (s *voucherService) GetNextVoucherNumber(ctx context.Context, companyID string, voucherDomain domain.VoucherDomain) (int64, error) {
	switch voucherDomain {
	case domain.PurchaseDomain, domain.SaleDomain, domain.PaymentDomain:
	default:
		return 0, fmt.Errorf("%w: unknown voucher domain %s", apperrors.ErrValidation, voucherDomain)
	}
	return s.voucherRepo.PeekNextVoucherNumber(ctx, companyID, voucherDomain)
}

// GetVoucherByID retrieves a voucher with its ledger entries and movements.
func (s *voucherService) GetVoucherByID(ctx context.Context, companyID, voucherID string) (*domain.Voucher, []domain.LedgerEntry, []domain.InventoryMovement, error) {
	voucher, err := s.voucherRepo.FindVoucherByID(ctx, companyID, voucherID)
	if err != nil {
		return nil, nil, nil, err
	}
	entries, err := s.voucherRepo.FindLedgerEntriesByVoucherID(ctx, companyID, voucherID)
	if err != nil {
		return nil, nil, nil, err
	}
	movements, err := s.voucherRepo.FindMovementsByVoucherID(ctx, companyID, voucherID)
	if err != nil {
		return nil, nil, nil, err
	}
	return voucher, entries, movements, nil
}

func (s *voucherService) fetchLineProducts(ctx context.Context, companyID string, productIDs []string) (map[string]domain.Product, error) {
	products, err := s.productRepo.FindProductsByIDs(ctx, companyID, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	for _, p := range products {
		if !p.IsActive {
			return nil, fmt.Errorf("%w: product %s is inactive", apperrors.ErrValidation, p.ProductID)
		}
	}
	return products, nil
}

func newEntry(voucherID, companyID, accountID string, debit, credit decimal.Decimal, now time.Time, userID string) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:     uuid.NewString(),
		VoucherID:   voucherID,
		CompanyID:   companyID,
		AccountID:   accountID,
		Debit:       debit,
		Credit:      credit,
		AuditFields: auditNow(now, userID),
	}
}

func auditNow(now time.Time, userID string) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
}

func purchaseProductIDs(items []dto.PurchaseItem) []string {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	return uniqueStrings(ids)
}

func saleProductIDs(items []dto.SaleItem) []string {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	return uniqueStrings(ids)
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
