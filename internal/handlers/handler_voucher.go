package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smartstock/smartstock_backend/internal/core/domain"
	portssvc "github.com/smartstock/smartstock_backend/internal/core/ports/services"
	"github.com/smartstock/smartstock_backend/internal/dto"
	"github.com/smartstock/smartstock_backend/internal/middleware"
)

// voucherHandler handles HTTP requests that post or read vouchers.
type voucherHandler struct {
	voucherService portssvc.VoucherSvcFacade
}

// newVoucherHandler creates a new voucherHandler.
func newVoucherHandler(vs portssvc.VoucherSvcFacade) *voucherHandler {
	return &voucherHandler{voucherService: vs}
}

// registerVoucherRoutes registers the posting and voucher read routes.
func registerVoucherRoutes(rg *gin.RouterGroup, voucherService portssvc.VoucherSvcFacade) {
	h := newVoucherHandler(voucherService)

	rg.POST("/purchases", h.createPurchase)
	rg.POST("/sales", h.createSale)
	rg.POST("/payments", h.createPayment)

	vouchers := rg.Group("/vouchers")
	{
		vouchers.GET("/next", h.getNextVoucherNumber)
		vouchers.GET("/:voucherID", h.getVoucher)
		vouchers.POST("/:voucherID/reverse", h.reverseVoucher)
	}
}

// createPurchase godoc
// @Summary Post a purchase voucher
// @Description Records stock received from a supplier as one atomic voucher
// @Tags vouchers
// @Accept  json
// @Produce  json
// @Param   purchase body dto.CreatePurchaseRequest true "Purchase details"
// @Success 201 {object} dto.VoucherResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Supplier or product not found"
// @Failure 409 {object} map[string]string "Posting conflict"
// @Security BearerAuth
// @Router /purchases [post]
func (h *voucherHandler) createPurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePurchase", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	companyID, userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	voucher, err := h.voucherService.CreatePurchase(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondError(c, err, "Failed to post purchase")
		return
	}

	middleware.VouchersPosted.WithLabelValues(string(voucher.VoucherType)).Inc()
	c.JSON(http.StatusCreated, dto.ToVoucherResponse(voucher))
}

// createSale godoc
// @Summary Post a sale voucher
// @Description Records a sale to a customer or walk-in as one atomic voucher
// @Tags vouchers
// @Accept  json
// @Produce  json
// @Param   sale body dto.CreateSaleRequest true "Sale details"
// @Success 201 {object} dto.VoucherResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Customer or product not found"
// @Failure 422 {object} map[string]string "Insufficient stock"
// @Security BearerAuth
// @Router /sales [post]
func (h *voucherHandler) createSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateSale", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	companyID, userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	voucher, err := h.voucherService.CreateSale(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondError(c, err, "Failed to post sale")
		return
	}

	middleware.VouchersPosted.WithLabelValues(string(voucher.VoucherType)).Inc()
	c.JSON(http.StatusCreated, dto.ToVoucherResponse(voucher))
}

// createPayment godoc
// @Summary Post a payment voucher
// @Description Records money received from a customer or paid to a supplier
// @Tags vouchers
// @Accept  json
// @Produce  json
// @Param   payment body dto.CreatePaymentRequest true "Payment details"
// @Success 201 {object} dto.VoucherResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /payments [post]
func (h *voucherHandler) createPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	companyID, userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	voucher, err := h.voucherService.CreatePayment(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondError(c, err, "Failed to post payment")
		return
	}

	middleware.VouchersPosted.WithLabelValues(string(voucher.VoucherType)).Inc()
	c.JSON(http.StatusCreated, dto.ToVoucherResponse(voucher))
}

// reverseVoucher godoc
// @Summary Reverse a posted voucher
// @Description Posts a mirror-image voucher and marks the original reversed
// @Tags vouchers
// @Produce  json
// @Param   voucherID path string true "Voucher ID"
// @Success 201 {object} dto.VoucherResponse
// @Failure 404 {object} map[string]string "Voucher not found"
// @Failure 409 {object} map[string]string "Voucher already reversed"
// @Failure 422 {object} map[string]string "Reversal would drive stock negative"
// @Security BearerAuth
// @Router /vouchers/{voucherID}/reverse [post]
func (h *voucherHandler) reverseVoucher(c *gin.Context) {
	companyID, userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	voucher, err := h.voucherService.ReverseVoucher(c.Request.Context(), companyID, c.Param("voucherID"), userID)
	if err != nil {
		respondError(c, err, "Failed to reverse voucher")
		return
	}

	middleware.VouchersPosted.WithLabelValues(string(voucher.VoucherType)).Inc()
	c.JSON(http.StatusCreated, dto.ToVoucherResponse(voucher))
}

// getNextVoucherNumber godoc
// @Summary Preview the next voucher number
// @Description Advisory preview for a voucher domain; the committed number is assigned at posting time
// @Tags vouchers
// @Produce  json
// @Param   domain query string true "Voucher domain" Enums(PURCHASE, SALE, PAYMENT)
// @Success 200 {object} dto.NextVoucherNumberResponse
// @Failure 400 {object} map[string]string "Unknown voucher domain"
// @Security BearerAuth
// @Router /vouchers/next [get]
func (h *voucherHandler) getNextVoucherNumber(c *gin.Context) {
	companyID, _, ok := requestIdentity(c)
	if !ok {
		return
	}

	voucherDomain := domain.VoucherDomain(c.Query("domain"))
	next, err := h.voucherService.GetNextVoucherNumber(c.Request.Context(), companyID, voucherDomain)
	if err != nil {
		respondError(c, err, "Failed to get next voucher number")
		return
	}

	c.JSON(http.StatusOK, dto.NextVoucherNumberResponse{Domain: voucherDomain, NextVoucherNo: next})
}

// getVoucher godoc
// @Summary Get a voucher by ID
// @Description Retrieves a voucher with its ledger entries and movements
// @Tags vouchers
// @Produce  json
// @Param   voucherID path string true "Voucher ID"
// @Success 200 {object} dto.VoucherDetailResponse
// @Failure 404 {object} map[string]string "Voucher not found"
// @Security BearerAuth
// @Router /vouchers/{voucherID} [get]
func (h *voucherHandler) getVoucher(c *gin.Context) {
	companyID, _, ok := requestIdentity(c)
	if !ok {
		return
	}

	voucher, entries, movements, err := h.voucherService.GetVoucherByID(c.Request.Context(), companyID, c.Param("voucherID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve voucher")
		return
	}

	c.JSON(http.StatusOK, dto.ToVoucherDetailResponse(voucher, entries, movements))
}
