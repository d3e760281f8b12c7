package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smartstock/smartstock_backend/internal/core/domain"
	portssvc "github.com/smartstock/smartstock_backend/internal/core/ports/services"
	"github.com/smartstock/smartstock_backend/internal/dto"
)

// reportHandler handles HTTP requests for the reconstructed report views.
type reportHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// newReportHandler creates a new reportHandler.
func newReportHandler(rs portssvc.ReportingSvcFacade) *reportHandler {
	return &reportHandler{reportingService: rs}
}

// registerReportRoutes registers routes related to reports.
func registerReportRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/daybook", h.getDaybook)
		reports.GET("/accounts/:accountID/ledger", h.getAccountLedger)
		reports.GET("/products/:productID/ledger", h.getProductLedger)
	}
}

// getDaybook godoc
// @Summary Get the daybook for a period
// @Description Chronological listing of posted vouchers, optionally narrowed to one event class
// @Tags reports
// @Produce  json
// @Param   from query string false "Start date (YYYY-MM-DD)"
// @Param   to query string false "End date (YYYY-MM-DD)"
// @Param   filter query string false "Event class" Enums(all, purchase, sale, payment-received, payment-paid)
// @Success 200 {object} dto.DaybookResponse
// @Failure 400 {object} map[string]string "Invalid dates or filter"
// @Security BearerAuth
// @Router /reports/daybook [get]
func (h *reportHandler) getDaybook(c *gin.Context) {
	companyID, _, ok := requestIdentity(c)
	if !ok {
		return
	}

	from, to, err := parseDateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filter := domain.DaybookFilter(c.DefaultQuery("filter", string(domain.DaybookAll)))
	rows, err := h.reportingService.GetDaybook(c.Request.Context(), companyID, from, to, filter)
	if err != nil {
		respondError(c, err, "Failed to build daybook")
		return
	}

	c.JSON(http.StatusOK, dto.ToDaybookResponse(rows, from, to, filter))
}

// getAccountLedger godoc
// @Summary Get one account's ledger for a period
// @Description Chronological ledger lines with a running balance
// @Tags reports
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   from query string false "Start date (YYYY-MM-DD)"
// @Param   to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.AccountLedgerResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /reports/accounts/{accountID}/ledger [get]
func (h *reportHandler) getAccountLedger(c *gin.Context) {
	companyID, _, ok := requestIdentity(c)
	if !ok {
		return
	}

	from, to, err := parseDateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	accountID := c.Param("accountID")
	rows, err := h.reportingService.GetAccountLedger(c.Request.Context(), companyID, accountID, from, to)
	if err != nil {
		respondError(c, err, "Failed to build account ledger")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountLedgerResponse(rows, accountID, from, to))
}

// getProductLedger godoc
// @Summary Get one product's stock ledger for a period
// @Description Chronological movement lines with a running stock figure
// @Tags reports
// @Produce  json
// @Param   productID path string true "Product ID"
// @Param   from query string false "Start date (YYYY-MM-DD)"
// @Param   to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.ProductLedgerResponse
// @Failure 404 {object} map[string]string "Product not found"
// @Security BearerAuth
// @Router /reports/products/{productID}/ledger [get]
func (h *reportHandler) getProductLedger(c *gin.Context) {
	companyID, _, ok := requestIdentity(c)
	if !ok {
		return
	}

	from, to, err := parseDateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	productID := c.Param("productID")
	rows, err := h.reportingService.GetProductLedger(c.Request.Context(), companyID, productID, from, to)
	if err != nil {
		respondError(c, err, "Failed to build product ledger")
		return
	}

	c.JSON(http.StatusOK, dto.ToProductLedgerResponse(rows, productID, from, to))
}
