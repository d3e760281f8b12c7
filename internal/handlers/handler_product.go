package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/smartstock/smartstock_backend/internal/core/ports/services"
	"github.com/smartstock/smartstock_backend/internal/dto"
	"github.com/smartstock/smartstock_backend/internal/middleware"
)

// productHandler handles HTTP requests related to products and stock.
type productHandler struct {
	productService   portssvc.ProductSvcFacade
	inventoryService portssvc.InventorySvcFacade
}

// newProductHandler creates a new productHandler.
func newProductHandler(ps portssvc.ProductSvcFacade, is portssvc.InventorySvcFacade) *productHandler {
	return &productHandler{productService: ps, inventoryService: is}
}

// registerProductRoutes registers routes related to products and stock.
func registerProductRoutes(rg *gin.RouterGroup, productService portssvc.ProductSvcFacade, inventoryService portssvc.InventorySvcFacade) {
	h := newProductHandler(productService, inventoryService)

	products := rg.Group("/products")
	{
		products.POST("", h.createProduct)
		products.GET("", h.listProducts)
		products.GET("/reorder", h.listReorderProducts)
		products.GET("/:productID", h.getProduct)
		products.GET("/:productID/stock", h.getStock)
	}
}

// createProduct godoc
// @Summary Create a product
// @Description Registers a product in the company directory
// @Tags products
// @Accept  json
// @Produce  json
// @Param   product body dto.CreateProductRequest true "Product details"
// @Success 201 {object} dto.ProductResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Security BearerAuth
// @Router /products [post]
func (h *productHandler) createProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateProduct", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	companyID, userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondError(c, err, "Failed to create product")
		return
	}

	c.JSON(http.StatusCreated, dto.ToProductResponse(product))
}

// listProducts godoc
// @Summary List products
// @Tags products
// @Produce  json
// @Success 200 {array} dto.ProductResponse
// @Security BearerAuth
// @Router /products [get]
func (h *productHandler) listProducts(c *gin.Context) {
	companyID, _, ok := requestIdentity(c)
	if !ok {
		return
	}

	products, err := h.productService.ListProducts(c.Request.Context(), companyID)
	if err != nil {
		respondError(c, err, "Failed to list products")
		return
	}

	c.JSON(http.StatusOK, dto.ToProductResponses(products))
}

// getProduct godoc
// @Summary Get a product by ID
// @Tags products
// @Produce  json
// @Param   productID path string true "Product ID"
// @Success 200 {object} dto.ProductResponse
// @Failure 404 {object} map[string]string "Product not found"
// @Security BearerAuth
// @Router /products/{productID} [get]
func (h *productHandler) getProduct(c *gin.Context) {
	companyID, _, ok := requestIdentity(c)
	if !ok {
		return
	}

	product, err := h.productService.GetProductByID(c.Request.Context(), companyID, c.Param("productID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve product")
		return
	}

	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

// getStock godoc
// @Summary Get stock-on-hand for a product
// @Description Reports current stock and whether the restock level is reached
// @Tags products
// @Produce  json
// @Param   productID path string true "Product ID"
// @Success 200 {object} dto.StockResponse
// @Failure 404 {object} map[string]string "Product not found"
// @Security BearerAuth
// @Router /products/{productID}/stock [get]
func (h *productHandler) getStock(c *gin.Context) {
	companyID, _, ok := requestIdentity(c)
	if !ok {
		return
	}

	productID := c.Param("productID")
	stock, err := h.inventoryService.GetStockOnHand(c.Request.Context(), companyID, productID)
	if err != nil {
		respondError(c, err, "Failed to read stock")
		return
	}
	needsReorder, err := h.inventoryService.NeedsReorder(c.Request.Context(), companyID, productID)
	if err != nil {
		respondError(c, err, "Failed to read stock")
		return
	}

	c.JSON(http.StatusOK, dto.StockResponse{ProductID: productID, StockOnHand: stock, NeedsReorder: needsReorder})
}

// listReorderProducts godoc
// @Summary List products at or below their restock level
// @Tags products
// @Produce  json
// @Success 200 {array} dto.ReorderProductResponse
// @Security BearerAuth
// @Router /products/reorder [get]
func (h *productHandler) listReorderProducts(c *gin.Context) {
	companyID, _, ok := requestIdentity(c)
	if !ok {
		return
	}

	rows, err := h.inventoryService.ListReorderProducts(c.Request.Context(), companyID)
	if err != nil {
		respondError(c, err, "Failed to list reorder products")
		return
	}

	c.JSON(http.StatusOK, dto.ToReorderProductResponses(rows))
}
