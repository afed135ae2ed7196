package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/SscSPs/stock_exchange_app/internal/core/ports/services"
	"github.com/SscSPs/stock_exchange_app/internal/dto"
	"github.com/SscSPs/stock_exchange_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// stockHandler handles HTTP requests related to stocks.
type stockHandler struct {
	errorResponder
	stockService portssvc.StockSvcFacade
}

// newStockHandler creates a new stockHandler.
func newStockHandler(ss portssvc.StockSvcFacade, errs errorResponder) *stockHandler {
	return &stockHandler{
		errorResponder: errs,
		stockService:   ss,
	}
}

// registerStockRoutes registers routes related to stocks.
func registerStockRoutes(rg *gin.RouterGroup, stockService portssvc.StockSvcFacade, errs errorResponder) {
	h := newStockHandler(stockService, errs)

	stocks := rg.Group("/stock")
	{
		stocks.POST("", h.createStock)
		stocks.PUT("", h.updateStockPrice)
		stocks.GET("/:id", h.getStock)
		stocks.DELETE("/:id", h.deleteStock)
	}
}

// createStock godoc
// @Summary Create a new stock
// @Description Adds a new stock to the catalog. Names are unique.
// @Tags stocks
// @Accept  json
// @Produce  json
// @Param   stock body dto.CreateStockRequest true "Stock details"
// @Success 201 {object} dto.StockResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.AuthErrorResponse "Unauthorized"
// @Failure 403 {object} dto.AuthErrorResponse "Forbidden"
// @Failure 409 {object} dto.ErrorResponse "Stock name already exists"
// @Failure 500 {object} dto.ErrorResponse "Unexpected error"
// @Security BasicAuth
// @Router /stock [post]
func (h *stockHandler) createStock(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}

	logger.Info("Received request to create stock", slog.String("name", req.Name))

	stock, err := h.stockService.CreateStock(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToStockResponse(stock))
}

// updateStockPrice godoc
// @Summary Update the price of a stock
// @Description Overwrites the current price of an existing stock
// @Tags stocks
// @Accept  json
// @Produce  json
// @Param   stock body dto.UpdateStockPriceRequest true "Stock id and new price"
// @Success 200 {object} dto.StockResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.AuthErrorResponse "Unauthorized"
// @Failure 403 {object} dto.AuthErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Stock not found"
// @Failure 409 {object} dto.ErrorResponse "Concurrent modification"
// @Failure 500 {object} dto.ErrorResponse "Unexpected error"
// @Security BasicAuth
// @Router /stock [put]
func (h *stockHandler) updateStockPrice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateStockPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}

	logger.Info("Received request to update stock price", slog.Int64("stock_id", req.ID))

	stock, err := h.stockService.UpdateStockPrice(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToStockResponse(stock))
}

// getStock godoc
// @Summary Get a stock by id
// @Tags stocks
// @Produce  json
// @Param   id path int true "Stock ID"
// @Success 200 {object} dto.StockResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid id"
// @Failure 401 {object} dto.AuthErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Stock not found"
// @Security BasicAuth
// @Router /stock/{id} [get]
func (h *stockHandler) getStock(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.respondMalformed(c, "id", err)
		return
	}

	stock, err := h.stockService.GetStockByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToStockResponse(stock))
}

// deleteStock godoc
// @Summary Delete a stock
// @Description Deletes a stock and withdraws it from every exchange listing it
// @Tags stocks
// @Param   id path int true "Stock ID"
// @Success 204 "No Content"
// @Failure 400 {object} dto.ErrorResponse "Invalid id"
// @Failure 401 {object} dto.AuthErrorResponse "Unauthorized"
// @Failure 403 {object} dto.AuthErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Stock not found"
// @Failure 409 {object} dto.ErrorResponse "Concurrent modification"
// @Security BasicAuth
// @Router /stock/{id} [delete]
func (h *stockHandler) deleteStock(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.respondMalformed(c, "id", err)
		return
	}

	logger.Info("Received request to delete stock", slog.Int64("stock_id", id))

	if err := h.stockService.DeleteStock(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
