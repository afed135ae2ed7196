package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/SscSPs/stock_exchange_app/internal/core/domain"
	portssvc "github.com/SscSPs/stock_exchange_app/internal/core/ports/services"
	"github.com/SscSPs/stock_exchange_app/internal/dto"
	"github.com/SscSPs/stock_exchange_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// exchangeHandler handles HTTP requests related to stock exchanges.
type exchangeHandler struct {
	errorResponder
	exchangeService portssvc.ExchangeSvcFacade
}

// newExchangeHandler creates a new exchangeHandler.
func newExchangeHandler(es portssvc.ExchangeSvcFacade, errs errorResponder) *exchangeHandler {
	return &exchangeHandler{
		errorResponder:  errs,
		exchangeService: es,
	}
}

// registerExchangeRoutes registers routes related to stock exchanges.
func registerExchangeRoutes(rg *gin.RouterGroup, exchangeService portssvc.ExchangeSvcFacade, errs errorResponder) {
	h := newExchangeHandler(exchangeService, errs)

	exchanges := rg.Group("/stock-exchange")
	{
		exchanges.GET("/:name", h.getExchange)
		exchanges.POST("/:name", h.addStock)
		exchanges.DELETE("/:name", h.removeStock)
	}
}

// getExchange godoc
// @Summary Get a stock exchange
// @Description Retrieves a stock exchange by name together with its listed stocks
// @Tags stock-exchanges
// @Produce  json
// @Param   name path string true "Exchange name"
// @Success 200 {object} dto.ExchangeResponse
// @Failure 401 {object} dto.AuthErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Exchange not found"
// @Security BasicAuth
// @Router /stock-exchange/{name} [get]
func (h *exchangeHandler) getExchange(c *gin.Context) {
	exchange, err := h.exchangeService.GetExchange(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToExchangeResponse(exchange))
}

// addStock godoc
// @Summary List a stock on an exchange
// @Description Adds a stock to the exchange; the exchange becomes live once it lists 5 stocks
// @Tags stock-exchanges
// @Produce  json
// @Param   name path string true "Exchange name"
// @Param   stockId query int true "Stock ID"
// @Success 200 {object} dto.ExchangeResponse
// @Failure 400 {object} dto.ErrorResponse "Stock does not exist"
// @Failure 401 {object} dto.AuthErrorResponse "Unauthorized"
// @Failure 403 {object} dto.AuthErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Exchange not found"
// @Failure 409 {object} dto.ErrorResponse "Stock already listed or concurrent modification"
// @Security BasicAuth
// @Router /stock-exchange/{name} [post]
func (h *exchangeHandler) addStock(c *gin.Context) {
	h.mutate(c, "add", h.exchangeService.AddStockToExchange)
}

// removeStock godoc
// @Summary Delist a stock from an exchange
// @Tags stock-exchanges
// @Produce  json
// @Param   name path string true "Exchange name"
// @Param   stockId query int true "Stock ID"
// @Success 200 {object} dto.ExchangeResponse
// @Failure 400 {object} dto.ErrorResponse "Stock does not exist"
// @Failure 401 {object} dto.AuthErrorResponse "Unauthorized"
// @Failure 403 {object} dto.AuthErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Exchange not found or stock not listed"
// @Failure 409 {object} dto.ErrorResponse "Concurrent modification"
// @Security BasicAuth
// @Router /stock-exchange/{name} [delete]
func (h *exchangeHandler) removeStock(c *gin.Context) {
	h.mutate(c, "remove", h.exchangeService.RemoveStockFromExchange)
}

type membershipOp func(ctx context.Context, name string, stockID int64) (*domain.Exchange, error)

func (h *exchangeHandler) mutate(c *gin.Context, op string, apply membershipOp) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	name := c.Param("name")
	stockID, err := strconv.ParseInt(c.Query("stockId"), 10, 64)
	if err != nil {
		h.respondMalformed(c, "stockId", err)
		return
	}

	logger.Info("Received request to change exchange membership",
		slog.String("op", op),
		slog.String("exchange", name),
		slog.Int64("stock_id", stockID))

	exchange, err := apply(c.Request.Context(), name, stockID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToExchangeResponse(exchange))
}
