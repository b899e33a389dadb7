package restapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"wallet_gateway/internal/domain/entity"
)

// RateResponse is the price of one unit of an asset.
type RateResponse struct {
	Asset    string  `json:"asset"`
	Currency string  `json:"currency"`
	Rate     float64 `json:"rate"`
}

// FiatValueResponse is the fiat value of an asset amount.
type FiatValueResponse struct {
	Asset    string  `json:"asset"`
	Currency string  `json:"currency"`
	Amount   string  `json:"amount"`
	Value    float64 `json:"value"`
}

func currencyParam(c *gin.Context) entity.FiatCurrency {
	return entity.FiatCurrency(strings.ToUpper(c.DefaultQuery("currency", string(entity.FiatUSD))))
}

// GetExchangeRate handles GET /api/v1/prices/:asset.
func (h *Handler) GetExchangeRate(c *gin.Context) {
	asset := c.Param("asset")
	currency := currencyParam(c)
	c.JSON(http.StatusOK, RateResponse{
		Asset:    asset,
		Currency: string(currency),
		Rate:     h.prices.GetExchangeRate(asset, currency),
	})
}

// GetFiatValue handles GET /api/v1/prices/:asset/fiat.
func (h *Handler) GetFiatValue(c *gin.Context) {
	asset := c.Param("asset")
	currency := currencyParam(c)
	amount, ok := c.GetQuery("amount")
	if !ok {
		badRequest(c, "amount query parameter is required")
		return
	}
	value, err := h.prices.GetFiatValue(amount, asset, currency)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, FiatValueResponse{Asset: asset, Currency: string(currency), Amount: amount, Value: value})
}

// RefreshPrices handles POST /api/v1/prices/refresh.
func (h *Handler) RefreshPrices(c *gin.Context) {
	if err := h.prices.RefreshPrices(c.Request.Context()); err != nil {
		h.logger.Warn("Price refresh failed", "error", err)
		c.AbortWithStatusJSON(http.StatusBadGateway, APIError{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "refreshed"})
}
