package restapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"wallet_gateway/internal/app/port"
	"wallet_gateway/internal/app/service"
	"wallet_gateway/internal/pkg/units"
)

// Handler serves the gateway REST API on top of the application services.
type Handler struct {
	networks  port.NetworkDefinitionProvider
	amounts   port.AmountConverter
	prices    port.TokenPriceService
	wallet    port.WalletService
	portfolio port.PortfolioService
	logger    port.Logger
}

// NewHandler creates a new Handler.
func NewHandler(
	networks port.NetworkDefinitionProvider,
	amounts port.AmountConverter,
	prices port.TokenPriceService,
	wallet port.WalletService,
	portfolio port.PortfolioService,
	logger port.Logger,
) *Handler {
	return &Handler{
		networks:  networks,
		amounts:   amounts,
		prices:    prices,
		wallet:    wallet,
		portfolio: portfolio,
		logger:    logger,
	}
}

// StatusClientClosedRequest is returned when the caller went away before the response was ready.
const StatusClientClosedRequest = 499

// APIError is the body of every non-2xx response.
type APIError struct {
	Error string `json:"error"`
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrUnknownNetwork), errors.Is(err, service.ErrNoWallet):
		return http.StatusNotFound
	case errors.Is(err, units.ErrEmptyAmount),
		errors.Is(err, units.ErrNegativeAmount),
		errors.Is(err, units.ErrMalformedAmount),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrUnsupportedMethod),
		errors.Is(err, service.ErrInvalidIndex),
		errors.Is(err, service.ErrInvalidWalletName),
		errors.Is(err, service.ErrInvalidMnemonic),
		errors.Is(err, service.ErrInvalidRecipient),
		errors.Is(err, service.ErrInvalidValue),
		errors.Is(err, service.ErrMissingMessage),
		errors.Is(err, service.ErrMissingSignature):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled):
		return StatusClientClosedRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) abortWithError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == StatusClientClosedRequest {
		h.logger.Debug("Request cancelled by client", "path", c.FullPath(), "error", err)
	} else if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed", "path", c.FullPath(), "error", err)
	}
	c.AbortWithStatusJSON(status, APIError{Error: err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, APIError{Error: msg})
}

func parseIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		badRequest(c, "account index must be an integer")
		return 0, false
	}
	if index < 0 {
		badRequest(c, service.ErrInvalidIndex.Error())
		return 0, false
	}
	return index, true
}
