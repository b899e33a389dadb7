package restapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wallet_gateway/internal/domain/entity"
)

// WalletResponse reports the current wallet and whether it is busy.
type WalletResponse struct {
	Wallet    *entity.Wallet `json:"wallet"`
	IsLoading bool           `json:"isLoading"`
}

// CreateWalletRequest is the body of POST /api/v1/wallet.
type CreateWalletRequest struct {
	Name     string `json:"name"`
	Mnemonic string `json:"mnemonic"`
}

// GetWallet handles GET /api/v1/wallet.
func (h *Handler) GetWallet(c *gin.Context) {
	c.JSON(http.StatusOK, WalletResponse{Wallet: h.wallet.Wallet(), IsLoading: h.wallet.IsLoading()})
}

// CreateWallet handles POST /api/v1/wallet.
func (h *Handler) CreateWallet(c *gin.Context) {
	var req CreateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	w, err := h.wallet.CreateWallet(c.Request.Context(), req.Name, req.Mnemonic)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, WalletResponse{Wallet: w, IsLoading: h.wallet.IsLoading()})
}

// RefreshWallet handles POST /api/v1/wallet/refresh.
func (h *Handler) RefreshWallet(c *gin.Context) {
	if err := h.wallet.RefreshWallet(c.Request.Context()); err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, WalletResponse{Wallet: h.wallet.Wallet(), IsLoading: h.wallet.IsLoading()})
}

// GetPortfolio handles GET /api/v1/wallet/portfolio.
func (h *Handler) GetPortfolio(c *gin.Context) {
	c.JSON(http.StatusOK, h.portfolio.GetPortfolio())
}
