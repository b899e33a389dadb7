package restapi

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"wallet_gateway/internal/domain/entity"
)

// SendRequest is the body of POST /api/v1/accounts/:network/:index/send.
// Amount is a human decimal and is converted to base units of the native asset or of Token.
type SendRequest struct {
	To     string `json:"to"`
	Amount string `json:"amount"`
	Token  string `json:"token"`
	Quote  bool   `json:"quote"`
	Strict bool   `json:"strict"`
}

// SendResponse wraps the account call result with the conversion that produced its value.
type SendResponse struct {
	Decimals int                       `json:"decimals"`
	BaseUnit string                    `json:"baseUnit"`
	Result   *entity.AccountCallResult `json:"result"`
}

// SignRequest is the body of the sign endpoint.
type SignRequest struct {
	Message string `json:"message"`
}

// VerifyRequest is the body of the verify endpoint.
type VerifyRequest struct {
	Message   string `json:"message"`
	Signature string `json:"signature"`
}

// GetNetworkAddresses handles GET /api/v1/accounts/:network.
func (h *Handler) GetNetworkAddresses(c *gin.Context) {
	network := c.Param("network")
	addrs, err := h.wallet.GetNetworkAddresses(network)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	resp := make([]entity.AccountAddress, 0, len(addrs))
	for i, a := range addrs {
		resp = append(resp, entity.AccountAddress{Network: network, Index: i, Address: a})
	}
	sortAddresses(resp)
	c.JSON(http.StatusOK, resp)
}

// GetAddress handles GET /api/v1/accounts/:network/:index/address.
func (h *Handler) GetAddress(c *gin.Context) {
	index, ok := parseIndex(c)
	if !ok {
		return
	}
	network := c.Param("network")
	addr, err := h.wallet.GetAddress(c.Request.Context(), network, index)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.AccountAddress{Network: network, Index: index, Address: addr})
}

// Send handles POST /api/v1/accounts/:network/:index/send.
func (h *Handler) Send(c *gin.Context) {
	index, ok := parseIndex(c)
	if !ok {
		return
	}
	var req SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	network := c.Param("network")

	var resp SendResponse
	if req.Strict {
		resp.Decimals = h.amounts.GetDecimals(network, req.Token)
		value, err := h.amounts.ParseBaseUnit(req.Amount, resp.Decimals)
		if err != nil {
			h.abortWithError(c, err)
			return
		}
		resp.BaseUnit = value.String()
	} else {
		resp.Decimals, resp.BaseUnit = h.amounts.PrepareTransferValue(network, req.Token, req.Amount)
	}

	var (
		method entity.AccountMethod
		params entity.AccountCallParams
	)
	if req.Token == "" {
		method = entity.MethodTransfer
		if req.Quote {
			method = entity.MethodQuoteSendTransaction
		}
		params = entity.AccountCallParams{To: req.To, Value: resp.BaseUnit}
	} else {
		method = entity.MethodTransfer
		if req.Quote {
			method = entity.MethodQuoteTransfer
		}
		params = entity.AccountCallParams{Recipient: req.To, Amount: resp.BaseUnit, Token: req.Token}
	}

	result, err := h.wallet.CallAccountMethod(c.Request.Context(), network, index, method, params)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	resp.Result = result
	c.JSON(http.StatusOK, resp)
}

// Sign handles POST /api/v1/accounts/:network/:index/sign.
func (h *Handler) Sign(c *gin.Context) {
	index, ok := parseIndex(c)
	if !ok {
		return
	}
	var req SignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	result, err := h.wallet.CallAccountMethod(c.Request.Context(), c.Param("network"), index,
		entity.MethodSign, entity.AccountCallParams{Message: req.Message})
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Verify handles POST /api/v1/accounts/:network/verify against account 0.
func (h *Handler) Verify(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	result, err := h.wallet.CallAccountMethod(c.Request.Context(), c.Param("network"), 0,
		entity.MethodVerify, entity.AccountCallParams{Message: req.Message, Signature: req.Signature})
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func sortAddresses(a []entity.AccountAddress) {
	sort.Slice(a, func(i, j int) bool { return a[i].Index < a[j].Index })
}
