package restapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wallet_gateway/internal/domain/entity"
)

// NetworkResponse describes a network and its configured assets.
type NetworkResponse struct {
	Identifier     string             `json:"identifier"`
	Name           string             `json:"name"`
	Family         string             `json:"family"`
	NativeSymbol   string             `json:"nativeSymbol"`
	NativeDecimals int                `json:"nativeDecimals"`
	Tokens         []entity.TokenInfo `json:"tokens"`
}

// DecimalsResponse is returned by the decimals lookup.
type DecimalsResponse struct {
	Network      string `json:"network"`
	TokenAddress string `json:"tokenAddress,omitempty"`
	Decimals     int    `json:"decimals"`
}

// BaseUnitRequest asks for a decimal amount in base units of a network asset.
type BaseUnitRequest struct {
	Network      string `json:"network" binding:"required"`
	TokenAddress string `json:"tokenAddress"`
	Amount       string `json:"amount"`
	Strict       bool   `json:"strict"`
}

// BaseUnitResponse carries the resolved precision and the integer amount.
type BaseUnitResponse struct {
	Network      string `json:"network"`
	TokenAddress string `json:"tokenAddress,omitempty"`
	Amount       string `json:"amount"`
	Decimals     int    `json:"decimals"`
	BaseUnit     string `json:"baseUnit"`
}

// ListNetworks handles GET /api/v1/networks.
func (h *Handler) ListNetworks(c *gin.Context) {
	defs := h.networks.GetAllNetworkDefinitions()
	resp := make([]NetworkResponse, 0, len(defs))
	for _, d := range defs {
		tokens := d.Tokens
		if tokens == nil {
			tokens = []entity.TokenInfo{}
		}
		resp = append(resp, NetworkResponse{
			Identifier:     d.Identifier,
			Name:           d.Name,
			Family:         string(d.Family),
			NativeSymbol:   d.NativeSymbol,
			NativeDecimals: h.amounts.GetDecimals(d.Identifier, ""),
			Tokens:         tokens,
		})
	}
	c.JSON(http.StatusOK, resp)
}

// GetDecimals handles GET /api/v1/networks/:network/decimals.
func (h *Handler) GetDecimals(c *gin.Context) {
	network := c.Param("network")
	token := c.Query("tokenAddress")
	c.JSON(http.StatusOK, DecimalsResponse{
		Network:      network,
		TokenAddress: token,
		Decimals:     h.amounts.GetDecimals(network, token),
	})
}

// ConvertToBaseUnit handles POST /api/v1/amounts/base-unit.
// Malformed amounts become "0" unless strict is set, in which case they are rejected.
func (h *Handler) ConvertToBaseUnit(c *gin.Context) {
	var req BaseUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}

	resp := BaseUnitResponse{Network: req.Network, TokenAddress: req.TokenAddress, Amount: req.Amount}
	if req.Strict {
		resp.Decimals = h.amounts.GetDecimals(req.Network, req.TokenAddress)
		value, err := h.amounts.ParseBaseUnit(req.Amount, resp.Decimals)
		if err != nil {
			h.abortWithError(c, err)
			return
		}
		resp.BaseUnit = value.String()
	} else {
		resp.Decimals, resp.BaseUnit = h.amounts.PrepareTransferValue(req.Network, req.TokenAddress, req.Amount)
	}
	c.JSON(http.StatusOK, resp)
}
