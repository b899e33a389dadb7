package port

import (
	"context"

	"wallet_gateway/internal/domain/entity"
)

// TokenProvider defines the interface for fetching token definitions.
type TokenProvider interface {
	// GetTokensByNetwork returns network identifier -> tokens for the given networks.
	GetTokensByNetwork(networks []entity.NetworkDefinition) (map[string][]entity.TokenInfo, error)
}

// PriceSource fetches USD prices for token contracts on a DEX Screener chain.
// The result is keyed by lowercased token address.
type PriceSource interface {
	GetUSDPrices(ctx context.Context, dexScreenerChainID string, tokenAddresses []string) (map[string]float64, error)
}

// TokenPriceService converts asset amounts to fiat values.
type TokenPriceService interface {
	GetExchangeRate(asset string, currency entity.FiatCurrency) float64
	GetFiatValue(amount string, asset string, currency entity.FiatCurrency) (float64, error)
	RefreshPrices(ctx context.Context) error
}
