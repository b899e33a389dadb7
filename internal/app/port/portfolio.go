package port

import "wallet_gateway/internal/domain/entity"

// PortfolioService defines the interface for reading the wallet portfolio.
type PortfolioService interface {
	GetPortfolio() entity.WalletPortfolio
}
