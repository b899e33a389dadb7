package service

import (
	"github.com/shopspring/decimal"

	"wallet_gateway/internal/app/port"
	"wallet_gateway/internal/domain/entity"
)

var mockBalances = []entity.BalanceItem{
	{Token: "Bitcoin", Symbol: "BTC", Balance: "0.045", Color: "#F7931A"},
	{Token: "Tether", Symbol: "USDt", Balance: "1250.00", Color: "#26A17B"},
	{Token: "Tether Gold", Symbol: "XAUt", Balance: "2.5", Color: "#D4AF37"},
}

var mockTransactions = []entity.TransactionItem{
	{ID: "tx1", Type: entity.TransactionReceived, Amount: "500", Token: "USDt", Date: "Today", Status: entity.TransactionConfirmed},
	{ID: "tx2", Type: entity.TransactionSent, Amount: "0.01", Token: "BTC", Date: "Yesterday", Status: entity.TransactionConfirmed},
	{ID: "tx3", Type: entity.TransactionReceived, Amount: "0.5", Token: "XAUt", Date: "Dec 25", Status: entity.TransactionConfirmed},
}

// PortfolioServiceImpl implements port.PortfolioService over the mock balances.
type PortfolioServiceImpl struct {
	wallet port.WalletService
	prices port.TokenPriceService
	logger port.Logger
}

// NewPortfolioService creates a new instance of PortfolioServiceImpl.
func NewPortfolioService(wallet port.WalletService, prices port.TokenPriceService, l port.Logger) port.PortfolioService {
	return &PortfolioServiceImpl{wallet: wallet, prices: prices, logger: l}
}

// GetPortfolio values every balance at the current USD rate and sums the total.
func (s *PortfolioServiceImpl) GetPortfolio() entity.WalletPortfolio {
	balances := make([]entity.BalanceItem, len(mockBalances))
	total := decimal.Zero
	for i, b := range mockBalances {
		usd, err := s.prices.GetFiatValue(b.Balance, b.Symbol, entity.FiatUSD)
		if err != nil {
			s.logger.Warn("Failed to value balance", "symbol", b.Symbol, "balance", b.Balance, "error", err)
		}
		b.USDValue = usd
		balances[i] = b
		total = total.Add(decimal.NewFromFloat(usd))
	}

	transactions := make([]entity.TransactionItem, len(mockTransactions))
	copy(transactions, mockTransactions)

	return entity.WalletPortfolio{
		Wallet:          s.wallet.Wallet(),
		Balances:        balances,
		Transactions:    transactions,
		TotalBalanceUSD: total.InexactFloat64(),
	}
}
