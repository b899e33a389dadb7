package entity

// BalanceItem represents the amount of an asset held by the wallet.
type BalanceItem struct {
	Token    string  `json:"token"`
	Symbol   string  `json:"symbol"`
	Balance  string  `json:"balance"`
	USDValue float64 `json:"usdValue"`
	Color    string  `json:"color"`
}

// TransactionType is the direction of a wallet transaction.
type TransactionType string

const (
	TransactionSent     TransactionType = "sent"
	TransactionReceived TransactionType = "received"
)

// TransactionStatus is the confirmation state of a wallet transaction.
type TransactionStatus string

const (
	TransactionConfirmed TransactionStatus = "confirmed"
	TransactionPending   TransactionStatus = "pending"
)

// TransactionItem is a single row of the wallet's transaction history.
type TransactionItem struct {
	ID     string            `json:"id"`
	Type   TransactionType   `json:"type"`
	Amount string            `json:"amount"`
	Token  string            `json:"token"`
	Date   string            `json:"date"`
	Status TransactionStatus `json:"status"`
}

// WalletPortfolio aggregates balances, history and the total fiat value.
type WalletPortfolio struct {
	Wallet          *Wallet           `json:"wallet"`
	Balances        []BalanceItem     `json:"balances"`
	Transactions    []TransactionItem `json:"transactions"`
	TotalBalanceUSD float64           `json:"totalBalanceUSD"`
}
