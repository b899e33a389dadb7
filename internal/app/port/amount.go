package port

import "math/big"

// AmountConverter turns user-entered amounts into base units for a network asset.
type AmountConverter interface {
	GetDecimals(network string, tokenAddress string) int
	ToBaseUnit(amount string, decimals int) string
	ParseBaseUnit(amount string, decimals int) (*big.Int, error)
	// PrepareTransferValue resolves the precision for the asset and converts amount with it.
	PrepareTransferValue(network, tokenAddress, amount string) (decimals int, baseUnit string)
}
