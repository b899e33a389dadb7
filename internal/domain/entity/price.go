package entity

// AssetTicker identifies an asset in the price table.
type AssetTicker string

const (
	TickerBTC  AssetTicker = "BTC"
	TickerUSDT AssetTicker = "USDT"
	TickerXAUT AssetTicker = "XAUT"
	TickerETH  AssetTicker = "ETH"
)

// FiatCurrency is a currency prices can be quoted in.
type FiatCurrency string

const (
	FiatUSD FiatCurrency = "USD"
	FiatEUR FiatCurrency = "EUR"
)
