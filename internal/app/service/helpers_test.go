package service

import (
	"wallet_gateway/internal/domain/entity"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

type staticNetworks map[string]entity.NetworkDefinition

func (s staticNetworks) GetAllNetworkDefinitions() []entity.NetworkDefinition {
	out := make([]entity.NetworkDefinition, 0, len(s))
	for _, def := range s {
		out = append(out, def)
	}
	return out
}

func (s staticNetworks) GetNetworkDefinitionByName(identifier string) (entity.NetworkDefinition, bool) {
	def, ok := s[identifier]
	return def, ok
}

func testNetworks() staticNetworks {
	return staticNetworks{
		"ethereum": {
			Identifier:         "ethereum",
			Family:             entity.FamilyEVM,
			NativeSymbol:       "ETH",
			NativeDecimals:     18,
			DEXScreenerChainID: "ethereum",
			Tokens: []entity.TokenInfo{
				{Address: "0xdAC17F958D2ee523a2206206994597C13D831ec7", Symbol: "USDT", Decimals: 6},
				{Address: "0x68749665FF8D2d112Fa859AA293F07A622782F38", Symbol: "XAUT", Decimals: 6},
				{Address: "0x0000000000000000000000000000000000000abc", Symbol: "ZERO", Decimals: 0},
			},
		},
		"bitcoin": {
			Identifier:     "bitcoin",
			Family:         entity.FamilyBitcoin,
			NativeSymbol:   "BTC",
			NativeDecimals: 8,
		},
		"devnet": {
			Identifier: "devnet",
			Family:     entity.FamilyEVM,
		},
	}
}
