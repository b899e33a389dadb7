package entity

// NetworkFamily groups networks that share an address format and fee model.
type NetworkFamily string

const (
	FamilyEVM     NetworkFamily = "evm"
	FamilyBitcoin NetworkFamily = "bitcoin"
	FamilyTron    NetworkFamily = "tron"
	FamilyTon     NetworkFamily = "ton"
	FamilySolana  NetworkFamily = "solana"
)

// DefaultDecimals is the precision assumed when nothing more specific is configured.
const DefaultDecimals = 18

// NetworkDefinition holds the static configuration for a specific blockchain network.
// This structure is defined at the domain level to be used across application and infrastructure layers.
type NetworkDefinition struct {
	Identifier         string        `json:"identifier" yaml:"identifier"` // e.g. "ethereum", "tron"
	Name               string        `json:"name" yaml:"name"`
	Family             NetworkFamily `json:"family" yaml:"family"`
	NativeSymbol       string        `json:"nativeSymbol" yaml:"nativeSymbol"`
	NativeDecimals     int           `json:"nativeDecimals" yaml:"nativeDecimals"` // 0 means not configured
	DEXScreenerChainID string        `json:"dexScreenerChainId,omitempty" yaml:"dexScreenerChainId,omitempty"`
	Tokens             []TokenInfo   `json:"tokens" yaml:"tokens"`
}

// IsEVM reports whether addresses on the network are 20-byte hex accounts.
func (d NetworkDefinition) IsEVM() bool {
	return d.Family == FamilyEVM
}
