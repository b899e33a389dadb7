package entity

// TokenInfo holds the details of a specific token.
type TokenInfo struct {
	Network  string `json:"network,omitempty" yaml:"network,omitempty"`
	Address  string `json:"address" yaml:"address"`
	Name     string `json:"name,omitempty" yaml:"name,omitempty"`
	Symbol   string `json:"symbol" yaml:"symbol"`
	Decimals int    `json:"decimals" yaml:"decimals"`
}
