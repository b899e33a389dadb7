package networkdefinition

import (
	"sort"
	"strings"

	"wallet_gateway/internal/app/port"
	"wallet_gateway/internal/config"
	"wallet_gateway/internal/domain/entity"
)

// NetworkDefinitionProvider provides the merged network/token table.
// It is built once and read-only afterwards, so lookups need no locking.
type NetworkDefinitionProvider struct {
	logger  port.Logger
	defs    map[string]entity.NetworkDefinition
	ordered []entity.NetworkDefinition
}

// Predefined network definitions
var ( //nolint:gochecknoglobals // Global for definitions
	Ethereum = entity.NetworkDefinition{
		Identifier:         "ethereum",
		Name:               "Ethereum Mainnet",
		Family:             entity.FamilyEVM,
		NativeSymbol:       "ETH",
		NativeDecimals:     18,
		DEXScreenerChainID: "ethereum",
		Tokens: []entity.TokenInfo{
			{Address: "0xdAC17F958D2ee523a2206206994597C13D831ec7", Symbol: "USDT", Name: "Tether USD", Decimals: 6},
			{Address: "0x68749665FF8D2d112Fa859AA293F07A622782F38", Symbol: "XAUT", Name: "Tether Gold", Decimals: 6},
			{Address: "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48", Symbol: "USDC", Name: "USD Coin", Decimals: 6},
		},
	}
	Arbitrum = entity.NetworkDefinition{
		Identifier:         "arbitrum",
		Name:               "Arbitrum One",
		Family:             entity.FamilyEVM,
		NativeSymbol:       "ETH",
		NativeDecimals:     18,
		DEXScreenerChainID: "arbitrum",
		Tokens: []entity.TokenInfo{
			{Address: "0xFd086bC7CD5C481DCC9C85ebE478A1C0b69FCbb9", Symbol: "USDT", Name: "Tether USD", Decimals: 6},
		},
	}
	Polygon = entity.NetworkDefinition{
		Identifier:         "polygon",
		Name:               "Polygon PoS",
		Family:             entity.FamilyEVM,
		NativeSymbol:       "POL",
		NativeDecimals:     18,
		DEXScreenerChainID: "polygon",
		Tokens: []entity.TokenInfo{
			{Address: "0xc2132D05D31c914a87C6611C10748AEb04B58e8F", Symbol: "USDT", Name: "Tether USD", Decimals: 6},
		},
	}
	Bitcoin = entity.NetworkDefinition{
		Identifier:     "bitcoin",
		Name:           "Bitcoin",
		Family:         entity.FamilyBitcoin,
		NativeSymbol:   "BTC",
		NativeDecimals: 8,
	}
	Tron = entity.NetworkDefinition{
		Identifier:         "tron",
		Name:               "Tron",
		Family:             entity.FamilyTron,
		NativeSymbol:       "TRX",
		NativeDecimals:     6,
		DEXScreenerChainID: "tron",
		Tokens: []entity.TokenInfo{
			{Address: "TR7NHqjeKQxGTCi8q8ZY4pL8otSzgjLj6t", Symbol: "USDT", Name: "Tether USD", Decimals: 6},
		},
	}
	Ton = entity.NetworkDefinition{
		Identifier:         "ton",
		Name:               "TON",
		Family:             entity.FamilyTon,
		NativeSymbol:       "TON",
		NativeDecimals:     9,
		DEXScreenerChainID: "ton",
		Tokens: []entity.TokenInfo{
			{Address: "EQCxE6mUtQJKFnGfaROTKOt1lZbDiiX1kCixRv7Nw2Id_sDs", Symbol: "USDT", Name: "Tether USD", Decimals: 6},
		},
	}
	Solana = entity.NetworkDefinition{
		Identifier:         "solana",
		Name:               "Solana",
		Family:             entity.FamilySolana,
		NativeSymbol:       "SOL",
		NativeDecimals:     9,
		DEXScreenerChainID: "solana",
		Tokens: []entity.TokenInfo{
			{Address: "Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB", Symbol: "USDT", Name: "Tether USD", Decimals: 6},
		},
	}
)

// allKnownDefinitions is a helper to quickly access all hardcoded definitions.
var allKnownDefinitions = []entity.NetworkDefinition{
	Ethereum,
	Arbitrum,
	Polygon,
	Bitcoin,
	Tron,
	Ton,
	Solana,
}

// NewNetworkDefinitionProvider builds the table from the hardcoded definitions, then applies
// config overrides, then appends tokens supplied by the token provider (token files).
// tokenProvider may be nil.
func NewNetworkDefinitionProvider(log port.Logger, overrides []config.NetworkConfig, tokenProvider port.TokenProvider) *NetworkDefinitionProvider {
	p := &NetworkDefinitionProvider{
		logger: log,
		defs:   make(map[string]entity.NetworkDefinition, len(allKnownDefinitions)+len(overrides)),
	}

	for _, def := range allKnownDefinitions {
		p.defs[def.Identifier] = cloneDefinition(def)
	}

	for _, o := range overrides {
		p.applyOverride(o)
	}

	if tokenProvider != nil {
		p.mergeTokenFiles(tokenProvider)
	}

	p.ordered = make([]entity.NetworkDefinition, 0, len(p.defs))
	for _, def := range p.defs {
		for i := range def.Tokens {
			def.Tokens[i].Network = def.Identifier
		}
		p.ordered = append(p.ordered, def)
	}
	sort.Slice(p.ordered, func(i, j int) bool { return p.ordered[i].Identifier < p.ordered[j].Identifier })

	p.logger.Info("NetworkDefinitionProvider initialized", "networks", len(p.ordered))
	for _, def := range p.ordered {
		p.logger.Debug("Network registered",
			"identifier", def.Identifier,
			"native_symbol", def.NativeSymbol,
			"native_decimals", def.NativeDecimals,
			"tokens", len(def.Tokens))
	}
	return p
}

func (p *NetworkDefinitionProvider) applyOverride(o config.NetworkConfig) {
	def, exists := p.defs[o.Identifier]
	if !exists {
		def = entity.NetworkDefinition{Identifier: o.Identifier, Name: o.Identifier}
		p.logger.Info("Adding network from config", "identifier", o.Identifier)
	}
	if o.Name != "" {
		def.Name = o.Name
	}
	if o.Family != "" {
		def.Family = entity.NetworkFamily(strings.ToLower(o.Family))
	}
	if o.NativeSymbol != "" {
		def.NativeSymbol = o.NativeSymbol
	}
	if o.NativeDecimals > 0 {
		def.NativeDecimals = o.NativeDecimals
	}
	if o.DEXScreenerChainID != "" {
		def.DEXScreenerChainID = o.DEXScreenerChainID
	}
	def.Tokens = mergeTokens(p.logger, def.Identifier, def.Tokens, o.Tokens)
	p.defs[def.Identifier] = def
}

func (p *NetworkDefinitionProvider) mergeTokenFiles(tokenProvider port.TokenProvider) {
	current := make([]entity.NetworkDefinition, 0, len(p.defs))
	for _, def := range p.defs {
		current = append(current, def)
	}

	tokensByNetwork, err := tokenProvider.GetTokensByNetwork(current)
	if err != nil {
		p.logger.Warn("Token files could not be loaded, using built-in token lists only", "error", err)
		return
	}
	for identifier, tokens := range tokensByNetwork {
		def, ok := p.defs[identifier]
		if !ok {
			continue
		}
		def.Tokens = mergeTokens(p.logger, identifier, def.Tokens, tokens)
		p.defs[identifier] = def
	}
}

// mergeTokens appends extra to base; an entry whose address already exists (case-insensitive) replaces it.
func mergeTokens(log port.Logger, network string, base, extra []entity.TokenInfo) []entity.TokenInfo {
	merged := make([]entity.TokenInfo, len(base), len(base)+len(extra))
	copy(merged, base)
	for _, t := range extra {
		replaced := false
		for i := range merged {
			if strings.EqualFold(merged[i].Address, t.Address) {
				log.Debug("Token definition overridden", "network", network, "address", t.Address)
				merged[i] = t
				replaced = true
				break
			}
		}
		if !replaced {
			merged = append(merged, t)
		}
	}
	return merged
}

func cloneDefinition(def entity.NetworkDefinition) entity.NetworkDefinition {
	tokens := make([]entity.TokenInfo, len(def.Tokens))
	copy(tokens, def.Tokens)
	def.Tokens = tokens
	return def
}

// GetAllNetworkDefinitions returns every network definition, sorted by identifier.
func (p *NetworkDefinitionProvider) GetAllNetworkDefinitions() []entity.NetworkDefinition {
	if p == nil {
		return []entity.NetworkDefinition{}
	}
	defsCopy := make([]entity.NetworkDefinition, len(p.ordered))
	for i, def := range p.ordered {
		defsCopy[i] = cloneDefinition(def)
	}
	return defsCopy
}

// GetNetworkDefinitionByName returns a network definition by its exact identifier.
func (p *NetworkDefinitionProvider) GetNetworkDefinitionByName(identifier string) (entity.NetworkDefinition, bool) {
	if p == nil {
		return entity.NetworkDefinition{}, false
	}
	def, ok := p.defs[identifier]
	if !ok {
		return entity.NetworkDefinition{}, false
	}
	return def, true
}
