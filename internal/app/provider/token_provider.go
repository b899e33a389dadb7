package provider

import (
	"sync"

	"wallet_gateway/internal/app/port"
	"wallet_gateway/internal/domain/entity"
)

type tokenProviderImpl struct {
	source      port.TokenProvider
	logger      port.Logger
	mu          sync.Mutex
	tokensCache map[string][]entity.TokenInfo
}

// NewTokenProvider wraps a token source and caches its first successful result.
func NewTokenProvider(source port.TokenProvider, logger port.Logger) port.TokenProvider {
	return &tokenProviderImpl{
		source: source,
		logger: logger,
	}
}

// GetTokensByNetwork loads token definitions for the given networks.
// It caches the results after the first successful load.
func (p *tokenProviderImpl) GetTokensByNetwork(networks []entity.NetworkDefinition) (map[string][]entity.TokenInfo, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.tokensCache != nil {
		p.logger.Debug("Returning cached tokens by network")
		return p.tokensCache, nil
	}

	tokens, err := p.source.GetTokensByNetwork(networks)
	if err != nil {
		p.logger.Error("Failed to load tokens", "error", err)
		return nil, err
	}

	p.tokensCache = tokens
	p.logger.Info("Tokens loaded and cached successfully", "total_networks_with_tokens", len(tokens))
	return tokens, nil
}
