package service

import (
	"errors"
	"math/big"
	"strings"

	"wallet_gateway/internal/app/port"
	"wallet_gateway/internal/domain/entity"
	"wallet_gateway/internal/pkg/metrics"
	"wallet_gateway/internal/pkg/units"
)

// AmountService resolves asset precision from the network table and converts amounts to base units.
// It holds no mutable state and is safe for concurrent use.
type AmountService struct {
	networks port.NetworkDefinitionProvider
	logger   port.Logger
}

// NewAmountService creates a new AmountService.
func NewAmountService(networks port.NetworkDefinitionProvider, logger port.Logger) *AmountService {
	return &AmountService{networks: networks, logger: logger}
}

var _ port.AmountConverter = (*AmountService)(nil)

// GetDecimals returns the precision of the network's native asset, or of the token whose address
// matches tokenAddress case-insensitively. Anything not configured falls back to 18; a result of 18
// does not prove the asset really uses 18 decimals.
func (s *AmountService) GetDecimals(network string, tokenAddress string) int {
	def, ok := s.networks.GetNetworkDefinitionByName(network)
	if !ok {
		metrics.DecimalsLookups.WithLabelValues("unknown_network").Inc()
		s.logger.Debug("Network not configured, using default decimals", "network", network)
		return entity.DefaultDecimals
	}

	if tokenAddress != "" {
		for _, token := range def.Tokens {
			if strings.EqualFold(token.Address, tokenAddress) {
				metrics.DecimalsLookups.WithLabelValues("token").Inc()
				return token.Decimals
			}
		}
		metrics.DecimalsLookups.WithLabelValues("token_default").Inc()
		s.logger.Debug("Token not configured, using default decimals", "network", network, "token_address", tokenAddress)
		return entity.DefaultDecimals
	}

	if def.NativeDecimals > 0 {
		metrics.DecimalsLookups.WithLabelValues("native").Inc()
		return def.NativeDecimals
	}
	metrics.DecimalsLookups.WithLabelValues("native_default").Inc()
	return entity.DefaultDecimals
}

// ToBaseUnit converts amount with the given precision. Malformed input yields "0".
func (s *AmountService) ToBaseUnit(amount string, decimals int) string {
	value, err := s.ParseBaseUnit(amount, decimals)
	if err != nil {
		return "0"
	}
	return value.String()
}

// ParseBaseUnit is the strict variant of ToBaseUnit that reports why an amount was rejected.
func (s *AmountService) ParseBaseUnit(amount string, decimals int) (*big.Int, error) {
	value, err := units.ParseBaseUnit(amount, decimals)
	metrics.AmountConversions.WithLabelValues(conversionOutcome(err)).Inc()
	if err != nil {
		s.logger.Debug("Amount rejected", "amount", amount, "decimals", decimals, "error", err)
		return nil, err
	}
	return value, nil
}

// PrepareTransferValue is getDecimals followed by toBaseUnit, as used by send forms.
func (s *AmountService) PrepareTransferValue(network, tokenAddress, amount string) (int, string) {
	decimals := s.GetDecimals(network, tokenAddress)
	return decimals, s.ToBaseUnit(amount, decimals)
}

func conversionOutcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, units.ErrEmptyAmount):
		return "empty"
	case errors.Is(err, units.ErrNegativeAmount):
		return "negative"
	default:
		return "malformed"
	}
}
