package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"wallet_gateway/internal/app/port"
	"wallet_gateway/internal/config"
	"wallet_gateway/internal/domain/entity"
	"wallet_gateway/internal/pkg/metrics"
	"wallet_gateway/internal/pkg/utils"
)

// ErrInvalidAmount is returned when a fiat conversion amount is not a decimal number.
var ErrInvalidAmount = errors.New("invalid amount")

// mockRates are USD prices used until a refresh replaces them.
var mockRates = map[entity.AssetTicker]decimal.Decimal{
	entity.TickerBTC:  decimal.RequireFromString("96500.50"),
	entity.TickerUSDT: decimal.RequireFromString("1.00"),
	entity.TickerXAUT: decimal.RequireFromString("2450.75"),
	entity.TickerETH:  decimal.RequireFromString("2800.00"),
}

// tokenPriceServiceImpl implements port.TokenPriceService.
type tokenPriceServiceImpl struct {
	networks port.NetworkDefinitionProvider
	source   port.PriceSource
	logger   port.Logger
	cfg      config.PricesConfig
	cache    *gocache.Cache
	limiter  *rate.Limiter
}

// NewTokenPriceService creates the price service. source may be nil, in which case
// RefreshPrices keeps the mock rates.
func NewTokenPriceService(
	networks port.NetworkDefinitionProvider,
	source port.PriceSource,
	l port.Logger,
	cfg config.PricesConfig,
) port.TokenPriceService {
	ttl := time.Duration(cfg.CacheTTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = time.Hour
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 4
	}
	s := &tokenPriceServiceImpl{
		networks: networks,
		source:   source,
		logger:   l,
		cfg:      cfg,
		cache:    gocache.New(ttl, 2*ttl),
		limiter:  rate.NewLimiter(rate.Limit(rps), 1),
	}
	l.Info("TokenPriceService initialized", "cache_ttl", ttl.String(), "live_source", source != nil)
	return s
}

// GetExchangeRate returns the price of one unit of asset, or 0 when the asset or currency is unknown.
func (s *tokenPriceServiceImpl) GetExchangeRate(asset string, currency entity.FiatCurrency) float64 {
	return s.rate(asset, currency).InexactFloat64()
}

// GetFiatValue multiplies amount by the exchange rate with decimal precision.
func (s *tokenPriceServiceImpl) GetFiatValue(amount string, asset string, currency entity.FiatCurrency) (float64, error) {
	value, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return 0, fmt.Errorf("%w %q: %v", ErrInvalidAmount, amount, err)
	}
	return value.Mul(s.rate(asset, currency)).InexactFloat64(), nil
}

func (s *tokenPriceServiceImpl) rate(asset string, currency entity.FiatCurrency) decimal.Decimal {
	usd := s.usdRate(asset)
	switch entity.FiatCurrency(strings.ToUpper(string(currency))) {
	case entity.FiatUSD, "":
		return usd
	case entity.FiatEUR:
		return usd.Mul(decimal.NewFromFloat(s.cfg.EURPerUSD))
	default:
		return decimal.Zero
	}
}

func (s *tokenPriceServiceImpl) usdRate(asset string) decimal.Decimal {
	key := strings.ToUpper(strings.TrimSpace(asset))
	if cached, ok := s.cache.Get(key); ok {
		if d, ok := cached.(decimal.Decimal); ok {
			return d
		}
	}
	if d, ok := mockRates[entity.AssetTicker(key)]; ok {
		return d
	}
	return decimal.Zero
}

type priceBatch struct {
	chainID string
	tokens  map[string]entity.TokenInfo // lowercased address -> token
	addrs   []string
}

// RefreshPrices pulls USD prices for every configured token from the price source.
// Individual batch failures are logged; an error is returned only if every batch failed.
func (s *tokenPriceServiceImpl) RefreshPrices(ctx context.Context) error {
	if s.source == nil {
		s.logger.Info("No live price source configured, keeping mock rates")
		return nil
	}

	batches := s.buildBatches()
	if len(batches) == 0 {
		s.logger.Warn("No tokens with a DEX Screener chain ID, nothing to refresh")
		return nil
	}

	var updated, failedBatches atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency())

	for _, b := range batches {
		b := b
		g.Go(func() error {
			if err := s.limiter.Wait(gctx); err != nil {
				failedBatches.Add(1)
				metrics.PriceRefreshBatches.WithLabelValues("cancelled").Inc()
				return nil
			}

			prices, err := s.source.GetUSDPrices(gctx, b.chainID, b.addrs)
			if err != nil {
				failedBatches.Add(1)
				metrics.PriceRefreshBatches.WithLabelValues("error").Inc()
				s.logger.Error("Failed to fetch token prices",
					"dexScreenerID", b.chainID,
					"token_addresses_count", len(b.addrs),
					"error", err)
				return nil
			}
			metrics.PriceRefreshBatches.WithLabelValues("ok").Inc()

			for addr, token := range b.tokens {
				price, ok := prices[addr]
				if !ok || price <= 0 {
					s.logger.Debug("No price returned for token", "dexScreenerID", b.chainID, "tokenAddress", token.Address)
					continue
				}
				s.cache.Set(strings.ToUpper(token.Symbol), decimal.NewFromFloat(price), gocache.DefaultExpiration)
				updated.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	s.logger.Info("Finished refreshing token prices",
		"batches", len(batches),
		"failed_batches", failedBatches.Load(),
		"updated_prices", updated.Load())

	if err := ctx.Err(); err != nil {
		return err
	}
	if failedBatches.Load() == int64(len(batches)) {
		return fmt.Errorf("price refresh failed for all %d batches", len(batches))
	}
	return nil
}

func (s *tokenPriceServiceImpl) buildBatches() []priceBatch {
	var batches []priceBatch
	for _, def := range s.networks.GetAllNetworkDefinitions() {
		if def.DEXScreenerChainID == "" || len(def.Tokens) == 0 {
			continue
		}
		byAddr := make(map[string]entity.TokenInfo, len(def.Tokens))
		addrs := make([]string, 0, len(def.Tokens))
		for _, token := range def.Tokens {
			if token.Symbol == "" {
				continue
			}
			lower := strings.ToLower(token.Address)
			byAddr[lower] = token
			addrs = append(addrs, token.Address)
		}
		for _, chunk := range utils.BatchStrings(addrs, s.cfg.MaxTokensPerBatchRequest) {
			tokens := make(map[string]entity.TokenInfo, len(chunk))
			for _, a := range chunk {
				tokens[strings.ToLower(a)] = byAddr[strings.ToLower(a)]
			}
			batches = append(batches, priceBatch{chainID: def.DEXScreenerChainID, tokens: tokens, addrs: chunk})
		}
	}
	return batches
}

func (s *tokenPriceServiceImpl) concurrency() int {
	if s.cfg.MaxConcurrentRequests > 0 {
		return s.cfg.MaxConcurrentRequests
	}
	return 5
}
