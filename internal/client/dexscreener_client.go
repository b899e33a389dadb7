package client

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"wallet_gateway/internal/app/port"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var stablecoinSymbols = map[string]struct{}{
	"USDC": {},
	"USDT": {},
	"DAI":  {},
}

// DEXScreenerClient fetches token pairs from the DEX Screener API and derives USD prices from them.
type DEXScreenerClient struct {
	client              *fasthttp.Client
	baseURL             string
	timeout             time.Duration
	logger              *zap.Logger
	maxTokensPerRequest int
}

var _ port.PriceSource = (*DEXScreenerClient)(nil)

// NewDEXScreenerClient creates a new DEXScreenerClient.
func NewDEXScreenerClient(baseURL string, timeout time.Duration, logger *zap.Logger, maxTokensPerRequest int) *DEXScreenerClient {
	if maxTokensPerRequest <= 0 {
		maxTokensPerRequest = 30
	}
	return &DEXScreenerClient{
		client:              &fasthttp.Client{},
		baseURL:             strings.TrimRight(baseURL, "/"),
		timeout:             timeout,
		logger:              logger.Named("DEXScreenerClient"),
		maxTokensPerRequest: maxTokensPerRequest,
	}
}

// GetTokenPairsByAddresses returns all pairs DEX Screener knows for the given token addresses.
func (c *DEXScreenerClient) GetTokenPairsByAddresses(ctx context.Context, dexscreenerChainID string, tokenAddresses []string) ([]PairData, error) {
	if len(tokenAddresses) == 0 {
		return nil, fmt.Errorf("tokenAddresses cannot be empty")
	}
	if len(tokenAddresses) > c.maxTokensPerRequest {
		c.logger.Warn("Number of token addresses exceeds maxTokensPerRequest",
			zap.Int("requestedCount", len(tokenAddresses)),
			zap.Int("maxAllowed", c.maxTokensPerRequest))
		return nil, fmt.Errorf("number of token addresses (%d) exceeds max tokens per request (%d)", len(tokenAddresses), c.maxTokensPerRequest)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	requestURL := fmt.Sprintf("%s/tokens/v1/%s/%s", c.baseURL, dexscreenerChainID, strings.Join(tokenAddresses, ","))
	c.logger.Debug("Requesting token pairs from DEX Screener", zap.String("url", requestURL))

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = c.client.DoDeadline(req, resp, deadline)
	} else {
		err = c.client.DoTimeout(req, resp, c.timeout)
	}
	if err != nil {
		c.logger.Error("Failed to execute request to DEX Screener", zap.String("url", requestURL), zap.Error(err))
		return nil, fmt.Errorf("failed to execute request to %s: %w", requestURL, err)
	}

	rawBody := resp.Body()
	if resp.StatusCode() != fasthttp.StatusOK {
		c.logger.Error("DEX Screener API request failed",
			zap.String("url", requestURL),
			zap.Int("statusCode", resp.StatusCode()),
			zap.ByteString("responseBody", rawBody))
		return nil, fmt.Errorf("DEX Screener API request to %s failed with status %d", requestURL, resp.StatusCode())
	}

	var wrapped DEXTokenPair
	if err := json.Unmarshal(rawBody, &wrapped); err == nil && wrapped.Pairs != nil {
		return wrapped.Pairs, nil
	}

	var directPairs []PairData
	if err := json.Unmarshal(rawBody, &directPairs); err != nil {
		c.logger.Error("Failed to unmarshal DEX Screener response",
			zap.String("url", requestURL),
			zap.ByteString("responseBody", rawBody),
			zap.Error(err))
		return nil, fmt.Errorf("failed to unmarshal DEX Screener response from %s: %w", requestURL, err)
	}

	if len(directPairs) == 0 {
		c.logger.Warn("DEX Screener returned 200 OK with an empty array of pairs",
			zap.String("dexscreenerChainID", dexscreenerChainID))
	}
	return directPairs, nil
}

// GetUSDPrices implements port.PriceSource. Keys of the result are lowercased token addresses;
// tokens without a usable pair are absent.
func (c *DEXScreenerClient) GetUSDPrices(ctx context.Context, dexscreenerChainID string, tokenAddresses []string) (map[string]float64, error) {
	pairs, err := c.GetTokenPairsByAddresses(ctx, dexscreenerChainID, tokenAddresses)
	if err != nil {
		return nil, err
	}

	prices := make(map[string]float64, len(tokenAddresses))
	for _, addr := range tokenAddresses {
		priceStr := selectBestPriceFromPairs(pairs, addr)
		if priceStr == "" {
			continue
		}
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil {
			c.logger.Warn("Failed to parse token price from DEX Screener",
				zap.String("tokenAddress", addr),
				zap.String("price_string", priceStr),
				zap.Error(err))
			continue
		}
		prices[strings.ToLower(addr)] = price
	}
	return prices, nil
}

// selectBestPriceFromPairs prefers the most liquid pair quoted in a stablecoin, then the most liquid pair overall.
func selectBestPriceFromPairs(pairs []PairData, baseTokenAddress string) string {
	var bestOverall, bestStable *PairData

	for i := range pairs {
		pair := &pairs[i]
		if !strings.EqualFold(pair.BaseToken.Address, baseTokenAddress) {
			continue
		}
		if pair.PriceUsd == "" || pair.PriceUsd == "0" {
			continue
		}

		if _, isStable := stablecoinSymbols[strings.ToUpper(pair.QuoteToken.Symbol)]; isStable {
			if bestStable == nil || pair.liquidityUSD() > bestStable.liquidityUSD() {
				bestStable = pair
			}
		}
		if bestOverall == nil || pair.liquidityUSD() > bestOverall.liquidityUSD() {
			bestOverall = pair
		}
	}

	if bestStable != nil {
		return bestStable.PriceUsd
	}
	if bestOverall != nil {
		return bestOverall.PriceUsd
	}
	return ""
}
