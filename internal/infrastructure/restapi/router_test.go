package restapi

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wallet_gateway/internal/app/service"
	"wallet_gateway/internal/config"
	"wallet_gateway/internal/domain/entity"
	networkdefinition "wallet_gateway/internal/infrastructure/network/definition"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type nopLogger struct{}

func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := nopLogger{}
	networks := networkdefinition.NewNetworkDefinitionProvider(log, nil, nil)
	amounts := service.NewAmountService(networks, log)
	prices := service.NewTokenPriceService(networks, nil, log, config.PricesConfig{CacheTTLMinutes: 60, EURPerUSD: 0.5})
	wallet := service.NewWalletService(networks, log, 0)
	portfolio := service.NewPortfolioService(wallet, prices, log)

	h := NewHandler(networks, amounts, prices, wallet, portfolio, log)
	return SetupRouter(h, []string{"*"})
}

func do(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetDecimalsRoute(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		path string
		want int
	}{
		{"/api/v1/networks/ethereum/decimals", 18},
		{"/api/v1/networks/ethereum/decimals?tokenAddress=0xdac17f958d2ee523a2206206994597c13d831ec7", 6},
		{"/api/v1/networks/ethereum/decimals?tokenAddress=0x0000000000000000000000000000000000000001", 18},
		{"/api/v1/networks/bitcoin/decimals", 8},
		{"/api/v1/networks/unknown/decimals?tokenAddress=0xabc", 18},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := do(t, r, http.MethodGet, tt.path, nil)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.want, decode[DecimalsResponse](t, w).Decimals)
		})
	}
}

func TestListNetworks(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, http.MethodGet, "/api/v1/networks", nil)
	require.Equal(t, http.StatusOK, w.Code)

	nets := decode[[]NetworkResponse](t, w)
	byID := make(map[string]NetworkResponse, len(nets))
	for _, n := range nets {
		byID[n.Identifier] = n
	}
	require.Contains(t, byID, "ethereum")
	assert.Equal(t, 18, byID["ethereum"].NativeDecimals)
	assert.Equal(t, 6, byID["tron"].NativeDecimals)
	assert.NotEmpty(t, byID["ethereum"].Tokens)
}

func TestConvertToBaseUnit(t *testing.T) {
	r := newTestRouter(t)
	usdt := "0xdAC17F958D2ee523a2206206994597C13D831ec7"

	w := do(t, r, http.MethodPost, "/api/v1/amounts/base-unit",
		BaseUnitRequest{Network: "ethereum", TokenAddress: usdt, Amount: "12.345678"})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[BaseUnitResponse](t, w)
	assert.Equal(t, 6, resp.Decimals)
	assert.Equal(t, "12345678", resp.BaseUnit)

	w = do(t, r, http.MethodPost, "/api/v1/amounts/base-unit",
		BaseUnitRequest{Network: "ethereum", Amount: "abc"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0", decode[BaseUnitResponse](t, w).BaseUnit)

	w = do(t, r, http.MethodPost, "/api/v1/amounts/base-unit",
		BaseUnitRequest{Network: "ethereum", Amount: "abc", Strict: true})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEmpty(t, decode[APIError](t, w).Error)

	w = do(t, r, http.MethodPost, "/api/v1/amounts/base-unit",
		BaseUnitRequest{Network: "ethereum", Amount: "-1", Strict: true})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/api/v1/amounts/base-unit", map[string]string{"amount": "1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPriceRoutes(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/api/v1/prices/usdt", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.InDelta(t, 1.0, decode[RateResponse](t, w).Rate, 1e-9)

	w = do(t, r, http.MethodGet, "/api/v1/prices/USDT?currency=eur", nil)
	require.Equal(t, http.StatusOK, w.Code)
	rate := decode[RateResponse](t, w)
	assert.Equal(t, "EUR", rate.Currency)
	assert.InDelta(t, 0.5, rate.Rate, 1e-9)

	w = do(t, r, http.MethodGet, "/api/v1/prices/USDT/fiat?amount=10", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.InDelta(t, 10.0, decode[FiatValueResponse](t, w).Value, 1e-9)

	w = do(t, r, http.MethodGet, "/api/v1/prices/USDT/fiat?amount=ten", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodGet, "/api/v1/prices/USDT/fiat", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/api/v1/prices/refresh", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWalletRoutes(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/api/v1/wallet", nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[WalletResponse](t, w)
	require.NotNil(t, got.Wallet)
	assert.Equal(t, "wallet-1", got.Wallet.ID)

	w = do(t, r, http.MethodPost, "/api/v1/wallet", CreateWalletRequest{Name: "Savings", Mnemonic: "one two three"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	mnemonic := strings.TrimSpace(strings.Repeat("word ", 12))
	w = do(t, r, http.MethodPost, "/api/v1/wallet", CreateWalletRequest{Name: "Savings", Mnemonic: mnemonic})
	require.Equal(t, http.StatusCreated, w.Code)
	got = decode[WalletResponse](t, w)
	assert.Equal(t, "new-wallet", got.Wallet.ID)
	assert.Equal(t, "Savings", got.Wallet.Name)

	w = do(t, r, http.MethodPost, "/api/v1/wallet/refresh", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, "/api/v1/wallet/portfolio", nil)
	require.Equal(t, http.StatusOK, w.Code)
	portfolio := decode[entity.WalletPortfolio](t, w)
	assert.Len(t, portfolio.Balances, 3)
	assert.Greater(t, portfolio.TotalBalanceUSD, 0.0)
}

func TestAccountRoutes(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/api/v1/accounts/ethereum/0/address", nil)
	require.Equal(t, http.StatusOK, w.Code)
	addr := decode[entity.AccountAddress](t, w)
	assert.True(t, strings.HasPrefix(addr.Address, "0x"))

	w = do(t, r, http.MethodGet, "/api/v1/accounts/ethereum", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]entity.AccountAddress](t, w)
	require.Len(t, list, 1)
	assert.Equal(t, addr.Address, list[0].Address)

	w = do(t, r, http.MethodGet, "/api/v1/accounts/ethereum/-1/address", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = do(t, r, http.MethodGet, "/api/v1/accounts/ethereum/x/address", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = do(t, r, http.MethodGet, "/api/v1/accounts/nowhere/0/address", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = do(t, r, http.MethodGet, "/api/v1/accounts/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSendRoute(t *testing.T) {
	r := newTestRouter(t)
	recipient := "0x742d35Cc6634C0532925a3b844Bc454e4438f44e"
	usdt := "0xdAC17F958D2ee523a2206206994597C13D831ec7"

	w := do(t, r, http.MethodPost, "/api/v1/accounts/ethereum/0/send", SendRequest{To: recipient, Amount: "0.5", Quote: true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[SendResponse](t, w)
	assert.Equal(t, 18, resp.Decimals)
	assert.Equal(t, "500000000000000000", resp.BaseUnit)
	require.NotNil(t, resp.Result)
	assert.Equal(t, entity.MethodQuoteSendTransaction, resp.Result.Method)
	assert.NotEmpty(t, resp.Result.Fee)
	assert.Empty(t, resp.Result.Hash)

	w = do(t, r, http.MethodPost, "/api/v1/accounts/ethereum/0/send", SendRequest{To: recipient, Amount: "1.25", Token: usdt})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp = decode[SendResponse](t, w)
	assert.Equal(t, "1250000", resp.BaseUnit)
	assert.Equal(t, entity.MethodTransfer, resp.Result.Method)
	assert.Equal(t, "1250000", resp.Result.Value)
	assert.NotEmpty(t, resp.Result.Hash)

	w = do(t, r, http.MethodPost, "/api/v1/accounts/ethereum/0/send", SendRequest{To: "not-an-address", Amount: "1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/api/v1/accounts/ethereum/0/send", SendRequest{To: recipient, Amount: "1e5", Strict: true})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSignAndVerifyRoutes(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/v1/accounts/ethereum/0/sign", SignRequest{Message: "hello"})
	require.Equal(t, http.StatusOK, w.Code)
	signed := decode[entity.AccountCallResult](t, w)
	require.NotEmpty(t, signed.Signature)

	w = do(t, r, http.MethodPost, "/api/v1/accounts/ethereum/verify", VerifyRequest{Message: "hello", Signature: signed.Signature})
	require.Equal(t, http.StatusOK, w.Code)
	verified := decode[entity.AccountCallResult](t, w)
	require.NotNil(t, verified.Valid)
	assert.True(t, *verified.Valid)

	w = do(t, r, http.MethodPost, "/api/v1/accounts/ethereum/verify", VerifyRequest{Message: "other", Signature: signed.Signature})
	require.Equal(t, http.StatusOK, w.Code)
	verified = decode[entity.AccountCallResult](t, w)
	require.NotNil(t, verified.Valid)
	assert.False(t, *verified.Valid)

	w = do(t, r, http.MethodPost, "/api/v1/accounts/ethereum/0/sign", SignRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCancelledRequestIsNotServerError(t *testing.T) {
	r := newTestRouter(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/wallet/refresh", nil).WithContext(ctx)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, StatusClientClosedRequest, w.Code)
	assert.Equal(t, StatusClientClosedRequest, statusFor(fmt.Errorf("wrapped: %w", context.Canceled)))
	assert.Equal(t, http.StatusGatewayTimeout, statusFor(context.DeadlineExceeded))
}
