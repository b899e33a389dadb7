package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wallet_gateway/internal/domain/entity"
)

const testMnemonic = "abandon ability able about above absent absorb abstract absurd abuse access accident"

func newTestWallet(delay time.Duration) *WalletServiceImpl {
	return NewWalletService(testNetworks(), nopLogger{}, delay)
}

func TestDefaultWallet(t *testing.T) {
	s := newTestWallet(0)
	w := s.Wallet()
	require.NotNil(t, w)
	assert.Equal(t, "Main Wallet", w.Name)
	assert.False(t, s.IsLoading())
}

func TestCreateWallet(t *testing.T) {
	s := newTestWallet(0)

	_, err := s.CreateWallet(context.Background(), "  ", testMnemonic)
	require.ErrorIs(t, err, ErrInvalidWalletName)

	_, err = s.CreateWallet(context.Background(), "Savings", "one two three")
	require.ErrorIs(t, err, ErrInvalidMnemonic)

	before, err := s.GetAddress(context.Background(), "ethereum", 0)
	require.NoError(t, err)

	w, err := s.CreateWallet(context.Background(), "Savings", strings.ReplaceAll(testMnemonic, " ", ","))
	require.NoError(t, err)
	assert.Equal(t, "new-wallet", w.ID)
	assert.Equal(t, "Savings", s.Wallet().Name)

	addrs, err := s.GetNetworkAddresses("ethereum")
	require.NoError(t, err)
	assert.Empty(t, addrs, "address cache is reset for the new wallet")

	after, err := s.GetAddress(context.Background(), "ethereum", 0)
	require.NoError(t, err)
	assert.NotEqual(t, before, after)
}

func TestCreateWalletCancelled(t *testing.T) {
	s := newTestWallet(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := s.CreateWallet(ctx, "Savings", testMnemonic)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, "Main Wallet", s.Wallet().Name)
	assert.False(t, s.IsLoading())
}

func TestRefreshWalletDelay(t *testing.T) {
	s := newTestWallet(100 * time.Millisecond)

	done := make(chan error, 1)
	go func() { done <- s.RefreshWallet(context.Background()) }()

	assert.Eventually(t, s.IsLoading, time.Second, time.Millisecond)
	require.NoError(t, <-done)
	assert.False(t, s.IsLoading())
}

func TestOverlappingRefreshKeepsLoading(t *testing.T) {
	s := newTestWallet(100 * time.Millisecond)

	first := make(chan error, 1)
	go func() { first <- s.RefreshWallet(context.Background()) }()
	require.Eventually(t, s.IsLoading, time.Second, time.Millisecond)

	time.Sleep(50 * time.Millisecond)
	second := make(chan error, 1)
	go func() { second <- s.RefreshWallet(context.Background()) }()

	require.NoError(t, <-first)
	assert.True(t, s.IsLoading(), "second refresh still in flight")
	require.NoError(t, <-second)
	assert.False(t, s.IsLoading())
}

func TestGetAddress(t *testing.T) {
	s := newTestWallet(0)
	ctx := context.Background()

	eth0, err := s.GetAddress(ctx, "ethereum", 0)
	require.NoError(t, err)
	assert.True(t, common.IsHexAddress(eth0))
	assert.Equal(t, common.HexToAddress(eth0).Hex(), eth0, "checksummed")

	again, err := s.GetAddress(ctx, "ethereum", 0)
	require.NoError(t, err)
	assert.Equal(t, eth0, again)

	eth1, err := s.GetAddress(ctx, "ethereum", 1)
	require.NoError(t, err)
	assert.NotEqual(t, eth0, eth1)

	btc, err := s.GetAddress(ctx, "bitcoin", 0)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(btc, "bc1q"))

	_, err = s.GetAddress(ctx, "nowhere", 0)
	require.ErrorIs(t, err, ErrUnknownNetwork)
	_, err = s.GetAddress(ctx, "ethereum", -1)
	require.ErrorIs(t, err, ErrInvalidIndex)

	addrs, err := s.GetNetworkAddresses("ethereum")
	require.NoError(t, err)
	assert.Equal(t, map[int]string{0: eth0, 1: eth1}, addrs)
}

func TestCallAccountMethodSend(t *testing.T) {
	s := newTestWallet(0)
	ctx := context.Background()
	to := "0x00000000000000000000000000000000000000aa"

	quote, err := s.CallAccountMethod(ctx, "ethereum", 0, entity.MethodQuoteSendTransaction,
		entity.AccountCallParams{To: to, Value: "1000000000000000000"})
	require.NoError(t, err)
	assert.Equal(t, "21000000000000", quote.Fee)
	assert.Empty(t, quote.Hash)

	tx, err := s.CallAccountMethod(ctx, "ethereum", 0, entity.MethodTransfer,
		entity.AccountCallParams{To: to, Value: "1"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(tx.Hash, "0x"))
	assert.Len(t, tx.Hash, 66)

	tx2, err := s.CallAccountMethod(ctx, "ethereum", 0, entity.MethodTransfer,
		entity.AccountCallParams{To: to, Value: "1"})
	require.NoError(t, err)
	assert.NotEqual(t, tx.Hash, tx2.Hash)

	tokenQuote, err := s.CallAccountMethod(ctx, "ethereum", 0, entity.MethodQuoteTransfer,
		entity.AccountCallParams{Recipient: to, Amount: "1500000", Token: "0xdAC17F958D2ee523a2206206994597C13D831ec7"})
	require.NoError(t, err)
	assert.Equal(t, "65000000000000", tokenQuote.Fee)
	assert.Equal(t, "1500000", tokenQuote.Value)

	_, err = s.CallAccountMethod(ctx, "ethereum", 0, entity.MethodTransfer,
		entity.AccountCallParams{To: "not-an-address", Value: "1"})
	require.ErrorIs(t, err, ErrInvalidRecipient)

	_, err = s.CallAccountMethod(ctx, "ethereum", 0, entity.MethodTransfer,
		entity.AccountCallParams{To: to, Value: "1.5"})
	require.ErrorIs(t, err, ErrInvalidValue)

	btc, err := s.CallAccountMethod(ctx, "bitcoin", 0, entity.MethodTransfer,
		entity.AccountCallParams{To: "bc1qanything", Value: "1000"})
	require.NoError(t, err)
	assert.Equal(t, "1410", btc.Fee)

	_, err = s.CallAccountMethod(ctx, "ethereum", 0, "swap", entity.AccountCallParams{})
	require.ErrorIs(t, err, ErrUnsupportedMethod)

	_, err = s.CallAccountMethod(ctx, "nowhere", 0, entity.MethodTransfer, entity.AccountCallParams{})
	require.ErrorIs(t, err, ErrUnknownNetwork)
}

func TestSignAndVerify(t *testing.T) {
	s := newTestWallet(0)
	ctx := context.Background()

	signed, err := s.CallAccountMethod(ctx, "ethereum", 0, entity.MethodSign, entity.AccountCallParams{Message: "Hello WDK!"})
	require.NoError(t, err)
	require.NotEmpty(t, signed.Signature)

	ok, err := s.CallAccountMethod(ctx, "ethereum", 0, entity.MethodVerify,
		entity.AccountCallParams{Message: "Hello WDK!", Signature: signed.Signature})
	require.NoError(t, err)
	require.NotNil(t, ok.Valid)
	assert.True(t, *ok.Valid)

	bad, err := s.CallAccountMethod(ctx, "ethereum", 0, entity.MethodVerify,
		entity.AccountCallParams{Message: "Hello WDK?", Signature: signed.Signature})
	require.NoError(t, err)
	assert.False(t, *bad.Valid)

	_, err = s.CallAccountMethod(ctx, "ethereum", 0, entity.MethodSign, entity.AccountCallParams{})
	require.ErrorIs(t, err, ErrMissingMessage)
	_, err = s.CallAccountMethod(ctx, "ethereum", 0, entity.MethodVerify, entity.AccountCallParams{Message: "x"})
	require.ErrorIs(t, err, ErrMissingSignature)
}
