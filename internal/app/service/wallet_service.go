package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"

	"wallet_gateway/internal/app/port"
	"wallet_gateway/internal/domain/entity"
	"wallet_gateway/internal/pkg/metrics"
	"wallet_gateway/internal/pkg/units"
)

var (
	ErrUnknownNetwork    = errors.New("unknown network")
	ErrUnsupportedMethod = errors.New("unsupported account method")
	ErrInvalidIndex      = errors.New("account index must not be negative")
	ErrInvalidWalletName = errors.New("wallet name is required")
	ErrInvalidMnemonic   = errors.New("mnemonic must have 12 or 24 words")
	ErrInvalidRecipient  = errors.New("invalid recipient address")
	ErrInvalidValue      = errors.New("value must be a non-negative integer in base units")
	ErrMissingMessage    = errors.New("message is required")
	ErrMissingSignature  = errors.New("signature is required")
	ErrNoWallet          = errors.New("no wallet is open")
)

// Mock fees in base units of the network's native asset.
var mockNativeFees = map[entity.NetworkFamily]string{
	entity.FamilyEVM:     "21000000000000", // 21000 gas at 1 gwei
	entity.FamilyBitcoin: "1410",
	entity.FamilyTron:    "1100000",
	entity.FamilyTon:     "5000000",
	entity.FamilySolana:  "5000",
}

var mockTokenFees = map[entity.NetworkFamily]string{
	entity.FamilyEVM:    "65000000000000", // 65000 gas at 1 gwei
	entity.FamilyTron:   "13450000",
	entity.FamilyTon:    "50000000",
	entity.FamilySolana: "10000",
}

var defaultWallet = entity.Wallet{
	ID:      "wallet-1",
	Name:    "Main Wallet",
	Address: "0x123...abc",
}

// WalletServiceImpl is an in-memory stand-in for the wallet SDK.
// Nothing here derives keys or signs: addresses, hashes and signatures are deterministic digests.
type WalletServiceImpl struct {
	networks port.NetworkDefinitionProvider
	logger   port.Logger
	delay    time.Duration
	now      func() time.Time

	mu        sync.RWMutex
	wallet    *entity.Wallet
	loading   int // in-flight create and refresh calls
	nonce     uint64
	addresses map[string]map[int]string
}

// NewWalletService creates the mock wallet with the default wallet already open.
func NewWalletService(networks port.NetworkDefinitionProvider, logger port.Logger, delay time.Duration) *WalletServiceImpl {
	w := defaultWallet
	w.CreatedAt = time.Now().UTC()
	return &WalletServiceImpl{
		networks:  networks,
		logger:    logger,
		delay:     delay,
		now:       time.Now,
		wallet:    &w,
		addresses: make(map[string]map[int]string),
	}
}

var _ port.WalletService = (*WalletServiceImpl)(nil)

// Wallet returns a copy of the open wallet, or nil.
func (s *WalletServiceImpl) Wallet() *entity.Wallet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.wallet == nil {
		return nil
	}
	w := *s.wallet
	return &w
}

// IsLoading reports whether a create or refresh is in flight.
func (s *WalletServiceImpl) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading > 0
}

// CreateWallet replaces the open wallet after the mock delay. The mnemonic may be separated by
// spaces or commas and is only checked for its word count; it is not stored.
func (s *WalletServiceImpl) CreateWallet(ctx context.Context, name, mnemonic string) (*entity.Wallet, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidWalletName
	}
	words := strings.Fields(strings.ReplaceAll(mnemonic, ",", " "))
	if len(words) != 12 && len(words) != 24 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidMnemonic, len(words))
	}

	s.beginLoading()
	defer s.endLoading()

	if err := s.wait(ctx); err != nil {
		s.logger.Warn("Wallet creation cancelled", "name", name, "error", err)
		return nil, err
	}

	w := &entity.Wallet{
		ID:        "new-wallet",
		Name:      name,
		Address:   "0xNew...Wallet",
		CreatedAt: s.now().UTC(),
	}

	s.mu.Lock()
	s.wallet = w
	s.addresses = make(map[string]map[int]string)
	s.mu.Unlock()

	s.logger.Info("Wallet created", "id", w.ID, "name", w.Name, "mnemonic_words", len(words))
	out := *w
	return &out, nil
}

// RefreshWallet simulates a network round trip.
func (s *WalletServiceImpl) RefreshWallet(ctx context.Context) error {
	s.beginLoading()
	defer s.endLoading()
	if err := s.wait(ctx); err != nil {
		return err
	}
	s.logger.Debug("Wallet refreshed")
	return nil
}

// GetAddress returns the mock address of account index on network, caching it per network.
func (s *WalletServiceImpl) GetAddress(ctx context.Context, network string, index int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if index < 0 {
		return "", ErrInvalidIndex
	}
	def, ok := s.networks.GetNetworkDefinitionByName(network)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownNetwork, network)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.wallet == nil {
		return "", ErrNoWallet
	}
	if addr, ok := s.addresses[network][index]; ok {
		return addr, nil
	}

	addr := deriveMockAddress(s.wallet.ID, def, index)
	if s.addresses[network] == nil {
		s.addresses[network] = make(map[int]string)
	}
	s.addresses[network][index] = addr
	return addr, nil
}

// GetNetworkAddresses returns the addresses already derived for network.
func (s *WalletServiceImpl) GetNetworkAddresses(network string) (map[int]string, error) {
	if _, ok := s.networks.GetNetworkDefinitionByName(network); !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNetwork, network)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[int]string, len(s.addresses[network]))
	for i, a := range s.addresses[network] {
		out[i] = a
	}
	return out, nil
}

// CallAccountMethod dispatches an account method to its mock implementation.
func (s *WalletServiceImpl) CallAccountMethod(
	ctx context.Context,
	network string,
	index int,
	method entity.AccountMethod,
	params entity.AccountCallParams,
) (*entity.AccountCallResult, error) {
	res, err := s.callAccountMethod(ctx, network, index, method, params)
	result := "ok"
	if err != nil {
		result = "error"
		s.logger.Debug("Account method failed", "network", network, "index", index, "method", method, "error", err)
	}
	metrics.AccountCalls.WithLabelValues(string(method), result).Inc()
	return res, err
}

func (s *WalletServiceImpl) callAccountMethod(
	ctx context.Context,
	network string,
	index int,
	method entity.AccountMethod,
	params entity.AccountCallParams,
) (*entity.AccountCallResult, error) {
	def, ok := s.networks.GetNetworkDefinitionByName(network)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNetwork, network)
	}
	from, err := s.GetAddress(ctx, network, index)
	if err != nil {
		return nil, err
	}
	res := &entity.AccountCallResult{Method: method, Network: network, Index: index, From: from}

	switch method {
	case entity.MethodQuoteSendTransaction:
		if err := validateTransfer(def, params.To, params.Value); err != nil {
			return nil, err
		}
		res.To, res.Value = params.To, params.Value
		res.Fee = feeFor(mockNativeFees, def.Family)
		return res, nil

	case entity.MethodQuoteTransfer:
		if err := validateTokenTransfer(def, params); err != nil {
			return nil, err
		}
		res.To, res.Value, res.Token = params.Recipient, params.Amount, params.Token
		res.Fee = feeFor(mockTokenFees, def.Family)
		return res, nil

	case entity.MethodTransfer:
		if params.Token != "" {
			if err := validateTokenTransfer(def, params); err != nil {
				return nil, err
			}
			res.To, res.Value, res.Token = params.Recipient, params.Amount, params.Token
			res.Fee = feeFor(mockTokenFees, def.Family)
		} else {
			if err := validateTransfer(def, params.To, params.Value); err != nil {
				return nil, err
			}
			res.To, res.Value = params.To, params.Value
			res.Fee = feeFor(mockNativeFees, def.Family)
		}
		res.Hash = s.mockTxHash(network, from, res.To, res.Value, res.Token)
		s.logger.Info("Mock transfer submitted", "network", network, "from", from, "to", res.To, "value", res.Value, "token", res.Token, "hash", res.Hash)
		return res, nil

	case entity.MethodSign:
		if params.Message == "" {
			return nil, ErrMissingMessage
		}
		res.Signature = mockSignature(from, params.Message)
		return res, nil

	case entity.MethodVerify:
		if params.Message == "" {
			return nil, ErrMissingMessage
		}
		if params.Signature == "" {
			return nil, ErrMissingSignature
		}
		valid := strings.EqualFold(mockSignature(from, params.Message), params.Signature)
		res.Signature = params.Signature
		res.Valid = &valid
		return res, nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMethod, method)
	}
}

func validateTransfer(def entity.NetworkDefinition, to, value string) error {
	if err := validateRecipient(def, to); err != nil {
		return err
	}
	if _, err := units.ParseBaseUnit(value, 0); err != nil || strings.Contains(value, ".") {
		return fmt.Errorf("%w: %q", ErrInvalidValue, value)
	}
	return nil
}

func validateTokenTransfer(def entity.NetworkDefinition, params entity.AccountCallParams) error {
	if strings.TrimSpace(params.Token) == "" {
		return fmt.Errorf("%w: token address is required", ErrInvalidRecipient)
	}
	if def.IsEVM() && !common.IsHexAddress(params.Token) {
		return fmt.Errorf("%w: token %q is not a hex address", ErrInvalidRecipient, params.Token)
	}
	return validateTransfer(def, params.Recipient, params.Amount)
}

func validateRecipient(def entity.NetworkDefinition, to string) error {
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidRecipient)
	}
	if def.IsEVM() && !common.IsHexAddress(to) {
		return fmt.Errorf("%w: %q", ErrInvalidRecipient, to)
	}
	return nil
}

func feeFor(fees map[entity.NetworkFamily]string, family entity.NetworkFamily) string {
	if fee, ok := fees[family]; ok {
		return fee
	}
	return "0"
}

func (s *WalletServiceImpl) mockTxHash(parts ...string) string {
	s.mu.Lock()
	s.nonce++
	n := s.nonce
	s.mu.Unlock()
	return hexutil.Encode(crypto.Keccak256([]byte(strings.Join(parts, "|")), []byte(strconv.FormatUint(n, 10))))
}

func mockSignature(address, message string) string {
	return hexutil.Encode(crypto.Keccak256([]byte("mock-signature"), []byte(address), []byte(message)))
}

func deriveMockAddress(walletID string, def entity.NetworkDefinition, index int) string {
	digest := crypto.Keccak256([]byte(walletID), []byte(def.Identifier), []byte(strconv.Itoa(index)))
	switch def.Family {
	case entity.FamilyEVM:
		return common.BytesToAddress(digest[12:]).Hex()
	case entity.FamilyBitcoin:
		return "bc1q" + hexutil.Encode(digest[:20])[2:]
	case entity.FamilyTron:
		return "T" + hexutil.Encode(digest[:16])[2:]
	case entity.FamilyTon:
		return "UQ" + hexutil.Encode(digest[:24])[2:]
	default:
		return def.Identifier + ":" + hexutil.Encode(digest[:20])[2:]
	}
}

func (s *WalletServiceImpl) beginLoading() {
	s.mu.Lock()
	s.loading++
	s.mu.Unlock()
}

func (s *WalletServiceImpl) endLoading() {
	s.mu.Lock()
	s.loading--
	s.mu.Unlock()
}

func (s *WalletServiceImpl) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
