package port

import (
	"context"

	"wallet_gateway/internal/domain/entity"
)

// WalletService stands in for the wallet SDK the front-end talks to.
type WalletService interface {
	Wallet() *entity.Wallet
	IsLoading() bool
	CreateWallet(ctx context.Context, name, mnemonic string) (*entity.Wallet, error)
	RefreshWallet(ctx context.Context) error
	GetAddress(ctx context.Context, network string, index int) (string, error)
	GetNetworkAddresses(network string) (map[int]string, error)
	CallAccountMethod(ctx context.Context, network string, index int, method entity.AccountMethod, params entity.AccountCallParams) (*entity.AccountCallResult, error)
}
