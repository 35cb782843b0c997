// Package ledger contains interface of the wallet identity and token ledger.
package ledger

import (
	"context"
	"errors"

	"github.com/Decentr-net/blockconnect/internal/entities"
	"github.com/Decentr-net/blockconnect/internal/health"
)

//go:generate mockgen -destination=./mock/ledger.go -package=mock -source=ledger.go

// ErrConnection is returned when a wallet could not be connected.
var ErrConnection = errors.New("wallet connection failed")

// Wallet is a connected wallet.
type Wallet struct {
	Address   string
	Signature string
}

// Profile contains user-editable fields supplied at registration.
type Profile struct {
	Username    string
	DisplayName string
	Bio         string
	Avatar      string
	CoverImage  string
}

// Ledger connects wallets, registers accounts and keeps BCT token balances.
type Ledger interface {
	health.Pinger

	ConnectWallet(ctx context.Context) (Wallet, error)
	RegisterUser(ctx context.Context, address string, p Profile) (*entities.User, error)
	// Unregister removes an account registered by RegisterUser.
	Unregister(ctx context.Context, userID string) error
	// RewardTokens is a no-op for unknown users.
	RewardTokens(ctx context.Context, userID string, amount int64) error
	Balance(ctx context.Context, userID string) (int64, bool)
}
