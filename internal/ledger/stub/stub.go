// Package stub is an in-process implementation of the ledger interface.
// It has no consensus and no durability: it only gives the rest of the system
// an account with a token balance to work with.
package stub

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Decentr-net/blockconnect/internal/entities"
	"github.com/Decentr-net/blockconnect/internal/ledger"
)

var log = logrus.WithField("package", "stub")

const (
	addressBytes   = 20
	signatureBytes = 8
)

type stub struct {
	connectDelay time.Duration
	now          func() time.Time

	mu    *sync.RWMutex
	users map[string]*entities.User
}

// New creates new instance of the ledger stub. ConnectWallet waits connectDelay before answering.
func New(connectDelay time.Duration) ledger.Ledger {
	return stub{
		connectDelay: connectDelay,
		now:          time.Now,
		mu:           &sync.RWMutex{},
		users:        map[string]*entities.User{},
	}
}

func (s stub) Name() string {
	return "ledger"
}

func (s stub) Ping(_ context.Context) (interface{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]int{"accounts": len(s.users)}, nil
}

func (s stub) ConnectWallet(ctx context.Context) (ledger.Wallet, error) {
	t := time.NewTimer(s.connectDelay)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ledger.Wallet{}, fmt.Errorf("%w: %s", ledger.ErrConnection, ctx.Err())
	case <-t.C:
	}

	address, err := randomHex(addressBytes)
	if err != nil {
		return ledger.Wallet{}, fmt.Errorf("%w: failed to generate address: %s", ledger.ErrConnection, err)
	}

	signature, err := randomHex(signatureBytes)
	if err != nil {
		return ledger.Wallet{}, fmt.Errorf("%w: failed to generate signature: %s", ledger.ErrConnection, err)
	}

	log.WithField("address", "0x"+address).Debug("wallet connected")

	return ledger.Wallet{
		Address:   "0x" + address,
		Signature: "sig_" + signature,
	}, nil
}

func (s stub) RegisterUser(_ context.Context, address string, p ledger.Profile) (*entities.User, error) {
	u := &entities.User{
		ID:            "user-" + uuid.NewString(),
		WalletAddress: address,
		Username:      p.Username,
		DisplayName:   p.DisplayName,
		Bio:           p.Bio,
		Avatar:        p.Avatar,
		CoverImage:    p.CoverImage,
		Followers:     []string{},
		Following:     []string{},
		Tokens:        entities.StartingTokens,
		JoinDate:      s.now().UTC(),
		Verified:      false,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := *u
	s.users[u.ID] = &c

	log.WithField("user", u.ID).WithField("address", address).Info("user registered")

	return u, nil
}

func (s stub) Unregister(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.users, userID)

	return nil
}

func (s stub) RewardTokens(_ context.Context, userID string, amount int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		log.WithField("user", userID).Debug("skip reward for unknown user")
		return nil
	}

	u.Tokens += amount

	return nil
}

func (s stub) Balance(_ context.Context, userID string) (int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	if !ok {
		return 0, false
	}

	return u.Tokens, true
}

func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}
