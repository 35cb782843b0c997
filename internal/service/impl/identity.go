package impl

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/lo"

	"github.com/Decentr-net/blockconnect/internal/entities"
	"github.com/Decentr-net/blockconnect/internal/ledger"
	"github.com/Decentr-net/blockconnect/internal/service"
	"github.com/Decentr-net/blockconnect/internal/storage"
)

const (
	defaultAvatar     = "https://images.pexels.com/photos/2379004/pexels-photo-2379004.jpeg?auto=compress&cs=tinysrgb&w=150&h=150&fit=crop"
	defaultCoverImage = "https://images.pexels.com/photos/844124/pexels-photo-844124.jpeg?auto=compress&cs=tinysrgb&w=800"
)

func newUserProfile(address string) ledger.Profile {
	suffix := address
	if len(suffix) > 6 {
		suffix = suffix[len(suffix)-6:]
	}

	return ledger.Profile{
		Username:    "user_" + suffix,
		DisplayName: "New User",
		Bio:         "New to BlockConnect",
		Avatar:      defaultAvatar,
		CoverImage:  defaultCoverImage,
	}
}

func (s srv) Connect(ctx context.Context) (*entities.User, error) {
	w, err := s.l.ConnectWallet(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to connect wallet: %w", err)
	}

	var user, registered *entities.User

	if err := s.s.InTx(ctx, func(st storage.Storage) error {
		users, err := st.GetUsers(ctx)
		if err != nil {
			return fmt.Errorf("failed to get users: %w", err)
		}

		u, ok := lo.Find(users, func(u *entities.User) bool {
			return u.WalletAddress == w.Address
		})

		if !ok {
			u, err = s.l.RegisterUser(ctx, w.Address, newUserProfile(w.Address))
			if err != nil {
				return fmt.Errorf("failed to register user: %w", err)
			}
			registered = u

			if err := st.SaveUsers(ctx, append(users, u)); err != nil {
				return fmt.Errorf("failed to save users: %w", err)
			}
		}

		if err := st.SetCurrentUser(ctx, u); err != nil {
			return fmt.Errorf("failed to set current user: %w", err)
		}

		user = u

		return nil
	}); err != nil {
		if registered != nil {
			if err := s.l.Unregister(ctx, registered.ID); err != nil {
				log.WithField("user", registered.ID).WithError(err).Error("failed to unregister user")
			}
		}
		return nil, err
	}

	if registered != nil {
		log.WithField("user", registered.ID).WithField("address", w.Address).Info("new user registered")
	}

	return user, nil
}

func (s srv) Disconnect(ctx context.Context) error {
	if err := s.s.ClearCurrentUser(ctx); err != nil {
		return fmt.Errorf("failed to clear current user: %w", err)
	}

	return nil
}

// CurrentUser returns the session user as it is in the users collection.
// The current-user slot is a copy made at connect time, so it is used only when the user is gone from the collection.
func (s srv) CurrentUser(ctx context.Context) (*entities.User, error) {
	cur, err := s.s.GetCurrentUser(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, service.ErrUnauthenticated
		}
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	users, err := s.s.GetUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}

	if u, err := findUser(users, cur.ID); err == nil {
		return u, nil
	}

	return cur, nil
}

// RewardTokens credits the ledger only after the stored balance is committed.
func (s srv) RewardTokens(ctx context.Context, userID string, amount int64) error {
	var rewarded bool

	if err := s.s.InTx(ctx, func(st storage.Storage) error {
		users, err := st.GetUsers(ctx)
		if err != nil {
			return fmt.Errorf("failed to get users: %w", err)
		}

		u, err := findUser(users, userID)
		if err != nil {
			log.WithField("user", userID).Debug("skip reward for unknown user")
			return nil
		}

		u.Tokens += amount

		if err := st.SaveUsers(ctx, users); err != nil {
			return fmt.Errorf("failed to save users: %w", err)
		}

		switch cur, err := st.GetCurrentUser(ctx); {
		case err == nil:
			if cur.ID == userID {
				if err := st.SetCurrentUser(ctx, u); err != nil {
					return fmt.Errorf("failed to set current user: %w", err)
				}
			}
		case errors.Is(err, storage.ErrNotFound):
		default:
			return fmt.Errorf("failed to get current user: %w", err)
		}

		if err := s.notify(ctx, st, userID, entities.TokenNotification,
			fmt.Sprintf("You received %d BCT tokens", amount), ""); err != nil {
			return err
		}

		rewarded = true

		return nil
	}); err != nil {
		return err
	}

	if !rewarded {
		return nil
	}

	if err := s.l.RewardTokens(ctx, userID, amount); err != nil {
		return fmt.Errorf("failed to reward tokens on ledger side: %w", err)
	}

	return nil
}
