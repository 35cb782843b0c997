package impl

import (
	"context"
	"fmt"
	"sort"

	"github.com/samber/lo"

	"github.com/Decentr-net/blockconnect/internal/entities"
	"github.com/Decentr-net/blockconnect/internal/service"
	"github.com/Decentr-net/blockconnect/internal/storage"
)

func (s srv) ListNotifications(ctx context.Context, userID string) ([]*entities.Notification, error) {
	if userID == "" {
		return nil, service.ErrUnauthenticated
	}

	notifications, err := s.s.GetNotifications(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get notifications: %w", err)
	}

	out := lo.Filter(notifications, func(n *entities.Notification, _ int) bool {
		return n.UserID == userID
	})

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})

	return out, nil
}

func (s srv) MarkNotificationsRead(ctx context.Context, userID string) error {
	if userID == "" {
		return service.ErrUnauthenticated
	}

	return s.s.InTx(ctx, func(st storage.Storage) error {
		notifications, err := st.GetNotifications(ctx)
		if err != nil {
			return fmt.Errorf("failed to get notifications: %w", err)
		}

		var changed bool
		for _, n := range notifications {
			if n.UserID == userID && !n.Read {
				n.Read = true
				changed = true
			}
		}

		if !changed {
			return nil
		}

		if err := st.SaveNotifications(ctx, notifications); err != nil {
			return fmt.Errorf("failed to save notifications: %w", err)
		}

		return nil
	})
}
