// Package impl is implementation of service interface.
package impl

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/Decentr-net/blockconnect/internal/entities"
	"github.com/Decentr-net/blockconnect/internal/ledger"
	"github.com/Decentr-net/blockconnect/internal/service"
	"github.com/Decentr-net/blockconnect/internal/storage"
)

var log = logrus.WithField("layer", "service").WithField("package", "impl")

// srv ...
type srv struct {
	s storage.Storage
	l ledger.Ledger

	now   func() time.Time
	newID func(kind string) string
}

// New creates new instance of service.
func New(s storage.Storage, l ledger.Ledger) service.Service {
	return srv{
		s:     s,
		l:     l,
		now:   time.Now,
		newID: newID,
	}
}

func newID(kind string) string {
	return fmt.Sprintf("%s-%s", kind, uuid.NewString())
}

func (s srv) timestamp() time.Time {
	return s.now().UTC()
}

func (s srv) notify(ctx context.Context, st storage.Storage, recipient string, typ entities.NotificationType,
	content string, actionUserID string) error {
	notifications, err := st.GetNotifications(ctx)
	if err != nil {
		return fmt.Errorf("failed to get notifications: %w", err)
	}

	n := &entities.Notification{
		ID:        s.newID("notification"),
		UserID:    recipient,
		Type:      typ,
		Content:   content,
		Timestamp: s.timestamp(),
	}
	if actionUserID != "" {
		n.ActionUserID = &actionUserID
	}

	if err := st.SaveNotifications(ctx, append(notifications, n)); err != nil {
		return fmt.Errorf("failed to save notifications: %w", err)
	}

	return nil
}

func findUser(users []*entities.User, id string) (*entities.User, error) {
	u, ok := lo.Find(users, func(u *entities.User) bool {
		return u.ID == id
	})
	if !ok {
		return nil, fmt.Errorf("%w: user %s", service.ErrNotFound, id)
	}

	return u, nil
}

func findPost(posts []*entities.Post, id string) (*entities.Post, error) {
	p, ok := lo.Find(posts, func(p *entities.Post) bool {
		return p.ID == id
	})
	if !ok {
		return nil, fmt.Errorf("%w: post %s", service.ErrNotFound, id)
	}

	return p, nil
}

func findCommunity(communities []*entities.Community, id string) (*entities.Community, error) {
	c, ok := lo.Find(communities, func(c *entities.Community) bool {
		return c.ID == id
	})
	if !ok {
		return nil, fmt.Errorf("%w: community %s", service.ErrNotFound, id)
	}

	return c, nil
}

// sortPostsDesc orders posts newest first keeping the stored order for equal timestamps.
func sortPostsDesc(posts []*entities.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Timestamp.After(posts[j].Timestamp)
	})
}
