package storage

import (
	"context"
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	"github.com/Decentr-net/blockconnect/internal/entities"
)

// nolint:gochecknoglobals
var (
	log  = logrus.WithField("package", "storage")
	json = jsoniter.ConfigCompatibleWithStandardLibrary
)

type store struct {
	kv KV
}

// New creates typed slot storage over kv.
func New(kv KV) Storage {
	return store{kv: kv}
}

func (s store) InTx(ctx context.Context, f func(s Storage) error) error {
	return s.kv.InTx(ctx, func(kv KV) error {
		return f(store{kv: kv})
	})
}

func (s store) Ping(ctx context.Context) error {
	return s.kv.Ping(ctx)
}

func (s store) GetCurrentUser(ctx context.Context) (*entities.User, error) {
	b, err := s.kv.Get(ctx, CurrentUserKey)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get %s: %w", CurrentUserKey, err)
	}

	var u entities.User
	if err := json.Unmarshal(b, &u); err != nil {
		log.WithField("key", CurrentUserKey).WithError(err).Warn("failed to decode slot, treating as empty")
		return nil, ErrNotFound
	}

	return &u, nil
}

func (s store) SetCurrentUser(ctx context.Context, u *entities.User) error {
	return s.save(ctx, CurrentUserKey, u)
}

func (s store) ClearCurrentUser(ctx context.Context) error {
	if err := s.kv.Delete(ctx, CurrentUserKey); err != nil {
		return fmt.Errorf("failed to delete %s: %w", CurrentUserKey, err)
	}

	return nil
}

func (s store) GetUsers(ctx context.Context) ([]*entities.User, error) {
	return load(ctx, s.kv, UsersKey, DefaultUsers)
}

func (s store) SaveUsers(ctx context.Context, users []*entities.User) error {
	return s.save(ctx, UsersKey, nonNil(users))
}

func (s store) GetPosts(ctx context.Context) ([]*entities.Post, error) {
	return load(ctx, s.kv, PostsKey, DefaultPosts)
}

func (s store) SavePosts(ctx context.Context, posts []*entities.Post) error {
	return s.save(ctx, PostsKey, nonNil(posts))
}

func (s store) GetMessages(ctx context.Context) ([]*entities.Message, error) {
	return load(ctx, s.kv, MessagesKey, empty[*entities.Message])
}

func (s store) SaveMessages(ctx context.Context, messages []*entities.Message) error {
	return s.save(ctx, MessagesKey, nonNil(messages))
}

func (s store) GetCommunities(ctx context.Context) ([]*entities.Community, error) {
	return load(ctx, s.kv, CommunitiesKey, DefaultCommunities)
}

func (s store) SaveCommunities(ctx context.Context, communities []*entities.Community) error {
	return s.save(ctx, CommunitiesKey, nonNil(communities))
}

func (s store) GetNotifications(ctx context.Context) ([]*entities.Notification, error) {
	return load(ctx, s.kv, NotificationsKey, empty[*entities.Notification])
}

func (s store) SaveNotifications(ctx context.Context, notifications []*entities.Notification) error {
	return s.save(ctx, NotificationsKey, nonNil(notifications))
}

func (s store) save(ctx context.Context, key string, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	if err := s.kv.Set(ctx, key, b); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	return nil
}

// load returns the stored collection. An absent slot or a payload which can not be decoded
// yields def() instead; only backend failures are returned.
func load[T any](ctx context.Context, kv KV, key string, def func() []T) ([]T, error) {
	b, err := kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return def(), nil
		}
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}

	var out []T
	if err := json.Unmarshal(b, &out); err != nil {
		log.WithField("key", key).WithError(err).Warn("failed to decode slot, falling back to defaults")
		return def(), nil
	}

	return nonNil(out), nil
}

func empty[T any]() []T {
	return []T{}
}

func nonNil[T any](v []T) []T {
	if v == nil {
		return []T{}
	}

	return v
}
