// Package storage contains a storage interface.
package storage

import (
	"context"
	"fmt"

	"github.com/Decentr-net/blockconnect/internal/entities"
)

//go:generate mockgen -destination=./mock/storage.go -package=mock -source=storage.go

// ErrNotFound ...
var ErrNotFound = fmt.Errorf("not found")

// Slot keys. They are equal to the localStorage keys used by the web client,
// so a browser dump can be imported as is.
const (
	CurrentUserKey   = "blockconnect_current_user"
	UsersKey         = "blockconnect_users"
	PostsKey         = "blockconnect_posts"
	MessagesKey      = "blockconnect_messages"
	CommunitiesKey   = "blockconnect_communities"
	NotificationsKey = "blockconnect_notifications"
)

// Keys lists every slot key.
// nolint:gochecknoglobals
var Keys = []string{
	CurrentUserKey,
	UsersKey,
	PostsKey,
	MessagesKey,
	CommunitiesKey,
	NotificationsKey,
}

// KV is a durable key-value backend with whole-value writes.
type KV interface {
	// Get returns ErrNotFound if key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// InTx runs f atomically. Writers are serialized.
	InTx(ctx context.Context, f func(kv KV) error) error
	Ping(ctx context.Context) error
}

// Storage provides typed access to the slots.
type Storage interface {
	InTx(ctx context.Context, f func(s Storage) error) error
	Ping(ctx context.Context) error

	GetCurrentUser(ctx context.Context) (*entities.User, error)
	SetCurrentUser(ctx context.Context, u *entities.User) error
	ClearCurrentUser(ctx context.Context) error

	GetUsers(ctx context.Context) ([]*entities.User, error)
	SaveUsers(ctx context.Context, users []*entities.User) error

	GetPosts(ctx context.Context) ([]*entities.Post, error)
	SavePosts(ctx context.Context, posts []*entities.Post) error

	GetMessages(ctx context.Context) ([]*entities.Message, error)
	SaveMessages(ctx context.Context, messages []*entities.Message) error

	GetCommunities(ctx context.Context) ([]*entities.Community, error)
	SaveCommunities(ctx context.Context, communities []*entities.Community) error

	GetNotifications(ctx context.Context) ([]*entities.Notification, error)
	SaveNotifications(ctx context.Context, notifications []*entities.Notification) error
}
