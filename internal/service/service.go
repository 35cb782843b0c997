// Package service contains interface for service business-logic.
package service

import (
	"context"
	"errors"

	"github.com/Decentr-net/blockconnect/internal/entities"
)

//go:generate mockgen -destination=./mock/service.go -package=mock -source=service.go

var (
	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument is returned when required input is missing or blank.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnauthenticated is returned when an action requires a user and there is none.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrIneligible is returned when a user does not hold enough tokens to join a token-gated community.
	ErrIneligible = errors.New("ineligible")
)

// CreateCommunityParams ...
type CreateCommunityParams struct {
	Name          string
	Description   string
	Private       bool
	TokenGated    bool
	MinimumTokens int64
}

// Partner is a conversation partner with the last exchanged message, if any.
type Partner struct {
	User        *entities.User
	LastMessage *entities.Message
}

// Service ...
type Service interface {
	Connect(ctx context.Context) (*entities.User, error)
	Disconnect(ctx context.Context) error
	CurrentUser(ctx context.Context) (*entities.User, error)
	RewardTokens(ctx context.Context, userID string, amount int64) error

	ListUsers(ctx context.Context) ([]*entities.User, error)
	GetUser(ctx context.Context, id string) (*entities.User, error)
	Follow(ctx context.Context, follower, followee string) error
	Unfollow(ctx context.Context, follower, followee string) error
	PostsByUser(ctx context.Context, userID string) ([]*entities.Post, error)
	ProfileStats(ctx context.Context, userID string) (*entities.ProfileStats, error)

	ListPosts(ctx context.Context) ([]*entities.Post, error)
	CreatePost(ctx context.Context, userID, content string, images []string) (*entities.Post, error)
	ToggleLike(ctx context.Context, postID, userID string) (*entities.Post, error)
	AddComment(ctx context.Context, postID, userID, content string) (*entities.Comment, error)

	ListConversationPartners(ctx context.Context, userID, search string) ([]*Partner, error)
	Conversation(ctx context.Context, a, b string) ([]*entities.Message, error)
	LastMessage(ctx context.Context, a, b string) (*entities.Message, error)
	SendMessage(ctx context.Context, sender, receiver, content string) (*entities.Message, error)

	ListCommunities(ctx context.Context, filter string) ([]*entities.Community, error)
	CreateCommunity(ctx context.Context, creatorID string, p CreateCommunityParams) (*entities.Community, error)
	JoinCommunity(ctx context.Context, communityID, userID string) (*entities.Community, error)
	LeaveCommunity(ctx context.Context, communityID, userID string) (*entities.Community, error)

	ListNotifications(ctx context.Context, userID string) ([]*entities.Notification, error)
	MarkNotificationsRead(ctx context.Context, userID string) error
}
