package impl

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/Decentr-net/blockconnect/internal/entities"
	"github.com/Decentr-net/blockconnect/internal/service"
	"github.com/Decentr-net/blockconnect/internal/storage"
)

func (s srv) ListUsers(ctx context.Context) ([]*entities.User, error) {
	users, err := s.s.GetUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}

	return users, nil
}

func (s srv) GetUser(ctx context.Context, id string) (*entities.User, error) {
	users, err := s.s.GetUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}

	return findUser(users, id)
}

func (s srv) PostsByUser(ctx context.Context, userID string) ([]*entities.Post, error) {
	posts, err := s.ListPosts(ctx)
	if err != nil {
		return nil, err
	}

	return lo.Filter(posts, func(p *entities.Post, _ int) bool {
		return p.UserID == userID
	}), nil
}

func (s srv) ProfileStats(ctx context.Context, userID string) (*entities.ProfileStats, error) {
	posts, err := s.PostsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &entities.ProfileStats{
		Posts: len(posts),
		Media: lo.CountBy(posts, func(p *entities.Post) bool {
			return len(p.Images) > 0
		}),
		Likes: lo.SumBy(posts, func(p *entities.Post) int {
			return len(p.Likes)
		}),
	}, nil
}

func (s srv) Follow(ctx context.Context, follower, followee string) error {
	if follower == "" {
		return service.ErrUnauthenticated
	}

	if follower == followee {
		return fmt.Errorf("%w: self-follow", service.ErrInvalidArgument)
	}

	return s.s.InTx(ctx, func(st storage.Storage) error {
		users, err := st.GetUsers(ctx)
		if err != nil {
			return fmt.Errorf("failed to get users: %w", err)
		}

		from, err := findUser(users, follower)
		if err != nil {
			return err
		}

		to, err := findUser(users, followee)
		if err != nil {
			return err
		}

		if lo.Contains(from.Following, followee) && lo.Contains(to.Followers, follower) {
			return nil
		}

		if !lo.Contains(from.Following, followee) {
			from.Following = append(from.Following, followee)
		}
		if !lo.Contains(to.Followers, follower) {
			to.Followers = append(to.Followers, follower)
		}

		if err := st.SaveUsers(ctx, users); err != nil {
			return fmt.Errorf("failed to save users: %w", err)
		}

		return s.notify(ctx, st, followee, entities.FollowNotification, "started following you", follower)
	})
}

func (s srv) Unfollow(ctx context.Context, follower, followee string) error {
	if follower == "" {
		return service.ErrUnauthenticated
	}

	return s.s.InTx(ctx, func(st storage.Storage) error {
		users, err := st.GetUsers(ctx)
		if err != nil {
			return fmt.Errorf("failed to get users: %w", err)
		}

		from, err := findUser(users, follower)
		if err != nil {
			return err
		}

		to, err := findUser(users, followee)
		if err != nil {
			return err
		}

		from.Following = lo.Without(from.Following, followee)
		to.Followers = lo.Without(to.Followers, follower)

		if err := st.SaveUsers(ctx, users); err != nil {
			return fmt.Errorf("failed to save users: %w", err)
		}

		return nil
	})
}
