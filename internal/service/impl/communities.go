package impl

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/Decentr-net/blockconnect/internal/entities"
	"github.com/Decentr-net/blockconnect/internal/service"
	"github.com/Decentr-net/blockconnect/internal/storage"
)

const communityImage = "https://images.pexels.com/photos/844124/pexels-photo-844124.jpeg?auto=compress&cs=tinysrgb&w=300"

func (s srv) ListCommunities(ctx context.Context, filter string) ([]*entities.Community, error) {
	communities, err := s.s.GetCommunities(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get communities: %w", err)
	}

	filter = strings.ToLower(filter)

	return lo.Filter(communities, func(c *entities.Community, _ int) bool {
		return strings.Contains(strings.ToLower(c.Name), filter) ||
			strings.Contains(strings.ToLower(c.Description), filter)
	}), nil
}

func (s srv) CreateCommunity(ctx context.Context, creatorID string, p service.CreateCommunityParams) (*entities.Community, error) {
	if creatorID == "" {
		return nil, service.ErrUnauthenticated
	}

	if strings.TrimSpace(p.Name) == "" {
		return nil, fmt.Errorf("%w: empty name", service.ErrInvalidArgument)
	}

	if p.MinimumTokens < 0 {
		return nil, fmt.Errorf("%w: negative minimum tokens", service.ErrInvalidArgument)
	}

	c := &entities.Community{
		ID:            s.newID("community"),
		Name:          p.Name,
		Description:   p.Description,
		Image:         communityImage,
		CreatorID:     creatorID,
		Members:       []string{creatorID},
		Posts:         []string{},
		Private:       p.Private,
		TokenGated:    p.TokenGated,
		MinimumTokens: p.MinimumTokens,
	}

	if err := s.s.InTx(ctx, func(st storage.Storage) error {
		communities, err := st.GetCommunities(ctx)
		if err != nil {
			return fmt.Errorf("failed to get communities: %w", err)
		}

		if err := st.SaveCommunities(ctx, append(communities, c)); err != nil {
			return fmt.Errorf("failed to save communities: %w", err)
		}

		return nil
	}); err != nil {
		return nil, err
	}

	log.WithField("community", c.ID).WithField("creator", creatorID).Info("community created")

	return c, nil
}

func (s srv) JoinCommunity(ctx context.Context, communityID, userID string) (*entities.Community, error) {
	if userID == "" {
		return nil, service.ErrUnauthenticated
	}

	var community *entities.Community

	if err := s.s.InTx(ctx, func(st storage.Storage) error {
		communities, err := st.GetCommunities(ctx)
		if err != nil {
			return fmt.Errorf("failed to get communities: %w", err)
		}

		c, err := findCommunity(communities, communityID)
		if err != nil {
			return err
		}

		community = c

		if c.IsMember(userID) {
			return nil
		}

		if c.TokenGated {
			users, err := st.GetUsers(ctx)
			if err != nil {
				return fmt.Errorf("failed to get users: %w", err)
			}

			u, err := findUser(users, userID)
			if err != nil {
				return err
			}

			if !c.CanJoin(u.Tokens) {
				return fmt.Errorf("%w: you need at least %d BCT tokens to join this community",
					service.ErrIneligible, c.MinimumTokens)
			}
		}

		c.Members = append(c.Members, userID)

		if err := st.SaveCommunities(ctx, communities); err != nil {
			return fmt.Errorf("failed to save communities: %w", err)
		}

		return nil
	}); err != nil {
		return nil, err
	}

	return community, nil
}

func (s srv) LeaveCommunity(ctx context.Context, communityID, userID string) (*entities.Community, error) {
	if userID == "" {
		return nil, service.ErrUnauthenticated
	}

	var community *entities.Community

	if err := s.s.InTx(ctx, func(st storage.Storage) error {
		communities, err := st.GetCommunities(ctx)
		if err != nil {
			return fmt.Errorf("failed to get communities: %w", err)
		}

		c, err := findCommunity(communities, communityID)
		if err != nil {
			return err
		}

		c.Members = lo.Without(c.Members, userID)
		community = c

		if err := st.SaveCommunities(ctx, communities); err != nil {
			return fmt.Errorf("failed to save communities: %w", err)
		}

		return nil
	}); err != nil {
		return nil, err
	}

	return community, nil
}
