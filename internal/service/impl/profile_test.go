package impl

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Decentr-net/blockconnect/internal/entities"
	"github.com/Decentr-net/blockconnect/internal/ledger/stub"
	"github.com/Decentr-net/blockconnect/internal/service"
)

func TestService_GetUser(t *testing.T) {
	s := newTestService(stub.New(0))

	u, err := s.GetUser(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, "cryptodev", u.Username)

	_, err = s.GetUser(ctx, "user-unknown")
	require.True(t, errors.Is(err, service.ErrNotFound))
}

func TestService_ListUsers(t *testing.T) {
	s := newTestService(stub.New(0))

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)

	u := connect(t, s)

	users, err = s.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 4)
	require.Equal(t, u.ID, users[3].ID)
}

func TestService_ProfileStats(t *testing.T) {
	s := newTestService(stub.New(0))

	_, err := s.CreatePost(ctx, "user-1", "text only", nil)
	require.NoError(t, err)
	_, err = s.CreatePost(ctx, "user-1", "two pics", []string{"a.png", "b.png"})
	require.NoError(t, err)

	posts, err := s.PostsByUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, posts, 3)
	for _, p := range posts {
		require.Equal(t, "user-1", p.UserID)
	}

	stats, err := s.ProfileStats(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, &entities.ProfileStats{Posts: 3, Media: 2, Likes: 2}, stats)

	stats, err = s.ProfileStats(ctx, "user-unknown")
	require.NoError(t, err)
	require.Equal(t, &entities.ProfileStats{}, stats)
}

func TestService_FollowUnfollow(t *testing.T) {
	s := newTestService(stub.New(0))

	u := connect(t, s)

	require.NoError(t, s.Follow(ctx, u.ID, "user-1"))

	from, err := s.GetUser(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"user-1"}, from.Following)

	to, err := s.GetUser(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, []string{"user-2", u.ID}, to.Followers)

	// repeated follow changes nothing and does not notify twice
	require.NoError(t, s.Follow(ctx, u.ID, "user-1"))

	nn, err := s.ListNotifications(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, nn, 1)
	require.Equal(t, entities.FollowNotification, nn[0].Type)
	require.Equal(t, u.ID, *nn[0].ActionUserID)

	require.NoError(t, s.Unfollow(ctx, u.ID, "user-1"))

	from, err = s.GetUser(ctx, u.ID)
	require.NoError(t, err)
	require.Empty(t, from.Following)

	to, err = s.GetUser(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, []string{"user-2"}, to.Followers)
}

func TestService_Follow_Errors(t *testing.T) {
	s := newTestService(stub.New(0))

	tt := []struct {
		name     string
		follower string
		followee string
		err      error
	}{
		{name: "self", follower: "user-1", followee: "user-1", err: service.ErrInvalidArgument},
		{name: "no session", follower: "", followee: "user-1", err: service.ErrUnauthenticated},
		{name: "unknown followee", follower: "user-1", followee: "user-unknown", err: service.ErrNotFound},
	}

	for i := range tt {
		tc := tt[i]

		t.Run(tc.name, func(t *testing.T) {
			require.True(t, errors.Is(s.Follow(ctx, tc.follower, tc.followee), tc.err))
		})
	}
}
