package impl

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Decentr-net/blockconnect/internal/entities"
	"github.com/Decentr-net/blockconnect/internal/ledger/stub"
	"github.com/Decentr-net/blockconnect/internal/service"
	"github.com/Decentr-net/blockconnect/internal/storage"
)

func TestService_ListPosts(t *testing.T) {
	s := newTestService(stub.New(0))

	require.NoError(t, s.s.SavePosts(ctx, []*entities.Post{
		{ID: "a", Timestamp: testNow.Add(-2 * time.Hour)},
		{ID: "b", Timestamp: testNow},
		{ID: "c", Timestamp: testNow.Add(-2 * time.Hour)},
		{ID: "d", Timestamp: testNow.Add(-time.Hour)},
	}))

	posts, err := s.ListPosts(ctx)
	require.NoError(t, err)

	ids := make([]string, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	require.Equal(t, []string{"b", "d", "a", "c"}, ids)
}

func TestService_ListPosts_Seeds(t *testing.T) {
	s := newTestService(stub.New(0))

	posts, err := s.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, len(storage.DefaultPosts()))

	for i := 1; i < len(posts); i++ {
		assert.False(t, posts[i].Timestamp.After(posts[i-1].Timestamp))
	}
}

func TestService_CreatePost(t *testing.T) {
	tt := []struct {
		name    string
		userID  string
		content string
		err     error
	}{
		{name: "no user", userID: "", content: "hello", err: service.ErrUnauthenticated},
		{name: "empty content", userID: "user-1", content: "", err: service.ErrInvalidArgument},
		{name: "blank content", userID: "user-1", content: " \n\t", err: service.ErrInvalidArgument},
		{name: "unknown user", userID: "user-unknown", content: "hello", err: service.ErrNotFound},
	}

	for i := range tt {
		tc := tt[i]

		t.Run(tc.name, func(t *testing.T) {
			s := newTestService(stub.New(0))

			_, err := s.CreatePost(ctx, tc.userID, tc.content, nil)
			require.True(t, errors.Is(err, tc.err), err)

			posts, err := s.ListPosts(ctx)
			require.NoError(t, err)
			require.Len(t, posts, len(storage.DefaultPosts()))
		})
	}

	t.Run("ok", func(t *testing.T) {
		s := newTestService(stub.New(0))

		p, err := s.CreatePost(ctx, "user-1", "gm", nil)
		require.NoError(t, err)
		require.Equal(t, &entities.Post{
			ID:        "post-test-1",
			UserID:    "user-1",
			Content:   "gm",
			Images:    []string{},
			Timestamp: testNow,
			Likes:     []string{},
			Comments:  []*entities.Comment{},
		}, p)

		stored, err := s.s.GetPosts(ctx)
		require.NoError(t, err)
		require.Len(t, stored, len(storage.DefaultPosts())+1)
		require.Equal(t, "post-test-1", stored[0].ID)

		posts, err := s.ListPosts(ctx)
		require.NoError(t, err)
		require.Equal(t, "post-test-1", posts[0].ID)
	})
}

func TestService_ToggleLike(t *testing.T) {
	s := newTestService(stub.New(0))

	before, err := s.s.GetPosts(ctx)
	require.NoError(t, err)

	p, err := s.ToggleLike(ctx, "post-2", "user-3")
	require.NoError(t, err)
	require.Equal(t, []string{"user-1", "user-3"}, p.Likes)

	nn, err := s.ListNotifications(ctx, "user-2")
	require.NoError(t, err)
	require.Len(t, nn, 1)
	require.Equal(t, entities.LikeNotification, nn[0].Type)
	require.Equal(t, "user-3", *nn[0].ActionUserID)

	p, err = s.ToggleLike(ctx, "post-2", "user-3")
	require.NoError(t, err)
	require.Equal(t, []string{"user-1"}, p.Likes)

	after, err := s.s.GetPosts(ctx)
	require.NoError(t, err)
	require.Equal(t, before, after)

	// unlike emits nothing
	nn, err = s.ListNotifications(ctx, "user-2")
	require.NoError(t, err)
	require.Len(t, nn, 1)
}

func TestService_ToggleLike_OwnPost(t *testing.T) {
	s := newTestService(stub.New(0))

	_, err := s.ToggleLike(ctx, "post-1", "user-1")
	require.NoError(t, err)

	nn, err := s.ListNotifications(ctx, "user-1")
	require.NoError(t, err)
	require.Empty(t, nn)
}

func TestService_ToggleLike_Errors(t *testing.T) {
	s := newTestService(stub.New(0))

	_, err := s.ToggleLike(ctx, "post-unknown", "user-1")
	require.True(t, errors.Is(err, service.ErrNotFound))

	_, err = s.ToggleLike(ctx, "post-1", "")
	require.True(t, errors.Is(err, service.ErrUnauthenticated))

	posts, err := s.s.GetPosts(ctx)
	require.NoError(t, err)
	require.Equal(t, storage.DefaultPosts(), posts)
}

func TestService_AddComment(t *testing.T) {
	s := newTestService(stub.New(0))

	c, err := s.AddComment(ctx, "post-2", "user-1", "nice")
	require.NoError(t, err)
	require.Equal(t, &entities.Comment{
		ID:        "comment-test-1",
		UserID:    "user-1",
		PostID:    "post-2",
		Content:   "nice",
		Timestamp: testNow,
		Likes:     []string{},
	}, c)

	posts, err := s.s.GetPosts(ctx)
	require.NoError(t, err)

	p, err := findPost(posts, "post-2")
	require.NoError(t, err)
	require.Len(t, p.Comments, 1)
	require.Equal(t, "comment-test-1", p.Comments[0].ID)

	nn, err := s.ListNotifications(ctx, "user-2")
	require.NoError(t, err)
	require.Len(t, nn, 1)
	require.Equal(t, entities.CommentNotification, nn[0].Type)

	_, err = s.AddComment(ctx, "post-2", "user-1", "  ")
	require.True(t, errors.Is(err, service.ErrInvalidArgument))

	_, err = s.AddComment(ctx, "post-unknown", "user-1", "nice")
	require.True(t, errors.Is(err, service.ErrNotFound))
}
