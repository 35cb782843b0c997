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

func (s srv) ListPosts(ctx context.Context) ([]*entities.Post, error) {
	posts, err := s.s.GetPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get posts: %w", err)
	}

	sortPostsDesc(posts)

	return posts, nil
}

func (s srv) CreatePost(ctx context.Context, userID, content string, images []string) (*entities.Post, error) {
	if userID == "" {
		return nil, service.ErrUnauthenticated
	}

	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: empty content", service.ErrInvalidArgument)
	}

	if images == nil {
		images = []string{}
	}

	var post *entities.Post

	if err := s.s.InTx(ctx, func(st storage.Storage) error {
		users, err := st.GetUsers(ctx)
		if err != nil {
			return fmt.Errorf("failed to get users: %w", err)
		}

		if _, err := findUser(users, userID); err != nil {
			return err
		}

		posts, err := st.GetPosts(ctx)
		if err != nil {
			return fmt.Errorf("failed to get posts: %w", err)
		}

		post = &entities.Post{
			ID:        s.newID("post"),
			UserID:    userID,
			Content:   content,
			Images:    images,
			Timestamp: s.timestamp(),
			Likes:     []string{},
			Comments:  []*entities.Comment{},
			Tokens:    0,
			Encrypted: false,
		}

		if err := st.SavePosts(ctx, append([]*entities.Post{post}, posts...)); err != nil {
			return fmt.Errorf("failed to save posts: %w", err)
		}

		return nil
	}); err != nil {
		return nil, err
	}

	return post, nil
}

func (s srv) ToggleLike(ctx context.Context, postID, userID string) (*entities.Post, error) {
	if userID == "" {
		return nil, service.ErrUnauthenticated
	}

	var post *entities.Post

	if err := s.s.InTx(ctx, func(st storage.Storage) error {
		posts, err := st.GetPosts(ctx)
		if err != nil {
			return fmt.Errorf("failed to get posts: %w", err)
		}

		p, err := findPost(posts, postID)
		if err != nil {
			return err
		}

		liked := lo.Contains(p.Likes, userID)
		if liked {
			p.Likes = lo.Without(p.Likes, userID)
		} else {
			p.Likes = append(p.Likes, userID)
		}

		if err := st.SavePosts(ctx, posts); err != nil {
			return fmt.Errorf("failed to save posts: %w", err)
		}

		post = p

		if liked || p.UserID == userID {
			return nil
		}

		return s.notify(ctx, st, p.UserID, entities.LikeNotification, "liked your post", userID)
	}); err != nil {
		return nil, err
	}

	return post, nil
}

func (s srv) AddComment(ctx context.Context, postID, userID, content string) (*entities.Comment, error) {
	if userID == "" {
		return nil, service.ErrUnauthenticated
	}

	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: empty content", service.ErrInvalidArgument)
	}

	var comment *entities.Comment

	if err := s.s.InTx(ctx, func(st storage.Storage) error {
		users, err := st.GetUsers(ctx)
		if err != nil {
			return fmt.Errorf("failed to get users: %w", err)
		}

		if _, err := findUser(users, userID); err != nil {
			return err
		}

		posts, err := st.GetPosts(ctx)
		if err != nil {
			return fmt.Errorf("failed to get posts: %w", err)
		}

		p, err := findPost(posts, postID)
		if err != nil {
			return err
		}

		comment = &entities.Comment{
			ID:        s.newID("comment"),
			UserID:    userID,
			PostID:    postID,
			Content:   content,
			Timestamp: s.timestamp(),
			Likes:     []string{},
		}
		p.Comments = append(p.Comments, comment)

		if err := st.SavePosts(ctx, posts); err != nil {
			return fmt.Errorf("failed to save posts: %w", err)
		}

		if p.UserID == userID {
			return nil
		}

		return s.notify(ctx, st, p.UserID, entities.CommentNotification, "commented on your post", userID)
	}); err != nil {
		return nil, err
	}

	return comment, nil
}
