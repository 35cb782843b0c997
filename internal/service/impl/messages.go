package impl

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/Decentr-net/blockconnect/internal/entities"
	"github.com/Decentr-net/blockconnect/internal/service"
	"github.com/Decentr-net/blockconnect/internal/storage"
)

func (s srv) ListConversationPartners(ctx context.Context, userID, search string) ([]*service.Partner, error) {
	if userID == "" {
		return nil, service.ErrUnauthenticated
	}

	users, err := s.s.GetUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}

	messages, err := s.s.GetMessages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get messages: %w", err)
	}

	search = strings.ToLower(search)

	users = lo.Filter(users, func(u *entities.User, _ int) bool {
		if u.ID == userID {
			return false
		}

		return strings.Contains(strings.ToLower(u.DisplayName), search) ||
			strings.Contains(strings.ToLower(u.Username), search)
	})

	return lo.Map(users, func(u *entities.User, _ int) *service.Partner {
		p := &service.Partner{User: u}
		if c := conversation(messages, userID, u.ID); len(c) > 0 {
			p.LastMessage = c[len(c)-1]
		}
		return p
	}), nil
}

func (s srv) Conversation(ctx context.Context, a, b string) ([]*entities.Message, error) {
	messages, err := s.s.GetMessages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get messages: %w", err)
	}

	return conversation(messages, a, b), nil
}

func (s srv) LastMessage(ctx context.Context, a, b string) (*entities.Message, error) {
	c, err := s.Conversation(ctx, a, b)
	if err != nil {
		return nil, err
	}

	if len(c) == 0 {
		return nil, fmt.Errorf("%w: no messages", service.ErrNotFound)
	}

	return c[len(c)-1], nil
}

func (s srv) SendMessage(ctx context.Context, sender, receiver, content string) (*entities.Message, error) {
	if sender == "" {
		return nil, service.ErrUnauthenticated
	}

	if receiver == "" {
		return nil, fmt.Errorf("%w: empty receiver", service.ErrInvalidArgument)
	}

	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: empty content", service.ErrInvalidArgument)
	}

	m := &entities.Message{
		ID:         s.newID("msg"),
		SenderID:   sender,
		ReceiverID: receiver,
		Content:    content,
		Timestamp:  s.timestamp(),
		Encrypted:  true,
		Read:       false,
	}

	if err := s.s.InTx(ctx, func(st storage.Storage) error {
		users, err := st.GetUsers(ctx)
		if err != nil {
			return fmt.Errorf("failed to get users: %w", err)
		}

		for _, id := range []string{sender, receiver} {
			if _, err := findUser(users, id); err != nil {
				return err
			}
		}

		messages, err := st.GetMessages(ctx)
		if err != nil {
			return fmt.Errorf("failed to get messages: %w", err)
		}

		if err := st.SaveMessages(ctx, append(messages, m)); err != nil {
			return fmt.Errorf("failed to save messages: %w", err)
		}

		return s.notify(ctx, st, receiver, entities.MessageNotification, "sent you a message", sender)
	}); err != nil {
		return nil, err
	}

	return m, nil
}

// conversation returns messages exchanged between a and b in either direction, oldest first.
func conversation(messages []*entities.Message, a, b string) []*entities.Message {
	out := lo.Filter(messages, func(m *entities.Message, _ int) bool {
		return (m.SenderID == a && m.ReceiverID == b) || (m.SenderID == b && m.ReceiverID == a)
	})

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})

	return out
}
