package server

import (
	"github.com/Decentr-net/blockconnect/internal/entities"
)

// Error ...
// swagger:model
type Error struct {
	Error string `json:"error"`
}

// Post is a post with its age rendered for display.
// swagger:model
type Post struct {
	*entities.Post
	// DisplayTime is "Just now", "{h}h ago", "{d}d ago" or a calendar date.
	DisplayTime string `json:"displayTime"`
}

// ListPostsResponse ...
// swagger:model
type ListPostsResponse struct {
	Posts []Post `json:"posts"`
	// Profiles dictionary where key is a user id and value is a profile.
	Profiles map[string]*entities.User `json:"profiles"`
}

// Partner ...
// swagger:model
type Partner struct {
	User        *entities.User    `json:"user"`
	LastMessage *entities.Message `json:"lastMessage,omitempty"`
	// Day is "Today", "Yesterday" or a calendar date of the last message.
	Day string `json:"day,omitempty"`
}

// CreatePostRequest ...
// swagger:model
type CreatePostRequest struct {
	Content string   `json:"content" validate:"required"`
	Images  []string `json:"images" validate:"omitempty,dive,url"`
}

// ContentRequest is a body of comment and message requests.
// swagger:model
type ContentRequest struct {
	Content string `json:"content" validate:"required"`
}

// CreateCommunityRequest ...
// swagger:model
type CreateCommunityRequest struct {
	Name          string `json:"name" validate:"required"`
	Description   string `json:"description"`
	Private       bool   `json:"private"`
	TokenGated    bool   `json:"tokenGated"`
	MinimumTokens int64  `json:"minimumTokens" validate:"gte=0"`
}

// RewardTokensRequest ...
// swagger:model
type RewardTokensRequest struct {
	Amount int64 `json:"amount" validate:"gt=0"`
}
