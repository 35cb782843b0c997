// Package entities contains main entities of service.
package entities

import (
	"time"
)

// StartingTokens is the BCT balance granted to every newly registered user.
const StartingTokens int64 = 100

// User ...
type User struct {
	ID            string    `json:"id"`
	WalletAddress string    `json:"walletAddress"`
	Username      string    `json:"username"`
	DisplayName   string    `json:"displayName"`
	Bio           string    `json:"bio"`
	Avatar        string    `json:"avatar"`
	CoverImage    string    `json:"coverImage"`
	Followers     []string  `json:"followers"`
	Following     []string  `json:"following"`
	Tokens        int64     `json:"tokens"`
	JoinDate      time.Time `json:"joinDate"`
	Verified      bool      `json:"verified"`
}

// Post ...
type Post struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Content   string     `json:"content"`
	Images    []string   `json:"images"`
	Timestamp time.Time  `json:"timestamp"`
	Likes     []string   `json:"likes"`
	Comments  []*Comment `json:"comments"`
	Tokens    int64      `json:"tokens"`
	Encrypted bool       `json:"encrypted"`
}

// Comment ...
type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	PostID    string    `json:"postId"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Likes     []string  `json:"likes"`
}

// Message is a direct message between two users.
// Encrypted is a declarative flag, no encryption is performed.
type Message struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"senderId"`
	ReceiverID string    `json:"receiverId"`
	Content    string    `json:"content"`
	Timestamp  time.Time `json:"timestamp"`
	Encrypted  bool      `json:"encrypted"`
	Read       bool      `json:"read"`
}

// Community ...
// Posts is a snapshot taken at creation time and is not kept in sync with authored posts.
type Community struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Image         string   `json:"image"`
	CreatorID     string   `json:"creatorId"`
	Members       []string `json:"members"`
	Posts         []string `json:"posts"`
	Private       bool     `json:"private"`
	TokenGated    bool     `json:"tokenGated"`
	MinimumTokens int64    `json:"minimumTokens"`
}

// NotificationType ...
type NotificationType string

const (
	// LikeNotification ...
	LikeNotification NotificationType = "like"
	// CommentNotification ...
	CommentNotification NotificationType = "comment"
	// FollowNotification ...
	FollowNotification NotificationType = "follow"
	// MessageNotification ...
	MessageNotification NotificationType = "message"
	// TokenNotification ...
	TokenNotification NotificationType = "token"
)

// Notification ...
type Notification struct {
	ID           string           `json:"id"`
	UserID       string           `json:"userId"`
	Type         NotificationType `json:"type"`
	Content      string           `json:"content"`
	Timestamp    time.Time        `json:"timestamp"`
	Read         bool             `json:"read"`
	ActionUserID *string          `json:"actionUserId,omitempty"`
}

// ProfileStats is read-side aggregation over the posts of a single user.
type ProfileStats struct {
	Posts int `json:"posts"`
	Media int `json:"media"`
	Likes int `json:"likes"`
}

// IsMember reports whether userID is in the community members.
func (c *Community) IsMember(userID string) bool {
	for _, v := range c.Members {
		if v == userID {
			return true
		}
	}

	return false
}

// CanJoin reports whether a user holding tokens passes the community token gate.
func (c *Community) CanJoin(tokens int64) bool {
	return !c.TokenGated || tokens >= c.MinimumTokens
}
