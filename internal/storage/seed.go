package storage

import (
	"time"

	"github.com/Decentr-net/blockconnect/internal/entities"
)

// DefaultUsers returns the users served when the users slot is empty.
func DefaultUsers() []*entities.User {
	return []*entities.User{
		{
			ID:            "user-1",
			WalletAddress: "0x1234567890abcdef",
			Username:      "cryptodev",
			DisplayName:   "Alex Chen",
			Bio:           "Blockchain developer & DeFi enthusiast. Building the future of decentralized web.",
			Avatar:        "https://images.pexels.com/photos/2379004/pexels-photo-2379004.jpeg?auto=compress&cs=tinysrgb&w=150&h=150&fit=crop",
			CoverImage:    "https://images.pexels.com/photos/844124/pexels-photo-844124.jpeg?auto=compress&cs=tinysrgb&w=800",
			Followers:     []string{"user-2"},
			Following:     []string{"user-2", "user-3"},
			Tokens:        1250,
			JoinDate:      seedTime("2024-01-15T10:00:00Z"),
			Verified:      true,
		},
		{
			ID:            "user-2",
			WalletAddress: "0xfedcba0987654321",
			Username:      "web3artist",
			DisplayName:   "Maya Rodriguez",
			Bio:           "Digital artist exploring NFTs and blockchain creativity. Creating art for the metaverse.",
			Avatar:        "https://images.pexels.com/photos/2169434/pexels-photo-2169434.jpeg?auto=compress&cs=tinysrgb&w=150&h=150&fit=crop",
			CoverImage:    "https://images.pexels.com/photos/2662116/pexels-photo-2662116.jpeg?auto=compress&cs=tinysrgb&w=800",
			Followers:     []string{"user-1", "user-3"},
			Following:     []string{"user-1"},
			Tokens:        890,
			JoinDate:      seedTime("2024-01-20T14:30:00Z"),
			Verified:      true,
		},
		{
			ID:            "user-3",
			WalletAddress: "0x9876543210abcdef",
			Username:      "defitrader",
			DisplayName:   "Jordan Kim",
			Bio:           "DeFi trader and yield farmer. Sharing insights about decentralized finance.",
			Avatar:        "https://images.pexels.com/photos/2379005/pexels-photo-2379005.jpeg?auto=compress&cs=tinysrgb&w=150&h=150&fit=crop",
			CoverImage:    "https://images.pexels.com/photos/3861969/pexels-photo-3861969.jpeg?auto=compress&cs=tinysrgb&w=800",
			Followers:     []string{"user-2"},
			Following:     []string{"user-1", "user-2"},
			Tokens:        2100,
			JoinDate:      seedTime("2024-01-10T08:15:00Z"),
			Verified:      false,
		},
	}
}

// DefaultPosts returns the posts served when the posts slot is empty.
func DefaultPosts() []*entities.Post {
	return []*entities.Post{
		{
			ID:        "post-1",
			UserID:    "user-1",
			Content:   "Just deployed my first smart contract on the testnet! The future of decentralized applications is here. Building something amazing with #BlockConnect 🚀",
			Images:    []string{"https://images.pexels.com/photos/844124/pexels-photo-844124.jpeg?auto=compress&cs=tinysrgb&w=600"},
			Timestamp: seedTime("2024-01-25T15:30:00Z"),
			Likes:     []string{"user-2", "user-3"},
			Comments: []*entities.Comment{
				{
					ID:        "comment-1",
					UserID:    "user-2",
					PostID:    "post-1",
					Content:   "Amazing work! Love seeing the blockchain community grow",
					Timestamp: seedTime("2024-01-25T16:00:00Z"),
					Likes:     []string{"user-1"},
				},
			},
			Tokens:    25,
			Encrypted: false,
		},
		{
			ID:        "post-2",
			UserID:    "user-2",
			Content:   "New digital art collection dropping soon! Each piece will be minted as an NFT on the blockchain. Art meets technology 🎨✨",
			Images:    []string{"https://images.pexels.com/photos/2662116/pexels-photo-2662116.jpeg?auto=compress&cs=tinysrgb&w=600"},
			Timestamp: seedTime("2024-01-25T12:15:00Z"),
			Likes:     []string{"user-1"},
			Comments:  []*entities.Comment{},
			Tokens:    15,
			Encrypted: false,
		},
		{
			ID:        "post-3",
			UserID:    "user-3",
			Content:   "Market analysis: DeFi yields are looking promising this week. Always DYOR and manage your risk. What protocols are you watching? 📈",
			Images:    []string{},
			Timestamp: seedTime("2024-01-25T09:45:00Z"),
			Likes:     []string{"user-1", "user-2"},
			Comments: []*entities.Comment{
				{
					ID:        "comment-2",
					UserID:    "user-1",
					PostID:    "post-3",
					Content:   "Thanks for the insights! Been watching Aave closely",
					Timestamp: seedTime("2024-01-25T10:30:00Z"),
					Likes:     []string{"user-3"},
				},
			},
			Tokens:    30,
			Encrypted: false,
		},
	}
}

// DefaultCommunities returns the communities served when the communities slot is empty.
func DefaultCommunities() []*entities.Community {
	return []*entities.Community{
		{
			ID:            "community-1",
			Name:          "Blockchain Developers",
			Description:   "A community for blockchain developers to share knowledge and collaborate",
			Image:         "https://images.pexels.com/photos/844124/pexels-photo-844124.jpeg?auto=compress&cs=tinysrgb&w=300",
			CreatorID:     "user-1",
			Members:       []string{"user-1", "user-2", "user-3"},
			Posts:         []string{"post-1"},
			Private:       false,
			TokenGated:    true,
			MinimumTokens: 100,
		},
		{
			ID:            "community-2",
			Name:          "NFT Artists",
			Description:   "Digital artists creating and trading NFTs",
			Image:         "https://images.pexels.com/photos/2662116/pexels-photo-2662116.jpeg?auto=compress&cs=tinysrgb&w=300",
			CreatorID:     "user-2",
			Members:       []string{"user-1", "user-2"},
			Posts:         []string{"post-2"},
			Private:       false,
			TokenGated:    false,
			MinimumTokens: 0,
		},
	}
}

func seedTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}

	return t
}
