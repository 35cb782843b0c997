package server

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/samber/lo"

	"github.com/Decentr-net/blockconnect/internal/entities"
	"github.com/Decentr-net/blockconnect/internal/service"
)

func (s server) currentUser(w http.ResponseWriter, r *http.Request) (*entities.User, bool) {
	u, err := s.s.CurrentUser(r.Context())
	if err != nil {
		writeServiceError(r.Context(), w, err, "get current user")
		return nil, false
	}

	return u, true
}

func (s server) connect(w http.ResponseWriter, r *http.Request) {
	// swagger:operation POST /session Session Connect
	//
	// Connects a wallet and makes its user current. A user is registered on the first connect of a wallet.
	//
	// ---
	// produces:
	// - application/json
	// responses:
	//   '200':
	//     description: connected user
	//     schema:
	//       "$ref": "#/definitions/User"
	//   '500':
	//     description: internal server error
	//     schema:
	//       "$ref": "#/definitions/Error"

	u, err := s.s.Connect(r.Context())
	if err != nil {
		writeServiceError(r.Context(), w, err, "connect wallet")
		return
	}

	writeOK(w, http.StatusOK, u)
}

func (s server) getSession(w http.ResponseWriter, r *http.Request) {
	u, ok := s.currentUser(w, r)
	if !ok {
		return
	}

	writeOK(w, http.StatusOK, u)
}

func (s server) disconnect(w http.ResponseWriter, r *http.Request) {
	if err := s.s.Disconnect(r.Context()); err != nil {
		writeServiceError(r.Context(), w, err, "disconnect")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s server) getUser(w http.ResponseWriter, r *http.Request) {
	u, err := s.s.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(r.Context(), w, err, "get user")
		return
	}

	writeOK(w, http.StatusOK, u)
}

func (s server) listUserPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := s.s.PostsByUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(r.Context(), w, err, "list user posts")
		return
	}

	writeOK(w, http.StatusOK, s.toAPIPosts(posts))
}

func (s server) getProfileStats(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /users/{id}/stats Profiles GetProfileStats
	//
	// Returns count of posts, posts with media and received likes.
	// Responses are cached for 10 seconds, so stats may lag behind new posts and likes for that long.
	//
	// ---
	// produces:
	// - application/json
	// parameters:
	// - name: id
	//   in: path
	//   required: true
	//   type: string
	// responses:
	//   '200':
	//     description: Stats
	//     schema:
	//       "$ref": "#/definitions/ProfileStats"
	//   '500':
	//     description: internal server error
	//     schema:
	//       "$ref": "#/definitions/Error"

	stats, err := s.s.ProfileStats(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(r.Context(), w, err, "get profile stats")
		return
	}

	writeOK(w, http.StatusOK, stats)
}

func (s server) follow(w http.ResponseWriter, r *http.Request) {
	u, ok := s.currentUser(w, r)
	if !ok {
		return
	}

	if err := s.s.Follow(r.Context(), u.ID, chi.URLParam(r, "id")); err != nil {
		writeServiceError(r.Context(), w, err, "follow")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s server) unfollow(w http.ResponseWriter, r *http.Request) {
	u, ok := s.currentUser(w, r)
	if !ok {
		return
	}

	if err := s.s.Unfollow(r.Context(), u.ID, chi.URLParam(r, "id")); err != nil {
		writeServiceError(r.Context(), w, err, "unfollow")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s server) rewardTokens(w http.ResponseWriter, r *http.Request) {
	var req RewardTokensRequest
	if err := bind(r, &req); err != nil {
		writeServiceError(r.Context(), w, err, "reward tokens")
		return
	}

	if err := s.s.RewardTokens(r.Context(), chi.URLParam(r, "id"), req.Amount); err != nil {
		writeServiceError(r.Context(), w, err, "reward tokens")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s server) listPosts(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /posts Feed ListPosts
	//
	// Returns all posts newest first with their authors.
	//
	// ---
	// produces:
	// - application/json
	// responses:
	//   '200':
	//     description: Posts
	//     schema:
	//       "$ref": "#/definitions/ListPostsResponse"
	//   '500':
	//     description: internal server error
	//     schema:
	//       "$ref": "#/definitions/Error"

	posts, err := s.s.ListPosts(r.Context())
	if err != nil {
		writeServiceError(r.Context(), w, err, "list posts")
		return
	}

	users, err := s.s.ListUsers(r.Context())
	if err != nil {
		writeServiceError(r.Context(), w, err, "list users")
		return
	}

	authors := lo.Map(posts, func(p *entities.Post, _ int) string { return p.UserID })
	profiles := lo.KeyBy(lo.Filter(users, func(u *entities.User, _ int) bool {
		return lo.Contains(authors, u.ID)
	}), func(u *entities.User) string {
		return u.ID
	})

	writeOK(w, http.StatusOK, ListPostsResponse{
		Posts:    s.toAPIPosts(posts),
		Profiles: profiles,
	})
}

func (s server) createPost(w http.ResponseWriter, r *http.Request) {
	u, ok := s.currentUser(w, r)
	if !ok {
		return
	}

	var req CreatePostRequest
	if err := bind(r, &req); err != nil {
		writeServiceError(r.Context(), w, err, "create post")
		return
	}

	p, err := s.s.CreatePost(r.Context(), u.ID, req.Content, req.Images)
	if err != nil {
		writeServiceError(r.Context(), w, err, "create post")
		return
	}

	writeOK(w, http.StatusCreated, s.toAPIPost(p))
}

func (s server) toggleLike(w http.ResponseWriter, r *http.Request) {
	u, ok := s.currentUser(w, r)
	if !ok {
		return
	}

	p, err := s.s.ToggleLike(r.Context(), chi.URLParam(r, "id"), u.ID)
	if err != nil {
		writeServiceError(r.Context(), w, err, "toggle like")
		return
	}

	writeOK(w, http.StatusOK, s.toAPIPost(p))
}

func (s server) addComment(w http.ResponseWriter, r *http.Request) {
	u, ok := s.currentUser(w, r)
	if !ok {
		return
	}

	var req ContentRequest
	if err := bind(r, &req); err != nil {
		writeServiceError(r.Context(), w, err, "add comment")
		return
	}

	c, err := s.s.AddComment(r.Context(), chi.URLParam(r, "id"), u.ID, req.Content)
	if err != nil {
		writeServiceError(r.Context(), w, err, "add comment")
		return
	}

	writeOK(w, http.StatusCreated, c)
}

func (s server) listConversations(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /conversations Messages ListConversations
	//
	// Returns users the current user can talk to with the last exchanged message.
	//
	// ---
	// produces:
	// - application/json
	// parameters:
	// - name: search
	//   description: filters partners by display name or username, case-insensitive
	//   in: query
	//   required: false
	//   example: maya
	// responses:
	//   '200':
	//     description: Partners
	//     schema:
	//       type: array
	//       items:
	//         "$ref": "#/definitions/Partner"
	//   '401':
	//     description: wallet is not connected
	//     schema:
	//       "$ref": "#/definitions/Error"

	u, ok := s.currentUser(w, r)
	if !ok {
		return
	}

	pp, err := s.s.ListConversationPartners(r.Context(), u.ID, r.URL.Query().Get("search"))
	if err != nil {
		writeServiceError(r.Context(), w, err, "list conversation partners")
		return
	}

	now := s.now()
	writeOK(w, http.StatusOK, lo.Map(pp, func(p *service.Partner, _ int) Partner {
		out := Partner{User: p.User, LastMessage: p.LastMessage}
		if p.LastMessage != nil {
			out.Day = service.ConversationDay(p.LastMessage.Timestamp, now)
		}
		return out
	}))
}

func (s server) getConversation(w http.ResponseWriter, r *http.Request) {
	u, ok := s.currentUser(w, r)
	if !ok {
		return
	}

	messages, err := s.s.Conversation(r.Context(), u.ID, chi.URLParam(r, "userID"))
	if err != nil {
		writeServiceError(r.Context(), w, err, "get conversation")
		return
	}

	writeOK(w, http.StatusOK, messages)
}

func (s server) sendMessage(w http.ResponseWriter, r *http.Request) {
	u, ok := s.currentUser(w, r)
	if !ok {
		return
	}

	var req ContentRequest
	if err := bind(r, &req); err != nil {
		writeServiceError(r.Context(), w, err, "send message")
		return
	}

	m, err := s.s.SendMessage(r.Context(), u.ID, chi.URLParam(r, "userID"), req.Content)
	if err != nil {
		writeServiceError(r.Context(), w, err, "send message")
		return
	}

	writeOK(w, http.StatusCreated, m)
}

func (s server) listCommunities(w http.ResponseWriter, r *http.Request) {
	communities, err := s.s.ListCommunities(r.Context(), r.URL.Query().Get("filter"))
	if err != nil {
		writeServiceError(r.Context(), w, err, "list communities")
		return
	}

	writeOK(w, http.StatusOK, communities)
}

func (s server) createCommunity(w http.ResponseWriter, r *http.Request) {
	u, ok := s.currentUser(w, r)
	if !ok {
		return
	}

	var req CreateCommunityRequest
	if err := bind(r, &req); err != nil {
		writeServiceError(r.Context(), w, err, "create community")
		return
	}

	c, err := s.s.CreateCommunity(r.Context(), u.ID, service.CreateCommunityParams{
		Name:          req.Name,
		Description:   req.Description,
		Private:       req.Private,
		TokenGated:    req.TokenGated,
		MinimumTokens: req.MinimumTokens,
	})
	if err != nil {
		writeServiceError(r.Context(), w, err, "create community")
		return
	}

	writeOK(w, http.StatusCreated, c)
}

func (s server) joinCommunity(w http.ResponseWriter, r *http.Request) {
	// swagger:operation POST /communities/{id}/members Communities JoinCommunity
	//
	// Adds the current user to community members. Token-gated communities require a balance not less than the minimum.
	//
	// ---
	// produces:
	// - application/json
	// responses:
	//   '200':
	//     description: Community
	//     schema:
	//       "$ref": "#/definitions/Community"
	//   '403':
	//     description: not enough tokens
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '404':
	//     description: community not found
	//     schema:
	//       "$ref": "#/definitions/Error"

	u, ok := s.currentUser(w, r)
	if !ok {
		return
	}

	c, err := s.s.JoinCommunity(r.Context(), chi.URLParam(r, "id"), u.ID)
	if err != nil {
		writeServiceError(r.Context(), w, err, "join community")
		return
	}

	writeOK(w, http.StatusOK, c)
}

func (s server) leaveCommunity(w http.ResponseWriter, r *http.Request) {
	u, ok := s.currentUser(w, r)
	if !ok {
		return
	}

	c, err := s.s.LeaveCommunity(r.Context(), chi.URLParam(r, "id"), u.ID)
	if err != nil {
		writeServiceError(r.Context(), w, err, "leave community")
		return
	}

	writeOK(w, http.StatusOK, c)
}

func (s server) listNotifications(w http.ResponseWriter, r *http.Request) {
	u, ok := s.currentUser(w, r)
	if !ok {
		return
	}

	nn, err := s.s.ListNotifications(r.Context(), u.ID)
	if err != nil {
		writeServiceError(r.Context(), w, err, "list notifications")
		return
	}

	writeOK(w, http.StatusOK, nn)
}

func (s server) markNotificationsRead(w http.ResponseWriter, r *http.Request) {
	u, ok := s.currentUser(w, r)
	if !ok {
		return
	}

	if err := s.s.MarkNotificationsRead(r.Context(), u.ID); err != nil {
		writeServiceError(r.Context(), w, err, "mark notifications read")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s server) toAPIPost(p *entities.Post) Post {
	return Post{
		Post:        p,
		DisplayTime: service.RelativeTime(p.Timestamp, s.now()),
	}
}

func (s server) toAPIPosts(posts []*entities.Post) []Post {
	out := make([]Post, len(posts))
	for i, p := range posts {
		out[i] = s.toAPIPost(p)
	}

	return out
}
