// Package server BlockConnect
//
// The BlockConnect API gives access to the social network entities (posts, comments, messages, communities, profiles)
// on behalf of the wallet connected in the current session.
//
//     Schemes: http
//     BasePath: /v1
//     Version: 1.0.0
//
//     Produces:
//     - application/json
//     Consumes:
//     - application/json
//
// swagger:meta
package server

import (
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"

	mm "github.com/Decentr-net/blockconnect/internal/middleware"
	"github.com/Decentr-net/blockconnect/internal/service"
)

//go:generate swagger generate spec -t swagger -m -c . -o ../../static/swagger.json

const maxBodySize = 64 * 1024

type server struct {
	s          service.Service
	now        func() time.Time
	adminToken string
}

// SetupRouter setups handlers to chi router.
// adminToken guards operator routes, they are disabled when it is empty.
func SetupRouter(s service.Service, r chi.Router, timeout time.Duration, adminToken string) {
	r.Use(
		middleware.RequestID,
		mm.Logger,
		middleware.StripSlashes,
		cors.AllowAll().Handler,
		middleware.Recoverer,
		middleware.Timeout(timeout),
		mm.BodyLimiter(maxBodySize),
	)

	srv := server{
		s:          s,
		now:        time.Now,
		adminToken: adminToken,
	}

	r.Route("/v1", srv.routes)
}

func (s server) routes(r chi.Router) {
	r.Post("/session", s.connect)
	r.Get("/session", s.getSession)
	r.Delete("/session", s.disconnect)

	r.Get("/users/{id}", s.getUser)
	r.Get("/users/{id}/posts", s.listUserPosts)
	r.Get("/users/{id}/stats", mm.Cached(10*time.Second, s.getProfileStats))
	r.Post("/users/{id}/follow", s.follow)
	r.Delete("/users/{id}/follow", s.unfollow)
	r.With(mm.RequireToken(s.adminToken)).Post("/users/{id}/tokens", s.rewardTokens)

	r.Get("/posts", s.listPosts)
	r.Post("/posts", s.createPost)
	r.Post("/posts/{id}/like", s.toggleLike)
	r.Post("/posts/{id}/comments", s.addComment)

	r.Get("/conversations", s.listConversations)
	r.Get("/conversations/{userID}", s.getConversation)
	r.Post("/conversations/{userID}", s.sendMessage)

	r.Get("/communities", s.listCommunities)
	r.Post("/communities", s.createCommunity)
	r.Post("/communities/{id}/members", s.joinCommunity)
	r.Delete("/communities/{id}/members", s.leaveCommunity)

	r.Get("/notifications", s.listNotifications)
	r.Post("/notifications/read", s.markNotificationsRead)
}
