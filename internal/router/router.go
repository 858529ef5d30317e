package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"vidstream/internal/config"
	"vidstream/internal/handler"
	"vidstream/internal/middleware"
)

// Handlers bundles the per-domain handlers the router mounts.
type Handlers struct {
	User         *handler.UserHandler
	Video        *handler.VideoHandler
	Comment      *handler.CommentHandler
	Like         *handler.LikeHandler
	Playlist     *handler.PlaylistHandler
	Subscription *handler.SubscriptionHandler
	Tweet        *handler.TweetHandler
	Dashboard    *handler.DashboardHandler
	Health       *handler.HealthHandler
}

func New(cfg *config.Config, auth *middleware.AuthMiddleware, h Handlers) http.Handler {
	r := chi.NewRouter()
	rateLimit := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(rateLimit.Handler)

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Get("/healthcheck", h.Health.Check)

		api.Route("/users", func(users chi.Router) {
			users.Post("/register", h.User.Register)
			users.Post("/login", h.User.Login)
			users.Post("/refresh-token", h.User.Refresh)
			users.With(auth.RequireAuth).Post("/logout", h.User.Logout)
			users.With(auth.RequireAuth).Post("/change-password", h.User.ChangePassword)
			users.With(auth.RequireAuth).Get("/current-user", h.User.CurrentUser)
			users.With(auth.OptionalAuth).Get("/c/{username}", h.User.ChannelProfile)
			users.With(auth.RequireAuth).Get("/history", h.User.WatchHistory)
		})

		api.Route("/videos", func(videos chi.Router) {
			videos.With(auth.OptionalAuth).Get("/", h.Video.List)
			videos.With(auth.RequireAuth).Post("/", h.Video.Publish)
			videos.With(auth.OptionalAuth).Get("/{videoId}", h.Video.Get)
			videos.With(auth.RequireAuth).Patch("/{videoId}", h.Video.Update)
			videos.With(auth.RequireAuth).Delete("/{videoId}", h.Video.Delete)
			videos.With(auth.RequireAuth).Patch("/toggle/publish/{videoId}", h.Video.TogglePublish)
		})

		api.Route("/comments", func(comments chi.Router) {
			comments.With(auth.OptionalAuth).Get("/{videoId}", h.Comment.ListByVideo)
			comments.With(auth.RequireAuth).Post("/{videoId}", h.Comment.Add)
			comments.With(auth.RequireAuth).Patch("/c/{commentId}", h.Comment.Update)
			comments.With(auth.RequireAuth).Delete("/c/{commentId}", h.Comment.Delete)
		})

		api.Route("/likes", func(likes chi.Router) {
			likes.Use(auth.RequireAuth)
			likes.Post("/toggle/v/{videoId}", h.Like.ToggleVideo)
			likes.Post("/toggle/c/{commentId}", h.Like.ToggleComment)
			likes.Post("/toggle/t/{tweetId}", h.Like.ToggleTweet)
			likes.Get("/videos", h.Like.LikedVideos)
		})

		api.Route("/playlists", func(playlist chi.Router) {
			playlist.With(auth.RequireAuth).Post("/", h.Playlist.Create)
			playlist.With(auth.OptionalAuth).Get("/{playlistId}", h.Playlist.Get)
			playlist.With(auth.RequireAuth).Patch("/{playlistId}", h.Playlist.Update)
			playlist.With(auth.RequireAuth).Delete("/{playlistId}", h.Playlist.Delete)
			playlist.Get("/user/{userId}", h.Playlist.ListByUser)
			playlist.With(auth.RequireAuth).Patch("/add/{videoId}/{playlistId}", h.Playlist.AddVideo)
			playlist.With(auth.RequireAuth).Patch("/remove/{videoId}/{playlistId}", h.Playlist.RemoveVideo)
		})

		api.Route("/subscriptions", func(subs chi.Router) {
			subs.With(auth.RequireAuth).Post("/c/{channelId}", h.Subscription.Toggle)
			subs.Get("/c/{channelId}", h.Subscription.Subscribers)
			subs.Get("/u/{subscriberId}", h.Subscription.SubscribedChannels)
		})

		api.Route("/tweets", func(tweets chi.Router) {
			tweets.With(auth.RequireAuth).Post("/", h.Tweet.Create)
			tweets.Get("/user/{userId}", h.Tweet.ListByUser)
			tweets.With(auth.RequireAuth).Patch("/{tweetId}", h.Tweet.Update)
			tweets.With(auth.RequireAuth).Delete("/{tweetId}", h.Tweet.Delete)
		})

		api.Route("/dashboard", func(dash chi.Router) {
			dash.Use(auth.RequireAuth)
			dash.Get("/stats", h.Dashboard.Stats)
			dash.Get("/videos", h.Dashboard.Videos)
		})
	})

	return r
}
