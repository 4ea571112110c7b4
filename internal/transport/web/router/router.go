package router

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/centinela-news/feed-sync/internal/domain"
	"github.com/centinela-news/feed-sync/internal/localstore"
	"github.com/centinela-news/feed-sync/internal/session"
	"github.com/centinela-news/feed-sync/internal/transport/web/controller"
)

func MakeRouter(
	feed controller.FeedService,
	likes, bookmarks controller.ToggleStore,
	viewed controller.ViewedMarker,
	comments controller.CommentService,
	local *localstore.Store,
	sessions *session.Provider,
	rssFeedBaseURL, rssFeedAuthorName, rssFeedAuthorEmail string,
	rssCacheMaxAge time.Duration,
	authMiddleware func(http.Handler) http.Handler,
) (http.Handler, error) {
	r := mux.NewRouter()
	r.Use(corsMiddleware)
	r.Use(authMiddleware)

	requireSession := requireSessionMiddleware(sessions)

	r.Handle("/v1/feed", controller.FeedSnapshot{
		Feed: feed,
	}).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/v1/feed/more", controller.FeedMore{
		Feed: feed,
	}).Methods(http.MethodPost, http.MethodOptions)

	r.Handle("/v1/feed/refresh", controller.FeedRefresh{
		Feed: feed,
	}).Methods(http.MethodPost, http.MethodOptions)

	r.Handle("/v1/feed/rss", controller.RSS{
		FeedHostname:    rssFeedBaseURL,
		FeedPath:        "/v1/feed/rss",
		FeedAuthorName:  rssFeedAuthorName,
		FeedAuthorEmail: rssFeedAuthorEmail,
		Feed:            feed,
		CacheMaxAge:     rssCacheMaxAge,
	}).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/v1/articles/{article_id}/like/{value}", controller.InteractionToggle{
		Store: likes,
		Kind:  domain.InteractionLike,
	}).Methods(http.MethodPost, http.MethodOptions)

	r.Handle("/v1/articles/{article_id}/bookmark/{value}", controller.InteractionToggle{
		Store: bookmarks,
		Kind:  domain.InteractionBookmark,
	}).Methods(http.MethodPost, http.MethodOptions)

	r.Handle("/v1/articles/{article_id}/viewed", controller.ArticleViewedSet{
		Viewed: viewed,
	}).Methods(http.MethodPost, http.MethodOptions)

	r.Handle("/v1/likes", controller.FlaggedList{
		Store: likes,
	}).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/v1/bookmarks", controller.FlaggedList{
		Store: bookmarks,
	}).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/v1/articles/{article_id}/comments", controller.CommentsList{
		Comments: comments,
	}).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/v1/articles/{article_id}/comments", requireSession(controller.CommentCreate{
		Comments: comments,
	})).Methods(http.MethodPost)

	r.Handle("/v1/comments/{comment_id}", requireSession(controller.CommentUpdate{
		Comments: comments,
	})).Methods(http.MethodPatch)

	r.Handle("/v1/comments/{comment_id}", requireSession(controller.CommentDelete{
		Comments: comments,
	})).Methods(http.MethodDelete)

	r.Handle("/v1/comments/{comment_id}/like", requireSession(controller.CommentLikeToggle{
		Comments: comments,
	})).Methods(http.MethodPost, http.MethodOptions)

	r.Handle("/v1/preferences/notifications", controller.NotificationPreferenceGet{
		Local: local,
	}).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/v1/preferences/notifications", controller.NotificationPreferenceSet{
		Local: local,
	}).Methods(http.MethodPut)

	r.Handle("/v1/session", controller.SessionGet{
		Sessions: sessions,
	}).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/v1/session/sign-out", controller.SessionSignOut{
		Sessions: sessions,
	}).Methods(http.MethodPost, http.MethodOptions)

	return r, nil
}
