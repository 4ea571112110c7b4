package app

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/centinela-news/feed-sync/internal/datasources/mysql"
	"github.com/centinela-news/feed-sync/internal/feed"
	"github.com/centinela-news/feed-sync/internal/interactions"
	"github.com/centinela-news/feed-sync/internal/localstore"
	"github.com/centinela-news/feed-sync/internal/retry"
	"github.com/centinela-news/feed-sync/internal/session"
	"github.com/centinela-news/feed-sync/internal/snippet"
	"github.com/centinela-news/feed-sync/internal/transport/web/router"
	"github.com/centinela-news/feed-sync/internal/transport/web/server"
)

type Component interface {
	Run(ctx context.Context) error
}

func Setup(ctx context.Context) ([]Component, error) {
	local, err := localstore.Open(localstore.DefaultConfig(MustGetEnvAsString(ctx, "LOCAL_STORE_PATH")))
	if err != nil {
		return nil, fmt.Errorf("opening local store: %w", err)
	}

	repo, err := setupRepository(ctx)
	if err != nil {
		return nil, fmt.Errorf("setting up repository: %w", err)
	}

	resolver, err := session.NewAuth0Resolver(
		MustGetEnvAsString(ctx, "AUTH0_DOMAIN"),
		MustGetEnvAsString(ctx, "AUTH0_AUDIENCE"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating Auth0 resolver: %w", err)
	}

	sessions := session.NewProvider(resolver, local)

	likes := interactions.NewLikesStore(local, repo, sessions)
	bookmarks := interactions.NewBookmarksStore(local, repo, sessions)
	viewed := interactions.NewViewedStore(local, sessions)
	comments := interactions.NewCommentStore(repo, sessions)

	// Stores subscribe before bootstrap so they see the initial session.
	sessions.Bootstrap(ctx)

	assembler := feed.NewAssembler(repo, setupSnippetService(ctx))

	httpRouter, err := router.MakeRouter(
		assembler,
		likes,
		bookmarks,
		viewed,
		comments,
		local,
		sessions,
		MustGetEnvAsString(ctx, "RSS_FEED_BASE_URL"),
		MustGetEnvAsString(ctx, "RSS_FEED_AUTHOR_NAME"),
		MustGetEnvAsString(ctx, "RSS_FEED_AUTHOR_EMAIL"),
		MustGetEnvAsDuration(ctx, "RSS_FEED_LATEST_CACHE_MAX_AGE"),
		router.NewAuthMiddleware(sessions, resolver),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to create HTTP router: %w", err)
	}

	return []Component{
		componentFunc(func(ctx context.Context) error {
			assembler.Refresh(ctx)
			return nil
		}),
		&server.Server{
			TLSDisabled:      MustGetEnvAsBoolean(ctx, "HTTP_TLS_DISABLED"),
			TLSDisabledPort:  MustGetEnvAsInt(ctx, "PORT"),
			AutocertHostname: MustGetEnvAsString(ctx, "HTTP_AUTOCERT_HOSTNAME"),
			Router:           httpRouter,
		},
	}, nil
}

func setupRepository(ctx context.Context) (*mysql.Repository, error) {
	db, err := mysql.Connect(ctx, MustGetEnvAsString(ctx, "MYSQL_URI"))
	if err != nil {
		return nil, fmt.Errorf("connecting to MySQL: %w", err)
	}
	return mysql.NewRepository(db), nil
}

func setupSnippetService(ctx context.Context) *snippet.Service {
	var remote *snippet.Client
	if endpointURL := MustGetEnvAsString(ctx, "SNIPPET_ENDPOINT_URL"); endpointURL != "" {
		remote = snippet.NewClient(
			endpointURL,
			MustGetEnvAsString(ctx, "SNIPPET_API_KEY"),
			&http.Client{Timeout: 10 * time.Second},
		)
	}

	return snippet.NewService(
		remote,
		snippet.NewGenerator(),
		retry.DefaultPolicy(retry.WithJitter(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))),
	)
}

type componentFunc func(ctx context.Context) error

func (f componentFunc) Run(ctx context.Context) error {
	return f(ctx)
}
