package snippet

import (
	"context"
	"log/slog"

	"github.com/centinela-news/feed-sync/internal/datasources"
	"github.com/centinela-news/feed-sync/internal/domain"
	"github.com/centinela-news/feed-sync/internal/retry"
)

var _ datasources.SnippetGenerator = (*Service)(nil)

// Service tries the hosted snippet endpoint with retries and falls back
// to local generation when the endpoint cannot produce one. It never
// returns an error; a snippet always comes back.
type Service struct {
	remote   *Client
	fallback *Generator
	policy   retry.Policy
}

// NewService wires the endpoint client to the local fallback. remote may
// be nil, in which case every snippet is generated locally.
func NewService(remote *Client, fallback *Generator, policy retry.Policy) *Service {
	return &Service{
		remote:   remote,
		fallback: fallback,
		policy:   policy,
	}
}

func (s *Service) GenerateSnippet(ctx context.Context, content, title string) (string, error) {
	if s.remote == nil {
		return s.fallback.Snippet(content), nil
	}

	generated, err := retry.Do(ctx, s.policy, func(ctx context.Context) (string, error) {
		return s.remote.Generate(ctx, content, title)
	})
	if err != nil {
		domain.LoggerFromContext(ctx).DebugContext(ctx, "snippet endpoint unavailable, generating locally",
			slog.String("error", err.Error()))
		return s.fallback.Snippet(content), nil
	}

	return generated, nil
}
