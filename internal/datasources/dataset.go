package datasources

import (
	"context"

	"github.com/centinela-news/feed-sync/internal/domain"
)

// ArticleCounter reports the total number of articles in the remote dataset.
type ArticleCounter interface {
	CountArticles(ctx context.Context) (int64, error)
}

// ArticleLister fetches one page of raw articles ordered by publish time
// descending.
type ArticleLister interface {
	ListLatestArticles(ctx context.Context, page domain.ArticlePage) ([]domain.RawArticle, error)
}

// ArticleSource is the remote article dataset consumed by the feed assembler.
type ArticleSource interface {
	ArticleCounter
	ArticleLister
}

// InteractionUpserter writes an interaction flag keyed by (user, article).
type InteractionUpserter interface {
	UpsertInteraction(ctx context.Context, kind domain.InteractionKind, userID string, rec domain.InteractionRecord) error
}

// InteractionRemover un-flags an interaction. Likes are hard-deleted;
// bookmarks are soft-updated.
type InteractionRemover interface {
	RemoveInteraction(ctx context.Context, kind domain.InteractionKind, userID, articleID string) error
}

// FlaggedInteractionLister returns all flagged-true records for a user.
type FlaggedInteractionLister interface {
	ListFlaggedInteractions(ctx context.Context, kind domain.InteractionKind, userID string) ([]domain.InteractionRecord, error)
}

// InteractionClearer bulk un-flags every record for a user.
type InteractionClearer interface {
	ClearInteractions(ctx context.Context, kind domain.InteractionKind, userID string) error
}

// ArticleLikeCounter reports how many users liked an article.
type ArticleLikeCounter interface {
	CountArticleLikes(ctx context.Context, articleID string) (int64, error)
}

// InteractionRemote is the remote side of an interaction state store.
type InteractionRemote interface {
	InteractionUpserter
	InteractionRemover
	FlaggedInteractionLister
	InteractionClearer
	ArticleLikeCounter
}

// ProfileEnsurer resolves the profile for an auth identity, creating it
// on first use. Comments reference profile IDs, never raw identities.
type ProfileEnsurer interface {
	EnsureProfile(ctx context.Context, userID string, defaults domain.Profile) (domain.Profile, error)
}

// CommentRemote is the remote comment table plus its like-toggle.
type CommentRemote interface {
	ProfileEnsurer
	ListComments(ctx context.Context, articleID, viewerProfileID string) ([]domain.Comment, error)
	TopComment(ctx context.Context, articleID string) (*domain.Comment, error)
	InsertComment(ctx context.Context, articleID, profileID, content string) (domain.Comment, error)
	UpdateComment(ctx context.Context, commentID, profileID, content string) error
	DeleteComment(ctx context.Context, commentID, profileID string) error
	ToggleCommentLike(ctx context.Context, commentID, profileID string) (liked bool, err error)
}

// SnippetGenerator converts raw article text into a short display summary.
type SnippetGenerator interface {
	GenerateSnippet(ctx context.Context, content, title string) (string, error)
}
