package mysql

import (
	"context"
	"fmt"
	"time"

	"github.com/huandu/go-sqlbuilder"

	"github.com/centinela-news/feed-sync/internal/domain"
)

// Likes are stored as rows in article_likes and hard-deleted on unlike.
// Bookmarks are stored as a flag column in article_interactions and only
// ever flipped, never deleted, so bookmark history survives an unbookmark.

func (r *Repository) UpsertInteraction(
	ctx context.Context,
	kind domain.InteractionKind,
	userID string,
	rec domain.InteractionRecord,
) error {
	switch kind {
	case domain.InteractionLike:
		ib := sqlbuilder.InsertInto("article_likes")
		ib.Cols("user_id", "article_id", "created_at")
		ib.Values(userID, rec.ArticleID, rec.Time())
		ib.SQL("ON DUPLICATE KEY UPDATE created_at = VALUES(created_at)")

		query, args := ib.Build()
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return wrapErr("upserting like", err)
		}
		return nil

	case domain.InteractionBookmark:
		ib := sqlbuilder.InsertInto("article_interactions")
		ib.Cols("user_id", "article_id", "is_bookmarked", "created_at", "updated_at")
		ib.Values(userID, rec.ArticleID, true, rec.Time(), rec.Time())
		ib.SQL("ON DUPLICATE KEY UPDATE is_bookmarked = VALUES(is_bookmarked), updated_at = VALUES(updated_at)")

		query, args := ib.Build()
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return wrapErr("upserting bookmark", err)
		}
		return nil

	default:
		return fmt.Errorf("unknown interaction kind %q", kind)
	}
}

func (r *Repository) RemoveInteraction(
	ctx context.Context,
	kind domain.InteractionKind,
	userID, articleID string,
) error {
	switch kind {
	case domain.InteractionLike:
		db := sqlbuilder.DeleteFrom("article_likes")
		db.Where(
			db.Equal("user_id", userID),
			db.Equal("article_id", articleID),
		)

		query, args := db.Build()
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return wrapErr("removing like", err)
		}
		return nil

	case domain.InteractionBookmark:
		ub := sqlbuilder.Update("article_interactions")
		ub.Set(
			ub.Assign("is_bookmarked", false),
			ub.Assign("updated_at", time.Now()),
		)
		ub.Where(
			ub.Equal("user_id", userID),
			ub.Equal("article_id", articleID),
		)

		query, args := ub.Build()
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return wrapErr("removing bookmark", err)
		}
		return nil

	default:
		return fmt.Errorf("unknown interaction kind %q", kind)
	}
}

func (r *Repository) ListFlaggedInteractions(
	ctx context.Context,
	kind domain.InteractionKind,
	userID string,
) ([]domain.InteractionRecord, error) {
	var sb *sqlbuilder.SelectBuilder
	switch kind {
	case domain.InteractionLike:
		sb = sqlbuilder.Select("article_id", "created_at")
		sb.From("article_likes")
		sb.Where(sb.Equal("user_id", userID))
	case domain.InteractionBookmark:
		sb = sqlbuilder.Select("article_id", "updated_at")
		sb.From("article_interactions")
		sb.Where(
			sb.Equal("user_id", userID),
			sb.Equal("is_bookmarked", true),
		)
	default:
		return nil, fmt.Errorf("unknown interaction kind %q", kind)
	}

	query, args := sb.Build()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("listing interactions", err)
	}
	defer func() { _ = rows.Close() }()

	records := []domain.InteractionRecord{}
	for rows.Next() {
		var (
			articleID string
			at        time.Time
		)
		if err := rows.Scan(&articleID, &at); err != nil {
			return nil, wrapErr("scanning interactions", err)
		}
		records = append(records, domain.InteractionRecord{
			ArticleID: articleID,
			Flag:      true,
			Timestamp: at.UnixMilli(),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("iterating interactions", err)
	}

	return records, nil
}

func (r *Repository) ClearInteractions(
	ctx context.Context,
	kind domain.InteractionKind,
	userID string,
) error {
	switch kind {
	case domain.InteractionLike:
		db := sqlbuilder.DeleteFrom("article_likes")
		db.Where(db.Equal("user_id", userID))

		query, args := db.Build()
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return wrapErr("clearing likes", err)
		}
		return nil

	case domain.InteractionBookmark:
		ub := sqlbuilder.Update("article_interactions")
		ub.Set(
			ub.Assign("is_bookmarked", false),
			ub.Assign("updated_at", time.Now()),
		)
		ub.Where(ub.Equal("user_id", userID))

		query, args := ub.Build()
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return wrapErr("clearing bookmarks", err)
		}
		return nil

	default:
		return fmt.Errorf("unknown interaction kind %q", kind)
	}
}

func (r *Repository) CountArticleLikes(ctx context.Context, articleID string) (int64, error) {
	sb := sqlbuilder.Select("COUNT(*)")
	sb.From("article_likes")
	sb.Where(sb.Equal("article_id", articleID))

	query, args := sb.Build()

	row := r.db.QueryRowContext(ctx, query, args...)
	var count int64
	if err := row.Scan(&count); err != nil {
		return 0, wrapErr("counting article likes", err)
	}
	return count, nil
}
