package mysql

import (
	"context"
	"database/sql"

	"github.com/huandu/go-sqlbuilder"

	"github.com/centinela-news/feed-sync/internal/domain"
)

func (r *Repository) CountArticles(ctx context.Context) (int64, error) {
	sb := sqlbuilder.Select("COUNT(*)")
	sb.From("articles")

	query, args := sb.Build()

	row := r.db.QueryRowContext(ctx, query, args...)
	var count int64
	if err := row.Scan(&count); err != nil {
		return 0, wrapErr("counting articles", err)
	}
	return count, nil
}

func (r *Repository) ListLatestArticles(
	ctx context.Context,
	page domain.ArticlePage,
) ([]domain.RawArticle, error) {
	sb := sqlbuilder.Select(
		"a.id", "a.title", "a.url", "a.description", "a.content",
		"a.image_url", "a.ai_summary", "a.category", "a.published_at",
		"a.is_breaking", "s.name",
	)
	sb.From("articles AS a")
	sb.JoinWithOption(sqlbuilder.LeftJoin, "rss_sources AS s", "a.source_id = s.id")
	sb.OrderBy("a.published_at DESC")
	sb.Offset(page.Offset())
	sb.Limit(page.PageSize)

	query, args := sb.Build()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("running articles query", err)
	}
	defer func() { _ = rows.Close() }()

	articles := []domain.RawArticle{}
	for rows.Next() {
		var (
			a           domain.RawArticle
			url         sql.NullString
			description sql.NullString
			content     sql.NullString
			imageURL    sql.NullString
			aiSummary   sql.NullString
			category    sql.NullString
			sourceName  sql.NullString
		)
		if err := rows.Scan(
			&a.ID,
			&a.Title,
			&url,
			&description,
			&content,
			&imageURL,
			&aiSummary,
			&category,
			&a.PublishedAt,
			&a.IsBreaking,
			&sourceName,
		); err != nil {
			return nil, wrapErr("scanning articles", err)
		}
		a.Link = url.String
		a.Description = description.String
		a.Content = content.String
		a.ImageURL = imageURL.String
		a.AISummary = aiSummary.String
		a.Category = category.String
		a.SourceName = sourceName.String
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("iterating articles", err)
	}

	return articles, nil
}
