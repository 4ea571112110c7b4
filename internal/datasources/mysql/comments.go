package mysql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/huandu/go-sqlbuilder"

	"github.com/centinela-news/feed-sync/internal/domain"
)

// EnsureProfile resolves the profile row for an auth identity, creating
// it with the supplied defaults on first use.
func (r *Repository) EnsureProfile(
	ctx context.Context,
	userID string,
	defaults domain.Profile,
) (domain.Profile, error) {
	sb := sqlbuilder.Select("id", "username", "full_name", "avatar_url")
	sb.From("profiles")
	sb.Where(sb.Equal("user_id", userID))

	query, args := sb.Build()

	var (
		p         domain.Profile
		username  sql.NullString
		fullName  sql.NullString
		avatarURL sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&p.ID, &username, &fullName, &avatarURL)
	if err == nil {
		p.UserID = userID
		p.Username = username.String
		p.FullName = fullName.String
		p.AvatarURL = avatarURL.String
		return p, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return domain.Profile{}, wrapErr("fetching profile", err)
	}

	p = defaults
	p.ID = uuid.NewString()
	p.UserID = userID

	ib := sqlbuilder.InsertInto("profiles")
	ib.Cols("id", "user_id", "username", "full_name", "avatar_url", "created_at")
	ib.Values(p.ID, p.UserID, nullable(p.Username), nullable(p.FullName), nullable(p.AvatarURL), time.Now())

	query, args = ib.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return domain.Profile{}, wrapErr("creating profile", err)
	}

	return p, nil
}

// ListComments returns the visible comments for an article, oldest
// first, with resolved authors and like counts. viewerProfileID may be
// empty for anonymous viewers.
func (r *Repository) ListComments(
	ctx context.Context,
	articleID, viewerProfileID string,
) ([]domain.Comment, error) {
	sb := commentSelect()
	sb.Where(
		sb.Equal("c.article_id", articleID),
		sb.Equal("c.is_hidden", false),
	)
	sb.OrderBy("c.created_at ASC")

	query, args := sb.Build()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("listing comments", err)
	}
	defer func() { _ = rows.Close() }()

	comments := []domain.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, wrapErr("scanning comments", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("iterating comments", err)
	}

	if err := r.attachLikes(ctx, comments, viewerProfileID); err != nil {
		return nil, err
	}

	return comments, nil
}

// TopComment returns the newest visible comment for an article, or nil
// when the article has none.
func (r *Repository) TopComment(ctx context.Context, articleID string) (*domain.Comment, error) {
	sb := commentSelect()
	sb.Where(
		sb.Equal("c.article_id", articleID),
		sb.Equal("c.is_hidden", false),
	)
	sb.OrderBy("c.created_at DESC")
	sb.Limit(1)

	query, args := sb.Build()
	row := r.db.QueryRowContext(ctx, query, args...)

	c, err := scanComment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapErr("fetching top comment", err)
	}
	return &c, nil
}

func (r *Repository) InsertComment(
	ctx context.Context,
	articleID, profileID, content string,
) (domain.Comment, error) {
	now := time.Now()
	c := domain.Comment{
		ID:        uuid.NewString(),
		ArticleID: articleID,
		ProfileID: profileID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	ib := sqlbuilder.InsertInto("comments")
	ib.Cols("id", "article_id", "user_id", "content", "is_hidden", "is_reported", "report_count", "created_at", "updated_at")
	ib.Values(c.ID, c.ArticleID, c.ProfileID, c.Content, false, false, 0, c.CreatedAt, c.UpdatedAt)

	query, args := ib.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return domain.Comment{}, wrapErr("inserting comment", err)
	}

	author, err := r.profileByID(ctx, profileID)
	if err != nil {
		return domain.Comment{}, err
	}
	c.AuthorName = author.DisplayName()
	c.AuthorAvatar = author.AvatarURL

	return c, nil
}

// UpdateComment rewrites a comment's content. The profile ID guards
// against editing someone else's comment.
func (r *Repository) UpdateComment(ctx context.Context, commentID, profileID, content string) error {
	ub := sqlbuilder.Update("comments")
	ub.Set(
		ub.Assign("content", content),
		ub.Assign("updated_at", time.Now()),
	)
	ub.Where(
		ub.Equal("id", commentID),
		ub.Equal("user_id", profileID),
	)

	query, args := ub.Build()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return wrapErr("updating comment", err)
	}
	return requireRowAffected(res, "updating comment")
}

func (r *Repository) DeleteComment(ctx context.Context, commentID, profileID string) error {
	db := sqlbuilder.DeleteFrom("comments")
	db.Where(
		db.Equal("id", commentID),
		db.Equal("user_id", profileID),
	)

	query, args := db.Build()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return wrapErr("deleting comment", err)
	}
	return requireRowAffected(res, "deleting comment")
}

// ToggleCommentLike flips the viewer's like on a comment inside a
// transaction and reports the resulting state.
func (r *Repository) ToggleCommentLike(ctx context.Context, commentID, profileID string) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, wrapErr("starting transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	sb := sqlbuilder.Select("1")
	sb.From("comment_likes")
	sb.Where(
		sb.Equal("comment_id", commentID),
		sb.Equal("profile_id", profileID),
	)

	query, args := sb.Build()
	var one int
	err = tx.QueryRowContext(ctx, query, args...).Scan(&one)
	exists := err == nil
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return false, wrapErr("checking comment like", err)
	}

	if exists {
		db := sqlbuilder.DeleteFrom("comment_likes")
		db.Where(
			db.Equal("comment_id", commentID),
			db.Equal("profile_id", profileID),
		)
		query, args = db.Build()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return false, wrapErr("removing comment like", err)
		}
	} else {
		ib := sqlbuilder.InsertInto("comment_likes")
		ib.Cols("comment_id", "profile_id", "created_at")
		ib.Values(commentID, profileID, time.Now())
		query, args = ib.Build()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return false, wrapErr("adding comment like", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, wrapErr("committing transaction", err)
	}

	return !exists, nil
}

func commentSelect() *sqlbuilder.SelectBuilder {
	sb := sqlbuilder.Select(
		"c.id", "c.article_id", "c.user_id", "c.content",
		"c.is_hidden", "c.is_reported", "c.report_count",
		"c.created_at", "c.updated_at",
		"p.username", "p.full_name", "p.avatar_url",
	)
	sb.From("comments AS c")
	sb.JoinWithOption(sqlbuilder.LeftJoin, "profiles AS p", "c.user_id = p.id")
	return sb
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanComment(row rowScanner) (domain.Comment, error) {
	var (
		c         domain.Comment
		username  sql.NullString
		fullName  sql.NullString
		avatarURL sql.NullString
	)
	if err := row.Scan(
		&c.ID,
		&c.ArticleID,
		&c.ProfileID,
		&c.Content,
		&c.IsHidden,
		&c.IsReported,
		&c.ReportCount,
		&c.CreatedAt,
		&c.UpdatedAt,
		&username,
		&fullName,
		&avatarURL,
	); err != nil {
		return domain.Comment{}, err
	}
	c.AuthorName = domain.Profile{
		Username: username.String,
		FullName: fullName.String,
	}.DisplayName()
	c.AuthorAvatar = avatarURL.String
	return c, nil
}

// attachLikes fills in like counts and the viewer's own likes with one
// aggregate query over the listed comments.
func (r *Repository) attachLikes(ctx context.Context, comments []domain.Comment, viewerProfileID string) error {
	if len(comments) == 0 {
		return nil
	}

	ids := make([]interface{}, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.ID)
	}

	sb := sqlbuilder.Select("comment_id", "profile_id")
	sb.From("comment_likes")
	sb.Where(sb.In("comment_id", ids...))

	query, args := sb.Build()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return wrapErr("listing comment likes", err)
	}
	defer func() { _ = rows.Close() }()

	counts := map[string]int{}
	viewerLiked := map[string]bool{}
	for rows.Next() {
		var commentID, profileID string
		if err := rows.Scan(&commentID, &profileID); err != nil {
			return wrapErr("scanning comment likes", err)
		}
		counts[commentID]++
		if viewerProfileID != "" && profileID == viewerProfileID {
			viewerLiked[commentID] = true
		}
	}
	if err := rows.Err(); err != nil {
		return wrapErr("iterating comment likes", err)
	}

	for i := range comments {
		comments[i].LikesCount = counts[comments[i].ID]
		comments[i].ViewerLiked = viewerLiked[comments[i].ID]
	}
	return nil
}

func (r *Repository) profileByID(ctx context.Context, profileID string) (domain.Profile, error) {
	sb := sqlbuilder.Select("id", "user_id", "username", "full_name", "avatar_url")
	sb.From("profiles")
	sb.Where(sb.Equal("id", profileID))

	query, args := sb.Build()

	var (
		p         domain.Profile
		username  sql.NullString
		fullName  sql.NullString
		avatarURL sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.UserID, &username, &fullName, &avatarURL)
	if err != nil {
		return domain.Profile{}, wrapErr("fetching profile", err)
	}
	p.Username = username.String
	p.FullName = fullName.String
	p.AvatarURL = avatarURL.String
	return p, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func requireRowAffected(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return wrapErr(op, err)
	}
	if n == 0 {
		return domain.WrapRemoteError(errors.New(op + ": no matching row"))
	}
	return nil
}
