package mysql

import (
	"database/sql"

	"github.com/centinela-news/feed-sync/internal/datasources"
)

var _ datasources.ArticleSource = (*Repository)(nil)
var _ datasources.InteractionRemote = (*Repository)(nil)
var _ datasources.CommentRemote = (*Repository)(nil)

// Repository is the hosted MySQL dataset behind every remote operation.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}
