package domain

import "time"

// Profile is the public author record comments reference. Comments point
// at a profile ID, not the raw auth identity.
type Profile struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	FullName  string `json:"full_name"`
	AvatarURL string `json:"avatar_url"`
}

// DisplayName resolves the name shown next to a comment.
func (p Profile) DisplayName() string {
	if p.Username != "" {
		return p.Username
	}
	if p.FullName != "" {
		return p.FullName
	}
	return "Usuario"
}

// Comment is one per-article comment with its resolved author.
type Comment struct {
	ID           string    `json:"id"`
	ArticleID    string    `json:"article_id"`
	ProfileID    string    `json:"profile_id"`
	Content      string    `json:"content"`
	IsHidden     bool      `json:"is_hidden"`
	IsReported   bool      `json:"is_reported"`
	ReportCount  int       `json:"report_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	AuthorName   string    `json:"author_name"`
	AuthorAvatar string    `json:"author_avatar,omitempty"`
	LikesCount   int       `json:"likes_count"`
	ViewerLiked  bool      `json:"viewer_liked"`
}
