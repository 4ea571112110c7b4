package domain

import "time"

// InteractionKind distinguishes the parallel interaction stores.
type InteractionKind string

const (
	InteractionLike     InteractionKind = "like"
	InteractionBookmark InteractionKind = "bookmark"
)

// InteractionRecord is one user-article interaction flag. Absence of a
// record for an article means the flag is false. Timestamp is epoch
// milliseconds of the last toggle.
type InteractionRecord struct {
	ArticleID string `json:"articleId"`
	Flag      bool   `json:"flag"`
	Timestamp int64  `json:"timestamp"`
}

// Time returns the record timestamp as a time.Time.
func (r InteractionRecord) Time() time.Time {
	return time.UnixMilli(r.Timestamp)
}

// ToggleResult reports how a toggle was applied, making the distinction
// between offline degradation and a real remote rejection a first-class
// value instead of an error-message check.
type ToggleResult int

const (
	// ToggleApplied means the flag was applied locally and, if a session
	// was active, confirmed remotely.
	ToggleApplied ToggleResult = iota
	// ToggleAppliedOfflineOnly means the flag was applied locally but the
	// remote write failed with a transient network error; the optimistic
	// state is kept.
	ToggleAppliedOfflineOnly
	// ToggleRolledBack means the remote write was rejected for a
	// non-network reason and the local state was reverted.
	ToggleRolledBack
)

func (r ToggleResult) String() string {
	switch r {
	case ToggleApplied:
		return "applied"
	case ToggleAppliedOfflineOnly:
		return "applied_offline_only"
	case ToggleRolledBack:
		return "rolled_back"
	default:
		return "unknown"
	}
}

// ViewedRecord marks an article as seen within the sliding retention
// window. Records are append-only and purged on load.
type ViewedRecord struct {
	ArticleID string `json:"articleId"`
	ViewedAt  int64  `json:"viewedAt"`
	SessionID string `json:"sessionId,omitempty"`
}
