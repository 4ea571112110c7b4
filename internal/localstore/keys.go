package localstore

// Storage keys. The names are part of the on-device data contract and
// must not change between versions.
const (
	KeyLikes         = "centinela_likes"
	KeyBookmarks     = "centinela_bookmarks"
	KeyViewed        = "centinela_viewed_articles"
	KeySessionID     = "centinela_session_id"
	KeyAccessToken   = "centinela_access_token"
	KeyNotifications = "centinela_notifications_enabled"
)
