package constants

// Session / context keys
const (
	SessionCookieName = "portal_session"
	ContextKeyUserID  = "user_id"
	ContextKeyUser    = "current_user"
)

// Pagination bounds
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
