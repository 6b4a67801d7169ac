package constants

// Context keys shared between middleware and handlers
const (
	ContextKeyUserID  = "userID"
	ContextKeyProfile = "profile"
)

// Cookie names
const (
	CookieSession = "session"
)
