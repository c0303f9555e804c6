package constants

// Cookie names used in the application
const (
	CookieLang = "lang" // chosen UI language

	// Cookie paths
	CookiePathRoot = "/" // Root path for cookies available throughout the site

	// Cookie duration in seconds
	CookieDurationYear = 31536000 // 365 days
)
