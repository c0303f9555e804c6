package middleware

import (
	"github.com/osa911/uplink/internal/api/constants"
	"github.com/osa911/uplink/internal/locale"

	"github.com/gin-gonic/gin"
	"github.com/nicksnyder/go-i18n/v2/i18n"
)

// Locale picks the response language from ?lang=, the lang cookie, then
// Accept-Language. An explicit ?lang= is remembered in the cookie.
func Locale() gin.HandlerFunc {
	return func(c *gin.Context) {
		explicit := c.Query("lang")
		if explicit != "" {
			lang := locale.Resolve(explicit, "")
			c.SetCookie(constants.CookieLang, lang, constants.CookieDurationYear, constants.CookiePathRoot, "", false, false)
		} else if cookie, err := c.Cookie(constants.CookieLang); err == nil {
			explicit = cookie
		}

		lang := locale.Resolve(explicit, c.GetHeader("Accept-Language"))
		c.Set(constants.ContextKeyLang, lang)
		c.Set(constants.ContextKeyLocalizer, locale.NewLocalizer(lang))
		c.Header("Content-Language", lang)

		c.Next()
	}
}

// GetLocalizer returns the request's localizer, falling back to the
// default language when Locale did not run
func GetLocalizer(c *gin.Context) *i18n.Localizer {
	if v, ok := c.Get(constants.ContextKeyLocalizer); ok {
		if l, ok := v.(*i18n.Localizer); ok {
			return l
		}
	}
	return locale.NewLocalizer(locale.Default)
}
