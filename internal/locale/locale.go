// Package locale holds the translated strings shown next to the contact form.
package locale

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/osa911/uplink/internal/contact"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localeFS embed.FS

// Message IDs
const (
	MsgContactSent    = "contact_sent"
	MsgContactFailed  = "contact_failed"
	MsgContactInvalid = "contact_invalid"
	MsgCaptchaFailed  = "captcha_failed"
	MsgFormNotFound   = "form_not_found"
	MsgRequestInvalid = "request_invalid"
	MsgRateLimited    = "rate_limited"
	MsgFieldTooLong   = "field_too_long"
	MsgFieldUnknown   = "field_unknown"
	MsgFieldInvalid   = "field_invalid"
	MsgFormBusy       = "form_busy"
)

// Default is the language used when nothing better matches
const Default = "en"

var (
	bundle     *i18n.Bundle
	bundleOnce sync.Once

	supported = []language.Tag{language.English, language.Spanish}
	matcher   = language.NewMatcher(supported)
)

// Bundle returns the translation bundle, loading the embedded files once
func Bundle() *i18n.Bundle {
	bundleOnce.Do(func() {
		bundle = i18n.NewBundle(language.English)
		bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
		for _, file := range []string{"locales/active.en.toml", "locales/active.es.toml"} {
			// the files are embedded, a failure here is a build defect
			if _, err := bundle.LoadMessageFileFS(localeFS, file); err != nil {
				panic(fmt.Sprintf("failed to load locale %s: %v", file, err))
			}
		}
	})
	return bundle
}

// Resolve picks a supported language from, in order, an explicit choice
// (query parameter or cookie) and an Accept-Language header
func Resolve(explicit, acceptLanguage string) string {
	if explicit != "" {
		if tag, err := language.Parse(explicit); err == nil {
			return match(tag)
		}
	}

	if acceptLanguage != "" {
		tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
		if err == nil && len(tags) > 0 {
			return match(tags...)
		}
	}

	return Default
}

func match(tags ...language.Tag) string {
	tag, _, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return Default
	}
	base, _ := tag.Base()
	return base.String()
}

// NewLocalizer returns a localizer for lang
func NewLocalizer(lang string) *i18n.Localizer {
	if lang == "" {
		lang = Default
	}
	return i18n.NewLocalizer(Bundle(), lang, Default)
}

// T translates a message ID, falling back to the ID itself
func T(localizer *i18n.Localizer, messageID string) string {
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID: messageID,
	})
	if err != nil {
		return messageID
	}
	return msg
}

// FieldError returns the inline error shown under a missing field
func FieldError(localizer *i18n.Localizer, field contact.Field) string {
	return T(localizer, "field_"+string(field)+"_missing")
}

// StatusLabel returns the text shown on the submit control for status
func StatusLabel(localizer *i18n.Localizer, status contact.Status) string {
	return T(localizer, "status_"+strings.ToLower(status.String()))
}
