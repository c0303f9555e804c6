package sanitization

import (
	"html"
	"regexp"
	"strings"

	"github.com/osa911/uplink/internal/contact"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// strictPolicy removes all markup
	strictPolicy = bluemonday.StrictPolicy()

	spaceRun      = regexp.MustCompile(`[ \t\f\v]+`)
	anyWhitespace = regexp.MustCompile(`\s+`)
	blankLineRun  = regexp.MustCompile(`\n{3,}`)
)

// maxStripPasses bounds how many layers of entity encoding are peeled off
const maxStripPasses = 8

// StripHTML removes markup and returns plain text. The policy output is
// decoded so "a & b" survives unchanged, and decoding repeats until the text
// is stable so entity-encoded tags are stripped too.
func StripHTML(input string) string {
	current := input
	for i := 0; i < maxStripPasses; i++ {
		next := html.UnescapeString(strictPolicy.Sanitize(current))
		if next == current {
			return next
		}
		current = next
	}
	// still changing, keep the escaped form
	return strictPolicy.Sanitize(current)
}

// SanitizeString strips markup and collapses all whitespace to single spaces
func SanitizeString(input string) string {
	safe := StripHTML(input)
	safe = anyWhitespace.ReplaceAllString(safe, " ")
	return strings.TrimSpace(safe)
}

// SanitizeEmail lowercases and trims an email address and strips markup
func SanitizeEmail(input string) string {
	email := strings.ToLower(strings.TrimSpace(input))
	return strings.TrimSpace(StripHTML(email))
}

// SanitizeName strips markup and collapses whitespace in a person's name
func SanitizeName(input string) string {
	return SanitizeString(input)
}

// SanitizeMessage strips markup but keeps line breaks, collapsing runs of
// blank lines and trailing spaces
func SanitizeMessage(input string) string {
	safe := StripHTML(strings.ReplaceAll(input, "\r\n", "\n"))

	lines := strings.Split(safe, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(spaceRun.ReplaceAllString(line, " "))
	}
	safe = strings.Join(lines, "\n")
	safe = blankLineRun.ReplaceAllString(safe, "\n\n")

	return strings.TrimSpace(safe)
}

// SanitizeForm sanitizes every field of form
func SanitizeForm(form contact.Form) contact.Form {
	return contact.Form{
		Name:          SanitizeName(form.Name),
		ReturnAddress: SanitizeEmail(form.ReturnAddress),
		Message:       SanitizeMessage(form.Message),
	}
}

// SanitizeField applies the sanitizer matching field
func SanitizeField(field contact.Field, input string) string {
	switch field {
	case contact.FieldName:
		return SanitizeName(input)
	case contact.FieldEmail:
		return SanitizeEmail(input)
	case contact.FieldMessage:
		return SanitizeMessage(input)
	default:
		return SanitizeString(input)
	}
}
