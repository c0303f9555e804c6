package constants

// Context keys for validated requests
const (
	// Contact context keys
	ContextKeyContact     = "contact"
	ContextKeyFieldUpdate = "fieldUpdate"
	ContextKeySubmitForm  = "submitForm"

	// Request context keys
	ContextKeyRequestID = "RequestID"
	ContextKeyLang      = "lang"
	ContextKeyLocalizer = "localizer"
)
