// Package contact implements the contact form submission flow: field
// validation, the submission status machine and the runtime that drives it
// against a relay.
package contact

import "strings"

// Field identifies one input of the contact form
type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldMessage Field = "message"
)

// Fields lists the form inputs in display order
var Fields = []Field{FieldName, FieldEmail, FieldMessage}

// Valid reports whether f is one of the known form fields
func (f Field) Valid() bool {
	switch f {
	case FieldName, FieldEmail, FieldMessage:
		return true
	}
	return false
}

// Form is one operator's contact form contents
type Form struct {
	Name          string `json:"name"`
	ReturnAddress string `json:"email"`
	Message       string `json:"message"`
}

// Get returns the value held for field
func (f Form) Get(field Field) string {
	switch field {
	case FieldName:
		return f.Name
	case FieldEmail:
		return f.ReturnAddress
	case FieldMessage:
		return f.Message
	}
	return ""
}

// With returns a copy of the form with field set to value.
// Unknown fields leave the form unchanged.
func (f Form) With(field Field, value string) Form {
	switch field {
	case FieldName:
		f.Name = value
	case FieldEmail:
		f.ReturnAddress = value
	case FieldMessage:
		f.Message = value
	}
	return f
}

// IsZero reports whether every field is empty
func (f Form) IsZero() bool {
	return f == Form{}
}

// TemplateParams maps the form onto the relay template variables
func (f Form) TemplateParams() map[string]string {
	return map[string]string{
		"user_name":  f.Name,
		"user_email": f.ReturnAddress,
		"message":    f.Message,
	}
}

// Missing flags the fields that are required but empty
type Missing map[Field]bool

// Any reports whether at least one field is flagged
func (m Missing) Any() bool {
	for _, missing := range m {
		if missing {
			return true
		}
	}
	return false
}

// Fields returns the flagged fields in form order
func (m Missing) Fields() []Field {
	var out []Field
	for _, f := range Fields {
		if m[f] {
			out = append(out, f)
		}
	}
	return out
}

// Validate returns the fields whose trimmed value is empty
func Validate(form Form) Missing {
	missing := Missing{}
	for _, f := range Fields {
		if strings.TrimSpace(form.Get(f)) == "" {
			missing[f] = true
		}
	}
	return missing
}
