package contact

import "fmt"

// Status is the submission status of a form
type Status int

const (
	StatusIdle Status = iota
	StatusSending
	StatusSent
	StatusError
)

var statusNames = [...]string{
	StatusIdle:    "idle",
	StatusSending: "sending",
	StatusSent:    "sent",
	StatusError:   "error",
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("status(%d)", int(s))
	}
	return statusNames[s]
}

// IsTerminal reports whether the status auto-reverts to idle
func (s Status) IsTerminal() bool {
	return s == StatusSent || s == StatusError
}

// AcceptsSubmit reports whether a submit is honoured in this status.
// The trigger stays disabled while a send is in flight or just succeeded.
func (s Status) AcceptsSubmit() bool {
	return s == StatusIdle || s == StatusError
}

// MarshalText encodes the status as its lowercase name
func (s Status) MarshalText() ([]byte, error) {
	if s < 0 || int(s) >= len(statusNames) {
		return nil, fmt.Errorf("unknown status %d", int(s))
	}
	return []byte(statusNames[s]), nil
}

// UnmarshalText parses a lowercase status name
func (s *Status) UnmarshalText(text []byte) error {
	st, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// ParseStatus parses a lowercase status name
func ParseStatus(name string) (Status, error) {
	for i, n := range statusNames {
		if n == name {
			return Status(i), nil
		}
	}
	return StatusIdle, fmt.Errorf("unknown status %q", name)
}
