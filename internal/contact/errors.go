package contact

import (
	"errors"
	"fmt"
	"strings"
)

// ErrRelayFailed matches every RelayError via errors.Is
var ErrRelayFailed = errors.New("relay delivery failed")

// ValidationError is returned when required fields are empty
type ValidationError struct {
	Missing Missing
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Missing))
	for _, f := range e.Missing.Fields() {
		names = append(names, string(f))
	}
	return "missing required fields: " + strings.Join(names, ", ")
}

// RelayError wraps a delivery failure reported by a relay provider
type RelayError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *RelayError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s relay returned status %d: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s relay: %v", e.Provider, e.Err)
}

func (e *RelayError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrRelayFailed) hold for any relay error
func (e *RelayError) Is(target error) bool {
	return target == ErrRelayFailed
}

// AsRelayError wraps err as a RelayError unless it already is one
func AsRelayError(provider string, err error) error {
	if err == nil {
		return nil
	}
	var re *RelayError
	if errors.As(err, &re) {
		return err
	}
	return &RelayError{Provider: provider, Err: err}
}
