package contact

import "context"

// Relay delivers a validated form to the outside world
type Relay interface {
	Send(ctx context.Context, form Form) error
}

// RelayFunc adapts a function to the Relay interface
type RelayFunc func(ctx context.Context, form Form) error

func (f RelayFunc) Send(ctx context.Context, form Form) error {
	return f(ctx, form)
}

// Result is the outcome of one relay call: success, or failure with a reason
type Result struct {
	Err error
}

// Success returns a successful result
func Success() Result {
	return Result{}
}

// Failure returns a failed result carrying reason
func Failure(reason error) Result {
	if reason == nil {
		reason = ErrRelayFailed
	}
	return Result{Err: reason}
}

// OK reports whether the relay delivered the message
func (r Result) OK() bool {
	return r.Err == nil
}
