package contact

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// DefaultResetDelay is how long sent and error stay visible before the form
// returns to idle
const DefaultResetDelay = 5 * time.Second

const subscriberBuffer = 8

// Option configures a Flow
type Option func(*Flow)

// WithResetDelay overrides DefaultResetDelay. Non-positive values are ignored.
func WithResetDelay(d time.Duration) Option {
	return func(f *Flow) {
		if d > 0 {
			f.resetDelay = d
		}
	}
}

// WithOnChange registers a hook called on every status transition.
// The hook runs with the flow locked and must not call back into it.
func WithOnChange(fn func(from, to Status)) Option {
	return func(f *Flow) {
		f.onChange = fn
	}
}

// WithOnResult registers a hook called with every relay outcome before it
// is applied to the state.
func WithOnResult(fn func(attempt int, res Result)) Option {
	return func(f *Flow) {
		f.onResult = fn
	}
}

// Flow drives the submission state machine for a single form instance.
// The relay call and the reset timer run on their own goroutines and feed
// their outcome back through the reducer.
type Flow struct {
	relay      Relay
	resetDelay time.Duration
	onChange   func(from, to Status)
	onResult   func(attempt int, res Result)

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu          sync.Mutex
	state       State
	resetTimer  *time.Timer
	subscribers map[int]chan Status
	nextSubID   int
	closed      bool
}

// NewFlow creates an idle flow delivering through relay
func NewFlow(relay Relay, opts ...Option) *Flow {
	ctx, cancel := context.WithCancel(context.Background())
	f := &Flow{
		relay:       relay,
		resetDelay:  DefaultResetDelay,
		ctx:         ctx,
		cancel:      cancel,
		subscribers: make(map[int]chan Status),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// State returns a snapshot of the current state
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := f.state
	s.Missing = s.Missing.clone()
	return s
}

// Status returns the current submission status
func (f *Flow) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.Status
}

// Edit sets field to value
func (f *Flow) Edit(field Field, value string) {
	f.dispatch(EditField{Field: field, Value: value})
}

// Submit validates the form and, when it is complete, starts the relay call
// without waiting for it. It returns the missing fields and whether the
// submission was accepted. Submits while sending or sent are ignored.
func (f *Flow) Submit() (Missing, bool) {
	prev, next := f.dispatch(Submit{})
	if next.Attempt != prev.Attempt {
		return nil, true
	}
	if !prev.Status.AcceptsSubmit() {
		return nil, false
	}
	return next.Missing.clone(), false
}

// Subscribe returns a channel receiving every status the flow moves into,
// and a function to stop receiving. The channel is closed when the flow is
// closed or the subscription cancelled. Slow readers miss transitions.
func (f *Flow) Subscribe() (<-chan Status, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ch := make(chan Status, subscriberBuffer)
	if f.closed {
		close(ch)
		return ch, func() {}
	}

	id := f.nextSubID
	f.nextSubID++
	f.subscribers[id] = ch

	return ch, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if sub, ok := f.subscribers[id]; ok {
			delete(f.subscribers, id)
			close(sub)
		}
	}
}

// Close cancels any in-flight relay call, stops the reset timer and closes
// all subscriptions. Relay completions arriving afterwards are dropped.
// Close blocks until the relay goroutine has returned.
func (f *Flow) Close() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.closed = true
	if f.resetTimer != nil {
		f.resetTimer.Stop()
		f.resetTimer = nil
	}
	for id, ch := range f.subscribers {
		delete(f.subscribers, id)
		close(ch)
	}
	f.mu.Unlock()

	f.cancel()
	f.wg.Wait()
}

// Closed reports whether Close has been called
func (f *Flow) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *Flow) dispatch(ev Event) (State, State) {
	f.mu.Lock()
	defer f.mu.Unlock()

	prev := f.state
	if f.closed {
		return prev, prev
	}

	next, effect := Reduce(prev, ev)
	f.state = next
	f.perform(effect)

	if prev.Status != next.Status {
		if f.onChange != nil {
			f.onChange(prev.Status, next.Status)
		}
		for _, ch := range f.subscribers {
			select {
			case ch <- next.Status:
			default:
			}
		}
	}
	return prev, next
}

// perform runs with f.mu held
func (f *Flow) perform(effect Effect) {
	switch effect.Kind {
	case EffectSend:
		f.wg.Add(1)
		go f.send(effect.Attempt, effect.Form)

	case EffectScheduleReset:
		if f.resetTimer != nil {
			f.resetTimer.Stop()
		}
		attempt := effect.Attempt
		f.resetTimer = time.AfterFunc(f.resetDelay, func() {
			f.dispatch(ResetTimeout{Attempt: attempt})
		})
	}
}

func (f *Flow) send(attempt int, form Form) {
	defer f.wg.Done()

	res := f.call(form)
	if f.onResult != nil {
		f.onResult(attempt, res)
	}
	f.dispatch(RelayResolved{Attempt: attempt, Result: res})
}

func (f *Flow) call(form Form) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Failure(fmt.Errorf("%w: relay panicked: %v", ErrRelayFailed, r))
		}
	}()

	if err := f.relay.Send(f.ctx, form); err != nil {
		return Failure(err)
	}
	return Success()
}
