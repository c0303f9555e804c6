package contact

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const testResetDelay = 30 * time.Millisecond

// fakeRelay records calls and optionally blocks until released
type fakeRelay struct {
	mu       sync.Mutex
	calls    []Form
	err      error
	release  chan struct{}
	obeyCtx  bool
	returned chan struct{}
}

func (r *fakeRelay) Send(ctx context.Context, form Form) error {
	r.mu.Lock()
	r.calls = append(r.calls, form)
	release, err := r.release, r.err
	r.mu.Unlock()

	if r.returned != nil {
		defer close(r.returned)
	}

	if release != nil {
		if r.obeyCtx {
			select {
			case <-release:
			case <-ctx.Done():
				return ctx.Err()
			}
		} else {
			<-release
		}
	}
	return err
}

func (r *fakeRelay) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func fill(f *Flow, name, email, message string) {
	f.Edit(FieldName, name)
	f.Edit(FieldEmail, email)
	f.Edit(FieldMessage, message)
}

// collect reads statuses until idle is seen or the timeout passes
func collect(t *testing.T, ch <-chan Status, timeout time.Duration) []Status {
	t.Helper()
	var seen []Status
	deadline := time.After(timeout)
	for {
		select {
		case s, ok := <-ch:
			if !ok {
				return seen
			}
			seen = append(seen, s)
			if s == StatusIdle {
				return seen
			}
		case <-deadline:
			t.Fatalf("timed out waiting for idle, saw %v", seen)
			return seen
		}
	}
}

func TestFlowMissingFieldNeverCallsRelay(t *testing.T) {
	relay := &fakeRelay{}
	flow := NewFlow(relay, WithResetDelay(testResetDelay))
	defer flow.Close()

	fill(flow, "", "a@b.com", "hi")
	missing, accepted := flow.Submit()

	assert.False(t, accepted)
	assert.Equal(t, []Field{FieldName}, missing.Fields())
	assert.Equal(t, StatusIdle, flow.Status())
	assert.Zero(t, relay.callCount())

	// fields are kept for correction
	assert.Equal(t, "a@b.com", flow.State().Form.ReturnAddress)
}

func TestFlowSuccessSequence(t *testing.T) {
	relay := &fakeRelay{}
	flow := NewFlow(relay, WithResetDelay(testResetDelay))
	defer flow.Close()

	ch, unsubscribe := flow.Subscribe()
	defer unsubscribe()

	fill(flow, "A", "a@b.com", "hi")
	_, accepted := flow.Submit()
	require.True(t, accepted)

	got := collect(t, ch, time.Second)
	want := []Status{StatusSending, StatusSent, StatusIdle}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("status sequence mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, 1, relay.callCount())
	assert.True(t, flow.State().Form.IsZero())
}

func TestFlowFailureSequence(t *testing.T) {
	relay := &fakeRelay{err: errors.New("service unavailable")}
	var results []Result
	flow := NewFlow(relay,
		WithResetDelay(testResetDelay),
		WithOnResult(func(_ int, res Result) { results = append(results, res) }),
	)
	defer flow.Close()

	ch, unsubscribe := flow.Subscribe()
	defer unsubscribe()

	fill(flow, "A", "a@b.com", "hi")
	_, accepted := flow.Submit()
	require.True(t, accepted)

	got := collect(t, ch, time.Second)
	want := []Status{StatusSending, StatusError, StatusIdle}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("status sequence mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, 1, relay.callCount())
	assert.Equal(t, Form{Name: "A", ReturnAddress: "a@b.com", Message: "hi"}, flow.State().Form)
	require.Len(t, results, 1)
	assert.False(t, results[0].OK())
}

func TestFlowSendingIsVisibleImmediately(t *testing.T) {
	relay := &fakeRelay{release: make(chan struct{})}
	flow := NewFlow(relay, WithResetDelay(testResetDelay))
	defer flow.Close()

	fill(flow, "A", "a@b.com", "hi")
	_, accepted := flow.Submit()
	require.True(t, accepted)
	assert.Equal(t, StatusSending, flow.Status())

	close(relay.release)
}

func TestFlowDoubleSubmitIsNoop(t *testing.T) {
	relay := &fakeRelay{release: make(chan struct{})}
	flow := NewFlow(relay, WithResetDelay(time.Hour))
	defer flow.Close()

	ch, unsubscribe := flow.Subscribe()
	defer unsubscribe()

	fill(flow, "A", "a@b.com", "hi")
	_, accepted := flow.Submit()
	require.True(t, accepted)

	missing, accepted := flow.Submit()
	assert.False(t, accepted)
	assert.Nil(t, missing)

	close(relay.release)
	assert.Equal(t, StatusSending, <-ch)
	assert.Equal(t, StatusSent, <-ch)

	// still disabled while sent, even with the form refilled
	fill(flow, "B", "b@c.com", "again")
	_, accepted = flow.Submit()
	assert.False(t, accepted)
	assert.Equal(t, 1, relay.callCount())
}

func TestFlowResubmitAfterErrorIgnoresStaleTimer(t *testing.T) {
	const delay = 100 * time.Millisecond
	relay := &fakeRelay{err: errors.New("down")}
	flow := NewFlow(relay, WithResetDelay(delay))
	defer flow.Close()

	ch, unsubscribe := flow.Subscribe()
	defer unsubscribe()

	fill(flow, "A", "a@b.com", "hi")
	_, accepted := flow.Submit()
	require.True(t, accepted)
	assert.Equal(t, StatusSending, <-ch)
	assert.Equal(t, StatusError, <-ch)

	relay.mu.Lock()
	relay.err = nil
	relay.release = make(chan struct{})
	relay.mu.Unlock()

	_, accepted = flow.Submit()
	require.True(t, accepted)
	assert.Equal(t, StatusSending, <-ch)

	// the timer armed by the failed attempt must not reset the new one
	time.Sleep(3 * delay)
	assert.Equal(t, StatusSending, flow.Status())

	close(relay.release)
	assert.Equal(t, StatusSent, <-ch)
	assert.Equal(t, StatusIdle, <-ch)
	assert.Equal(t, 2, relay.callCount())
}

func TestFlowCloseCancelsInFlightRelay(t *testing.T) {
	relay := &fakeRelay{release: make(chan struct{}), obeyCtx: true}
	flow := NewFlow(relay, WithResetDelay(testResetDelay))

	ch, _ := flow.Subscribe()

	fill(flow, "A", "a@b.com", "hi")
	_, accepted := flow.Submit()
	require.True(t, accepted)
	assert.Equal(t, StatusSending, <-ch)

	flow.Close()

	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, StatusSending, flow.Status())
	assert.True(t, flow.Closed())

	// closing twice is harmless
	flow.Close()
}

func TestFlowDropsLateCompletionAfterClose(t *testing.T) {
	relay := &fakeRelay{release: make(chan struct{}), returned: make(chan struct{})}
	flow := NewFlow(relay, WithResetDelay(testResetDelay))

	fill(flow, "A", "a@b.com", "hi")
	_, accepted := flow.Submit()
	require.True(t, accepted)

	done := make(chan struct{})
	go func() {
		flow.Close()
		close(done)
	}()

	// let Close mark the flow closed before the relay resolves
	require.Eventually(t, flow.Closed, time.Second, time.Millisecond)
	close(relay.release)
	<-relay.returned
	<-done

	assert.Equal(t, StatusSending, flow.Status())
	assert.Equal(t, "A", flow.State().Form.Name)
}

func TestFlowRelayPanicBecomesError(t *testing.T) {
	relay := RelayFunc(func(context.Context, Form) error {
		panic("bad template")
	})
	flow := NewFlow(relay, WithResetDelay(time.Hour))
	defer flow.Close()

	ch, unsubscribe := flow.Subscribe()
	defer unsubscribe()

	fill(flow, "A", "a@b.com", "hi")
	_, accepted := flow.Submit()
	require.True(t, accepted)

	assert.Equal(t, StatusSending, <-ch)
	assert.Equal(t, StatusError, <-ch)
}

func TestFlowOnChangeHook(t *testing.T) {
	var mu sync.Mutex
	var transitions []string
	flow := NewFlow(&fakeRelay{}, WithResetDelay(testResetDelay), WithOnChange(func(from, to Status) {
		mu.Lock()
		transitions = append(transitions, from.String()+"->"+to.String())
		mu.Unlock()
	}))
	defer flow.Close()

	ch, unsubscribe := flow.Subscribe()
	defer unsubscribe()

	fill(flow, "A", "a@b.com", "hi")
	flow.Submit()
	collect(t, ch, time.Second)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"idle->sending", "sending->sent", "sent->idle"}, transitions)
}

func TestSubscribeAfterClose(t *testing.T) {
	flow := NewFlow(&fakeRelay{})
	flow.Close()

	ch, unsubscribe := flow.Subscribe()
	unsubscribe()
	_, open := <-ch
	assert.False(t, open)
}
