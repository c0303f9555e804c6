package contact

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func filled() State {
	return State{Form: Form{Name: "A", ReturnAddress: "a@b.com", Message: "hi"}}
}

func TestReduceSubmitWithMissingFieldsStaysIdle(t *testing.T) {
	s := State{Form: Form{ReturnAddress: "a@b.com", Message: "hi"}}

	next, eff := Reduce(s, Submit{})

	assert.Equal(t, StatusIdle, next.Status)
	assert.Equal(t, EffectNone, eff.Kind)
	assert.Equal(t, []Field{FieldName}, next.Missing.Fields())
	assert.Zero(t, next.Attempt)
}

func TestReduceSubmitStartsSending(t *testing.T) {
	next, eff := Reduce(filled(), Submit{})

	assert.Equal(t, StatusSending, next.Status)
	assert.Equal(t, EffectSend, eff.Kind)
	assert.Equal(t, filled().Form, eff.Form)
	assert.Equal(t, 1, eff.Attempt)
	assert.Nil(t, next.Missing)
}

func TestReduceSubmitIgnoredWhileBusy(t *testing.T) {
	for _, st := range []Status{StatusSending, StatusSent} {
		s := filled()
		s.Status = st
		s.Attempt = 3

		next, eff := Reduce(s, Submit{})
		assert.Equal(t, s, next, "status %s", st)
		assert.Equal(t, EffectNone, eff.Kind)
	}
}

func TestReduceRelaySuccessClearsForm(t *testing.T) {
	s, _ := Reduce(filled(), Submit{})

	next, eff := Reduce(s, RelayResolved{Attempt: 1, Result: Success()})

	assert.Equal(t, StatusSent, next.Status)
	assert.True(t, next.Form.IsZero())
	assert.Equal(t, EffectScheduleReset, eff.Kind)
	assert.Equal(t, 1, eff.Attempt)
}

func TestReduceRelayFailureKeepsForm(t *testing.T) {
	s, _ := Reduce(filled(), Submit{})

	next, eff := Reduce(s, RelayResolved{Attempt: 1, Result: Failure(errors.New("boom"))})

	assert.Equal(t, StatusError, next.Status)
	assert.Equal(t, filled().Form, next.Form)
	assert.Equal(t, EffectScheduleReset, eff.Kind)
}

func TestReduceIgnoresStaleEvents(t *testing.T) {
	s, _ := Reduce(filled(), Submit{})
	s, _ = Reduce(s, RelayResolved{Attempt: 1, Result: Failure(nil)})
	s, _ = Reduce(s, Submit{})
	assert.Equal(t, StatusSending, s.Status)
	assert.Equal(t, 2, s.Attempt)

	// timeout armed by the first attempt
	next, _ := Reduce(s, ResetTimeout{Attempt: 1})
	assert.Equal(t, StatusSending, next.Status)

	next, eff := Reduce(s, RelayResolved{Attempt: 1, Result: Success()})
	assert.Equal(t, StatusSending, next.Status)
	assert.Equal(t, EffectNone, eff.Kind)
}

func TestReduceResetTimeout(t *testing.T) {
	s, _ := Reduce(filled(), Submit{})
	s, _ = Reduce(s, RelayResolved{Attempt: 1, Result: Success()})

	next, _ := Reduce(s, ResetTimeout{Attempt: 1})
	assert.Equal(t, StatusIdle, next.Status)

	// no-op once idle
	again, _ := Reduce(next, ResetTimeout{Attempt: 1})
	assert.Equal(t, next, again)
}

func TestReduceEditClearsOnlyThatFieldFlag(t *testing.T) {
	s, _ := Reduce(State{}, Submit{})
	assert.Len(t, s.Missing.Fields(), 3)

	next, _ := Reduce(s, EditField{Field: FieldEmail, Value: "a@b.com"})

	assert.Equal(t, []Field{FieldName, FieldMessage}, next.Missing.Fields())
	assert.Equal(t, "a@b.com", next.Form.ReturnAddress)
	// the previous state is untouched
	assert.True(t, s.Missing[FieldEmail])
}

func TestReduceEditUnknownField(t *testing.T) {
	s := filled()
	next, _ := Reduce(s, EditField{Field: "phone", Value: "1"})
	assert.Equal(t, s, next)
}
