package contact

// State is the full state of one form instance
type State struct {
	Status  Status
	Form    Form
	Missing Missing
	// Attempt counts accepted submissions; relay results and reset
	// timeouts carry it so stale ones can be told apart.
	Attempt int
}

// Event is an input to the submission state machine
type Event interface {
	event()
}

// EditField sets one field and clears its missing flag
type EditField struct {
	Field Field
	Value string
}

// Submit asks for the current form to be sent
type Submit struct{}

// RelayResolved delivers the outcome of a relay call
type RelayResolved struct {
	Attempt int
	Result  Result
}

// ResetTimeout fires after the reset delay following a terminal status
type ResetTimeout struct {
	Attempt int
}

func (EditField) event()     {}
func (Submit) event()        {}
func (RelayResolved) event() {}
func (ResetTimeout) event()  {}

// EffectKind names a side effect requested by the reducer
type EffectKind int

const (
	EffectNone EffectKind = iota
	// EffectSend asks the runtime to hand Form to the relay
	EffectSend
	// EffectScheduleReset asks the runtime to arm the reset timer
	EffectScheduleReset
)

// Effect is a side effect the runtime must perform after a transition
type Effect struct {
	Kind    EffectKind
	Form    Form
	Attempt int
}

// Reduce applies ev to s and returns the next state together with the side
// effect the caller has to run. It never mutates s.
func Reduce(s State, ev Event) (State, Effect) {
	switch e := ev.(type) {
	case EditField:
		if !e.Field.Valid() {
			return s, Effect{}
		}
		s.Form = s.Form.With(e.Field, e.Value)
		if s.Missing[e.Field] {
			s.Missing = s.Missing.without(e.Field)
		}
		return s, Effect{}

	case Submit:
		if !s.Status.AcceptsSubmit() {
			return s, Effect{}
		}
		missing := Validate(s.Form)
		if missing.Any() {
			s.Missing = missing
			return s, Effect{}
		}
		s.Missing = nil
		s.Status = StatusSending
		s.Attempt++
		return s, Effect{Kind: EffectSend, Form: s.Form, Attempt: s.Attempt}

	case RelayResolved:
		if s.Status != StatusSending || e.Attempt != s.Attempt {
			return s, Effect{}
		}
		if e.Result.OK() {
			s.Status = StatusSent
			s.Form = Form{}
		} else {
			s.Status = StatusError
		}
		return s, Effect{Kind: EffectScheduleReset, Attempt: s.Attempt}

	case ResetTimeout:
		if !s.Status.IsTerminal() || e.Attempt != s.Attempt {
			return s, Effect{}
		}
		s.Status = StatusIdle
		return s, Effect{}
	}

	return s, Effect{}
}

func (m Missing) without(field Field) Missing {
	out := make(Missing, len(m))
	for f, v := range m {
		if f != field && v {
			out[f] = true
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func (m Missing) clone() Missing {
	if m == nil {
		return nil
	}
	out := make(Missing, len(m))
	for f, v := range m {
		out[f] = v
	}
	return out
}
