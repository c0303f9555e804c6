package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/osa911/uplink/internal/contact"
	"github.com/osa911/uplink/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var validForm = contact.Form{Name: "A", ReturnAddress: "a@b.com", Message: "hi"}

func TestDeliverSuccess(t *testing.T) {
	var calls atomic.Int32
	var got contact.Form
	relay := contact.RelayFunc(func(ctx context.Context, form contact.Form) error {
		calls.Add(1)
		got = form
		return nil
	})

	s := NewContactService(relay, logging.Discard())
	err := s.Deliver(context.Background(), validForm, SubmissionInfo{IPAddress: "127.0.0.1"})

	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, validForm, got)
}

func TestDeliverValidationError(t *testing.T) {
	var calls atomic.Int32
	s := NewContactService(countingRelay(&calls, nil), logging.Discard())

	err := s.Deliver(context.Background(), contact.Form{ReturnAddress: "a@b.com", Message: " "}, SubmissionInfo{})

	var ve *contact.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, []contact.Field{contact.FieldName, contact.FieldMessage}, ve.Missing.Fields())
	assert.Zero(t, calls.Load())
}

func TestDeliverRelayError(t *testing.T) {
	boom := errors.New("quota exceeded")
	s := NewContactService(countingRelay(new(atomic.Int32), boom), logging.Discard())

	err := s.Deliver(context.Background(), validForm, SubmissionInfo{})

	assert.ErrorIs(t, err, contact.ErrRelayFailed)
	assert.ErrorIs(t, err, boom)
}

func TestDeliverCallerGivesUp(t *testing.T) {
	cancelled := make(chan struct{})
	relay := contact.RelayFunc(func(ctx context.Context, form contact.Form) error {
		<-ctx.Done()
		close(cancelled)
		return ctx.Err()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	s := NewContactService(relay, logging.Discard())
	err := s.Deliver(ctx, validForm, SubmissionInfo{})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	select {
	case <-cancelled:
	default:
		t.Fatal("relay was not cancelled")
	}
}
