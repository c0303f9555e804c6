package service

import (
	"context"

	"github.com/osa911/uplink/internal/contact"
	"github.com/osa911/uplink/internal/logging"
)

// SubmissionInfo carries request metadata logged with a submission
type SubmissionInfo struct {
	IPAddress string
	UserAgent string
	Referrer  string
}

// ContactService delivers single submissions synchronously
type ContactService struct {
	relay  contact.Relay
	logger *logging.Logger
}

// NewContactService creates a new contact service
func NewContactService(relay contact.Relay, logger *logging.Logger) *ContactService {
	return &ContactService{
		relay:  relay,
		logger: logger,
	}
}

// Deliver runs a fresh submission flow for form until it reaches a terminal
// status. It returns a *contact.ValidationError when fields are missing, a
// *contact.RelayError when delivery failed, or ctx.Err() when the caller
// gave up first (the relay call is cancelled in that case).
func (s *ContactService) Deliver(ctx context.Context, form contact.Form, info SubmissionInfo) error {
	failure := make(chan error, 1)
	flow := contact.NewFlow(s.relay, contact.WithOnResult(func(_ int, res contact.Result) {
		if !res.OK() {
			failure <- res.Err
		}
	}))
	defer flow.Close()

	statuses, unsubscribe := flow.Subscribe()
	defer unsubscribe()

	for _, f := range contact.Fields {
		flow.Edit(f, form.Get(f))
	}

	missing, accepted := flow.Submit()
	if !accepted {
		s.logger.Debug("[CONTACT] rejected submission from %s: missing %v", info.IPAddress, missing.Fields())
		return &contact.ValidationError{Missing: missing}
	}

	for {
		select {
		case status := <-statuses:
			switch status {
			case contact.StatusSent:
				s.logger.Info("[CONTACT] delivered message from %s (ua=%q, referrer=%q)", info.IPAddress, info.UserAgent, info.Referrer)
				return nil
			case contact.StatusError:
				err := contact.AsRelayError("relay", <-failure)
				s.logger.Error("[CONTACT] delivery failed for %s: %v", info.IPAddress, err)
				return err
			}
		case <-ctx.Done():
			s.logger.Warn("[CONTACT] submission from %s abandoned: %v", info.IPAddress, ctx.Err())
			return ctx.Err()
		}
	}
}
