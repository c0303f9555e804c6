package relay

import (
	"context"

	"github.com/osa911/uplink/internal/contact"
	"github.com/osa911/uplink/internal/logging"
)

const providerLog = "log"

// Log is a development relay that writes submissions to the log
type Log struct {
	logger *logging.Logger
}

// NewLog constructs a logging relay
func NewLog(logger *logging.Logger) *Log {
	return &Log{logger: logger}
}

// Send logs the submission and reports success
func (l *Log) Send(ctx context.Context, form contact.Form) error {
	if err := ctx.Err(); err != nil {
		return contact.AsRelayError(providerLog, err)
	}
	l.logger.Info("[RELAY] contact from %q <%s>: %d characters", form.Name, form.ReturnAddress, len(form.Message))
	l.logger.Debug("[RELAY] message body:\n%s", form.Message)
	return nil
}
