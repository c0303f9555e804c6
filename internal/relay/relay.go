// Package relay holds the providers that deliver a contact form to its
// recipient.
package relay

import (
	"context"
	"fmt"
	"net/http"

	"github.com/osa911/uplink/internal/config"
	"github.com/osa911/uplink/internal/contact"
	"github.com/osa911/uplink/internal/logging"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/osa911/uplink/internal/relay"

// New builds the relay selected by cfg.RelayProvider, wrapped with tracing
func New(cfg *config.Config, logger *logging.Logger) (contact.Relay, error) {
	client := &http.Client{Timeout: cfg.RelayTimeout}

	var r contact.Relay
	var name string
	switch cfg.RelayProvider {
	case config.RelayEmailJS:
		name = config.RelayEmailJS
		r = NewEmailJS(EmailJSConfig{
			ServiceID:  cfg.EmailJSServiceID,
			TemplateID: cfg.EmailJSTemplateID,
			PublicKey:  cfg.EmailJSPublicKey,
			PrivateKey: cfg.EmailJSPrivateKey,
			Endpoint:   cfg.EmailJSEndpoint,
		}, client)
	case config.RelayTelegram:
		name = config.RelayTelegram
		r = NewTelegram(cfg.TelegramBotToken, cfg.TelegramChatID, client)
	case config.RelayLog:
		name = config.RelayLog
		r = NewLog(logger)
	default:
		return nil, fmt.Errorf("unknown relay provider %q", cfg.RelayProvider)
	}

	return Traced(name, r), nil
}

// Traced wraps r so every send is recorded as a span
func Traced(provider string, r contact.Relay) contact.Relay {
	tracer := otel.Tracer(tracerName)
	return contact.RelayFunc(func(ctx context.Context, form contact.Form) error {
		ctx, span := tracer.Start(ctx, "relay.send",
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(
				attribute.String("relay.provider", provider),
				attribute.Int("contact.message_length", len(form.Message)),
			),
		)
		defer span.End()

		err := r.Send(ctx, form)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "relay failed")
		}
		return err
	})
}
