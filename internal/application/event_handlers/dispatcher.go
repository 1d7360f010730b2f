// Package event_handlers routes inbound webhook events to their
// handlers. Each event is independent: every handler re-authorizes the
// sender and reconstructs its context from the event payload alone.
package event_handlers

import (
	"context"

	"tirehub-line-gateway/internal/application"
	"tirehub-line-gateway/internal/infrastructure/line"
	"tirehub-line-gateway/internal/infrastructure/metrics"
	"tirehub-line-gateway/internal/ports"
	"tirehub-line-gateway/internal/presenter"

	"github.com/rs/zerolog"
)

// EventHandler processes one kind of webhook event and returns the
// reply messages to send, if any.
type EventHandler interface {
	// CanHandle returns true if this handler can process the given event.
	CanHandle(event *line.WebhookEvent) bool

	// Handle processes the event and returns reply messages.
	Handle(ctx context.Context, tenant *application.Tenant, event *line.WebhookEvent) ([]line.Message, error)
}

// Dispatcher fans events out to registered handlers and sends the
// resulting reply. Events with no matching handler are ignored.
type Dispatcher struct {
	handlers []EventHandler
	replies  ports.ReplyClient
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

// NewDispatcher creates a new event dispatcher.
func NewDispatcher(replies ports.ReplyClient, m *metrics.Metrics, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		replies: replies,
		metrics: m,
		logger:  logger,
	}
}

// RegisterHandler adds a handler. Handlers are consulted in
// registration order; the first match wins.
func (d *Dispatcher) RegisterHandler(handler EventHandler) {
	d.handlers = append(d.handlers, handler)
}

// Dispatch processes one event. A handler failure is answered with a
// generic failure reply so the user never sees a silent drop, and the
// error is surfaced to the caller for logging only: the webhook
// response stays 200 because the platform would otherwise redeliver.
func (d *Dispatcher) Dispatch(ctx context.Context, tenant *application.Tenant, event *line.WebhookEvent) error {
	d.metrics.Events.WithLabelValues(event.Type).Inc()

	for _, handler := range d.handlers {
		if !handler.CanHandle(event) {
			continue
		}

		messages, err := handler.Handle(ctx, tenant, event)
		if err != nil {
			d.logger.Error().
				Err(err).
				Str("eventType", event.Type).
				Str("storeId", tenant.StoreID()).
				Msg("Event handler failed")
			messages = presenter.GenericError()
		}
		d.reply(ctx, tenant, event, messages)
		return err
	}

	d.logger.Debug().Str("eventType", event.Type).Msg("No handler for event, ignoring")
	return nil
}

// reply sends the messages using the event's one-shot reply token.
// Failures are logged and counted but never retried: the token is
// single use and the interaction is lost either way.
func (d *Dispatcher) reply(ctx context.Context, tenant *application.Tenant, event *line.WebhookEvent, messages []line.Message) {
	if event.ReplyToken == "" || len(messages) == 0 {
		return
	}

	if err := d.replies.Reply(ctx, tenant.AccessToken, event.ReplyToken, messages); err != nil {
		d.metrics.ReplyFailures.Inc()
		d.logger.Error().
			Err(err).
			Str("eventType", event.Type).
			Str("storeId", tenant.StoreID()).
			Msg("Failed to send reply")
	}
}
