package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"tirehub-line-gateway/internal/application"
	"tirehub-line-gateway/internal/application/event_handlers"
	"tirehub-line-gateway/internal/infrastructure/line"
	"tirehub-line-gateway/internal/infrastructure/metrics"
	"tirehub-line-gateway/internal/ports"

	"github.com/rs/zerolog"
)

const maxBodyBytes int64 = 1 << 20 // 1 MiB

// WebhookHandler is the single inbound surface: it authenticates the
// raw request against per-tenant secrets, then feeds the events through
// the dispatcher sequentially in delivery order.
type WebhookHandler struct {
	tenants      *application.TenantService
	dispatcher   *event_handlers.Dispatcher
	stores       ports.StoreRepository
	metrics      *metrics.Metrics
	logger       zerolog.Logger
	eventTimeout time.Duration
}

// NewWebhookHandler creates the webhook HTTP handler. eventTimeout
// bounds the whole request so the platform never sees a hung handler,
// which would trigger retries that compound load.
func NewWebhookHandler(
	tenants *application.TenantService,
	dispatcher *event_handlers.Dispatcher,
	stores ports.StoreRepository,
	m *metrics.Metrics,
	logger zerolog.Logger,
	eventTimeout time.Duration,
) *WebhookHandler {
	if eventTimeout <= 0 {
		eventTimeout = 25 * time.Second
	}
	return &WebhookHandler{
		tenants:      tenants,
		dispatcher:   dispatcher,
		stores:       stores,
		metrics:      m,
		logger:       logger,
		eventTimeout: eventTimeout,
	}
}

// Handle processes one webhook delivery.
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.eventTimeout)
	defer cancel()

	// The signature covers the raw wire bytes; the body must be read
	// before any JSON parsing.
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]any{"error": "failed to read request body"})
		return
	}
	defer r.Body.Close()
	if int64(len(body)) > maxBodyBytes {
		h.writeJSON(w, http.StatusRequestEntityTooLarge, map[string]any{"error": "payload too large"})
		return
	}

	tenant, err := h.tenants.Resolve(ctx, body, r.Header.Get(line.SignatureHeader))
	if err != nil {
		h.logger.Error().Err(err).Msg("Tenant resolution failed")
		h.writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal error"})
		return
	}
	if tenant == nil {
		// No event processing happens past this point. Hard boundary.
		h.metrics.SignatureFailures.Inc()
		h.logger.Warn().Msg("Webhook signature matched no tenant")
		h.writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "invalid signature"})
		return
	}

	var req line.WebhookRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.logger.Warn().Err(err).Msg("Failed to parse webhook payload")
		h.writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid payload"})
		return
	}

	if len(req.Events) == 0 {
		// The platform's endpoint-verification ping. First one flips the
		// tenant's verified flag.
		if tenant.Store != nil && !tenant.Store.LineWebhookVerified {
			if err := h.stores.MarkWebhookVerified(ctx, tenant.Store.ID); err != nil {
				h.logger.Error().Err(err).Str("storeId", tenant.Store.ID).Msg("Failed to mark webhook verified")
			} else {
				h.logger.Info().Str("storeId", tenant.Store.ID).Msg("Webhook endpoint verified")
			}
		}
		h.writeJSON(w, http.StatusOK, map[string]any{"success": true})
		return
	}

	// Events within one delivery are causally related; process them
	// sequentially in order. A failed event never blocks the rest.
	for i := range req.Events {
		if err := h.dispatcher.Dispatch(ctx, tenant, &req.Events[i]); err != nil {
			h.logger.Error().
				Err(err).
				Str("eventType", req.Events[i].Type).
				Str("storeId", tenant.StoreID()).
				Msg("Event processing failed")
		}
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *WebhookHandler) writeJSON(w http.ResponseWriter, status int, payload map[string]any) {
	h.metrics.WebhookRequests.WithLabelValues(strconv.Itoa(status)).Inc()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error().Err(err).Msg("Failed to write response")
	}
}
