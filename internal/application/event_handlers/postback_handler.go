package event_handlers

import (
	"context"
	"errors"
	"net/url"
	"strconv"

	"tirehub-line-gateway/internal/application"
	"tirehub-line-gateway/internal/domain"
	"tirehub-line-gateway/internal/infrastructure/line"
	"tirehub-line-gateway/internal/infrastructure/metrics"
	"tirehub-line-gateway/internal/ports"
	"tirehub-line-gateway/internal/presenter"

	"github.com/rs/zerolog"
)

// PostbackHandler processes button presses. Payloads are validated
// defensively: a stale or fabricated payload must degrade to an
// ignored event or a user-facing error, never a crash or an
// unauthorized mutation.
type PostbackHandler struct {
	permissions *application.PermissionService
	search      *application.SearchService
	stock       *application.StockService
	guard       ports.ReplayGuard
	metrics     *metrics.Metrics
	logger      zerolog.Logger
}

// NewPostbackHandler creates a new postback handler. guard may be nil,
// which disables confirm deduplication.
func NewPostbackHandler(
	permissions *application.PermissionService,
	search *application.SearchService,
	stock *application.StockService,
	guard ports.ReplayGuard,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *PostbackHandler {
	return &PostbackHandler{
		permissions: permissions,
		search:      search,
		stock:       stock,
		guard:       guard,
		metrics:     m,
		logger:      logger,
	}
}

// CanHandle returns true for postback events.
func (h *PostbackHandler) CanHandle(event *line.WebhookEvent) bool {
	return event.Type == line.EventTypePostback && event.Postback != nil
}

// Handle routes on the action embedded in the payload. Unrecognized or
// malformed payloads are ignored rather than answered.
func (h *PostbackHandler) Handle(ctx context.Context, tenant *application.Tenant, event *line.WebhookEvent) ([]line.Message, error) {
	values, err := url.ParseQuery(event.Postback.Data)
	if err != nil {
		h.logger.Warn().Err(err).Str("data", event.Postback.Data).Msg("Malformed postback payload")
		return nil, nil
	}

	switch values.Get(presenter.KeyAction) {
	case presenter.ActionSearch:
		return h.handleSearch(ctx, tenant, event, values)
	case presenter.ActionPreAdjust:
		return h.handlePreAdjust(ctx, tenant, event, values)
	case presenter.ActionConfirmAdjust:
		return h.handleConfirmAdjust(ctx, tenant, event, values)
	case presenter.ActionCancel:
		return presenter.Cancelled(), nil
	case presenter.ActionCheckBranches:
		return h.handleCheckBranches(ctx, values)
	case presenter.ActionReserve:
		return presenter.ReserveAck(), nil
	default:
		h.logger.Debug().Str("data", event.Postback.Data).Msg("Unrecognized postback action, ignoring")
		return nil, nil
	}
}

// handleSearch serves a next-page press. The keyword and page round-
// trip through the button payload; the server kept nothing.
func (h *PostbackHandler) handleSearch(ctx context.Context, tenant *application.Tenant, event *line.WebhookEvent, values url.Values) ([]line.Message, error) {
	keyword := values.Get(presenter.KeyKeyword)
	if keyword == "" {
		return nil, nil
	}
	page, err := strconv.Atoi(values.Get(presenter.KeyPage))
	if err != nil || page < 1 {
		page = 1
	}

	perm, err := h.permissions.Resolve(ctx, event.Source.UserID, tenant.StoreID())
	if err != nil {
		return nil, err
	}

	result, err := h.search.Search(ctx, keyword, perm, page)
	if err != nil {
		return nil, err
	}
	return presenter.SearchResults(result, perm.CanAdjust), nil
}

// handlePreAdjust re-reads the live quantity and renders the
// confirmation card. Time may have passed since the search card was
// rendered, so the quantity it showed is not trusted.
func (h *PostbackHandler) handlePreAdjust(ctx context.Context, tenant *application.Tenant, event *line.WebhookEvent, values url.Values) ([]line.Message, error) {
	dotID := values.Get(presenter.KeyDotID)
	change, convErr := strconv.Atoi(values.Get(presenter.KeyChange))
	if dotID == "" || convErr != nil || change == 0 {
		h.logger.Warn().Str("data", event.Postback.Data).Msg("Invalid pre_adjust payload, ignoring")
		return nil, nil
	}

	perm, err := h.permissions.Resolve(ctx, event.Source.UserID, tenant.StoreID())
	if err != nil {
		return nil, err
	}
	if !perm.CanAdjust {
		return presenter.AccessDenied(), nil
	}

	preview, err := h.stock.PreviewAdjust(ctx, dotID, change)
	if errors.Is(err, domain.ErrNotFound) {
		return presenter.NotFound(), nil
	}
	if err != nil {
		return nil, err
	}

	return presenter.ConfirmAdjust(preview, change, values.Get(presenter.KeyTireInfo)), nil
}

// handleConfirmAdjust commits the mutation. Capability is re-checked
// here: permissions could have been revoked between the confirmation
// card and the button press.
func (h *PostbackHandler) handleConfirmAdjust(ctx context.Context, tenant *application.Tenant, event *line.WebhookEvent, values url.Values) ([]line.Message, error) {
	dotID := values.Get(presenter.KeyDotID)
	change, convErr := strconv.Atoi(values.Get(presenter.KeyChange))
	if dotID == "" || convErr != nil || change == 0 {
		h.logger.Warn().Str("data", event.Postback.Data).Msg("Invalid confirm_adjust payload, ignoring")
		return nil, nil
	}

	perm, err := h.permissions.Resolve(ctx, event.Source.UserID, tenant.StoreID())
	if err != nil {
		return nil, err
	}
	if !perm.CanAdjust {
		return presenter.AccessDenied(), nil
	}

	if h.guard != nil && event.WebhookEventID != "" {
		first, err := h.guard.FirstDelivery(ctx, event.WebhookEventID)
		if err != nil {
			// Guard unavailable: fail open and accept the redelivery risk.
			h.logger.Warn().Err(err).Msg("Replay guard unavailable, applying without dedup")
		} else if !first {
			return presenter.DuplicateDelivery(), nil
		}
	}

	adjustment, err := h.stock.Adjust(ctx, dotID, change, event.Source.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		return presenter.NotFound(), nil
	}
	if err != nil {
		return nil, err
	}

	action := domain.StockActionAdd
	if change < 0 {
		action = domain.StockActionRemove
	}
	h.metrics.StockMutations.WithLabelValues(action).Inc()

	h.logger.Info().
		Str("dotId", dotID).
		Str("userId", event.Source.UserID).
		Int("before", adjustment.Before).
		Int("after", adjustment.After).
		Msg("Stock adjusted via bot")

	return presenter.AdjustCommitted(adjustment), nil
}

// handleCheckBranches lists shared stock of the same tire at other
// stores. Read-only, so no permission gate beyond shared visibility.
func (h *PostbackHandler) handleCheckBranches(ctx context.Context, values url.Values) ([]line.Message, error) {
	tireID := values.Get(presenter.KeyTireID)
	if tireID == "" {
		return nil, nil
	}

	result, err := h.search.SearchBranches(ctx, tireID)
	if errors.Is(err, domain.ErrNotFound) {
		return presenter.NotFound(), nil
	}
	if err != nil {
		return nil, err
	}
	return presenter.BranchResults(result), nil
}
