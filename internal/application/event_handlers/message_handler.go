package event_handlers

import (
	"context"
	"strings"

	"tirehub-line-gateway/internal/application"
	"tirehub-line-gateway/internal/domain"
	"tirehub-line-gateway/internal/infrastructure/line"
	"tirehub-line-gateway/internal/presenter"

	"github.com/rs/zerolog"
)

// MessageHandler classifies free text: a strict 6-character code is a
// link-code redemption attempt, anything else is a search query for
// page one.
type MessageHandler struct {
	permissions *application.PermissionService
	search      *application.SearchService
	links       *application.LinkService
	logger      zerolog.Logger
}

// NewMessageHandler creates a new text message handler.
func NewMessageHandler(
	permissions *application.PermissionService,
	search *application.SearchService,
	links *application.LinkService,
	logger zerolog.Logger,
) *MessageHandler {
	return &MessageHandler{
		permissions: permissions,
		search:      search,
		links:       links,
		logger:      logger,
	}
}

// CanHandle returns true for text message events. Stickers, images and
// other message types are ignored.
func (h *MessageHandler) CanHandle(event *line.WebhookEvent) bool {
	return event.Type == line.EventTypeMessage &&
		event.Message != nil &&
		event.Message.Type == line.MessageTypeText
}

// Handle runs the link-code or search flow.
func (h *MessageHandler) Handle(ctx context.Context, tenant *application.Tenant, event *line.WebhookEvent) ([]line.Message, error) {
	text := strings.TrimSpace(event.Message.Text)
	if text == "" {
		return nil, nil
	}
	userID := event.Source.UserID

	if domain.IsLinkCode(text) {
		outcome, err := h.links.Redeem(ctx, text, userID)
		if err != nil {
			return nil, err
		}
		switch outcome {
		case application.LinkSuccess:
			return presenter.LinkSuccess(), nil
		case application.LinkExpired:
			return presenter.LinkExpired(), nil
		default:
			return presenter.LinkUnknown(), nil
		}
	}

	perm, err := h.permissions.Resolve(ctx, userID, tenant.StoreID())
	if err != nil {
		return nil, err
	}

	result, err := h.search.Search(ctx, text, perm, 1)
	if err != nil {
		return nil, err
	}

	return presenter.SearchResults(result, perm.CanAdjust), nil
}
