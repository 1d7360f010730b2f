package event_handlers

import (
	"context"

	"tirehub-line-gateway/internal/application"
	"tirehub-line-gateway/internal/infrastructure/line"
	"tirehub-line-gateway/internal/presenter"

	"github.com/rs/zerolog"
)

// FollowHandler greets users who add the bot as a friend.
type FollowHandler struct {
	logger zerolog.Logger
}

// NewFollowHandler creates a new follow event handler.
func NewFollowHandler(logger zerolog.Logger) *FollowHandler {
	return &FollowHandler{logger: logger}
}

// CanHandle returns true for follow events.
func (h *FollowHandler) CanHandle(event *line.WebhookEvent) bool {
	return event.Type == line.EventTypeFollow
}

// Handle replies with the welcome message.
func (h *FollowHandler) Handle(ctx context.Context, tenant *application.Tenant, event *line.WebhookEvent) ([]line.Message, error) {
	h.logger.Info().
		Str("userId", event.Source.UserID).
		Str("storeId", tenant.StoreID()).
		Msg("New follower")
	return presenter.Welcome(), nil
}
