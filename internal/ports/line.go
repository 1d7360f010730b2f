package ports

import (
	"context"

	"tirehub-line-gateway/internal/infrastructure/line"
)

// ReplyClient sends reply messages back to the chat platform. The
// reply token is single use; implementations must not retry.
type ReplyClient interface {
	Reply(ctx context.Context, accessToken, replyToken string, messages []line.Message) error
}

// ReplayGuard deduplicates redelivered webhook events. FirstDelivery
// returns false when the event id was already processed recently.
type ReplayGuard interface {
	FirstDelivery(ctx context.Context, eventID string) (bool, error)
}
