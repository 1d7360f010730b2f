package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RedisReplayGuard remembers recently processed webhook event ids so a
// redelivered confirm postback is not applied twice. The platform
// delivers at least once; without this guard a genuine redelivery
// double-applies the mutation.
type RedisReplayGuard struct {
	client    *redis.Client
	ttl       time.Duration
	keyPrefix string
	logger    zerolog.Logger
}

// NewRedisReplayGuard creates a replay guard. TTL bounds how long an
// event id is remembered; platform retries land well inside minutes.
func NewRedisReplayGuard(client *redis.Client, ttl time.Duration, logger zerolog.Logger) *RedisReplayGuard {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &RedisReplayGuard{
		client:    client,
		ttl:       ttl,
		keyPrefix: "webhook:event:",
		logger:    logger,
	}
}

// FirstDelivery claims an event id. It returns false when the id was
// already claimed within the TTL window.
func (g *RedisReplayGuard) FirstDelivery(ctx context.Context, eventID string) (bool, error) {
	if eventID == "" {
		// Nothing to key on; treat as first delivery.
		return true, nil
	}

	ok, err := g.client.SetNX(ctx, g.keyPrefix+eventID, "1", g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to claim event id: %w", err)
	}
	if !ok {
		g.logger.Warn().Str("eventId", eventID).Msg("Duplicate webhook event delivery detected")
	}
	return ok, nil
}
