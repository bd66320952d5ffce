package events

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"greenshop/internal/domain"
	"greenshop/internal/repository"
)

// CartChangeChannel is the Redis pub/sub channel cart changes go out on.
const CartChangeChannel = "greenshop:cart-change"

type cartChangeMessage struct {
	Count int `json:"count"`
}

// CartBroadcaster relays cart change notifications over Redis pub/sub so
// other processes can refresh their cart badge without polling. It does
// not resolve write conflicts between processes; last writer still wins.
type CartBroadcaster struct {
	client *redis.Client
	logger *zap.Logger
}

// NewCartBroadcaster creates a broadcaster on an existing Redis client.
func NewCartBroadcaster(client *redis.Client, logger *zap.Logger) *CartBroadcaster {
	return &CartBroadcaster{client: client, logger: logger}
}

// Listener returns the callback to register with CartRepository.Subscribe.
// Broadcast failures are logged and swallowed; a cart mutation never fails
// because the relay is down.
func (b *CartBroadcaster) Listener() repository.CartListener {
	return func(items []domain.CartItem) {
		count := 0
		for _, item := range items {
			count += item.Quantity
		}

		body, err := json.Marshal(cartChangeMessage{Count: count})
		if err != nil {
			b.logger.Error("Failed to encode cart change message", zap.Error(err))
			return
		}

		if err := b.client.Publish(context.Background(), CartChangeChannel, body).Err(); err != nil {
			b.logger.Warn("Failed to broadcast cart change",
				zap.Error(err),
				zap.Int("count", count),
			)
		}
	}
}
