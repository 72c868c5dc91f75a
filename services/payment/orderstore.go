package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const orderKeyPrefix = "payment:order:"

// Orders expire alongside the gateway's own order validity window.
const orderTTL = 24 * time.Hour

// RedisOrderStore implements OrderStore on the shared cache client.
type RedisOrderStore struct {
	Client *redis.Client
}

// Save records which appointment an issued order pays for.
func (s *RedisOrderStore) Save(ctx context.Context, orderID, appointmentID string) error {
	if err := s.Client.Set(ctx, orderKeyPrefix+orderID, appointmentID, orderTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache order %s: %w", orderID, err)
	}
	return nil
}

// Lookup resolves an order back to its appointment. An unknown or expired
// order resolves to the empty string, not an error.
func (s *RedisOrderStore) Lookup(ctx context.Context, orderID string) (string, error) {
	val, err := s.Client.Get(ctx, orderKeyPrefix+orderID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("failed to look up order %s: %w", orderID, err)
	}
	return val, nil
}
