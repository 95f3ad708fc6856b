package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// AcquireInFlight marks an AI call of the given kind as outstanding for the
// user. It returns false when a call of that kind is already in flight, so
// the caller can reject re-submission. The TTL is a backstop in case the
// release is never reached.
func AcquireInFlight(ctx context.Context, rdb *redis.Client, userID uuid.UUID, action string, ttl time.Duration) (bool, error) {
	if rdb == nil {
		return true, nil
	}

	key := fmt.Sprintf("in_flight:user:%s:%s", userID.String(), action)

	wasSet, err := rdb.SetNX(ctx, key, "locked", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check in-flight guard in redis: %w", err)
	}

	return wasSet, nil
}

// ReleaseInFlight clears the in-flight marker once the call resolves.
func ReleaseInFlight(ctx context.Context, rdb *redis.Client, userID uuid.UUID, action string) error {
	if rdb == nil {
		return nil
	}
	key := fmt.Sprintf("in_flight:user:%s:%s", userID.String(), action)
	_, err := rdb.Del(ctx, key).Result()
	return err
}

// RevokeToken puts a token id on the logout denylist until the token would
// have expired anyway.
func RevokeToken(ctx context.Context, rdb *redis.Client, tokenID string, until time.Duration) error {
	if rdb == nil {
		return nil
	}
	if until <= 0 {
		return nil
	}
	return rdb.Set(ctx, "revoked_token:"+tokenID, "1", until).Err()
}

// TokenRevoked reports whether a token id has been revoked by logout.
func TokenRevoked(ctx context.Context, rdb *redis.Client, tokenID string) (bool, error) {
	if rdb == nil {
		return false, nil
	}
	n, err := rdb.Exists(ctx, "revoked_token:"+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation in redis: %w", err)
	}
	return n > 0, nil
}
