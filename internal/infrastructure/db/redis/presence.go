package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const presenceTTL = time.Hour

// PresenceStore keeps short-lived last-active marks per (room, user),
// backed by Redis. Key format: presence:<room_id>:<user_id>.
//
// Marks expire after presenceTTL; the durable membership row in Mongo is the
// fallback when a mark is gone.
type PresenceStore struct {
	client *redis.Client
}

// NewPresenceStore creates a PresenceStore wrapping the given Redis client.
func NewPresenceStore(client *redis.Client) *PresenceStore {
	return &PresenceStore{client: client}
}

// Mark records that the user was active in the room at ts.
func (p *PresenceStore) Mark(ctx context.Context, roomID, userID string, ts time.Time) error {
	if err := p.client.Set(ctx, p.key(roomID, userID), ts.Unix(), presenceTTL).Err(); err != nil {
		return fmt.Errorf("presence mark: %w", err)
	}
	return nil
}

// LastActive returns the last recorded mark, or the zero time when none exists.
func (p *PresenceStore) LastActive(ctx context.Context, roomID, userID string) (time.Time, error) {
	val, err := p.client.Get(ctx, p.key(roomID, userID)).Result()
	if err == redis.Nil {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("presence get: %w", err)
	}

	unix, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("presence parse: %w", err)
	}
	return time.Unix(unix, 0).UTC(), nil
}

func (p *PresenceStore) key(roomID, userID string) string {
	return fmt.Sprintf("presence:%s:%s", roomID, userID)
}
