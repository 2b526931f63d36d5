package ports

import (
	"context"
	"time"
)

// RoomActivityInput is a single activity signal as received over the wire.
type RoomActivityInput struct {
	RoomID     string
	UserID     string
	OccurredAt time.Time
	Source     string
}

// ActivityService consumes queued room activity events.
type ActivityService interface {
	Process(ctx context.Context, input RoomActivityInput) error
}
