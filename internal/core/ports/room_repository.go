package ports

import (
	"context"
	"time"

	"github.com/roomtrack/roomtrack/internal/core/domain"
)

// RoomRepository defines persistence operations for rooms and memberships.
type RoomRepository interface {
	// IsMember reports whether userID belongs to roomID. Returns
	// domain.ErrRoomNotFound when the room does not exist.
	IsMember(ctx context.Context, userID, roomID string) (bool, error)
	// FindDetail returns the room together with the viewer's membership row.
	// Callers are expected to have verified membership first.
	FindDetail(ctx context.Context, roomID, viewerID string) (*domain.Room, *domain.Membership, error)
	ListForUser(ctx context.Context, userID string) ([]domain.Room, []domain.Membership, error)
	Create(ctx context.Context, room *domain.Room, creator *domain.Membership) error
	AddMember(ctx context.Context, m *domain.Membership) (*domain.Room, error)
	// TouchMember bumps the membership last_active_at to ts when newer.
	TouchMember(ctx context.Context, roomID, userID string, ts time.Time) error
}

// PresenceStore records short-lived last-active marks per (room, user).
type PresenceStore interface {
	Mark(ctx context.Context, roomID, userID string, ts time.Time) error
	// LastActive returns the zero time when no mark exists.
	LastActive(ctx context.Context, roomID, userID string) (time.Time, error)
}
