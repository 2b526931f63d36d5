package ports

import (
	"context"
	"time"
)

// GetRoomDetailInput carries the parameters for fetching a single room.
// UserID identifies the viewer; details are membership-gated.
type GetRoomDetailInput struct {
	RoomID string
	UserID string
}

// ViewerState holds the per-viewer fields of a room detail.
type ViewerState struct {
	JoinedAt     time.Time
	LastActiveAt time.Time
}

// RoomDetail is the full membership-gated view of a room.
type RoomDetail struct {
	ID          string
	Name        string
	Topic       string
	CreatedBy   string
	CreatedAt   time.Time
	MemberCount int
	Viewer      ViewerState
}

// RoomSummary is the lightweight view used in room lists.
type RoomSummary struct {
	ID          string
	Name        string
	Topic       string
	MemberCount int
	JoinedAt    time.Time
}

// CreateRoomInput carries the data needed to create a room. The creator
// becomes the first member.
type CreateRoomInput struct {
	Name      string
	Topic     string
	CreatorID string
}

// RoomService defines the use-case operations for rooms.
type RoomService interface {
	// GetRoomDetail enforces membership before any detail read: a caller that
	// is not a member gets domain.ErrNotRoomMember and no room data.
	GetRoomDetail(ctx context.Context, input GetRoomDetailInput) (*RoomDetail, error)
	ListRooms(ctx context.Context, userID string) ([]RoomSummary, error)
	CreateRoom(ctx context.Context, input CreateRoomInput) (*RoomSummary, error)
	JoinRoom(ctx context.Context, userID, roomID string) (*RoomSummary, error)
}
