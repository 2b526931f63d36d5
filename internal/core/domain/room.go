package domain

import (
	"errors"
	"time"
)

var ErrRoomNotFound = errors.New("room not found")
var ErrNotRoomMember = errors.New("not a room member")
var ErrRoomExists = errors.New("room already exists")
var ErrAlreadyMember = errors.New("already a room member")
var ErrUnauthorized = errors.New("unauthorized")

// Room is a shared session space users join. Details are only visible to
// current members.
type Room struct {
	ID          string    `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Topic       string    `json:"topic,omitempty" bson:"topic,omitempty"`
	CreatedBy   string    `json:"created_by" bson:"created_by"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	MemberCount int       `json:"member_count" bson:"member_count"`
}

// Membership links a user to a room. LastActiveAt is per viewer and feeds
// the personalized fields of a room detail.
type Membership struct {
	RoomID       string    `json:"room_id" bson:"room_id"`
	UserID       string    `json:"user_id" bson:"user_id"`
	JoinedAt     time.Time `json:"joined_at" bson:"joined_at"`
	LastActiveAt time.Time `json:"last_active_at" bson:"last_active_at"`
}
