package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/roomtrack/roomtrack/internal/core/domain"
)

const (
	roomCollection   = "rooms"
	memberCollection = "room_members"
)

// RoomRepository persists rooms and memberships in two collections. The
// membership collection carries a unique index on (room_id, user_id).
type RoomRepository struct {
	rooms   *mongo.Collection
	members *mongo.Collection
}

func NewRoomRepository(db *mongo.Database) *RoomRepository {
	return &RoomRepository{
		rooms:   db.Collection(roomCollection),
		members: db.Collection(memberCollection),
	}
}

type roomDoc struct {
	ID          string `bson:"_id"`
	Name        string `bson:"name"`
	Topic       string `bson:"topic,omitempty"`
	CreatedBy   string `bson:"created_by"`
	CreatedAt   int64  `bson:"created_at"`
	MemberCount int    `bson:"member_count"`
}

type memberDoc struct {
	RoomID       string `bson:"room_id"`
	UserID       string `bson:"user_id"`
	JoinedAt     int64  `bson:"joined_at"`
	LastActiveAt int64  `bson:"last_active_at"`
}

// IsMember reports whether userID belongs to roomID. The room existence
// check runs first so a missing room is never reported as a membership miss.
func (r *RoomRepository) IsMember(ctx context.Context, userID, roomID string) (bool, error) {
	n, err := r.rooms.CountDocuments(ctx, bson.M{"_id": roomID})
	if err != nil {
		return false, fmt.Errorf("count room: %w", err)
	}
	if n == 0 {
		return false, domain.ErrRoomNotFound
	}

	n, err = r.members.CountDocuments(ctx, bson.M{"room_id": roomID, "user_id": userID})
	if err != nil {
		return false, fmt.Errorf("count membership: %w", err)
	}
	return n > 0, nil
}

func (r *RoomRepository) FindDetail(ctx context.Context, roomID, viewerID string) (*domain.Room, *domain.Membership, error) {
	var rd roomDoc
	if err := r.rooms.FindOne(ctx, bson.M{"_id": roomID}).Decode(&rd); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil, domain.ErrRoomNotFound
		}
		return nil, nil, fmt.Errorf("find room: %w", err)
	}

	var md memberDoc
	if err := r.members.FindOne(ctx, bson.M{"room_id": roomID, "user_id": viewerID}).Decode(&md); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil, domain.ErrNotRoomMember
		}
		return nil, nil, fmt.Errorf("find membership: %w", err)
	}

	return toRoom(rd), toMembership(md), nil
}

func (r *RoomRepository) ListForUser(ctx context.Context, userID string) ([]domain.Room, []domain.Membership, error) {
	cur, err := r.members.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, nil, fmt.Errorf("list memberships: %w", err)
	}

	var mds []memberDoc
	if err := cur.All(ctx, &mds); err != nil {
		return nil, nil, fmt.Errorf("decode memberships: %w", err)
	}
	if len(mds) == 0 {
		return nil, nil, nil
	}

	ids := make([]string, 0, len(mds))
	memberships := make([]domain.Membership, 0, len(mds))
	for _, md := range mds {
		ids = append(ids, md.RoomID)
		memberships = append(memberships, *toMembership(md))
	}

	cur, err = r.rooms.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, nil, fmt.Errorf("list rooms: %w", err)
	}

	var rds []roomDoc
	if err := cur.All(ctx, &rds); err != nil {
		return nil, nil, fmt.Errorf("decode rooms: %w", err)
	}

	rooms := make([]domain.Room, 0, len(rds))
	for _, rd := range rds {
		rooms = append(rooms, *toRoom(rd))
	}
	return rooms, memberships, nil
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room, creator *domain.Membership) error {
	_, err := r.rooms.InsertOne(ctx, roomDoc{
		ID:          room.ID,
		Name:        room.Name,
		Topic:       room.Topic,
		CreatedBy:   room.CreatedBy,
		CreatedAt:   room.CreatedAt.Unix(),
		MemberCount: room.MemberCount,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrRoomExists
		}
		return fmt.Errorf("insert room: %w", err)
	}

	_, err = r.members.InsertOne(ctx, memberDoc{
		RoomID:       creator.RoomID,
		UserID:       creator.UserID,
		JoinedAt:     creator.JoinedAt.Unix(),
		LastActiveAt: creator.LastActiveAt.Unix(),
	})
	if err != nil {
		return fmt.Errorf("insert creator membership: %w", err)
	}
	return nil
}

func (r *RoomRepository) AddMember(ctx context.Context, m *domain.Membership) (*domain.Room, error) {
	var rd roomDoc
	if err := r.rooms.FindOne(ctx, bson.M{"_id": m.RoomID}).Decode(&rd); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRoomNotFound
		}
		return nil, fmt.Errorf("find room: %w", err)
	}

	_, err := r.members.InsertOne(ctx, memberDoc{
		RoomID:       m.RoomID,
		UserID:       m.UserID,
		JoinedAt:     m.JoinedAt.Unix(),
		LastActiveAt: m.LastActiveAt.Unix(),
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAlreadyMember
		}
		return nil, fmt.Errorf("insert membership: %w", err)
	}

	if err := r.rooms.FindOneAndUpdate(ctx,
		bson.M{"_id": m.RoomID},
		bson.M{"$inc": bson.M{"member_count": 1}},
	).Decode(&rd); err != nil {
		return nil, fmt.Errorf("bump member count: %w", err)
	}
	rd.MemberCount++

	return toRoom(rd), nil
}

func (r *RoomRepository) TouchMember(ctx context.Context, roomID, userID string, ts time.Time) error {
	_, err := r.members.UpdateOne(ctx,
		bson.M{"room_id": roomID, "user_id": userID, "last_active_at": bson.M{"$lt": ts.Unix()}},
		bson.M{"$set": bson.M{"last_active_at": ts.Unix()}},
	)
	if err != nil {
		return fmt.Errorf("touch membership: %w", err)
	}
	return nil
}

func toRoom(rd roomDoc) *domain.Room {
	return &domain.Room{
		ID:          rd.ID,
		Name:        rd.Name,
		Topic:       rd.Topic,
		CreatedBy:   rd.CreatedBy,
		CreatedAt:   unixToTime(rd.CreatedAt),
		MemberCount: rd.MemberCount,
	}
}

func toMembership(md memberDoc) *domain.Membership {
	return &domain.Membership{
		RoomID:       md.RoomID,
		UserID:       md.UserID,
		JoinedAt:     unixToTime(md.JoinedAt),
		LastActiveAt: unixToTime(md.LastActiveAt),
	}
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
