package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/roomtrack/roomtrack/internal/core/domain"
	"github.com/roomtrack/roomtrack/internal/core/ports"
)

type RoomService struct {
	repo     ports.RoomRepository
	presence ports.PresenceStore
	logger   zerolog.Logger
}

func NewRoomService(repo ports.RoomRepository, presence ports.PresenceStore, logger zerolog.Logger) *RoomService {
	return &RoomService{repo: repo, presence: presence, logger: logger}
}

// GetRoomDetail returns the membership-gated detail view of a room.
//
// The membership check is a hard precondition evaluated before any detail
// read: a non-member caller never triggers a detail fetch, so nothing about
// the room's contents can leak through this path.
func (s *RoomService) GetRoomDetail(ctx context.Context, input ports.GetRoomDetailInput) (*ports.RoomDetail, error) {
	if input.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	if input.RoomID == "" {
		return nil, domain.ErrRoomNotFound
	}

	member, err := s.repo.IsMember(ctx, input.UserID, input.RoomID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, domain.ErrNotRoomMember
	}

	room, membership, err := s.repo.FindDetail(ctx, input.RoomID, input.UserID)
	if err != nil {
		return nil, err
	}

	detail := &ports.RoomDetail{
		ID:          room.ID,
		Name:        room.Name,
		Topic:       room.Topic,
		CreatedBy:   room.CreatedBy,
		CreatedAt:   room.CreatedAt,
		MemberCount: room.MemberCount,
		Viewer: ports.ViewerState{
			JoinedAt:     membership.JoinedAt,
			LastActiveAt: membership.LastActiveAt,
		},
	}

	// Presence marks are written on every heartbeat while the membership row
	// is only flushed by the activity pipeline, so prefer the fresher mark.
	if ts, err := s.presence.LastActive(ctx, input.RoomID, input.UserID); err == nil && ts.After(detail.Viewer.LastActiveAt) {
		detail.Viewer.LastActiveAt = ts
	}

	return detail, nil
}

// ListRooms returns every room the user belongs to.
func (s *RoomService) ListRooms(ctx context.Context, userID string) ([]ports.RoomSummary, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}

	rooms, memberships, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	joined := make(map[string]time.Time, len(memberships))
	for _, m := range memberships {
		joined[m.RoomID] = m.JoinedAt
	}

	summaries := make([]ports.RoomSummary, 0, len(rooms))
	for _, r := range rooms {
		summaries = append(summaries, ports.RoomSummary{
			ID:          r.ID,
			Name:        r.Name,
			Topic:       r.Topic,
			MemberCount: r.MemberCount,
			JoinedAt:    joined[r.ID],
		})
	}
	return summaries, nil
}

// CreateRoom creates a room and makes the creator its first member.
func (s *RoomService) CreateRoom(ctx context.Context, input ports.CreateRoomInput) (*ports.RoomSummary, error) {
	if input.CreatorID == "" {
		return nil, domain.ErrUnauthorized
	}

	now := time.Now().UTC()
	room := &domain.Room{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(input.Name),
		Topic:       strings.TrimSpace(input.Topic),
		CreatedBy:   input.CreatorID,
		CreatedAt:   now,
		MemberCount: 1,
	}
	creator := &domain.Membership{
		RoomID:       room.ID,
		UserID:       input.CreatorID,
		JoinedAt:     now,
		LastActiveAt: now,
	}

	if err := s.repo.Create(ctx, room, creator); err != nil {
		s.logger.Error().Err(err).Str("room_name", room.Name).Msg("failed to create room")
		return nil, err
	}

	s.logger.Info().Str("room_id", room.ID).Str("user_id", input.CreatorID).Msg("room created")

	return &ports.RoomSummary{
		ID:          room.ID,
		Name:        room.Name,
		Topic:       room.Topic,
		MemberCount: room.MemberCount,
		JoinedAt:    creator.JoinedAt,
	}, nil
}

// JoinRoom adds the user to an existing room.
func (s *RoomService) JoinRoom(ctx context.Context, userID, roomID string) (*ports.RoomSummary, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}

	now := time.Now().UTC()
	room, err := s.repo.AddMember(ctx, &domain.Membership{
		RoomID:       roomID,
		UserID:       userID,
		JoinedAt:     now,
		LastActiveAt: now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("room_id", roomID).Str("user_id", userID).Msg("user joined room")

	return &ports.RoomSummary{
		ID:          room.ID,
		Name:        room.Name,
		Topic:       room.Topic,
		MemberCount: room.MemberCount,
		JoinedAt:    now,
	}, nil
}
