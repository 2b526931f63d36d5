package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/roomtrack/roomtrack/internal/core/domain"
	"github.com/roomtrack/roomtrack/internal/core/ports"
)

type activityService struct {
	repo     ports.RoomRepository
	presence ports.PresenceStore
	log      zerolog.Logger
}

// NewActivityService returns an ActivityService that applies room activity
// signals: it bumps the member's last_active_at and refreshes the
// short-lived presence mark.
func NewActivityService(repo ports.RoomRepository, presence ports.PresenceStore, log zerolog.Logger) ports.ActivityService {
	return &activityService{repo: repo, presence: presence, log: log}
}

func (s *activityService) Process(ctx context.Context, in ports.RoomActivityInput) error {
	ts := in.OccurredAt
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	// Activity from non-members is dropped, not recorded.
	member, err := s.repo.IsMember(ctx, in.UserID, in.RoomID)
	if err != nil {
		return err
	}
	if !member {
		return domain.ErrNotRoomMember
	}

	if err := s.repo.TouchMember(ctx, in.RoomID, in.UserID, ts); err != nil {
		return err
	}

	// Presence is best effort; the membership row already holds the truth.
	if err := s.presence.Mark(ctx, in.RoomID, in.UserID, ts); err != nil {
		s.log.Warn().Err(err).Str("room_id", in.RoomID).Str("user_id", in.UserID).Msg("presence mark failed")
	}

	return nil
}
