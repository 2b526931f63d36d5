package handler

import "time"

type createRoomRequest struct {
	Name  string `json:"name"  validate:"required,min=1,max=50"`
	Topic string `json:"topic" validate:"max=200"`
}

type roomActivityRequest struct {
	RoomID     string    `json:"room_id"     validate:"required"`
	OccurredAt time.Time `json:"occurred_at"`
	Source     string    `json:"source"      validate:"required,oneof=session_timer room_view heartbeat"`
}

type viewerStateResponse struct {
	JoinedAt     string `json:"joined_at"`
	LastActiveAt string `json:"last_active_at,omitempty"`
}

type roomDetailResponse struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Topic       string              `json:"topic,omitempty"`
	CreatedBy   string              `json:"created_by"`
	CreatedAt   string              `json:"created_at"`
	MemberCount int                 `json:"member_count"`
	Viewer      viewerStateResponse `json:"viewer"`
}

type roomSummaryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Topic       string `json:"topic,omitempty"`
	MemberCount int    `json:"member_count"`
	JoinedAt    string `json:"joined_at"`
}

type acceptedResponse struct {
	Message string `json:"message"`
}

// formatTime renders timestamps in the wire format used across the API.
// The zero time renders as the empty string and is omitted where possible.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
