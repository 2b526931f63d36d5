package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/roomtrack/roomtrack/internal/api/metrics"
	"github.com/roomtrack/roomtrack/internal/core/domain"
	"github.com/roomtrack/roomtrack/internal/core/ports"
)

// RoomHandler handles HTTP requests for room operations.
type RoomHandler struct {
	service ports.RoomService
}

func NewRoomHandler(service ports.RoomService) *RoomHandler {
	return &RoomHandler{service: service}
}

// Get handles GET /api/rooms/:roomId.
//
// @Summary      Get details of a room the caller belongs to
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Param        roomId  path      string  true  "Room identifier"
// @Success      200     {object}  successEnvelope
// @Failure      401     {object}  map[string]any
// @Failure      403     {object}  map[string]any
// @Failure      404     {object}  map[string]any
// @Failure      500     {object}  map[string]any
// @Router       /api/rooms/{roomId} [get]
func (h *RoomHandler) Get(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		metrics.RoomDetailRequestsTotal.WithLabelValues("unauthorized").Inc()
		return err
	}

	detail, err := h.service.GetRoomDetail(c.Request().Context(), ports.GetRoomDetailInput{
		RoomID: c.Param("roomId"),
		UserID: userID,
	})
	if err != nil {
		metrics.RoomDetailRequestsTotal.WithLabelValues(detailOutcome(err)).Inc()
		return err
	}

	metrics.RoomDetailRequestsTotal.WithLabelValues("ok").Inc()

	return respond(c, http.StatusOK, map[string]any{
		"room": roomDetailResponse{
			ID:          detail.ID,
			Name:        detail.Name,
			Topic:       detail.Topic,
			CreatedBy:   detail.CreatedBy,
			CreatedAt:   formatTime(detail.CreatedAt),
			MemberCount: detail.MemberCount,
			Viewer: viewerStateResponse{
				JoinedAt:     formatTime(detail.Viewer.JoinedAt),
				LastActiveAt: formatTime(detail.Viewer.LastActiveAt),
			},
		},
	})
}

// List handles GET /api/rooms — every room the caller belongs to.
//
// @Summary      List the caller's rooms
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  successEnvelope
// @Failure      401  {object}  map[string]any
// @Router       /api/rooms [get]
func (h *RoomHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	summaries, err := h.service.ListRooms(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	rooms := make([]roomSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		rooms = append(rooms, roomSummaryResponse{
			ID:          s.ID,
			Name:        s.Name,
			Topic:       s.Topic,
			MemberCount: s.MemberCount,
			JoinedAt:    formatTime(s.JoinedAt),
		})
	}

	return respond(c, http.StatusOK, map[string]any{"rooms": rooms})
}

// Create handles POST /api/rooms. The creator becomes the first member.
//
// @Summary      Create a room
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createRoomRequest  true  "Room details"
// @Success      201   {object}  successEnvelope
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Failure      409   {object}  map[string]any
// @Router       /api/rooms [post]
func (h *RoomHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createRoomRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	summary, err := h.service.CreateRoom(c.Request().Context(), ports.CreateRoomInput{
		Name:      req.Name,
		Topic:     req.Topic,
		CreatorID: userID,
	})
	if err != nil {
		return err
	}

	metrics.RoomsCreatedTotal.Inc()

	return respond(c, http.StatusCreated, map[string]any{"room": toSummaryResponse(summary)})
}

// Join handles POST /api/rooms/:roomId/join.
//
// @Summary      Join an existing room
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Param        roomId  path      string  true  "Room identifier"
// @Success      200     {object}  successEnvelope
// @Failure      401     {object}  map[string]any
// @Failure      404     {object}  map[string]any
// @Failure      409     {object}  map[string]any
// @Router       /api/rooms/{roomId}/join [post]
func (h *RoomHandler) Join(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	summary, err := h.service.JoinRoom(c.Request().Context(), userID, c.Param("roomId"))
	if err != nil {
		return err
	}

	metrics.RoomJoinsTotal.Inc()

	return respond(c, http.StatusOK, map[string]any{"room": toSummaryResponse(summary)})
}

func toSummaryResponse(s *ports.RoomSummary) roomSummaryResponse {
	return roomSummaryResponse{
		ID:          s.ID,
		Name:        s.Name,
		Topic:       s.Topic,
		MemberCount: s.MemberCount,
		JoinedAt:    formatTime(s.JoinedAt),
	}
}

func detailOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, domain.ErrRoomNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrNotRoomMember):
		return "forbidden"
	default:
		return "error"
	}
}
