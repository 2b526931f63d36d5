package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/roomtrack/roomtrack/internal/api/metrics"
	"github.com/roomtrack/roomtrack/internal/core/ports"
)

// ActivityDispatcher is the interface the handler uses to enqueue activity
// events for asynchronous processing.
type ActivityDispatcher interface {
	Enqueue(event ports.RoomActivityInput)
}

// ActivityHandler handles room activity ingestion (session timer heartbeats).
type ActivityHandler struct {
	dispatcher ActivityDispatcher
}

func NewActivityHandler(dispatcher ActivityDispatcher) *ActivityHandler {
	return &ActivityHandler{dispatcher: dispatcher}
}

// Receive handles POST /api/activity — enqueues a single signal, returns 202.
//
// @Summary      Ingest a room activity signal
// @Tags         activity
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      roomActivityRequest  true  "Activity signal"
// @Success      202   {object}  successEnvelope
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Failure      422   {object}  map[string]any
// @Router       /api/activity [post]
func (h *ActivityHandler) Receive(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req roomActivityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	h.dispatcher.Enqueue(ports.RoomActivityInput{
		RoomID:     req.RoomID,
		UserID:     userID,
		OccurredAt: req.OccurredAt,
		Source:     req.Source,
	})

	metrics.ActivityAcceptedTotal.WithLabelValues(req.Source).Inc()

	return respond(c, http.StatusAccepted, acceptedResponse{Message: "activity accepted"})
}
