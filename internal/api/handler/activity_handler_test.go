package handler

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/roomtrack/roomtrack/internal/core/ports"
)

type stubDispatcher struct {
	events []ports.RoomActivityInput
}

func (d *stubDispatcher) Enqueue(event ports.RoomActivityInput) {
	d.events = append(d.events, event)
}

func TestActivityReceive_Enqueues(t *testing.T) {
	dispatcher := &stubDispatcher{}
	h := NewActivityHandler(dispatcher)

	c, rec := newContext(t, http.MethodPost, "/api/activity", `{"room_id":"r1","source":"session_timer"}`)
	c.Set("user_id", "u1")

	if err := h.Receive(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rec.Code)
	}
	if len(dispatcher.events) != 1 {
		t.Fatalf("expected one enqueued event, got %d", len(dispatcher.events))
	}

	event := dispatcher.events[0]
	if event.RoomID != "r1" || event.UserID != "u1" || event.Source != "session_timer" {
		t.Fatalf("unexpected event: %+v", event)
	}
}

func TestActivityReceive_IdentityFromContextNotBody(t *testing.T) {
	dispatcher := &stubDispatcher{}
	h := NewActivityHandler(dispatcher)

	// A user_id in the body must be ignored; only the auth claims count.
	c, _ := newContext(t, http.MethodPost, "/api/activity", `{"room_id":"r1","source":"heartbeat","user_id":"someone-else"}`)
	c.Set("user_id", "u1")

	if err := h.Receive(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if dispatcher.events[0].UserID != "u1" {
		t.Fatalf("user must come from auth claims, got %q", dispatcher.events[0].UserID)
	}
}

func TestActivityReceive_InvalidSource(t *testing.T) {
	h := NewActivityHandler(&stubDispatcher{})

	c, _ := newContext(t, http.MethodPost, "/api/activity", `{"room_id":"r1","source":"telepathy"}`)
	c.Set("user_id", "u1")

	err := h.Receive(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 HTTPError, got %v", err)
	}
}

func TestActivityReceive_NoIdentity(t *testing.T) {
	h := NewActivityHandler(&stubDispatcher{})

	c, _ := newContext(t, http.MethodPost, "/api/activity", `{"room_id":"r1","source":"heartbeat"}`)

	err := h.Receive(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}
