package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/roomtrack/roomtrack/internal/api/handler"
	"github.com/roomtrack/roomtrack/internal/api/middleware"
	"github.com/roomtrack/roomtrack/internal/core/domain"
	"github.com/roomtrack/roomtrack/internal/core/ports"
)

const testSecret = "test-secret"

// stubRoomService lets each test script the outcome of GetRoomDetail and
// records whether the service was reached at all.
type stubRoomService struct {
	detail *ports.RoomDetail
	err    error
	calls  int
}

func (s *stubRoomService) GetRoomDetail(_ context.Context, _ ports.GetRoomDetailInput) (*ports.RoomDetail, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	clone := *s.detail
	return &clone, nil
}

func (s *stubRoomService) ListRooms(context.Context, string) ([]ports.RoomSummary, error) {
	return nil, nil
}

func (s *stubRoomService) CreateRoom(context.Context, ports.CreateRoomInput) (*ports.RoomSummary, error) {
	return nil, nil
}

func (s *stubRoomService) JoinRoom(context.Context, string, string) (*ports.RoomSummary, error) {
	return nil, nil
}

// newTestServer wires the room-detail route exactly like the production
// router: auth middleware, central error handler, success envelope.
func newTestServer(svc ports.RoomService) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(zerolog.Nop())
	e.Validator = handler.NewValidator()

	roomHandler := handler.NewRoomHandler(svc)
	e.GET("/api/rooms/:roomId", roomHandler.Get, middleware.Auth(testSecret))
	return e
}

func signToken(t *testing.T, userID string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   userID,
		"email": userID + "@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func doGet(e *echo.Echo, roomID, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/rooms/"+roomID, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("invalid envelope %q: %v", rec.Body.String(), err)
	}
	return env
}

func TestRoomDetail_Unauthenticated_401_NoServiceCall(t *testing.T) {
	svc := &stubRoomService{err: domain.ErrRoomNotFound}
	e := newTestServer(svc)

	rec := doGet(e, "abc", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	env := decodeEnvelope(t, rec)
	if env.Success {
		t.Fatalf("error envelope must have success=false")
	}
	if !strings.HasPrefix(env.Error, "Unauthorized") {
		t.Fatalf("expected message starting with Unauthorized, got %q", env.Error)
	}
	if svc.calls != 0 {
		t.Fatalf("unauthenticated request must not reach the service (existence leakage)")
	}
}

func TestRoomDetail_NotFound_404(t *testing.T) {
	e := newTestServer(&stubRoomService{err: domain.ErrRoomNotFound})

	rec := doGet(e, "ghost", signToken(t, "u1"))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	env := decodeEnvelope(t, rec)
	if env.Success || env.Error != "Room not found" {
		t.Fatalf("unexpected envelope: %s", rec.Body.String())
	}
}

func TestRoomDetail_NotMember_403_NoPayload(t *testing.T) {
	e := newTestServer(&stubRoomService{err: domain.ErrNotRoomMember})

	rec := doGet(e, "r1", signToken(t, "mallory"))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}

	env := decodeEnvelope(t, rec)
	if env.Success || env.Error != "User is not a member of this room" {
		t.Fatalf("unexpected envelope: %s", rec.Body.String())
	}
	if len(env.Data) != 0 {
		t.Fatalf("403 response must not carry room data: %s", env.Data)
	}
}

func TestRoomDetail_Member_200(t *testing.T) {
	created := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	e := newTestServer(&stubRoomService{detail: &ports.RoomDetail{
		ID:          "r1",
		Name:        "deep work",
		Topic:       "pomodoro",
		CreatedBy:   "alice",
		CreatedAt:   created,
		MemberCount: 3,
		Viewer: ports.ViewerState{
			JoinedAt:     created.Add(time.Hour),
			LastActiveAt: created.Add(2 * time.Hour),
		},
	}})

	rec := doGet(e, "r1", signToken(t, "alice"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	env := decodeEnvelope(t, rec)
	if !env.Success {
		t.Fatalf("expected success envelope, got %s", rec.Body.String())
	}

	var data struct {
		Room struct {
			ID          string `json:"id"`
			Name        string `json:"name"`
			MemberCount int    `json:"member_count"`
			Viewer      struct {
				LastActiveAt string `json:"last_active_at"`
			} `json:"viewer"`
		} `json:"room"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("invalid data payload: %v", err)
	}
	if data.Room.ID != "r1" || data.Room.Name != "deep work" || data.Room.MemberCount != 3 {
		t.Fatalf("room payload does not match service output: %s", env.Data)
	}
	if data.Room.Viewer.LastActiveAt != "2025-05-01T11:00:00Z" {
		t.Fatalf("unexpected viewer last_active_at: %q", data.Room.Viewer.LastActiveAt)
	}
}

func TestRoomDetail_Idempotent(t *testing.T) {
	e := newTestServer(&stubRoomService{detail: &ports.RoomDetail{
		ID:        "r1",
		Name:      "deep work",
		CreatedAt: time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC),
	}})
	token := signToken(t, "alice")

	first := doGet(e, "r1", token)
	second := doGet(e, "r1", token)
	if first.Code != http.StatusOK || second.Code != http.StatusOK {
		t.Fatalf("expected 200/200, got %d/%d", first.Code, second.Code)
	}
	if first.Body.String() != second.Body.String() {
		t.Fatalf("repeated identical requests must yield byte-identical envelopes:\n%s\n%s",
			first.Body.String(), second.Body.String())
	}
}

func TestRoomDetail_UnexpectedError_500_Generic(t *testing.T) {
	e := newTestServer(&stubRoomService{err: context.DeadlineExceeded})

	rec := doGet(e, "r1", signToken(t, "alice"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}

	env := decodeEnvelope(t, rec)
	if env.Success || env.Error != "Internal server error" {
		t.Fatalf("internal failures must not leak details: %s", rec.Body.String())
	}
}

func TestResolveError_EchoHTTPError(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	code, msg := resolveError(echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), zerolog.Nop(), c)
	if code != http.StatusBadRequest || msg != "invalid payload" {
		t.Fatalf("unexpected mapping: %d %q", code, msg)
	}
}
