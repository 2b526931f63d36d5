package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/roomtrack/roomtrack/internal/core/ports"
)

const testSecret = "page-secret"

type stubRoomService struct {
	summaries []ports.RoomSummary
	err       error
	calls     int
}

func (s *stubRoomService) ListRooms(_ context.Context, _ string) ([]ports.RoomSummary, error) {
	s.calls++
	return s.summaries, s.err
}

func (s *stubRoomService) GetRoomDetail(context.Context, ports.GetRoomDetailInput) (*ports.RoomDetail, error) {
	return nil, nil
}

func (s *stubRoomService) CreateRoom(context.Context, ports.CreateRoomInput) (*ports.RoomSummary, error) {
	return nil, nil
}

func (s *stubRoomService) JoinRoom(context.Context, string, string) (*ports.RoomSummary, error) {
	return nil, nil
}

func newPagesServer(svc ports.RoomService) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	Register(e, svc, testSecret)
	return e
}

func sessionToken(t *testing.T, userID, name string) *http.Cookie {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  userID,
		"name": name,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return &http.Cookie{Name: sessionCookie, Value: signed}
}

func TestRoomsPage_RedirectsWithoutSession(t *testing.T) {
	svc := &stubRoomService{}
	e := newPagesServer(svc)

	req := httptest.NewRequest(http.MethodGet, "/rooms", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}
	if svc.calls != 0 {
		t.Fatalf("no data fetch should happen for anonymous visitors")
	}
}

func TestRoomsPage_RedirectsWithInvalidToken(t *testing.T) {
	e := newPagesServer(&stubRoomService{})

	req := httptest.NewRequest(http.MethodGet, "/rooms", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: "not-a-jwt"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
}

func TestRoomsPage_RendersGrid(t *testing.T) {
	e := newPagesServer(&stubRoomService{summaries: []ports.RoomSummary{
		{ID: "r1", Name: "deep work", Topic: "pomodoro", MemberCount: 3, JoinedAt: time.Now()},
		{ID: "r2", Name: "standup", MemberCount: 7, JoinedAt: time.Now()},
	}})

	req := httptest.NewRequest(http.MethodGet, "/rooms", nil)
	req.AddCookie(sessionToken(t, "u1", "Alice"))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"deep work", "standup", `/rooms/r1`, `/rooms/r2`, "Alice"} {
		if !strings.Contains(body, want) {
			t.Fatalf("page missing %q:\n%s", want, body)
		}
	}
}

func TestRoomsPage_EmptyState(t *testing.T) {
	e := newPagesServer(&stubRoomService{})

	req := httptest.NewRequest(http.MethodGet, "/rooms", nil)
	req.AddCookie(sessionToken(t, "u1", ""))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "not in any rooms yet") {
		t.Fatalf("expected empty-state prompt:\n%s", body)
	}
	if !strings.Contains(body, "Create a room") || !strings.Contains(body, "Join a room") {
		t.Fatalf("empty state must offer create/join affordances:\n%s", body)
	}
}

func TestDashboardPage_PlaceholderStats(t *testing.T) {
	e := newPagesServer(&stubRoomService{})

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"session-timer", "Total sessions", "Time tracked", "Rooms joined", "No sessions yet"} {
		if !strings.Contains(body, want) {
			t.Fatalf("dashboard missing %q:\n%s", want, body)
		}
	}
}

func TestLoginPage(t *testing.T) {
	e := newPagesServer(&stubRoomService{})

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "login-form") {
		t.Fatalf("expected login form:\n%s", rec.Body.String())
	}
}
