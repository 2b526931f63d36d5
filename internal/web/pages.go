package web

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/roomtrack/roomtrack/internal/core/ports"
)

const sessionCookie = "rt_session"

// Pages serves the server-rendered HTML surface: login, rooms listing, and
// the dashboard. No business logic lives here; pages compose data fetched
// through the same services the API uses.
type Pages struct {
	rooms     ports.RoomService
	jwtSecret string
}

// Register mounts the page routes and the template renderer on e.
func Register(e *echo.Echo, rooms ports.RoomService, jwtSecret string) {
	e.Renderer = NewRenderer()
	p := &Pages{rooms: rooms, jwtSecret: jwtSecret}

	e.GET("/login", p.Login)
	e.GET("/rooms", p.Rooms)
	e.GET("/dashboard", p.Dashboard)
}

type identity struct {
	UserID string
	Name   string
}

// resolveIdentity reads the session cookie and validates the JWT. A nil
// return means the visitor has no usable session.
func (p *Pages) resolveIdentity(c echo.Context) *identity {
	cookie, err := c.Cookie(sessionCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(cookie.Value, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(p.jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return nil
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil
	}
	name, _ := claims["name"].(string)
	return &identity{UserID: sub, Name: name}
}

// Login renders the login form.
func (p *Pages) Login(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", nil)
}

type roomCard struct {
	ID          string
	Name        string
	Topic       string
	MemberCount int
	JoinedAt    string
}

type roomsPageData struct {
	Name  string
	Rooms []roomCard
}

// Rooms renders the caller's room list, or redirects to the login page when
// no identity can be resolved. The redirect is terminal: nothing else is
// fetched or rendered for anonymous visitors.
func (p *Pages) Rooms(c echo.Context) error {
	id := p.resolveIdentity(c)
	if id == nil {
		return c.Redirect(http.StatusFound, "/login")
	}

	summaries, err := p.rooms.ListRooms(c.Request().Context(), id.UserID)
	if err != nil {
		return err
	}

	data := roomsPageData{Name: id.Name}
	for _, s := range summaries {
		data.Rooms = append(data.Rooms, roomCard{
			ID:          s.ID,
			Name:        s.Name,
			Topic:       s.Topic,
			MemberCount: s.MemberCount,
			JoinedAt:    s.JoinedAt.UTC().Format(time.RFC3339),
		})
	}

	return c.Render(http.StatusOK, "rooms.html", data)
}

type statCard struct {
	Label string
	Value string
}

type dashboardPageData struct {
	Stats          []statCard
	RecentSessions []struct{}
}

// Dashboard renders the session timer widget mount and placeholder stats.
// The stat values are static stand-ins until a statistics pipeline exists;
// nothing here computes anything.
func (p *Pages) Dashboard(c echo.Context) error {
	return c.Render(http.StatusOK, "dashboard.html", dashboardPageData{
		Stats: []statCard{
			{Label: "Total sessions", Value: "0"},
			{Label: "Time tracked", Value: "0h 0m"},
			{Label: "Rooms joined", Value: "0"},
		},
	})
}
