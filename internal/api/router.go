package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/roomtrack/roomtrack/internal/api/handler"
	"github.com/roomtrack/roomtrack/internal/api/middleware"
	"github.com/roomtrack/roomtrack/internal/core/service"
	mongodb "github.com/roomtrack/roomtrack/internal/infrastructure/db/mongo"
	redisdb "github.com/roomtrack/roomtrack/internal/infrastructure/db/redis"
	"github.com/roomtrack/roomtrack/internal/infrastructure/queue"
	"github.com/roomtrack/roomtrack/internal/web"
	"github.com/roomtrack/roomtrack/pkg/logger"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The returned dispatcher must be started by the caller.
func NewRouter(db *mongo.Database, rdb *redis.Client, jwtSecret string) (*echo.Echo, *queue.Dispatcher) {
	log := logger.Get()

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("roomtrack"))

	// --- Dependencies ---
	roomRepo := mongodb.NewRoomRepository(db)
	presence := redisdb.NewPresenceStore(rdb)
	roomService := service.NewRoomService(roomRepo, presence, log)
	activityService := service.NewActivityService(roomRepo, presence, log)
	dispatcher := queue.NewDispatcher(0, activityService, log)

	authRepo := mongodb.NewAuthRepository(db)
	authService := service.NewAuthService(authRepo, jwtSecret, 24*time.Hour)

	authHandler := handler.NewAuthHandler(authService)
	roomHandler := handler.NewRoomHandler(roomService)
	activityHandler := handler.NewActivityHandler(dispatcher)
	authMiddleware := middleware.Auth(jwtSecret)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- API routes (authenticated) ---
	apiGroup := e.Group("/api", authMiddleware)
	apiGroup.GET("/rooms", roomHandler.List)
	apiGroup.POST("/rooms", roomHandler.Create)
	apiGroup.GET("/rooms/:roomId", roomHandler.Get)
	apiGroup.POST("/rooms/:roomId/join", roomHandler.Join)
	apiGroup.POST("/activity", activityHandler.Receive)

	// --- Server-rendered pages ---
	web.Register(e, roomService, jwtSecret)

	// --- Health probes, metrics, API docs (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e, dispatcher
}
