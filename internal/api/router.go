package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/niharika-studio/portfolio-api/internal/api/handler"
	"github.com/niharika-studio/portfolio-api/internal/api/middleware"
	"github.com/niharika-studio/portfolio-api/internal/core/ports"
	"github.com/niharika-studio/portfolio-api/internal/core/service"
	"github.com/niharika-studio/portfolio-api/internal/infrastructure/config"
	mongodb "github.com/niharika-studio/portfolio-api/internal/infrastructure/db/mongo"
	redisdb "github.com/niharika-studio/portfolio-api/internal/infrastructure/db/redis"
)

// NewRouter builds the Echo instance with every route registered. The media
// store and orphan queue come in as ports so main can own their lifecycles.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, media ports.MediaStore, orphans ports.OrphanQueue, log zerolog.Logger) (*echo.Echo, ports.AuthService) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	secureCookies := !cfg.IsDevelopment()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("portfolio"))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.AccessGuard(log))

	// --- Dependencies ---
	imageRepo := mongodb.NewImageRepository(db)
	adminRepo := mongodb.NewAdminRepository(db)
	sessions := redisdb.NewSessionStore(rdb, cfg.SessionTTL)

	authService := service.NewAuthService(adminRepo, sessions, cfg.SessionSecret, cfg.SessionTTL, cfg.BcryptCost)
	imageService := service.NewImageService(imageRepo, media, orphans, log)

	authHandler := handler.NewAuthHandler(authService, cfg.SessionTTL, secureCookies)
	imageHandler := handler.NewImageHandler(imageService, log)
	pageHandler := handler.NewPageHandler(authService, cfg.WebRoot, secureCookies, log)
	healthHandler := handler.NewHealthHandler(db, rdb)

	requireSession := middleware.RequireSessionAPI(authService)
	requireSessionPage := middleware.RequireSessionPage(authService, "/admin-login-portal", secureCookies)

	// --- Auth API ---
	auth := e.Group("/api/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/check", authHandler.Check)

	// --- Images API: gallery reads are public, mutations need a session ---
	images := e.Group("/api/images")
	images.GET("", imageHandler.List)
	images.GET("/categories", imageHandler.Categories)
	images.POST("/upload-file", imageHandler.UploadFile, requireSession)
	images.POST("/upload-multiple", imageHandler.UploadMultiple, requireSession)
	images.POST("/upload-url", imageHandler.UploadFromURL, requireSession)
	images.DELETE("/:id", imageHandler.Delete, requireSession)

	// --- Pages ---
	e.GET("/", pageHandler.Home)
	e.GET("/home", pageHandler.Home)
	e.GET("/gallery", pageHandler.Gallery)
	e.GET("/video-gallery", pageHandler.VideoGallery)
	e.GET("/admin-login-portal", pageHandler.LoginPortal)
	e.GET("/login", pageHandler.LegacyLogin)
	e.GET("/admin", pageHandler.Admin, requireSessionPage)
	e.GET("/logout", pageHandler.Logout)

	// --- Static assets: the access guard above keeps admin.html and
	// login.html out of reach even though they live under the web root ---
	e.Static("/", cfg.WebRoot)

	// --- Operational endpoints ---
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e, authService
}
