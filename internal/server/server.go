package server

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"

	"github.com/bframe197/MilMedMatch/internal/ai"
	"github.com/bframe197/MilMedMatch/internal/config"
	"github.com/bframe197/MilMedMatch/internal/handler"
	"github.com/bframe197/MilMedMatch/internal/middleware"
	"github.com/bframe197/MilMedMatch/internal/model"
	"github.com/bframe197/MilMedMatch/internal/service"
	"github.com/bframe197/MilMedMatch/internal/store"
	"github.com/bframe197/MilMedMatch/pkg/storage"
)

type Server struct {
	engine      *gin.Engine
	store       *store.Store
	redisClient *redis.Client
}

// Deps are the external collaborators. Any of them may be nil; the
// dependent features degrade instead of failing at startup.
type Deps struct {
	Redis       *redis.Client
	Meili       meilisearch.ServiceManager
	AI          ai.Client
	ImageStorer storage.ImageStorage
}

func NewServer(cfg *config.Config, st *store.Store, deps Deps) *Server {
	searchSvc := service.NewProgramSearchService(deps.Meili)

	authSvc := service.NewAuthService(st, deps.Redis, cfg.JWTSecret, cfg.JWTTTL)
	authHandler := handler.NewAuthHandler(authSvc)

	profileSvc := service.NewProfileService(st)
	profileHandler := handler.NewProfileHandler(profileSvc)

	notificationSvc := service.NewNotificationService(st, deps.Redis)
	notificationHandler := handler.NewNotificationHandler(notificationSvc, deps.Redis)

	programSvc := service.NewProgramService(st, searchSvc, deps.AI, deps.ImageStorer, deps.Redis, cfg.CloudinaryUploadFolder, cfg.AdvisorTimeout)
	programHandler := handler.NewProgramHandler(programSvc, searchSvc)

	adtSvc := service.NewADTService(st, notificationSvc)
	adtHandler := handler.NewADTHandler(adtSvc)

	advisorSvc := service.NewAdvisorService(deps.AI, deps.Redis, cfg.AdvisorTimeout)
	advisorHandler := handler.NewAdvisorHandler(advisorSvc)

	deadlineSvc := service.NewDeadlineService(st)
	adminHandler := handler.NewAdminHandler(deadlineSvc, programSvc, cfg.PortalUsername, cfg.PortalAccessCode)

	router := gin.New()
	setupCORS(router, cfg.AllowedOrigins)
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	authMiddleware := middleware.NewAuthMiddleware(st, deps.Redis, cfg.JWTSecret)

	api := router.Group("/api")

	// Public routes (no auth required)
	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/signup", authHandler.Signup)
	}
	api.POST("/portal/codes", adminHandler.PortalCodes)

	// Protected routes (apply auth middleware explicitly)
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.POST("/auth/logout", authHandler.Logout)

		// Admin routes
		adminGroup := protected.Group("/admin")
		adminGroup.Use(authMiddleware.RequireAdmin())
		{
			adminGroup.GET("/users", profileHandler.ListUsers)
			adminGroup.POST("/programs", programHandler.Create)
			adminGroup.DELETE("/programs/:id", programHandler.Delete)
			adminGroup.PUT("/deadlines", adminHandler.UpdateDeadlines)
			adminGroup.POST("/flag-image", adminHandler.RegenerateFlagImage)
			adminGroup.PUT("/adt/:id/review", adtHandler.Review)
		}

		// Catalog routes
		protected.GET("/programs", programHandler.List)
		protected.GET("/programs/search", programHandler.Search)
		protected.GET("/programs/:id", programHandler.Get)
		protected.PUT("/programs/:id", programHandler.Update)
		protected.POST("/programs/:id/residents", programHandler.AddResident)
		protected.DELETE("/programs/:id/residents/:residentId", programHandler.RemoveResident)
		protected.POST("/programs/:id/cover-image", programHandler.GenerateCoverImage)
		protected.GET("/specialties", programHandler.Specialties)
		protected.GET("/default-image", programHandler.DefaultImage)

		// Profile routes
		protected.GET("/profile/me", profileHandler.Me)
		protected.PUT("/profile", profileHandler.UpdateMe)
		protected.DELETE("/profile", profileHandler.DeleteMe)

		// Recruiter roster
		protected.GET("/recruiter/prospects",
			authMiddleware.RequireRole(model.RoleRecruiter, model.RoleAdministrator),
			profileHandler.ListProspects)

		// ADT routes
		protected.POST("/adt", adtHandler.Submit)
		protected.GET("/adt", adtHandler.List)

		// Deadlines (read side is open to every signed-in role)
		protected.GET("/deadlines", adminHandler.ListDeadlines)

		// Notification routes
		protected.GET("/notifications", notificationHandler.List)
		protected.GET("/notifications/unread-count", notificationHandler.UnreadCount)
		protected.PUT("/notifications/read-all", notificationHandler.MarkAllRead)
		protected.GET("/notifications/ws", notificationHandler.Stream)

		// Advisor routes
		protected.POST("/advisor/advice", advisorHandler.Advice)
		protected.POST("/advisor/recruiters", advisorHandler.Recruiters)
	}

	return &Server{
		engine:      router,
		store:       st,
		redisClient: deps.Redis,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

// Engine exposes the router for httptest-driven tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
