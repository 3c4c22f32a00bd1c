package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/clinicore/clinic-management-api/internal/config"
	"github.com/clinicore/clinic-management-api/internal/constants"
	"github.com/clinicore/clinic-management-api/internal/database"
	"github.com/clinicore/clinic-management-api/internal/handlers"
	"github.com/clinicore/clinic-management-api/internal/logger"
	"github.com/clinicore/clinic-management-api/internal/middleware"
	"github.com/clinicore/clinic-management-api/internal/models"
	"github.com/clinicore/clinic-management-api/internal/repository"
	"github.com/clinicore/clinic-management-api/internal/services"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	zlog, err := logger.New(cfg.GinMode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	gin.SetMode(cfg.GinMode)

	db, err := database.Connect(cfg)
	if err != nil {
		zlog.Fatal("Failed to connect to database", zap.Error(err))
	}
	zlog.Info("Database connection established")

	if err := database.Migrate(db); err != nil {
		zlog.Fatal("Failed to run migrations", zap.Error(err))
	}
	if err := database.AddIndexes(db); err != nil {
		zlog.Fatal("Failed to add indexes", zap.Error(err))
	}

	// Repositories and services with explicit dependencies
	userRepo := repository.NewUserRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	memRepo := repository.NewMembershipRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)

	authService := services.NewAuthService(userRepo, subRepo)
	orgService := services.NewOrganizationService(orgRepo, memRepo, subRepo)
	memService := services.NewMembershipService(orgRepo, memRepo, userRepo)

	authHandler := handlers.NewAuthHandler(authService)
	orgHandler := handlers.NewOrganizationHandler(orgService)
	memHandler := handlers.NewMembershipHandler(memService)
	userHandler := handlers.NewUserHandler(authService, memService)

	access := middleware.NewOrganizationAccess(orgRepo, memRepo)

	r := gin.New()
	r.Use(middleware.RequestLogger(zlog))
	r.Use(gin.Recovery())

	// Session store backed by Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,
		"tcp",
		redisAddr,
		"",
		[]byte(cfg.SessionSecret),
	)
	if err != nil {
		zlog.Fatal("Failed to create Redis store", zap.Error(err))
	}
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Current-user routes
		api.GET("/me", middleware.RequireAuth(), userHandler.GetMe)
		api.GET("/me/organizations", middleware.RequireAuth(), userHandler.GetMyOrganizations)

		// Organization routes (protected)
		orgs := api.Group("/organizations")
		orgs.Use(middleware.RequireAuth())
		{
			orgs.POST("", orgHandler.CreateOrganization)
			orgs.POST("/join-by-code", memHandler.JoinByCode)

			orgs.GET("/:slug", access.RequireMember(), orgHandler.GetOrganization)
			orgs.DELETE("/:slug",
				access.RequireMember(),
				access.RequireRole("Apenas o proprietário pode excluir a organização", models.RoleOwner),
				orgHandler.DeleteOrganization)
			orgs.GET("/:slug/invite-code",
				access.RequireMember(),
				access.RequireRole("Apenas OWNER ou ADMIN podem ver o código de convite", models.RoleOwner, models.RoleAdmin),
				orgHandler.GetInviteCode)
			orgs.GET("/:slug/members", access.RequireMember(), memHandler.ListMembers)
			orgs.PATCH("/:slug/members/:memberId",
				access.RequireMember(),
				access.RequireRole("Apenas OWNER ou ADMIN podem gerenciar membros", models.RoleOwner, models.RoleAdmin),
				memHandler.PatchMember)
		}
	}

	zlog.Info("Server starting", zap.String("addr", cfg.ListenAddr))
	if err := r.Run(cfg.ListenAddr); err != nil {
		zlog.Fatal("Failed to start server", zap.Error(err))
	}
}
