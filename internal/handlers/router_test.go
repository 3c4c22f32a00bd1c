package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/clinicore/clinic-management-api/internal/constants"
	"github.com/clinicore/clinic-management-api/internal/middleware"
	"github.com/clinicore/clinic-management-api/internal/models"
	"github.com/clinicore/clinic-management-api/internal/repository"
	"github.com/clinicore/clinic-management-api/internal/services"
)

// routerTestEnv assembles the full router the way cmd/server does, against an
// in-memory database and a cookie session store.
type routerTestEnv struct {
	db          *gorm.DB
	router      *gin.Engine
	authService *services.AuthService
	orgService  *services.OrganizationService
	memService  *services.MembershipService
}

func setupRouterEnv(t *testing.T) *routerTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Organization{},
		&models.Membership{},
		&models.Subscription{},
	)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	memRepo := repository.NewMembershipRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)

	authService := services.NewAuthService(userRepo, subRepo)
	orgService := services.NewOrganizationService(orgRepo, memRepo, subRepo)
	memService := services.NewMembershipService(orgRepo, memRepo, userRepo)

	authHandler := NewAuthHandler(authService)
	orgHandler := NewOrganizationHandler(orgService)
	memHandler := NewMembershipHandler(memService)
	userHandler := NewUserHandler(authService, memService)

	access := middleware.NewOrganizationAccess(orgRepo, memRepo)

	r := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		api.GET("/me", middleware.RequireAuth(), userHandler.GetMe)
		api.GET("/me/organizations", middleware.RequireAuth(), userHandler.GetMyOrganizations)

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

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return &routerTestEnv{
		db:          db,
		router:      r,
		authService: authService,
		orgService:  orgService,
		memService:  memService,
	}
}

// signupAndLogin registers a user and returns it along with the session
// cookies to attach to subsequent requests.
func (env *routerTestEnv) signupAndLogin(t *testing.T, name, email string) (*models.User, []*http.Cookie) {
	t.Helper()

	user, err := env.authService.Signup(services.SignupInput{
		Name:     name,
		Email:    email,
		Password: "supersecret",
	})
	require.NoError(t, err)

	body, err := json.Marshal(map[string]string{
		"email":    email,
		"password": "supersecret",
	})
	require.NoError(t, err)

	w := env.do(http.MethodPost, "/api/auth/login", body, nil)
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies, "expected session cookie to be set")

	return user, cookies
}

// upgradePlan flips the user's subscription to a paid status so the
// organization-creation gate passes.
func (env *routerTestEnv) upgradePlan(t *testing.T, userID uint64) {
	t.Helper()

	require.NoError(t, env.db.Model(&models.Subscription{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"plan_name": "pro",
			"status":    models.SubscriptionStatusActive,
		}).Error)
}

func (env *routerTestEnv) do(method, url string, body []byte, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, url, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}
