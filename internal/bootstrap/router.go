package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	httpapi "github.com/rafsal3/VideoGen-v1/internal/api/http"
	apimw "github.com/rafsal3/VideoGen-v1/internal/api/http/middleware"
	authhttp "github.com/rafsal3/VideoGen-v1/internal/auth/http"
	projhttp "github.com/rafsal3/VideoGen-v1/internal/projects/http"
	renderhttp "github.com/rafsal3/VideoGen-v1/internal/render/http"
	tmplhttp "github.com/rafsal3/VideoGen-v1/internal/templates/http"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	AllowedOrigins []string
	DB             *pgxpool.Pool
	Redis          *redis.Client
	Log            *logrus.Logger
	Services       *Services
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(apimw.RequestID(dep.Log))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     dep.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Render-Callback-Secret"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Redis)
	healthHandler.RegisterRoutes(r)

	debugHandler := httpapi.NewDebugHandler(dep.Services.TemplateCatalog)
	debugHandler.RegisterRoutes(r)

	loginLimiter := apimw.NewRateLimiter(1, 5)

	api := r.Group("/api/v1")

	authHandler := authhttp.New(dep.Services.Auth)
	authHandler.Register(api.Group("/auth"), loginLimiter.Middleware())

	templateHandler := tmplhttp.New(dep.Services.Templates)
	templateHandler.Register(api.Group("/templates"), dep.Services.Auth)

	projectsGroup := api.Group("/projects")

	projectHandler := projhttp.New(dep.Services.Projects)
	projectHandler.Register(projectsGroup, dep.Services.Auth)

	renderHandler := renderhttp.New(dep.Services.Renders)
	renderHandler.RegisterProjectRoutes(projectsGroup, dep.Services.Auth)
	renderHandler.RegisterCallbackRoutes(api.Group("/render"))

	return r
}
