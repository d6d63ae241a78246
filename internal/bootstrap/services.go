package bootstrap

import (
	"database/sql"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/rafsal3/VideoGen-v1/config"
	authrepo "github.com/rafsal3/VideoGen-v1/internal/auth/repository"
	authservice "github.com/rafsal3/VideoGen-v1/internal/auth/service"
	projrepo "github.com/rafsal3/VideoGen-v1/internal/projects/repository"
	projservice "github.com/rafsal3/VideoGen-v1/internal/projects/service"
	"github.com/rafsal3/VideoGen-v1/internal/render/engine"
	renderrepo "github.com/rafsal3/VideoGen-v1/internal/render/repository"
	renderservice "github.com/rafsal3/VideoGen-v1/internal/render/service"
	tmplrepo "github.com/rafsal3/VideoGen-v1/internal/templates/repository"
	tmplservice "github.com/rafsal3/VideoGen-v1/internal/templates/service"
)

// Services holds the wired application layer. Repositories are owned by
// the services and are not exposed.
type Services struct {
	Auth      *authservice.AuthService
	Templates *tmplservice.TemplateService
	Projects  *projservice.ProjectService
	Renders   *renderservice.RenderService

	// TemplateCatalog is surfaced for seeding and the debug endpoints.
	TemplateCatalog *tmplrepo.TemplateRepository
}

func BuildServices(cfg *config.Config, pool *pgxpool.Pool, sqldb *sql.DB, rdb *redis.Client, log *logrus.Logger) *Services {
	userRepo := authrepo.NewUserRepository(sqldb)
	templateRepo := tmplrepo.NewTemplateRepository(pool)
	projectRepo := projrepo.NewProjectRepository(pool)
	jobRepo := renderrepo.NewJobRepository(rdb)
	engineClient := engine.NewClient(cfg.Render.EngineURL)

	return &Services{
		Auth:      authservice.NewAuthService(userRepo, log, cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry),
		Templates: tmplservice.NewTemplateService(templateRepo, log),
		Projects:  projservice.NewProjectService(projectRepo, templateRepo, log),
		Renders: renderservice.NewRenderService(
			projectRepo,
			jobRepo,
			engineClient,
			templateRepo,
			log,
			cfg.Render.CallbackURL,
			cfg.Render.CallbackSecret,
		),
		TemplateCatalog: templateRepo,
	}
}
