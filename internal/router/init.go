package router

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"inkwell/config"
	"inkwell/internal/application"
	pginfra "inkwell/internal/infrastructure/postgres"
	handlers "inkwell/internal/interface/http"
	"inkwell/internal/router/modules"
	"inkwell/pkg/helpers"
)

// Deps carries everything the feature modules need. All wiring is explicit;
// optional infrastructure (Redis, GCS, Elasticsearch, RabbitMQ) may be nil
// and the features backed by it degrade gracefully.
type Deps struct {
	Cfg    *config.Config
	Logger *logrus.Logger
	DB     *pgxpool.Pool
	RDB    *redis.Client
	JWT    *helpers.JWTManager
	GCS    *storage.Client
	ES     *elasticsearch.Client
	Pub    *helpers.RabbitPublisher
}

// InitModules builds the repository, service and handler graph and registers
// every feature module. Called once at startup.
func InitModules(r *Registry, d Deps) {
	users := pginfra.NewUserRepository(d.DB)
	follows := pginfra.NewFollowRepository(d.DB)
	posts := pginfra.NewPostRepository(d.DB)
	comments := pginfra.NewCommentRepository(d.DB)

	authSvc := application.NewAuthService(users, d.JWT, d.Logger)
	authSvc.Pub = d.Pub
	authSvc.ES = d.ES
	authSvc.ESUsersIndex = d.Cfg.ESUsersIndex
	authSvc.AppName = d.Cfg.AppName
	authSvc.MailEnabled = d.Cfg.MailSendEnabled

	postSvc := application.NewPostService(posts, comments, d.Logger)
	postSvc.GCS = d.GCS
	postSvc.GCSBucket = d.Cfg.GCSBucket

	socialSvc := application.NewSocialService(users, follows, posts, comments, d.Logger)

	cookies := helpers.NewCookie(d.Cfg.CookieDomain, d.Cfg.CookieSecure)
	prod := d.Cfg.IsProduction()

	r.Add(
		modules.NewAuthModule(handlers.NewAuthHandler(authSvc, cookies, d.Logger, prod), d.JWT, d.RDB),
		modules.NewPostModule(handlers.NewPostHandler(postSvc, socialSvc, d.Logger, prod), d.JWT, d.RDB),
		modules.NewUserModule(handlers.NewUserHandler(authSvc, socialSvc, d.Logger, prod), d.JWT),
	)
}
