package setup

import (
	"github.com/redis/go-redis/v9"

	"github.com/jobdeck-dev/jobdeck/internal/config"
	"github.com/jobdeck-dev/jobdeck/internal/dispatch"
	"github.com/jobdeck-dev/jobdeck/internal/handler"
	"github.com/jobdeck-dev/jobdeck/internal/jwt"
	"github.com/jobdeck-dev/jobdeck/internal/mailer"
	"github.com/jobdeck-dev/jobdeck/internal/markdown"
	mw "github.com/jobdeck-dev/jobdeck/internal/middleware"
	"github.com/jobdeck-dev/jobdeck/internal/service"
	"github.com/jobdeck-dev/jobdeck/internal/storage/pg"
	"github.com/jobdeck-dev/jobdeck/internal/token"
)

// Dependencies holds all initialized application dependencies.
type Dependencies struct {
	Config         *config.Config
	Storage        *pg.Storage
	Redis          *redis.Client
	Dispatcher     *dispatch.Dispatcher
	Handler        *handler.Handler
	AuthMiddleware *mw.Auth
	Jwt            jwt.JwtService
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg)
	if err != nil {
		return nil, err
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Private.Redis.Addr,
		Password: cfg.Private.Redis.Password,
		DB:       cfg.Private.Redis.Db,
	})

	queue := dispatch.NewRedisQueue(redisClient)
	transport := mailer.New(&cfg.Private.Smtp)
	dispatcher := dispatch.New(queue, transport, cfg.Public.DispatchWorkers)

	tokens := token.New(cfg.JwtKey())
	jwtService := jwt.New(cfg.JwtKey(), cfg.Public.JwtTTL, cfg.Public.RefreshTTL)

	auth := service.NewAuth(storage, dispatcher, tokens, jwtService, cfg)
	job := service.NewJob(storage, markdown.New(), cfg)

	h := handler.New(auth, job, cfg)

	return &Dependencies{
		Config:         cfg,
		Storage:        storage,
		Redis:          redisClient,
		Dispatcher:     dispatcher,
		Handler:        h,
		AuthMiddleware: mw.NewAuth(jwtService),
		Jwt:            jwtService,
	}, nil
}
