package api

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"

	healthAPI "medisync/internal/app/server/api/http/health"
	"medisync/internal/app/server/api/http/middleware"
	authMW "medisync/internal/app/server/api/http/middleware/auth"
	loggerMW "medisync/internal/app/server/api/http/middleware/logger"
	syncAPI "medisync/internal/app/server/api/http/sync"
	userAPI "medisync/internal/app/server/api/http/user"
	"medisync/internal/app/server/auth"
	"medisync/internal/app/server/config"
	"medisync/internal/domain/feed"
	"medisync/internal/domain/user"
	"medisync/internal/infrastructure/storage/postgres"
)

type Handlers struct {
	Health *healthAPI.Handler
	User   *userAPI.Handler
	Sync   *syncAPI.Handler
}

// New builds a *chi.Mux with every operation registered through huma.
func New(storage *postgres.Storage, cfg *config.Config, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()

	humaConfig := huma.DefaultConfig("MediSync API", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer"},
	}

	API := humachi.New(mux, humaConfig)

	h := handlers(storage, cfg, log)
	h.Health.SetupRoutes(API)
	h.User.SetupRoutes(API)
	h.Sync.SetupRoutes(API)

	return mux
}

func handlers(storage *postgres.Storage, cfg *config.Config, log *slog.Logger) *Handlers {
	tokens := auth.NewManager(cfg.Auth.Secret, cfg.Auth.TokenTTL)
	authMiddleware := authMW.New(tokens, log)
	loggerMiddleware := loggerMW.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMiddleware.Middleware())
	healthHandler := healthAPI.NewHandler(log, middlewares.GetAllAndClear())

	userRepo := postgres.NewUserRepository(storage.Pool(), log)
	userService := user.NewService(userRepo, user.NewPasswordValidator(), log)
	middlewares.Add(loggerMiddleware.Middleware())
	userHandler := userAPI.NewHandler(userService, tokens, log, middlewares.GetAllAndClear())

	feedRepo := postgres.NewFeedRepository(storage.Pool(), log)
	feedService := feed.NewService(feedRepo, log)
	middlewares.Add(authMiddleware.Middleware())
	middlewares.Add(loggerMiddleware.Middleware())
	syncHandler := syncAPI.NewHandler(feedService, log, middlewares.GetAllAndClear())

	return &Handlers{
		Health: healthHandler,
		User:   userHandler,
		Sync:   syncHandler,
	}
}
