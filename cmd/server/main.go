package main

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"gorm.io/gorm"

	"webshop/docs" // swagger docs

	"webshop/internal/auth"
	"webshop/internal/cache"
	"webshop/internal/config"
	"webshop/internal/db"
	"webshop/internal/handler"
	"webshop/internal/logger"
	"webshop/internal/middleware"
	"webshop/internal/repository"
	"webshop/internal/router"
	"webshop/internal/service"
)

const shutdownTimeout = 10 * time.Second

// @title Webshop API
// @version 1.0
// @description Users, products and baskets with JWT access/refresh authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	fx.New(
		fx.WithLogger(func(l *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: l}
		}),
		injectInfra(),
		injectRepo(),
		injectAuth(),
		injectService(),
		injectHandler(),
		fx.Invoke(
			registerRoutes,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.Load,
		logger.New,
		newDatabase,
		newCache,
		router.New,
	)
}

func injectRepo() fx.Option {
	return fx.Provide(
		repository.NewUserRepository,
		repository.NewProductRepository,
		repository.NewBasketRepository,
	)
}

func injectAuth() fx.Option {
	return fx.Provide(
		newPasswordHasher,
		newJWTService,
		newTokenStore,
		newAuthMiddleware,
	)
}

func injectService() fx.Option {
	return fx.Provide(
		service.NewAuthService,
		service.NewUserService,
		service.NewProductService,
		service.NewBasketService,
	)
}

func injectHandler() fx.Option {
	return fx.Provide(
		handler.NewAuthHandler,
		handler.NewUserHandler,
		handler.NewProductHandler,
		handler.NewBasketHandler,
	)
}

func newDatabase(lc fx.Lifecycle, cfg *config.Config, log *slog.Logger) (*gorm.DB, error) {
	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		return nil, errors.Wrap(err, "database init")
	}

	if cfg.ResetDB {
		log.Warn("RESET_DB is set, dropping all tables")
	}
	if err := db.Migrate(gormDB, cfg.ResetDB); err != nil {
		return nil, errors.Wrap(err, "auto-migrate")
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			sqlDB, err := gormDB.DB()
			if err != nil {
				return errors.WithStack(err)
			}
			return errors.WithStack(sqlDB.Close())
		},
	})
	return gormDB, nil
}

func newCache(lc fx.Lifecycle, cfg *config.Config, log *slog.Logger) *cache.Client {
	c := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := c.Ping(ctx); err != nil {
				log.Warn("redis unreachable, serving without cache", slog.Any("error", err))
			}
			return nil
		},
		OnStop: func(context.Context) error {
			return c.Close()
		},
	})
	return c
}

func newPasswordHasher(cfg *config.Config) auth.PasswordHasher {
	return auth.NewBcryptHasher(cfg.BcryptCost)
}

func newJWTService(cfg *config.Config, log *slog.Logger) *auth.JWTService {
	if cfg.AccessTokenSecret == "" || cfg.RefreshTokenSecret == "" {
		log.Warn("token secrets are not configured, login will fail")
	}
	return auth.NewJWTService(cfg.AccessTokenSecret, cfg.RefreshTokenSecret, cfg.RefreshTokenTTL)
}

func newTokenStore(gormDB *gorm.DB) auth.TokenStoreInterface {
	return auth.NewTokenStore(gormDB)
}

func newAuthMiddleware(jwtService *auth.JWTService) *middleware.AuthMiddleware {
	return middleware.NewAuthMiddleware(jwtService)
}

type routeParams struct {
	fx.In

	Echo           *echo.Echo
	AuthMiddleware *middleware.AuthMiddleware
	AuthHandler    *handler.AuthHandler
	UserHandler    *handler.UserHandler
	ProductHandler *handler.ProductHandler
	BasketHandler  *handler.BasketHandler
}

func registerRoutes(p routeParams) {
	router.Register(p.Echo, p.AuthMiddleware, router.Handlers{
		Auth:    p.AuthHandler,
		User:    p.UserHandler,
		Product: p.ProductHandler,
		Basket:  p.BasketHandler,
	})
}

func startServer(lc fx.Lifecycle, shutdowner fx.Shutdowner, e *echo.Echo, cfg *config.Config, log *slog.Logger) {
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}
	addr := net.JoinHostPort("", cfg.ServerPort)

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				log.Info("starting HTTP server", slog.String("addr", addr))
				if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("server start", slog.Any("error", err))
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			log.Info("swagger documentation available", slog.String("url", "http://"+docs.SwaggerInfo.Host+"/swagger/index.html"))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
			defer cancel()

			log.Info("shutting down HTTP server")
			return errors.WithStack(e.Shutdown(shutdownCtx))
		},
	})
}
