package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/galexandre/showtrack/internal/config"
	"github.com/galexandre/showtrack/internal/handler"
	"github.com/galexandre/showtrack/internal/mailer"
	"github.com/galexandre/showtrack/internal/repository"
	"github.com/galexandre/showtrack/internal/service"
	"github.com/galexandre/showtrack/internal/utils"
	"github.com/galexandre/showtrack/pkg/observability"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	infra        Infrastructure
	config       *config.Config
	router       *gin.Engine
	server       *http.Server
	resetService service.PasswordResetService
}

func NewApp(infra Infrastructure, cfg *config.Config) *App {
	repos := repository.NewRepositories(infra.Postgres())

	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.TokenExpiry.Duration,
	)

	smtpMailer := mailer.NewSMTPMailer(cfg.SMTP)
	profileCache := service.NewRedisProfileCache(infra.Redis(), cfg.Redis.CacheTTL.Duration)
	healthChecker := NewHealthChecker(infra)

	authService := service.NewAuthService(
		repos.User,
		jwtManager,
		profileCache,
		infra.Logger(),
		cfg.Security.BCryptCost,
	)

	resetService := service.NewPasswordResetService(
		repos.User,
		repos.PasswordReset,
		smtpMailer,
		infra.Logger(),
		cfg.Security.BCryptCost,
		cfg.Reset.CodeTTL.Duration,
	)

	engagementService := service.NewEngagementService(
		repos.User,
		repos.Favorite,
		repos.CompletedSeries,
		repos.WatchedEpisode,
		profileCache,
		infra.Logger(),
	)

	authHandler := handler.NewAuthHandler(authService)
	passwordHandler := handler.NewPasswordHandler(resetService)
	mediaHandler := handler.NewMediaHandler(engagementService)

	router := gin.Default()
	router.Use(otelgin.Middleware("showtrack"))
	router.Use(handler.LoggerMiddleware(infra.Logger()))
	router.Use(handler.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.CORS.AllowedMethods, cfg.CORS.AllowedHeaders))

	setupRoutes(router, authHandler, passwordHandler, mediaHandler, authService, healthChecker, infra.MetricsHandler())

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout.Duration,
		WriteTimeout: cfg.Server.WriteTimeout.Duration,
	}

	return &App{
		infra:        infra,
		config:       cfg,
		router:       router,
		server:       srv,
		resetService: resetService,
	}
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func setupRoutes(
	router *gin.Engine,
	authHandler *handler.AuthHandler,
	passwordHandler *handler.PasswordHandler,
	mediaHandler *handler.MediaHandler,
	authService service.AuthService,
	healthChecker *HealthChecker,
	metricsHandler http.Handler,
) {
	router.GET("/metrics", observability.PrometheusHandler(metricsHandler))
	router.GET("/health", healthChecker.Handler)

	api := router.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		password := api.Group("/password")
		{
			password.POST("/recover", passwordHandler.Recover)
			password.POST("/verify", passwordHandler.Verify)
			password.POST("/resend", passwordHandler.Resend)
		}

		users := api.Group("/users", handler.AuthMiddleware(authService))
		{
			users.GET("/me", authHandler.GetMe)
			users.PATCH("/me", authHandler.UpdateMe)
			users.DELETE("/me", authHandler.DeleteMe)
			users.GET("/me/profile", mediaHandler.Profile)
		}

		media := api.Group("/media", handler.AuthMiddleware(authService))
		{
			media.POST("/favorites", mediaHandler.AddFavorite)
			media.GET("/favorites", mediaHandler.ListFavorites)
			media.GET("/favorites/check/:titleID", mediaHandler.CheckFavorite)
			media.DELETE("/favorites/:titleID", mediaHandler.RemoveFavorite)

			media.POST("/completed", mediaHandler.MarkCompleted)
			media.GET("/completed", mediaHandler.ListCompleted)
			media.GET("/completed/check/:titleID", mediaHandler.CheckCompleted)
			media.DELETE("/completed/:titleID", mediaHandler.UnmarkCompleted)

			media.POST("/watched", mediaHandler.MarkWatched)
			media.GET("/watched", mediaHandler.ListWatched)
			media.GET("/watched/check/:titleID/:season/:episode", mediaHandler.CheckWatched)
			media.DELETE("/watched/:titleID/:season/:episode", mediaHandler.UnmarkWatched)
		}
	}
}

func (a *App) Run(ctx context.Context) error {
	errChan := make(chan error, 1)

	go a.sweepExpiredCodes(ctx)

	go func() {
		a.infra.Logger().Info("Application starting",
			zap.String("host", a.config.Server.Host),
			zap.String("port", a.config.Server.Port),
		)

		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.infra.Logger().Error("Server error", zap.Error(err))
			errChan <- err
		}
	}()

	var serverErr error
	select {
	case err := <-errChan:
		a.infra.Logger().Error("Application failed to start", zap.Error(err))
		serverErr = err
	case <-ctx.Done():
		a.infra.Logger().Info("Application stopped by context")
	}

	if err := a.Shutdown(); err != nil {
		a.infra.Logger().Error("Shutdown error", zap.Error(err))
		if serverErr != nil {
			return errors.Join(serverErr, err)
		}
		return err
	}

	return serverErr
}

// sweepExpiredCodes periodically removes expired recovery codes
func (a *App) sweepExpiredCodes(ctx context.Context) {
	interval := a.config.Reset.SweepInterval.Duration
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := a.resetService.DeleteExpired(ctx)
			if err != nil {
				a.infra.Logger().Error("Expired code sweep failed", zap.Error(err))
				continue
			}
			if count > 0 {
				a.infra.Logger().Info("Swept expired recovery codes", zap.Int64("count", count))
			}
		}
	}
}

func (a *App) Shutdown() error {
	a.infra.Logger().Info("Application shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	errs := make(chan error, 2)

	go func() {
		errs <- a.server.Shutdown(ctx)
	}()

	go func() {
		errs <- a.infra.Shutdown(ctx)
	}()

	err := errors.Join(<-errs, <-errs)
	if err != nil {
		a.infra.Logger().Error("Shutdown failed", zap.Error(err))
		return err
	}

	a.infra.Logger().Info("Application exited successfully")
	return nil
}
