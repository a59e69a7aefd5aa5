package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/mx-space/formcraft/internal/config"
	"github.com/mx-space/formcraft/internal/middleware"
	"github.com/mx-space/formcraft/internal/modules/auth"
	"github.com/mx-space/formcraft/internal/modules/editor"
	"github.com/mx-space/formcraft/internal/modules/form"
	"github.com/mx-space/formcraft/internal/modules/notify"
	"github.com/mx-space/formcraft/internal/pkg/blob"
	pkgcron "github.com/mx-space/formcraft/internal/pkg/cron"
	"github.com/mx-space/formcraft/internal/pkg/jwt"
	pkgredis "github.com/mx-space/formcraft/internal/pkg/redis"
	"github.com/mx-space/formcraft/internal/pkg/session"
	"go.uber.org/zap"
)

// App holds all application dependencies.
type App struct {
	cfg      *config.AppConfig
	router   *gin.Engine
	logger   *zap.Logger
	store    *form.BlobStore
	sessions *session.Store
	editors  *editor.Registry
	authSvc  *auth.Service
	notifier notify.Notifier
	redis    *pkgredis.Client
	sched    *pkgcron.Scheduler
	cancel   context.CancelFunc
}

// New wires storage, auth, editors and routes.
func New(ctx context.Context, logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	storage, err := blob.Open(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	store := form.NewBlobStore(storage, logger)

	notifier, rc, err := buildNotifier(ctx, cfg, logger)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("notify: %w", err)
	}

	if strings.TrimSpace(cfg.JWTSecret) == "" {
		logger.Warn("jwt_secret is empty, using built-in default secret")
	}
	signer := jwt.NewSigner(cfg.JWTSecret)
	sessions := session.NewStore()
	editors := editor.NewRegistry(store, logger)
	authSvc := auth.NewService(signer, sessions, logger)
	authSvc.OnLogout(func(sid string) { editors.Forget(sid) })

	runCtx, cancel := context.WithCancel(context.Background())
	app := &App{
		cfg:      cfg,
		router:   newRouter(cfg, logger),
		logger:   logger,
		store:    store,
		sessions: sessions,
		editors:  editors,
		authSvc:  authSvc,
		notifier: notifier,
		redis:    rc,
		sched:    pkgcron.New(logger),
		cancel:   cancel,
	}
	app.registerRoutes(middleware.TokenValidator{Signer: signer, Sessions: sessions})
	app.registerCronJobs()
	app.sched.Start(runCtx)
	return app, nil
}

func buildNotifier(ctx context.Context, cfg *config.AppConfig, logger *zap.Logger) (notify.Notifier, *pkgredis.Client, error) {
	local := notify.NewLogNotifier(logger)
	url := cfg.Notify.NotifyRedisURL()
	if url == "" {
		return local, nil, nil
	}
	rc, err := pkgredis.Connect(ctx, url)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("publishing notifications", zap.String("channel", cfg.Notify.Channel))
	return notify.Multi{local, notify.NewRedisNotifier(rc, cfg.Notify.Channel)}, rc, nil
}

func newRouter(cfg *config.AppConfig, logger *zap.Logger) *gin.Engine {
	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(cors.New(corsConfig(cfg)))
	return router
}

func corsConfig(cfg *config.AppConfig) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) > 0 && !cfg.IsDev() {
		patterns := cfg.AllowedOrigins
		c.AllowOriginFunc = func(origin string) bool {
			return allowOrigin(patterns, origin)
		}
	} else {
		c.AllowOriginFunc = func(string) bool { return true }
	}
	return c
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown stops the scheduler and releases storage and Redis.
func (a *App) Shutdown() error {
	a.cancel()
	a.sched.Wait()
	var errs []error
	if err := a.store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close storage: %w", err))
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	return errors.Join(errs...)
}
