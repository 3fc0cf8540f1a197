package app

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/foodgram-backend/internal/data/db"
	"github.com/yungbote/foodgram-backend/internal/http"
	"github.com/yungbote/foodgram-backend/internal/observability"
	"github.com/yungbote/foodgram-backend/internal/platform/cache"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
	"github.com/yungbote/foodgram-backend/internal/platform/objectstore"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Server   *http.Server
	Cfg      Config
	Repos    Repos
	Services Services

	store        *db.PostgresService
	cache        cache.Cache
	otelShutdown func(context.Context) error
}

func NewLogger(cfg Config) (*logger.Logger, error) {
	return logger.NewWithOptions(logger.Options{
		Mode:      cfg.Log.Mode,
		Level:     cfg.Log.Level,
		Redaction: cfg.Log.Redaction,
		HashSalt:  cfg.Log.HashSalt,
	})
}

// Open connects to the database only. Used by the migrate command.
func Open(log *logger.Logger, cfg Config) (*db.PostgresService, error) {
	pg, err := db.NewPostgresService(log, db.Config{
		Driver:           cfg.Database.Driver,
		PostgresHost:     cfg.Database.PostgresHost,
		PostgresPort:     cfg.Database.PostgresPort,
		PostgresUser:     cfg.Database.PostgresUser,
		PostgresPassword: cfg.Database.PostgresPassword,
		PostgresName:     cfg.Database.PostgresName,
		PostgresSSLMode:  cfg.Database.PostgresSSLMode,
		SQLitePath:       cfg.Database.SQLitePath,
		SlowThreshold:    cfg.Database.SlowThreshold.Duration,
	})
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}
	return pg, nil
}

func New(ctx context.Context, log *logger.Logger, cfg Config) (*App, error) {
	a := &App{Log: log, Cfg: cfg}
	if cfg.Auth.JWTSecretKey == insecureJWTSecret {
		log.Warn("JWT_SECRET_KEY not set, using insecure default")
	}
	a.otelShutdown = observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: cfg.ServiceName,
		Environment: cfg.Environment,
	}, observability.TraceSettingsFromEnv())

	pg, err := Open(log, cfg)
	if err != nil {
		return nil, err
	}
	a.store = pg
	a.DB = pg.DB()
	if err := db.Migrate(a.DB); err != nil {
		a.Close()
		return nil, fmt.Errorf("automigrate: %w", err)
	}

	a.cache, err = cache.New(ctx, log, cache.Options{
		RedisAddr:     cfg.Cache.RedisAddr,
		RedisPassword: cfg.Cache.RedisPassword,
		RedisDB:       cfg.Cache.RedisDB,
		TTL:           cfg.Cache.TTL.Duration,
		Size:          cfg.Cache.Size,
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("init cache: %w", err)
	}

	images, err := objectstore.New(ctx, log, objectStoreConfig(cfg))
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("init object store: %w", err)
	}

	a.Repos = wireRepos(a.DB, log)
	a.Services = wireServices(a.DB, log, cfg, a.Repos, a.cache, images)
	handlers := wireHandlers(log, a.DB, cfg, a.Services)
	middleware := wireMiddleware(log, a.Services)
	a.Server = wireServer(log, cfg, handlers, middleware)
	return a, nil
}

func objectStoreConfig(cfg Config) objectstore.Config {
	mode, err := objectstore.ParseMode(cfg.Storage.Mode)
	if err != nil {
		// Validate reports the bad mode.
		mode = objectstore.Mode(cfg.Storage.Mode)
	}
	out := objectstore.Config{
		Mode:            mode,
		Root:            cfg.Storage.MediaRoot,
		Bucket:          cfg.Storage.Bucket,
		CredentialsJSON: cfg.Storage.CredentialsJSON,
		CredentialsFile: cfg.Storage.CredentialsFile,
		GCSEndpoint:     cfg.Storage.GCSEndpoint,
		Region:          cfg.Storage.S3Region,
		Endpoint:        cfg.Storage.S3Endpoint,
		AccessKeyID:     cfg.Storage.S3AccessKey,
		SecretAccessKey: cfg.Storage.S3SecretKey,
	}
	mediaURL := strings.TrimSpace(cfg.Storage.MediaURL)
	if mode == objectstore.ModeLocal || strings.HasPrefix(mediaURL, "http") {
		out.PublicBaseURL = mediaURL
	}
	return out
}

// Run serves HTTP until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Server.Run(ctx, ":"+strings.TrimPrefix(a.Cfg.Port, ":"), a.Cfg.ShutdownGrace.Duration)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil && a.Log != nil {
			a.Log.Warn("cache close failed", "error", err)
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil && a.Log != nil {
			a.Log.Warn("database close failed", "error", err)
		}
	}
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), a.Cfg.ShutdownGrace.Duration)
		_ = a.otelShutdown(ctx)
		cancel()
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
