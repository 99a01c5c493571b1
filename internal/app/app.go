package app

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/varoOP/animedexdb/internal/anilist"
	"github.com/varoOP/animedexdb/internal/config"
	"github.com/varoOP/animedexdb/internal/database"
	"github.com/varoOP/animedexdb/internal/dedupe"
	"github.com/varoOP/animedexdb/internal/domain"
	"github.com/varoOP/animedexdb/internal/format"
	"github.com/varoOP/animedexdb/internal/jikan"
	"github.com/varoOP/animedexdb/internal/logger"
	"github.com/varoOP/animedexdb/internal/notification"
	"github.com/varoOP/animedexdb/internal/ratelimit"
	"github.com/varoOP/animedexdb/internal/repository"
)

// App represents the main application with all dependencies initialized
type App struct {
	log                 zerolog.Logger
	config              *domain.Config
	paths               *domain.Paths
	documentRepo        domain.DocumentRepository
	episodesRepo        domain.EpisodesRepository
	db                  *database.DB
	cacheRepo           domain.CacheRepo
	limiter             *ratelimit.Limiter
	anilistService      anilist.Service
	jikanService        jikan.Service
	dedupeService       dedupe.Service
	formatService       format.Service
	notificationService domain.NotificationService
}

// NewApp loads the configuration and creates the application from it
func NewApp() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.NewLoggerWithLevel(logger.ParseLevel(cfg.LogLevel))
	return New(log, cfg)
}

// New wires every service for cfg. The payload cache database is only opened
// when caching is enabled.
func New(log zerolog.Logger, cfg *domain.Config) (*App, error) {
	paths := domain.NewPaths(cfg.RootPath, cfg.DocumentFile, cfg.EpisodesFile)

	fileRepo := repository.NewFileRepository(log)

	a := &App{
		log:                 log,
		config:              cfg,
		paths:               paths,
		documentRepo:        fileRepo,
		episodesRepo:        fileRepo,
		limiter:             ratelimit.NewRPS(cfg.RequestsPerSecond),
		dedupeService:       dedupe.NewService(log),
		formatService:       format.NewService(log, paths, fileRepo),
		notificationService: notification.NewService(log, cfg.DiscordWebhookURL),
	}

	if cfg.CacheEnabled() {
		db, err := database.NewDB(string(paths.CacheDBPath), log)
		if err != nil {
			a.limiter.Stop()
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		a.db = db
		a.cacheRepo = database.NewCacheRepo(log, db)
	}

	a.anilistService = anilist.NewService(log, cfg, a.cacheRepo, a.limiter)
	a.jikanService = jikan.NewService(log, cfg, a.cacheRepo, a.limiter)

	a.log.Debug().
		Str("root", paths.RootDir).
		Str("document", filepath.Base(string(paths.DocumentPath))).
		Bool("cache", cfg.CacheEnabled()).
		Msg("Application initialized")

	return a, nil
}

func (a *App) Paths() *domain.Paths {
	return a.paths
}

// Close releases the database and the rate limiter
func (a *App) Close() error {
	a.limiter.Stop()
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}
