package app

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/khrees2412/proposly/internal/ai"
	"github.com/khrees2412/proposly/internal/config"
	"github.com/khrees2412/proposly/internal/database"
	"github.com/khrees2412/proposly/internal/feedback"
	"github.com/khrees2412/proposly/internal/jobfetch"
	"github.com/khrees2412/proposly/internal/logger"
	"github.com/khrees2412/proposly/internal/proposal"
)

// App is the dependency container shared by the CLI commands and the API server
type App struct {
	DB         *sql.DB
	Config     *config.Config
	ConfigPath string
	Logger     *zap.Logger
	Store      *database.Store
	Gateway    *ai.Gateway
	Proposals  *proposal.Service
	Feedback   *feedback.Learner
	Fetcher    *jobfetch.Fetcher
}

// NewApp loads the config at configPath (empty means the default location)
// and wires every component over one database handle.
func NewApp(ctx context.Context, configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if configPath == "" {
		configPath = config.GetConfigPath()
	}
	return New(cfg, configPath)
}

// New wires an App from an already loaded config
func New(cfg *config.Config, configPath string) (*App, error) {
	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	store := database.NewStore(db)
	gateway := ai.NewFromConfig(cfg.AI, log)

	proposals := proposal.NewService(store, gateway,
		proposal.WithDailyLimit(cfg.Generation.DailyLimit),
		proposal.WithMaxWords(cfg.Generation.MaxWords),
		proposal.WithLogger(log),
	)

	return &App{
		DB:         db,
		Config:     cfg,
		ConfigPath: configPath,
		Logger:     log,
		Store:      store,
		Gateway:    gateway,
		Proposals:  proposals,
		Feedback:   feedback.NewLearner(store, log),
		Fetcher:    jobfetch.NewFetcher(log),
	}, nil
}

// Close closes all resources
func (a *App) Close() error {
	if a.Logger != nil {
		_ = a.Logger.Sync()
	}
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
