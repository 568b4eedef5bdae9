package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/vocadays/internal/bootstrap"
	"github.com/at-ishikawa/vocadays/internal/config"
	"github.com/at-ishikawa/vocadays/internal/database"
	"github.com/at-ishikawa/vocadays/internal/mirror"
	"github.com/at-ishikawa/vocadays/internal/store"
	"github.com/at-ishikawa/vocadays/internal/study"
	"github.com/at-ishikawa/vocadays/internal/wordpool"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

func loadCurriculum(cfg *config.Config) (*wordpool.Curriculum, error) {
	curriculum, err := wordpool.Load(wordpool.NewReader(cfg.Curriculum.Path), cfg.Curriculum.Version)
	if err != nil {
		return nil, fmt.Errorf("wordpool.Load(%s) > %w", cfg.Curriculum.Path, err)
	}
	return curriculum, nil
}

// environment holds everything a command works with. Resources are released by the
// shutdown hooks of the app that created it.
type environment struct {
	cfg        *config.Config
	curriculum *wordpool.Curriculum
	store      store.Store
	remote     mirror.Remote
	remoteDB   *sqlx.DB
	tenant     mirror.Tenant
	service    *study.Service
}

// runWithEnvironment loads the configuration, builds the environment and runs fn.
// In-flight mirror writes are waited for before the remote is closed.
func runWithEnvironment(cmd *cobra.Command, fn func(ctx context.Context, env *environment) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	app := bootstrap.New()
	return app.Run(ctx, func(ctx context.Context) error {
		env, err := newEnvironment(ctx, cfg, app)
		if err != nil {
			return err
		}
		return fn(ctx, env)
	})
}

func newEnvironment(ctx context.Context, cfg *config.Config, app *bootstrap.App) (*environment, error) {
	curriculum, err := loadCurriculum(cfg)
	if err != nil {
		return nil, err
	}

	localStore, err := openStore(ctx, cfg.Storage, app)
	if err != nil {
		return nil, err
	}

	env := &environment{
		cfg:        cfg,
		curriculum: curriculum,
		store:      localStore,
		tenant: mirror.Tenant{
			AcademyID: cfg.User.AcademyID,
			UserID:    cfg.User.UserID,
		},
	}
	if err := env.openRemote(app); err != nil {
		return nil, err
	}

	var writer *mirror.AsyncWriter
	if env.remote != nil {
		writer = mirror.NewAsyncWriter(env.remote, env.tenant, remoteTimeout(cfg.Remote))
	}
	env.service = study.NewService(ctx, curriculum, localStore, writer, study.WithQuizSeed(cfg.Quiz.Seed))
	app.AddShutdownHook(env.service.Wait)
	return env, nil
}

func openStore(ctx context.Context, cfg config.StorageConfig, app *bootstrap.App) (store.Store, error) {
	switch cfg.Driver {
	case config.StorageDriverMemory:
		return store.NewMemoryStore(), nil
	case config.StorageDriverSQLite:
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("database.OpenSQLite(%s) > %w", cfg.SQLitePath, err)
		}
		app.AddShutdownHook(func(context.Context) error {
			return db.Close()
		})
		return store.NewSQLiteStore(db), nil
	default:
		fileStore, err := store.NewFileStore(cfg.Directory)
		if err != nil {
			return nil, fmt.Errorf("store.NewFileStore(%s) > %w", cfg.Directory, err)
		}
		return fileStore, nil
	}
}

func remoteTimeout(cfg config.RemoteConfig) time.Duration {
	return time.Duration(cfg.TimeoutSeconds) * time.Second
}

// openRemote leaves env.remote nil when no remote is configured.
func (env *environment) openRemote(app *bootstrap.App) error {
	cfg := env.cfg.Remote
	switch cfg.Driver {
	case config.RemoteDriverMySQL, config.RemoteDriverPostgres:
		dialect := database.Dialect(cfg.Driver)
		db, err := database.Open(dialect, cfg.Database)
		if err != nil {
			return fmt.Errorf("database.Open(%s) > %w", dialect, err)
		}
		env.remoteDB = db
		env.remote = mirror.NewSQLRemote(db, dialect)
	case config.RemoteDriverHTTP:
		env.remote = mirror.NewHTTPRemote(cfg.HTTP.BaseURL, cfg.HTTP.Token, remoteTimeout(cfg), cfg.HTTP.MaxRetryAttempts)
	default:
		return nil
	}

	remote := env.remote
	app.AddShutdownHook(func(context.Context) error {
		return remote.Close()
	})
	return nil
}
