package backend

import (
	"context"
	"fmt"

	"beautyadmin/admin-service/internal/app/admin/config"
	apiclient "beautyadmin/admin-service/internal/app/admin/infrastructure/http"
	"beautyadmin/admin-service/internal/app/admin/repository"
	"beautyadmin/admin-service/internal/app/admin/repository/memory"
	"beautyadmin/admin-service/internal/app/admin/repository/postgres"
	"beautyadmin/pkg/logger"
)

// Closer освобождает ресурсы выбранного источника данных
type Closer func() error

func noopCloser() error { return nil }

// New выбирает источник данных по cfg.Backend.Kind.
// Это единственное место, где решается mock или реальный API: сервисы получают готовый Backend
func New(ctx context.Context, cfg *config.Config) (*repository.Backend, Closer, error) {
	switch cfg.Backend.Kind {
	case config.BackendMemory:
		return newMemory(cfg), noopCloser, nil

	case config.BackendHTTP:
		client := apiclient.NewClient(cfg.API.BaseURL, cfg.API.Timeout)
		if cfg.API.Token != "" {
			client.SetAuthToken(cfg.API.Token)
		}
		logger.Info().
			Str("base_url", cfg.API.BaseURL).
			Dur("timeout", cfg.API.Timeout).
			Msg("Using REST API backend")
		return apiclient.NewBackend(client), noopCloser, nil

	case config.BackendPostgres:
		db, err := postgres.Connect(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		if err := postgres.Migrate(db); err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get sql.DB: %w", err)
		}
		logger.Info().
			Str("host", cfg.Database.Host).
			Str("database", cfg.Database.DBName).
			Msg("Using PostgreSQL backend")
		return postgres.NewBackend(db), sqlDB.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend.Kind)
	}
}

func newMemory(cfg *config.Config) *repository.Backend {
	opts := []memory.Option{memory.WithLatency(cfg.Backend.MockLatency)}
	if cfg.Backend.MockSeed {
		opts = append(opts, memory.WithFixtures(memory.DefaultFixtures()))
	}

	logger.Info().
		Dur("latency", cfg.Backend.MockLatency).
		Bool("seeded", cfg.Backend.MockSeed).
		Msg("Using in-memory mock backend")
	return memory.NewBackend(memory.NewStore(opts...))
}
