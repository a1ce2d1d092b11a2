package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/MiracleAriel/seminar12-gb-hw/config"
	"github.com/MiracleAriel/seminar12-gb-hw/internal/application/gradebook"
	"github.com/MiracleAriel/seminar12-gb-hw/internal/domain/shared"
	"github.com/MiracleAriel/seminar12-gb-hw/internal/domain/student"
	"github.com/MiracleAriel/seminar12-gb-hw/internal/infrastructure/external/subjectfile"
	"github.com/MiracleAriel/seminar12-gb-hw/internal/infrastructure/persistence/postgres"
	"github.com/MiracleAriel/seminar12-gb-hw/internal/infrastructure/persistence/redis"
	"github.com/MiracleAriel/seminar12-gb-hw/internal/infrastructure/persistence/sqlite"
)

// subjectStore - источник предметов, в который можно записать список.
type subjectStore interface {
	student.SubjectSource
	Seed(ctx context.Context, subjects []string) error
}

// openedStore - открытое хранилище и функция освобождения его ресурсов.
type openedStore struct {
	store  subjectStore
	remote bool
	close  func()
}

// Source возвращает источник для записи студента.
// Удалённые источники оборачиваются в повторные попытки.
func (o *openedStore) Source(cfg *config.Config, log *slog.Logger) student.SubjectSource {
	if !o.remote {
		return o.store
	}
	return gradebook.NewRetryingSource(o.store, cfg.Subjects.MaxAttempts, cfg.Subjects.Timeout, log)
}

// openStore подключается к источнику, выбранному в конфигурации.
func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (*openedStore, error) {
	switch cfg.Subjects.Source {
	case config.SourceCSV:
		log.Debug("using csv subject source", "file", cfg.Subjects.File)
		return &openedStore{
			store: subjectfile.New(cfg.Subjects.File, subjectfile.WithDelimiter(cfg.Subjects.Delimiter)),
			close: func() {},
		}, nil

	case config.SourcePostgres:
		conn, catalog, err := openPostgres(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		return &openedStore{
			store:  catalog,
			remote: true,
			close:  conn.Close,
		}, nil

	case config.SourceRedis:
		rc := redis.DefaultConfig()
		rc.Host = cfg.Redis.Host
		rc.Port = cfg.Redis.Port
		rc.Password = cfg.Redis.Password
		rc.DB = cfg.Redis.DB

		log.Debug("connecting to redis", "addr", rc.Addr())
		client, err := redis.NewClient(ctx, rc)
		if err != nil {
			return nil, shared.WrapError("redis", "Connect", shared.ErrSourceUnavailable,
				fmt.Sprintf("cannot reach %s", rc.Addr()), err)
		}
		return &openedStore{
			store:  redis.NewSubjectList(client, cfg.Redis.Key),
			remote: true,
			close: func() {
				if err := client.Close(); err != nil {
					log.Warn("failed to close redis client", "error", err)
				}
			},
		}, nil

	case config.SourceSQLite:
		log.Debug("using sqlite subject source", "file", cfg.Subjects.SQLitePath)
		db, err := sqlite.Open(ctx, cfg.Subjects.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &openedStore{
			store: sqlite.NewSubjectCatalog(db, cfg.Database.Table),
			close: func() { _ = db.Close() },
		}, nil

	default:
		return nil, fmt.Errorf("unsupported subject source %q", cfg.Subjects.Source)
	}
}

// openPostgres подключается к базе и при DB_MIGRATE применяет миграции.
func openPostgres(ctx context.Context, cfg *config.Config, log *slog.Logger) (*postgres.Connection, *postgres.SubjectCatalog, error) {
	log.Debug("connecting to database...")
	conn, err := postgres.NewConnectionFromURL(ctx, cfg.Database.URL)
	if err != nil {
		return nil, nil, shared.WrapError("postgres", "Connect", shared.ErrSourceUnavailable,
			"cannot connect to database", err)
	}

	catalog := postgres.NewSubjectCatalog(conn, cfg.Database.Table)
	if cfg.Database.Migrate {
		if err := runMigrations(ctx, conn, catalog, log); err != nil {
			conn.Close()
			return nil, nil, err
		}
	}

	return conn, catalog, nil
}

// runMigrations применяет миграции и создаёт таблицу каталога из SUBJECTS_TABLE,
// если она отличается от таблицы по умолчанию.
func runMigrations(ctx context.Context, conn *postgres.Connection, catalog *postgres.SubjectCatalog, log *slog.Logger) error {
	applied, err := postgres.NewMigrator(conn).Migrate(ctx)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	if err := catalog.EnsureSchema(ctx); err != nil {
		return err
	}
	log.Info("migrations complete", "applied", applied)
	return nil
}
