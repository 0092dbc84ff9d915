// Package bootstrap assembles the workshop store and its detail source from config.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"

	_ "modernc.org/sqlite"

	"workshops/internal/adapters/http/perf"
	"workshops/internal/adapters/storage"
	workshopStorage "workshops/internal/adapters/storage/workshop"
	"workshops/internal/application/orchestrators"
	"workshops/internal/application/workshopstore"
	"workshops/internal/config"
)

// Runtime is everything a binary needs after startup.
type Runtime struct {
	Store     *workshopstore.Store
	Collector *perf.Collector
	db        *sql.DB
}

// InitLogging installs the default slog logger at the configured level.
func InitLogging(cfg config.Config, w io.Writer) {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.SlogLevel()})
	slog.SetDefault(slog.New(handler))
}

// Setup builds the store. With the sqlite detail source it opens the database,
// initializes the schema and seeds details for the demo workshops. Workshops added
// later get placeholder details on first selection.
// PRE: cfg has been validated
// POST: Returns a ready Runtime; callers must Close it
func Setup(ctx context.Context, cfg config.Config) (*Runtime, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	rt := &Runtime{Collector: perf.NewCollector(perf.DefaultRingSize)}
	deps := workshopstore.Deps{Location: loc}

	if cfg.DetailSource == config.DetailSourceSQLite {
		details, err := rt.openDetails(ctx, cfg)
		if err != nil {
			rt.Close()
			return nil, err
		}
		deps.Details = seedingDetails{store: details}
	}

	rt.Store = workshopstore.New(deps)
	if cfg.SeedTestData {
		rt.Store.CreateTestData()
	}
	slog.Info("workshop_store_ready",
		"detail_source", cfg.DetailSource,
		"workshops", len(rt.Store.Workshops()),
		"timezone", loc.String())
	return rt, nil
}

func (rt *Runtime) openDetails(ctx context.Context, cfg config.Config) (*workshopStorage.SQLiteStore, error) {
	inMemory := cfg.DBPath == ":memory:"
	dsn := storage.DSN(cfg.DBPath)
	if inMemory {
		dsn = cfg.DBPath
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	rt.db = db

	// Every connection to :memory: is a separate database.
	if inMemory {
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("database unreachable: %w", err)
	}
	if err := storage.InitDB(db); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	details := workshopStorage.NewSQLiteStore(storage.NewTimedDB(db, rt.Collector, cfg.SlowQueryMs))
	seedDeps := orchestrators.SeedWorkshopDetailsDeps{DetailStore: details}
	if _, err := orchestrators.ExecuteSeedWorkshopDetails(ctx, seedDeps, workshopstore.TestWorkshops()); err != nil {
		return nil, fmt.Errorf("failed to seed workshop details: %w", err)
	}
	slog.Info("database_initialized", "path", cfg.DBPath)
	return details, nil
}

// Close releases the database, if one was opened.
func (rt *Runtime) Close() error {
	if rt.db == nil {
		return nil
	}
	return rt.db.Close()
}
