// Package database owns the PostgreSQL connection pool.
//
// It handles:
//   - creating a pgx connection pool (pgxpool) from the configured DSN
//   - wiring query tracing/logging (pgx tracelog) in the local env
//   - optional New Relic instrumentation (nrpgx5)
//   - running the embedded tern migrations
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/jobly/internal/config"
	loggerConfig "github.com/deppfellow/jobly/internal/logger"
	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/newrelic/go-agent/v3/integrations/nrpgx5"
	"github.com/rs/zerolog"
)

// Database wraps the pgx connection pool and a lifecycle logger.
type Database struct {
	Pool *pgxpool.Pool
	log  *zerolog.Logger
}

// multiTracer fans pgx query tracing out to several tracers.
//
// pgx only has a single Tracer slot in ConnConfig, so New Relic and the
// local SQL logger are chained through this adapter.
type multiTracer struct {
	tracers []pgx.QueryTracer
}

// TraceQueryStart threads ctx through every tracer in order.
func (mt *multiTracer) TraceQueryStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	for _, t := range mt.tracers {
		ctx = t.TraceQueryStart(ctx, conn, data)
	}
	return ctx
}

// TraceQueryEnd notifies every tracer that the query finished.
func (mt *multiTracer) TraceQueryEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryEndData) {
	for _, t := range mt.tracers {
		t.TraceQueryEnd(ctx, conn, data)
	}
}

// DatabasePingTimeout is the number of seconds to wait for the startup ping.
const DatabasePingTimeout = 10

// New creates a PostgreSQL connection pool with instrumentation.
//
// The New Relic tracer is attached when loggerService carries an application;
// in the "local" env every query is also logged through pgx-zerolog.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*Database, error) {
	pgxPoolConfig, err := pgxpool.ParseConfig(cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgx pool config: %w", err)
	}

	applyPoolSettings(pgxPoolConfig, cfg.Database)

	var tracers []pgx.QueryTracer

	if loggerService != nil && loggerService.GetApplication() != nil {
		tracers = append(tracers, nrpgx5.NewTracer())
	}

	// Very noisy, local only.
	if cfg.Primary.Env == "local" {
		globalLevel := logger.GetLevel()
		pgxLogger := loggerConfig.NewPgxLogger(globalLevel)

		tracers = append(tracers, &tracelog.TraceLog{
			Logger:   pgxzero.NewLogger(pgxLogger),
			LogLevel: loggerConfig.GetPgxTraceLogLevel(globalLevel),
		})
	}

	switch len(tracers) {
	case 0:
	case 1:
		pgxPoolConfig.ConnConfig.Tracer = tracers[0]
	default:
		pgxPoolConfig.ConnConfig.Tracer = &multiTracer{tracers: tracers}
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), pgxPoolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	database := &Database{
		Pool: pool,
		log:  logger,
	}

	// Fail fast at startup if the database is down.
	ctx, cancel := context.WithTimeout(context.Background(), DatabasePingTimeout*time.Second)
	defer cancel()
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().Msg("connected to the database")

	return database, nil
}

// applyPoolSettings maps the sql.DB-style pool knobs from config onto pgxpool.
// Lifetimes are in seconds.
func applyPoolSettings(pc *pgxpool.Config, d config.DatabaseConfig) {
	if d.MaxOpenConns > 0 {
		pc.MaxConns = int32(d.MaxOpenConns)
	}
	if d.MaxIdleConns > 0 {
		pc.MinConns = int32(min(d.MaxIdleConns, d.MaxOpenConns))
	}
	if d.ConnMaxLifetime > 0 {
		pc.MaxConnLifetime = time.Duration(d.ConnMaxLifetime) * time.Second
	}
	if d.ConnMaxIdleTime > 0 {
		pc.MaxConnIdleTime = time.Duration(d.ConnMaxIdleTime) * time.Second
	}
}

// Close closes the connection pool.
func (db *Database) Close() error {
	db.log.Info().Msg("closing database connection pool")
	db.Pool.Close()
	return nil
}
