package health

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// Database is the slice of pgxpool.Pool the checker needs.
type Database interface {
	Ping(ctx context.Context) error
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Checker struct {
	db  Database
	log zerolog.Logger
}

type Status struct {
	Status   string         `json:"status"`
	Database DatabaseStatus `json:"database"`
}

type DatabaseStatus struct {
	Reachable    bool  `json:"reachable"`
	SchemaReady  bool  `json:"schema_ready"`
	ResponseTime int64 `json:"response_time_ms"`
}

func NewChecker(db Database, log zerolog.Logger) *Checker {
	return &Checker{db: db, log: log}
}

// Check reports whether the ledger is able to serve: the database must
// answer and the schema must be migrated. The leases table anchors the
// schema; if it is missing, migrations have not run.
func (c *Checker) Check(ctx context.Context) Status {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	dbStatus := DatabaseStatus{}

	if err := c.db.Ping(ctx); err != nil {
		c.log.Warn().Err(err).Msg("health check: database unreachable")
	} else {
		dbStatus.Reachable = true

		var one int
		err := c.db.QueryRow(ctx, "SELECT 1 FROM leases LIMIT 1").Scan(&one)
		// An empty leases table is still a migrated schema.
		if err == nil || errors.Is(err, pgx.ErrNoRows) {
			dbStatus.SchemaReady = true
		} else {
			c.log.Warn().Err(err).Msg("health check: schema not ready")
		}
	}
	dbStatus.ResponseTime = time.Since(start).Milliseconds()

	status := "healthy"
	if !dbStatus.Reachable || !dbStatus.SchemaReady {
		status = "unhealthy"
	}

	return Status{Status: status, Database: dbStatus}
}
