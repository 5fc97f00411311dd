package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"rental-backend/internal/config"
)

// Connect opens the pgx pool and verifies the database answers before the
// server starts taking traffic.
func Connect(cfg *config.Config, log zerolog.Logger) *pgxpool.Pool {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.Name,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect failed")
	}

	if err := pool.Ping(ctx); err != nil {
		log.Fatal().Err(err).
			Str("host", cfg.Database.Host).
			Str("database", cfg.Database.Name).
			Msg("database unreachable")
	}

	log.Info().
		Str("host", cfg.Database.Host).
		Str("database", cfg.Database.Name).
		Msg("database connected")

	return pool
}
