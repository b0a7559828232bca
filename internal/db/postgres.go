package db

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var DB *pgxpool.Pool

const createReviewsTable = `
CREATE TABLE IF NOT EXISTS reviews (
    id BIGSERIAL PRIMARY KEY,
    review_text TEXT NOT NULL,
    sentiment VARCHAR(50) NOT NULL,
    confidence_score DOUBLE PRECISION NOT NULL,
    key_points TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// InitDB connects the pool and creates the review schema on boot.
func InitDB(ctx context.Context) error {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("ping postgres: %w", err)
	}

	if _, err := pool.Exec(ctx, createReviewsTable); err != nil {
		pool.Close()
		return fmt.Errorf("create reviews schema: %w", err)
	}

	DB = pool
	slog.Info("[DB] Connected to PostgreSQL successfully")
	return nil
}

func CloseDB() {
	if DB != nil {
		DB.Close()
	}
}
