package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// DB wraps a *sql.DB and implements domain repository interfaces.
type DB struct {
	sql *sql.DB
}

// Open connects to PostgreSQL, pings, and runs migrations.
func Open(connStr string) (*DB, error) {
	s, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	s.SetMaxOpenConns(10)
	s.SetMaxIdleConns(5)
	s.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	d := &DB{sql: s}
	if err := d.migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) migrate(ctx context.Context) error {
	stmts := []string{
		"CREATE TABLE IF NOT EXISTS users (id BIGSERIAL PRIMARY KEY, username TEXT UNIQUE NOT NULL, password_hash TEXT NOT NULL, created_at TIMESTAMPTZ NOT NULL);",
		"CREATE TABLE IF NOT EXISTS sessions (token TEXT PRIMARY KEY, user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE, expires_at TIMESTAMPTZ NOT NULL, created_at TIMESTAMPTZ NOT NULL);",
		"CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at);",
		"CREATE TABLE IF NOT EXISTS biometric_samples (" +
			"id BIGSERIAL PRIMARY KEY, " +
			"user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE, " +
			"day TEXT NOT NULL, " +
			"hrv_score INT, " +
			"resting_heart_rate INT, " +
			"sleep_quality INT, " +
			"sleep_duration_minutes INT, " +
			"stress_level INT, " +
			"source TEXT NOT NULL, " +
			"notes TEXT NOT NULL DEFAULT '', " +
			"created_at TIMESTAMPTZ NOT NULL, " +
			"updated_at TIMESTAMPTZ NOT NULL, " +
			"UNIQUE(user_id, day));",
		"CREATE INDEX IF NOT EXISTS idx_biometric_samples_user_day ON biometric_samples(user_id, day);",
		"CREATE TABLE IF NOT EXISTS platform_connections (" +
			"user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE, " +
			"platform TEXT NOT NULL, " +
			"connected_at TIMESTAMPTZ NOT NULL, " +
			"PRIMARY KEY(user_id, platform));",
	}

	for _, stmt := range stmts {
		if _, err := d.sql.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
