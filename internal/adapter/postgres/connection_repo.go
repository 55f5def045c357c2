package postgres

import (
	"context"
	"time"

	"readiness/internal/domain"
)

// Connect records a platform connection; reconnecting refreshes the timestamp.
func (d *DB) Connect(ctx context.Context, userID int64, platform string, connectedAt time.Time) error {
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO platform_connections (user_id, platform, connected_at) VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, platform) DO UPDATE SET connected_at = EXCLUDED.connected_at;`,
		userID, platform, connectedAt.UTC(),
	)
	return err
}

// Disconnect removes a platform connection.
func (d *DB) Disconnect(ctx context.Context, userID int64, platform string) error {
	_, err := d.sql.ExecContext(ctx,
		"DELETE FROM platform_connections WHERE user_id = $1 AND platform = $2;", userID, platform)
	return err
}

// IsConnected reports whether the user has connected the platform.
func (d *DB) IsConnected(ctx context.Context, userID int64, platform string) (bool, error) {
	var exists bool
	err := d.sql.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM platform_connections WHERE user_id = $1 AND platform = $2);",
		userID, platform,
	).Scan(&exists)
	return exists, err
}

// ListConnections returns the user's platform connections, oldest first.
func (d *DB) ListConnections(ctx context.Context, userID int64) ([]domain.PlatformConnection, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT user_id, platform, connected_at FROM platform_connections WHERE user_id = $1 ORDER BY connected_at ASC;",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	var out []domain.PlatformConnection
	for rows.Next() {
		var c domain.PlatformConnection
		if err := rows.Scan(&c.UserID, &c.Platform, &c.ConnectedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
