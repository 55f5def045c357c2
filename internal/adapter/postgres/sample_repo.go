package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"readiness/internal/domain"
)

const sampleColumns = "id, user_id, day, hrv_score, resting_heart_rate, sleep_quality, sleep_duration_minutes, stress_level, source, notes, created_at, updated_at"

// UpsertSample inserts a biometric sample, replacing the metric fields of any
// sample already stored for the same user and day.
func (d *DB) UpsertSample(ctx context.Context, sample domain.BiometricSample) (*domain.BiometricSample, error) {
	now := time.Now().UTC()
	row := d.sql.QueryRowContext(ctx,
		`INSERT INTO biometric_samples
			(user_id, day, hrv_score, resting_heart_rate, sleep_quality, sleep_duration_minutes, stress_level, source, notes, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		 ON CONFLICT (user_id, day) DO UPDATE SET
			hrv_score = EXCLUDED.hrv_score,
			resting_heart_rate = EXCLUDED.resting_heart_rate,
			sleep_quality = EXCLUDED.sleep_quality,
			sleep_duration_minutes = EXCLUDED.sleep_duration_minutes,
			stress_level = EXCLUDED.stress_level,
			source = EXCLUDED.source,
			notes = EXCLUDED.notes,
			updated_at = EXCLUDED.updated_at
		 RETURNING `+sampleColumns+";",
		sample.UserID, sample.Day,
		nullableInt(sample.HRVScore), nullableInt(sample.RestingHeartRate),
		nullableInt(sample.SleepQuality), nullableInt(sample.SleepDurationMinutes),
		nullableInt(sample.StressLevel),
		sample.Source, sample.Notes, now,
	)
	return scanSample(row)
}

// SampleForDay returns the sample stored for a user and day, or nil.
func (d *DB) SampleForDay(ctx context.Context, userID int64, day string) (*domain.BiometricSample, error) {
	row := d.sql.QueryRowContext(ctx,
		"SELECT "+sampleColumns+" FROM biometric_samples WHERE user_id = $1 AND day = $2;",
		userID, day,
	)
	sample, err := scanSample(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return sample, err
}

// ListSamplesInRange returns samples between startDay and endDay inclusive,
// ascending by day.
func (d *DB) ListSamplesInRange(ctx context.Context, userID int64, startDay, endDay string) ([]domain.BiometricSample, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT "+sampleColumns+" FROM biometric_samples WHERE user_id = $1 AND day >= $2 AND day <= $3 ORDER BY day ASC;",
		userID, startDay, endDay,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	var out []domain.BiometricSample
	for rows.Next() {
		sample, err := scanSample(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *sample)
	}
	return out, rows.Err()
}

// DeleteSample removes the sample for a user and day. The bool reports
// whether a row existed.
func (d *DB) DeleteSample(ctx context.Context, userID int64, day string) (bool, error) {
	res, err := d.sql.ExecContext(ctx,
		"DELETE FROM biometric_samples WHERE user_id = $1 AND day = $2;", userID, day)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSample(row rowScanner) (*domain.BiometricSample, error) {
	var (
		s        domain.BiometricSample
		hrv      sql.NullInt64
		rhr      sql.NullInt64
		quality  sql.NullInt64
		duration sql.NullInt64
		stress   sql.NullInt64
	)
	if err := row.Scan(&s.ID, &s.UserID, &s.Day, &hrv, &rhr, &quality, &duration, &stress, &s.Source, &s.Notes, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	s.HRVScore = fromNullInt(hrv)
	s.RestingHeartRate = fromNullInt(rhr)
	s.SleepQuality = fromNullInt(quality)
	s.SleepDurationMinutes = fromNullInt(duration)
	s.StressLevel = fromNullInt(stress)
	return &s, nil
}

func nullableInt(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}

func fromNullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
