package app_test

import (
	"context"
	"errors"
	"testing"

	"readiness/internal/app"
	"readiness/internal/domain"
)

func TestGetDaily_ScoresEachStoredSample(t *testing.T) {
	repo := &mockSampleRepo{
		listFn: func(_ context.Context, _ int64, _, _ string) ([]domain.BiometricSample, error) {
			return []domain.BiometricSample{
				{Day: "2026-03-01", SleepQuality: intPtr(10), Source: "manual"},
				{Day: "2026-03-02", Source: "manual"},
			}, nil
		},
	}
	svc := app.NewReadinessService(repo)

	points, err := svc.GetDaily(context.Background(), 1, "2026-03-01", "2026-03-07")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}

	// 50 + (100-50)*0.20 - 12 = 48
	if points[0].Score != 48 {
		t.Errorf("expected score 48 for lone sleepQuality=10, got %d", points[0].Score)
	}
	// Zero populated metrics stays at the neutral baseline.
	if points[1].Score != 50 {
		t.Errorf("expected neutral 50 for empty sample, got %d", points[1].Score)
	}
	for _, p := range points {
		if p.Recommendation == "" {
			t.Errorf("missing recommendation for day %s", p.Day)
		}
	}
}

func TestGetDaily_OmitsMissingDays(t *testing.T) {
	repo := &mockSampleRepo{
		listFn: func(_ context.Context, _ int64, _, _ string) ([]domain.BiometricSample, error) {
			return []domain.BiometricSample{{Day: "2026-03-04", StressLevel: intPtr(2)}}, nil
		},
	}
	svc := app.NewReadinessService(repo)

	points, err := svc.GetDaily(context.Background(), 1, "2026-03-01", "2026-03-07")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 1 {
		t.Fatalf("expected 1 point for the single stored sample, got %d", len(points))
	}
	if points[0].Day != "2026-03-04" {
		t.Errorf("expected day 2026-03-04, got %s", points[0].Day)
	}
}

func TestGetDaily_BadRange(t *testing.T) {
	svc := app.NewReadinessService(&mockSampleRepo{})
	if _, err := svc.GetDaily(context.Background(), 1, "2026-03-07", "2026-03-01"); !errors.Is(err, app.ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange, got %v", err)
	}
}

func TestGetDaily_RepoError(t *testing.T) {
	boom := errors.New("db down")
	repo := &mockSampleRepo{
		listFn: func(_ context.Context, _ int64, _, _ string) ([]domain.BiometricSample, error) {
			return nil, boom
		},
	}
	svc := app.NewReadinessService(repo)
	if _, err := svc.GetDaily(context.Background(), 1, "2026-03-01", "2026-03-07"); !errors.Is(err, boom) {
		t.Errorf("expected repo error to propagate, got %v", err)
	}
}

func TestToday_NoSample(t *testing.T) {
	svc := app.NewReadinessService(&mockSampleRepo{})
	point, err := svc.Today(context.Background(), 1, "2026-03-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if point != nil {
		t.Errorf("expected nil point when no sample stored, got %+v", point)
	}
}

func TestToday_ScoresStoredSample(t *testing.T) {
	repo := &mockSampleRepo{
		forDayFn: func(_ context.Context, _ int64, day string) (*domain.BiometricSample, error) {
			return &domain.BiometricSample{
				Day:                  day,
				HRVScore:             intPtr(75),
				RestingHeartRate:     intPtr(55),
				SleepQuality:         intPtr(8),
				SleepDurationMinutes: intPtr(480),
				StressLevel:          intPtr(3),
			}, nil
		},
	}
	svc := app.NewReadinessService(repo)

	point, err := svc.Today(context.Background(), 1, "2026-03-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if point == nil {
		t.Fatal("expected a scored point")
	}
	if point.Band != domain.BandVeryGood {
		t.Errorf("expected veryGood band for the good profile, got %q", point.Band)
	}
	if point.Score != 82 {
		t.Errorf("expected score 82, got %d", point.Score)
	}
}
