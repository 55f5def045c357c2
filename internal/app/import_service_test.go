package app_test

import (
	"context"
	"errors"
	"testing"

	"readiness/internal/app"
	"readiness/internal/domain"
)

func newImportService(samples *mockSampleRepo, conns *mockConnectionRepo) *app.ImportService {
	return app.NewImportService(app.NewSampleService(samples), conns)
}

func TestImportBatch_UnknownPlatform(t *testing.T) {
	svc := newImportService(&mockSampleRepo{}, &mockConnectionRepo{})
	_, err := svc.ImportBatch(context.Background(), 1, "fitbit", nil)
	if !errors.Is(err, app.ErrUnknownPlatform) {
		t.Errorf("expected ErrUnknownPlatform, got %v", err)
	}
}

func TestImportBatch_NotConnected(t *testing.T) {
	conns := &mockConnectionRepo{
		isConnectedFn: func(_ context.Context, _ int64, _ string) (bool, error) { return false, nil },
	}
	svc := newImportService(&mockSampleRepo{}, conns)

	_, err := svc.ImportBatch(context.Background(), 1, domain.SourceOura, []app.SampleInput{{Day: "2026-03-01"}})
	if !errors.Is(err, app.ErrPlatformNotConnected) {
		t.Errorf("expected ErrPlatformNotConnected, got %v", err)
	}
}

func TestImportBatch_StampsPlatformAsSource(t *testing.T) {
	var sources []string
	samples := &mockSampleRepo{
		upsertFn: func(_ context.Context, sample domain.BiometricSample) (*domain.BiometricSample, error) {
			sources = append(sources, sample.Source)
			out := sample
			return &out, nil
		},
	}
	svc := newImportService(samples, &mockConnectionRepo{})

	report, err := svc.ImportBatch(context.Background(), 1, domain.SourceWhoop, []app.SampleInput{
		{Day: "2026-03-01", HRVScore: intPtr(64)},
		{Day: "2026-03-02", HRVScore: intPtr(58), Source: "manual"}, // source is overwritten
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Imported != 2 || report.Skipped != 0 {
		t.Errorf("expected 2 imported / 0 skipped, got %d / %d", report.Imported, report.Skipped)
	}
	if report.BatchID == "" {
		t.Error("expected a batch ID")
	}
	for _, src := range sources {
		if src != domain.SourceWhoop {
			t.Errorf("expected source %q, got %q", domain.SourceWhoop, src)
		}
	}
}

func TestImportBatch_SkipsInvalidEntries(t *testing.T) {
	svc := newImportService(&mockSampleRepo{}, &mockConnectionRepo{})

	report, err := svc.ImportBatch(context.Background(), 1, domain.SourceGarmin, []app.SampleInput{
		{Day: "2026-03-01", SleepDurationMinutes: intPtr(460)},
		{Day: "not-a-day", SleepDurationMinutes: intPtr(460)},
		{Day: "2026-03-03", StressLevel: intPtr(99)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Imported != 1 {
		t.Errorf("expected 1 imported, got %d", report.Imported)
	}
	if report.Skipped != 2 {
		t.Errorf("expected 2 skipped, got %d", report.Skipped)
	}
}

func TestImportBatch_RepoErrorIsFatal(t *testing.T) {
	boom := errors.New("db down")
	samples := &mockSampleRepo{
		upsertFn: func(_ context.Context, _ domain.BiometricSample) (*domain.BiometricSample, error) {
			return nil, boom
		},
	}
	svc := newImportService(samples, &mockConnectionRepo{})

	_, err := svc.ImportBatch(context.Background(), 1, domain.SourceOura, []app.SampleInput{{Day: "2026-03-01"}})
	if !errors.Is(err, boom) {
		t.Errorf("expected storage error to propagate, got %v", err)
	}
}

func TestConnectDisconnect_UnknownPlatform(t *testing.T) {
	svc := newImportService(&mockSampleRepo{}, &mockConnectionRepo{})

	if err := svc.Connect(context.Background(), 1, "polar"); !errors.Is(err, app.ErrUnknownPlatform) {
		t.Errorf("Connect: expected ErrUnknownPlatform, got %v", err)
	}
	if err := svc.Disconnect(context.Background(), 1, "polar"); !errors.Is(err, app.ErrUnknownPlatform) {
		t.Errorf("Disconnect: expected ErrUnknownPlatform, got %v", err)
	}
}
