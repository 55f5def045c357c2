package app

import (
	"context"
	"errors"
	"time"

	"readiness/internal/domain"
	"readiness/internal/observability"
)

var (
	// ErrInvalidDay indicates a day string that does not parse as YYYY-MM-DD.
	ErrInvalidDay = errors.New("day must be formatted as YYYY-MM-DD")
	// ErrInvalidMetric indicates a metric value outside its accepted range.
	ErrInvalidMetric = errors.New("metric value out of range")
	// ErrInvalidRange indicates a date range whose start falls after its end.
	ErrInvalidRange = errors.New("start day must not be after end day")
)

// SampleService encapsulates biometric sample recording use cases. Range
// validation happens here, at the ingestion boundary; the scorer itself
// accepts any stored sample.
type SampleService struct {
	repo domain.SampleRepository
}

// NewSampleService creates a SampleService backed by the given repository.
func NewSampleService(repo domain.SampleRepository) *SampleService {
	return &SampleService{repo: repo}
}

// SampleInput carries the fields accepted from manual entry or an import.
type SampleInput struct {
	Day                  string `json:"day"`
	HRVScore             *int   `json:"hrvScore"`
	RestingHeartRate     *int   `json:"restingHeartRate"`
	SleepQuality         *int   `json:"sleepQuality"`
	SleepDurationMinutes *int   `json:"sleepDurationMinutes"`
	StressLevel          *int   `json:"stressLevel"`
	Source               string `json:"source"`
	Notes                string `json:"notes"`
}

// Record validates and stores a sample for the given day, overwriting any
// sample already stored for that user and day.
func (s *SampleService) Record(ctx context.Context, userID int64, in SampleInput) (*domain.BiometricSample, error) {
	if _, err := time.Parse("2006-01-02", in.Day); err != nil {
		return nil, ErrInvalidDay
	}
	if err := validateMetrics(in); err != nil {
		return nil, err
	}
	source := in.Source
	if source == "" {
		source = domain.SourceManual
	}

	sample := domain.BiometricSample{
		UserID:               userID,
		Day:                  in.Day,
		HRVScore:             in.HRVScore,
		RestingHeartRate:     in.RestingHeartRate,
		SleepQuality:         in.SleepQuality,
		SleepDurationMinutes: in.SleepDurationMinutes,
		StressLevel:          in.StressLevel,
		Source:               source,
		Notes:                in.Notes,
	}
	stored, err := s.repo.UpsertSample(ctx, sample)
	if err != nil {
		return nil, err
	}
	observability.RecordSampleStored(stored.Source, stored.UpdatedAt)
	return stored, nil
}

// GetDay returns the sample stored for the given day, or nil when absent.
func (s *SampleService) GetDay(ctx context.Context, userID int64, day string) (*domain.BiometricSample, error) {
	if _, err := time.Parse("2006-01-02", day); err != nil {
		return nil, ErrInvalidDay
	}
	return s.repo.SampleForDay(ctx, userID, day)
}

// ListRange returns stored samples between startDay and endDay inclusive,
// ascending by day. The range is capped at 366 days.
func (s *SampleService) ListRange(ctx context.Context, userID int64, startDay, endDay string) ([]domain.BiometricSample, error) {
	start, end, err := parseRange(startDay, endDay)
	if err != nil {
		return nil, err
	}
	if end.Sub(start) > 366*24*time.Hour {
		startDay = end.AddDate(0, 0, -366).Format("2006-01-02")
	}
	return s.repo.ListSamplesInRange(ctx, userID, startDay, endDay)
}

// Delete removes the sample for the given day. The bool reports whether a
// sample existed.
func (s *SampleService) Delete(ctx context.Context, userID int64, day string) (bool, error) {
	if _, err := time.Parse("2006-01-02", day); err != nil {
		return false, ErrInvalidDay
	}
	return s.repo.DeleteSample(ctx, userID, day)
}

func parseRange(startDay, endDay string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", startDay)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDay
	}
	end, err := time.Parse("2006-01-02", endDay)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDay
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, ErrInvalidRange
	}
	return start, end, nil
}

// validateMetrics checks each present metric against its accepted entry
// range. The source tag is deliberately not validated beyond being a string.
func validateMetrics(in SampleInput) error {
	if in.HRVScore != nil && *in.HRVScore <= 0 {
		return ErrInvalidMetric
	}
	if in.RestingHeartRate != nil && *in.RestingHeartRate <= 0 {
		return ErrInvalidMetric
	}
	if in.SleepQuality != nil && (*in.SleepQuality < 1 || *in.SleepQuality > 10) {
		return ErrInvalidMetric
	}
	if in.SleepDurationMinutes != nil && *in.SleepDurationMinutes < 0 {
		return ErrInvalidMetric
	}
	if in.StressLevel != nil && (*in.StressLevel < 1 || *in.StressLevel > 10) {
		return ErrInvalidMetric
	}
	return nil
}
