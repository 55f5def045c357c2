package app

import (
	"context"

	"readiness/internal/domain"
	"readiness/internal/observability"
)

// ReadinessService turns stored biometric samples into readiness time series
// for the dashboard gauge, metric cards and chart.
type ReadinessService struct {
	samples domain.SampleRepository
}

// NewReadinessService creates a ReadinessService backed by the given repository.
func NewReadinessService(samples domain.SampleRepository) *ReadinessService {
	return &ReadinessService{samples: samples}
}

// DayReadiness is one scored day in the series. The result is derived fresh
// from the stored sample on every read and is never persisted.
type DayReadiness struct {
	Day            string                 `json:"day"`
	Sample         domain.BiometricSample `json:"sample"`
	Score          int                    `json:"score"`
	Band           domain.ReadinessBand   `json:"band"`
	Recommendation string                 `json:"recommendation"`
}

// GetDaily returns one scored point per stored sample between startDay and
// endDay inclusive, ascending by day. Days without a sample are omitted.
func (s *ReadinessService) GetDaily(ctx context.Context, userID int64, startDay, endDay string) ([]DayReadiness, error) {
	start, end, err := parseRange(startDay, endDay)
	if err != nil {
		return nil, err
	}
	if end.AddDate(0, 0, -366).After(start) {
		startDay = end.AddDate(0, 0, -366).Format("2006-01-02")
	}

	samples, err := s.samples.ListSamplesInRange(ctx, userID, startDay, endDay)
	if err != nil {
		return nil, err
	}

	points := make([]DayReadiness, 0, len(samples))
	for _, sample := range samples {
		res := domain.ScoreReadiness(sample)
		observability.RecordReadinessComputed(string(res.Band))
		points = append(points, DayReadiness{
			Day:            sample.Day,
			Sample:         sample,
			Score:          res.Score,
			Band:           res.Band,
			Recommendation: res.Recommendation,
		})
	}
	return points, nil
}

// Today scores the sample stored for the given local day. Returns nil when no
// sample exists for that day; a stored sample with zero populated metrics
// still yields the scorer's defined neutral result.
func (s *ReadinessService) Today(ctx context.Context, userID int64, today string) (*DayReadiness, error) {
	sample, err := s.samples.SampleForDay(ctx, userID, today)
	if err != nil {
		return nil, err
	}
	if sample == nil {
		return nil, nil
	}

	res := domain.ScoreReadiness(*sample)
	observability.RecordReadinessComputed(string(res.Band))
	return &DayReadiness{
		Day:            sample.Day,
		Sample:         *sample,
		Score:          res.Score,
		Band:           res.Band,
		Recommendation: res.Recommendation,
	}, nil
}
