package app

import (
	"context"
	"errors"
	"time"

	"readiness/internal/domain"
	"readiness/internal/observability"

	"github.com/google/uuid"
)

var (
	// ErrUnknownPlatform indicates an import platform this service does not support.
	ErrUnknownPlatform = errors.New("unknown import platform")
	// ErrPlatformNotConnected indicates the user has not connected the platform.
	ErrPlatformNotConnected = errors.New("platform is not connected")
)

// importPlatforms is the set of supported external import origins.
var importPlatforms = map[string]bool{
	domain.SourceWhoop:  true,
	domain.SourceOura:   true,
	domain.SourceGarmin: true,
}

// ImportService ingests biometric samples pushed from external platforms.
type ImportService struct {
	samples     *SampleService
	connections domain.ConnectionRepository
}

// NewImportService creates an ImportService writing through the given sample
// service and connection repository.
func NewImportService(samples *SampleService, connections domain.ConnectionRepository) *ImportService {
	return &ImportService{samples: samples, connections: connections}
}

// ImportReport summarises the outcome of one import batch.
type ImportReport struct {
	BatchID  string `json:"batchId"`
	Platform string `json:"platform"`
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
}

// ImportBatch normalizes and upserts a batch of platform entries. Entries
// that fail ingestion validation are skipped and counted, not fatal; one
// batch therefore never partially blocks on a single bad reading.
func (s *ImportService) ImportBatch(ctx context.Context, userID int64, platform string, entries []SampleInput) (*ImportReport, error) {
	if !importPlatforms[platform] {
		return nil, ErrUnknownPlatform
	}
	connected, err := s.connections.IsConnected(ctx, userID, platform)
	if err != nil {
		return nil, err
	}
	if !connected {
		return nil, ErrPlatformNotConnected
	}

	report := &ImportReport{BatchID: uuid.NewString(), Platform: platform}
	for _, entry := range entries {
		entry.Source = platform
		if _, err := s.samples.Record(ctx, userID, entry); err != nil {
			if errors.Is(err, ErrInvalidDay) || errors.Is(err, ErrInvalidMetric) {
				report.Skipped++
				continue
			}
			return nil, err
		}
		report.Imported++
	}
	observability.RecordImportBatch(platform, report.Imported, report.Skipped)
	return report, nil
}

// Connect links an import platform to the user's account.
func (s *ImportService) Connect(ctx context.Context, userID int64, platform string) error {
	if !importPlatforms[platform] {
		return ErrUnknownPlatform
	}
	return s.connections.Connect(ctx, userID, platform, time.Now().UTC())
}

// Disconnect unlinks an import platform.
func (s *ImportService) Disconnect(ctx context.Context, userID int64, platform string) error {
	if !importPlatforms[platform] {
		return ErrUnknownPlatform
	}
	return s.connections.Disconnect(ctx, userID, platform)
}

// Connections lists the platforms the user has connected.
func (s *ImportService) Connections(ctx context.Context, userID int64) ([]domain.PlatformConnection, error) {
	return s.connections.ListConnections(ctx, userID)
}
