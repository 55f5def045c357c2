package domain

import (
	"context"
	"time"
)

// Known sample sources. Manual entry plus the supported import platforms.
// The source tag is informational and is not validated beyond being a string.
const (
	SourceManual = "manual"
	SourceWhoop  = "whoop"
	SourceOura   = "oura"
	SourceGarmin = "garmin"
)

// BiometricSample is one user's biometric reading for a calendar day.
// At most one sample exists per user per day; a later write for the same
// day updates the stored sample. All metric fields are optional.
type BiometricSample struct {
	ID                   int64     `json:"id"`
	UserID               int64     `json:"userId"`
	Day                  string    `json:"day"`
	HRVScore             *int      `json:"hrvScore,omitempty"`
	RestingHeartRate     *int      `json:"restingHeartRate,omitempty"`
	SleepQuality         *int      `json:"sleepQuality,omitempty"`
	SleepDurationMinutes *int      `json:"sleepDurationMinutes,omitempty"`
	StressLevel          *int      `json:"stressLevel,omitempty"`
	Source               string    `json:"source"`
	Notes                string    `json:"notes,omitempty"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// MetricCount reports how many of the five scoring metrics are populated.
func (s BiometricSample) MetricCount() int {
	n := 0
	for _, p := range []*int{s.HRVScore, s.RestingHeartRate, s.SleepQuality, s.SleepDurationMinutes, s.StressLevel} {
		if p != nil {
			n++
		}
	}
	return n
}

// SampleRepository is the port for biometric sample persistence.
type SampleRepository interface {
	UpsertSample(ctx context.Context, sample BiometricSample) (*BiometricSample, error)
	SampleForDay(ctx context.Context, userID int64, day string) (*BiometricSample, error)
	ListSamplesInRange(ctx context.Context, userID int64, startDay, endDay string) ([]BiometricSample, error)
	DeleteSample(ctx context.Context, userID int64, day string) (bool, error)
}

// PlatformConnection records that a user has linked an external import platform.
type PlatformConnection struct {
	UserID      int64     `json:"userId"`
	Platform    string    `json:"platform"`
	ConnectedAt time.Time `json:"connectedAt"`
}

// ConnectionRepository is the port for platform connection persistence.
type ConnectionRepository interface {
	Connect(ctx context.Context, userID int64, platform string, connectedAt time.Time) error
	Disconnect(ctx context.Context, userID int64, platform string) error
	IsConnected(ctx context.Context, userID int64, platform string) (bool, error)
	ListConnections(ctx context.Context, userID int64) ([]PlatformConnection, error)
}
