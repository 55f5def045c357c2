// Package memory implements in-memory repositories for development and testing.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"readiness/internal/domain"
)

// DB implements an in-memory database storage.
type DB struct {
	mu          sync.Mutex
	samples     map[int64]map[string]domain.BiometricSample // userID -> day -> sample
	connections map[int64]map[string]domain.PlatformConnection
	users       []*domain.User
	sessions    map[string]*domain.Session

	sampleIDCounter int64
	userIDCounter   int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		samples:     make(map[int64]map[string]domain.BiometricSample),
		connections: make(map[int64]map[string]domain.PlatformConnection),
		sessions:    make(map[string]*domain.Session),
	}
}

// Ensure interfaces are met.
var _ domain.SampleRepository = (*DB)(nil)
var _ domain.ConnectionRepository = (*DB)(nil)
var _ domain.UserRepository = (*DB)(nil)
var _ domain.SessionRepository = (*SessionRepo)(nil)

// --- SampleRepository ---

// UpsertSample stores a sample, replacing any existing one for the same user and day.
func (db *DB) UpsertSample(ctx context.Context, sample domain.BiometricSample) (*domain.BiometricSample, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	byDay, ok := db.samples[sample.UserID]
	if !ok {
		byDay = make(map[string]domain.BiometricSample)
		db.samples[sample.UserID] = byDay
	}

	now := time.Now().UTC()
	if existing, ok := byDay[sample.Day]; ok {
		sample.ID = existing.ID
		sample.CreatedAt = existing.CreatedAt
	} else {
		db.sampleIDCounter++
		sample.ID = db.sampleIDCounter
		sample.CreatedAt = now
	}
	sample.UpdatedAt = now

	byDay[sample.Day] = sample
	out := sample
	return &out, nil
}

// SampleForDay returns the sample for the given day, or nil.
func (db *DB) SampleForDay(ctx context.Context, userID int64, day string) (*domain.BiometricSample, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if s, ok := db.samples[userID][day]; ok {
		out := s
		return &out, nil
	}
	return nil, nil
}

// ListSamplesInRange returns samples between startDay and endDay inclusive,
// ascending by day. Day strings compare lexically because of the fixed format.
func (db *DB) ListSamplesInRange(ctx context.Context, userID int64, startDay, endDay string) ([]domain.BiometricSample, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var out []domain.BiometricSample
	for day, s := range db.samples[userID] {
		if day >= startDay && day <= endDay {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out, nil
}

// DeleteSample removes the sample for the given day.
func (db *DB) DeleteSample(ctx context.Context, userID int64, day string) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.samples[userID][day]; !ok {
		return false, nil
	}
	delete(db.samples[userID], day)
	return true, nil
}

// --- ConnectionRepository ---

// Connect records a platform connection.
func (db *DB) Connect(ctx context.Context, userID int64, platform string, connectedAt time.Time) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	byPlatform, ok := db.connections[userID]
	if !ok {
		byPlatform = make(map[string]domain.PlatformConnection)
		db.connections[userID] = byPlatform
	}
	byPlatform[platform] = domain.PlatformConnection{
		UserID:      userID,
		Platform:    platform,
		ConnectedAt: connectedAt.UTC(),
	}
	return nil
}

// Disconnect removes a platform connection.
func (db *DB) Disconnect(ctx context.Context, userID int64, platform string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	delete(db.connections[userID], platform)
	return nil
}

// IsConnected reports whether the user has connected the platform.
func (db *DB) IsConnected(ctx context.Context, userID int64, platform string) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	_, ok := db.connections[userID][platform]
	return ok, nil
}

// ListConnections returns the user's platform connections, oldest first.
func (db *DB) ListConnections(ctx context.Context, userID int64) ([]domain.PlatformConnection, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var out []domain.PlatformConnection
	for _, c := range db.connections[userID] {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ConnectedAt.Before(out[j].ConnectedAt) })
	return out, nil
}

// --- UserRepository ---

// GetByUsername retrieves a user by username.
func (db *DB) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

// GetByID retrieves a user by ID.
func (db *DB) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

// Create creates a new user.
func (db *DB) Create(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			return nil, errors.New("user already exists")
		}
	}

	db.userIDCounter++
	u := &domain.User{
		ID:           db.userIDCounter,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	db.users = append(db.users, u)
	return u, nil
}

// Count returns the total number of users.
func (db *DB) Count(ctx context.Context) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.users), nil
}

// --- SessionRepository ---

// SessionRepo implements session persistence.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo wraps the DB as a SessionRepository.
func (db *DB) NewSessionRepo() *SessionRepo {
	return &SessionRepo{db: db}
}

// Create creates a new session.
func (r *SessionRepo) Create(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.sessions[token] = &domain.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

// GetByToken retrieves a session by token.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if s, ok := r.db.sessions[token]; ok {
		if time.Now().After(s.ExpiresAt) {
			delete(r.db.sessions, token)
			return nil, nil
		}
		return s, nil
	}
	return nil, nil
}

// Delete deletes a session.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.sessions, token)
	return nil
}

// DeleteExpired deletes all expired sessions.
func (r *SessionRepo) DeleteExpired(ctx context.Context) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	now := time.Now()
	for k, v := range r.db.sessions {
		if now.After(v.ExpiresAt) {
			delete(r.db.sessions, k)
		}
	}
	return nil
}
