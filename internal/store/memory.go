package store

import (
	"errors"
	"sync"
	"time"

	"github.com/gustavopmaia/gs-andre/internal/weather"
)

var (
	// ErrNotFound is returned when no snapshot has been stored yet.
	ErrNotFound = errors.New("no current conditions available")
)

// Snapshot is the last known current-conditions reading and when it was fetched.
type Snapshot struct {
	Current   *weather.CurrentConditions
	FetchedAt time.Time
}

// LatestStore is a concurrency-safe holder of the most recent current-conditions
// snapshot. Writers are the poller; readers are request handlers.
type LatestStore struct {
	mu sync.RWMutex

	snapshot  Snapshot
	has       bool
	lastErr   error
	lastErrAt time.Time

	// maxAge, when positive, makes snapshots older than it invisible to Latest.
	maxAge time.Duration
	now    func() time.Time
}

// NewLatestStore creates an empty store. If maxAge is <= 0 snapshots never expire.
func NewLatestStore(maxAge time.Duration) *LatestStore {
	return &LatestStore{
		maxAge: maxAge,
		now:    time.Now,
	}
}

// Save replaces the stored snapshot and clears the last failure.
// A nil current is stored as-is: the provider answered without a snapshot.
func (s *LatestStore) Save(current *weather.CurrentConditions) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot = Snapshot{Current: current, FetchedAt: s.now()}
	s.has = true
	s.lastErr = nil
	s.lastErrAt = time.Time{}
}

// MarkFailed records a failed refresh. The previous snapshot is kept.
func (s *LatestStore) MarkFailed(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastErr = err
	s.lastErrAt = s.now()
}

// Latest returns the most recent snapshot with a non-nil reading.
func (s *LatestStore) Latest() (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.has || s.snapshot.Current == nil {
		return Snapshot{}, ErrNotFound
	}
	if s.maxAge > 0 && s.now().Sub(s.snapshot.FetchedAt) > s.maxAge {
		return Snapshot{}, ErrNotFound
	}
	return s.snapshot, nil
}

// LastFailure returns when the last refresh failed and why. Both are zero
// if the most recent refresh succeeded.
func (s *LatestStore) LastFailure() (time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErrAt, s.lastErr
}
