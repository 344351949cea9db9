package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/shoplens/internal/resulttree"
)

// Snapshot represents the latest forecast and service health seen by the poller.
type Snapshot struct {
	Forecast            *resulttree.Tree
	HasForecast         bool
	Reachable           bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive poll failures
}

// IsOffline returns true when the service has been unreachable for multiple polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update records the outcome of one poll. When err is non-nil the previous
// forecast is kept and the error is recorded. A nil forecast with a nil error
// means the service answered but had nothing to forecast yet; an existing
// forecast is kept in that case too.
func (s *Store) Update(forecast *resulttree.Tree, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.LastUpdated = time.Now()
	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.Reachable = false
		s.snapshot.ConsecutiveFailures++
		return
	}

	if forecast != nil {
		s.snapshot.Forecast = forecast.Clone()
		s.snapshot.HasForecast = true
	}
	s.snapshot.Reachable = true
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Forecast = s.snapshot.Forecast.Clone()
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}
