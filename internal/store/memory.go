package store

import (
	"errors"
	"sync"
	"time"

	"github.com/i474232898/weather-report/internal/weather"
)

var (
	// ErrNotFound is returned when no dataset has been loaded for a source.
	ErrNotFound = errors.New("no weather data for source")
)

// SnapshotHistory holds the load-ordered snapshots of one source.
type SnapshotHistory struct {
	Snapshots []weather.Snapshot
}

// MemoryStore is a concurrency-safe in-memory implementation of weather.Store.
type MemoryStore struct {
	mu sync.RWMutex

	// key: source name, value: history
	data map[string]*SnapshotHistory

	// retention configuration
	maxHistory int           // max number of snapshots per source
	maxAge     time.Duration // optional max age for snapshots

	now func() time.Time
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxHistory is <= 0, it is treated as unlimited.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:       make(map[string]*SnapshotHistory),
		maxHistory: maxHistory,
		maxAge:     maxAge,
		now:        time.Now,
	}
}

// SaveSnapshot appends a snapshot for its source and enforces retention.
// The newest snapshot is always kept.
func (s *MemoryStore) SaveSnapshot(snapshot weather.Snapshot) {
	key := snapshot.Source

	s.mu.Lock()
	defer s.mu.Unlock()

	history, ok := s.data[key]
	if !ok {
		history = &SnapshotHistory{}
		s.data[key] = history
	}

	history.Snapshots = append(history.Snapshots, snapshot)

	if s.maxHistory > 0 && len(history.Snapshots) > s.maxHistory {
		over := len(history.Snapshots) - s.maxHistory
		history.Snapshots = history.Snapshots[over:]
	}

	if s.maxAge > 0 {
		cutoff := s.now().Add(-s.maxAge)
		i := 0
		for ; i < len(history.Snapshots)-1; i++ {
			if !history.Snapshots[i].LoadedAt.Before(cutoff) {
				break
			}
		}
		history.Snapshots = history.Snapshots[i:]
	}
}

// GetLatest returns the most recent snapshot of a source.
func (s *MemoryStore) GetLatest(source string) (weather.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[source]
	if !ok || len(history.Snapshots) == 0 {
		return weather.Snapshot{}, ErrNotFound
	}
	return cloneSnapshot(history.Snapshots[len(history.Snapshots)-1]), nil
}

// GetHistory returns all retained snapshots of a source, oldest first.
func (s *MemoryStore) GetHistory(source string) ([]weather.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[source]
	if !ok || len(history.Snapshots) == 0 {
		return nil, ErrNotFound
	}

	out := make([]weather.Snapshot, len(history.Snapshots))
	for i, snap := range history.Snapshots {
		out[i] = cloneSnapshot(snap)
	}
	return out, nil
}

// cloneSnapshot detaches the records from the stored backing array.
func cloneSnapshot(snap weather.Snapshot) weather.Snapshot {
	snap.Records = append([]weather.Record(nil), snap.Records...)
	return snap
}

var _ weather.Store = (*MemoryStore)(nil)
