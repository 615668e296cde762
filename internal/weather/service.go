package weather

import (
	"context"
	"fmt"
	"io"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Service loads configured sources into the store and renders reports from it.
type Service struct {
	store   Store
	sources map[string]Source
	opts    []LoadOption
}

// NewService creates a new Service. Sources are addressed by their Name.
func NewService(store Store, sources []Source, opts ...LoadOption) *Service {
	byName := make(map[string]Source, len(sources))
	for _, src := range sources {
		byName[src.Name()] = src
	}
	return &Service{
		store:   store,
		sources: byName,
		opts:    opts,
	}
}

// Sources returns the configured source names, sorted.
func (s *Service) Sources() []string {
	names := make([]string, 0, len(s.sources))
	for name := range s.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Refresh loads the named source and stores a new snapshot. A failed load
// leaves the last good snapshot in place.
func (s *Service) Refresh(ctx context.Context, name string) (Snapshot, error) {
	src, ok := s.sources[name]
	if !ok {
		return Snapshot{}, fmt.Errorf("%w: %s", ErrUnknownSource, name)
	}

	ds, err := Load(ctx, src, s.opts...)
	if err != nil {
		log.Printf("refresh of %s failed; keeping last good snapshot if any: %v", name, err)
		return Snapshot{}, err
	}

	snapshot := Snapshot{
		ID:       uuid.NewString(),
		Source:   name,
		LoadedAt: time.Now().UTC(),
		Records:  ds.Records(),
	}
	s.store.SaveSnapshot(snapshot)
	log.Printf("INFO: loaded %d days from %s (snapshot %s)", ds.Len(), name, snapshot.ID)
	return snapshot, nil
}

// GetLatest returns the latest snapshot of a configured source.
func (s *Service) GetLatest(name string) (Snapshot, error) {
	if _, ok := s.sources[name]; !ok {
		return Snapshot{}, fmt.Errorf("%w: %s", ErrUnknownSource, name)
	}
	return s.store.GetLatest(name)
}

// GetHistory delegates to the underlying store.
func (s *Service) GetHistory(name string) ([]Snapshot, error) {
	if _, ok := s.sources[name]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSource, name)
	}
	return s.store.GetHistory(name)
}

// Summary renders the overview of the latest snapshot of name.
func (s *Service) Summary(name string) (string, error) {
	snap, err := s.GetLatest(name)
	if err != nil {
		return "", err
	}
	return Summary(snap.Dataset())
}

// DailySummary renders the per-day report of the latest snapshot of name.
func (s *Service) DailySummary(name string) (string, error) {
	snap, err := s.GetLatest(name)
	if err != nil {
		return "", err
	}
	return DailySummary(snap.Dataset())
}

// Render parses r and renders the requested report without touching the store.
func (s *Service) Render(r io.Reader, daily bool) (string, error) {
	ds, err := Parse(r, s.opts...)
	if err != nil {
		return "", err
	}
	if daily {
		return DailySummary(ds)
	}
	return Summary(ds)
}
