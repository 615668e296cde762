package scheduler

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-report/internal/weather"
)

type fakeRefresher struct {
	mu     sync.Mutex
	calls  []string
	failOn map[string]bool
}

func (f *fakeRefresher) Refresh(ctx context.Context, name string) (weather.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
	if _, ok := ctx.Deadline(); !ok {
		return weather.Snapshot{}, errors.New("refresh without deadline")
	}
	if f.failOn[name] {
		return weather.Snapshot{}, errors.New("boom")
	}
	return weather.Snapshot{Source: name}, nil
}

func (f *fakeRefresher) called() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := append([]string(nil), f.calls...)
	sort.Strings(out)
	return out
}

func TestRunOnceRefreshesEverySource(t *testing.T) {
	fake := &fakeRefresher{failOn: map[string]bool{"month": true}}
	s := New([]string{"week", "month", "year"}, time.Minute, fake)

	failed := s.RunOnce(context.Background())

	assert.Equal(t, 1, failed)
	assert.Equal(t, []string{"month", "week", "year"}, fake.called())
}

func TestStartWithoutSources(t *testing.T) {
	fake := &fakeRefresher{}
	s := New(nil, time.Minute, fake)
	require.NoError(t, s.Start())
	s.Stop()
	assert.Empty(t, fake.called())
}

func TestStartRunsImmediately(t *testing.T) {
	fake := &fakeRefresher{}
	s := New([]string{"week"}, time.Hour, fake)
	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Eventually(t, func() bool {
		return len(fake.called()) >= 1
	}, 5*time.Second, 10*time.Millisecond)
}

func TestIntervalKeepsSubMinutePrecision(t *testing.T) {
	tests := []struct {
		interval time.Duration
		want     time.Duration
	}{
		{30 * time.Second, 30 * time.Second},
		{90 * time.Second, 90 * time.Second},
		{0, 15 * time.Minute},
		{-time.Minute, 15 * time.Minute},
	}

	for _, tt := range tests {
		s := New([]string{"week"}, tt.interval, &fakeRefresher{})
		assert.Equal(t, tt.want, s.every(), "interval %s", tt.interval)
	}
}

func TestStartWithSubMinuteInterval(t *testing.T) {
	fake := &fakeRefresher{}
	s := New([]string{"week"}, 30*time.Second, fake)
	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Eventually(t, func() bool {
		return len(fake.called()) >= 1
	}, 5*time.Second, 10*time.Millisecond)
}
