package weather_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-report/internal/store"
	"github.com/i474232898/weather-report/internal/weather"
)

// memSource serves a body that tests can swap between refreshes.
type memSource struct {
	mu   sync.Mutex
	name string
	body string
	err  error
}

func (s *memSource) Name() string { return s.name }

func (s *memSource) Open(ctx context.Context) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return io.NopCloser(strings.NewReader(s.body)), nil
}

func (s *memSource) set(body string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.body, s.err = body, err
}

const weekCSV = "date,min,max\n2021-07-05,49,67\n2021-07-06,57,68\n"

func TestServiceRefreshAndReports(t *testing.T) {
	src := &memSource{name: "week", body: weekCSV}
	svc := weather.NewService(store.NewMemoryStore(5, 0), []weather.Source{src})

	assert.Equal(t, []string{"week"}, svc.Sources())

	_, err := svc.Summary("week")
	assert.ErrorIs(t, err, store.ErrNotFound)

	snap, err := svc.Refresh(context.Background(), "week")
	require.NoError(t, err)
	assert.NotEmpty(t, snap.ID)
	assert.Equal(t, "week", snap.Source)
	assert.Len(t, snap.Records, 2)
	assert.WithinDuration(t, time.Now().UTC(), snap.LoadedAt, time.Minute)

	summary, err := svc.Summary("week")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(summary, "2 Day Overview\n"))

	daily, err := svc.DailySummary("week")
	require.NoError(t, err)
	assert.Contains(t, daily, "---- Tuesday 06 July 2021 ----\n")
}

func TestServiceFailedRefreshKeepsLastGoodSnapshot(t *testing.T) {
	src := &memSource{name: "week", body: weekCSV}
	svc := weather.NewService(store.NewMemoryStore(5, 0), []weather.Source{src})

	first, err := svc.Refresh(context.Background(), "week")
	require.NoError(t, err)

	src.set("date,min,max\n2021-07-07,cold,hot\n", nil)
	_, err = svc.Refresh(context.Background(), "week")
	assert.ErrorIs(t, err, weather.ErrParse)

	src.set("", errors.New("disk on fire"))
	_, err = svc.Refresh(context.Background(), "week")
	assert.Error(t, err)

	latest, err := svc.GetLatest("week")
	require.NoError(t, err)
	assert.Equal(t, first.ID, latest.ID)

	history, err := svc.GetHistory("week")
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestServiceUnknownSource(t *testing.T) {
	svc := weather.NewService(store.NewMemoryStore(5, 0), nil)

	_, err := svc.Refresh(context.Background(), "nope")
	assert.ErrorIs(t, err, weather.ErrUnknownSource)

	_, err = svc.Summary("nope")
	assert.ErrorIs(t, err, weather.ErrUnknownSource)

	_, err = svc.GetHistory("nope")
	assert.ErrorIs(t, err, weather.ErrUnknownSource)
}

func TestServiceRender(t *testing.T) {
	svc := weather.NewService(store.NewMemoryStore(5, 0), nil, weather.WithComma(';'))

	text, err := svc.Render(strings.NewReader("date;min;max\n2021-07-05;49;67\n"), true)
	require.NoError(t, err)
	assert.Equal(t, "---- Monday 05 July 2021 ----\n  Minimum Temperature: 9.4°C\n  Maximum Temperature: 19.4°C\n\n", text)

	text, err = svc.Render(strings.NewReader("date;min;max\n2021-07-05;49;67\n"), false)
	require.NoError(t, err)
	assert.Contains(t, text, "1 Day Overview")

	_, err = svc.Render(strings.NewReader("date;min;max\n"), false)
	assert.ErrorIs(t, err, weather.ErrNoData)
}
