package source

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/i474232898/weather-report/internal/weather"
)

// RemoteSource implements weather.Source for delimited text served over HTTP(S).
type RemoteSource struct {
	name    string
	url     string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewRemoteSource creates a remote source. limiter may be nil.
func NewRemoteSource(client *http.Client, name, url string, limiter *rate.Limiter) *RemoteSource {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &RemoteSource{
		name: name,
		url:  url,
		httpCfg: HTTPClientConfig{
			Client: client,
			Backoff: BackoffConfig{
				MaxRetries:      3,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
			Limiter: limiter,
		},
		circuit: cb,
	}
}

func (s *RemoteSource) Name() string {
	return s.name
}

// URL returns the address the source is fetched from.
func (s *RemoteSource) URL() string {
	return s.url
}

// Open fetches the document; the caller must close the returned body.
func (s *RemoteSource) Open(ctx context.Context) (io.ReadCloser, error) {
	buildRequest := func() (*http.Request, error) {
		req, err := http.NewRequest(http.MethodGet, s.url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.5")
		return req, nil
	}

	resp, err := doRequestWithResilience(ctx, s.httpCfg, s.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

var _ weather.Source = (*RemoteSource)(nil)
