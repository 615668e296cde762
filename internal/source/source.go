// Package source provides the places weather data can be loaded from.
package source

import (
	"net/http"

	"golang.org/x/time/rate"

	"github.com/i474232898/weather-report/internal/common"
	"github.com/i474232898/weather-report/internal/weather"
)

// Options configures remote sources built by New.
type Options struct {
	Client *http.Client
	RPS    float64 // <= 0 disables rate limiting
	Burst  int
}

// New returns a RemoteSource for http(s) locations and a FileSource otherwise.
func New(name, location string, opts Options) weather.Source {
	if common.HasAnyPrefix(location, "http://", "https://") {
		client := opts.Client
		if client == nil {
			client = http.DefaultClient
		}
		return NewRemoteSource(client, name, location, newLimiter(opts.RPS, opts.Burst))
	}
	return NewFileSource(name, location)
}

func newLimiter(rps float64, burst int) *rate.Limiter {
	if rps <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}
