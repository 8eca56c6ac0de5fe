package datasource

import (
	"context"
	"fmt"

	"weather-board/models"

	"golang.org/x/time/rate"
)

// Provider is a source of both current weather and forecasts
type Provider interface {
	WeatherProvider
	ForecastSource
}

// RateLimitedProvider wraps a Provider and paces outgoing calls.
// Weather and forecast calls share one limiter since upstream quotas count both.
type RateLimitedProvider struct {
	provider Provider
	limiter  *rate.Limiter
	name     string
}

// NewRateLimitedProvider creates a provider that allows rps requests per
// second with bursts of up to burst requests
func NewRateLimitedProvider(provider Provider, rps float64, burst int) *RateLimitedProvider {
	if burst < 1 {
		burst = 1
	}
	return &RateLimitedProvider{
		provider: provider,
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
		name:     fmt.Sprintf("%s [Rate Limited]", provider.Name()),
	}
}

// GetWeather implements WeatherProvider interface with rate limiting
func (r *RateLimitedProvider) GetWeather(ctx context.Context, city, countryCode string) (models.WeatherRecord, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return models.WeatherRecord{}, fmt.Errorf("rate limit wait canceled: %w: %w", ErrUnavailable, err)
	}
	return r.provider.GetWeather(ctx, city, countryCode)
}

// FetchForecast implements ForecastSource interface with rate limiting
func (r *RateLimitedProvider) FetchForecast(ctx context.Context, city, countryCode string) (models.ForecastRecord, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return models.ForecastRecord{}, fmt.Errorf("rate limit wait canceled: %w: %w", ErrUnavailable, err)
	}
	return r.provider.FetchForecast(ctx, city, countryCode)
}

// Name returns the provider name
func (r *RateLimitedProvider) Name() string {
	return r.name
}

// Verify that our types implement the required interfaces
var (
	_ Provider = (*OpenWeatherMapProvider)(nil)
	_ Provider = (*RateLimitedProvider)(nil)
)
