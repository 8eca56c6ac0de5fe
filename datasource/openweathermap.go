package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"weather-board/models"
)

// DefaultOpenWeatherMapURL is the base URL of the OpenWeatherMap 2.5 API
const DefaultOpenWeatherMapURL = "http://api.openweathermap.org/data/2.5"

// OpenWeatherMapProvider implements both WeatherProvider and ForecastSource interfaces
type OpenWeatherMapProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewOpenWeatherMapProvider creates a new OpenWeatherMap provider.
// An empty baseURL selects DefaultOpenWeatherMapURL.
func NewOpenWeatherMapProvider(apiKey, baseURL string) *OpenWeatherMapProvider {
	if baseURL == "" {
		baseURL = DefaultOpenWeatherMapURL
	}
	return &OpenWeatherMapProvider{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Name returns the provider name
func (p *OpenWeatherMapProvider) Name() string {
	return "OpenWeatherMap"
}

// GetWeather fetches current weather for a city.
// Temperatures stay in Kelvin, the unit conversion happens downstream.
func (p *OpenWeatherMapProvider) GetWeather(ctx context.Context, city, countryCode string) (models.WeatherRecord, error) {
	body, err := getBody(ctx, p.httpClient, p.endpoint("weather", city, countryCode))
	if err != nil {
		return models.WeatherRecord{}, fmt.Errorf("weather for %s,%s: %w", city, countryCode, err)
	}

	var record models.WeatherRecord
	if err := json.Unmarshal(body, &record); err != nil {
		return models.WeatherRecord{}, fmt.Errorf("failed to parse weather response: %w: %w", ErrFailed, err)
	}
	return record, nil
}

// FetchForecast fetches the 5 day forecast in 3-hour steps for a city
func (p *OpenWeatherMapProvider) FetchForecast(ctx context.Context, city, countryCode string) (models.ForecastRecord, error) {
	body, err := getBody(ctx, p.httpClient, p.endpoint("forecast", city, countryCode))
	if err != nil {
		return models.ForecastRecord{}, fmt.Errorf("forecast for %s,%s: %w", city, countryCode, err)
	}

	var record models.ForecastRecord
	if err := json.Unmarshal(body, &record); err != nil {
		return models.ForecastRecord{}, fmt.Errorf("failed to parse forecast response: %w: %w", ErrFailed, err)
	}
	return record, nil
}

func (p *OpenWeatherMapProvider) endpoint(resource, city, countryCode string) string {
	params := url.Values{}
	params.Add("q", fmt.Sprintf("%s,%s", city, countryCode))
	params.Add("APPID", p.apiKey)
	return fmt.Sprintf("%s/%s?%s", p.baseURL, resource, params.Encode())
}
