package datasource

import (
	"context"
	"net/netip"

	"weather-board/models"
)

// WeatherProvider is an interface for services that can fetch current weather data
type WeatherProvider interface {
	// GetWeather fetches current weather for a city in a country
	GetWeather(ctx context.Context, city, countryCode string) (models.WeatherRecord, error)

	// Name returns the provider's name
	Name() string
}

// ForecastSource is an interface for services that can fetch weather forecasts
type ForecastSource interface {
	// FetchForecast fetches the 5 day / 3 hour forecast for a city in a country
	FetchForecast(ctx context.Context, city, countryCode string) (models.ForecastRecord, error)

	// Name returns the source's name
	Name() string
}

// CountryResolver maps ISO country codes to display names and back
type CountryResolver interface {
	CountryName(ctx context.Context, code string) (string, error)
	CountryCode(ctx context.Context, name string) (string, error)
}

// IPResolver returns the public IPv4 address this process is seen with
type IPResolver interface {
	PublicIP(ctx context.Context) (netip.Addr, error)
}

// Locator resolves an IP address to a city
type Locator interface {
	Locate(ip netip.Addr) (models.Location, error)
}
