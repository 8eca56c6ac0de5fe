package collector

import (
	"context"
	"log/slog"
	"strings"

	"weather-board/datasource"
	"weather-board/models"
	"weather-board/units"
)

// Builder turns raw weather records into CurrentInformation
type Builder struct {
	countries datasource.CountryResolver
	forecasts datasource.ForecastSource
	logger    *slog.Logger
}

// NewBuilder creates a builder resolving countries and forecasts with the given sources
func NewBuilder(countries datasource.CountryResolver, forecasts datasource.ForecastSource, logger *slog.Logger) *Builder {
	return &Builder{
		countries: countries,
		forecasts: forecasts,
		logger:    logger.With("component", "builder"),
	}
}

// Build normalizes a record and attaches its midday forecast.
// Country and forecast failures degrade the record instead of failing it.
func (b *Builder) Build(ctx context.Context, record models.WeatherRecord) models.CurrentInformation {
	code := strings.ToLower(record.Sys.Country)
	condition := record.PrimaryCondition()

	info := models.CurrentInformation{
		City:        record.Name,
		Country:     b.countryName(ctx, code),
		CountryCode: code,
		CurrentTemp: units.KelvinToCelsius(record.Main.Temp, false),
		MinTemp:     units.KelvinToCelsius(record.Main.TempMin, true),
		MaxTemp:     units.KelvinToCelsius(record.Main.TempMax, false),
		FeltTemp:    units.KelvinToCelsius(record.Main.FeelsLike, false),
		Humidity:    record.Main.Humidity,
		Conditions:  condition.Main,
		Icon:        units.IconURL(condition.Icon),
		Description: condition.Description,
		WindSpeed:   units.MetersPerSecondToKmPerHour(record.Wind.Speed),
		Forecast:    []models.ForecastDay{},
	}

	forecast, err := b.forecasts.FetchForecast(ctx, record.Name, code)
	if err != nil {
		info.ForecastStatus = datasource.Classify(err)
		b.logger.Warn("forecast unavailable", "city", record.Name, "country", code, "status", info.ForecastStatus, "error", err)
		return info
	}
	info.Forecast = b.middayForecast(forecast)

	return info
}

func (b *Builder) countryName(ctx context.Context, code string) string {
	name, err := b.countries.CountryName(ctx, code)
	if err != nil {
		b.logger.Warn("country name lookup failed", "country", code, "error", err)
		return strings.ToUpper(code)
	}
	return name
}

// middayForecast keeps one sample per day, in upstream order
func (b *Builder) middayForecast(forecast models.ForecastRecord) []models.ForecastDay {
	days := []models.ForecastDay{}
	for _, entry := range forecast.List {
		if !strings.Contains(entry.DtTxt, units.Midday) {
			continue
		}

		day, err := units.WeekdayName(entry.DtTxt, " ")
		if err != nil {
			b.logger.Warn("skipping forecast entry", "dt_txt", entry.DtTxt, "error", err)
			continue
		}

		condition := entry.PrimaryCondition()
		days = append(days, models.ForecastDay{
			Day:       day,
			MinTemp:   units.KelvinToCelsius(entry.Main.TempMin, true),
			MaxTemp:   units.KelvinToCelsius(entry.Main.TempMax, false),
			Condition: condition.Main,
			Icon:      units.IconURL(condition.Icon),
		})
	}
	return days
}
