package collector

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"weather-board/datasource"
	"weather-board/models"
)

// DefaultConcurrency is the number of cities fetched at the same time
const DefaultConcurrency = 4

// Collector gathers the current temperature of a list of cities
type Collector struct {
	weather      datasource.WeatherProvider
	builder      *Builder
	concurrency  int
	fetchTimeout time.Duration
	logger       *slog.Logger
}

// NewCollector creates a collector fetching through weather and normalizing with builder
func NewCollector(weather datasource.WeatherProvider, builder *Builder, logger *slog.Logger) *Collector {
	return &Collector{
		weather:      weather,
		builder:      builder,
		concurrency:  DefaultConcurrency,
		fetchTimeout: 10 * time.Second,
		logger:       logger.With("component", "collector"),
	}
}

// SetFetchTimeout changes the time budget of a single city
func (c *Collector) SetFetchTimeout(timeout time.Duration) {
	c.fetchTimeout = timeout
}

// SetConcurrency changes the number of parallel city fetches
func (c *Collector) SetConcurrency(n int) {
	if n < 1 {
		n = 1
	}
	c.concurrency = n
}

// Collect fetches every city and returns their temperatures in input order.
// Cities whose weather cannot be fetched are left out.
func (c *Collector) Collect(ctx context.Context, cities []models.City) []models.CityTemperature {
	slots := make([]*models.CityTemperature, len(cities))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, city := range cities {
		g.Go(func() error {
			slots[i] = c.fetchOnce(gctx, city)
			return nil
		})
	}
	// fetchOnce never returns an error, failures are dropped per city
	_ = g.Wait()

	out := make([]models.CityTemperature, 0, len(cities))
	for _, s := range slots {
		if s != nil {
			out = append(out, *s)
		}
	}

	c.logger.Info("collected city temperatures", "requested", len(cities), "collected", len(out))
	return out
}

// fetchOnce fetches and normalizes a single city, nil on failure
func (c *Collector) fetchOnce(ctx context.Context, city models.City) *models.CityTemperature {
	fetchCtx, cancel := context.WithTimeout(ctx, c.fetchTimeout)
	defer cancel()

	record, err := c.weather.GetWeather(fetchCtx, city.Name, city.Code)
	if err != nil {
		c.logger.Warn("skipping city",
			"city", city.Name,
			"country", city.Code,
			"provider", c.weather.Name(),
			"status", datasource.Classify(err),
			"error", err)
		return nil
	}

	info := c.builder.Build(fetchCtx, record)
	return &models.CityTemperature{
		City:        info.City,
		CurrentTemp: info.CurrentTemp,
		CountryCode: info.CountryCode,
		Conditions:  info.Conditions,
		Icon:        info.Icon,
	}
}
