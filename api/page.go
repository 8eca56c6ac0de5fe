package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"time"

	"weather-board/datasource"
	"weather-board/intervals"
	"weather-board/models"
)

// Page is everything rendered for one request
type Page struct {
	Location      models.Location            `json:"location"`
	Weather       *models.CurrentInformation `json:"weather"`
	WeatherStatus models.Availability        `json:"weatherStatus"`
	Cities        []models.CityTemperature   `json:"mainCities"`
	Range         intervals.Range            `json:"range"`
	Buckets       []models.IntervalBucket    `json:"mainCitiesAndTemperatures"`
	GeneratedAt   time.Time                  `json:"generatedAt"`
}

// pageForRequest builds the page for the city the caller's IP resolves to
func (s *Server) pageForRequest(ctx context.Context, r *http.Request) Page {
	loc, err := s.locateCaller(ctx, r)
	if err != nil {
		status := datasource.Classify(err)
		s.logger.Warn("caller location unavailable", "remote_addr", r.RemoteAddr, "status", status, "error", err)
		page := s.citiesPage(ctx)
		page.WeatherStatus = status
		return page
	}
	return s.pageForLocation(ctx, loc)
}

// pageForLocation builds the page for an explicit city
func (s *Server) pageForLocation(ctx context.Context, loc models.Location) Page {
	page := s.citiesPage(ctx)
	page.Location = loc

	record, err := s.weather.GetWeather(ctx, loc.City, loc.CountryCode)
	if err != nil {
		page.WeatherStatus = datasource.Classify(err)
		s.logger.Warn("weather unavailable", "city", loc.City, "country", loc.CountryCode, "status", page.WeatherStatus, "error", err)
		return page
	}

	info := s.builder.Build(ctx, record)
	page.Weather = &info
	return page
}

// citiesPage collects the tracked cities and buckets them
func (s *Server) citiesPage(ctx context.Context) Page {
	cities := s.collector.Collect(ctx, s.cities)
	r, buckets := intervals.Partition(cities, s.width)
	return Page{
		Cities:        cities,
		Range:         r,
		Buckets:       buckets,
		WeatherStatus: models.Available,
		GeneratedAt:   time.Now(),
	}
}

func (s *Server) locateCaller(ctx context.Context, r *http.Request) (models.Location, error) {
	ip, err := s.callerIP(ctx, r)
	if err != nil {
		return models.Location{}, err
	}
	return s.locator.Locate(ip)
}

// callerIP prefers the request's own address and falls back to the public
// address of this host when the request comes from a private network
func (s *Server) callerIP(ctx context.Context, r *http.Request) (netip.Addr, error) {
	if addr, ok := remoteAddr(r.RemoteAddr); ok && datasource.IsPublic(addr) {
		return addr.Unmap(), nil
	}

	addr, err := s.ips.PublicIP(ctx)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("resolve caller ip: %w", err)
	}
	return addr, nil
}

func remoteAddr(raw string) (netip.Addr, bool) {
	host := raw
	if h, _, err := net.SplitHostPort(raw); err == nil {
		host = h
	}
	addr, err := netip.ParseAddr(host)
	return addr, err == nil
}
