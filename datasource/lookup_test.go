package datasource

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"
	"time"

	"github.com/oschwald/geoip2-golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-board/models"
)

func TestPublicIPResolver(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("181.65.10.2\n"))
	}))
	defer srv.Close()

	addr, err := NewPublicIPResolver(srv.URL).PublicIP(context.Background())
	require.NoError(t, err)
	assert.Equal(t, netip.MustParseAddr("181.65.10.2"), addr)
}

func TestPublicIPResolverRejectsGarbage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>"))
	}))
	defer srv.Close()

	_, err := NewPublicIPResolver(srv.URL).PublicIP(context.Background())
	assert.Equal(t, models.Failed, Classify(err))
}

func TestIsPublic(t *testing.T) {
	assert.True(t, IsPublic(netip.MustParseAddr("181.65.10.2")))
	assert.True(t, IsPublic(netip.MustParseAddr("::ffff:181.65.10.2")))
	assert.False(t, IsPublic(netip.MustParseAddr("127.0.0.1")))
	assert.False(t, IsPublic(netip.MustParseAddr("10.1.2.3")))
	assert.False(t, IsPublic(netip.MustParseAddr("192.168.0.10")))
	assert.False(t, IsPublic(netip.Addr{}))
}

type fakeCityReader struct {
	city *geoip2.City
	err  error
}

func (f fakeCityReader) City(net.IP) (*geoip2.City, error) {
	return f.city, f.err
}

func TestGeoIPLocator(t *testing.T) {
	record := &geoip2.City{}
	record.City.Names = map[string]string{"en": "Lima"}
	record.Country.IsoCode = "PE"

	loc, err := (&GeoIPLocator{reader: fakeCityReader{city: record}}).Locate(netip.MustParseAddr("181.65.10.2"))
	require.NoError(t, err)
	assert.Equal(t, models.Location{City: "Lima", CountryCode: "pe"}, loc)
}

func TestGeoIPLocatorMissingCity(t *testing.T) {
	record := &geoip2.City{}
	record.Country.IsoCode = "PE"

	_, err := (&GeoIPLocator{reader: fakeCityReader{city: record}}).Locate(netip.MustParseAddr("181.65.10.2"))
	assert.ErrorIs(t, err, ErrLocationNotFound)

	_, err = (&GeoIPLocator{reader: fakeCityReader{err: errors.New("corrupt")}}).Locate(netip.MustParseAddr("181.65.10.2"))
	assert.ErrorIs(t, err, ErrFailed)
}

type countingProvider struct {
	calls int
}

func (c *countingProvider) Name() string { return "Counting" }

func (c *countingProvider) GetWeather(context.Context, string, string) (models.WeatherRecord, error) {
	c.calls++
	return models.WeatherRecord{Name: "Lima"}, nil
}

func (c *countingProvider) FetchForecast(context.Context, string, string) (models.ForecastRecord, error) {
	c.calls++
	return models.ForecastRecord{}, nil
}

func TestRateLimitedProvider(t *testing.T) {
	inner := &countingProvider{}
	p := NewRateLimitedProvider(inner, 0.001, 1)
	assert.Equal(t, "Counting [Rate Limited]", p.Name())

	// The burst allows the first call through immediately
	_, err := p.GetWeather(context.Background(), "Lima", "pe")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = p.FetchForecast(ctx, "Lima", "pe")
	require.Error(t, err)
	assert.Equal(t, models.Unavailable, Classify(err))
	assert.Equal(t, 1, inner.calls)
}
