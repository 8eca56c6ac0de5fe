package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-board/collector"
	"weather-board/datasource"
	"weather-board/models"
)

type fakeWeather struct {
	kelvin map[string]float64 // by city name
}

func (f fakeWeather) Name() string { return "fake" }

func (f fakeWeather) GetWeather(_ context.Context, city, code string) (models.WeatherRecord, error) {
	k, ok := f.kelvin[city]
	if !ok {
		return models.WeatherRecord{}, fmt.Errorf("%s: %w", city, datasource.ErrUnavailable)
	}
	var r models.WeatherRecord
	r.Name = city
	r.Sys.Country = strings.ToUpper(code)
	r.Main.Temp = k
	r.Main.TempMin = k
	r.Main.TempMax = k
	r.Main.FeelsLike = k
	r.Weather = []models.Condition{{Main: "Clear", Description: "clear sky", Icon: "01d"}}
	return r, nil
}

func (f fakeWeather) FetchForecast(context.Context, string, string) (models.ForecastRecord, error) {
	e := models.ForecastEntry{DtTxt: "2024-05-01 12:00:00", Weather: []models.Condition{{Main: "Rain", Icon: "10d"}}}
	e.Main.TempMin = 285
	e.Main.TempMax = 290
	return models.ForecastRecord{List: []models.ForecastEntry{e}}, nil
}

type fakeCountries struct{}

func (fakeCountries) CountryName(_ context.Context, code string) (string, error) {
	names := map[string]string{"pe": "Peru", "cl": "Chile", "ar": "Argentina"}
	if n, ok := names[code]; ok {
		return n, nil
	}
	return "", datasource.ErrCountryNotFound
}

func (fakeCountries) CountryCode(context.Context, string) (string, error) {
	return "", errors.New("not used")
}

type fakeIPs struct {
	addr netip.Addr
	err  error
}

func (f fakeIPs) PublicIP(context.Context) (netip.Addr, error) { return f.addr, f.err }

type fakeLocator map[netip.Addr]models.Location

func (f fakeLocator) Locate(ip netip.Addr) (models.Location, error) {
	loc, ok := f[ip]
	if !ok {
		return models.Location{}, datasource.ErrLocationNotFound
	}
	return loc, nil
}

var (
	limaIP     = netip.MustParseAddr("181.65.10.2")
	santiagoIP = netip.MustParseAddr("200.27.1.1")
)

func newTestServer(t *testing.T, weather fakeWeather, ips fakeIPs) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	builder := collector.NewBuilder(fakeCountries{}, weather, logger)

	srv := NewServer(Config{
		Weather:   weather,
		Builder:   builder,
		Collector: collector.NewCollector(weather, builder, logger),
		IPs:       ips,
		Locator: fakeLocator{
			limaIP:     {City: "Lima", CountryCode: "pe"},
			santiagoIP: {City: "Santiago", CountryCode: "cl"},
		},
		Cities: []models.City{
			{Name: "Buenos Aires", Code: "ar"},
			{Name: "Nowhere", Code: "xx"},
			{Name: "Santiago", Code: "cl"},
		},
		Logger: logger,
	}, ":0")

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func defaultWeather() fakeWeather {
	return fakeWeather{kelvin: map[string]float64{
		"Lima":         293.4, // 21
		"Buenos Aires": 280.5, // 8
		"Santiago":     296.0, // 23
	}}
}

func getBoard(t *testing.T, url string, header map[string]string) Page {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var page Page
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	return page
}

func TestBoardUsesPublicIPFallback(t *testing.T) {
	ts := newTestServer(t, defaultWeather(), fakeIPs{addr: limaIP})

	// httptest clients connect from loopback, so the public IP service is used
	page := getBoard(t, ts.URL+"/api/board", nil)

	require.NotNil(t, page.Weather)
	assert.Equal(t, "Lima", page.Weather.City)
	assert.Equal(t, "Peru", page.Weather.Country)
	assert.Equal(t, 21, page.Weather.CurrentTemp)
	require.Len(t, page.Weather.Forecast, 1)
	assert.Equal(t, "Wednesday", page.Weather.Forecast[0].Day)

	require.Len(t, page.Cities, 2)
	assert.Equal(t, "Buenos Aires", page.Cities[0].City)
	assert.Equal(t, "Santiago", page.Cities[1].City)

	// max 23 rounds to 25
	require.Len(t, page.Buckets, 5)
	assert.Equal(t, "[6 - 10]", page.Buckets[1].Interval)
	assert.Equal(t, []string{"Buenos Aires"}, page.Buckets[1].Cities)
	assert.Equal(t, []string{"Santiago"}, page.Buckets[4].Cities)
}

func TestBoardUsesForwardedClientIP(t *testing.T) {
	ts := newTestServer(t, defaultWeather(), fakeIPs{err: errors.New("must not be called")})

	page := getBoard(t, ts.URL+"/api/board", map[string]string{"X-Real-IP": santiagoIP.String()})

	require.NotNil(t, page.Weather)
	assert.Equal(t, "Santiago", page.Weather.City)
	assert.Equal(t, "Chile", page.Weather.Country)
}

func TestBoardPlaceholderWhenCallerWeatherFails(t *testing.T) {
	weather := defaultWeather()
	delete(weather.kelvin, "Lima")
	ts := newTestServer(t, weather, fakeIPs{addr: limaIP})

	page := getBoard(t, ts.URL+"/api/board", nil)
	assert.Nil(t, page.Weather)
	assert.Equal(t, models.Unavailable, page.WeatherStatus)
	assert.Equal(t, "Lima", page.Location.City)
	assert.Len(t, page.Cities, 2)
}

func TestIndexRendersPlaceholderWhenLocationFails(t *testing.T) {
	ts := newTestServer(t, defaultWeather(), fakeIPs{err: fmt.Errorf("down: %w", datasource.ErrUnavailable)})

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	html := string(body)
	assert.Contains(t, html, "Current weather unavailable.")
	assert.Contains(t, html, "Buenos Aires")
	assert.Contains(t, html, "[21 - 25]")
}

func TestIndexRendersWeather(t *testing.T) {
	ts := newTestServer(t, defaultWeather(), fakeIPs{addr: limaIP})

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	html := string(body)
	assert.Contains(t, html, "Lima, Peru")
	assert.Contains(t, html, "21&deg;C")
	assert.Contains(t, html, "Wednesday")
}

func TestWeatherForCity(t *testing.T) {
	ts := newTestServer(t, defaultWeather(), fakeIPs{err: errors.New("must not be called")})

	resp, err := http.Get(ts.URL + "/weather?city=Santiago&country=CL")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Santiago, Chile")
}

func TestWeatherForCityRequiresParams(t *testing.T) {
	ts := newTestServer(t, defaultWeather(), fakeIPs{addr: limaIP})

	for _, path := range []string{"/weather", "/weather?city=Lima", "/weather?country=pe"} {
		resp, err := http.Get(ts.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, path)
	}
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t, defaultWeather(), fakeIPs{addr: limaIP})

	resp, err := http.Get(ts.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestUnknownRoute(t *testing.T) {
	ts := newTestServer(t, defaultWeather(), fakeIPs{addr: limaIP})

	resp, err := http.Get(ts.URL + "/nope")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
