package datasource

import (
	"fmt"
	"net"
	"net/netip"
	"strings"

	"github.com/oschwald/geoip2-golang"

	"weather-board/models"
)

// cityReader is the part of *geoip2.Reader the locator needs
type cityReader interface {
	City(ip net.IP) (*geoip2.City, error)
}

// GeoIPLocator resolves IPs using a local MaxMind GeoLite2 City database
type GeoIPLocator struct {
	reader cityReader
	closer func() error
}

// OpenGeoIPLocator opens the database file at path
func OpenGeoIPLocator(path string) (*GeoIPLocator, error) {
	reader, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open geoip database %s: %w", path, err)
	}
	return &GeoIPLocator{reader: reader, closer: reader.Close}, nil
}

// Locate returns the city and lowercase country code of ip
func (l *GeoIPLocator) Locate(ip netip.Addr) (models.Location, error) {
	record, err := l.reader.City(net.IP(ip.AsSlice()))
	if err != nil {
		return models.Location{}, fmt.Errorf("geoip lookup for %s: %w: %w", ip, ErrFailed, err)
	}

	loc := models.Location{
		City:        record.City.Names["en"],
		CountryCode: strings.ToLower(record.Country.IsoCode),
	}
	if loc.City == "" || loc.CountryCode == "" {
		return models.Location{}, fmt.Errorf("%w: %s", ErrLocationNotFound, ip)
	}
	return loc, nil
}

// Close releases the database
func (l *GeoIPLocator) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer()
}

var _ Locator = (*GeoIPLocator)(nil)
