package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"
)

// DefaultCountriesURL serves a JSON object of ISO code to country name
const DefaultCountriesURL = "http://country.io/names.json"

// CountryDirectory resolves country codes against a remote code->name table.
// The table is downloaded on every lookup.
type CountryDirectory struct {
	url        string
	httpClient *http.Client
}

// NewCountryDirectory creates a directory backed by the table at url
func NewCountryDirectory(url string) *CountryDirectory {
	if url == "" {
		url = DefaultCountriesURL
	}
	return &CountryDirectory{
		url: url,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Countries downloads the table, keyed by lowercase code
func (d *CountryDirectory) Countries(ctx context.Context) (map[string]string, error) {
	body, err := getBody(ctx, d.httpClient, d.url)
	if err != nil {
		return nil, fmt.Errorf("country table: %w", err)
	}

	var raw map[string]string
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse country table: %w: %w", ErrFailed, err)
	}

	table := make(map[string]string, len(raw))
	for code, name := range raw {
		table[strings.ToLower(code)] = name
	}
	return table, nil
}

// CountryName returns the display name of an ISO country code
func (d *CountryDirectory) CountryName(ctx context.Context, code string) (string, error) {
	table, err := d.Countries(ctx)
	if err != nil {
		return "", err
	}

	name, ok := table[strings.ToLower(code)]
	if !ok {
		return "", fmt.Errorf("%w: code %q", ErrCountryNotFound, code)
	}
	return name, nil
}

// CountryCode returns the lowercase code whose name equals name exactly.
// If several codes share a name the smallest one wins.
func (d *CountryDirectory) CountryCode(ctx context.Context, name string) (string, error) {
	table, err := d.Countries(ctx)
	if err != nil {
		return "", err
	}

	var matches []string
	for code, n := range table {
		if n == name {
			matches = append(matches, code)
		}
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("%w: name %q", ErrCountryNotFound, name)
	}
	sort.Strings(matches)
	return matches[0], nil
}

var _ CountryResolver = (*CountryDirectory)(nil)
