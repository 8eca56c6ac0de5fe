package collector

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"weather-board/models"
)

//go:embed main_cities_south_america.json
var defaultCities []byte

// LoadCities reads the tracked city list from path.
// An empty path returns the built-in list of South American cities.
func LoadCities(path string) ([]models.City, error) {
	data := defaultCities
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read city list: %w", err)
		}
		data = b
	}
	return ParseCities(data)
}

// ParseCities decodes a JSON array of {"city", "code"} entries
func ParseCities(data []byte) ([]models.City, error) {
	var cities []models.City
	if err := json.Unmarshal(data, &cities); err != nil {
		return nil, fmt.Errorf("failed to parse city list: %w", err)
	}

	for i := range cities {
		cities[i].Name = strings.TrimSpace(cities[i].Name)
		cities[i].Code = strings.ToLower(strings.TrimSpace(cities[i].Code))
		if cities[i].Name == "" || cities[i].Code == "" {
			return nil, fmt.Errorf("city list entry %d: city and code are required", i)
		}
	}
	return cities, nil
}
