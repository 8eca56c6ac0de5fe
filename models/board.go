package models

import (
	"encoding/json"
	"fmt"
)

// Availability tells whether a piece of upstream data could be obtained
type Availability int

const (
	Available Availability = iota
	// Unavailable covers transport errors, timeouts, 5xx and 429 responses
	Unavailable
	// Failed covers everything that a retry would not fix
	Failed
)

func (a Availability) String() string {
	switch a {
	case Available:
		return "available"
	case Unavailable:
		return "unavailable"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// MarshalJSON renders the availability by name
func (a Availability) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON parses a name written by MarshalJSON
func (a *Availability) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	switch name {
	case "available":
		*a = Available
	case "unavailable":
		*a = Unavailable
	case "failed":
		*a = Failed
	default:
		return fmt.Errorf("unknown availability %q", name)
	}
	return nil
}

// City is an entry of the tracked city list
type City struct {
	Name string `json:"city"`
	Code string `json:"code"` // ISO 3166 alpha-2, lowercase
}

// Location is the city an IP address resolves to
type Location struct {
	City        string `json:"city"`
	CountryCode string `json:"codeCountry"` // lowercase
}

// CityTemperature is the per-city summary fed to the interval bucketer
type CityTemperature struct {
	City        string `json:"city"`
	CurrentTemp int    `json:"currentTemp"` // in Celsius
	CountryCode string `json:"codeCountry"`
	Conditions  string `json:"conditions"`
	Icon        string `json:"icon"`
}

// IntervalBucket groups the cities whose temperature falls in [Low, High]
type IntervalBucket struct {
	Interval string   `json:"interval"`
	Low      int      `json:"low"`
	High     int      `json:"high"`
	Cities   []string `json:"cities"`
}
