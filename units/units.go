// Package units converts raw OpenWeatherMap values into display values
package units

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	// TempOffset is the Kelvin value of 0°C
	TempOffset = 273.15
	// SpeedFactor converts m/s into km/h
	SpeedFactor = 3.6

	// Forecast timestamp markers
	Morning  = "06:00:00"
	Midday   = "12:00:00"
	Evening  = "18:00:00"
	Midnight = "00:00:00"

	iconURLFormat = "http://openweathermap.org/img/wn/%s@2x.png"
	dateLayout    = "2006-01-02"
)

var weekdays = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// KelvinToCelsius converts a Kelvin temperature to whole degrees Celsius.
// Minimum temperatures are rounded down, everything else is rounded up.
func KelvinToCelsius(tempK float64, roundDown bool) int {
	c := tempK - TempOffset
	if roundDown {
		return int(math.Floor(c))
	}
	return int(math.Ceil(c))
}

// MetersPerSecondToKmPerHour converts a wind speed and rounds it up
func MetersPerSecondToKmPerHour(speed float64) float64 {
	kmh := math.Ceil(speed * SpeedFactor)
	return math.Round(kmh*100) / 100
}

// IconURL returns the image URL of an OpenWeatherMap icon code
func IconURL(iconCode string) string {
	return fmt.Sprintf(iconURLFormat, iconCode)
}

// WeekdayName returns the weekday of a date-time string such as
// "2024-05-01 12:00:00". The string is cut at the first separator and the
// remaining date part is parsed.
func WeekdayName(raw, separator string) (string, error) {
	datePart := raw
	if separator != "" {
		if i := strings.Index(raw, separator); i >= 0 {
			datePart = raw[:i]
		}
	}

	date, err := time.Parse(dateLayout, datePart)
	if err != nil {
		return "", fmt.Errorf("failed to parse date %q: %w", raw, err)
	}

	index := int(date.Weekday())
	if index < 0 || index >= len(weekdays) {
		return "", fmt.Errorf("weekday index %d out of range", index)
	}
	return weekdays[index], nil
}
