// Package intervals groups cities into fixed-width temperature bands
package intervals

import (
	"fmt"

	"weather-board/models"
)

// DefaultWidth is the width of a temperature band in degrees Celsius
const DefaultWidth = 5

// Range describes the spread of the tracked temperatures
type Range struct {
	Min   int `json:"min"`
	Max   int `json:"max"`
	Start int `json:"start"` // Min rounded to the nearest band boundary
	End   int `json:"end"`   // Max rounded to the nearest band boundary
}

// RoundToBoundary rounds value to the closest multiple of width.
// Ties go to the upper boundary.
func RoundToBoundary(value, width int) int {
	low := floorDiv(value, width) * width
	high := low + width
	if value-low >= high-value {
		return high
	}
	return low
}

// ComputeRange returns the temperature spread, or false when temps is empty
func ComputeRange(temps []int, width int) (Range, bool) {
	if len(temps) == 0 {
		return Range{}, false
	}

	r := Range{Min: temps[0], Max: temps[0]}
	for _, t := range temps[1:] {
		if t < r.Min {
			r.Min = t
		}
		if t > r.Max {
			r.Max = t
		}
	}
	r.Start = RoundToBoundary(r.Min, width)
	r.End = RoundToBoundary(r.Max, width)
	return r, true
}

// Partition splits [0, End] into bands of the given width and assigns every
// city to the band holding its current temperature. The first band is
// [0 - width] and every following band starts one degree above the previous
// upper bound. Cities below zero or above End are left out.
func Partition(cities []models.CityTemperature, width int) (Range, []models.IntervalBucket) {
	if width <= 0 {
		width = DefaultWidth
	}

	temps := make([]int, 0, len(cities))
	for _, c := range cities {
		temps = append(temps, c.CurrentTemp)
	}

	r, ok := ComputeRange(temps, width)
	if !ok || r.End < 0 {
		return r, nil
	}

	// A single band covers everything up to the first boundary
	if r.End <= width {
		return r, []models.IntervalBucket{newBucket(cities, 0, width)}
	}

	n := r.End / width
	buckets := make([]models.IntervalBucket, 0, n)
	buckets = append(buckets, newBucket(cities, 0, width))
	for i := 1; i < n-1; i++ {
		buckets = append(buckets, newBucket(cities, i*width+1, (i+1)*width))
	}
	buckets = append(buckets, newBucket(cities, r.End-width+1, r.End))

	return r, buckets
}

func newBucket(cities []models.CityTemperature, low, high int) models.IntervalBucket {
	b := models.IntervalBucket{
		Interval: fmt.Sprintf("[%d - %d]", low, high),
		Low:      low,
		High:     high,
		Cities:   []string{},
	}
	for _, c := range cities {
		if c.CurrentTemp >= low && c.CurrentTemp <= high {
			b.Cities = append(b.Cities, c.City)
		}
	}
	return b
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
