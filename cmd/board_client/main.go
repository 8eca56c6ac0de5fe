package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"weather-board/api"
)

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the weather board")
	flag.Parse()

	fmt.Println("Weather Board Client")
	fmt.Println("====================")

	client := &http.Client{Timeout: 60 * time.Second}

	resp, err := client.Get(*baseURL + "/api/board")
	if err != nil {
		fmt.Printf("Error fetching board: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Board returned status %d\n", resp.StatusCode)
		os.Exit(1)
	}

	var page api.Page
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		fmt.Printf("Error decoding board: %v\n", err)
		os.Exit(1)
	}

	if w := page.Weather; w != nil {
		fmt.Printf("\n%s, %s: %d°C, %s (min %d°C / max %d°C, wind %.0f km/h)\n",
			w.City, w.Country, w.CurrentTemp, w.Description, w.MinTemp, w.MaxTemp, w.WindSpeed)
		for _, day := range w.Forecast {
			fmt.Printf("  %-9s %3d°C / %3d°C  %s\n", day.Day, day.MinTemp, day.MaxTemp, day.Condition)
		}
	} else {
		fmt.Printf("\nCurrent weather %s\n", page.WeatherStatus)
	}

	fmt.Printf("\nTracked cities (%d):\n", len(page.Cities))
	for _, c := range page.Cities {
		fmt.Printf("  %-16s %s %4d°C  %s\n", c.City, c.CountryCode, c.CurrentTemp, c.Conditions)
	}

	fmt.Println("\nTemperature intervals:")
	for _, b := range page.Buckets {
		fmt.Printf("  %-10s %s\n", b.Interval, strings.Join(b.Cities, ", "))
	}
}
