package models

// Condition is one entry of the "weather" array in an OpenWeatherMap payload
type Condition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// WeatherRecord is the raw current weather payload from OpenWeatherMap.
// Temperatures are in Kelvin, wind speed in m/s.
type WeatherRecord struct {
	Name string `json:"name"`
	Sys  struct {
		Country string `json:"country"`
	} `json:"sys"`
	Main struct {
		Temp      float64 `json:"temp"`
		TempMin   float64 `json:"temp_min"`
		TempMax   float64 `json:"temp_max"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Weather []Condition `json:"weather"`
	Wind    struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

// PrimaryCondition returns the first reported condition, or a zero value
func (r WeatherRecord) PrimaryCondition() Condition {
	if len(r.Weather) == 0 {
		return Condition{}
	}
	return r.Weather[0]
}

// CurrentInformation is the normalized weather record rendered on the page
type CurrentInformation struct {
	City           string        `json:"city"`
	Country        string        `json:"country"`
	CountryCode    string        `json:"codeCountry"`
	CurrentTemp    int           `json:"currentTemp"` // in Celsius
	MinTemp        int           `json:"minTemp"`     // in Celsius, rounded down
	MaxTemp        int           `json:"maxTemp"`     // in Celsius
	FeltTemp       int           `json:"feltTemp"`    // in Celsius
	Humidity       int           `json:"humidity"`    // percentage
	Conditions     string        `json:"conditions"`
	Icon           string        `json:"icon"` // icon URL
	Description    string        `json:"conditionDescr"`
	WindSpeed      float64       `json:"windSpeed"` // in km/h
	Forecast       []ForecastDay `json:"forecast"`
	ForecastStatus Availability  `json:"forecastStatus"`
}
