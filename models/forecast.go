package models

// ForecastEntry is a single 3-hour step of the OpenWeatherMap forecast
type ForecastEntry struct {
	Main struct {
		TempMin float64 `json:"temp_min"` // in Kelvin
		TempMax float64 `json:"temp_max"` // in Kelvin
	} `json:"main"`
	Weather []Condition `json:"weather"`
	DtTxt   string      `json:"dt_txt"` // "2006-01-02 15:04:05"
}

// PrimaryCondition returns the first reported condition, or a zero value
func (e ForecastEntry) PrimaryCondition() Condition {
	if len(e.Weather) == 0 {
		return Condition{}
	}
	return e.Weather[0]
}

// ForecastRecord is the raw 5 day / 3 hour forecast payload
type ForecastRecord struct {
	City struct {
		Name    string `json:"name"`
		Country string `json:"country"`
	} `json:"city"`
	List []ForecastEntry `json:"list"`
}

// ForecastDay is one midday sample of the forecast
type ForecastDay struct {
	Day       string `json:"day"`
	MinTemp   int    `json:"minTemp"` // in Celsius, rounded down
	MaxTemp   int    `json:"maxTemp"` // in Celsius
	Condition string `json:"condition"`
	Icon      string `json:"icon"`
}
