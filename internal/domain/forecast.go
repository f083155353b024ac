package domain

// DayForecast is one day of a city forecast, metric units.
type DayForecast struct {
	Date         string  // YYYY-MM-DD
	MinTemp      float64 // °C
	MaxTemp      float64 // °C
	Description  string
	PrecipChance float64 // percent
	WindSpeed    float64 // km/h
}
