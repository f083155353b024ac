package email

import (
	"fmt"
	"strings"

	"github.com/naemfares/weathermail/internal/domain"
)

func ForecastSubject(city string) string {
	return fmt.Sprintf("Your Weather Forecast %s", city)
}

// ForecastBody renders the plaintext forecast email, one block per day.
func ForecastBody(city string, forecast []domain.DayForecast) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Weather Forecast %s:\n\n", city)
	for _, day := range forecast {
		fmt.Fprintf(&b, "Date: %s\n", day.Date)
		fmt.Fprintf(&b, "Min Temp: %.1f°C, Max Temp: %.1f°C\n", day.MinTemp, day.MaxTemp)
		fmt.Fprintf(&b, "Chance of Precipitation: %.0f%%\n", day.PrecipChance)
		fmt.Fprintf(&b, "Wind Velocity: %.1f km/h\n", day.WindSpeed)
		b.WriteString("------------\n")
	}
	return b.String()
}
