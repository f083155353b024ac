package weather

import (
	"context"

	"github.com/naemfares/weathermail/internal/domain"
)

// Forecaster abstracts the external weather provider. Implementations must
// honor ctx cancellation and report failures as wrapped domain.ErrProvider.
type Forecaster interface {
	Forecast(ctx context.Context, city string, days int) ([]domain.DayForecast, error)
}
